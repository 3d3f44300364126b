// Package scenario records and restores the per-cell game state that lives
// on a board: which cells are legal targets and which one holds the mark.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/talgya/hexboard/internal/hexmap"
)

// SetupElt is one saved board state. Cells are stored as IHex so a state can
// be applied to any map built with the same configuration.
type SetupElt struct {
	Name  string        `json:"Aname,omitempty" jsonschema:"description=Scenario name and turn as name@turn"`
	Turn  int           `json:"turn" jsonschema:"minimum=0"`
	Time  string        `json:"time,omitempty" jsonschema:"description=Capture time in RFC 3339"`
	Legal []hexmap.IHex `json:"legal,omitempty" jsonschema:"description=Cells flagged as legal targets"`
	Mark  *hexmap.IHex  `json:"mark,omitempty" jsonschema:"description=Cell holding the mark"`
}

// Capture builds a SetupElt from the current legal flags and mark of m.
func Capture(m *hexmap.Map, name string, turn int, now time.Time) SetupElt {
	elt := SetupElt{
		Name: fmt.Sprintf("%s@%d", name, turn),
		Turn: max(0, turn),
		Time: now.UTC().Format(time.RFC3339),
	}
	for _, h := range m.FilterHexes((*hexmap.Hex).Legal) {
		elt.Legal = append(elt.Legal, h.IHex())
	}
	if h := m.Mark(); h != nil {
		ih := h.IHex()
		elt.Mark = &ih
	}
	return elt
}

// Apply resolves every cell of elt against m and then replaces the legal
// flags and mark. If any cell fails to resolve, m is not changed.
func Apply(m *hexmap.Map, elt SetupElt) error {
	legal := make([]*hexmap.Hex, 0, len(elt.Legal))
	for _, ih := range elt.Legal {
		h, err := m.Lookup(ih)
		if err != nil {
			return fmt.Errorf("apply %s: %w", elt.Name, err)
		}
		legal = append(legal, h)
	}
	var mark *hexmap.Hex
	if elt.Mark != nil {
		h, err := m.Lookup(*elt.Mark)
		if err != nil {
			return fmt.Errorf("apply %s mark: %w", elt.Name, err)
		}
		mark = h
	}

	m.ForEachHex(func(h *hexmap.Hex) { h.SetLegal(false) })
	for _, h := range legal {
		h.SetLegal(true)
	}
	m.ShowMark(mark)
	slog.Debug("scenario applied", "name", elt.Name, "turn", elt.Turn, "legal", len(legal))
	return nil
}

// WriteState appends elt to a scenario log: one key per line between braces,
// followed by a comma so successive states form a list.
func WriteState(w io.Writer, elt SetupElt) error {
	type field struct {
		key string
		val any
	}
	fields := []field{{"turn", elt.Turn}}
	if elt.Name != "" {
		fields = append([]field{{"Aname", elt.Name}}, fields...)
	}
	if elt.Time != "" {
		fields = append(fields, field{"time", elt.Time})
	}
	if len(elt.Legal) > 0 {
		fields = append(fields, field{"legal", elt.Legal})
	}
	if elt.Mark != nil {
		fields = append(fields, field{"mark", elt.Mark})
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, f := range fields {
		val, err := json.Marshal(f.val)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.key, err)
		}
		fmt.Fprintf(&buf, "\n  %q: %s", f.key, val)
		if i < len(fields)-1 {
			buf.WriteString(",")
		}
	}
	buf.WriteString("\n},\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// ParseLog reads back a log written by WriteState.
func ParseLog(r io.Reader) ([]SetupElt, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario log: %w", err)
	}
	body := bytes.TrimSuffix(bytes.TrimSpace(data), []byte(","))
	if len(body) == 0 {
		return nil, nil
	}
	var elts []SetupElt
	doc := append(append([]byte("["), body...), ']')
	if err := json.Unmarshal(doc, &elts); err != nil {
		return nil, fmt.Errorf("parse scenario log: %w", err)
	}
	return elts, nil
}

// Schema returns the JSON Schema of one SetupElt.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(new(SetupElt))
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
