// Command hexboard generates a districted hex board, paints terrain on it and
// stores the board and its initial scenario state.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexboard/internal/config"
	"github.com/talgya/hexboard/internal/hexmap"
	"github.com/talgya/hexboard/internal/logger"
	"github.com/talgya/hexboard/internal/persistence"
	"github.com/talgya/hexboard/internal/scenario"
	"github.com/talgya/hexboard/internal/terrain"
	"github.com/talgya/hexboard/internal/topo"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	printSchema := flag.Bool("schema", false, "print the scenario JSON Schema and exit")
	flag.Parse()

	if *printSchema {
		data, err := scenario.Schema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging)
	start := time.Now()

	// ── Board ─────────────────────────────────────────────────────────
	m := hexmap.New(cfg.MapConfig())
	m.Name = cfg.Board.Name
	switch cfg.Board.Kind {
	case config.KindBattle:
		_, err = m.MakeBattleDistrict(cfg.Board.NHexes, 0)
	default:
		_, err = m.MakeAllDistricts(cfg.Board.NHexes, cfg.Board.MHexes)
	}
	if err != nil {
		slog.Error("failed to generate board", "error", err)
		os.Exit(1)
	}
	bounds := m.PixelBounds()
	nrows, ncols := m.NRowCol()
	slog.Info("board ready",
		"kind", cfg.Board.Kind,
		"topology", m.Topology(),
		"cells", humanize.Comma(int64(m.HexCount())),
		"districts", len(m.Districts()),
		"rows", nrows,
		"cols", ncols,
		"center", m.CenterHex(),
		"pixels", fmt.Sprintf("%.0fx%.0f", bounds.Width, bounds.Height),
	)
	for _, d := range m.Districts() {
		color, _ := m.DistrictColor(d)
		slog.Debug("district", "id", d, "color", color, "cells", len(m.DistrictHexes(d)))
	}

	// ── Terrain ───────────────────────────────────────────────────────
	var label func(*hexmap.Hex) string
	if cfg.Terrain.Enabled {
		facets := terrain.Assign(m, cfg.NoiseConfig())
		for t, n := range terrain.Counts(facets) {
			slog.Info("terrain", "type", t, "count", n)
		}
		label = func(h *hexmap.Hex) string { return terrain.Name(facets, h) }
	}

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Store.Path)

	id, err := db.SaveBoard(m, cfg.Board.Kind, label)
	if err != nil {
		slog.Error("failed to save board", "error", err)
		os.Exit(1)
	}
	if err := db.SaveMeta("last_board", id); err != nil {
		slog.Warn("failed to record last board", "error", err)
	}

	// ── Scenario ──────────────────────────────────────────────────────
	center := m.CenterHex()
	if center != nil {
		center.ForEachLinkHex(func(nb *hexmap.Hex, _ topo.Dir) { nb.SetLegal(true) })
		m.ShowMark(center)
	}
	elt := scenario.Capture(m, cfg.Board.Name, 0, time.Now())
	if err := db.SaveScenario(id, elt); err != nil {
		slog.Error("failed to save scenario", "error", err)
		os.Exit(1)
	}
	if cfg.Store.ScenarioLog != "" {
		if err := appendLog(cfg.Store.ScenarioLog, elt); err != nil {
			slog.Error("failed to write scenario log", "error", err)
			os.Exit(1)
		}
	}

	size := "unknown"
	if fi, err := os.Stat(cfg.Store.Path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	slog.Info("board stored",
		"id", id,
		"legal", len(elt.Legal),
		"db_size", size,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

func appendLog(path string, elt scenario.SetupElt) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := scenario.WriteState(f, elt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
