package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"antcolony.ai/internal/persistence/indexdb"
	persistlog "antcolony.ai/internal/persistence/log"
	"antcolony.ai/internal/sim/world"
)

// dbCmd queries a run's sqlite index: deposits (default), deaths or last.
func dbCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("db", flag.ContinueOnError)
	runDir := fs.String("run", "", "run directory (required unless -db)")
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	q := "deposits"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		if strings.TrimSpace(*runDir) == "" {
			return fmt.Errorf("%w: missing -run or -db", errUsage)
		}
		path = filepath.Join(*runDir, "index", "world.sqlite")
	}

	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer idx.Close()

	ctx := context.Background()
	enc := json.NewEncoder(out)
	switch q {
	case "deposits":
		totals, err := idx.DepositTotals(ctx)
		if err != nil {
			return err
		}
		for _, t := range totals {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
	case "deaths":
		deaths, err := idx.DeathsByKind(ctx)
		if err != nil {
			return err
		}
		return enc.Encode(deaths)
	case "last":
		tick, digest, ok, err := idx.LastTick(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no ticks indexed")
		}
		return enc.Encode(map[string]any{"tick": tick, "digest": digest})
	default:
		return fmt.Errorf("%w: unknown query %q (deposits|deaths|last)", errUsage, q)
	}
	return nil
}

// ticksCmd prints a one-line summary per tick log entry, optionally only the last n.
func ticksCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ticks", flag.ContinueOnError)
	runDir := fs.String("run", "", "run directory (required)")
	last := fs.Int("last", 20, "print only the last n entries (0: all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if strings.TrimSpace(*runDir) == "" {
		return fmt.Errorf("%w: missing -run", errUsage)
	}

	files, err := persistlog.ListTickFiles(persistlog.TickDir(*runDir))
	if err != nil {
		return err
	}
	var ring []world.TickLogEntry
	for _, path := range files {
		err := persistlog.ReadTicks(path, func(e world.TickLogEntry) error {
			ring = append(ring, e)
			if *last > 0 && len(ring) > *last {
				ring = ring[1:]
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	for _, e := range ring {
		deposited := 0.0
		for _, d := range e.Deposits {
			deposited += d.Amount
		}
		fmt.Fprintf(out, "tick=%d workers=%d scouts=%d food=%d trails=%d creates=%d deaths=%d deposited=%.2f drawn=%.2f\n",
			e.Tick, e.Population.Workers, e.Population.Scouts, e.Population.Resources, e.Population.Trails,
			len(e.Creates), len(e.Deaths), deposited, e.FoodDrawn)
	}
	return nil
}
