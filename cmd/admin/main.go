package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var errUsage = errors.New("usage")

func main() {
	cmd, args := "runs", os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "runs", "db", "ticks", "state", "spawn", "food":
			cmd, args = args[0], args[1:]
		}
	}

	var err error
	switch cmd {
	case "runs":
		err = runsCmd(args, os.Stdout)
	case "db":
		err = dbCmd(args, os.Stdout)
	case "ticks":
		err = ticksCmd(args, os.Stdout)
	case "state":
		err = stateCmd(args, os.Stdout)
	case "spawn":
		err = spawnCmd(args, os.Stdout)
	case "food":
		err = foodCmd(args, os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// runsCmd lists the recorded runs of a world, oldest first.
func runsCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	worldID := fs.String("world", "colony_1", "world id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	dir := filepath.Join(*dataDir, "worlds", *worldID, "runs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			fmt.Fprintln(out, filepath.Join(dir, e.Name()))
		}
	}
	return nil
}
