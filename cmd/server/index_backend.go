package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"antcolony.ai/internal/persistence/indexdb"
)

// openRuntimeIndex opens the analytics read model for a run. A nil index with a
// nil error means indexing is off.
func openRuntimeIndex(runDir string, disableDB bool) (*indexdb.SQLiteIndex, error) {
	if disableDB {
		return nil, nil
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("AC_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "none", "off", "disabled":
		return nil, nil
	case "sqlite":
		dbPath := filepath.Join(runDir, "index", "world.sqlite")
		return indexdb.OpenSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unsupported AC_INDEX_BACKEND: %s", backend)
	}
}
