package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"antcolony.ai/internal/sim/world"
)

const (
	tickPrefix    = "ticks"
	runHeaderName = "run.json"
)

// ErrStopReading can be returned from a ReadTicks callback to end the scan early without error.
var ErrStopReading = errors.New("stop reading")

func TickDir(worldDir string) string { return filepath.Join(worldDir, "ticks") }

// RunHeader is written once when a world starts. It is everything replay needs
// besides the tick log itself.
type RunHeader struct {
	WorldID   string            `json:"world_id"`
	StartTick uint64            `json:"start_tick"`
	Config    world.WorldConfig `json:"config"`
}

func WriteRunHeader(worldDir string, h RunHeader) error {
	if err := os.MkdirAll(worldDir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(worldDir, runHeaderName+".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(worldDir, runHeaderName))
}

func ReadRunHeader(worldDir string) (RunHeader, error) {
	var h RunHeader
	b, err := os.ReadFile(filepath.Join(worldDir, runHeaderName))
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(b, &h); err != nil {
		return h, fmt.Errorf("%s: %w", runHeaderName, err)
	}
	return h, nil
}

// ListTickFiles returns the tick log files in dir, oldest first.
func ListTickFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, tickPrefix+"-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

// ReadTicks streams every entry of a compressed tick log file to fn.
func ReadTicks(path string, fn func(world.TickLogEntry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for sc.Scan() {
		var entry world.TickLogEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if err := fn(entry); err != nil {
			if errors.Is(err, ErrStopReading) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}
