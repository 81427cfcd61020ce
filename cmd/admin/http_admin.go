package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"antcolony.ai/internal/protocol"
)

func stateCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8080", "server base url")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	u := strings.TrimRight(strings.TrimSpace(*baseURL), "/") + "/admin/v1/state"
	cl := &http.Client{Timeout: 5 * time.Second}
	resp, err := cl.Get(u)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	fmt.Fprintln(out, string(b))
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// spawnCmd asks a running server to add agents to a base.
func spawnCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("spawn", flag.ContinueOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8080", "server base url")
	baseID := fs.String("base", "", "base id (required)")
	kind := fs.String("kind", "worker", "agent kind (worker|scout)")
	count := fs.Int("count", 1, "number of agents")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if strings.TrimSpace(*baseID) == "" {
		return fmt.Errorf("%w: missing -base", errUsage)
	}
	return postCreate(*baseURL, "/admin/v1/agents", protocol.CreateAgentsReq{BaseID: *baseID, Kind: *kind, Count: *count}, out)
}

// foodCmd asks a running server to place a food source.
func foodCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("food", flag.ContinueOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8080", "server base url")
	pos := fs.String("pos", "", "position x,y (required)")
	size := fs.Float64("size", 10, "food quantity")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	p, err := parseVec2(*pos)
	if err != nil {
		return fmt.Errorf("%w: bad -pos: %v", errUsage, err)
	}
	req := protocol.CreateResourcesReq{Resources: []protocol.ResourceSpec{{Pos: p, Size: *size}}}
	return postCreate(*baseURL, "/admin/v1/resources", req, out)
}

func postCreate(baseURL, path string, body any, out io.Writer) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	u := strings.TrimRight(strings.TrimSpace(baseURL), "/") + path
	cl := &http.Client{Timeout: 10 * time.Second}
	resp, err := cl.Post(u, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	var cr protocol.CreateResp
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return fmt.Errorf("status %d: decode: %w", resp.StatusCode, err)
	}
	if !cr.OK {
		return fmt.Errorf("%s: %s", cr.Code, cr.Message)
	}
	fmt.Fprintf(out, "ok tick=%d ids=%s\n", cr.Tick, strings.Join(cr.IDs, ","))
	return nil
}

func parseVec2(s string) ([2]float64, error) {
	var v [2]float64
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return v, fmt.Errorf("expected x,y")
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}
