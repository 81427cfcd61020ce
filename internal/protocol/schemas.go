package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	SchemaCreateAgents    = "create_agents.schema.json"
	SchemaCreateResources = "create_resources.schema.json"
	SchemaCreateBases     = "create_bases.schema.json"
	SchemaSubscribe       = "subscribe.schema.json"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() {
	c := jsonschema.NewCompiler()
	names := []string{SchemaCreateAgents, SchemaCreateResources, SchemaCreateBases, SchemaSubscribe}
	for _, name := range names {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			schemasErr = err
			return
		}
		if err := c.AddResource(name, bytes.NewReader(b)); err != nil {
			schemasErr = fmt.Errorf("%s: %w", name, err)
			return
		}
	}
	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		s, err := c.Compile(name)
		if err != nil {
			schemasErr = fmt.Errorf("compile %s: %w", name, err)
			return
		}
		out[name] = s
	}
	schemas = out
}

// Validate checks raw JSON against one of the embedded schemas.
func Validate(schema string, raw []byte) error {
	schemasOnce.Do(loadSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	s := schemas[schema]
	if s == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return s.Validate(v)
}

// DecodeValid validates raw against schema and then decodes it into out.
func DecodeValid(schema string, raw []byte, out any) error {
	if err := Validate(schema, raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
