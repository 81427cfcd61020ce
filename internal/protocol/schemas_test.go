package protocol_test

import (
	"testing"

	"antcolony.ai/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	valid := []struct {
		schema string
		raw    string
	}{
		{protocol.SchemaCreateAgents, `{"base_id":"B000001","kind":"worker","count":3}`},
		{protocol.SchemaCreateAgents, `{"base_id":"B000001","kind":"dragon","count":0}`},
		{protocol.SchemaCreateResources, `{"resources":[{"pos":[5,0],"size":10},{"pos":[-3.5,2],"size":0}]}`},
		{protocol.SchemaCreateBases, `{"bases":[{"player":{"id":"P1","name":"red","color":"#ff0000"},"pos":[0,0]}],"size":1,"health":100}`},
		{protocol.SchemaSubscribe, `{"type":"SUBSCRIBE","protocol_version":"0.1","viewport":{"min":[-10,-10],"max":[10,10]}}`},
	}
	for _, c := range valid {
		if err := protocol.Validate(c.schema, []byte(c.raw)); err != nil {
			t.Fatalf("%s: validate %s: %v", c.schema, c.raw, err)
		}
	}
}

func TestSchemas_RejectMalformed(t *testing.T) {
	invalid := []struct {
		schema string
		raw    string
	}{
		{protocol.SchemaCreateAgents, `{"base_id":"B000001","kind":"worker"}`},
		{protocol.SchemaCreateAgents, `{"base_id":"B000001","kind":"worker","count":-1}`},
		{protocol.SchemaCreateAgents, `{"base_id":"B000001","kind":"worker","count":1.5}`},
		{protocol.SchemaCreateResources, `{"resources":[{"pos":[5],"size":10}]}`},
		{protocol.SchemaCreateResources, `{"resources":[]}`},
		{protocol.SchemaCreateBases, `{"bases":[{"player":{},"pos":[0,0]}]}`},
		{protocol.SchemaSubscribe, `{"type":"HELLO","protocol_version":"0.1","viewport":{"min":[0,0],"max":[1,1]}}`},
	}
	for _, c := range invalid {
		if err := protocol.Validate(c.schema, []byte(c.raw)); err == nil {
			t.Fatalf("%s: expected %s to be rejected", c.schema, c.raw)
		}
	}
}

func TestDecodeValid(t *testing.T) {
	var req protocol.CreateAgentsReq
	if err := protocol.DecodeValid(protocol.SchemaCreateAgents, []byte(`{"base_id":"B1","kind":"scout","count":2}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.BaseID != "B1" || req.Kind != "scout" || req.Count != 2 {
		t.Fatalf("req=%+v", req)
	}
	if err := protocol.Validate("nope.json", []byte(`{}`)); err == nil {
		t.Fatalf("unknown schema accepted")
	}
}
