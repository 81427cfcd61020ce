package world

import (
	"encoding/json"
	"testing"

	"antcolony.ai/internal/observerproto"
	"antcolony.ai/internal/sim/geom"
)

func TestObserver_ViewportStream(t *testing.T) {
	w := newTestWorld(t, nil)
	base := mustBase(t, w, geom.V(0, 0))
	mustResource(t, w, geom.V(50, 50), 10)
	mustAgents(t, w, base, "worker", 1)

	out := make(chan []byte, 1)
	w.handleObserverJoin(ObserverJoinRequest{
		SessionID: "O1",
		TickOut:   out,
		View:      geom.Rect{Min: geom.V(5, 5), Max: geom.V(-5, -5)},
	})
	w.Update()

	var msg observerproto.ViewMsg
	if err := json.Unmarshal(<-out, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "VIEW" || msg.ProtocolVersion != observerproto.Version || msg.Tick != 0 {
		t.Fatalf("header=%+v", msg)
	}
	if len(msg.Entities) != 2 {
		t.Fatalf("entities=%+v", msg.Entities)
	}
	for _, e := range msg.Entities {
		if e.Kind == "RESOURCE" {
			t.Fatalf("resource outside the viewport was sent")
		}
		if e.Kind == "AGENT" && (e.State != "SEEKING" || e.AgentKind != "worker") {
			t.Fatalf("agent=%+v", e)
		}
	}
	if msg.Population.Resources != 1 || msg.Population.Workers != 1 {
		t.Fatalf("population=%+v", msg.Population)
	}

	w.handleObserverSubscribe(ObserverSubscribeRequest{SessionID: "O1", View: geom.Rect{Min: geom.V(40, 40), Max: geom.V(60, 60)}})
	w.Update()
	if err := json.Unmarshal(<-out, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(msg.Entities) != 1 || msg.Entities[0].Kind != "RESOURCE" || msg.Entities[0].Quantity != 10 {
		t.Fatalf("entities=%+v", msg.Entities)
	}

	w.handleObserverLeave("O1")
	if _, ok := <-out; ok {
		t.Fatalf("channel not closed on leave")
	}
}

func TestObserver_TruncatesTrailsFirst(t *testing.T) {
	w := newTestWorld(t, nil)
	base := mustBase(t, w, geom.V(0, 0))
	as := mustAgents(t, w, base, "worker", 3)
	for i, a := range as {
		a.pos, a.carried, a.trailStrength = geom.V(float64(3+2*i), 0), 1, 10
	}
	w.Update()

	msg := w.ViewMsg(geom.Rect{Min: geom.V(-20, -20), Max: geom.V(20, 20)}, 4)
	if !msg.Truncated || len(msg.Entities) != 4 {
		t.Fatalf("truncated=%v entities=%d", msg.Truncated, len(msg.Entities))
	}
	trails := 0
	for _, e := range msg.Entities {
		if e.Kind == "TRAIL" {
			trails++
		}
	}
	if trails != 0 {
		t.Fatalf("trails kept while other entities were cut: %d", trails)
	}
}
