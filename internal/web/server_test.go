package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCardsEndpoint(t *testing.T) {
	s := NewServer("")
	req := httptest.NewRequest("GET", "/api/cards", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cards []CardInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	byName := make(map[string]CardInfo, len(cards))
	for _, c := range cards {
		byName[c.Name] = c
	}
	if gold, ok := byName["Gold"]; !ok || gold.Cost != 6 || gold.Coins != 3 {
		t.Errorf("Gold = %+v", byName["Gold"])
	}
	if prov, ok := byName["Province"]; !ok || prov.VP != 6 {
		t.Errorf("Province = %+v", byName["Province"])
	}
}

func TestIndexServed(t *testing.T) {
	s := NewServer("")
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/no-such-page", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestSessionCommandFlow(t *testing.T) {
	sess := &wsSession{}

	reply := sess.handle([]byte(`{"type":"play","index":0}`))
	if reply.Type != "error" {
		t.Fatal("command before new_game should be rejected")
	}

	reply = sess.handle([]byte(`{"type":"new_game","players":2,"seed":1}`))
	if reply.Type != "state" || reply.State == nil {
		t.Fatalf("new_game reply = %+v", reply)
	}
	if reply.State.Turn != 1 || len(reply.State.Players) != 2 {
		t.Fatalf("unexpected initial state: %+v", reply.State)
	}
	if len(reply.Events) == 0 {
		t.Error("new_game should report the setup events")
	}

	reply = sess.handle([]byte(`{"type":"end"}`))
	if reply.Error != "" || reply.State.Phase != "Treasure Phase" {
		t.Fatalf("end reply = %+v", reply)
	}

	// Malformed and rejected commands keep the session alive.
	if reply = sess.handle([]byte(`{not json`)); reply.Type != "error" {
		t.Error("malformed JSON should produce an error reply")
	}
	reply = sess.handle([]byte(`{"type":"buy","card":"Gold"}`))
	if reply.Error == "" {
		t.Error("buy outside the buy phase should report an in-band error")
	}
	if reply = sess.handle([]byte(`{"type":"state"}`)); reply.State.Phase != "Treasure Phase" {
		t.Errorf("state refresh phase = %s", reply.State.Phase)
	}
}
