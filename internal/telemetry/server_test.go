package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/logging"
)

func newTestServer(t *testing.T) (*engine.Engine, *httptest.Server) {
	t.Helper()
	eng := engine.New(engine.DefaultConfig())
	srv := NewServer("127.0.0.1:0", eng, logging.Discard())
	ts := httptest.NewServer(srv.srv.Handler)
	t.Cleanup(ts.Close)
	return eng, ts
}

func get(t *testing.T, url string) []byte {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}

func TestServer_StateEndpoint(t *testing.T) {
	eng, ts := newTestServer(t)
	eng.Frame(1.0 / 60)

	var state stateResponse
	if err := json.Unmarshal(get(t, ts.URL+"/state"), &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.SpeedLabel != "+1 DAY/S" {
		t.Errorf("speed_label = %q, want %q", state.SpeedLabel, "+1 DAY/S")
	}
	if state.Frames != 1 {
		t.Errorf("frames = %d, want 1", state.Frames)
	}
	if state.Date.IsZero() {
		t.Error("state date is zero")
	}
}

func TestServer_BodiesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var bodies []bodyResponse
	if err := json.Unmarshal(get(t, ts.URL+"/bodies"), &bodies); err != nil {
		t.Fatalf("unmarshal bodies: %v", err)
	}
	if len(bodies) < 9 {
		t.Fatalf("body count = %d, want at least 9", len(bodies))
	}
	found := false
	for _, b := range bodies {
		if b.Name == "Earth" {
			found = true
			if b.R <= 0 {
				t.Errorf("Earth heliocentric distance = %v, want > 0", b.R)
			}
		}
	}
	if !found {
		t.Error("Earth missing from /bodies")
	}
}

func TestServer_EventsEndpoint(t *testing.T) {
	eng, ts := newTestServer(t)
	eng.TogglePause()

	var events []engine.Event
	if err := json.Unmarshal(get(t, ts.URL+"/events"), &events); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event count = %d, want 1", len(events))
	}
	if events[0].Type != engine.EventPaused {
		t.Errorf("event type = %v, want %v", events[0].Type, engine.EventPaused)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	eng, ts := newTestServer(t)
	eng.Frame(1.0 / 60)

	body := string(get(t, ts.URL+"/metrics"))
	for _, name := range []string{
		"orrery_simulated_date_seconds",
		"orrery_frames_total",
		"orrery_paused",
		"orrery_body_heliocentric_distance_au",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metric %q missing from scrape output", name)
		}
	}
}
