package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/engine"
)

func newTestModel() Model {
	m := New(engine.New(engine.DefaultConfig()), 60)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := New(engine.New(engine.DefaultConfig()), 60)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q, want Initializing...", got)
	}
}

func TestModel_GlobalKeys(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(Model)
	if !m.eng.Snapshot().Sim.Paused {
		t.Error("space did not pause the clock")
	}

	updated, _ = m.Update(keyMsg("]"))
	m = updated.(Model)
	if got := m.eng.Snapshot().SpeedLabel; got != "+2 DAYS/S" {
		t.Errorf("speed after ] = %q, want +2 DAYS/S", got)
	}

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	if m.viewMode != ViewImpact {
		t.Errorf("viewMode after tab = %v, want %v", m.viewMode, ViewImpact)
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q did not produce a quit command")
	}
}

func TestModel_FrameMsgAdvancesEngine(t *testing.T) {
	m := newTestModel()

	now := time.Now()
	updated, cmd := m.Update(FrameMsg(now))
	m = updated.(Model)
	if cmd == nil {
		t.Error("frame did not schedule the next tick")
	}
	if m.snapshot.Frames != 1 {
		t.Errorf("frames after one FrameMsg = %d, want 1", m.snapshot.Frames)
	}

	// A measured interval outside the plausible range falls back to the
	// configured rate instead of jumping the simulation.
	updated, _ = m.Update(FrameMsg(now.Add(5 * time.Second)))
	m = updated.(Model)
	if m.snapshot.Frames != 2 {
		t.Errorf("frames = %d, want 2", m.snapshot.Frames)
	}
	if got := m.snapshot.Sim.Date; got.IsZero() {
		t.Error("snapshot date is zero after frames")
	}
}

func TestModel_ViewShowsClockAndTabs(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(FrameMsg(time.Now()))
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Terminal Orrery", "[1] Orrery", "[2] Impact", "+1 DAY/S"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestOrreryModel_ClickSelectsBody(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	m := NewOrreryModel(eng).SetSize(120, 38)
	m.View() // populate pick cells

	var cell [2]int
	found := false
	for c, target := range m.pickCells {
		if target == "Earth/surface" {
			cell, found = c, true
			break
		}
	}
	if !found {
		t.Fatal("Earth surface target not registered during render")
	}

	m, _ = m.Update(tea.MouseMsg{
		X:      cell[0],
		Y:      cell[1] + headerLines,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if got := eng.Snapshot().Selected; got != "Earth" {
		t.Errorf("Selected after click = %q, want Earth", got)
	}
}

func TestOrreryModel_HighlightAndEnterSelects(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	m := NewOrreryModel(eng).SetSize(120, 38)

	m, _ = m.Update(keyMsg("n")) // Sun
	m, _ = m.Update(keyMsg("n")) // Mercury
	if got := m.highlightedBody(); got != "Mercury" {
		t.Fatalf("highlighted = %q, want Mercury", got)
	}

	m, _ = m.Update(keyMsg("enter"))
	if got := eng.Snapshot().Selected; got != "Mercury" {
		t.Errorf("Selected after enter = %q, want Mercury", got)
	}
}

func TestOrreryModel_EscClosesInfoThenReleases(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	m := NewOrreryModel(eng).SetSize(120, 38)

	if !eng.Select("Mars") {
		t.Fatal("Select(Mars) failed")
	}
	for i := 0; i < 600; i++ {
		eng.Frame(1.0 / 60)
		if eng.Snapshot().CameraPhase == camera.ShowingInfo {
			break
		}
	}
	if got := eng.Snapshot().CameraPhase; got != camera.ShowingInfo {
		t.Fatalf("camera never reached the info phase, stuck at %v", got)
	}

	m, _ = m.Update(keyMsg("esc"))
	if got := eng.Snapshot().CameraPhase; got != camera.ZoomingOut {
		t.Fatalf("phase after first esc = %v, want %v", got, camera.ZoomingOut)
	}

	m, _ = m.Update(keyMsg("esc"))
	if got := eng.Snapshot().Selected; got != "" {
		t.Errorf("selection after second esc = %q, want released", got)
	}
}

func TestOrreryModel_ViewShowsInfoCard(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	m := NewOrreryModel(eng).SetSize(120, 38)

	eng.Select("Jupiter")
	for i := 0; i < 600; i++ {
		eng.Frame(1.0 / 60)
		if eng.Snapshot().InfoVisible {
			break
		}
	}

	view := m.View()
	if !strings.Contains(view, "Jupiter") {
		t.Error("info card missing body name")
	}
	if !strings.Contains(view, "Galilean") {
		t.Error("info card missing facts blurb")
	}
}

func TestImpactModel_ArmAndReset(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	m := NewImpactModel(eng).SetSize(120, 38)

	if !strings.Contains(m.View(), "No flight armed") {
		t.Error("idle view missing arm hint")
	}

	m, _ = m.Update(keyMsg("a"))
	if m.lastErr != nil {
		t.Fatalf("arming failed: %v", m.lastErr)
	}
	if !eng.Snapshot().Impact.Active {
		t.Fatal("flight not armed after a")
	}
	if !strings.Contains(m.View(), "Time to impact") {
		t.Error("armed view missing countdown")
	}

	m, _ = m.Update(keyMsg("x"))
	if eng.Snapshot().Impact.Active {
		t.Error("flight still armed after x")
	}
}
