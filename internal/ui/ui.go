// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrrery ViewMode = iota
	ViewImpact
	ViewHelp
)

// Msg types for Bubble Tea
type (
	// FrameMsg drives one simulation frame per render tick.
	FrameMsg time.Time

	// AnimTickMsg triggers slow shimmer/spinner updates.
	AnimTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	eng *engine.Engine

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	fps       int
	lastFrame time.Time

	orrery OrreryModel
	impact ImpactModel

	snapshot engine.Snapshot
}

// New creates a new root UI model driving the given engine at fps
// frames per second.
func New(eng *engine.Engine, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		eng:    eng,
		fps:    fps,
		orrery: NewOrreryModel(eng),
		impact: NewImpactModel(eng),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "o":
			m.viewMode = ViewOrrery
		case "2", "i":
			m.viewMode = ViewImpact
		case "3", "?":
			m.viewMode = ViewHelp
		case "tab":
			m.viewMode = (m.viewMode + 1) % 3

		case " ":
			m.eng.TogglePause()
		case "[":
			m.eng.StepSpeed(-1)
		case "]":
			m.eng.StepSpeed(+1)

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.impact = m.impact.SetSize(msg.Width, contentHeight)

	case FrameMsg:
		cmds = append(cmds, m.frameCmd())

		// Measure the real interval so motion stays smooth when the
		// terminal can't hold the target rate.
		now := time.Time(msg)
		dt := 1.0 / float64(m.fps)
		if !m.lastFrame.IsZero() {
			measured := now.Sub(m.lastFrame).Seconds()
			if measured > 0 && measured < 0.25 {
				dt = measured
			}
		}
		m.lastFrame = now

		m.eng.Frame(dt)
		m.snapshot = m.eng.Snapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrrery:
		m.orrery, cmd = m.orrery.Update(msg)
	case ViewImpact:
		m.impact, cmd = m.impact.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrrery:
		content = m.orrery.View()
	case ViewImpact:
		content = m.impact.View()
	case ViewHelp:
		content = m.renderHelp()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗       ██████╗ ██████╗ ██████╗ ███████╗██████╗ ██╗   ██╗`,
		`  ██║     ██╔════╝      ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗╚██╗ ██╔╝`,
		`  ██║     ███████╗█████╗██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝ ╚████╔╝ `,
		`  ██║     ╚════██║╚════╝██║   ██║██╔══██╗██╔══██╗██╔══╝  ██╔══██╗  ╚██╔╝  `,
		`  ███████╗███████║      ╚██████╔╝██║  ██║██║  ██║███████╗██║  ██║   ██║   `,
		`  ╚══════╝╚══════╝       ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝   `,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Solar System · Terminal Orrery"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2026 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Deep blue on the left warming to solar gold on the right.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Violet (#8B5CF6) -> Amber (#F59E0B)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(245-139)
		g = 92 + t*(158-92)
		b = 246 + t*(11-246)
	}

	// Brighter at the top, darker toward the bottom
	brightness := 1.0 - yRatio*0.45
	ri := clamp8(int(r * brightness))
	gi := clamp8(int(g * brightness))
	bi := clamp8(int(b * brightness))

	return fmt.Sprintf("#%02X%02X%02X", ri, gi, bi)
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Orrery", "[2] Impact", "[3] Help"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	date := m.snapshot.Sim.Date.Format("2006-01-02")
	var clock string
	if m.snapshot.Sim.Paused {
		clock = pausedStyle.Render("▮▮ PAUSED") + dimStyle.Render(" · "+date)
	} else {
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		spinner := spinnerFrames[m.animTick%len(spinnerFrames)]
		clock = accentStyle.Render(spinner) + dimStyle.Render(" "+date)
	}

	speed := accentStyle.Render(m.snapshot.SpeedLabel)

	var help string
	switch m.viewMode {
	case ViewImpact:
		help = dimStyle.Render("a: arm asteroid | x: reset | [/]: speed | space: pause")
	default:
		help = dimStyle.Render("click/n/N: select | enter: focus | esc: close | [/]: speed | space: pause")
	}

	return "  " + clock + "  " + speed + "  " + dimStyle.Render("|") + "  " + help
}

func (m Model) renderHelp() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	rows := [][2]string{
		{"1/2/3, tab", "switch view"},
		{"space", "pause / resume the simulation clock"},
		{"[ and ]", "step the speed mode down / up"},
		{"n / N", "cycle focus across bodies"},
		{"enter", "focus the highlighted body"},
		{"click", "focus the body under the cursor"},
		{"esc", "dismiss the info card, then release focus"},
		{"t", "toggle the close behavior (zoom out / track)"},
		{"s", "toggle the background starfield"},
		{"a", "arm the demo asteroid (Impact view)"},
		{"x", "reset the asteroid flight (Impact view)"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("    ")
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-12s", row[0])))
		b.WriteString(dimStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) frameCmd() tea.Cmd {
	interval := time.Second / time.Duration(m.fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
