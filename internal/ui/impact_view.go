package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/impact"
)

// demoFlightDays is how far ahead of the current simulated date the demo
// asteroid is aimed.
const demoFlightDays = 90

// demoStart is where the demo asteroid drops in from: out past the belt,
// above the orbital plane.
var demoStart = astro.Vec3{X: -4.2, Y: 2.8, Z: 1.6}

// ImpactModel renders the asteroid flight: trail, countdown, and the
// detonation sequence.
type ImpactModel struct {
	eng *engine.Engine

	width  int
	height int

	lastErr error
}

// NewImpactModel creates the impact view for an engine.
func NewImpactModel(eng *engine.Engine) ImpactModel {
	return ImpactModel{eng: eng}
}

// SetSize updates the viewport size.
func (m ImpactModel) SetSize(width, height int) ImpactModel {
	m.width = width
	m.height = height
	return m
}

// Update handles input messages.
func (m ImpactModel) Update(msg tea.Msg) (ImpactModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			date := m.eng.Snapshot().Sim.Date
			m.lastErr = m.eng.ConfigureImpact(impact.Config{
				StartPosition: demoStart,
				ImpactDate:    date.AddDate(0, 0, demoFlightDays),
			})
		case "x":
			m.eng.ResetImpact()
			m.lastErr = nil
		}
	}
	return m, nil
}

// View renders the flight panel next to a top-down plot of the trail.
func (m ImpactModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for the impact view"
	}

	panel := m.renderPanel()
	plot := m.buildPlot(m.width-lipgloss.Width(panel)-2, m.height)
	return lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", plot)
}

func (m ImpactModel) renderPanel() string {
	snap := m.eng.Snapshot()
	impactState := snap.Impact

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("60")).
		Padding(0, 1).
		Width(36)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("✦ ASTEROID FLIGHT"))
	b.WriteString("\n\n")

	switch {
	case !impactState.Active:
		b.WriteString(dimStyle.Render("No flight armed."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press "))
		b.WriteString(valueStyle.Render("a"))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" to aim a rock at Earth\n%d days out.", demoFlightDays)))

	case impactState.Impacted:
		b.WriteString(alertStyle.Render("IMPACT"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Active effects  "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", impactState.ActiveEffects)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press "))
		b.WriteString(valueStyle.Render("x"))
		b.WriteString(dimStyle.Render(" to reset."))

	default:
		days := impactState.DaysToImpact
		b.WriteString(dimStyle.Render("Time to impact  "))
		if days < 10 {
			b.WriteString(alertStyle.Render(fmt.Sprintf("%.1f days", days)))
		} else {
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f days", days)))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Progress        "))
		b.WriteString(valueStyle.Render(progressBar(impactState.Progress, 14)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Entry heat      "))
		b.WriteString(valueStyle.Render(progressBar(impactState.Heat, 14)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Position        "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f AU out", impactState.Position.Norm())))
	}

	if m.lastErr != nil {
		b.WriteString("\n\n")
		b.WriteString(alertStyle.Render(m.lastErr.Error()))
	}

	return border.Render(b.String())
}

func progressBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// buildPlot draws the inner system with the flight path at a fixed
// linear scale; the flight is the star of this view, not the camera.
func (m ImpactModel) buildPlot(plotW, plotH int) string {
	if plotW < 20 {
		plotW = 20
	}
	if plotH < 5 {
		plotH = 5
	}

	grid := make([][]rune, plotH)
	for y := range grid {
		grid[y] = make([]rune, plotW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	centerX := plotW / 2
	centerY := plotH / 2
	// Fit ~5.5 AU of linear radius in the smaller half-dimension.
	displayScale := float64(minInt(centerX, centerY*2)) * 0.9 / 5.5

	project := func(p astro.Vec3) (int, int) {
		return centerX + int(p.X*displayScale),
			centerY - int(p.Y*displayScale*0.5)
	}

	system := m.eng.System()
	for _, b := range system.Bodies() {
		if b.Def.OrbitRadius == 0 || b.Def.OrbitRadius > 5.5 {
			continue
		}
		drawCircle(grid, centerX, centerY, b.Def.OrbitRadius*displayScale, '·')
	}

	tr := m.eng.Trajectory()
	if tr.Active() {
		for _, p := range tr.Trail() {
			x, y := project(p.Position)
			if x >= 0 && x < plotW && y >= 0 && y < plotH && grid[y][x] == ' ' {
				grid[y][x] = '∙'
			}
		}
	}

	for _, b := range system.Bodies() {
		if b.Def.OrbitRadius > 5.5 {
			continue
		}
		x, y := project(b.Position())
		if x >= 0 && x < plotW && y >= 0 && y < plotH {
			grid[y][x] = b.Def.Glyph
		}
	}

	if tr.Active() && !tr.Impacted() {
		x, y := project(tr.Position())
		if x >= 0 && x < plotW && y >= 0 && y < plotH {
			grid[y][x] = '✦'
		}
	}
	for _, e := range tr.Effects().Live() {
		if !e.Activated() {
			continue
		}
		if e.Kind == impact.EffectShockwave {
			x, y := project(e.Center)
			drawCircle(grid, x, y, e.Radius*displayScale, '∘')
		}
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	rockStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("173")).Bold(true)
	fxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	var b strings.Builder
	for _, row := range grid {
		for _, ch := range row {
			switch ch {
			case ' ':
				b.WriteRune(ch)
			case '·', '∙':
				b.WriteString(dimStyle.Render(string(ch)))
			case '☉':
				b.WriteString(sunStyle.Render(string(ch)))
			case '✦':
				b.WriteString(rockStyle.Render(string(ch)))
			case '∘':
				b.WriteString(fxStyle.Render(string(ch)))
			default:
				b.WriteString(planetStyle.Render(string(ch)))
			}
		}
		b.WriteRune('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
