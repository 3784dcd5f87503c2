package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/impact"
	"github.com/litescript/ls-orrery/internal/scene"
)

// headerLines is the number of rows the logo and tab bar occupy above the
// canvas, used to translate mouse coordinates into canvas space.
const headerLines = 12

// overviewDistance is the camera distance that maps to 1.0x zoom.
const overviewDistance = 36.0

// OrreryModel renders the live solar system with the flying camera.
type OrreryModel struct {
	eng *engine.Engine

	width  int
	height int

	showStars bool
	highlight int // keyboard focus index into selectable bodies, -1 none

	// pickCells maps canvas cells to pick target IDs, rebuilt per render.
	pickCells map[[2]int]string
}

// NewOrreryModel creates the orrery view for an engine.
func NewOrreryModel(eng *engine.Engine) OrreryModel {
	return OrreryModel{
		eng:       eng,
		showStars: true,
		highlight: -1,
		pickCells: make(map[[2]int]string),
	}
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			m.cycleHighlight(+1)
		case "N":
			m.cycleHighlight(-1)
		case "enter":
			if name := m.highlightedBody(); name != "" {
				m.eng.Select(name)
			}
		case "esc":
			if m.eng.Snapshot().InfoVisible {
				m.eng.CloseInfo()
			} else {
				m.eng.Deselect()
			}
		case "t":
			m.eng.ToggleCloseBehavior()
		case "s":
			m.showStars = !m.showStars
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleClick(msg.X, msg.Y-headerLines)
		}
	}
	return m, nil
}

// cycleHighlight moves the keyboard focus through the authored bodies.
func (m *OrreryModel) cycleHighlight(dir int) {
	n := len(scene.Bodies)
	if n == 0 {
		return
	}
	m.highlight += dir
	if m.highlight >= n {
		m.highlight = -1 // wrap through "nothing highlighted"
	}
	if m.highlight < -1 {
		m.highlight = n - 1
	}
}

func (m OrreryModel) highlightedBody() string {
	if m.highlight < 0 || m.highlight >= len(scene.Bodies) {
		return ""
	}
	return scene.Bodies[m.highlight].Name
}

// handleClick resolves a canvas click through the pick registry. An exact
// cell hit wins; otherwise the nearest registered cell within two cells
// is used, and a miss releases the selection.
func (m *OrreryModel) handleClick(x, y int) {
	if target, ok := m.pickCells[[2]int{x, y}]; ok {
		m.eng.SelectTarget(target)
		return
	}

	best := ""
	bestD := math.MaxFloat64
	for cell, target := range m.pickCells {
		dx := float64(cell[0] - x)
		dy := float64(cell[1]-y) * 2 // cells are taller than wide
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = target
		}
	}
	if best != "" && bestD <= 16 {
		m.eng.SelectTarget(best)
		return
	}
	m.eng.Deselect()
}

// View renders the orrery canvas with the HUD line, joined with the info
// card when one is showing.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for the orrery view"
	}

	canvasW := m.width
	snap := m.eng.Snapshot()
	var card string
	if snap.InfoVisible {
		card = m.renderInfoCard(snap)
		canvasW = m.width - lipgloss.Width(card)
		if canvasW < 20 {
			canvasW = 20
		}
	}

	canvas := m.buildCanvas(canvasW, m.height-2)
	hud := m.renderHUD(snap)

	view := canvas
	if card != "" {
		view = lipgloss.JoinHorizontal(lipgloss.Top, canvas, card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, hud)
}

// buildCanvas renders the scene to a character grid. The view is centered
// on whatever the camera is interested in, zoomed by its actual distance,
// so fly-ins read as smooth zooms.
func (m OrreryModel) buildCanvas(canvasW, canvasH int) string {
	if canvasH < 5 {
		canvasH = 5
	}

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	// The map is shared with the stored model, so clear it in place
	// rather than replacing it.
	for k := range m.pickCells {
		delete(m.pickCells, k)
	}

	system := m.eng.System()
	cam := m.eng.Camera()

	lookAt := astro.Vec3{}
	if sel := cam.Selected(); sel != "" {
		if pos, ok := system.BodyPosition(sel); ok {
			lookAt = pos
		}
	}

	dist := astro.Dist(cam.Position(), lookAt)
	if dist < 0.5 {
		dist = 0.5
	}
	zoom := overviewDistance / dist

	cfg := astro.ProjectionConfig{Scale: 1.0, Mode: astro.ScaleLogR}
	if zoom > 3 {
		// Close framing: the log curve would crush moon orbits.
		cfg.Mode = astro.ScaleLinear
	}

	centerX := canvasW / 2
	centerY := canvasH / 2
	maxDisplayR := float64(minInt(centerX, centerY*2)) * 0.9
	displayScale := maxDisplayR / 1.5 * zoom

	project := func(p astro.Vec3) (int, int) {
		proj := astro.ProjectEclipticTopDown(p.Sub(lookAt), cfg)
		return centerX + int(proj.X*displayScale),
			centerY - int(proj.Y*displayScale*0.5)
	}

	if m.showStars {
		m.drawStarfield(grid, project)
	}
	m.drawOrbitRings(grid, system, lookAt, cfg, displayScale, centerX, centerY)
	m.drawBelt(grid, system, project)
	m.drawTrajectory(grid, project)
	m.drawBodies(grid, system, cam, project)
	m.drawEffects(grid, project, displayScale)

	return m.renderGrid(grid)
}

func (m OrreryModel) drawStarfield(grid [][]rune, project func(astro.Vec3) (int, int)) {
	h := len(grid)
	w := len(grid[0])

	for _, star := range astro.DefaultStarCatalog().Stars {
		proj := astro.ProjectStarEclipticTopDown(star.RAdeg, star.DecDeg, astro.StarShellRadiusAU,
			astro.ProjectionConfig{Scale: 1.0, Mode: astro.ScaleLogR})

		// The shell ignores pan and zoom: stars at infinity don't move
		// with the camera, they just fill the frame.
		sx := w/2 + int(proj.X*float64(w)/4.5)
		sy := h/2 - int(proj.Y*float64(h)/4.5)
		if sx < 0 || sx >= w || sy < 0 || sy >= h || grid[sy][sx] != ' ' {
			continue
		}
		if g := starGlyph(star.Mag); g != ' ' {
			grid[sy][sx] = g
		}
	}
}

func starGlyph(mag float64) rune {
	switch {
	case mag <= 1.0:
		return '∗'
	case mag <= 2.5:
		return '·'
	case mag <= 3.5:
		return '˙'
	default:
		return ' '
	}
}

func (m OrreryModel) drawOrbitRings(grid [][]rune, system *scene.System, lookAt astro.Vec3,
	cfg astro.ProjectionConfig, displayScale float64, centerX, centerY int) {

	// Rings are circles around the sun; project the sun's screen position
	// once and sweep each authored orbit radius around it.
	sunProj := astro.ProjectEclipticTopDown(lookAt.Scale(-1), cfg)
	cx := centerX + int(sunProj.X*displayScale)
	cy := centerY - int(sunProj.Y*displayScale*0.5)

	for _, b := range system.Bodies() {
		if b.Def.OrbitRadius == 0 {
			continue
		}
		proj := astro.ProjectEclipticTopDown(astro.Vec3{X: b.Def.OrbitRadius}, cfg)
		drawCircle(grid, cx, cy, proj.X*displayScale, '·')
	}
}

func drawCircle(grid [][]rune, cx, cy int, r float64, glyph rune) {
	if r < 1 {
		return
	}
	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(r*math.Cos(theta))
		y := cy - int(r*math.Sin(theta)*0.5)
		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
			grid[y][x] = glyph
		}
	}
}

func (m OrreryModel) drawBelt(grid [][]rune, system *scene.System, project func(astro.Vec3) (int, int)) {
	h := len(grid)
	w := len(grid[0])

	for _, a := range system.Belt() {
		x, y := project(a.Pos)
		if x < 0 || x >= w || y < 0 || y >= h || grid[y][x] != ' ' {
			continue
		}
		grid[y][x] = '˙'
	}
}

func (m OrreryModel) drawBodies(grid [][]rune, system *scene.System, cam *camera.Machine,
	project func(astro.Vec3) (int, int)) {

	h := len(grid)
	w := len(grid[0])
	highlighted := m.highlightedBody()

	for _, b := range system.Bodies() {
		x, y := project(b.Position())
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}

		grid[y][x] = b.Def.Glyph
		m.registerPick(scene.SurfaceTarget(b.Def.Name), x, y)
		if b.Def.HasAtmosphere {
			m.registerAtmosphere(grid, b.Def.Name, x, y)
		}

		for _, moon := range b.Moons {
			mx, my := project(moon.Pos)
			if mx < 0 || mx >= w || my < 0 || my >= h {
				continue
			}
			if grid[my][mx] == ' ' || grid[my][mx] == '·' {
				grid[my][mx] = '∘'
			}
		}

		switch b.Def.Name {
		case cam.Selected():
			drawLabel(grid, x+2, y, "◄ "+b.Def.Name)
		case highlighted:
			drawLabel(grid, x+2, y, "‹ "+b.Def.Name)
		}
	}
}

// registerAtmosphere registers the ring of cells around a planet glyph so
// clicks on the haze still land on the planet.
func (m OrreryModel) registerAtmosphere(grid [][]rune, body string, x, y int) {
	h := len(grid)
	w := len(grid[0])
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			m.registerPick(scene.AtmosphereTarget(body), nx, ny)
		}
	}
}

func (m OrreryModel) registerPick(target string, x, y int) {
	if _, taken := m.pickCells[[2]int{x, y}]; !taken {
		m.pickCells[[2]int{x, y}] = target
	}
}

func (m OrreryModel) drawTrajectory(grid [][]rune, project func(astro.Vec3) (int, int)) {
	tr := m.eng.Trajectory()
	if !tr.Active() {
		return
	}
	h := len(grid)
	w := len(grid[0])

	for _, p := range tr.Trail() {
		x, y := project(p.Position)
		if x < 0 || x >= w || y < 0 || y >= h || grid[y][x] != ' ' {
			continue
		}
		grid[y][x] = '·'
	}

	if !tr.Impacted() {
		x, y := project(tr.Position())
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = '✦'
		}
	}
}

func (m OrreryModel) drawEffects(grid [][]rune, project func(astro.Vec3) (int, int), displayScale float64) {
	h := len(grid)
	w := len(grid[0])

	for _, e := range m.eng.Trajectory().Effects().Live() {
		if !e.Activated() {
			continue
		}
		switch e.Kind {
		case impact.EffectFlash:
			x, y := project(e.Center)
			if x >= 0 && x < w && y >= 0 && y < h {
				grid[y][x] = '✺'
			}
		case impact.EffectShockwave:
			x, y := project(e.Center)
			drawCircle(grid, x, y, e.Radius*displayScale, '∘')
		default:
			for _, p := range e.Particles {
				x, y := project(p.Pos)
				if x < 0 || x >= w || y < 0 || y >= h || grid[y][x] != ' ' {
					continue
				}
				grid[y][x] = '.'
			}
		}
	}
}

func drawLabel(grid [][]rune, x, y int, text string) {
	if y < 0 || y >= len(grid) {
		return
	}
	w := len(grid[0])
	for i, r := range text {
		cx := x + i
		if cx >= w {
			break
		}
		if cx >= 0 && (grid[y][cx] == ' ' || grid[y][cx] == '·') {
			grid[y][cx] = r
		}
	}
}

func (m OrreryModel) renderGrid(grid [][]rune) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	giantStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	moonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	asteroidStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("173")).Bold(true)
	fxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	var b strings.Builder
	for _, row := range grid {
		for _, ch := range row {
			switch ch {
			case ' ':
				b.WriteRune(ch)
			case '·':
				b.WriteString(dimStyle.Render(string(ch)))
			case '∗', '˙':
				b.WriteString(starStyle.Render(string(ch)))
			case '☉':
				b.WriteString(sunStyle.Render(string(ch)))
			case '•', '●':
				b.WriteString(planetStyle.Render(string(ch)))
			case '◉', '○':
				b.WriteString(giantStyle.Render(string(ch)))
			case '∘':
				b.WriteString(moonStyle.Render(string(ch)))
			case '✦':
				b.WriteString(asteroidStyle.Render(string(ch)))
			case '✺', '.':
				b.WriteString(fxStyle.Render(string(ch)))
			default:
				b.WriteString(labelStyle.Render(string(ch)))
			}
		}
		b.WriteRune('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m OrreryModel) renderHUD(snap engine.Snapshot) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)

	var b strings.Builder
	b.WriteString("  ")
	if snap.Selected != "" {
		b.WriteString(headerStyle.Render("◆ " + snap.Selected))
	} else if name := m.highlightedBody(); name != "" {
		b.WriteString(valueStyle.Render("‹ " + name + " ›"))
	} else {
		b.WriteString(dimStyle.Render("☉ overview"))
	}

	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Camera:"))
	b.WriteString(valueStyle.Render(snap.CameraPhase.String()))

	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Controls:"))
	if snap.ControlsFree {
		b.WriteString(valueStyle.Render("free"))
	} else {
		b.WriteString(valueStyle.Render("held"))
	}

	return b.String()
}

// renderInfoCard builds the side panel shown while a body is focused.
func (m OrreryModel) renderInfoCard(snap engine.Snapshot) string {
	def, ok := scene.BodyDefByName(snap.Selected)
	if !ok {
		return ""
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(0, 1).
		Width(34)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var pos astro.Vec3
	for _, b := range snap.Bodies {
		if b.Name == snap.Selected {
			pos = b.Position
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(string(def.Glyph) + " " + def.Name))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(def.Facts))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Distance  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f AU", pos.Norm())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Radius    "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f km", def.RadiusKm)))
	if len(def.Moons) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Moons     "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", len(def.Moons))))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc: close"))

	return border.Render(b.String())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
