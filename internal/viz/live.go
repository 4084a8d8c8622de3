package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/engine"
	"github.com/san-kum/galaxy/internal/export"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	moveStep        = 2
	eccStep         = 8
	reticleArm      = 10
	reticleColor    = 0xFF
	maxGIFFrames    = 600
	gifPath         = "galaxy.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2).Background(lipgloss.Color("#0a0a0a"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives an engine at the display refresh rate and draws the field,
// the actors and the reticle on a braille canvas.
type Model struct {
	engine        *engine.Engine
	name          string
	canvas        *Canvas
	interval      time.Duration
	pending       engine.Input
	last          engine.Frame
	running       bool
	spawned       int
	declined      int
	litHistory    []float64
	infectHistory []float64
	recorder      *export.GIFRecorder
	recording     bool
	status        string
	showHelp      bool
}

// NewModel wraps e; refreshRate is in refreshes per second.
func NewModel(e *engine.Engine, name string, refreshRate int) Model {
	if refreshRate <= 0 {
		refreshRate = 60
	}
	m := Model{
		engine:        e,
		name:          name,
		canvas:        NewCanvas(width, height),
		interval:      time.Second / time.Duration(refreshRate),
		running:       true,
		litHistory:    make([]float64, 0, historyCapacity),
		infectHistory: make([]float64, 0, historyCapacity),
		recorder:      export.NewGIFRecorder(2, maxGIFFrames),
	}
	m.draw()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update turns key presses into input for the next refresh and steps the
// engine on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.toggleRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "left", "h":
			m.pending.DX = -moveStep
		case "right", "l":
			m.pending.DX = moveStep
		case "up", "k":
			m.pending.DY = -moveStep
		case "down", "j":
			m.pending.DY = moveStep
		case "a":
			m.requestSpawn(actor.Guardian)
		case "b":
			m.requestSpawn(actor.Gardener)
		case "e":
			m.requestSpawn(actor.Enemy)
		case "+", "=":
			m.pending.EccentricityDelta = eccStep
		case "-", "_":
			m.pending.EccentricityDelta = -eccStep
		case "g":
			m.toggleRecording()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.running && m.recording {
			m.recorder.Capture(m.engine.Surface())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) requestSpawn(kind actor.Kind) {
	m.pending.Spawn = true
	m.pending.Kind = kind
}

// step runs one refresh with the pending input and records history.
func (m *Model) step() {
	f := m.engine.Refresh(m.pending)
	m.pending = engine.Input{}
	m.last = f
	if f.Spawned {
		m.spawned++
	}
	if f.Declined {
		m.declined++
	}

	w, h := m.engine.Size()
	m.litHistory = pushHistory(m.litHistory, float64(m.engine.Lit())/float64(w*h))
	m.infectHistory = pushHistory(m.infectHistory, m.infectedRatio())
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) infectedRatio() float64 {
	if m.engine.Rows() == 0 {
		return 0
	}
	return float64(m.engine.InfectedRows()) / float64(m.engine.Rows())
}

func (m *Model) reset() {
	m.engine.Reset()
	m.pending = engine.Input{}
	m.last = engine.Frame{}
	m.spawned, m.declined = 0, 0
	m.litHistory = m.litHistory[:0]
	m.infectHistory = m.infectHistory[:0]
	m.status = "reset"
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(gifPath); err != nil {
		log.Printf("viz: save gif: %v", err)
		m.status = "gif failed: " + err.Error()
	} else {
		log.Printf("viz: saved %d frames to %s", n, gifPath)
		m.status = fmt.Sprintf("saved %d frames to %s", n, gifPath)
	}
	m.recorder.Reset()
}

// toDot maps a screen pixel to a canvas sub-pixel.
func (m *Model) toDot(px, py int) (int, int) {
	w, h := m.engine.Size()
	dw, dh := m.canvas.Dots()
	return px * dw / w, py * dh / h
}

// draw repaints the canvas from the framebuffer, then overlays actors and
// the reticle.
func (m *Model) draw() {
	m.canvas.Clear()
	dw, dh := m.canvas.Dots()
	m.canvas.Blit(m.engine.Surface().Downsample(dw, dh))

	th := CurrentTheme
	for _, s := range m.last.Sprites {
		if !s.Visible {
			continue
		}
		x, y := m.toDot(int(s.X), int(s.Y))
		glyph, color := spriteGlyph(s, th)
		m.canvas.Mark(x, y, glyph, lipgloss.NewStyle().Foreground(color).Bold(true))
	}

	t := m.engine.Actors().Reticle().Transform()
	cx, cy := m.engine.Reticle()
	ux := int(t.A * reticleArm >> 8)
	uy := int(t.C * reticleArm >> 8)
	px, py := int(cx), int(cy)
	x0, y0 := m.toDot(px-ux, py-uy)
	x1, y1 := m.toDot(px+ux, py+uy)
	m.canvas.DrawLine(x0, y0, x1, y1, reticleColor)
	x0, y0 = m.toDot(px+uy, py-ux)
	x1, y1 = m.toDot(px-uy, py+ux)
	m.canvas.DrawLine(x0, y0, x1, y1, reticleColor)
}

func spriteGlyph(s actor.Sprite, th Theme) (rune, lipgloss.Color) {
	switch s.Kind {
	case actor.Guardian:
		return '◆', th.Guardian
	case actor.Gardener:
		return '✿', th.Gardener
	}
	if s.Infecting {
		return '✕', th.Enemy
	}
	return '○', th.Muted
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	th := CurrentTheme
	header := lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1)
	metric := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)

	canvasView := canvasStyle.Render(m.canvas.Render(cellStyle))

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper("galaxy · "+m.name)) + "\n")

	status := StatusRunning.Render("● RUNNING")
	if !m.running {
		status = StatusPaused.Render("❚❚ PAUSED")
	}
	if m.recording {
		status += "  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	}
	s.WriteString(status + "\n\n")

	if len(m.litHistory) > 1 {
		lit := make([]float64, len(m.litHistory))
		for i, v := range m.litHistory {
			lit[i] = v * 100
		}
		chart := asciigraph.Plot(lit, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("lit %"))
		s.WriteString(lipgloss.NewStyle().Foreground(th.Secondary).Inherit(graphStyle).Render(chart) + "\n")
	}

	cfg := m.engine.Config()
	actors := m.engine.Actors()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Refresh", fmt.Sprintf("%d", m.engine.RefreshCount()))
	row("Frames", fmt.Sprintf("%d", m.engine.FieldFrames()))
	w, h := m.engine.Size()
	row("Lit", metric.Render(fmt.Sprintf("%d", m.engine.Lit()))+fmt.Sprintf(" / %d", w*h))
	ratio := m.infectedRatio()
	row("Infected", ProgressBar(ratio, 14)+fmt.Sprintf(" %3.0f%%", ratio*100))
	row("", SparklineChart(m.infectHistory, 24))
	row("Enemies", fmt.Sprintf("%d / %d", actors.Count(actor.Enemy), cfg.Actors.EnemyCapacity))
	row("Guardians", fmt.Sprintf("%d", actors.Count(actor.Guardian)))
	row("Gardeners", fmt.Sprintf("%d", actors.Count(actor.Gardener)))
	row("Workers", fmt.Sprintf("%d / %d", actors.Count(actor.Guardian)+actors.Count(actor.Gardener), cfg.Actors.WorkerCapacity))
	row("Ecc", fmt.Sprintf("%d", actors.Eccentricity()))
	row("Cooldown", fmt.Sprintf("%d", m.engine.Cooldown()))
	row("Spawned", fmt.Sprintf("%d (%d declined)", m.spawned, m.declined))
	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Accent).Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nA/B/E:Spawn ←↑↓→:Move\nT:Theme  G:Record ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Arrows/HJKL - Move reticle          ║
║  A           - Spawn guardian        ║
║  B           - Spawn gardener        ║
║  E           - Spawn enemy           ║
║  + / -       - Orbit eccentricity    ║
║  Space       - Pause/Resume          ║
║  R           - Reset field           ║
║  G           - Toggle GIF recording  ║
║  T           - Cycle themes          ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝`

// Run starts the live view in the alternate screen.
func Run(e *engine.Engine, name string, refreshRate int) error {
	_, err := tea.NewProgram(NewModel(e, name, refreshRate), tea.WithAltScreen()).Run()
	return err
}
