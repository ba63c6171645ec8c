package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/solarsim/internal/assets"
	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
	"github.com/san-kum/solarsim/internal/sim"
)

const (
	statsWidth      = 46
	historyCapacity = 300
	minCanvasWidth  = 20
	minCanvasHeight = 8

	coarseStep  = 0.1
	cameraStep  = 0.15
	sliderWidth = 12
)

type TickMsg time.Time

// AssetsMsg carries the asset loader's result into the update loop.
type AssetsMsg struct{ Result *assets.Result }

// Pauser is implemented by clocks that can stop counting while paused.
type Pauser interface {
	Pause()
	Resume()
}

// Restarter is implemented by clocks that can be rewound to zero.
type Restarter interface {
	Restart()
}

// Model is the control panel and viewport around a frame loop. Each tick
// runs exactly one frame.
type Model struct {
	loop     *sim.Loop
	store    *params.Store
	scene    *Scene
	camera   *OrbitCamera
	clock    Pauser
	interval time.Duration

	controls []params.Control
	selected int
	focus    int
	ids      []kinematics.BodyID
	history  []float64

	running  bool
	showHelp bool
	theme    Theme
	styles   styles

	assetCh <-chan *assets.Result
	assets  *assets.Result
}

// NewModel wires the view to its collaborators. clock may be nil when the
// loop's clock cannot pause.
func NewModel(loop *sim.Loop, store *params.Store, scene *Scene, camera *OrbitCamera, clock Pauser, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	bodies := loop.System().Bodies()
	ids := make([]kinematics.BodyID, len(bodies))
	for i, b := range bodies {
		ids[i] = b.ID
	}
	focus := 0
	for i, id := range ids {
		if id == kinematics.Earth {
			focus = i
		}
	}

	return Model{
		loop:     loop,
		store:    store,
		scene:    scene,
		camera:   camera,
		clock:    clock,
		interval: time.Second / time.Duration(fps),
		controls: []params.Control{params.RotationSpeed, params.OrbitSpeed},
		focus:    focus,
		ids:      ids,
		history:  make([]float64, 0, historyCapacity),
		running:  true,
		theme:    ThemeDeepSpace,
		styles:   newStyles(ThemeDeepSpace),
	}
}

// WithAssets makes the model pick up an asynchronous asset load.
func (m Model) WithAssets(ch <-chan *assets.Result) Model {
	m.assetCh = ch
	return m
}

func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.styles = newStyles(t)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitAssets(ch <-chan *assets.Result) tea.Cmd {
	return func() tea.Msg { return AssetsMsg{Result: <-ch} }
}

func (m Model) Init() tea.Cmd {
	if m.assetCh != nil {
		return tea.Batch(m.tick(), waitAssets(m.assetCh))
	}
	return m.tick()
}

// Update handles input events and runs frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "tab":
			m.selected = (m.selected + 1) % len(m.controls)
		case "up", "k":
			m.store.Nudge(m.control(), coarseStep)
		case "down", "j":
			m.store.Nudge(m.control(), -coarseStep)
		case "right", "l":
			m.store.Nudge(m.control(), params.Step)
		case "left", "h":
			m.store.Nudge(m.control(), -params.Step)
		case "c":
			m.store.ResetCamera()
		case "r":
			m.restart()
		case "a":
			m.camera.Rotate(-cameraStep, 0)
		case "d":
			m.camera.Rotate(cameraStep, 0)
		case "w":
			m.camera.Rotate(0, -cameraStep)
		case "s":
			m.camera.Rotate(0, cameraStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "o":
			m.scene.ToggleOrbits()
		case "f":
			m.focus = (m.focus + 1) % len(m.ids)
			m.history = m.history[:0]
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case AssetsMsg:
		m.applyAssets(msg.Result)
	case TickMsg:
		if m.running {
			f := m.loop.Tick()
			m.record(f)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) control() params.Control { return m.controls[m.selected] }

func (m *Model) togglePause() {
	m.running = !m.running
	if m.clock == nil {
		return
	}
	if m.running {
		m.clock.Resume()
	} else {
		m.clock.Pause()
	}
}

func (m *Model) restart() {
	r, ok := m.clock.(Restarter)
	if !ok {
		return
	}
	r.Restart()
	m.history = m.history[:0]
}

// resize fits the canvas beside the stats panel; braille cells hold 2x4
// sub-pixels so the camera aspect follows the sub-pixel size.
func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 6
	ch := h - 4
	if cw < minCanvasWidth {
		cw = minCanvasWidth
	}
	if ch < minCanvasHeight {
		ch = minCanvasHeight
	}
	m.scene.Resize(cw, ch)
}

func (m *Model) applyAssets(r *assets.Result) {
	if r == nil {
		return
	}
	m.assets = r
	for id, tex := range r.Textures {
		m.scene.SetTextured(id, tex.Loaded())
	}
}

func (m *Model) record(f kinematics.Frame) {
	tr, ok := f.Lookup(m.ids[m.focus])
	if !ok {
		return
	}
	m.history = append(m.history, tr.Position.X)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles
	f := m.scene.Last()
	stats := m.loop.Stats()

	var s strings.Builder
	s.WriteString(st.header.Render("SOLAR SYSTEM") + "\n")
	status := "RUNNING " + AnimatedSpinner(stats.Frames())
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", f.Time)) + "\n")
	s.WriteString(st.label.Render("FPS") + st.value.Render(fmt.Sprintf("%.0f (%.1fms)", stats.FPS(), float64(stats.FrameTime().Microseconds())/1000)) + "\n")
	s.WriteString(st.label.Render("Camera") + st.value.Render(fmt.Sprintf("d=%.1f", m.camera.Distance())) + "\n")
	s.WriteString(st.label.Render("Textures") + m.textureStatus() + "\n")

	s.WriteString("\nCONTROLS\n")
	for i, c := range m.controls {
		lo, hi := c.Bounds()
		v := m.store.Get(c)
		line := fmt.Sprintf("%-9s %s %5.2f", c, SliderBar(v, lo, hi, sliderWidth), v)
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	focus := m.ids[m.focus]
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption(fmt.Sprintf("%s x", focus)),
		)
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if tr, ok := f.Lookup(focus); ok {
		s.WriteString(st.label.Render(string(focus)) +
			st.value.Render(fmt.Sprintf("x=%.2f z=%.2f spin=%.2f", tr.Position.X, tr.Position.Z, tr.Rotation.Y)) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause TAB:Control ↑↓:±0.1 ←→:±0.01\nC:Camera R:Restart F:Focus ?:Help Q:Quit"))
	statsView := st.stats.Render(s.String())
	canvasView := st.canvas.Render(m.scene.Canvas().String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) textureStatus() string {
	if m.assets == nil {
		return m.styles.value.Render("loading…")
	}
	text := fmt.Sprintf("%d/%d", m.assets.Loaded, m.assets.Total())
	if m.assets.Failed > 0 {
		return m.styles.warning.Render(text + fmt.Sprintf(" (%d missing)", m.assets.Failed))
	}
	return m.styles.value.Render(text)
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Tab      - Select control           ║
║  Up/Down  - Adjust control by 0.1    ║
║  Lft/Rgt  - Adjust control by 0.01   ║
║  C        - Reset camera             ║
║  R        - Restart from t=0         ║
║  W/A/S/D  - Orbit camera             ║
║  +/-      - Zoom                     ║
║  O        - Toggle orbit rings       ║
║  F        - Cycle focus body         ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
