package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/sim"
)

const (
	canvasWidth     = 48
	canvasHeight    = 18
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(52)
)

type TickMsg time.Time

// NamedReach is a reach the live view can cycle to.
type NamedReach struct {
	Name  string
	Reach sim.Reach
}

// Model plays reaches through the engine at the configured frame rate.
type Model struct {
	eng     *engine.Engine
	reaches []NamedReach
	current int
	cfg     sim.Config

	path    sim.Path
	t       float64
	frame   engine.Frame
	err     error
	running bool

	canvas      *Canvas
	view        *TableView
	realTrail   []geom.Vec3
	virtTrail   []geom.Vec3
	progressLog []float64
}

func NewModel(eng *engine.Engine, reaches []NamedReach, cfg sim.Config) Model {
	m := Model{
		eng:     eng,
		reaches: reaches,
		cfg:     cfg,
		running: true,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
	l := eng.Layout()
	pts := []geom.Vec3{l.Shoulder, l.HandCenter, l.ElbowCenter}
	for _, p := range l.Hands {
		pts = append(pts, p)
	}
	for _, p := range l.Elbows {
		pts = append(pts, p)
	}
	m.view = NewTableView(m.canvas, 0.08, pts...)
	m.restart()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.cfg.Dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "n":
			if len(m.reaches) > 0 {
				m.current = (m.current + 1) % len(m.reaches)
			}
			m.restart()
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// restart selects the current reach's trial and rewinds the limb.
func (m *Model) restart() {
	m.t = 0
	m.realTrail = m.realTrail[:0]
	m.virtTrail = m.virtTrail[:0]
	m.progressLog = m.progressLog[:0]
	m.err = nil
	if len(m.reaches) == 0 {
		return
	}

	r := m.reaches[m.current].Reach
	path, err := sim.PlanPath(m.eng.Layout(), r.Selection, m.cfg.Overshoot)
	if err != nil {
		m.err = err
		return
	}
	m.path = path
	m.err = m.eng.SelectTrial(r.Selection, r.Trial, m.path.Pose(0, m.cfg.Forward))
}

// step advances the synthetic limb by one frame and ticks the engine.
func (m *Model) step() {
	// hold at the target for half a second before starting over
	if m.t > m.cfg.Duration+0.5 {
		m.restart()
	}
	s := sim.MinimumJerk(m.t / m.cfg.Duration)
	m.frame = m.eng.Tick(m.cfg.Dt, m.path.Inputs(s, m.eng.Config().Dominant))
	m.t += m.cfg.Dt

	m.realTrail = appendCapped(m.realTrail, m.frame.RealHand)
	m.virtTrail = appendCapped(m.virtTrail, m.frame.VirtualHand)
	m.progressLog = append(m.progressLog, m.frame.HandProgress)
	if len(m.progressLog) > historyCapacity {
		m.progressLog = m.progressLog[1:]
	}
}

func appendCapped(trail []geom.Vec3, p geom.Vec3) []geom.Vec3 {
	trail = append(trail, p)
	if len(trail) > historyCapacity {
		trail = trail[1:]
	}
	return trail
}

func (m *Model) draw() {
	m.canvas.Clear()
	l := m.eng.Layout()

	for _, p := range l.Hands {
		m.view.Cross(p)
	}
	for _, p := range l.Elbows {
		m.view.Cross(p)
	}
	m.view.Cross(l.HandCenter)
	m.view.Cross(l.ElbowCenter)

	for _, p := range m.realTrail {
		m.view.Dot(p)
	}
	for i := 1; i < len(m.virtTrail); i++ {
		m.view.Line(m.virtTrail[i-1], m.virtTrail[i])
	}

	m.view.Line(l.Shoulder, m.frame.VirtualElbow)
	m.view.Line(m.frame.VirtualElbow, m.frame.VirtualHand)
}

func (m Model) View() string {
	m.draw()

	name := "no reach"
	if len(m.reaches) > 0 {
		name = m.reaches[m.current].Name
	}

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(name)) + "\n")
	if !m.running {
		s.WriteString(Subtle.Render("PAUSED") + "\n")
	}
	if m.err != nil {
		s.WriteString(SparkLow.Render(m.err.Error()) + "\n")
	}
	s.WriteString(Row("phase", PhaseBadge(m.frame.Phase)) + "\n")
	s.WriteString(Row("time", fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(Row("hand progress", ProgressBar(m.frame.HandProgress, 20)) + "\n")
	s.WriteString(Row("elbow progress", ProgressBar(m.frame.ElbowProgress, 20)) + "\n")
	s.WriteString(Row("real hand", FormatVec(m.frame.RealHand)) + "\n")
	s.WriteString(Row("virtual hand", FormatVec(m.frame.VirtualHand)) + "\n")
	s.WriteString(Row("hand anchor", FormatVec(m.frame.HandAnchor)) + "\n\n")
	if len(m.progressLog) > 1 {
		s.WriteString(asciigraph.Plot(m.progressLog,
			asciigraph.Height(5),
			asciigraph.Width(40),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("hand progress")) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("space pause · r restart · n next · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
}

// Run starts the live view and blocks until the user quits.
func Run(eng *engine.Engine, reaches []NamedReach, cfg sim.Config) error {
	p := tea.NewProgram(NewModel(eng, reaches, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
