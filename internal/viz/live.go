package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/splitflap/internal/flap"
)

const defaultFPS = 30

type TickMsg time.Time

// Model shows an engine's board and lets the user type new targets.
type Model struct {
	engine *flap.Engine
	title  string
	fps    int
	cells  []flap.Cell
	input  []rune
	idle   bool
	ticks  int
}

func NewModel(eng *flap.Engine, title string, fps int) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	return Model{
		engine: eng,
		title:  title,
		fps:    fps,
		cells:  eng.CurrentFrame(),
		idle:   eng.Idle(),
		ticks:  eng.Ticks(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and polls the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.engine.Destroy()
			return m, tea.Quit
		case tea.KeyEnter:
			m.engine.SetTarget(string(m.input))
			m.input = m.input[:0]
			m.poll()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyCtrlU:
			m.input = m.input[:0]
		case tea.KeyCtrlT:
			SetTheme(NextTheme(CurrentTheme.Name))
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	case TickMsg:
		m.poll()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) poll() {
	m.cells = m.engine.CurrentFrame()
	m.idle = m.engine.Idle()
	m.ticks = m.engine.Ticks()
}

func (m Model) settled() float64 {
	if len(m.cells) == 0 {
		return 1
	}
	n := 0
	for _, c := range m.cells {
		if !c.Flipping() {
			n++
		}
	}
	return float64(n) / float64(len(m.cells))
}

func (m Model) View() string {
	t := CurrentTheme

	status := "rolling"
	if m.idle {
		status = "idle"
	}
	stats := fmt.Sprintf("%s  %s  tick %d  theme %s",
		ProgressBar(m.settled(), 12, t), status, m.ticks, t.Name)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Foreground(t.Text).Render(m.title),
		RenderBoard(m.cells, t),
		lipgloss.NewStyle().Foreground(t.Muted).Render(stats),
		inputStyle.Render("> "+string(m.input)+"_"),
		helpStyle.Render("enter: roll • ctrl+u: clear • ctrl+t: theme • esc: quit"),
	)
}

// Run starts the interactive board and blocks until the user quits.
func Run(eng *flap.Engine, title string, fps int) error {
	_, err := tea.NewProgram(NewModel(eng, title, fps), tea.WithAltScreen()).Run()
	return err
}
