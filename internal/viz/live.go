package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/pskrzyn/geosim/internal/control"
	"github.com/pskrzyn/geosim/internal/plant"
	"github.com/pskrzyn/geosim/internal/sim"
)

const (
	historyCapacity = 600
	stepsPerTick    = 2
)

type TickMsg time.Time

// Model steps the control loop in real time and renders the compensated
// response next to the raw process variable.
type Model struct {
	plant plant.Plant
	pid   *control.PID
	cfg   sim.Config

	t       float64
	running bool

	process []float64
	output  []float64

	paramKeys []string
	selected  int
	showHelp  bool
}

// NewModel initializes the live view around a fresh controller.
func NewModel(p plant.Plant, pid *control.PID, cfg sim.Config) Model {
	keys := make([]string, 0, len(pid.GetParams()))
	for k := range pid.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		plant:     p,
		pid:       pid,
		cfg:       cfg,
		running:   true,
		process:   make([]float64, 0, historyCapacity),
		output:    make([]float64, 0, historyCapacity),
		paramKeys: keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	pv := m.plant.Value(m.t)
	u := m.pid.Compute(pv, m.t)
	m.t += m.cfg.Dt

	m.process = append(m.process, pv)
	m.output = append(m.output, pv+u)
	if len(m.output) > historyCapacity {
		m.process = m.process[1:]
		m.output = m.output[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.process = m.process[:0]
	m.output = m.output[:0]
	m.pid.Reset()
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.pid.GetParams()[key]
	if val == 0 {
		val = 0.01
	}
	m.pid.SetParam(key, val*factor)
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("geosim live — pid loop"))
	sb.WriteByte('\n')

	if len(m.output) >= 2 {
		graph := asciigraph.Plot(m.output,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("compensated output (pv+u)"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	} else {
		sb.WriteString("warming up...\n")
	}

	sb.WriteString(m.statsView())

	help := "space pause · r reset · tab select param · up/down adjust · q quit"
	if m.showHelp {
		help += "\nselected parameter scales by 5% per keypress; reset clears controller state"
	}
	sb.WriteString(helpStyle.Render(help))
	sb.WriteByte('\n')

	return sb.String()
}

func (m Model) statsView() string {
	var rows []string

	status := "running"
	if !m.running {
		status = "paused"
	}
	rows = append(rows, labelStyle.Render("status")+valueStyle.Render(status))
	rows = append(rows, labelStyle.Render("t")+valueStyle.Render(fmt.Sprintf("%.2fs", m.t)))

	if n := len(m.output); n > 0 {
		rows = append(rows, labelStyle.Render("output")+valueStyle.Render(fmt.Sprintf("%.4f", m.output[n-1])))
		rows = append(rows, labelStyle.Render("process")+valueStyle.Render(fmt.Sprintf("%.4f", m.process[n-1])))
	}

	params := m.pid.GetParams()
	for i, key := range m.paramKeys {
		line := labelStyle.Render(key) + valueStyle.Render(fmt.Sprintf("%.4f", params[key]))
		if i == m.selected {
			line = activeParamStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	return statsStyle.Render(strings.Join(rows, "\n")) + "\n"
}
