package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/cfg"
	"github.com/matzehuels/flowgraph/pkg/metrics"
)

// newViewCmd creates the view command: an interactive terminal browser for
// the parsed graph of one input file.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a parsed control-flow graph in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			lines, mode := cfg.Normalize(source)
			graph := cfg.ParseLines(lines, mode)
			report := metrics.Calculate(graph)

			model := newViewModel(name, mode, graph, report)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// nodeListStyles for the scrolling node list.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// viewModel is the bubbletea model for the graph browser. The node list
// scrolls; the selected node's edges are shown underneath.
type viewModel struct {
	name    string
	mode    cfg.Mode
	graph   *cfg.Graph
	report  metrics.Report
	nodes   []cfg.Node
	cursor  int
	height  int
	offset  int
	metrics string // pre-rendered metrics table
}

func newViewModel(name string, mode cfg.Mode, graph *cfg.Graph, report metrics.Report) viewModel {
	return viewModel{
		name:    name,
		mode:    mode,
		graph:   graph,
		report:  report,
		nodes:   graph.Nodes(),
		height:  12,
		metrics: metricsTable(report, string(mode)),
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 16
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("flowgraph — " + m.name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate nodes  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.metrics)
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := m.offset; i < end; i++ {
		n := m.nodes[i]
		line := fmt.Sprintf("%-5s %-8s %s", n.ID, n.Shape, firstLine(n.Label))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(m.nodes) > 0 {
		b.WriteString("\n")
		b.WriteString(m.edgesFor(m.nodes[m.cursor].ID))
	}

	return b.String()
}

// edgesFor summarizes the selected node's outgoing edges.
func (m viewModel) edgesFor(id cfg.NodeID) string {
	var out []string
	for _, e := range m.graph.Edges() {
		if e.From != id {
			continue
		}
		if e.Label != cfg.LabelNone {
			out = append(out, fmt.Sprintf("→ %s [%s]", e.To, e.Label))
		} else {
			out = append(out, fmt.Sprintf("→ %s", e.To))
		}
	}
	if len(out) == 0 {
		return StyleDim.Render("no outgoing edges")
	}
	return StyleDim.Render(strings.Join(out, "   "))
}

// firstLine truncates multi-line statement labels for the list view.
func firstLine(label string) string {
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		return label[:i] + " …"
	}
	return label
}
