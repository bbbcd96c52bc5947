package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
)

// TUI styles
var (
	tuiPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tuiHotStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

// tuiCommand creates the tui command.
func (c *CLI) tuiCommand() *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore a slot arena interactively",
		Long: `Open an interactive explorer for a slot-arena list.

Type ops and press enter to apply them:
  ` + opsHelp + `

The table shows every physical slot with its prev/next links, the strip
below shows the logical element order. Type "reset" to start over, "quit"
(or esc, ctrl+c) to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(capacity)
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", arena.DefaultCapacity, "initial slot capacity")

	return cmd
}

func runTUI(capacity int) error {
	m, err := newSlotModel(capacity)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

// =============================================================================
// SlotModel - Interactive arena explorer
// =============================================================================

// SlotModel is the bubbletea model for the slot arena explorer.
type SlotModel struct {
	list     *arena.List[int]
	capacity int
	input    string
	status   string
	statusOK bool
}

// newSlotModel creates an explorer over a fresh arena.
func newSlotModel(capacity int) (SlotModel, error) {
	l, err := arena.New[int](capacity)
	if err != nil {
		return SlotModel{}, err
	}
	return SlotModel{
		list:     l,
		capacity: capacity,
		status:   "type ops and press enter",
		statusOK: true,
	}, nil
}

func (m SlotModel) Init() tea.Cmd {
	return nil
}

func (m SlotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			switch strings.ToLower(strings.TrimSpace(m.input)) {
			case "quit", "exit", "q":
				return m, tea.Quit
			}
			return m.execute(), nil
		case tea.KeyBackspace:
			if m.input != "" {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

// execute runs the pending input as an ops script and clears it.
func (m SlotModel) execute() SlotModel {
	script := strings.TrimSpace(m.input)
	m.input = ""
	if script == "" {
		return m
	}

	if strings.EqualFold(script, "reset") {
		l, err := arena.New[int](m.capacity)
		if err != nil {
			m.status, m.statusOK = errors.UserMessage(err), false
			return m
		}
		m.list = l
		m.status, m.statusOK = "reset to an empty arena", true
		return m
	}

	if err := applyScript(m.list, script); err != nil {
		m.status, m.statusOK = errors.UserMessage(err), false
		return m
	}
	m.status, m.statusOK = "ok: "+script, true
	return m
}

func (m SlotModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Slot Arena Explorer"))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render(opsHelp))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("enter: run ops  reset: start over  esc: quit"))
	b.WriteString("\n\n")

	b.WriteString(m.slotTable())
	b.WriteString("\n\n")

	b.WriteString(m.orderLine())
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n\n")

	if m.statusOK {
		b.WriteString(StyleSuccess.Render(m.status))
	} else {
		b.WriteString(StyleWarning.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(tuiPromptStyle.Render("> ") + m.input + tuiHotStyle.Render("█"))

	return b.String()
}

// slotTable renders the physical slot array, sentinel and free slots
// included.
func (m SlotModel) slotTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	states := []string{}
	for i := arena.End; int(i) <= m.list.Cap()+1; i++ {
		s, err := m.list.Slot(i)
		if err != nil {
			continue
		}

		value := strconv.Itoa(s.Value)
		state := "live"
		switch {
		case i == arena.End:
			value, state = "", "sentinel"
		case s.Free:
			value, state = "", "free"
		case i == m.list.Head() && i == m.list.Tail():
			state = "head tail"
		case i == m.list.Head():
			state = "head"
		case i == m.list.Tail():
			state = "tail"
		}

		rows = append(rows, []string{
			strconv.Itoa(int(i)),
			value,
			strconv.Itoa(int(s.Prev)),
			strconv.Itoa(int(s.Next)),
			state,
		})
		states = append(states, state)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("slot", "value", "prev", "next", "state").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(states) {
				return lipgloss.NewStyle()
			}
			switch states[row] {
			case "sentinel":
				return lipgloss.NewStyle().Foreground(colorGray)
			case "free":
				return lipgloss.NewStyle().Foreground(colorDim)
			case "live":
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
		})

	return t.Render()
}

// orderLine renders the logical element order as value@slot hops.
func (m SlotModel) orderLine() string {
	if m.list.Len() == 0 {
		return tuiDimStyle.Render("list is empty")
	}

	parts := make([]string, 0, m.list.Len())
	for i, v := range m.list.All() {
		parts = append(parts, StyleValue.Render(strconv.Itoa(v))+tuiDimStyle.Render(fmt.Sprintf("@%d", i)))
	}
	return strings.Join(parts, tuiDimStyle.Render(" "+iconArrow+" "))
}

func (m SlotModel) statsLine() string {
	stats := fmt.Sprintf("%d elements · %d slots", m.list.Len(), m.list.Cap()+2)
	if m.list.Linearized() {
		stats += " · linearized"
	}
	return tuiDimStyle.Render(stats)
}
