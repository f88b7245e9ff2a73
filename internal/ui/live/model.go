package live

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"undestructure/internal/core/app"
	"undestructure/internal/engine/component"
	"undestructure/internal/ui/report"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(report.HeaderColor).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	destructuredStyle = lipgloss.NewStyle().
				Foreground(report.WarningColor).
				Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(report.ErrorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(report.GoodColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(report.MutedColor).
			Italic(true)
)

type item struct {
	title, desc  string
	destructured bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

// UpdateMsg carries a fresh scan report into the view.
type UpdateMsg struct {
	Report *app.Report
}

// Model is the watch-mode view: a filterable list of component findings
// refreshed on every rescan.
type Model struct {
	list       list.Model
	lastUpdate time.Time
	files      int
	components int
	rewrites   int
	fileErrors int
}

func NewModel() Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Components"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return Model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case UpdateMsg:
		if msg.Report == nil {
			return m, nil
		}
		m.lastUpdate = time.Now()
		m.files = len(msg.Report.Files)
		m.components = msg.Report.Components
		m.rewrites = msg.Report.Rewrites
		m.fileErrors = len(msg.Report.FileErrors)
		return m, m.list.SetItems(itemsFor(msg.Report))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func itemsFor(rep *app.Report) []list.Item {
	items := make([]list.Item, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		name := f.Name
		if name == "" {
			name = "(anonymous)"
		}
		loc := fmt.Sprintf("%s:%d:%d", filepath.ToSlash(f.Path), f.Line, f.Column)
		if f.Result == component.ComponentWithDestructuring {
			items = append(items, item{
				title:        name + " destructures props",
				desc:         loc + " " + report.DescribeProps(f.Props, f.Rest, f.HasDefault),
				destructured: true,
			})
			continue
		}
		items = append(items, item{title: name, desc: loc})
	}
	return items
}

func (m Model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d components",
		m.lastUpdate.Format("15:04:05"), m.files, m.components))

	var summary string
	if m.rewrites == 0 {
		summary = successStyle.Render("No destructured props")
	} else {
		summary = destructuredStyle.Render(fmt.Sprintf("%d destructured", m.rewrites))
	}
	if m.fileErrors > 0 {
		summary += " | " + failureStyle.Render(fmt.Sprintf("%d skipped", m.fileErrors))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Component Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

// Run shows the view until the user quits or ctx ends. Reports from the
// app's watch loop are forwarded as UpdateMsg.
func Run(ctx context.Context, a *app.App, initial *app.Report, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	a.SetUpdateCallback(func(rep *app.Report) {
		p.Send(UpdateMsg{Report: rep})
	})
	defer a.SetUpdateCallback(nil)

	go func() {
		p.Send(UpdateMsg{Report: initial})
	}()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
