package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/remotefeed/internal/model"
)

// fetchTimeout bounds one audit fetch. Adzuna alone may query several countries.
const fetchTimeout = 2 * time.Minute

type fetchDoneMsg struct {
	jobs []model.RawJob
	err  error
}

type loaderModel struct {
	source  model.Source
	spinner spinner.Model
	result  []model.RawJob
	err     error
	done    bool
}

func newLoaderModel(source model.Source) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	return loaderModel{source: source, spinner: s}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.spinner.Tick)
}

func (m loaderModel) doFetch() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		jobs, err := src.FetchJobs(ctx)
		return fetchDoneMsg{jobs: jobs, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.result = msg.jobs
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Fetching jobs from %s...\n", m.spinner.View(), m.source.Name())
}

// RunLoader shows a spinner while the source is fetched. It renders inline (no alt screen).
func RunLoader(source model.Source) ([]model.RawJob, error) {
	p := tea.NewProgram(newLoaderModel(source))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
