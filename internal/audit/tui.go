package audit

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/remotefeed/internal/extract"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	acceptedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	rejectedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	descDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	descHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type auditModel struct {
	source        string
	all           []Verdict
	accepted      []Verdict
	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=left, 1=right
	leftCursor    int
	rightCursor   int
	width         int
	height        int
	ready         bool

	view            viewState
	detail          Verdict
	detailViewport  viewport.Model
	showDescription bool

	wantQuit bool
}

func (m auditModel) Init() tea.Cmd {
	return nil
}

func (m auditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m auditModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m auditModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openURL(m.detail.Job.URL)
		return m, nil
	case "r":
		if m.detail.Job.Description != "" {
			m.showDescription = !m.showDescription
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *auditModel) moveCursor(delta int) {
	if m.activePane == 0 {
		m.leftCursor = clamp(m.leftCursor+delta, 0, max(len(m.all)-1, 0))
	} else {
		m.rightCursor = clamp(m.rightCursor+delta, 0, max(len(m.accepted)-1, 0))
	}
}

func (m *auditModel) ensureCursorVisible() {
	var vp *viewport.Model
	var cursor int
	if m.activePane == 0 {
		vp = &m.leftViewport
		cursor = m.leftCursor
	} else {
		vp = &m.rightViewport
		cursor = m.rightCursor
	}

	cursorTop := cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m auditModel) openDetailView() (tea.Model, tea.Cmd) {
	verdicts := m.activeVerdicts()
	if len(verdicts) == 0 {
		return m, nil
	}

	m.view = viewDetail
	m.detail = verdicts[m.activeCursor()]
	m.showDescription = false
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *auditModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *auditModel) recalcContent() {
	m.leftViewport.SetContent(renderVerdicts(m.all, m.leftCursor, m.activePane == 0))
	m.rightViewport.SetContent(renderVerdicts(m.accepted, m.rightCursor, m.activePane == 1))
}

func (m auditModel) activeVerdicts() []Verdict {
	if m.activePane == 0 {
		return m.all
	}
	return m.accepted
}

func (m auditModel) activeCursor() int {
	if m.activePane == 0 {
		return m.leftCursor
	}
	return m.rightCursor
}

func (m auditModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m auditModel) viewList() string {
	paneWidth := m.leftViewport.Width

	leftHeader := fmt.Sprintf(" %s: all fetched (%d)", m.source, len(m.all))
	rightHeader := fmt.Sprintf(" Would publish (%d)", len(m.accepted))

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style

	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	leftPane := leftBorder.Render(m.leftViewport.View())
	rightPane := rightBorder.Render(m.rightViewport.View())

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	statusText := fmt.Sprintf(" %d fetched | %d accepted | %d rejected    ←/→/Tab switch  ↑/↓ cursor  Enter detail  Esc back  q quit",
		len(m.all), len(m.accepted), len(m.all)-len(m.accepted))
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m auditModel) viewDetail() string {
	title := detailTitleStyle.Render("Job Details")

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o open URL  esc/backspace back  ↑/↓ scroll  q quit"
	if m.detail.Job.Description != "" {
		statusText = " o open URL  r raw description  esc/backspace back  ↑/↓ scroll  q quit"
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func (m auditModel) renderDetail() string {
	v := m.detail
	j := v.Job
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.Company)
	addField("Location", j.Location)
	addField("Source", j.Source)
	addField("Verdict", v.Label())

	b.WriteByte('\n')
	addField("Salary", extract.Salary(j))
	addField("Published", extract.PostedDate(j))
	addField("Employment", extract.EmploymentType(j))
	if skills := extract.Skills(j); len(skills) > 0 {
		addField("Skills", strings.Join(skills, ", "))
	}

	b.WriteByte('\n')
	addField("Job URL", j.URL)

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return descDividerStyle.Render(label + fill)
	}

	b.WriteByte('\n')
	if m.showDescription {
		b.WriteString(divider("── Raw Description ") + "\n\n")
		b.WriteString(descBodyStyle.Render(wordWrap(extract.PlainText(j.Description), wrapWidth)) + "\n")
		return b.String()
	}

	if v.Accepted() {
		b.WriteString(divider("── Channel Message ") + "\n\n")
		b.WriteString(descBodyStyle.Render(MessagePreview(v)) + "\n")
	} else {
		b.WriteString(descHintStyle.Render("  this job would not be published") + "\n")
	}
	if j.Description != "" {
		b.WriteByte('\n')
		b.WriteString(descHintStyle.Render("  press r to read the raw description") + "\n")
	}

	return b.String()
}

func renderVerdicts(verdicts []Verdict, cursor int, isActive bool) string {
	if len(verdicts) == 0 {
		return "  (no jobs)"
	}

	var b strings.Builder
	for i, v := range verdicts {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		badge := rejectedBadgeStyle.Render("✗ " + v.Label())
		if v.Accepted() {
			badge = acceptedBadgeStyle.Render("✓ " + v.Label())
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(v.Job.Title))
		b.WriteString(" ")
		b.WriteString(badge)
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(summaryLine(v)))
		b.WriteByte('\n')

		if i < len(verdicts)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// sortByDate puts the newest postings first; unparseable dates go last.
func sortByDate(verdicts []Verdict) {
	sort.SliceStable(verdicts, func(i, j int) bool {
		ti, okI := extract.ParseTimestamp(verdicts[i].Job.PublishedAt)
		tj, okJ := extract.ParseTimestamp(verdicts[j].Job.PublishedAt)
		switch {
		case !okI:
			return false
		case !okJ:
			return true
		}
		return ti.After(tj)
	})
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	if url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

func newAuditModel(source string, verdicts []Verdict) auditModel {
	all := append([]Verdict(nil), verdicts...)
	sortByDate(all)
	return auditModel{
		source:   source,
		all:      all,
		accepted: Accepted(all),
	}
}

// RunAuditTUI launches the interactive split-pane audit TUI.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed esc to return to the picker.
func RunAuditTUI(source string, verdicts []Verdict) (bool, error) {
	p := tea.NewProgram(newAuditModel(source, verdicts), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(auditModel)
	return final.wantQuit, nil
}
