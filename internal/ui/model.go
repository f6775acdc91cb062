package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ibericastore/whatstriage/internal/config"
	"github.com/ibericastore/whatstriage/internal/dropea"
	"github.com/ibericastore/whatstriage/internal/message"
	"github.com/ibericastore/whatstriage/internal/triage"
)

type State int

const (
	StateConfig State = iota
	StateFetching
	StateReviewing
	StateComposing
	StateMessage
)

func (s State) String() string {
	switch s {
	case StateConfig:
		return "Config"
	case StateFetching:
		return "Fetching"
	case StateReviewing:
		return "Reviewing"
	case StateComposing:
		return "Composing"
	case StateMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

type Model struct {
	state  State
	width  int
	height int
	styles Styles
	keys   KeyMap

	themeIndex int
	showHelp   bool

	cfg      *config.Config
	composer *message.Composer

	lane         triage.Lane
	hideResolved bool

	// snapshot is the raw fetch result; the list view always shows a
	// triaged arrangement of it.
	snapshot []dropea.Order

	// contacted maps order id to the last phase sent. Session-only, by
	// design: nothing about outreach survives a restart.
	contacted map[string]string

	listView    ListView
	spinner     spinner.Model
	composeForm *ComposeForm

	statusMessage string
	messageType   string

	// fetchSeq tags in-flight fetches so a stale response that resolves
	// after a newer request started is discarded (last-request-wins).
	fetchSeq int
}

// OrdersLoadedMsg carries one fetch result.
type OrdersLoadedMsg struct {
	Seq    int
	Orders []dropea.Order
}

// ErrorMsg surfaces an upstream failure.
type ErrorMsg struct {
	Seq int
	Err error
}

func NewModel() *Model {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{StoreName: "IBericaStore"}
	}

	poolsWarning := ""
	pools, err := message.LoadPools(cfg.PoolsFile)
	if err != nil {
		pools = message.DefaultPools()
		poolsWarning = fmt.Sprintf("pools file ignored: %v", err)
	}

	themeNames := GetThemeNames()
	themeIndex := -1
	themeName := cfg.Theme

	for i, name := range themeNames {
		if name == themeName {
			themeIndex = i
			break
		}
	}

	if themeIndex == -1 {
		themeName = "default"
		for i, name := range themeNames {
			if name == themeName {
				themeIndex = i
				break
			}
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[themeName].Primary))

	m := &Model{
		state:         StateConfig,
		styles:        NewStyles(Themes[themeName]),
		keys:          DefaultKeyMap(),
		themeIndex:    themeIndex,
		cfg:           cfg,
		composer:      message.NewComposer(cfg.StoreName, cfg.ProductNames, pools, nil),
		lane:          triage.LanePending,
		hideResolved:  cfg.HideResolvedDefault(),
		contacted:     map[string]string{},
		spinner:       s,
		statusMessage: poolsWarning,
	}

	m.listView = NewListView(80, 24)
	m.listView.UpdateTableStyles(Themes[themeName])
	return m
}

func (m *Model) cycleTheme() {
	themeNames := GetThemeNames()
	m.themeIndex = (m.themeIndex + 1) % len(themeNames)
	newTheme := themeNames[m.themeIndex]
	m.styles = NewStyles(Themes[newTheme])
	m.listView.UpdateTableStyles(Themes[newTheme])
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[newTheme].Primary))

	if m.cfg != nil {
		m.cfg.Theme = newTheme
		_ = m.cfg.Save()
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listView.SetWidthHeight(msg.Width, msg.Height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case OrdersLoadedMsg:
		if msg.Seq != m.fetchSeq {
			return m, nil // stale response from a superseded refresh
		}
		m.snapshot = msg.Orders
		m.rearrange()
		m.statusMessage = fmt.Sprintf("Loaded %d %s orders", m.listView.Len(), m.lane)
		m.messageType = "success"
		m.state = StateReviewing

	case ErrorMsg:
		if msg.Seq != m.fetchSeq {
			return m, nil
		}
		m.snapshot = nil
		m.rearrange()
		m.statusMessage = msg.Err.Error()
		m.messageType = "error"
		m.state = StateConfig

	default:
		if m.state == StateComposing {
			return m.updateComposeForm(msg)
		}
	}

	return m, nil
}

// rearrange re-derives the presented rows from the snapshot: lane
// classification, resolved filtering, and ordering.
func (m *Model) rearrange() {
	m.listView.SetOrders(triage.Arrange(m.snapshot, m.lane, m.hideResolved), m.contacted)
}

func (m *Model) View() string {
	var content string
	centered := true

	switch m.state {
	case StateConfig:
		content = m.configView()
	case StateFetching:
		content = m.fetchingView()
	case StateReviewing:
		content = m.reviewingView()
		centered = false
	case StateComposing:
		content = m.composingView()
	case StateMessage:
		content = m.messageView()
	default:
		return "Unknown state"
	}

	if centered && m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateComposing:
		return m.updateComposeForm(msg)
	case StateMessage:
		m.state = StateReviewing
		m.statusMessage = ""
		return m, nil
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch m.state {
	case StateConfig:
		return m.handleConfigKeys(msg)
	case StateReviewing:
		return m.handleReviewingKeys(msg)
	}

	return m, nil
}

func (m *Model) handleConfigKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Enter):
		return m, m.startFetching()
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case keyMatches(msg, m.keys.Left), keyMatches(msg, m.keys.Right):
		m.toggleLane()
	case keyMatches(msg, m.keys.ToggleHide):
		m.hideResolved = !m.hideResolved
	}
	return m, nil
}

func (m *Model) toggleLane() {
	if m.lane == triage.LanePending {
		m.lane = triage.LaneIncidence
	} else {
		m.lane = triage.LanePending
	}
}

func (m *Model) startFetching() tea.Cmd {
	m.state = StateFetching
	m.statusMessage = ""
	m.fetchSeq++
	seq := m.fetchSeq
	lane := m.lane
	cfg := m.cfg

	return func() tea.Msg {
		if cfg == nil || cfg.DropeaAPIKey == "" {
			return ErrorMsg{Seq: seq, Err: fmt.Errorf("DROPEA_API_KEY not configured. Set it via environment variable or config file")}
		}

		client, err := dropea.NewClient(cfg.DropeaAPIKey)
		if err != nil {
			return ErrorMsg{Seq: seq, Err: err}
		}

		var orders []dropea.Order
		if lane == triage.LaneIncidence {
			orders, err = client.GetIncidenceOrders(dropea.FetchOptions{
				DaysBack:    cfg.IncidenceDaysBack,
				DaysForward: cfg.IncidenceDaysForward,
			})
		} else {
			orders, err = client.GetPendingOrders(dropea.FetchOptions{
				DaysBack:    cfg.PendingDaysBack,
				DaysForward: cfg.PendingDaysForward,
			})
		}
		if err != nil {
			return ErrorMsg{Seq: seq, Err: err}
		}

		return OrdersLoadedMsg{Seq: seq, Orders: orders}
	}
}

func (m *Model) handleReviewingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Up):
		m.listView.MoveCursor(-1)
		return m, nil
	case keyMatches(msg, m.keys.Down):
		m.listView.MoveCursor(1)
		return m, nil
	case keyMatches(msg, m.keys.Left), keyMatches(msg, m.keys.Right):
		m.toggleLane()
		return m, m.startFetching()
	case keyMatches(msg, m.keys.ToggleHide):
		if m.lane == triage.LaneIncidence {
			m.hideResolved = !m.hideResolved
			m.rearrange()
			if m.hideResolved {
				m.statusMessage = "Hiding incidences with a solution already sent"
			} else {
				m.statusMessage = "Showing all incidences"
			}
		}
		return m, nil
	case keyMatches(msg, m.keys.Refresh):
		return m, m.startFetching()
	case keyMatches(msg, m.keys.Greeting):
		m.dispatch(message.PhaseGreeting, DispatchWhatsApp)
		return m, nil
	case keyMatches(msg, m.keys.FirstContact):
		m.dispatch(message.PhaseFirstContact, DispatchWhatsApp)
		return m, nil
	case keyMatches(msg, m.keys.Continuation):
		m.dispatch(message.PhaseContinuation, DispatchClipboard)
		return m, nil
	case keyMatches(msg, m.keys.Enter):
		if order := m.listView.GetOrder(m.listView.Cursor()); order != nil {
			_, contacted := m.contacted[order.ID.String()]
			m.composeForm = NewComposeForm(contacted)
			m.state = StateComposing
			return m, m.composeForm.Form().Init()
		}
		return m, nil
	case keyMatches(msg, m.keys.Back):
		m.state = StateConfig
		return m, nil
	}

	return m, nil
}

func (m *Model) updateComposeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.composeForm == nil {
		m.state = StateReviewing
		return m, nil
	}

	form, cmd := m.composeForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.composeForm.form = f
	}

	switch m.composeForm.Form().State {
	case huh.StateCompleted:
		phase, method := m.composeForm.Result()
		m.composeForm = nil
		m.state = StateReviewing
		m.dispatch(phase, method)
		return m, nil
	case huh.StateAborted:
		m.composeForm = nil
		m.state = StateReviewing
		return m, nil
	}

	return m, cmd
}

// dispatch composes the cursor order for the given phase and hands the
// result to the chosen channel. A record without a phone is never
// dispatched anywhere, clipboard included.
func (m *Model) dispatch(phase message.Phase, method DispatchMethod) {
	order := m.listView.GetOrder(m.listView.Cursor())
	if order == nil {
		return
	}

	kind := message.KindPending
	if triage.Classify(*order) == triage.LaneIncidence {
		kind = message.KindIncidence
	}

	composed := m.composer.Compose(*order, kind, phase)
	if composed.Handle == "" {
		m.statusMessage = fmt.Sprintf("Order #%s has no phone — nothing sent", order.DisplayID())
		m.messageType = "error"
		m.state = StateMessage
		return
	}

	switch method {
	case DispatchClipboard:
		if err := clipboard.WriteAll(composed.Text); err != nil {
			m.statusMessage = fmt.Sprintf("Clipboard copy failed: %v", err)
			m.messageType = "error"
			m.state = StateMessage
			return
		}
		m.statusMessage = fmt.Sprintf("Copied %s message for #%s to clipboard", phase, order.DisplayID())
	default:
		if err := openURL(message.WhatsAppURL(composed)); err != nil {
			m.statusMessage = fmt.Sprintf("Failed to open WhatsApp: %v", err)
			m.messageType = "error"
			m.state = StateMessage
			return
		}
		m.statusMessage = fmt.Sprintf("Opened WhatsApp for #%s (%s)", order.DisplayID(), phase)
	}

	m.contacted[order.ID.String()] = phase.String()
	m.rearrange()
	m.messageType = "success"
	m.state = StateMessage
}

func (m *Model) configView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.theme.Primary)).
		Render("  Whatstriage")

	storeLine := fmt.Sprintf("  🏪  %s", m.styles.Normal.Render("Store: "+m.cfg.StoreName))

	laneLabel := "Pending orders"
	if m.lane == triage.LaneIncidence {
		laneLabel = "Incidence orders"
	}
	laneLine := fmt.Sprintf("  📂  %s", m.styles.Normal.Render("Lane: "+laneLabel))

	hideLabel := "hidden"
	if !m.hideResolved {
		hideLabel = "shown"
	}
	hideLine := fmt.Sprintf("  ✉  %s", m.styles.Normal.Render("Resolved incidences: "+hideLabel))

	themeName := m.cfg.Theme
	if themeName == "" {
		themeName = "default"
	}
	themeLine := fmt.Sprintf("  🎨  %s", m.styles.Normal.Render("Theme: "+themeName))

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		"",
		storeLine,
		laneLine,
		hideLine,
		themeLine,
		"",
	)

	if m.statusMessage != "" {
		errLine := m.styles.Error.Render("  ⚠  " + m.statusMessage)
		content = lipgloss.JoinVertical(lipgloss.Left, content, errLine, "")
	}

	help := m.renderHelpLine([]helpEntry{
		{"enter", "fetch"},
		{"h/l", "lane"},
		{"s", "resolved"},
		{"t", "theme"},
		{"q", "quit"},
	})

	card := m.styles.Card.Render(content)

	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		card,
		"",
		help,
	)
}

func (m *Model) fetchingView() string {
	fetchTitle := "Fetching Pending Orders"
	if m.lane == triage.LaneIncidence {
		fetchTitle = "Fetching Incidence Orders"
	}

	status := fmt.Sprintf("%s Loading from Dropea...", m.spinner.View())

	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render(fetchTitle),
			"",
			m.styles.Normal.Render(status),
		),
	)

	help := m.renderHelpLine([]helpEntry{{"q", "cancel"}})

	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) reviewingView() string {
	laneTag := "[Pending]"
	if m.lane == triage.LaneIncidence {
		laneTag = "[Incidence]"
	}
	headerLeft := m.styles.HelpKey.Render("Whatstriage " + laneTag)
	countText := m.styles.HelpDesc.Render(fmt.Sprintf("%d/%d", m.listView.Cursor()+1, m.listView.Len()))
	headerGap := ""
	if m.width > 0 {
		gap := m.width - lipgloss.Width(headerLeft) - lipgloss.Width(countText) - 4
		if gap > 0 {
			headerGap = strings.Repeat(" ", gap)
		}
	}
	header := m.styles.HeaderBar.Width(m.width - 1).Render(headerLeft + headerGap + countText)

	var list string
	if m.listView.Len() == 0 {
		list = m.styles.Normal.Render("  No orders to review")
	} else {
		list = m.listView.View()
	}

	detail := ""
	if m.listView.Len() > 0 {
		detailContent := m.listView.DetailView(m.width, m.styles)
		if detailContent != "" {
			divW := m.width - 1
			if divW < 1 {
				divW = 1
			}
			divider := m.styles.HelpSep.Render(strings.Repeat("─", divW))
			detail = divider + "\n" + detailContent
		}
	}

	var statusLine string
	if m.statusMessage != "" {
		statusLine = m.styles.Help.Render("  " + m.statusMessage)
	}

	var footer string
	if m.showHelp {
		footer = m.renderFullHelp()
	} else {
		footer = m.renderReviewFooter()
	}

	parts := []string{header, list}
	if detail != "" {
		parts = append(parts, detail)
	}
	if statusLine != "" {
		parts = append(parts, statusLine)
	}
	if footer != "" {
		parts = append(parts, footer)
	}

	content := strings.Join(parts, "\n")

	// Pad output to exactly m.height lines so the alternate screen buffer
	// repaints cleanly and doesn't leave stale content from previous frames.
	if m.height > 0 {
		rendered := strings.Split(content, "\n")
		for len(rendered) < m.height {
			rendered = append(rendered, "")
		}
		return strings.Join(rendered[:m.height], "\n")
	}
	return content
}

func (m *Model) composingView() string {
	if m.composeForm == nil {
		return ""
	}

	title := ""
	if order := m.listView.GetOrder(m.listView.Cursor()); order != nil {
		title = fmt.Sprintf("Compose for #%s · %s", order.DisplayID(), order.Customer.FullName)
	}

	return m.styles.Card.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render(title),
			m.composeForm.Form().View(),
		),
	)
}

func (m *Model) messageView() string {
	var icon, title string
	var titleStyle lipgloss.Style

	if m.messageType == "error" {
		icon = "✗"
		title = "Error"
		titleStyle = m.styles.Error
	} else {
		icon = "✓"
		title = "Success"
		titleStyle = m.styles.Success
	}

	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(icon+" "+title),
			"",
			m.styles.Normal.Render(m.statusMessage),
		),
	)

	help := m.renderHelpLine([]helpEntry{{"any key", "continue"}})
	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

// Help rendering

type helpEntry struct {
	key  string
	desc string
}

func (m *Model) renderHelpLine(entries []helpEntry) string {
	var parts []string
	sep := m.styles.HelpSep.Render(" · ")
	for _, e := range entries {
		parts = append(parts, m.styles.HelpKey.Render(e.key)+" "+m.styles.HelpDesc.Render(e.desc))
	}
	return strings.Join(parts, sep)
}

func (m *Model) renderReviewFooter() string {
	line1 := []helpEntry{
		{"j/k", "navigate"},
		{"h/l", "lane"},
		{"g", "greeting"},
		{"w", "whatsapp"},
		{"c", "copy cont."},
		{"enter", "compose"},
	}
	line2 := []helpEntry{
		{"s", "resolved"},
		{"R", "refresh"},
		{"?", "help"},
		{"q", "quit"},
	}

	return m.styles.FooterBar.Width(m.width - 1).Render(
		m.renderHelpLine(line1) + "\n" + m.renderHelpLine(line2),
	)
}

func (m *Model) renderFullHelp() string {
	sections := []struct {
		title   string
		entries []helpEntry
	}{
		{"Navigation", []helpEntry{
			{"j / ↓", "move down"},
			{"k / ↑", "move up"},
			{"h / l", "switch lane (refetches)"},
		}},
		{"Outreach", []helpEntry{
			{"g", "open WhatsApp with a short greeting"},
			{"w", "open WhatsApp with the full message"},
			{"c", "copy the continuation message"},
			{"enter", "pick phase and channel"},
		}},
		{"Operations", []helpEntry{
			{"s", "show/hide resolved incidences"},
			{"R", "refresh from Dropea"},
			{"esc", "back to start"},
		}},
		{"General", []helpEntry{
			{"?", "toggle this help"},
			{"q / ctrl+c", "quit"},
		}},
	}

	var lines []string
	for _, sec := range sections {
		lines = append(lines, m.styles.HelpKey.Render("  "+sec.title))
		for _, e := range sec.entries {
			lines = append(lines, fmt.Sprintf("    %s  %s",
				m.styles.HelpKey.Render(fmt.Sprintf("%-12s", e.key)),
				m.styles.HelpDesc.Render(e.desc),
			))
		}
	}

	return m.styles.FooterBar.Width(m.width - 1).Render(strings.Join(lines, "\n"))
}

func keyMatches(msg tea.KeyMsg, target key.Binding) bool {
	for _, k := range target.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func openURL(url string) error {
	if url == "" {
		return fmt.Errorf("empty url")
	}

	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}
