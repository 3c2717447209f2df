// Package tui provides the interactive Bubble Tea P&L preview for finmock.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finmock/internal/cli"
	"github.com/theirongolddev/finmock/internal/config"
	"github.com/theirongolddev/finmock/internal/model"
	"github.com/theirongolddev/finmock/internal/pipeline"
	"github.com/theirongolddev/finmock/internal/tui/components"
	"github.com/theirongolddev/finmock/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when generation or loading finishes.
type DataLoadedMsg struct {
	Dataset     *model.Dataset
	ParseErrors int
	LoadTime    time.Duration
	Err         error
}

// ProgressMsg reports generation or parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// App is the root Bubble Tea model.
type App struct {
	cfg     config.Config
	fromDir string // load CSVs from here instead of generating

	// Data
	dataset     *model.Dataset
	loaded      bool
	loadErr     error
	loadTime    time.Duration
	parseErrors int

	// Pre-computed for the current department filter
	departments []string
	summary     model.PLSummary
	months      []model.MonthlyStats
	accounts    []model.AccountStats
	costCenters []model.CostCenterStats

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	deptIdx   int // 0 = all departments
	ccCursor  int
	ccOffset  int

	// Loading: channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the preview model. With fromDir set, the four CSVs are read
// from that directory; otherwise a dataset is generated from cfg.
func NewApp(cfg config.Config, fromDir string) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:     cfg,
		fromDir: fromDir,
		spinner: sp,
		loadSub: make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.cfg, a.fromDir, a.loadSub),
		a.spinner.Tick,
	)
}

// Err returns the load error, if any, after the program exits.
func (a App) Err() error {
	return a.loadErr
}

func (a *App) recompute() {
	if a.dataset == nil {
		return
	}
	ds := a.dataset
	if dept := a.department(); dept != "" {
		ds = pipeline.FilterByDepartment(ds, dept)
	}
	a.summary = pipeline.Summarize(ds)
	a.months = pipeline.AggregateMonths(ds)
	a.accounts = pipeline.AggregateAccounts(ds)
	a.costCenters = pipeline.AggregateCostCenters(ds)

	a.ccCursor = min(a.ccCursor, max(len(a.costCenters)-1, 0))
	a.ccOffset = min(a.ccOffset, a.ccCursor)
}

// department returns the active department filter, "" for all.
func (a App) department() string {
	if a.deptIdx <= 0 || a.deptIdx > len(a.departments) {
		return ""
	}
	return a.departments[a.deptIdx-1]
}

func departmentsOf(ccs []model.CostCenter) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cc := range ccs {
		if _, ok := seen[cc.Department]; !ok {
			seen[cc.Department] = struct{}{}
			out = append(out, cc.Department)
		}
	}
	sort.Strings(out)
	return out
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		a.parseErrors = msg.ParseErrors
		if msg.Err == nil {
			a.dataset = msg.Dataset
			a.departments = departmentsOf(msg.Dataset.CostCenters)
			a.deptIdx = 0
			a.recompute()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.loadErr != nil {
		return a, tea.Quit
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "d":
		a.deptIdx = (a.deptIdx + 1) % (len(a.departments) + 1)
		a.recompute()
	case "D":
		a.deptIdx = 0
		a.recompute()
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.ccCursor, a.ccOffset = 0, 0
	case "G", "end":
		a.moveCursor(len(a.costCenters))
	case "n":
		// Regenerate with the next seed; not available for loaded CSVs.
		if a.fromDir == "" {
			a.cfg.Generate.Seed++
			a.loaded = false
			a.progress, a.progressMax = 0, 0
			a.loadSub = make(chan tea.Msg, 1)
			return a, tea.Batch(loadDataCmd(a.cfg, "", a.loadSub), a.spinner.Tick)
		}
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// moveCursor moves the cost center cursor, keeping it inside the visible
// window.
func (a *App) moveCursor(delta int) {
	if a.activeTab != tabCostCenters || len(a.costCenters) == 0 {
		return
	}
	a.ccCursor = max(0, min(a.ccCursor+delta, len(a.costCenters)-1))

	visible := a.costCenterRows()
	if a.ccCursor < a.ccOffset {
		a.ccOffset = a.ccCursor
	}
	if a.ccCursor >= a.ccOffset+visible {
		a.ccOffset = a.ccCursor - visible + 1
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentHeight() int {
	// tab bar + filter row + status bar
	return max(a.height-3, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finmock preview needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	verb := "Generating transactions"
	if a.fromDir != "" {
		verb = "Reading tables from " + a.fromDir
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finmock"))
	b.WriteString(subtitleStyle.Render(" · P&L preview"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" " + verb))

	if a.progressMax > 0 {
		barW := max(min(40, a.width-30), 20)
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString("\n\n")
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Cost).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(a.width-4, 80))

	errStyle := lipgloss.NewStyle().Foreground(t.Cost).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := errStyle.Render("Could not load dataset") + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(a.loadErr.Error()) + "\n\n" +
		dimStyle.Render("Press any key to exit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"o m a c", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k", "Move in cost center list"},
		{"g G", "Top / Bottom of list"},
		{"d", "Cycle department filter"},
		{"D", "Clear department filter"},
		{"n", "Regenerate with next seed"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	source := fmt.Sprintf("seed %d", a.cfg.Generate.Seed)
	if a.fromDir != "" {
		source = a.fromDir
	}
	dept := "all departments"
	if d := a.department(); d != "" {
		dept = d
	}
	filterStr := pillStyle.Render(" ") + accentStyle.Render(source) +
		pillStyle.Render(" │ ") + accentStyle.Render(dept) +
		pillStyle.Render(" │ ") + accentStyle.Render(periodLabel(a.summary)) +
		pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filterStr)

	info := fmt.Sprintf("%s txns · %s", cli.FormatNumber(int64(a.summary.Transactions)), cli.FormatDuration(a.loadTime))
	if a.parseErrors > 0 {
		info = fmt.Sprintf("%d bad rows · %s", a.parseErrors, info)
	}
	statusBar := components.RenderStatusBar(w, info)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabMonthly:
		content = a.renderMonthlyTab(cw, contentH)
	case tabAccounts:
		content = a.renderAccountsTab(cw)
	case tabCostCenters:
		content = a.renderCostCentersTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// Tab indices, in components.Tabs order.
const (
	tabOverview = iota
	tabMonthly
	tabAccounts
	tabCostCenters
)

// ─── Loading ────────────────────────────────────────────────────

// loadDataCmd generates (or reads) the dataset in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(cfg config.Config, fromDir string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so the producer is never stalled; a dropped
			// update is superseded by the next one.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			if fromDir != "" {
				res, err := pipeline.Load(fromDir, progressFn)
				if err != nil {
					sub <- DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
					return
				}
				sub <- DataLoadedMsg{Dataset: res.Dataset, ParseErrors: res.ParseErrors, LoadTime: time.Since(start)}
				return
			}

			ds, err := pipeline.Generate(cfg, progressFn)
			sub <- DataLoadedMsg{Dataset: ds, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func periodLabel(s model.PLSummary) string {
	if s.FirstDate.IsZero() {
		return "no postings"
	}
	return s.FirstDate.Format(model.DateLayout) + " → " + s.LastDate.Format(model.DateLayout)
}

func monthLabels(months []model.MonthlyStats) []string {
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.MonthStart.Format("Jan 06")
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // one-column separator
	}
	return -1
}
