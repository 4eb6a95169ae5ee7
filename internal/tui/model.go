package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kapu/figures-review-go/internal/adapter"
	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/service/session"
	"go.uber.org/zap"
)

type Tab int

const (
	TabReview Tab = iota
	TabFigures
	TabMonthly
	TabVideos
)

var tabNames = []string{"Review", "Figures", "Monthly", "Videos"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return tabNames[0]
	}
	return tabNames[t]
}

func ParseTab(raw string) (Tab, bool) {
	for i, name := range tabNames {
		if strings.EqualFold(strings.TrimSpace(raw), name) {
			return Tab(i), true
		}
	}
	return TabReview, false
}

type Options struct {
	Context         context.Context
	Logger          *zap.Logger
	ReviewPageSize  int
	ListPageSize    int
	MonthlyPageSize int
	Snapshot        *session.Snapshot
	CopyFn          func(string) error
}

// jobForm is the monthly figures request form.
type jobForm struct {
	open       bool
	focus      int
	month      textinput.Model
	field      textinput.Model
	submitting bool
}

func newJobForm() jobForm {
	month := textinput.New()
	month.Prompt = "Month: "
	month.Placeholder = "e.g. March"
	month.CharLimit = 20
	month.Width = 24

	field := textinput.New()
	field.Prompt = "Field of excellence: "
	field.Placeholder = "e.g. Science"
	field.CharLimit = 80
	field.Width = 40

	return jobForm{month: month, field: field}
}

type Model struct {
	ctx       context.Context
	service   Service
	logger    *zap.Logger
	styles    Styles
	formatter *adapter.ResponseFormatter
	copyFn    func(string) error

	active Tab
	width  int
	height int

	review         *review.State
	reviewLoading  bool
	reviewLoaded   bool
	reviewFellBack bool
	marking        bool
	copyMessage    string

	figures        *review.State
	figuresResult  review.ListResult
	figuresLoading bool
	figuresLoaded  bool
	figuresTable   table.Model
	rawPostOpen    bool
	rawPostCode    string
	rawPost        *domain.FigureSummary
	rawPostError   string
	rawPostLoading bool

	monthly        *review.State
	monthlyResult  review.ListResult
	monthlyLoading bool
	monthlyLoaded  bool
	form           jobForm
	jobMessage     string
	jobError       string
	lastJob        *domain.JobResult

	videos        domain.VideoGroups
	videosLoading bool
	videosLoaded  bool
	videosError   string
}

func NewModel(service Service, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.CopyFn
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	listSize := opts.ListPageSize
	if listSize <= 0 {
		listSize = constants.Paging.ListPageSize
	}
	reviewSize := opts.ReviewPageSize
	if reviewSize <= 0 {
		reviewSize = constants.Paging.ReviewPageSize
	}
	monthlySize := opts.MonthlyPageSize
	if monthlySize <= 0 {
		monthlySize = constants.Paging.MonthlyPageSize
	}

	m := Model{
		ctx:          ctx,
		service:      service,
		logger:       logger,
		styles:       DefaultStyles(),
		formatter:    adapter.NewResponseFormatter(),
		copyFn:       copyFn,
		review:       review.NewState(review.FilterCreated, reviewSize),
		figures:      review.NewState(review.FilterCreated, listSize),
		monthly:      review.NewState(review.FilterAll, monthlySize),
		figuresTable: newFiguresTable(),
		form:         newJobForm(),
	}

	if snap := opts.Snapshot; snap != nil {
		if tab, ok := ParseTab(snap.ActiveTab); ok {
			m.active = tab
		}
		m.review.Restore(review.Snapshot{SelectedCode: snap.ReviewCode})
		m.figures.Restore(review.Snapshot{
			Filter:       review.Filter(snap.FiguresFilter),
			Page:         snap.FiguresPage,
			SelectedCode: snap.FiguresCode,
		})
		m.monthly.Restore(review.Snapshot{Page: snap.MonthlyPage})
	}

	m.setLoading(m.active)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return m.loadCmd(m.active)
}

// Snapshot is the browsing position to persist when the UI exits.
func (m Model) Snapshot() session.Snapshot {
	figures := m.figures.Snapshot()
	return session.Snapshot{
		ActiveTab:     m.active.String(),
		ReviewCode:    m.review.Snapshot().SelectedCode,
		FiguresFilter: string(figures.Filter),
		FiguresPage:   figures.Page,
		FiguresCode:   figures.SelectedCode,
		MonthlyPage:   m.monthly.Snapshot().Page,
	}
}

// ActiveTab reports the tab currently shown.
func (m Model) ActiveTab() Tab {
	return m.active
}

// ReviewState exposes the review queue state, mainly for tests and snapshots.
func (m Model) ReviewState() *review.State {
	return m.review
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case reviewLoadSuccessMsg:
		m.reviewLoading = false
		m.reviewLoaded = true
		m.reviewFellBack = msg.result.FellBack
		changed := m.review.ApplyList(msg.result)
		if changed || (!m.review.HasDetail() && !m.review.DetailLoading) {
			return m, m.beginDetail()
		}
		return m, nil

	case reviewLoadErrorMsg:
		m.reviewLoading = false
		m.reviewLoaded = true
		m.reviewFellBack = false
		m.review.ApplyListError(review.MessageLoadPersonalities(msg.err))
		return m, nil

	case detailLoadedMsg:
		if !m.review.ApplyDetails(msg.req, msg.details, msg.err) {
			m.logger.Debug("Dropped stale detail response",
				zap.String("code", msg.req.Code),
				zap.Uint64("token", msg.req.Token),
			)
		}
		return m, nil

	case markPostedSuccessMsg:
		m.marking = false
		if m.review.ApplyPosted(msg.id) {
			return m, m.beginDetail()
		}
		return m, nil

	case markPostedErrorMsg:
		m.marking = false
		m.review.ActionMessage = msg.err.Error()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.logger.Warn("Clipboard write failed", zap.Error(msg.err))
		}
		m.copyMessage = review.CopyMessage(msg.err)
		return m, nil

	case figuresLoadSuccessMsg:
		if msg.result.Filter != m.figures.Filter || msg.result.Page != m.figures.Page {
			return m, nil
		}
		m.figuresLoading = false
		m.figuresLoaded = true
		m.figuresResult = msg.result
		m.figures.ApplyList(msg.result)
		m.syncFiguresTable()
		return m, nil

	case figuresLoadErrorMsg:
		if msg.filter != m.figures.Filter || msg.page != m.figures.Page {
			return m, nil
		}
		m.figuresLoading = false
		m.figuresLoaded = true
		m.figuresResult = review.ListResult{}
		m.figures.ApplyListError(review.MessageLoadFigures(msg.err))
		m.syncFiguresTable()
		return m, nil

	case rawPostLoadedMsg:
		if msg.code != m.rawPostCode {
			return m, nil
		}
		m.rawPostLoading = false
		if msg.err != nil {
			m.rawPost = nil
			m.rawPostError = review.MessageLoadRawPost(msg.err)
			return m, nil
		}
		m.rawPost = msg.figure
		m.rawPostError = ""
		return m, nil

	case monthlyLoadSuccessMsg:
		if msg.result.Page != m.monthly.Page {
			return m, nil
		}
		m.monthlyLoading = false
		m.monthlyLoaded = true
		m.monthlyResult = msg.result
		m.monthly.ApplyList(msg.result)
		return m, nil

	case monthlyLoadErrorMsg:
		if msg.page != m.monthly.Page {
			return m, nil
		}
		m.monthlyLoading = false
		m.monthlyLoaded = true
		m.monthlyResult = review.ListResult{}
		m.monthly.ApplyListError(review.MessageLoadMonthly(msg.err))
		return m, nil

	case jobQueuedSuccessMsg:
		m.form.submitting = false
		m.jobError = ""
		m.jobMessage = msg.outcome.Message
		result := msg.outcome.Result
		m.lastJob = &result
		m.closeForm(true)
		m.monthly.Page = 1
		m.monthlyLoading = true
		return m, loadMonthlyCmd(m.ctx, m.service, 1)

	case jobQueuedErrorMsg:
		m.form.submitting = false
		m.jobMessage = ""
		m.jobError = msg.err.Error()
		return m, nil

	case videosLoadSuccessMsg:
		m.videosLoading = false
		m.videosLoaded = true
		m.videosError = ""
		m.videos = msg.groups
		return m, nil

	case videosLoadErrorMsg:
		m.videosLoading = false
		m.videosLoaded = true
		m.videos = domain.VideoGroups{}
		m.videosError = review.MessageLoadVideos(msg.err)
		return m, nil
	}

	if m.form.open {
		return m.updateFormInputs(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.active == TabMonthly && m.form.open {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m.switchTab((m.active + 1) % Tab(len(tabNames)))
	case "shift+tab":
		return m.switchTab((m.active + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "1", "2", "3", "4":
		return m.switchTab(Tab(msg.String()[0] - '1'))
	}

	switch m.active {
	case TabReview:
		return m.handleReviewKey(msg)
	case TabFigures:
		return m.handleFiguresKey(msg)
	case TabMonthly:
		return m.handleMonthlyKey(msg)
	case TabVideos:
		return m.handleVideosKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.active = tab
	if m.isLoaded(tab) || m.isLoading(tab) {
		return m, nil
	}
	m.setLoading(tab)
	return m, m.loadCmd(tab)
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if m.reviewLoading || m.marking {
			return m, nil
		}
		m.reviewLoading = true
		return m, loadReviewCmd(m.ctx, m.service)
	case "up", "k":
		if m.marking || !m.review.Previous() {
			return m, nil
		}
		m.copyMessage = ""
		return m, m.beginDetail()
	case "down", "j":
		if m.marking || !m.review.Next() {
			return m, nil
		}
		m.copyMessage = ""
		return m, m.beginDetail()
	case "g", "home":
		if m.marking || !m.review.SelectFirst() {
			return m, nil
		}
		m.copyMessage = ""
		m.review.ActionMessage = ""
		return m, m.beginDetail()
	case "c":
		view, ok := m.review.View()
		if !ok {
			return m, nil
		}
		return m, copyCmd(m.copyFn, review.CopyText(view))
	case "p":
		current, ok := m.review.Current()
		if !ok || m.marking {
			return m, nil
		}
		m.marking = true
		m.review.ActionMessage = ""
		m.copyMessage = ""
		return m, markPostedCmd(m.ctx, m.service, current.ID)
	}
	return m, nil
}

func (m Model) handleFiguresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.rawPostOpen {
		switch msg.String() {
		case "esc", "backspace", "enter":
			m.rawPostOpen = false
			m.rawPostCode = ""
			m.rawPost = nil
			m.rawPostError = ""
			m.rawPostLoading = false
		}
		return m, nil
	}

	switch msg.String() {
	case "r":
		return m.reloadFigures()
	case "up", "k":
		m.figures.Previous()
		m.syncFiguresCursor()
		return m, nil
	case "down", "j":
		m.figures.Next()
		m.syncFiguresCursor()
		return m, nil
	case "f":
		m.figures.Filter = nextFilter(m.figures.Filter)
		m.figures.Page = 1
		return m.reloadFigures()
	case "left", "h", "[":
		if m.figures.Page <= 1 || m.figuresLoading {
			return m, nil
		}
		m.figures.Page--
		return m.reloadFigures()
	case "right", "l", "]":
		if m.figuresLoading || m.figures.Page >= review.TotalPages(m.figures.TotalCount, m.figures.PageSize) {
			return m, nil
		}
		m.figures.Page++
		return m.reloadFigures()
	case "enter":
		current, ok := m.figures.Current()
		if !ok || !current.Selectable() {
			return m, nil
		}
		m.rawPostOpen = true
		m.rawPostCode = current.Code
		m.rawPost = nil
		m.rawPostError = ""
		m.rawPostLoading = true
		return m, loadRawPostCmd(m.ctx, m.service, current.Code)
	}
	return m, nil
}

func (m Model) reloadFigures() (tea.Model, tea.Cmd) {
	m.figuresLoading = true
	return m, loadFiguresCmd(m.ctx, m.service, m.figures.Filter, m.figures.Page)
}

func nextFilter(f review.Filter) review.Filter {
	switch f {
	case review.FilterCreated:
		return review.FilterPending
	case review.FilterPending:
		return review.FilterAll
	default:
		return review.FilterCreated
	}
}

func (m Model) handleMonthlyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.jobError = ""
		cmd := m.openForm()
		return m, cmd
	case "r":
		m.monthlyLoading = true
		return m, loadMonthlyCmd(m.ctx, m.service, m.monthly.Page)
	case "up", "k":
		m.monthly.Previous()
		return m, nil
	case "down", "j":
		m.monthly.Next()
		return m, nil
	case "left", "h", "[":
		if m.monthly.Page <= 1 || m.monthlyLoading {
			return m, nil
		}
		m.monthly.Page--
		m.monthlyLoading = true
		return m, loadMonthlyCmd(m.ctx, m.service, m.monthly.Page)
	case "right", "l", "]":
		if m.monthlyLoading || m.monthly.Page >= review.TotalPages(m.monthly.TotalCount, m.monthly.PageSize) {
			return m, nil
		}
		m.monthly.Page++
		m.monthlyLoading = true
		return m, loadMonthlyCmd(m.ctx, m.service, m.monthly.Page)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm(false)
		return m, nil
	case "tab", "shift+tab", "up", "down":
		cmd := m.toggleFormFocus()
		return m, cmd
	case "enter":
		if m.form.submitting {
			return m, nil
		}
		if m.form.focus == 0 && strings.TrimSpace(m.form.field.Value()) == "" {
			cmd := m.toggleFormFocus()
			return m, cmd
		}
		m.form.submitting = true
		m.jobError = ""
		m.jobMessage = ""
		return m, queueJobCmd(m.ctx, m.service, m.form.month.Value(), m.form.field.Value())
	}
	return m.updateFormInputs(msg)
}

func (m Model) updateFormInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.form.focus == 0 {
		m.form.month, cmd = m.form.month.Update(msg)
	} else {
		m.form.field, cmd = m.form.field.Update(msg)
	}
	return m, cmd
}

func (m *Model) openForm() tea.Cmd {
	m.form.open = true
	m.form.focus = 0
	m.form.field.Blur()
	return m.form.month.Focus()
}

func (m *Model) toggleFormFocus() tea.Cmd {
	if m.form.focus == 0 {
		m.form.focus = 1
		m.form.month.Blur()
		return m.form.field.Focus()
	}
	m.form.focus = 0
	m.form.field.Blur()
	return m.form.month.Focus()
}

func (m *Model) closeForm(reset bool) {
	m.form.open = false
	m.form.month.Blur()
	m.form.field.Blur()
	if reset {
		m.form.month.SetValue("")
		m.form.field.SetValue("")
	}
}

func (m Model) handleVideosKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "r" && !m.videosLoading {
		m.videosLoading = true
		return m, loadVideosCmd(m.ctx, m.service)
	}
	return m, nil
}

func (m *Model) beginDetail() tea.Cmd {
	req, ok := m.review.BeginDetail()
	if !ok {
		return nil
	}
	return loadDetailCmd(m.ctx, m.service, req)
}

func (m Model) loadCmd(tab Tab) tea.Cmd {
	switch tab {
	case TabFigures:
		return loadFiguresCmd(m.ctx, m.service, m.figures.Filter, m.figures.Page)
	case TabMonthly:
		return loadMonthlyCmd(m.ctx, m.service, m.monthly.Page)
	case TabVideos:
		return loadVideosCmd(m.ctx, m.service)
	default:
		return loadReviewCmd(m.ctx, m.service)
	}
}

func (m *Model) setLoading(tab Tab) {
	switch tab {
	case TabFigures:
		m.figuresLoading = true
	case TabMonthly:
		m.monthlyLoading = true
	case TabVideos:
		m.videosLoading = true
	default:
		m.reviewLoading = true
	}
}

func (m Model) isLoading(tab Tab) bool {
	switch tab {
	case TabFigures:
		return m.figuresLoading
	case TabMonthly:
		return m.monthlyLoading
	case TabVideos:
		return m.videosLoading
	default:
		return m.reviewLoading
	}
}

func (m Model) isLoaded(tab Tab) bool {
	switch tab {
	case TabFigures:
		return m.figuresLoaded
	case TabMonthly:
		return m.monthlyLoaded
	case TabVideos:
		return m.videosLoaded
	default:
		return m.reviewLoaded
	}
}
