package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/service/session"
	"github.com/kapu/figures-review-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type figuresCall struct {
	filter review.Filter
	page   int
}

type fakeService struct {
	mu sync.Mutex

	reviewRecords []domain.FigureSummary
	reviewErr     error
	reviewCalls   int

	figures      func(filter review.Filter, page int) (review.ListResult, error)
	figuresCalls []figuresCall

	monthlyCalls []int

	detailCalls []string
	detailErr   error

	rawPost *domain.FigureSummary

	markedIDs []string
	markErr   error

	queued   [][2]string
	queueErr error

	videos    domain.VideoGroups
	videosErr error
}

func (f *fakeService) LoadReviewQueue(ctx context.Context) (review.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviewCalls++
	if f.reviewErr != nil {
		return review.ListResult{}, f.reviewErr
	}
	return review.ListResult{
		Records:    f.reviewRecords,
		TotalCount: len(f.reviewRecords),
		TotalKnown: true,
		Page:       1,
		PageSize:   200,
		Filter:     review.FilterCreated,
	}, nil
}

func (f *fakeService) LoadFigures(ctx context.Context, filter review.Filter, page int) (review.ListResult, error) {
	f.mu.Lock()
	f.figuresCalls = append(f.figuresCalls, figuresCall{filter: filter, page: page})
	fn := f.figures
	f.mu.Unlock()
	if fn != nil {
		return fn(filter, page)
	}
	return review.ListResult{Filter: filter, Page: page, PageSize: 20}, nil
}

func (f *fakeService) LoadMonthlyFigures(ctx context.Context, page int) (review.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monthlyCalls = append(f.monthlyCalls, page)
	return review.ListResult{
		Records:    []domain.FigureSummary{{ID: "m1", Code: "M1", Name: "Monthly One"}},
		TotalCount: 1,
		TotalKnown: true,
		Page:       page,
		PageSize:   20,
		Filter:     review.FilterAll,
	}, nil
}

func (f *fakeService) LoadDetails(ctx context.Context, code string) (review.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, code)
	if f.detailErr != nil {
		return review.Details{}, f.detailErr
	}
	return review.Details{
		Bio:    &domain.FigureBio{Code: code, Name: "Bio " + code, Challenges: "Story of " + code},
		Quotes: &domain.QuoteBundle{Code: code, Quotes: "1. First quote\n2. Second quote"},
	}, nil
}

func (f *fakeService) GetRawPost(ctx context.Context, code string) (*domain.FigureSummary, error) {
	return f.rawPost, nil
}

func (f *fakeService) MarkPosted(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedIDs = append(f.markedIDs, id)
	return f.markErr
}

func (f *fakeService) QueueMonthlyFigures(ctx context.Context, month, field string) (*review.JobOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, [2]string{month, field})
	if f.queueErr != nil {
		return nil, f.queueErr
	}
	return &review.JobOutcome{
		Result:  domain.JobResult{JobID: "job-1", Status: "queued"},
		Message: "Monthly figures job queued. Pull data to see updates.",
	}, nil
}

func (f *fakeService) LoadVideos(ctx context.Context) (domain.VideoGroups, error) {
	return f.videos, f.videosErr
}

func threeRecords() []domain.FigureSummary {
	return []domain.FigureSummary{
		{ID: "1", Code: "A", Name: "Ada", QuoteCreated: true},
		{ID: "2", Code: "B", Name: "Grace", QuoteCreated: true},
		{ID: "3", Code: "C", Name: "Katherine", QuoteCreated: true},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds every resulting message back into the model until
// nothing is left to run.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		updated, follow := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, follow)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(key)
	return drain(t, updated.(Model), cmd)
}

func newTestModel(t *testing.T, svc *fakeService, opts Options) Model {
	t.Helper()
	if opts.CopyFn == nil {
		opts.CopyFn = func(string) error { return nil }
	}
	m := NewModel(svc, opts)
	// blinking cursors schedule timers that would keep drain busy
	m.form.month.Cursor.SetMode(cursor.CursorStatic)
	m.form.field.Cursor.SetMode(cursor.CursorStatic)
	return drain(t, m, m.Init())
}

func TestInitLoadsReviewQueueAndFirstDetail(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	s := m.ReviewState()
	assert.Equal(t, 1, svc.reviewCalls)
	assert.Equal(t, "A", s.SelectedCode)
	require.NotNil(t, s.Bio)
	assert.Equal(t, "A", s.Bio.Code)
	assert.False(t, s.DetailLoading)
	assert.Equal(t, []string{"A"}, svc.detailCalls)
	assert.Contains(t, m.View(), "Bio A")
}

func TestReviewNavigationLoadsDetail(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("j"))
	assert.Equal(t, "B", m.ReviewState().SelectedCode)
	assert.Equal(t, "B", m.ReviewState().Bio.Code)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "C", m.ReviewState().SelectedCode)

	m = press(t, m, runes("g"))
	assert.Equal(t, "A", m.ReviewState().SelectedCode)
	assert.Equal(t, []string{"A", "B", "C", "A"}, svc.detailCalls)
}

func TestStaleDetailIsDropped(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	updated, toB := m.Update(runes("j"))
	m = updated.(Model)
	updated, toA := m.Update(runes("k"))
	m = updated.(Model)
	require.NotNil(t, toB)
	require.NotNil(t, toA)

	updated, _ = m.Update(toB())
	m = updated.(Model)
	assert.Nil(t, m.ReviewState().Bio)
	assert.True(t, m.ReviewState().DetailLoading)

	updated, _ = m.Update(toA())
	m = updated.(Model)
	require.NotNil(t, m.ReviewState().Bio)
	assert.Equal(t, "A", m.ReviewState().Bio.Code)
}

func TestDetailErrorIsShown(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords(), detailErr: review.ErrNoDetails}
	m := newTestModel(t, svc, Options{})

	assert.Equal(t, review.ErrNoDetails.Error(), m.ReviewState().DetailError)
	assert.Contains(t, m.View(), review.ErrNoDetails.Error())
}

func TestReviewLoadError(t *testing.T) {
	svc := &fakeService{reviewErr: errors.NewAPIError("backend returned 503", 503, nil)}
	m := newTestModel(t, svc, Options{})

	assert.Equal(t, "Unable to load personalities (503).", m.ReviewState().ListError)
	assert.Contains(t, m.View(), "Unable to load personalities (503).")
}

func TestMarkPostedAdvancesToNext(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("p"))

	s := m.ReviewState()
	assert.Equal(t, []string{"1"}, svc.markedIDs)
	assert.False(t, m.marking)
	assert.Len(t, s.Records, 2)
	assert.Equal(t, "B", s.SelectedCode)
	assert.Equal(t, "Marked as posted and removed from list.", s.ActionMessage)
	assert.Equal(t, "B", s.Bio.Code)
}

func TestMarkPostedLastFallsBackToPrevious(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("j"))
	m = press(t, m, runes("j"))

	m = press(t, m, runes("p"))
	assert.Equal(t, []string{"3"}, svc.markedIDs)
	assert.Equal(t, "B", m.ReviewState().SelectedCode)
}

func TestMarkPostedFailureKeepsRecord(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		markErr:       &review.ActionError{Message: "Unable to mark as posted (500)."},
	}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("p"))
	s := m.ReviewState()
	assert.Len(t, s.Records, 3)
	assert.Equal(t, "A", s.SelectedCode)
	assert.Equal(t, "Unable to mark as posted (500).", s.ActionMessage)
}

func TestNavigationBlockedWhileMarking(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	updated, pending := m.Update(runes("p"))
	m = updated.(Model)
	require.NotNil(t, pending)
	assert.True(t, m.marking)

	updated, cmd := m.Update(runes("j"))
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "A", m.ReviewState().SelectedCode)

	m = drain(t, m, pending)
	assert.Equal(t, "B", m.ReviewState().SelectedCode)
}

func TestReloadBlockedWhileMarking(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	updated, pending := m.Update(runes("p"))
	m = updated.(Model)
	require.NotNil(t, pending)

	updated, cmd := m.Update(runes("r"))
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.reviewLoading)
	assert.Equal(t, 1, svc.reviewCalls)

	m = drain(t, m, pending)
	assert.Equal(t, []string{"1"}, svc.markedIDs)
	assert.Equal(t, "B", m.ReviewState().SelectedCode)

	m = press(t, m, runes("r"))
	assert.Equal(t, 2, svc.reviewCalls)
}

func TestCopyWritesDetailText(t *testing.T) {
	var copied string
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{CopyFn: func(text string) error {
		copied = text
		return nil
	}})

	m = press(t, m, runes("c"))
	assert.Contains(t, copied, "Name: Bio A")
	assert.Contains(t, copied, "Story of A")
	assert.Equal(t, "Copied to clipboard.", m.copyMessage)

	m = press(t, m, runes("j"))
	assert.Empty(t, m.copyMessage)
}

func TestCopyDenied(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{CopyFn: func(string) error { return fmt.Errorf("denied") }})

	m = press(t, m, runes("c"))
	assert.Equal(t, "Unable to copy. Clipboard access was denied.", m.copyMessage)
}

func TestFiguresTabFilterAndPaging(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		figures: func(filter review.Filter, page int) (review.ListResult, error) {
			return review.ListResult{
				Records:    threeRecords(),
				TotalCount: 45,
				TotalKnown: true,
				Page:       page,
				PageSize:   20,
				Filter:     filter,
			}, nil
		},
	}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("2"))
	assert.Equal(t, TabFigures, m.ActiveTab())
	require.Len(t, svc.figuresCalls, 1)
	assert.Equal(t, figuresCall{filter: review.FilterCreated, page: 1}, svc.figuresCalls[0])
	assert.Len(t, m.figuresTable.Rows(), 3)

	m = press(t, m, runes("f"))
	assert.Equal(t, figuresCall{filter: review.FilterPending, page: 1}, svc.figuresCalls[1])

	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))
	assert.Equal(t, 3, m.figures.Page)

	m = press(t, m, runes("]"))
	assert.Len(t, svc.figuresCalls, 4)

	m = press(t, m, runes("["))
	assert.Equal(t, figuresCall{filter: review.FilterPending, page: 2}, svc.figuresCalls[4])

	// switching back and forth does not reload a tab that already loaded
	m = press(t, m, runes("1"))
	m = press(t, m, runes("2"))
	assert.Len(t, svc.figuresCalls, 5)
	assert.Contains(t, m.View(), "Total 45")
	assert.Contains(t, m.View(), "Born")
}

func TestStaleFiguresResultIsDropped(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("2"))

	updated, _ := m.Update(figuresLoadSuccessMsg{result: review.ListResult{
		Records: threeRecords(),
		Filter:  review.FilterAll,
		Page:    1,
	}})
	m = updated.(Model)
	assert.Empty(t, m.figures.Records)
}

func TestStaleFiguresErrorIsDropped(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		figures: func(filter review.Filter, page int) (review.ListResult, error) {
			return review.ListResult{Records: threeRecords(), TotalCount: 3, Page: page, PageSize: 20, Filter: filter}, nil
		},
	}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("2"))
	require.Len(t, m.figures.Records, 3)

	// a request for another filter failed after the current one landed
	updated, _ := m.Update(figuresLoadErrorMsg{
		filter: review.FilterAll,
		page:   1,
		err:    fmt.Errorf("timeout"),
	})
	m = updated.(Model)
	assert.Len(t, m.figures.Records, 3)
	assert.Empty(t, m.figures.ListError)
	assert.Len(t, m.figuresTable.Rows(), 3)

	updated, _ = m.Update(figuresLoadErrorMsg{
		filter: review.FilterCreated,
		page:   2,
		err:    fmt.Errorf("timeout"),
	})
	m = updated.(Model)
	assert.Len(t, m.figures.Records, 3)
	assert.Empty(t, m.figures.ListError)

	updated, _ = m.Update(figuresLoadErrorMsg{
		filter: review.FilterCreated,
		page:   1,
		err:    fmt.Errorf("timeout"),
	})
	m = updated.(Model)
	assert.Empty(t, m.figures.Records)
	assert.NotEmpty(t, m.figures.ListError)
}

func TestStaleMonthlyErrorIsDropped(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("3"))
	require.Len(t, m.monthly.Records, 1)

	updated, _ := m.Update(monthlyLoadErrorMsg{page: 2, err: fmt.Errorf("timeout")})
	m = updated.(Model)
	assert.Len(t, m.monthly.Records, 1)
	assert.Empty(t, m.monthly.ListError)

	updated, _ = m.Update(monthlyLoadErrorMsg{page: 1, err: fmt.Errorf("timeout")})
	m = updated.(Model)
	assert.Empty(t, m.monthly.Records)
	assert.NotEmpty(t, m.monthly.ListError)
}

func TestFiguresRawPost(t *testing.T) {
	raw := &domain.FigureSummary{ID: "2", Code: "B", Name: "Grace", Country: "USA"}
	svc := &fakeService{
		reviewRecords: threeRecords(),
		rawPost:       raw,
		figures: func(filter review.Filter, page int) (review.ListResult, error) {
			return review.ListResult{Records: threeRecords(), TotalCount: 3, Page: page, PageSize: 20, Filter: filter}, nil
		},
	}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("2"))
	m = press(t, m, runes("j"))
	assert.Equal(t, 1, m.figuresTable.Cursor())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.rawPostOpen)
	assert.Equal(t, raw, m.rawPost)
	assert.Contains(t, m.View(), "Grace")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.rawPostOpen)
}

func TestMonthlyJobFormQueuesAndRefreshes(t *testing.T) {
	svc := &fakeService{reviewRecords: threeRecords()}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("3"))
	assert.Equal(t, []int{1}, svc.monthlyCalls)

	updated, _ := m.Update(runes("n"))
	m = updated.(Model)
	require.True(t, m.form.open)

	m = press(t, m, runes("March"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.form.focus)
	assert.Empty(t, svc.queued)

	m = press(t, m, runes("Science"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, svc.queued, 1)
	assert.Equal(t, [2]string{"March", "Science"}, svc.queued[0])
	assert.False(t, m.form.open)
	assert.Empty(t, m.form.month.Value())
	assert.Equal(t, "Monthly figures job queued. Pull data to see updates.", m.jobMessage)
	require.NotNil(t, m.lastJob)
	assert.Equal(t, "job-1", m.lastJob.JobID)
	assert.Equal(t, []int{1, 1}, svc.monthlyCalls)
	assert.Contains(t, m.View(), "job-1")
}

func TestMonthlyJobFormKeepsInputOnError(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		queueErr:      &review.ActionError{Message: "Month and field of excellence are required."},
	}
	m := newTestModel(t, svc, Options{})
	m = press(t, m, runes("3"))
	updated, _ := m.Update(runes("n"))
	m = updated.(Model)

	m = press(t, m, runes("March"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes(" "))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.form.open)
	assert.Equal(t, "March", m.form.month.Value())
	assert.Equal(t, "Month and field of excellence are required.", m.jobError)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.form.open)
}

func TestVideosTab(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		videos: domain.VideoGroups{
			Created: []domain.VideoRecord{{ID: "v1", Title: "Ada Lovelace", Status: domain.VideoStatusCreated}},
			Failed:  []domain.VideoRecord{{ID: "v2", Title: "", Status: domain.VideoStatusFailed, ErrorReason: "render\nfailed"}},
		},
	}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("4"))
	assert.Equal(t, 2, m.videos.Total())
	view := m.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "Untitled video")
	assert.Contains(t, view, "render failed")
}

func TestVideosTabError(t *testing.T) {
	svc := &fakeService{
		reviewRecords: threeRecords(),
		videosErr:     errors.NewAPIError("backend returned 500", 500, nil),
	}
	m := newTestModel(t, svc, Options{})

	m = press(t, m, runes("4"))
	assert.Equal(t, "Unable to load videos (500).", m.videosError)
}

func TestSnapshotRestoreAndSave(t *testing.T) {
	var seen []figuresCall
	svc := &fakeService{
		reviewRecords: threeRecords(),
		figures: func(filter review.Filter, page int) (review.ListResult, error) {
			seen = append(seen, figuresCall{filter: filter, page: page})
			return review.ListResult{Records: threeRecords(), TotalCount: 60, Page: page, PageSize: 20, Filter: filter}, nil
		},
	}
	m := newTestModel(t, svc, Options{Snapshot: &session.Snapshot{
		ActiveTab:     "Figures",
		ReviewCode:    "C",
		FiguresFilter: "pending",
		FiguresPage:   2,
		FiguresCode:   "B",
	}})

	assert.Equal(t, TabFigures, m.ActiveTab())
	require.Len(t, seen, 1)
	assert.Equal(t, figuresCall{filter: review.FilterPending, page: 2}, seen[0])
	assert.Equal(t, "B", m.figures.SelectedCode)
	assert.Equal(t, 0, svc.reviewCalls)

	m = press(t, m, runes("1"))
	assert.Equal(t, "C", m.ReviewState().SelectedCode)
	assert.Equal(t, []string{"C"}, svc.detailCalls)

	snap := m.Snapshot()
	assert.Equal(t, "Review", snap.ActiveTab)
	assert.Equal(t, "C", snap.ReviewCode)
	assert.Equal(t, "pending", snap.FiguresFilter)
	assert.Equal(t, 2, snap.FiguresPage)
	assert.Equal(t, "B", snap.FiguresCode)
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab(" monthly ")
	assert.True(t, ok)
	assert.Equal(t, TabMonthly, tab)

	_, ok = ParseTab("nope")
	assert.False(t, ok)
}
