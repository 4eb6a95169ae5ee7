package review

import (
	"context"
	stderrors "errors"

	"github.com/kapu/figures-review-go/internal/api"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/pkg/errors"
	"go.uber.org/zap"
)

// FigureSource is the slice of the backend the list controller reads from.
type FigureSource interface {
	ListRawPosts(ctx context.Context, query api.RawPostQuery) (*api.FigurePage, error)
	ListMonthlyFigures(ctx context.Context, page, pageSize int) (*api.FigurePage, error)
}

// ListResult is one loaded page plus its bookkeeping.
type ListResult struct {
	Records    []domain.FigureSummary `json:"records"`
	TotalCount int                    `json:"total_count"`
	TotalKnown bool                   `json:"total_known"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Filter     Filter                 `json:"filter"`
	// FellBack is set when the review queue had to drop its quote filter.
	FellBack bool `json:"fell_back,omitempty"`
}

type Stats struct {
	Total  int `json:"total"`
	Ready  int `json:"ready"`
	Posted int `json:"posted"`
}

// Stats counts ready and posted rows on the loaded page; Total is the
// backend's count when it sent one.
func (r ListResult) Stats() Stats {
	stats := Stats{Total: r.TotalCount}
	for _, rec := range r.Records {
		if rec.QuoteCreated {
			stats.Ready++
		}
		if rec.Posted {
			stats.Posted++
		}
	}
	return stats
}

func (r ListResult) TotalPages() int {
	return TotalPages(r.TotalCount, r.PageSize)
}

func (r ListResult) HasPrev() bool {
	return r.Page > 1
}

func (r ListResult) HasNext() bool {
	return r.Page < r.TotalPages()
}

// TotalPages is max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

type ListController struct {
	source          FigureSource
	logger          *zap.Logger
	reviewPageSize  int
	listPageSize    int
	monthlyPageSize int
}

type ListOptions struct {
	ReviewPageSize  int
	ListPageSize    int
	MonthlyPageSize int
}

func NewListController(source FigureSource, opts ListOptions, logger *zap.Logger) *ListController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListController{
		source:          source,
		logger:          logger,
		reviewPageSize:  opts.ReviewPageSize,
		listPageSize:    opts.ListPageSize,
		monthlyPageSize: opts.MonthlyPageSize,
	}
}

func (lc *ListController) ListPageSize() int {
	return lc.listPageSize
}

func (lc *ListController) ReviewPageSize() int {
	return lc.reviewPageSize
}

func (lc *ListController) MonthlyPageSize() int {
	return lc.monthlyPageSize
}

// Load fetches one page of raw posts under filter.
func (lc *ListController) Load(ctx context.Context, filter Filter, page int) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	resp, err := lc.source.ListRawPosts(ctx, api.RawPostQuery{
		Page:         page,
		PageSize:     lc.listPageSize,
		QuoteCreated: filter.QuoteCreated(),
	})
	if err != nil {
		lc.logger.Warn("Failed to load raw posts",
			zap.String("filter", string(filter)),
			zap.Int("page", page),
			zap.Error(err),
		)
		return ListResult{}, err
	}
	return lc.result(resp, filter, page, lc.listPageSize), nil
}

// LoadReviewQueue loads the first page of records whose quotes exist. When
// that comes back empty it asks once more without the filter. A server error
// on the second call leaves the queue empty.
func (lc *ListController) LoadReviewQueue(ctx context.Context) (ListResult, error) {
	ready := true
	resp, err := lc.source.ListRawPosts(ctx, api.RawPostQuery{
		Page:         1,
		PageSize:     lc.reviewPageSize,
		QuoteCreated: &ready,
	})
	if err != nil {
		lc.logger.Warn("Failed to load review queue", zap.Error(err))
		return ListResult{}, err
	}
	if len(resp.Items) > 0 {
		return lc.result(resp, FilterCreated, 1, lc.reviewPageSize), nil
	}

	fallback, err := lc.source.ListRawPosts(ctx, api.RawPostQuery{
		Page:     1,
		PageSize: lc.reviewPageSize,
	})
	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) {
			lc.logger.Warn("Review queue fallback failed, keeping empty list",
				zap.Int("status", apiErr.StatusCode),
			)
			return lc.result(resp, FilterCreated, 1, lc.reviewPageSize), nil
		}
		lc.logger.Warn("Review queue fallback failed", zap.Error(err))
		return ListResult{}, err
	}

	result := lc.result(fallback, FilterAll, 1, lc.reviewPageSize)
	result.FellBack = true
	return result, nil
}

func (lc *ListController) LoadMonthlyFigures(ctx context.Context, page int) (ListResult, error) {
	if page < 1 {
		page = 1
	}
	resp, err := lc.source.ListMonthlyFigures(ctx, page, lc.monthlyPageSize)
	if err != nil {
		lc.logger.Warn("Failed to load monthly figures", zap.Int("page", page), zap.Error(err))
		return ListResult{}, err
	}
	return lc.result(resp, FilterAll, page, lc.monthlyPageSize), nil
}

func (lc *ListController) result(resp *api.FigurePage, filter Filter, page, pageSize int) ListResult {
	records := resp.Items
	if records == nil {
		records = []domain.FigureSummary{}
	}
	return ListResult{
		Records:    records,
		TotalCount: resp.TotalCount,
		TotalKnown: resp.TotalKnown,
		Page:       page,
		PageSize:   pageSize,
		Filter:     filter,
	}
}
