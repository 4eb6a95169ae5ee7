package tui

import (
	"context"

	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
)

// Service is what the review UI needs from the backend side.
type Service interface {
	LoadReviewQueue(ctx context.Context) (review.ListResult, error)
	LoadFigures(ctx context.Context, filter review.Filter, page int) (review.ListResult, error)
	LoadMonthlyFigures(ctx context.Context, page int) (review.ListResult, error)
	LoadDetails(ctx context.Context, code string) (review.Details, error)
	GetRawPost(ctx context.Context, code string) (*domain.FigureSummary, error)
	MarkPosted(ctx context.Context, id string) error
	QueueMonthlyFigures(ctx context.Context, month, field string) (*review.JobOutcome, error)
	LoadVideos(ctx context.Context) (domain.VideoGroups, error)
}

// RawPostSource serves single raw post lookups.
type RawPostSource interface {
	GetRawPost(ctx context.Context, code string) (*domain.FigureSummary, error)
}

type reviewService struct {
	svc      *review.Service
	rawPosts RawPostSource
}

// NewService adapts the review components and a raw post source to Service.
func NewService(svc *review.Service, rawPosts RawPostSource) Service {
	return &reviewService{svc: svc, rawPosts: rawPosts}
}

func (s *reviewService) LoadReviewQueue(ctx context.Context) (review.ListResult, error) {
	return s.svc.Lists.LoadReviewQueue(ctx)
}

func (s *reviewService) LoadFigures(ctx context.Context, filter review.Filter, page int) (review.ListResult, error) {
	return s.svc.Lists.Load(ctx, filter, page)
}

func (s *reviewService) LoadMonthlyFigures(ctx context.Context, page int) (review.ListResult, error) {
	return s.svc.Lists.LoadMonthlyFigures(ctx, page)
}

func (s *reviewService) LoadDetails(ctx context.Context, code string) (review.Details, error) {
	return s.svc.Details.LoadDetails(ctx, code)
}

func (s *reviewService) GetRawPost(ctx context.Context, code string) (*domain.FigureSummary, error) {
	return s.rawPosts.GetRawPost(ctx, code)
}

func (s *reviewService) MarkPosted(ctx context.Context, id string) error {
	return s.svc.Actions.MarkPosted(ctx, id)
}

func (s *reviewService) QueueMonthlyFigures(ctx context.Context, month, field string) (*review.JobOutcome, error) {
	return s.svc.Actions.QueueMonthlyFigures(ctx, month, field)
}

func (s *reviewService) LoadVideos(ctx context.Context) (domain.VideoGroups, error) {
	return s.svc.Actions.LoadVideos(ctx)
}
