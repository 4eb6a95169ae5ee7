package review

import (
	"context"

	"go.uber.org/zap"
)

// Backend is everything the review workflow needs from the API client.
type Backend interface {
	FigureSource
	DetailSource
	ActionTarget
}

// Service bundles the list, detail and action components over one backend.
type Service struct {
	Lists   *ListController
	Details *DetailReconciler
	Actions *Dispatcher
}

func NewService(backend Backend, opts ListOptions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Lists:   NewListController(backend, opts, logger.Named("list")),
		Details: NewDetailReconciler(backend, logger.Named("detail")),
		Actions: NewDispatcher(backend, logger.Named("actions")),
	}
}

// RefreshReviewQueue loads the review queue into s and loads detail for the
// selection when it changed or has none yet, both in the caller's goroutine.
func (svc *Service) RefreshReviewQueue(ctx context.Context, s *State) error {
	result, err := svc.Lists.LoadReviewQueue(ctx)
	if err != nil {
		s.ApplyListError(MessageLoadPersonalities(err))
		return err
	}
	if s.ApplyList(result) || !s.HasDetail() {
		svc.RefreshDetail(ctx, s)
	}
	return nil
}

// RefreshDetail runs a detail lookup for the current selection and applies it.
func (svc *Service) RefreshDetail(ctx context.Context, s *State) {
	req, ok := s.BeginDetail()
	if !ok {
		return
	}
	details, err := svc.Details.LoadDetails(ctx, req.Code)
	s.ApplyDetails(req, details, err)
}
