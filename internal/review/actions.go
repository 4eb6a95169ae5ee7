package review

import (
	"context"
	"strings"
	"time"

	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/pkg/errors"
	"go.uber.org/zap"
)

// ActionTarget is the slice of the backend that mutates records or starts jobs.
type ActionTarget interface {
	MarkPosted(ctx context.Context, id string, postedOn time.Time) error
	QueueMonthlyFigures(ctx context.Context, month, field string) (*domain.JobResult, error)
	ListVideos(ctx context.Context) ([]domain.VideoRecord, error)
}

// ActionError is a failed action with the message meant for the user.
type ActionError struct {
	Message string
	Cause   error
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Cause
}

type Dispatcher struct {
	target ActionTarget
	logger *zap.Logger
	now    func() time.Time
}

func NewDispatcher(target ActionTarget, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{target: target, logger: logger, now: time.Now}
}

// MarkPosted flags the record as posted. It does not touch any State; on
// success the caller applies State.ApplyPosted. Failures are never retried.
func (d *Dispatcher) MarkPosted(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &ActionError{
			Message: msgMissingRecordID,
			Cause:   errors.NewValidationError("record id is required", "id", id),
		}
	}

	if err := d.target.MarkPosted(ctx, id, d.now()); err != nil {
		d.logger.Warn("Failed to mark figure as posted", zap.String("id", id), zap.Error(err))
		message := errors.Detail(err)
		if message == "" {
			message = failureMessage(msgMarkPosted, err)
		}
		return &ActionError{Message: message, Cause: err}
	}

	d.logger.Info("Figure marked as posted", zap.String("id", id))
	return nil
}

// MarkCurrentPosted posts the selected record and applies the result to s.
// It reports whether the selection moved to another code.
func (d *Dispatcher) MarkCurrentPosted(ctx context.Context, s *State) (bool, error) {
	current, ok := s.Current()
	if !ok {
		return false, nil
	}
	s.ActionMessage = ""
	if err := d.MarkPosted(ctx, current.ID); err != nil {
		s.ActionMessage = err.Error()
		return false, err
	}
	return s.ApplyPosted(current.ID), nil
}

// JobOutcome is a queued job plus the confirmation shown to the user.
type JobOutcome struct {
	Result  domain.JobResult `json:"result"`
	Message string           `json:"message"`
}

// QueueMonthlyFigures validates the form and starts a MONTHLY_FIGURES job.
// The caller refreshes the monthly listing after a success.
func (d *Dispatcher) QueueMonthlyFigures(ctx context.Context, month, field string) (*JobOutcome, error) {
	month = strings.TrimSpace(month)
	field = strings.TrimSpace(field)
	if month == "" || field == "" {
		return nil, &ActionError{
			Message: msgMissingJobFields,
			Cause:   errors.NewValidationError("month and field are required", "given_month", month),
		}
	}

	result, err := d.target.QueueMonthlyFigures(ctx, month, field)
	if err != nil {
		d.logger.Warn("Failed to queue monthly figures job",
			zap.String("month", month),
			zap.String("field", field),
			zap.Error(err),
		)
		message := errors.DetailMessage(err)
		if message == "" {
			message = failureMessage(msgQueueJob, err)
		}
		return nil, &ActionError{Message: message, Cause: err}
	}

	d.logger.Info("Monthly figures job queued",
		zap.String("job_id", result.JobID),
		zap.String("status", result.Status),
	)
	return &JobOutcome{Result: *result, Message: msgJobQueued}, nil
}

// LoadVideos fetches every video and groups it for display.
func (d *Dispatcher) LoadVideos(ctx context.Context) (domain.VideoGroups, error) {
	videos, err := d.target.ListVideos(ctx)
	if err != nil {
		d.logger.Warn("Failed to load videos", zap.Error(err))
		return domain.VideoGroups{}, err
	}
	return domain.GroupVideos(videos), nil
}
