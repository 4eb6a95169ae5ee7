package review

import (
	"context"
	stderrors "errors"

	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// DetailSource serves the two per-figure documents joined by code.
type DetailSource interface {
	GetPersonBio(ctx context.Context, code string) (*domain.FigureBio, error)
	GetQuotes(ctx context.Context, code string) (*domain.QuoteBundle, error)
}

// Details holds whichever of bio and quotes could be loaded.
type Details struct {
	Bio    *domain.FigureBio   `json:"bio,omitempty"`
	Quotes *domain.QuoteBundle `json:"quotes,omitempty"`
}

// ErrNoDetails is returned when neither the bio nor the quotes could be loaded.
var ErrNoDetails = stderrors.New(constants.Markers.NoQuotesForBio)

type DetailReconciler struct {
	source DetailSource
	logger *zap.Logger
}

func NewDetailReconciler(source DetailSource, logger *zap.Logger) *DetailReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailReconciler{source: source, logger: logger}
}

// LoadDetails fetches bio and quotes in parallel. Either half may fail on its
// own; only when both fail is an error returned, and then with no data.
func (d *DetailReconciler) LoadDetails(ctx context.Context, code string) (Details, error) {
	var (
		details   Details
		bioErr    error
		quotesErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		details.Bio, bioErr = d.source.GetPersonBio(ctx, code)
	})
	wg.Go(func() {
		details.Quotes, quotesErr = d.source.GetQuotes(ctx, code)
	})
	wg.Wait()

	if bioErr != nil {
		details.Bio = nil
		d.logger.Debug("Bio unavailable", zap.String("code", code), zap.Error(bioErr))
	}
	if quotesErr != nil {
		details.Quotes = nil
		d.logger.Debug("Quotes unavailable", zap.String("code", code), zap.Error(quotesErr))
	}

	if bioErr != nil && quotesErr != nil {
		d.logger.Warn("No details for figure",
			zap.String("code", code),
			zap.NamedError("bio_error", bioErr),
			zap.NamedError("quotes_error", quotesErr),
		)
		return Details{}, ErrNoDetails
	}
	return details, nil
}
