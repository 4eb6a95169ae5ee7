package review

import (
	"strings"

	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/format"
)

// DetailView is the rendered detail panel for the current selection.
type DetailView struct {
	Code       string              `json:"code"`
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Country    string              `json:"country"`
	DOB        string              `json:"dob"`
	Field      string              `json:"excellence_field"`
	BioText    string              `json:"bio_text"`
	Quotes     []format.QuoteEntry `json:"quotes"`
	QuoteCount int                 `json:"quote_count"`
}

// BuildDetailView merges a bio over its list row: a non-blank bio field wins,
// otherwise the row's value is used. Either argument may be nil.
func BuildDetailView(row *domain.FigureSummary, bio *domain.FigureBio, quotes *domain.QuoteBundle) DetailView {
	var summary domain.FigureSummary
	if row != nil {
		summary = *row
	}
	var b domain.FigureBio
	if bio != nil {
		b = *bio
	}

	view := DetailView{
		Code:    summary.Code,
		ID:      summary.ID,
		Name:    format.FallbackText(prefer(b.Name, summary.Name)),
		Country: format.FallbackText(prefer(b.Country, summary.Country)),
		DOB:     format.FallbackText(prefer(b.DOB, summary.DOB)),
		Field:   format.FallbackText(prefer(b.ExcellenceField, summary.ExcellenceField)),
		BioText: format.BioText(prefer(b.Challenges, summary.ChallengesFaced)),
		Quotes:  []format.QuoteEntry{},
	}
	if quotes != nil {
		view.Quotes = format.QuoteEntries(quotes.Quotes, quotes.QuoteImagePaths)
	}
	view.QuoteCount = len(view.Quotes)
	return view
}

// View renders the detail panel for the state's current selection. ok is
// false when nothing is selected.
func (s *State) View() (DetailView, bool) {
	row, found := s.Current()
	if !found {
		return DetailView{}, false
	}
	return BuildDetailView(&row, s.Bio, s.Quotes), true
}

// CopyText is the clipboard payload for a figure.
func CopyText(view DetailView) string {
	return strings.Join([]string{
		"Name: " + view.Name,
		"Date of Birth: " + view.DOB,
		"Country: " + view.Country,
		"Excellence Field: " + view.Field,
		"",
		"BIO:",
		view.BioText,
	}, "\n")
}

func prefer(primary, fallback string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return fallback
}
