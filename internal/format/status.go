package format

import (
	"github.com/kapu/figures-review-go/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var statusLabels = map[domain.VideoStatus]string{
	domain.VideoStatusQueued:     "Queued",
	domain.VideoStatusProcessing: "Processing",
	domain.VideoStatusCompleted:  "Completed",
	domain.VideoStatusFailed:     "Failed",
	domain.VideoStatusCreated:    "Created",
}

// StatusLabel is the human label for a video status. Unknown statuses are
// shown as-is with each word capitalised.
func StatusLabel(status domain.VideoStatus) string {
	normalized := status.Normalized()
	if status.IsKnown() {
		return statusLabels[normalized]
	}
	return cases.Title(language.English).String(string(normalized))
}
