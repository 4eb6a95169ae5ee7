package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/util"
)

// ResponseFormatter renders plain-text output for the one-shot commands.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

type figureDetailData struct {
	View        review.DetailView
	DetailError string
	NoQuotes    string
}

// FormatFigureDetail renders the review panel for one figure.
func (f *ResponseFormatter) FormatFigureDetail(view review.DetailView, detailError string) string {
	out, err := executeFormatterTemplate("figure_detail.tmpl", figureDetailData{
		View:        view,
		DetailError: detailError,
		NoQuotes:    "No quotes yet.",
	})
	if err != nil {
		return f.FormatError(err.Error())
	}
	return out
}

// FormatRawPost renders every field of a raw post, timestamps included.
func (f *ResponseFormatter) FormatRawPost(figure domain.FigureSummary) string {
	out, err := executeFormatterTemplate("raw_post.tmpl", figure)
	if err != nil {
		return f.FormatError(err.Error())
	}
	return out
}

func (f *ResponseFormatter) FormatJobQueued(outcome review.JobOutcome) string {
	out, err := executeFormatterTemplate("job_queued.tmpl", outcome)
	if err != nil {
		return f.FormatError(err.Error())
	}
	return out
}

type videoRow struct {
	ID             string
	Title          string
	Size           string
	Status         domain.VideoStatus
	Updated        string
	ErrorReason    string
	OutputLocation string
}

type videoSection struct {
	Title  string
	Videos []videoRow
}

type videoGroupsData struct {
	Total    int
	Groups   domain.VideoGroups
	Sections []videoSection
}

// FormatVideoGroups renders the created, failed and attempted buckets.
func (f *ResponseFormatter) FormatVideoGroups(groups domain.VideoGroups) string {
	out, err := executeFormatterTemplate("video_groups.tmpl", videoGroupsData{
		Total:  groups.Total(),
		Groups: groups,
		Sections: []videoSection{
			{Title: "Created", Videos: f.videoRows(groups.Created)},
			{Title: "Failed", Videos: f.videoRows(groups.Failed)},
			{Title: "Attempted", Videos: f.videoRows(groups.Attempted)},
		},
	})
	if err != nil {
		return f.FormatError(err.Error())
	}
	return out
}

func (f *ResponseFormatter) videoRows(videos []domain.VideoRecord) []videoRow {
	rows := make([]videoRow, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, videoRow{
			ID:             v.ID,
			Title:          f.videoTitle(v.Title),
			Size:           v.Size,
			Status:         v.Status,
			Updated:        util.FirstNonBlank(v.ModificationTime, v.CreationTime),
			ErrorReason:    util.TruncateString(util.SingleLine(v.ErrorReason), constants.StringLimits.ErrorReason),
			OutputLocation: v.OutputLocation,
		})
	}
	return rows
}

// FormatStats is the one-line summary shown above a listing.
func (f *ResponseFormatter) FormatStats(stats review.Stats, page, totalPages int) string {
	return fmt.Sprintf("Total %d · Ready %d · Posted %d · Page %d of %d",
		stats.Total, stats.Ready, stats.Posted, page, totalPages)
}

func (f *ResponseFormatter) FormatError(message string) string {
	return "Error: " + strings.TrimSpace(message)
}

func (f *ResponseFormatter) videoTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return constants.Markers.UntitledVideo
	}
	return util.TruncateString(title, constants.StringLimits.VideoTitle)
}
