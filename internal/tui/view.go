package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/format"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/util"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeHeight  = 6
)

func newFiguresTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Code", Width: 12},
			{Title: "Name", Width: constants.StringLimits.ListName},
			{Title: "Country", Width: 16},
			{Title: "Field", Width: constants.StringLimits.ListField},
			{Title: "Born", Width: 13},
			{Title: "Quote", Width: 7},
			{Title: "Posted", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(defaultHeight-chromeHeight-4),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func (m *Model) resizeTable() {
	height := m.height - chromeHeight - 4
	if height < 3 {
		height = 3
	}
	m.figuresTable.SetHeight(height)
	if m.width > 0 {
		m.figuresTable.SetWidth(m.width - 2)
	}
}

func (m *Model) syncFiguresTable() {
	rows := make([]table.Row, 0, len(m.figures.Records))
	for _, r := range m.figures.Records {
		rows = append(rows, table.Row{
			format.FallbackText(r.Code),
			util.TruncateString(format.FallbackText(r.Name), constants.StringLimits.ListName),
			format.FallbackText(r.Country),
			util.TruncateString(format.FallbackText(r.ExcellenceField), constants.StringLimits.ListField),
			format.FormatDate(r.DOB),
			yesNo(r.QuoteCreated),
			yesNo(r.Posted),
		})
	}
	m.figuresTable.SetRows(rows)
	m.syncFiguresCursor()
}

func (m *Model) syncFiguresCursor() {
	if i := m.figures.IndexOf(m.figures.SelectedCode); i >= 0 {
		m.figuresTable.SetCursor(i)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.active {
	case TabFigures:
		b.WriteString(m.figuresView())
	case TabMonthly:
		b.WriteString(m.monthlyView())
	case TabVideos:
		b.WriteString(m.videosView())
	default:
		b.WriteString(m.reviewView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Footer.Render(m.footerHelp()))
	return b.String()
}

func (m Model) headerView() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.active {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	title := m.styles.Header.Render("Prominent Figures")
	return lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title}, tabs...)...)
}

func (m Model) footerHelp() string {
	switch m.active {
	case TabFigures:
		if m.rawPostOpen {
			return "esc back · q quit"
		}
		return "↑/↓ select · enter open · f filter · ←/→ page · r refresh · tab switch · q quit"
	case TabMonthly:
		if m.form.open {
			return "tab next field · enter submit · esc cancel"
		}
		return "n new job · ↑/↓ select · ←/→ page · r pull data · tab switch · q quit"
	case TabVideos:
		return "r refresh · tab switch · q quit"
	default:
		return "↑/↓ select · c copy · p mark posted · r refresh · tab switch · q quit"
	}
}

func (m Model) bodyHeight() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	h -= chromeHeight
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) bodyWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) reviewView() string {
	s := m.review
	if m.reviewLoading && len(s.Records) == 0 {
		return m.styles.Muted.Render("Loading personalities...")
	}
	if s.ListError != "" {
		return m.styles.Error.Render(s.ListError)
	}
	if len(s.Records) == 0 {
		return m.styles.Muted.Render("No personalities found.")
	}

	listWidth := constants.StringLimits.ListName + 4
	list := m.recordList(s, listWidth)
	detail := m.reviewDetail(m.bodyWidth() - listWidth - 4)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list),
		detail,
	)
}

// recordList renders a scrolling window of names around the selection.
func (m Model) recordList(s *review.State, width int) string {
	height := m.bodyHeight() - 2
	selected := s.IndexOf(s.SelectedCode)
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(s.Records) {
		end = len(s.Records)
	}

	lines := make([]string, 0, end-start+1)
	header := fmt.Sprintf("%d records", len(s.Records))
	if m.reviewFellBack {
		header += " (all)"
	}
	lines = append(lines, m.styles.Muted.Render(header))
	for i := start; i < end; i++ {
		r := s.Records[i]
		name := util.TruncateString(format.FallbackText(r.Name), width-4)
		if r.Code == "" {
			name = util.TruncateString(name+" ("+constants.Markers.MissingCode+")", width-4)
		}
		if i == selected {
			lines = append(lines, m.styles.Selected.Render("▸ "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) reviewDetail(width int) string {
	s := m.review
	view, ok := s.View()
	if !ok {
		return m.styles.Muted.Render("Select a personality.")
	}

	var lines []string
	lines = append(lines, m.styles.Title.Render(view.Name))
	lines = append(lines,
		m.labeled("Date of Birth", view.DOB),
		m.labeled("Country", view.Country),
		m.labeled("Excellence Field", view.Field),
		"",
		m.styles.Label.Render("BIO"),
		view.BioText,
		"",
	)

	switch {
	case s.DetailLoading:
		lines = append(lines, m.styles.Muted.Render("Loading details..."))
	case s.DetailError != "":
		lines = append(lines, m.styles.Error.Render(s.DetailError))
	default:
		lines = append(lines, m.styles.Label.Render(fmt.Sprintf("Quotes (%d)", view.QuoteCount)))
		if view.QuoteCount == 0 {
			lines = append(lines, m.styles.Muted.Render("No quotes yet."))
		}
		for i, q := range view.Quotes {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, q.Text))
			lines = append(lines, m.styles.Muted.Render("   "+q.ImageLabel()))
		}
	}

	if m.marking {
		lines = append(lines, "", m.styles.Muted.Render("Marking as posted..."))
	}
	if s.ActionMessage != "" {
		lines = append(lines, "", m.styles.Warning.Render(s.ActionMessage))
	}
	if m.copyMessage != "" {
		lines = append(lines, "", m.styles.Success.Render(m.copyMessage))
	}

	position := fmt.Sprintf("%d of %d", s.IndexOf(s.SelectedCode)+1, len(s.Records))
	lines = append(lines, "", m.styles.Muted.Render(position))

	if width < 20 {
		width = 20
	}
	return m.styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) labeled(label, value string) string {
	return m.styles.Label.Render(label+": ") + value
}

func (m Model) figuresView() string {
	if m.rawPostOpen {
		return m.rawPostView()
	}

	s := m.figures
	stats := m.figuresResult.Stats()
	summary := m.formatter.FormatStats(stats, s.Page, review.TotalPages(s.TotalCount, s.PageSize))
	header := fmt.Sprintf("Filter: %s · %s", s.Filter, summary)

	lines := []string{m.styles.Muted.Render(header)}
	switch {
	case m.figuresLoading && len(s.Records) == 0:
		lines = append(lines, m.styles.Muted.Render("Loading prominent figures..."))
	case s.ListError != "":
		lines = append(lines, m.styles.Error.Render(s.ListError))
	case len(s.Records) == 0:
		lines = append(lines, m.styles.Muted.Render("No prominent figures found."))
	default:
		lines = append(lines, m.figuresTable.View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) rawPostView() string {
	switch {
	case m.rawPostLoading:
		return m.styles.Muted.Render("Loading " + m.rawPostCode + "...")
	case m.rawPostError != "":
		return m.styles.Error.Render(m.rawPostError)
	case m.rawPost == nil:
		return m.styles.Muted.Render("Raw post not found.")
	}
	return m.styles.Panel.Render(m.formatter.FormatRawPost(*m.rawPost))
}

func (m Model) monthlyView() string {
	s := m.monthly
	var lines []string

	if m.form.open {
		lines = append(lines,
			m.styles.Title.Render("Queue monthly figures"),
			m.form.month.View(),
			m.form.field.View(),
			m.styles.Muted.Render("Months: "+strings.Join(format.Months, ", ")),
		)
		if m.form.submitting {
			lines = append(lines, m.styles.Muted.Render("Submitting..."))
		}
		lines = append(lines, "")
	}
	if m.jobError != "" {
		lines = append(lines, m.styles.Error.Render(m.jobError), "")
	}
	if m.jobMessage != "" {
		lines = append(lines, m.styles.Success.Render(m.jobMessage))
		if m.lastJob != nil {
			lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("Job %s · %s",
				format.FallbackText(m.lastJob.JobID), format.FallbackText(m.lastJob.Status))))
		}
		lines = append(lines, "")
	}

	pages := review.TotalPages(s.TotalCount, s.PageSize)
	lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("Monthly figures · Page %d of %d · %d total", s.Page, pages, s.TotalCount)))
	switch {
	case m.monthlyLoading && len(s.Records) == 0:
		lines = append(lines, m.styles.Muted.Render("Pulling monthly figures..."))
	case s.ListError != "":
		lines = append(lines, m.styles.Error.Render(s.ListError))
	case len(s.Records) == 0:
		lines = append(lines, m.styles.Muted.Render("No monthly figures yet."))
	default:
		selected := s.IndexOf(s.SelectedCode)
		for i, r := range s.Records {
			line := fmt.Sprintf("%-*s  %-16s  %s",
				constants.StringLimits.ListName,
				util.TruncateString(format.FallbackText(r.Name), constants.StringLimits.ListName),
				util.TruncateString(format.FallbackText(r.Country), 16),
				util.TruncateString(format.FallbackText(r.ExcellenceField), constants.StringLimits.ListField),
			)
			if r.Posted {
				line += m.styles.Badge.Render("  posted")
			}
			if i == selected {
				lines = append(lines, m.styles.Selected.Render("▸ "+line))
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) videosView() string {
	if m.videosLoading && m.videos.Total() == 0 {
		return m.styles.Muted.Render("Loading videos...")
	}
	if m.videosError != "" {
		return m.styles.Error.Render(m.videosError)
	}
	if m.videos.Total() == 0 {
		return m.styles.Muted.Render("No videos yet.")
	}

	lines := []string{m.styles.Muted.Render(fmt.Sprintf("%d videos · %d created · %d failed · %d attempted",
		m.videos.Total(), len(m.videos.Created), len(m.videos.Failed), len(m.videos.Attempted)))}
	lines = append(lines, m.videoSection("Created", m.videos.Created)...)
	lines = append(lines, m.videoSection("Failed", m.videos.Failed)...)
	lines = append(lines, m.videoSection("Attempted", m.videos.Attempted)...)
	return strings.Join(lines, "\n")
}

func (m Model) videoSection(title string, videos []domain.VideoRecord) []string {
	lines := []string{"", m.styles.Label.Render(fmt.Sprintf("%s (%d)", title, len(videos)))}
	if len(videos) == 0 {
		return append(lines, m.styles.Muted.Render("  none"))
	}
	for _, v := range videos {
		name := v.Title
		if strings.TrimSpace(name) == "" {
			name = constants.Markers.UntitledVideo
		}
		status := format.StatusLabel(v.Status)
		statusStyle := m.styles.Badge
		if v.Status.Normalized() == domain.VideoStatusFailed {
			statusStyle = m.styles.Error
		}
		lines = append(lines, fmt.Sprintf("  %s %s",
			statusStyle.Render("["+status+"]"),
			util.TruncateString(name, constants.StringLimits.VideoTitle)))

		meta := fmt.Sprintf("     %s · %s",
			format.FormatDateTime(util.FirstNonBlank(v.ModificationTime, v.CreationTime)),
			format.FallbackText(v.Size))
		lines = append(lines, m.styles.Muted.Render(meta))
		if v.ErrorReason != "" {
			reason := util.TruncateString(util.SingleLine(v.ErrorReason), constants.StringLimits.ErrorReason)
			lines = append(lines, m.styles.Error.Render("     "+reason))
		}
	}
	return lines
}
