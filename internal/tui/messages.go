package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/internal/review"
)

type reviewLoadSuccessMsg struct {
	result review.ListResult
}

type reviewLoadErrorMsg struct {
	err error
}

type detailLoadedMsg struct {
	req     review.DetailRequest
	details review.Details
	err     error
}

type figuresLoadSuccessMsg struct {
	result review.ListResult
}

type figuresLoadErrorMsg struct {
	filter review.Filter
	page   int
	err    error
}

type rawPostLoadedMsg struct {
	code   string
	figure *domain.FigureSummary
	err    error
}

type monthlyLoadSuccessMsg struct {
	result review.ListResult
}

type monthlyLoadErrorMsg struct {
	page int
	err  error
}

type markPostedSuccessMsg struct {
	id string
}

type markPostedErrorMsg struct {
	id  string
	err error
}

type jobQueuedSuccessMsg struct {
	outcome *review.JobOutcome
}

type jobQueuedErrorMsg struct {
	err error
}

type videosLoadSuccessMsg struct {
	groups domain.VideoGroups
}

type videosLoadErrorMsg struct {
	err error
}

type copyResultMsg struct {
	err error
}

func loadReviewCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.LoadReviewQueue(ctx)
		if err != nil {
			return reviewLoadErrorMsg{err: err}
		}
		return reviewLoadSuccessMsg{result: result}
	}
}

func loadDetailCmd(ctx context.Context, svc Service, req review.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		details, err := svc.LoadDetails(ctx, req.Code)
		return detailLoadedMsg{req: req, details: details, err: err}
	}
}

func loadFiguresCmd(ctx context.Context, svc Service, filter review.Filter, page int) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.LoadFigures(ctx, filter, page)
		if err != nil {
			return figuresLoadErrorMsg{filter: filter, page: page, err: err}
		}
		return figuresLoadSuccessMsg{result: result}
	}
}

func loadRawPostCmd(ctx context.Context, svc Service, code string) tea.Cmd {
	return func() tea.Msg {
		figure, err := svc.GetRawPost(ctx, code)
		return rawPostLoadedMsg{code: code, figure: figure, err: err}
	}
}

func loadMonthlyCmd(ctx context.Context, svc Service, page int) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.LoadMonthlyFigures(ctx, page)
		if err != nil {
			return monthlyLoadErrorMsg{page: page, err: err}
		}
		return monthlyLoadSuccessMsg{result: result}
	}
}

func markPostedCmd(ctx context.Context, svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.MarkPosted(ctx, id); err != nil {
			return markPostedErrorMsg{id: id, err: err}
		}
		return markPostedSuccessMsg{id: id}
	}
}

func queueJobCmd(ctx context.Context, svc Service, month, field string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.QueueMonthlyFigures(ctx, month, field)
		if err != nil {
			return jobQueuedErrorMsg{err: err}
		}
		return jobQueuedSuccessMsg{outcome: outcome}
	}
}

func loadVideosCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		groups, err := svc.LoadVideos(ctx)
		if err != nil {
			return videosLoadErrorMsg{err: err}
		}
		return videosLoadSuccessMsg{groups: groups}
	}
}

func copyCmd(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text)}
	}
}
