package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/pkg/errors"
)

// RawPostQuery selects a page of /raw_posts. A nil QuoteCreated omits the filter.
type RawPostQuery struct {
	Page         int
	PageSize     int
	QuoteCreated *bool
}

func (q RawPostQuery) values() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.PageSize))
	if q.QuoteCreated != nil {
		params.Set("quote_created", strconv.FormatBool(*q.QuoteCreated))
	}
	return params
}

// FigurePage is one listing page. TotalKnown is false when the count header
// was missing or unparseable, in which case TotalCount is len(Items).
type FigurePage struct {
	Items      []domain.FigureSummary
	TotalCount int
	TotalKnown bool
}

func (c *Client) ListRawPosts(ctx context.Context, query RawPostQuery) (*FigurePage, error) {
	return c.listFigures(ctx, "/raw_posts", query.values())
}

func (c *Client) ListMonthlyFigures(ctx context.Context, page, pageSize int) (*FigurePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	return c.listFigures(ctx, "/monthly-figures", params)
}

func (c *Client) listFigures(ctx context.Context, path string, params url.Values) (*FigurePage, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}

	items, err := domain.DecodeFigureList(resp.body)
	if err != nil {
		return nil, errors.NewDecodeError("failed to decode figure list", c.baseURL+path, err)
	}

	page := &FigurePage{Items: items, TotalCount: len(items)}
	if total, ok := parseTotalCount(resp.header); ok {
		page.TotalCount = total
		page.TotalKnown = true
	}
	return page, nil
}

func parseTotalCount(header http.Header) (int, bool) {
	raw := strings.TrimSpace(header.Get(constants.APIConfig.TotalCountHeader))
	if raw == "" {
		return 0, false
	}
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		return 0, false
	}
	return total, true
}

func (c *Client) GetRawPost(ctx context.Context, code string) (*domain.FigureSummary, error) {
	path := "/raw_posts/" + escapePath(code)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var raw domain.FigureSummaryRaw
	if err := c.decode(resp, path, &raw); err != nil {
		return nil, err
	}
	figure := raw.Normalize()
	return &figure, nil
}

func (c *Client) GetPersonBio(ctx context.Context, code string) (*domain.FigureBio, error) {
	path := "/person-bio/" + escapePath(code)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var raw domain.FigureBioRaw
	if err := c.decode(resp, path, &raw); err != nil {
		return nil, err
	}
	bio := raw.Normalize()
	return &bio, nil
}

func (c *Client) GetQuotes(ctx context.Context, code string) (*domain.QuoteBundle, error) {
	path := "/quotes/" + escapePath(code)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var raw domain.QuoteBundleRaw
	if err := c.decode(resp, path, &raw); err != nil {
		return nil, err
	}
	bundle := raw.Normalize()
	return &bundle, nil
}

// MarkPosted flags a monthly figure as posted at postedOn (sent as UTC RFC3339).
func (c *Client) MarkPosted(ctx context.Context, id string, postedOn time.Time) error {
	path := "/monthly-figures/" + escapePath(id)
	body := domain.PostedUpdate{
		Posted:   true,
		PostedOn: postedOn.UTC().Format(time.RFC3339Nano),
	}
	_, err := c.doRequest(ctx, http.MethodPatch, path, nil, body)
	return err
}

func (c *Client) CallAPI(ctx context.Context, req domain.JobRequest) (*domain.JobResult, error) {
	const path = "/call_api"
	resp, err := c.doRequest(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		return nil, err
	}

	var result domain.JobResult
	if len(strings.TrimSpace(string(resp.body))) == 0 {
		return &result, nil
	}
	if err := c.decode(resp, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) QueueMonthlyFigures(ctx context.Context, month, field string) (*domain.JobResult, error) {
	return c.CallAPI(ctx, domain.JobRequest{
		AIType: domain.AITypeMonthlyFigures,
		Input: domain.MonthlyFiguresInput{
			GivenMonth:        month,
			FieldOfExcellence: field,
		},
	})
}

func (c *Client) ListVideos(ctx context.Context) ([]domain.VideoRecord, error) {
	const path = "/videos"
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	videos, err := domain.DecodeVideoList(resp.body)
	if err != nil {
		return nil, errors.NewDecodeError("failed to decode video list", c.baseURL+path, err)
	}
	return videos, nil
}
