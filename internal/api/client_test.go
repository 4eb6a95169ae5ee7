package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kapu/figures-review-go/internal/domain"
	"github.com/kapu/figures-review-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", 5*time.Second, zap.NewNop())
}

func TestListRawPostsQueryAndTotal(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raw_posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		gotQuery = r.URL.Query()
		w.Header().Set("X-Total-Count", "41")
		_, _ = io.WriteString(w, `[{"_id":"m1","code":" ada ","name":"Ada","quote_created":true},{"id":"m2","code":"alan","posted":true}]`)
	})

	quoteCreated := true
	page, err := client.ListRawPosts(context.Background(), RawPostQuery{Page: 2, PageSize: 20, QuoteCreated: &quoteCreated})
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["page_size"])
	assert.Equal(t, []string{"true"}, gotQuery["quote_created"])

	require.Len(t, page.Items, 2)
	assert.Equal(t, "m1", page.Items[0].ID)
	assert.Equal(t, "ada", page.Items[0].Code)
	assert.True(t, page.Items[0].QuoteCreated)
	assert.Equal(t, "m2", page.Items[1].ID)
	assert.True(t, page.Items[1].Posted)
	assert.Equal(t, 41, page.TotalCount)
	assert.True(t, page.TotalKnown)
}

func TestListRawPostsOmitsFilterAndDefaultsTotal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["quote_created"]
		assert.False(t, present)
		w.Header().Set("X-Total-Count", "lots")
		_, _ = io.WriteString(w, `[{"code":"a"},{"code":"b"},{"code":"c"}]`)
	})

	page, err := client.ListRawPosts(context.Background(), RawPostQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.False(t, page.TotalKnown)
}

func TestListRawPostsNonArrayIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[]}`)
	})

	page, err := client.ListRawPosts(context.Background(), RawPostQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)
}

func TestServerErrorCarriesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Figure not found"}`)
	})

	_, err := client.GetPersonBio(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errors.StatusCode(err))
	assert.Equal(t, "Figure not found", errors.Detail(err))
	assert.False(t, errors.IsTransport(err))
}

func TestServerErrorListDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"msg":"field required"},{"loc":["body"]},{"msg":"bad month"}]}`)
	})

	_, err := client.QueueMonthlyFigures(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, 422, errors.StatusCode(err))
	assert.Empty(t, errors.Detail(err))
	assert.Equal(t, "field required, bad month", errors.DetailMessage(err))
}

func TestServerErrorWithoutJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := client.ListVideos(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errors.StatusCode(err))
	assert.Empty(t, errors.DetailMessage(err))
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, zap.NewNop())
	_, err := client.GetQuotes(context.Background(), "ada")
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	assert.Equal(t, 0, errors.StatusCode(err))
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quotes/a%2Fb%20c", r.URL.RawPath)
		_, _ = io.WriteString(w, `{"code":"a/b c","quotes":"1) One | 2) Two","quote_image_paths":"https://x/1.png"}`)
	})

	bundle, err := client.GetQuotes(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "a/b c", bundle.Code)
	assert.Equal(t, "1) One | 2) Two", bundle.Quotes)
}

func TestMarkPostedSendsPatch(t *testing.T) {
	postedOn := time.Date(2024, 3, 5, 14, 30, 0, 0, time.FixedZone("KST", 9*60*60))
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/monthly-figures/m1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body domain.PostedUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Posted)
		assert.Equal(t, "2024-03-05T05:30:00Z", body.PostedOn)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.MarkPosted(context.Background(), "m1", postedOn))
}

func TestQueueMonthlyFigures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/call_api", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "MONTHLY_FIGURES", body["ai_type"])
		assert.Equal(t, map[string]any{
			"given_month":         "March",
			"field_of_excellence": "Science",
		}, body["input"])

		_, _ = io.WriteString(w, `{"message":"queued","ai_type":"MONTHLY_FIGURES","job_id":"job-7","status":"queued"}`)
	})

	result, err := client.QueueMonthlyFigures(context.Background(), "March", "Science")
	require.NoError(t, err)
	assert.Equal(t, "job-7", result.JobID)
	assert.Equal(t, "queued", result.Status)
}

func TestGetRawPostDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := client.GetRawPost(context.Background(), "ada")
	require.Error(t, err)
	var decodeErr *errors.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestListMonthlyFiguresAndVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/monthly-figures":
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("page_size"))
			_, _ = io.WriteString(w, `[{"_id":"m1","code":"ada"}]`)
		case "/videos":
			_, _ = io.WriteString(w, `[{"video_id":"v1","video_title":"Ada","video_size":1024,"status":"FAILED"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	page, err := client.ListMonthlyFigures(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "m1", page.Items[0].ID)

	videos, err := client.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "1024", videos[0].Size)
	assert.Equal(t, domain.VideoStatusFailed, videos[0].Status.Normalized())
}
