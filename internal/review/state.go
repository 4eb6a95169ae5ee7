package review

import (
	"fmt"
	"strings"

	"github.com/kapu/figures-review-go/internal/domain"
)

// Filter narrows a raw_posts listing by quote_created.
type Filter string

const (
	FilterCreated Filter = "created"
	FilterPending Filter = "pending"
	FilterAll     Filter = "all"
)

// QuoteCreated is the query value for the filter; nil means the parameter is omitted.
func (f Filter) QuoteCreated() *bool {
	switch f {
	case FilterCreated:
		v := true
		return &v
	case FilterPending:
		v := false
		return &v
	default:
		return nil
	}
}

func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(raw))); f {
	case FilterCreated, FilterPending, FilterAll:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want created, pending or all)", raw)
	}
}

// State is the whole review screen: the loaded list, the selection over it,
// the detail for the selection and the last user-facing messages. Every field
// is exported so the state can be snapshotted as JSON.
type State struct {
	Filter     Filter                 `json:"filter"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalCount int                    `json:"total_count"`
	TotalKnown bool                   `json:"total_known"`
	Records    []domain.FigureSummary `json:"records"`

	SelectedCode string `json:"selected_code,omitempty"`

	Bio              *domain.FigureBio   `json:"bio,omitempty"`
	Quotes           *domain.QuoteBundle `json:"quotes,omitempty"`
	DetailGeneration uint64              `json:"detail_generation"`
	DetailLoading    bool                `json:"detail_loading"`

	ListError     string `json:"list_error,omitempty"`
	DetailError   string `json:"detail_error,omitempty"`
	ActionMessage string `json:"action_message,omitempty"`
}

func NewState(filter Filter, pageSize int) *State {
	return &State{
		Filter:   filter,
		Page:     1,
		PageSize: pageSize,
		Records:  []domain.FigureSummary{},
	}
}

// ApplyList replaces the record set and reconciles the selection against it.
// It reports whether the selected code changed, in which case the caller
// should start a new detail lookup.
func (s *State) ApplyList(result ListResult) bool {
	s.ListError = ""
	s.Records = result.Records
	if s.Records == nil {
		s.Records = []domain.FigureSummary{}
	}
	s.TotalCount = result.TotalCount
	s.TotalKnown = result.TotalKnown
	if result.Page > 0 {
		s.Page = result.Page
	}
	if result.PageSize > 0 {
		s.PageSize = result.PageSize
	}
	return s.Reconcile(s.Records)
}

// ApplyListError clears everything that depended on the list; stale rows are
// never kept behind an error.
func (s *State) ApplyListError(message string) {
	s.ListError = message
	s.Records = []domain.FigureSummary{}
	s.TotalCount = 0
	s.TotalKnown = false
	s.SelectedCode = ""
	s.clearDetail()
}

// DetailRequest identifies one detail lookup.
type DetailRequest struct {
	Token uint64 `json:"token"`
	Code  string `json:"code"`
}

// BeginDetail clears the previous detail and issues a new token for the
// current selection. ok is false when nothing is selected.
func (s *State) BeginDetail() (req DetailRequest, ok bool) {
	s.clearDetail()
	s.DetailGeneration++
	if s.SelectedCode == "" {
		return DetailRequest{}, false
	}
	s.DetailLoading = true
	return DetailRequest{Token: s.DetailGeneration, Code: s.SelectedCode}, true
}

// ApplyDetails stores a finished lookup unless a newer lookup was started or
// the selection moved on. It reports whether the result was applied.
func (s *State) ApplyDetails(req DetailRequest, details Details, err error) bool {
	if req.Token != s.DetailGeneration || req.Code != s.SelectedCode {
		return false
	}
	s.DetailLoading = false
	if err != nil {
		s.Bio = nil
		s.Quotes = nil
		s.DetailError = err.Error()
		return true
	}
	s.Bio = details.Bio
	s.Quotes = details.Quotes
	s.DetailError = ""
	return true
}

// ApplyPosted drops every record carrying id and moves the selection to the
// neighbour after the posted row, else the one before it, else nowhere. When
// id is no longer listed the selected row stands in for it.
// It reports whether the selected code changed.
func (s *State) ApplyPosted(id string) bool {
	id = strings.TrimSpace(id)
	index := s.indexOfID(id)
	if index < 0 {
		index = s.IndexOf(s.SelectedCode)
	}

	nextCode := ""
	if index >= 0 {
		if index+1 < len(s.Records) {
			nextCode = s.Records[index+1].Code
		}
		if nextCode == "" && index-1 >= 0 {
			nextCode = s.Records[index-1].Code
		}
	}

	kept := make([]domain.FigureSummary, 0, len(s.Records))
	removed := 0
	for _, r := range s.Records {
		if r.ID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.Records = kept
	if s.TotalCount >= removed {
		s.TotalCount -= removed
	}

	changed := nextCode != s.SelectedCode
	if changed {
		s.clearDetail()
	}
	s.SelectedCode = nextCode
	s.ActionMessage = msgMarkedPosted
	return changed
}

func (s *State) indexOfID(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range s.Records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// HasDetail reports whether a lookup for the selection has finished.
func (s *State) HasDetail() bool {
	return s.Bio != nil || s.Quotes != nil || s.DetailError != ""
}

func (s *State) clearDetail() {
	s.Bio = nil
	s.Quotes = nil
	s.DetailError = ""
	s.DetailLoading = false
}

// Snapshot is the part of the state worth restoring in a later session.
type Snapshot struct {
	Filter       Filter `json:"filter"`
	Page         int    `json:"page"`
	SelectedCode string `json:"selected_code,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{Filter: s.Filter, Page: s.Page, SelectedCode: s.SelectedCode}
}

// Restore applies a snapshot before the first load. The selected code is kept
// only if the next list still contains it.
func (s *State) Restore(snap Snapshot) {
	if f, err := ParseFilter(string(snap.Filter)); err == nil && snap.Filter != "" {
		s.Filter = f
	}
	if snap.Page > 0 {
		s.Page = snap.Page
	}
	s.SelectedCode = strings.TrimSpace(snap.SelectedCode)
}
