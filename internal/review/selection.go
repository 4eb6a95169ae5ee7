package review

import (
	"strings"

	"github.com/kapu/figures-review-go/internal/domain"
)

// IndexOf returns the position of the first record with code, or -1.
// Duplicate codes resolve to the first match.
func (s *State) IndexOf(code string) int {
	if code == "" {
		return -1
	}
	for i, r := range s.Records {
		if r.Code == code {
			return i
		}
	}
	return -1
}

// Current returns the selected record, if it is still in the list.
func (s *State) Current() (domain.FigureSummary, bool) {
	i := s.IndexOf(s.SelectedCode)
	if i < 0 {
		return domain.FigureSummary{}, false
	}
	return s.Records[i], true
}

func (s *State) CanPrevious() bool {
	return s.IndexOf(s.SelectedCode) > 0
}

func (s *State) CanNext() bool {
	i := s.IndexOf(s.SelectedCode)
	return i != -1 && i < len(s.Records)-1
}

// Select moves to code. A blank code or one not in Records is ignored. It
// reports whether the selection changed.
func (s *State) Select(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || s.IndexOf(code) < 0 {
		return false
	}
	s.ActionMessage = ""
	if code == s.SelectedCode {
		return false
	}
	s.SelectedCode = code
	s.clearDetail()
	return true
}

func (s *State) SelectFirst() bool {
	if len(s.Records) == 0 {
		return s.setSelection("")
	}
	return s.setSelection(s.Records[0].Code)
}

// Next and Previous stop at the ends of the list.
func (s *State) Next() bool {
	if !s.CanNext() {
		return false
	}
	return s.Select(s.Records[s.IndexOf(s.SelectedCode)+1].Code)
}

func (s *State) Previous() bool {
	if !s.CanPrevious() {
		return false
	}
	return s.Select(s.Records[s.IndexOf(s.SelectedCode)-1].Code)
}

// Reconcile keeps the selection when its code is still present in records,
// otherwise falls back to the first record or to nothing.
func (s *State) Reconcile(records []domain.FigureSummary) bool {
	if s.SelectedCode != "" {
		for _, r := range records {
			if r.Code == s.SelectedCode {
				return false
			}
		}
	}
	if len(records) == 0 {
		return s.setSelection("")
	}
	return s.setSelection(records[0].Code)
}

func (s *State) setSelection(code string) bool {
	if code == s.SelectedCode {
		return false
	}
	s.SelectedCode = code
	s.clearDetail()
	return true
}
