package domain

import (
	"encoding/json"
	"strings"
)

// FigureSummaryRaw is a raw_posts / monthly-figures row as the backend sends it.
// Mongo documents come back with either "_id" or "id".
type FigureSummaryRaw struct {
	MongoID         *string `json:"_id,omitempty"`
	ID              *string `json:"id,omitempty"`
	Code            *string `json:"code,omitempty"`
	Name            *string `json:"name,omitempty"`
	Country         *string `json:"country,omitempty"`
	DOB             *string `json:"dob,omitempty"`
	ExcellenceField *string `json:"excellence_field,omitempty"`
	ChallengesFaced *string `json:"challenges_faced,omitempty"`
	QuoteCreated    *bool   `json:"quote_created,omitempty"`
	Posted          *bool   `json:"posted,omitempty"`
	AddedOn         *string `json:"added_on,omitempty"`
	UpdatedOn       *string `json:"updated_on,omitempty"`
	QuoteCreatedOn  *string `json:"quote_created_on,omitempty"`
	PostedOn        *string `json:"posted_on,omitempty"`
}

// FigureSummary is the canonical list row.
type FigureSummary struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	DOB             string `json:"dob"`
	ExcellenceField string `json:"excellence_field"`
	ChallengesFaced string `json:"challenges_faced"`
	QuoteCreated    bool   `json:"quote_created"`
	Posted          bool   `json:"posted"`
	AddedOn         string `json:"added_on,omitempty"`
	UpdatedOn       string `json:"updated_on,omitempty"`
	QuoteCreatedOn  string `json:"quote_created_on,omitempty"`
	PostedOn        string `json:"posted_on,omitempty"`
}

// Selectable reports whether the row carries the code needed to join its bio and quotes.
func (f FigureSummary) Selectable() bool {
	return f.Code != ""
}

// Normalize converts the wire shape into a FigureSummary.
func (r FigureSummaryRaw) Normalize() FigureSummary {
	return FigureSummary{
		ID:              strings.TrimSpace(firstString(r.MongoID, r.ID)),
		Code:            strings.TrimSpace(str(r.Code)),
		Name:            str(r.Name),
		Country:         str(r.Country),
		DOB:             str(r.DOB),
		ExcellenceField: str(r.ExcellenceField),
		ChallengesFaced: str(r.ChallengesFaced),
		QuoteCreated:    boolean(r.QuoteCreated),
		Posted:          boolean(r.Posted),
		AddedOn:         str(r.AddedOn),
		UpdatedOn:       str(r.UpdatedOn),
		QuoteCreatedOn:  str(r.QuoteCreatedOn),
		PostedOn:        str(r.PostedOn),
	}
}

// FigureBioRaw is the /person-bio/{code} document.
type FigureBioRaw struct {
	MongoID         *string `json:"_id,omitempty"`
	ID              *string `json:"id,omitempty"`
	Code            *string `json:"code,omitempty"`
	Name            *string `json:"name,omitempty"`
	Country         *string `json:"country,omitempty"`
	DOB             *string `json:"dob,omitempty"`
	ExcellenceField *string `json:"excellence_field,omitempty"`
	Challenges      *string `json:"challenges,omitempty"`
	AddedOn         *string `json:"added_on,omitempty"`
	UpdatedOn       *string `json:"updated_on,omitempty"`
}

type FigureBio struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	DOB             string `json:"dob"`
	ExcellenceField string `json:"excellence_field"`
	Challenges      string `json:"challenges"`
	AddedOn         string `json:"added_on,omitempty"`
	UpdatedOn       string `json:"updated_on,omitempty"`
}

func (r FigureBioRaw) Normalize() FigureBio {
	return FigureBio{
		ID:              strings.TrimSpace(firstString(r.MongoID, r.ID)),
		Code:            strings.TrimSpace(str(r.Code)),
		Name:            str(r.Name),
		Country:         str(r.Country),
		DOB:             str(r.DOB),
		ExcellenceField: str(r.ExcellenceField),
		Challenges:      str(r.Challenges),
		AddedOn:         str(r.AddedOn),
		UpdatedOn:       str(r.UpdatedOn),
	}
}

// DecodeFigureList decodes a listing body. Anything other than a JSON array is
// treated as an empty page.
func DecodeFigureList(body []byte) ([]FigureSummary, error) {
	var raw []FigureSummaryRaw
	ok, err := decodeArray(body, &raw)
	if err != nil || !ok {
		return []FigureSummary{}, err
	}

	figures := make([]FigureSummary, 0, len(raw))
	for _, r := range raw {
		figures = append(figures, r.Normalize())
	}
	return figures, nil
}

func decodeArray(body []byte, dest any) (bool, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		return false, nil
	}
	if err := json.Unmarshal([]byte(trimmed), dest); err != nil {
		return false, err
	}
	return true, nil
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolean(v *bool) bool {
	return v != nil && *v
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}
