package domain

import "strings"

// QuoteBundleRaw is the /quotes/{code} document. Quotes is a single blob holding
// every quote; QuoteImagePaths is a pipe list matched to quotes by position.
type QuoteBundleRaw struct {
	MongoID         *string `json:"_id,omitempty"`
	ID              *string `json:"id,omitempty"`
	Code            *string `json:"code,omitempty"`
	Name            *string `json:"name,omitempty"`
	Quotes          *string `json:"quotes,omitempty"`
	QuoteImagePaths *string `json:"quote_image_paths,omitempty"`
}

type QuoteBundle struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Quotes          string `json:"quotes"`
	QuoteImagePaths string `json:"quote_image_paths"`
}

func (r QuoteBundleRaw) Normalize() QuoteBundle {
	return QuoteBundle{
		ID:              strings.TrimSpace(firstString(r.MongoID, r.ID)),
		Code:            strings.TrimSpace(str(r.Code)),
		Name:            str(r.Name),
		Quotes:          str(r.Quotes),
		QuoteImagePaths: str(r.QuoteImagePaths),
	}
}
