package constants

import "time"

var Markers = struct {
	Fallback       string
	Unknown        string
	ImagePending   string
	UntitledVideo  string
	MissingCode    string
	NoQuotesForBio string
}{
	Fallback:       "—",
	Unknown:        "Unknown",
	ImagePending:   "[no image]",
	UntitledVideo:  "Untitled video",
	MissingCode:    "Missing code",
	NoQuotesForBio: "No bio or quotes found for this personality.",
}

var Paging = struct {
	ReviewPageSize  int
	ListPageSize    int
	MonthlyPageSize int
}{
	ReviewPageSize:  200, // review screen pulls the whole queue at once
	ListPageSize:    20,
	MonthlyPageSize: 20,
}

var APIConfig = struct {
	DefaultBaseURL   string
	DefaultTimeout   time.Duration
	TotalCountHeader string
	RequestIDHeader  string
}{
	DefaultBaseURL:   "http://127.0.0.1:8000",
	DefaultTimeout:   15 * time.Second,
	TotalCountHeader: "X-Total-Count",
	RequestIDHeader:  "X-Request-ID",
}

var SessionConfig = struct {
	KeyPrefix    string
	ReadyTimeout time.Duration
	DefaultTTL   time.Duration
}{
	KeyPrefix:    "figures:session:",
	ReadyTimeout: 5 * time.Second,
	DefaultTTL:   72 * time.Hour,
}

var StringLimits = struct {
	ListName    int
	ListField   int
	VideoTitle  int
	StatusLine  int
	ErrorReason int
}{
	ListName:    32,
	ListField:   24,
	VideoTitle:  48,
	StatusLine:  120,
	ErrorReason: 80,
}
