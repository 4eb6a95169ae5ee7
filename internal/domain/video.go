package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// VideoStatus is owned by the backend; unknown values pass through verbatim.
type VideoStatus string

const (
	VideoStatusCreated    VideoStatus = "created"
	VideoStatusQueued     VideoStatus = "queued"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

func (s VideoStatus) String() string {
	return string(s)
}

// Normalized lowercases the status; an empty status counts as created.
func (s VideoStatus) Normalized() VideoStatus {
	trimmed := strings.ToLower(strings.TrimSpace(string(s)))
	if trimmed == "" {
		return VideoStatusCreated
	}
	return VideoStatus(trimmed)
}

func (s VideoStatus) IsKnown() bool {
	switch s.Normalized() {
	case VideoStatusCreated, VideoStatusQueued, VideoStatusProcessing, VideoStatusCompleted, VideoStatusFailed:
		return true
	default:
		return false
	}
}

type VideoRecordRaw struct {
	VideoID            string          `json:"video_id"`
	VideoTitle         string          `json:"video_title"`
	VideoSize          json.RawMessage `json:"video_size,omitempty"`
	VideoIntroduction  *string         `json:"video_introduction,omitempty"`
	CreationTime       *string         `json:"creation_time,omitempty"`
	ModificationTime   *string         `json:"modification_time,omitempty"`
	Active             *bool           `json:"active,omitempty"`
	VideoTags          []string        `json:"video_tags,omitempty"`
	Status             *string         `json:"status,omitempty"`
	OutputFileLocation *string         `json:"output_file_location,omitempty"`
	JobID              *string         `json:"job_id,omitempty"`
	ErrorReason        *string         `json:"error_reason,omitempty"`
}

type VideoRecord struct {
	ID               string      `json:"video_id"`
	Title            string      `json:"video_title"`
	Size             string      `json:"video_size,omitempty"`
	Introduction     string      `json:"video_introduction,omitempty"`
	CreationTime     string      `json:"creation_time,omitempty"`
	ModificationTime string      `json:"modification_time,omitempty"`
	Active           bool        `json:"active"`
	Tags             []string    `json:"video_tags,omitempty"`
	Status           VideoStatus `json:"status"`
	OutputLocation   string      `json:"output_file_location,omitempty"`
	JobID            string      `json:"job_id,omitempty"`
	ErrorReason      string      `json:"error_reason,omitempty"`
}

func (r VideoRecordRaw) Normalize() VideoRecord {
	return VideoRecord{
		ID:               r.VideoID,
		Title:            r.VideoTitle,
		Size:             rawScalar(r.VideoSize),
		Introduction:     str(r.VideoIntroduction),
		CreationTime:     str(r.CreationTime),
		ModificationTime: str(r.ModificationTime),
		Active:           boolean(r.Active),
		Tags:             r.VideoTags,
		Status:           VideoStatus(str(r.Status)),
		OutputLocation:   str(r.OutputFileLocation),
		JobID:            str(r.JobID),
		ErrorReason:      str(r.ErrorReason),
	}
}

// RecencyKey is the modification time, else the creation time, as a parsed
// instant. Unparseable or missing times sort last.
func (v VideoRecord) RecencyKey() time.Time {
	raw := v.ModificationTime
	if raw == "" {
		raw = v.CreationTime
	}
	if t, ok := ParseTimestamp(raw); ok {
		return t
	}
	return time.Time{}
}

// VideoGroups splits videos the way the vault screen shows them.
type VideoGroups struct {
	Created   []VideoRecord `json:"created"`
	Failed    []VideoRecord `json:"failed"`
	Attempted []VideoRecord `json:"attempted"`
}

func (g VideoGroups) Total() int {
	return len(g.Created) + len(g.Failed) + len(g.Attempted)
}

// GroupVideos sorts newest first and buckets by normalized status; anything
// that is neither created nor failed counts as attempted.
func GroupVideos(videos []VideoRecord) VideoGroups {
	sorted := SortVideosByRecent(videos)
	groups := VideoGroups{
		Created:   []VideoRecord{},
		Failed:    []VideoRecord{},
		Attempted: []VideoRecord{},
	}
	for _, v := range sorted {
		switch v.Status.Normalized() {
		case VideoStatusFailed:
			groups.Failed = append(groups.Failed, v)
		case VideoStatusCreated:
			groups.Created = append(groups.Created, v)
		default:
			groups.Attempted = append(groups.Attempted, v)
		}
	}
	return groups
}

func SortVideosByRecent(videos []VideoRecord) []VideoRecord {
	sorted := make([]VideoRecord, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecencyKey().After(sorted[j].RecencyKey())
	})
	return sorted
}

// DecodeVideoList decodes /videos; a non-array body is an empty list.
func DecodeVideoList(body []byte) ([]VideoRecord, error) {
	var raw []VideoRecordRaw
	ok, err := decodeArray(body, &raw)
	if err != nil || !ok {
		return []VideoRecord{}, err
	}
	videos := make([]VideoRecord, 0, len(raw))
	for _, r := range raw {
		videos = append(videos, r.Normalize())
	}
	return videos, nil
}

func rawScalar(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
