package settings

import "time"

const (
	// KeyBreaktimeEnabled toggles whether the shift's break window is
	// surfaced to clients. Stored as "true"/"false".
	KeyBreaktimeEnabled = "breaktime_enabled"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
