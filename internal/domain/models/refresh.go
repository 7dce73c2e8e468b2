package models

import "time"

// RefreshTrigger names what caused a token regeneration.
type RefreshTrigger string

const (
	TriggerStartup   RefreshTrigger = "startup"
	TriggerScheduled RefreshTrigger = "scheduled"
	TriggerLazy      RefreshTrigger = "lazy"
	TriggerManual    RefreshTrigger = "manual"
)

// RefreshEvent records one regeneration attempt. The token itself is never kept.
type RefreshEvent struct {
	ID        int64          `json:"id"`
	Trigger   RefreshTrigger `json:"trigger"`
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	IssuedOn  string         `json:"issued_on,omitempty"` // YYYY-MM-DD, empty on failure
	CreatedAt time.Time      `json:"created_at"`
}
