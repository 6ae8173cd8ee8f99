package domain

import "time"

// LogType classifies a bot log entry.
type LogType string

const (
	// LogTypeScan records a completed scheduled scan.
	LogTypeScan LogType = "scan"
	// LogTypeError records a failed scan attempt.
	LogTypeError LogType = "error"
)

// BotLog is an immutable record of one scheduled scan outcome for one
// bot. Exactly one entry is written per scan attempt.
type BotLog struct {
	ID          string    `json:"id"`
	BotConfigID string    `json:"bot_config_id"`
	OwnerID     string    `json:"owner_id"`
	Type        LogType   `json:"log_type"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
