package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurnResponse struct {
	Id        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPage selects a window of the history. Limit 0 returns every turn.
type HistoryPage struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
