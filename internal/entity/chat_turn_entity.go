package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one persisted question/answer exchange.
type ChatTurn struct {
	Id        uuid.UUID
	Username  string
	Message   string
	Response  string
	Timestamp time.Time
}
