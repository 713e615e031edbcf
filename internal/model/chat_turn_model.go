package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"type:varchar(100);not null;index:idx_chat_history_user_ts,priority:1"`
	Message   string    `gorm:"type:text;not null"`
	Response  string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_history_user_ts,priority:2"`
}

func (ChatTurn) TableName() string {
	return "chat_history"
}
