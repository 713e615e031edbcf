package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Passage struct {
	Id             string          `gorm:"type:text;primaryKey"`
	Document       string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2 width
	Source         string          `gorm:"type:varchar(255)"`
	ChunkIndex     int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (Passage) TableName() string {
	return "passages"
}
