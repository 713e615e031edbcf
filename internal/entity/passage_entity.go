package entity

import "time"

type Passage struct {
	Id         string
	Document   string
	Embedding  []float32
	Source     string
	ChunkIndex int
	CreatedAt  time.Time
}
