package rag

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diabetesPassage = "Diabetes mellitus presents with polyuria, thirst and fatigue."

func newTestRetriever(enc Encoder, idx VectorIndex) *Retriever {
	return NewRetriever(enc, idx, RetrieverConfig{Dimension: 3}, nil)
}

func TestRetrieveAcceptsQualifyingMatch(t *testing.T) {
	idx := &fakeIndex{matches: []Match{{ID: "chunk-1", PassageText: diabetesPassage, Score: 0.9}}}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, idx)

	p := r.Retrieve(context.Background(), "What are symptoms of diabetes?")

	require.NotNil(t, p)
	assert.Equal(t, diabetesPassage, p.Text)
	assert.Equal(t, "chunk-1", p.ID)
	assert.Equal(t, DefaultTopK, idx.topK)

	lastText, lastQuestion := r.State().Snapshot()
	assert.Equal(t, diabetesPassage, lastText)
	assert.Equal(t, "What are symptoms of diabetes?", lastQuestion)
}

func TestRetrieveSuppressesRepeat(t *testing.T) {
	second := "Type 2 diabetes is managed with diet, exercise and metformin."
	idx := &fakeIndex{matches: []Match{
		{ID: "chunk-1", PassageText: diabetesPassage, Score: 0.95},
		{ID: "chunk-2", PassageText: second, Score: 0.8},
	}}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, idx)
	ctx := context.Background()

	first := r.Retrieve(ctx, "diabetes symptoms?")
	require.NotNil(t, first)
	assert.Equal(t, diabetesPassage, first.Text)

	next := r.Retrieve(ctx, "diabetes symptoms?")
	require.NotNil(t, next)
	assert.Equal(t, second, next.Text)

	// the top match is eligible again once it is no longer the last one used
	third := r.Retrieve(ctx, "diabetes symptoms?")
	require.NotNil(t, third)
	assert.Equal(t, diabetesPassage, third.Text)
}

func TestRetrieveRepeatFallsThroughToNil(t *testing.T) {
	idx := &fakeIndex{matches: []Match{{PassageText: diabetesPassage, Score: 0.95}}}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, idx)
	ctx := context.Background()

	require.NotNil(t, r.Retrieve(ctx, "diabetes"))
	assert.Nil(t, r.Retrieve(ctx, "diabetes"))

	lastText, _ := r.State().Snapshot()
	assert.Equal(t, diabetesPassage, lastText)
}

func TestRetrieveRejections(t *testing.T) {
	tests := []struct {
		name     string
		matches  []Match
		question string
	}{
		{
			name:     "below threshold",
			matches:  []Match{{PassageText: diabetesPassage, Score: 0.74}},
			question: "diabetes?",
		},
		{
			name:     "no keyword overlap",
			matches:  []Match{{PassageText: diabetesPassage, Score: 0.99}},
			question: "asthma inhaler?",
		},
		{
			name:     "empty text",
			matches:  []Match{{PassageText: "   ", Score: 0.99}},
			question: "diabetes?",
		},
		{
			name:     "no matches",
			matches:  nil,
			question: "diabetes?",
		},
		{
			name:     "question is only punctuation",
			matches:  []Match{{PassageText: diabetesPassage, Score: 0.99}},
			question: "???",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRetriever(&fakeEncoder{vector: vec()}, &fakeIndex{matches: tt.matches})
			assert.Nil(t, r.Retrieve(context.Background(), tt.question))

			lastText, _ := r.State().Snapshot()
			assert.Empty(t, lastText)
		})
	}
}

func TestRetrieveThresholdIsInclusive(t *testing.T) {
	idx := &fakeIndex{matches: []Match{{PassageText: diabetesPassage, Score: 0.75}}}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, idx)

	assert.NotNil(t, r.Retrieve(context.Background(), "DIABETES"))
}

func TestRetrieveSkipsLowerScoredUntilQualified(t *testing.T) {
	idx := &fakeIndex{matches: []Match{
		{PassageText: "Unrelated cardiology text.", Score: 0.97},
		{PassageText: diabetesPassage, Score: 0.9},
	}}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, idx)

	p := r.Retrieve(context.Background(), "diabetes")
	require.NotNil(t, p)
	assert.Equal(t, diabetesPassage, p.Text)
}

func TestRetrieveUnavailable(t *testing.T) {
	match := []Match{{PassageText: diabetesPassage, Score: 0.99}}

	t.Run("encoder error", func(t *testing.T) {
		idx := &fakeIndex{matches: match}
		r := newTestRetriever(&fakeEncoder{err: errBoom}, idx)
		assert.Nil(t, r.Retrieve(context.Background(), "diabetes"))
		assert.Equal(t, 0, idx.calls)
	})

	t.Run("index error", func(t *testing.T) {
		r := newTestRetriever(&fakeEncoder{vector: vec()}, &fakeIndex{err: errBoom})
		assert.Nil(t, r.Retrieve(context.Background(), "diabetes"))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		idx := &fakeIndex{matches: match}
		r := newTestRetriever(&fakeEncoder{vector: []float32{1, 2}}, idx)
		assert.Nil(t, r.Retrieve(context.Background(), "diabetes"))
		assert.Equal(t, 0, idx.calls)
	})

	t.Run("not configured", func(t *testing.T) {
		r := NewRetriever(nil, nil, RetrieverConfig{}, nil)
		assert.False(t, r.Available())
		assert.Nil(t, r.Retrieve(context.Background(), "diabetes"))
	})
}

func TestRetrieveConcurrentNeverRepeatsConsecutively(t *testing.T) {
	matches := make([]Match, 0, 5)
	for i := 0; i < 5; i++ {
		matches = append(matches, Match{
			ID:          fmt.Sprintf("chunk-%d", i),
			PassageText: fmt.Sprintf("diabetes passage %d", i),
			Score:       0.9,
		})
	}
	r := newTestRetriever(&fakeEncoder{vector: vec()}, &fakeIndex{matches: matches})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Retrieve(context.Background(), "diabetes")
		}()
	}
	wg.Wait()

	lastText, lastQuestion := r.State().Snapshot()
	assert.Contains(t, []string{"diabetes passage 0", "diabetes passage 1"}, lastText)
	assert.Equal(t, "diabetes", lastQuestion)
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		question string
		want     []string
	}{
		{"What are symptoms of diabetes?", []string{"what", "are", "symptoms", "of", "diabetes"}},
		{"  Fever?? and   COUGH ", []string{"fever", "and", "cough"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := Keywords(tt.question)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		assert.Equal(t, tt.want, got, tt.question)
	}
}
