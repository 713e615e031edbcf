package rag

import (
	"context"
	"errors"
	"sync"
)

type fakeEncoder struct {
	mu     sync.Mutex
	vector []float32
	err    error
	calls  int
}

func (f *fakeEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeIndex struct {
	mu      sync.Mutex
	matches []Match
	err     error
	calls   int
	topK    int
}

func (f *fakeIndex) Upsert(ctx context.Context, id string, vector []float32, metadata Metadata) error {
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.topK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeBackend struct {
	text    string
	err     error
	calls   int
	targets []string
}

func (f *fakeBackend) Translate(ctx context.Context, text, target string) (string, error) {
	f.calls++
	f.targets = append(f.targets, target)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var errBoom = errors.New("boom")

func vec() []float32 {
	return []float32{0.1, 0.2, 0.3}
}
