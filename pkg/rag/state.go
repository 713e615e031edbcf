package rag

import "sync"

// RetrievalState remembers the single passage most recently handed out and the question that
// produced it. It is shared by every request served by one Retriever and lives as long as the
// process; nothing is persisted.
type RetrievalState struct {
	mu           sync.Mutex
	lastText     string
	lastQuestion string
}

// Snapshot returns the current values. The empty string means "unset".
func (s *RetrievalState) Snapshot() (lastText, lastQuestion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastText, s.lastQuestion
}

// selectAndRemember runs pick against the remembered text and stores the accepted text,
// holding the lock for the whole read-modify-write.
func (s *RetrievalState) selectAndRemember(question string, pick func(lastText string) (Match, bool)) (Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := pick(s.lastText)
	if ok {
		s.lastText = m.PassageText
		s.lastQuestion = question
	}
	return m, ok
}
