package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"medassist-be/internal/entity"
	"medassist-be/internal/pkg/logger"
	"medassist-be/internal/repository/contract"
	"medassist-be/internal/repository/specification"
	"medassist-be/internal/repository/unitofwork"
	"medassist-be/pkg/events"
	"medassist-be/pkg/rag"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errDB = errors.New("db down")

func nopLogger() logger.ILogger {
	return logger.NewFromZap(zap.NewNop())
}

// store is an in-memory stand-in for the database shared by every unit of work.
type store struct {
	mu       sync.Mutex
	users    []*entity.User
	turns    []*entity.ChatTurn
	passages map[string]*entity.Passage
	scored   []*contract.ScoredPassage

	failWrites bool
	failReads  bool
	commits    int
}

func newStore() *store {
	return &store{passages: map[string]*entity.Passage{}}
}

func (s *store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: s}
}

type fakeUow struct {
	store *store
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error {
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u.store} }
func (u *fakeUow) ChatHistoryRepository() contract.ChatHistoryRepository {
	return &fakeChatRepo{u.store}
}
func (u *fakeUow) PassageRepository() contract.PassageRepository { return &fakePassageRepo{u.store} }

type fakeUserRepo struct{ s *store }

func userMatches(u *entity.User, spec specification.Specification) bool {
	switch sp := spec.(type) {
	case specification.ByID:
		return u.Id == sp.ID
	case specification.ByUsername:
		return u.Username == sp.Username
	case specification.ByEmail:
		return u.Email == sp.Email
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrites {
		return errDB
	}
	r.s.users = append(r.s.users, user)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReads {
		return nil, errDB
	}
next:
	for _, u := range r.s.users {
		for _, spec := range specs {
			if !userMatches(u, spec) {
				continue next
			}
		}
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReads {
		return 0, errDB
	}
	var n int64
next:
	for _, u := range r.s.users {
		for _, spec := range specs {
			if !userMatches(u, spec) {
				continue next
			}
		}
		n++
	}
	return n, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrites {
		return errDB
	}
	for _, u := range r.s.users {
		if u.Id == userId {
			u.PasswordHash = hash
		}
	}
	return nil
}

type fakeChatRepo struct{ s *store }

func (r *fakeChatRepo) Create(ctx context.Context, turn *entity.ChatTurn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrites {
		return errDB
	}
	r.s.turns = append(r.s.turns, turn)
	return nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReads {
		return nil, errDB
	}

	var (
		out   []*entity.ChatTurn
		order *specification.OrderBy
		page  *specification.Pagination
	)
next:
	for _, t := range r.s.turns {
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByUsername:
				if t.Username != sp.Username {
					continue next
				}
			case specification.OnDate:
				start := time.Date(sp.Day.Year(), sp.Day.Month(), sp.Day.Day(), 0, 0, 0, 0, sp.Day.Location())
				if t.Timestamp.Before(start) || !t.Timestamp.Before(start.AddDate(0, 0, 1)) {
					continue next
				}
			case specification.OrderBy:
				order = &sp
			case specification.Pagination:
				page = &sp
			}
		}
		out = append(out, t)
	}
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if order.Desc {
				return out[i].Timestamp.After(out[j].Timestamp)
			}
			return out[i].Timestamp.Before(out[j].Timestamp)
		})
	}
	if page != nil {
		if page.Offset >= len(out) {
			return nil, nil
		}
		out = out[page.Offset:]
		if page.Limit < len(out) {
			out = out[:page.Limit]
		}
	}
	return out, nil
}

func (r *fakeChatRepo) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrites {
		return 0, errDB
	}
	kept := r.s.turns[:0]
	var deleted int64
	for _, t := range r.s.turns {
		if t.Username == username {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.s.turns = kept
	return deleted, nil
}

type fakePassageRepo struct{ s *store }

func (r *fakePassageRepo) UpsertBulk(ctx context.Context, passages []*entity.Passage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWrites {
		return errDB
	}
	for _, p := range passages {
		r.s.passages[p.Id] = p
	}
	return nil
}

func (r *fakePassageRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredPassage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReads {
		return nil, errDB
	}
	if len(r.s.scored) > limit {
		return r.s.scored[:limit], nil
	}
	return r.s.scored, nil
}

func (r *fakePassageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReads {
		return 0, errDB
	}
	var n int64
next:
	for _, p := range r.s.passages {
		for _, spec := range specs {
			if sp, ok := spec.(specification.BySource); ok && p.Source != sp.Source {
				continue next
			}
		}
		n++
	}
	return n, nil
}

type fakeAnswerer struct {
	result    rag.AnswerResult
	questions []string
	languages []string
}

func (f *fakeAnswerer) Answer(ctx context.Context, question, language string) rag.AnswerResult {
	f.questions = append(f.questions, question)
	f.languages = append(f.languages, language)
	return f.result
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakePageIngestor struct {
	mu      sync.Mutex
	sources []string
	pages   [][]string
	err     error
}

func (f *fakePageIngestor) IngestPages(ctx context.Context, source string, pages []string) (rag.IngestStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	f.pages = append(f.pages, pages)
	if f.err != nil {
		return rag.IngestStats{}, f.err
	}
	return rag.IngestStats{Pages: len(pages), Chunks: len(pages), Upserted: len(pages)}, nil
}

func (f *fakePageIngestor) ingested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sources...)
}

type fakeEvents struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *fakeEvents) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}
