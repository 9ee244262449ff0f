package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"ContentAgent/internal/domain"
)

type scriptedCompleter struct {
	mu      sync.Mutex
	results []domain.Completion
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) domain.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.results) == 0 {
		return domain.Failed(errors.New("no scripted result"))
	}
	next := s.results[0]
	s.results = s.results[1:]
	return next
}

func (s *scriptedCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type memoryStore struct {
	seen    map[string]bool
	order   []string
	markErr error
	seenErr error
}

func newMemoryStore(links ...string) *memoryStore {
	m := &memoryStore{seen: map[string]bool{}}
	for _, l := range links {
		m.seen[l] = true
	}
	return m
}

func (m *memoryStore) HasBeenSeen(_ context.Context, link string) (bool, error) {
	if m.seenErr != nil {
		return false, m.seenErr
	}
	return m.seen[link], nil
}

func (m *memoryStore) MarkAsSeen(_ context.Context, link, _ string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.seen[link] = true
	m.order = append(m.order, link)
	return nil
}

type staticSource struct {
	feeds map[string][]domain.Article
	errs  map[string]error
}

func (s *staticSource) Recent(_ context.Context, feedURL string, limit int) ([]domain.Article, error) {
	if err := s.errs[feedURL]; err != nil {
		return nil, err
	}
	entries := s.feeds[feedURL]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type mapScraper map[string]string

func (m mapScraper) Summary(_ context.Context, link string) (string, bool) {
	s, ok := m[link]
	return s, ok
}

type staticVoice struct {
	voice domain.BrandVoice
	err   error
}

func (s staticVoice) Load(context.Context) (domain.BrandVoice, error) {
	return s.voice, s.err
}

type titleRelevance map[string]bool

func (t titleRelevance) IsRelevant(_ context.Context, title, _ string) bool {
	return t[title]
}

type echoDrafter struct {
	fail map[string]bool
}

func (e echoDrafter) Draft(_ context.Context, title, _ string, _ domain.BrandVoice) (string, bool) {
	if e.fail[title] {
		return "", false
	}
	return "thread about " + title, true
}

type recordingDestination struct {
	name     string
	disabled bool
	err      error
	sent     []domain.Draft
}

func (r *recordingDestination) Name() string  { return r.name }
func (r *recordingDestination) Enabled() bool { return !r.disabled }

func (r *recordingDestination) Send(_ context.Context, draft domain.Draft) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, draft)
	return nil
}

type recordingSleeper struct {
	waits []time.Duration
	err   error
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return r.err
}

// cancellingCompleter cancels the run on its first call, then behaves like a
// client whose request context is gone.
type cancellingCompleter struct {
	cancel context.CancelFunc
	ctxs   []context.Context
}

func (c *cancellingCompleter) Complete(ctx context.Context, _ string) domain.Completion {
	c.ctxs = append(c.ctxs, ctx)
	c.cancel()
	return domain.Failed(ctx.Err())
}
