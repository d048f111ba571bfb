package infra

import (
	"sync"
	"time"

	"charity-recommender/recommender/domain"
)

// SlidingWindowStore mantém, por chave, os timestamps dos hits dentro da
// janela. A sequência evict-check-append roda como seção crítica única sob
// o mutex do store: sem updates perdidos nem contagem dupla entre requests
// concorrentes.
//
// Chaves são criadas sob demanda; um janitor remove as inativas.
type SlidingWindowStore struct {
	mu           sync.Mutex
	entries      map[string]*windowEntry
	max          int
	window       time.Duration
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type windowEntry struct {
	hits     []time.Time
	lastSeen time.Time
}

type SlidingOption func(*SlidingWindowStore)

func WithSlidingIdleTTL(d time.Duration) SlidingOption {
	return func(s *SlidingWindowStore) { s.idleTTL = d }
}

func WithSlidingCleanupEvery(d time.Duration) SlidingOption {
	return func(s *SlidingWindowStore) { s.cleanupEvery = d }
}

// WithSlidingClock injeta o relógio (para testes).
func WithSlidingClock(now func() time.Time) SlidingOption {
	return func(s *SlidingWindowStore) { s.now = now }
}

func NewSlidingWindowStore(maxRequests int, window time.Duration, opts ...SlidingOption) *SlidingWindowStore {
	s := &SlidingWindowStore{
		entries:      make(map[string]*windowEntry),
		max:          maxRequests,
		window:       window,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SlidingWindowStore) Max() int                    { return s.max }
func (s *SlidingWindowStore) Window() time.Duration       { return s.window }
func (s *SlidingWindowStore) CleanupEvery() time.Duration { return s.cleanupEvery }

// Get implementa domain.LimiterStore.
func (s *SlidingWindowStore) Get(key domain.Key) domain.Limiter {
	return windowLimiter{store: s, key: string(key)}
}

type windowLimiter struct {
	store *SlidingWindowStore
	key   string
}

func (l windowLimiter) Allow() bool { return l.store.allow(l.key) }

func (s *SlidingWindowStore) allow(key string) bool {
	now := s.now()
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		ent = &windowEntry{}
		s.entries[key] = ent
	}
	ent.lastSeen = now

	// os timestamps são monotônicos: basta descartar do início
	drop := 0
	for drop < len(ent.hits) && ent.hits[drop].Before(cutoff) {
		drop++
	}
	if drop > 0 {
		ent.hits = append(ent.hits[:0], ent.hits[drop:]...)
	}

	// janela cheia: rejeita sem contabilizar o hit rejeitado
	if len(ent.hits) >= s.max {
		return false
	}
	ent.hits = append(ent.hits, now)
	return true
}

func (s *SlidingWindowStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas
// periodicamente. Pare cancelando o contexto.
func (s *SlidingWindowStore) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem
// importar context aqui. (Permite reuso em libs sem acoplar.)
type DoneContext interface {
	Done() <-chan struct{}
}
