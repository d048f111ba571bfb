package application

import (
	"time"

	"charity-recommender/recommender/domain"
)

// Service concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão
// descrevendo a política vigente.
type Service struct {
	Store      domain.LimiterStore
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true, Limit: s.Limit, Window: s.Window}
	}
	return domain.Decision{
		Allowed:    false,
		Limit:      s.Limit,
		Window:     s.Window,
		RetryAfter: s.RetryAfter,
	}
}

// Hit registra uma tentativa para a chave e devolve RateLimitError quando
// a janela já está cheia (a tentativa rejeitada não é contabilizada).
func (s Service) Hit(key domain.Key) error {
	dec := s.Decide(key)
	if dec.Allowed {
		return nil
	}
	return &domain.RateLimitError{
		MaxRequests:   s.Limit,
		WindowSeconds: int(s.Window / time.Second),
	}
}
