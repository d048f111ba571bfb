package domain

import (
	"fmt"
	"time"
)

type Key string

// Limiter representa algo que pode decidir se uma ação é permitida agora.
//
// Observação: a implementação pode ser janela deslizante, token-bucket, etc.
// A camada de infra pode usar libs como golang.org/x/time/rate.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave (ex: IP, API key, usuário).
// A implementação pode manter cache, TTL, janitor, etc.
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// Limit e Window descrevem a política vigente, para compor a resposta
	// ao cliente (quantas requisições por janela).
	Limit  int
	Window time.Duration
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}

// RateLimitError é devolvido quando um hit excede o limite da janela.
// Carrega a política configurada para que o chamador informe uma espera
// significativa ao cliente.
type RateLimitError struct {
	MaxRequests   int
	WindowSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d requests per %d seconds", e.MaxRequests, e.WindowSeconds)
}
