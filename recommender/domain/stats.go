package domain

import (
	"context"
	"time"
)

// StatsEvent representa um evento de decisão do rate limit da API.
//
// Ele é propositalmente "agnóstico de HTTP": Method/Path são strings
// genéricas e servem para qualquer transporte.
//
// Observação: cuidado com cardinalidade (salvar Key sem controle pode
// explodir o número de chaves em uma base como Redis).
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do rate limit.
//
// Implementações podem armazenar em Redis, memória, etc.
// O middleware deve tratar erro como best-effort (não derrubar request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
