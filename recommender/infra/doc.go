// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - SlidingWindowStore: janela deslizante de hits por chave (padrão)
//   - BucketStore: token bucket por chave usando golang.org/x/time/rate
//   - CursorCodec: token de paginação assinado com HMAC-SHA256
//   - LoadCatalog: catálogo YAML (arquivo ou embutido no binário)
//   - RedisStatsStore/MemoryStatsStore: estatísticas de decisão
//   - ChanPool: semáforo simples para limite de concorrência
package infra
