// Package recommender fornece os adapters HTTP (net/http) da API de
// recomendação de organizações: handlers das rotas, rate limit por cliente,
// limite de concorrência, CORS e headers de ambiente.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (filtro/ranking, paginação com cursor,
//     sorteio diário, decisão allow/deny) sem net/http
//   - infra: implementações concretas (janela deslizante, token bucket,
//     codec HMAC, catálogo YAML, semáforo), detalhes de infraestrutura
//   - recommender (este pacote): handlers e middlewares HTTP + extração de
//     chave + tradução para status/headers/JSON
//
// Fluxo de um request de recomendação:
//
//  1. Extrai a chave do cliente (IP/header/XFF)
//  2. Chama a camada application para a decisão de rate limit
//  3. Se bloqueado, responde 429 com a política no corpo
//  4. Se permitido, deriva a Query das respostas, resolve a página
//     (decodificando o cursor quando presente) e serializa o resultado
//
// Variáveis de ambiente do binário api (cmd/api) controlam o comportamento,
// como SECRET_KEY, CURSOR_TTL_SECONDS, RATE_LIMIT_PER_MINUTE e
// CONCURRENCY_MAX.
package recommender
