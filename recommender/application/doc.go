// Package application contém os casos de uso do recomendador: filtro e
// ranking do catálogo, orquestração da paginação com cursor assinado,
// sorteio diário e decisão de rate limit/concorrência.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: RecommendService.Recommend(query, cursor, limit) devolve uma página
// pronta para o adapter HTTP serializar.
package application
