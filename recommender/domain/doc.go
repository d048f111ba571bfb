// Package domain define contratos e tipos de domínio do recomendador:
// catálogo de organizações, questionário, cursor de paginação, rate limit
// e limite de concorrência.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar as regras de
// negócio de detalhes de infraestrutura.
package domain
