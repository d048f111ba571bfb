package application

import (
	"fmt"

	"charity-recommender/recommender/domain"
)

// RecommendService orquestra filtro, paginação e cursor assinado.
type RecommendService struct {
	Engine Engine
	Codec  domain.CursorCodec
}

// Result é a página de recomendação pronta para o adapter HTTP.
type Result struct {
	Charities []domain.Charity
	// NextCursor é vazio quando a paginação termina.
	NextCursor string
	Explain    domain.Explain
	// Expired indica cursor vencido: página vazia, cliente deve reenviar
	// o questionário.
	Expired bool
}

// Recommend resolve uma página de recomendações.
//
// Cursor adulterado/malformado e cursor com assinatura divergente dos
// filtros atuais são erros de entrada do cliente (ErrInvalidCursor e
// ErrCursorMismatch). Cursor expirado NÃO é erro: devolve página vazia
// com o racional orientando reenviar o questionário.
//
// Quem retoma com cursor recebe resultados dos mesmos filtros que geraram
// o cursor — garantido comparando a assinatura embutida com a recalculada
// a partir das respostas atuais.
func (s RecommendService) Recommend(q domain.Query, cursor string, limit int) (Result, error) {
	signature := s.Engine.Signature(q)
	page := 0

	if cursor != "" {
		payload, status := s.Codec.Decode(cursor)
		switch status {
		case domain.CursorInvalid:
			return Result{}, domain.ErrInvalidCursor
		case domain.CursorExpired:
			return Result{
				Charities: []domain.Charity{},
				Explain:   s.Engine.Explain(q, true),
				Expired:   true,
			}, nil
		}
		if payload.Signature != signature {
			return Result{}, domain.ErrCursorMismatch
		}
		page = payload.Page
		if payload.PageSize > 0 {
			limit = payload.PageSize
		}
	}

	suggested := s.Engine.Filter(q)
	total := len(suggested)
	start := page * limit
	end := start + limit

	sliceStart, sliceEnd := start, end
	if sliceStart > total {
		sliceStart = total
	}
	if sliceEnd > total {
		sliceEnd = total
	}

	next := ""
	if end < total {
		token, err := s.Codec.Encode(domain.CursorPayload{
			Page:      page + 1,
			PageSize:  limit,
			Signature: signature,
		})
		if err != nil {
			return Result{}, fmt.Errorf("encode cursor: %w", err)
		}
		next = token
	}

	return Result{
		Charities:  suggested[sliceStart:sliceEnd],
		NextCursor: next,
		Explain:    s.Engine.Explain(q, false),
	}, nil
}
