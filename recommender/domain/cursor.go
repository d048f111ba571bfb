package domain

import (
	"errors"
	"time"
)

// CursorPayload é o estado de paginação embutido no token opaco.
// Signature é o fingerprint dos filtros que geraram a página; IssuedAt é
// carimbado pelo codec no momento do Encode.
type CursorPayload struct {
	Page      int       `json:"page"`
	PageSize  int       `json:"page_size"`
	Signature string    `json:"signature"`
	IssuedAt  time.Time `json:"issued_at"`
}

// CursorStatus é o desfecho de decodificar um cursor.
//
// Expirado é um desfecho normal (o cliente deve reenviar o questionário),
// por isso é modelado como status e não como erro.
type CursorStatus int

const (
	CursorOK CursorStatus = iota
	CursorExpired
	CursorInvalid
)

// CursorCodec assina/verifica o estado de paginação como token opaco.
//
// Qualquer alteração de um único byte do token precisa resultar em
// CursorInvalid; token malformado conta como inválido, nunca como pânico.
type CursorCodec interface {
	Encode(payload CursorPayload) (string, error)
	Decode(token string) (CursorPayload, CursorStatus)
}

// Erros de entrada do cliente no fluxo de recomendação.
var (
	// ErrInvalidCursor indica token adulterado ou malformado.
	ErrInvalidCursor = errors.New("invalid cursor signature")
	// ErrCursorMismatch indica cursor válido com filtros diferentes dos atuais.
	ErrCursorMismatch = errors.New("cursor does not match current answers")
)
