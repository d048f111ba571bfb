package infra

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"charity-recommender/recommender/domain"
)

// cursorSalt separa o uso do segredo para cursores de qualquer outro uso
// do mesmo segredo no serviço (domain separation).
const cursorSalt = "charity-recommender-cursor"

// CursorCodec assina o estado de paginação com HMAC-SHA256 sobre o corpo
// serializado. O token é opaco: corpo e assinatura em base64url separados
// por ponto. Quem tem só o token não consegue forjar nem estender validade.
type CursorCodec struct {
	Secret string
	TTL    time.Duration
	// Now é injetável para testes; nil usa time.Now.
	Now func() time.Time
}

func NewCursorCodec(secret string, ttl time.Duration) *CursorCodec {
	return &CursorCodec{Secret: secret, TTL: ttl}
}

// Encode carimba IssuedAt e devolve o token assinado.
func (c *CursorCodec) Encode(payload domain.CursorPayload) (string, error) {
	payload.IssuedAt = c.now().UTC()

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	body := base64.RawURLEncoding.EncodeToString(raw)
	sig := base64.RawURLEncoding.EncodeToString(c.sign(body))
	return body + "." + sig, nil
}

// Decode verifica a assinatura antes de qualquer outra coisa, em tempo
// constante. Token malformado conta como assinatura inválida, nunca como
// pânico. Assinatura válida mas emissão mais velha que o TTL devolve
// CursorExpired — desfecho normal, não erro.
func (c *CursorCodec) Decode(token string) (domain.CursorPayload, domain.CursorStatus) {
	var payload domain.CursorPayload

	dot := strings.LastIndexByte(token, '.')
	if dot <= 0 || dot == len(token)-1 {
		return payload, domain.CursorInvalid
	}
	body, sig := token[:dot], token[dot+1:]

	// Strict: bits de padding não-zero também contam como adulteração,
	// senão dois tokens diferentes decodificariam para a mesma assinatura.
	rawSig, err := base64.RawURLEncoding.Strict().DecodeString(sig)
	if err != nil {
		return payload, domain.CursorInvalid
	}
	if !hmac.Equal(rawSig, c.sign(body)) {
		return payload, domain.CursorInvalid
	}

	rawBody, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return payload, domain.CursorInvalid
	}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return payload, domain.CursorInvalid
	}

	if c.TTL > 0 && c.now().Sub(payload.IssuedAt) > c.TTL {
		return payload, domain.CursorExpired
	}
	return payload, domain.CursorOK
}

func (c *CursorCodec) sign(body string) []byte {
	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(cursorSalt))
	mac.Write([]byte(body))
	return mac.Sum(nil)
}

func (c *CursorCodec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
