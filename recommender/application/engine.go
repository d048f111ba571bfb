package application

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"charity-recommender/recommender/domain"
)

// Código NTEE por família de causa. Famílias desconhecidas caem em Z99.
var issueToNTEE = map[string]string{
	"health":         "E70",
	"education":      "B82",
	"environment":    "C32",
	"human_services": "K30",
	"arts":           "A20",
	"international":  "Q35",
	"animals":        "D30",
	"other":          "Z99",
}

const defaultNTEE = "Z99"

// Engine aplica filtro e ranking determinístico sobre o catálogo estático.
// Não guarda estado mutável: pode ser compartilhado entre requests.
type Engine struct {
	Catalog []domain.Charity
}

// Filter devolve as organizações compatíveis com todos os filtros
// presentes, ordenadas por (score, nome) crescente — score mais negativo
// primeiro, empate desempatado pelo nome.
//
// Conjunto vazio cai para o catálogo inteiro: a política é sempre mostrar
// alguma coisa, nunca resultado vazio por excesso de filtro.
func (e Engine) Filter(q domain.Query) []domain.Charity {
	pool := make([]domain.Charity, 0, len(e.Catalog))
	for _, c := range e.Catalog {
		if matches(c, q) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, e.Catalog...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		si, sj := score(pool[i], q), score(pool[j], q)
		if si != sj {
			return si < sj
		}
		return pool[i].Name < pool[j].Name
	})
	return pool
}

func matches(c domain.Charity, q domain.Query) bool {
	if q.IssueFamily != "" && c.IssueFamily != q.IssueFamily {
		return false
	}
	if q.ImpactMode != "" && !contains(c.ImpactModes, q.ImpactMode) {
		return false
	}
	if q.Geography != "" && !contains(c.Geographies, q.Geography) {
		return false
	}
	return true
}

// score menor = melhor colocado: -10 quando a dica de localização aparece
// na localização da organização, -1 por tópico em comum.
func score(c domain.Charity, q domain.Query) int {
	v := 0
	if q.Location != "" && strings.Contains(strings.ToLower(c.Location), strings.ToLower(q.Location)) {
		v -= 10
	}
	seen := make(map[string]bool, len(q.Topics))
	for _, t := range q.Topics {
		if seen[t] {
			continue
		}
		seen[t] = true
		if contains(c.Topics, t) {
			v--
		}
	}
	return v
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Signature é o fingerprint determinístico dos filtros normalizados.
// Os tópicos são ordenados antes do hash: a ordem deles no request nunca
// muda a assinatura. Qualquer diferença em qualquer campo muda o digest.
func (e Engine) Signature(q domain.Query) string {
	topics := make([]string, 0, len(q.Topics))
	topics = append(topics, q.Topics...)
	sort.Strings(topics)

	payload := struct {
		Geography string   `json:"geography"`
		Impact    string   `json:"impact"`
		Issue     string   `json:"issue"`
		Location  string   `json:"location"`
		Topics    []string `json:"topics"`
	}{
		Geography: q.Geography,
		Impact:    q.ImpactMode,
		Issue:     q.IssueFamily,
		Location:  q.Location,
		Topics:    topics,
	}

	raw, _ := json.Marshal(payload)
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// Explain monta o racional legível da recomendação, uma linha por filtro
// presente, em ordem fixa. Com expired, acrescenta a orientação de
// reenviar o questionário.
func (e Engine) Explain(q domain.Query, expired bool) domain.Explain {
	var rationale []string
	if q.IssueFamily != "" {
		rationale = append(rationale, "Issue focus: "+q.IssueFamily)
	}
	if q.ImpactMode != "" {
		rationale = append(rationale, "Impact mode: "+q.ImpactMode)
	}
	if q.Geography != "" {
		rationale = append(rationale, "Geography preference: "+q.Geography)
	}
	if q.Location != "" {
		rationale = append(rationale, "Location hint: "+q.Location)
	}
	if len(q.Topics) > 0 {
		rationale = append(rationale, "Topics matched: "+strings.Join(q.Topics, ", "))
	}
	if expired {
		rationale = append(rationale, "Cursor expired. Please submit the survey again for fresh results.")
	}

	code, ok := issueToNTEE[q.IssueFamily]
	if !ok {
		code = defaultNTEE
	}
	return domain.Explain{NTEE: code, Rationale: rationale}
}
