package domain

import (
	"encoding/json"
	"strings"
)

// IDs das perguntas do questionário reconhecidas pelo recomendador.
const (
	QuestionIssueFamily = "q_issue_family"
	QuestionImpactMode  = "q_impact_mode"
	QuestionGeography   = "q_geography"
	QuestionLocation    = "q_location"
	QuestionTopics      = "q_topics"
)

// Answer é a resposta de uma pergunta do questionário. Chega por request
// e não é persistida.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

// AnswerValue é a união string | []string usada pelo questionário
// (perguntas de escolha única e de múltipla escolha).
type AnswerValue struct {
	values []string
}

// StringValue cria um AnswerValue de escolha única.
func StringValue(v string) AnswerValue { return AnswerValue{values: []string{v}} }

// ListValue cria um AnswerValue de múltipla escolha.
func ListValue(vs ...string) AnswerValue {
	return AnswerValue{values: append([]string(nil), vs...)}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		v.values = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	v.values = many
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if len(v.values) == 1 {
		return json.Marshal(v.values[0])
	}
	return json.Marshal(v.values)
}

// First devolve o valor como string única (primeiro item quando lista).
func (v AnswerValue) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// List devolve uma cópia do valor como lista.
func (v AnswerValue) List() []string {
	return append([]string(nil), v.values...)
}

// Query são os parâmetros de filtro normalizados derivados das respostas.
// Campos vazios não impõem restrição nenhuma no filtro.
type Query struct {
	IssueFamily string
	ImpactMode  string
	Geography   string
	Location    string
	Topics      []string
}

// QueryFromAnswers monta a Query a partir das respostas, por id de pergunta.
// A localização é normalizada (trim); perguntas desconhecidas são ignoradas.
func QueryFromAnswers(answers []Answer) Query {
	byID := make(map[string]AnswerValue, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.Value
	}
	return Query{
		IssueFamily: byID[QuestionIssueFamily].First(),
		ImpactMode:  byID[QuestionImpactMode].First(),
		Geography:   byID[QuestionGeography].First(),
		Location:    strings.TrimSpace(byID[QuestionLocation].First()),
		Topics:      byID[QuestionTopics].List(),
	}
}
