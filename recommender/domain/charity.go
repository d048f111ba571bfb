package domain

// Charity representa uma organização do catálogo estático.
//
// O catálogo é carregado uma vez no startup e nunca muda depois disso,
// então os valores podem ser compartilhados entre requests sem lock.
type Charity struct {
	EIN         string   `json:"ein" yaml:"ein"`
	Name        string   `json:"name" yaml:"name"`
	URL         string   `json:"url,omitempty" yaml:"url"`
	Summary     string   `json:"summary,omitempty" yaml:"summary"`
	Location    string   `json:"location" yaml:"location"`
	NTEE        string   `json:"ntee,omitempty" yaml:"ntee"`
	IssueFamily string   `json:"issue_family" yaml:"issue_family"`
	ImpactModes []string `json:"impact_modes" yaml:"impact_modes"`
	Geographies []string `json:"geographies" yaml:"geographies"`
	Topics      []string `json:"topics" yaml:"topics"`
}

// Explain é o racional legível de uma recomendação: o código NTEE da
// família de causa e uma linha por filtro que influenciou o resultado.
type Explain struct {
	NTEE      string   `json:"ntee"`
	Rationale []string `json:"rationale"`
}
