package infra

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"charity-recommender/recommender/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// LoadCatalog lê o catálogo de um arquivo YAML; com path vazio usa o
// catálogo embutido no binário. O resultado é imutável: carregue uma vez
// no startup e injete nos componentes.
func LoadCatalog(path string) ([]domain.Charity, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw = b
	}

	var doc struct {
		Charities []domain.Charity `yaml:"charities"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Charities) == 0 {
		return nil, errors.New("catalog is empty")
	}
	return doc.Charities, nil
}
