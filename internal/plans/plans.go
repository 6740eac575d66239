// Package plans содержит статический каталог тарифных планов премиум-доступа.
package plans

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

const (
	// Monthly идентификатор месячного плана.
	Monthly = "monthly"
	// Yearly идентификатор годового плана.
	Yearly = "yearly"
)

//go:embed plans.yaml
var catalogueYAML []byte

var catalogue = mustParse(catalogueYAML)

func mustParse(data []byte) []models.Plan {
	p, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse разбирает каталог планов из YAML.
func Parse(data []byte) ([]models.Plan, error) {
	const op = "plans.Parse"
	var out []models.Plan
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	seen := make(map[string]struct{}, len(out))
	for _, p := range out {
		if p.ID == "" {
			return nil, fmt.Errorf("%s: plan without id", op)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate plan %q", op, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return out, nil
}

// All возвращает копию каталога в порядке отображения.
func All() []models.Plan {
	out := make([]models.Plan, len(catalogue))
	for i, p := range catalogue {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// Find возвращает план по идентификатору.
func Find(id string) (models.Plan, bool) {
	for _, p := range catalogue {
		if p.ID == id {
			p.Features = append([]string(nil), p.Features...)
			return p, true
		}
	}
	return models.Plan{}, false
}

// Term возвращает срок премиум-доступа для плана: год для годового плана,
// 30 дней для любого другого идентификатора.
func Term(planID string) time.Duration {
	if planID == Yearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
