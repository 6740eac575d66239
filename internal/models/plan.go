package models

// Plan тарифный план премиум-доступа.
type Plan struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    int      `json:"price" yaml:"price"`
	Duration string   `json:"duration" yaml:"duration"`
	Features []string `json:"features" yaml:"features"`
	Popular  bool     `json:"popular,omitempty" yaml:"popular"`
}
