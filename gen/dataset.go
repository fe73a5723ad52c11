package gen

import (
	_ "embed"
	"io"
	"log/slog"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplgen/lang"
)

//go:embed data/dataset.yaml
var embeddedDataset []byte

// Dataset holds the reference tables sampled by the generators.
// A Dataset is read-only once loaded and may be shared freely.
type Dataset struct {
	FirstNames   []string `yaml:"first_names"`
	MiddleNames  []string `yaml:"middle_names"`
	LastNames    []string `yaml:"last_names"`
	Places       []string `yaml:"places"`
	Streets      []string `yaml:"streets"`
	StreetTypes  []string `yaml:"street_types"`
	CountryCodes []string `yaml:"country_codes"`
}

// ErrDataset indicates a dataset that cannot be loaded or has empty tables.
var ErrDataset = lang.NewError("invalid dataset")

// DefaultDataset returns the dataset embedded in the binary.
// It panics if the embedded tables are malformed, which is a build defect.
var DefaultDataset = sync.OnceValue(func() *Dataset {
	d, err := ParseDataset(embeddedDataset)
	if err != nil {
		panic(err)
	}

	return d
})

// LoadDataset reads a YAML dataset from r. Tables missing from the input
// are taken from the embedded dataset.
func LoadDataset(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, lang.ErrReadInput.Wrap(err).
			With(slog.String("source", "dataset"))
	}

	d := *DefaultDataset()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, ErrDataset.Wrap(err)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// ParseDataset decodes a complete YAML dataset.
func ParseDataset(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, ErrDataset.Wrap(err)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

func (d *Dataset) validate() error {
	for name, table := range d.tables() {
		if len(table) == 0 {
			return ErrDataset.With(
				slog.String("table", name),
				slog.String("reason", "empty"),
			)
		}
	}

	return nil
}

func (d *Dataset) tables() map[string][]string {
	return map[string][]string{
		"first_names":   d.FirstNames,
		"middle_names":  d.MiddleNames,
		"last_names":    d.LastNames,
		"places":        d.Places,
		"streets":       d.Streets,
		"street_types":  d.StreetTypes,
		"country_codes": d.CountryCodes,
	}
}
