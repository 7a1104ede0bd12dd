package schedules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

type presetFile struct {
	Schedules []preset `json:"schedules" yaml:"schedules" toml:"schedules"`
}

type preset struct {
	ID         string  `json:"id" yaml:"id" toml:"id"`
	Name       string  `json:"name" yaml:"name" toml:"name"`
	Currency   string  `json:"currency" yaml:"currency" toml:"currency"`
	Tier1Rate  float64 `json:"tier1_rate" yaml:"tier1_rate" toml:"tier1_rate"`
	Tier2Rate  float64 `json:"tier2_rate" yaml:"tier2_rate" toml:"tier2_rate"`
	Tier3Rate  float64 `json:"tier3_rate" yaml:"tier3_rate" toml:"tier3_rate"`
	Tier1Limit float64 `json:"tier1_limit" yaml:"tier1_limit" toml:"tier1_limit"`
	Tier2Limit float64 `json:"tier2_limit" yaml:"tier2_limit" toml:"tier2_limit"`
}

// LoadFile reads schedule presets from a TOML, YAML or JSON file. Every
// schedule is validated.
func LoadFile(path string) ([]tariff.Schedule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing presets file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading presets file: %w", err)
	}

	var file presetFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported presets file format: %s", ext)
	}

	out := make([]tariff.Schedule, 0, len(file.Schedules))
	for _, p := range file.Schedules {
		sch := p.schedule()
		if err := sch.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.ID, err)
		}
		out = append(out, sch)
	}
	return out, nil
}

func (p preset) schedule() tariff.Schedule {
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = tariff.DefaultCurrency
	}
	return tariff.Schedule{
		ID:         strings.ToLower(strings.TrimSpace(p.ID)),
		Name:       strings.TrimSpace(p.Name),
		Currency:   currency,
		Tier1Rate:  decimal.NewFromFloat(p.Tier1Rate),
		Tier2Rate:  decimal.NewFromFloat(p.Tier2Rate),
		Tier3Rate:  decimal.NewFromFloat(p.Tier3Rate),
		Tier1Limit: decimal.NewFromFloat(p.Tier1Limit),
		Tier2Limit: decimal.NewFromFloat(p.Tier2Limit),
	}
}
