package locale

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed locales.yml
var embedded []byte

// Names — локализованные названия для одного языка.
type Names struct {
	WeekdaysShort  []string `yaml:"weekdays_short"` // С воскресенья, как time.Weekday.
	WeekdaysLong   []string `yaml:"weekdays_long"`
	Months         []string `yaml:"months"`
	MonthsGenitive []string `yaml:"months_genitive"` // Необязательно, используется в DatePattern.
	AM             string   `yaml:"am"`
	PM             string   `yaml:"pm"`

	// DatePattern с подстановками {weekday}, {day}, {month}, {year}. Встроенные шаблоны год не выводят.
	DatePattern string `yaml:"date_pattern"`
}

// Table — ключ: языковой тег BCP 47 (en, de, pt-BR, ...).
type Table map[string]Names

func (n *Names) validate() error {
	if len(n.WeekdaysShort) != 7 || len(n.WeekdaysLong) != 7 {
		return fmt.Errorf("expected 7 weekday names")
	}
	if len(n.Months) != 12 {
		return fmt.Errorf("expected 12 month names")
	}
	if len(n.MonthsGenitive) != 0 && len(n.MonthsGenitive) != 12 {
		return fmt.Errorf("expected 12 genitive month names")
	}
	if n.DatePattern == "" {
		return fmt.Errorf("empty date pattern")
	}
	return nil
}

func parseTable(data []byte) (Table, error) {
	t := Table{}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("cannot parse locales yaml: %w", err)
	}

	for id, names := range t {
		names := names
		if err := names.validate(); err != nil {
			return nil, fmt.Errorf("locale %s: %w", id, err)
		}
	}
	return t, nil
}

// LoadFile читает дополнительные локали из YAML-файла того же формата, что и встроенный locales.yml.
func LoadFile(path string) (Table, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read locales yaml: %w", err)
	}
	return parseTable(f)
}
