// Package experiment запускает полный эксперимент: строит эталонную
// статистику, генерирует корпуса для всех вариантов, параллельно применяет
// критерии и собирает отчет об ошибках первого и второго рода.
package experiment

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

const UkrainianAlphabet = "абвгдеєжзиіїйклмнопрстуфхцчшщьюя"

// Config описание эксперимента (YAML)
type Config struct {
	Alphabet     string            `yaml:"alphabet"`
	Language     string            `yaml:"language"`
	Replacements map[string]string `yaml:"replacements"`
	CorpusPath   string            `yaml:"corpus"`

	LenTexts   []int `yaml:"len_texts"`
	CountTexts []int `yaml:"count_texts"`

	Reference ReferenceConfig `yaml:"reference"`
	Criteria  CriteriaConfig  `yaml:"criteria"`
	Variants  VariantsConfig  `yaml:"variants"`

	// Workers ограничивает число одновременно считаемых ячеек (вариант, критерий)
	Workers int `yaml:"workers"`
}

type ReferenceConfig struct {
	ForbidMassSymbols float64 `yaml:"forbid_mass_symbols"`
	ForbidMassBigrams float64 `yaml:"forbid_mass_bigrams"`
	PopularCoverage   float64 `yaml:"popular_coverage"`
	Precision         int     `yaml:"precision"`

	EntropyAlpha          float64 `yaml:"entropy_alpha"`
	FragmentOverlap       float64 `yaml:"fragment_overlap"`
	MaxFragmentsPerLength int     `yaml:"max_fragments_per_length"`

	// RandomSamplesPerLength объем выборки случайных текстов для эталона сжатия
	RandomSamplesPerLength int `yaml:"random_samples_per_length"`
}

type CriteriaConfig struct {
	Kp     int `yaml:"kp"`
	J      int `yaml:"j"`
	KEmpty int `yaml:"k_empty"`

	Compressor          string  `yaml:"compressor"`
	StructuralThreshold float64 `yaml:"structural_threshold"`
	StructuralBaseline  bool    `yaml:"structural_baseline"`

	// Enabled пустой - все критерии
	Enabled []string `yaml:"enabled"`
}

type VariantsConfig struct {
	VigenereKeyLengths []int  `yaml:"vigenere_key_lengths"`
	BigramPairing      string `yaml:"bigram_pairing"`
	ParallelEncryption bool   `yaml:"parallel_encryption"`

	// Enabled пустой - все варианты
	Enabled []string `yaml:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		Alphabet:     UkrainianAlphabet,
		Language:     "uk",
		Replacements: map[string]string{"ґ": "г"},
		CorpusPath:   "data/data.txt",
		LenTexts:     []int{10, 100, 1000, 10000},
		CountTexts:   []int{10000, 10000, 10000, 1000},
		Reference: ReferenceConfig{
			ForbidMassSymbols:      0.05,
			ForbidMassBigrams:      0.0025,
			PopularCoverage:        0.80,
			Precision:              3,
			EntropyAlpha:           0.05,
			FragmentOverlap:        0.5,
			MaxFragmentsPerLength:  1000,
			RandomSamplesPerLength: 200,
		},
		Criteria: CriteriaConfig{
			Kp:                  2,
			J:                   10,
			KEmpty:              3,
			Compressor:          "zlib",
			StructuralThreshold: 0.6,
			StructuralBaseline:  true,
		},
		Variants: VariantsConfig{
			VigenereKeyLengths: []int{1, 5, 10},
			BigramPairing:      "non_overlapping",
			ParallelEncryption: true,
		},
		Workers: 4,
	}
}

// LoadConfig читает YAML поверх значений по умолчанию
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := cripta.NewAlphabet(c.Alphabet); err != nil {
		return fmt.Errorf("invalid alphabet: %w", err)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	if _, err := c.replacementRunes(); err != nil {
		return err
	}

	if len(c.LenTexts) == 0 {
		return fmt.Errorf("len_texts is empty")
	}
	if len(c.LenTexts) != len(c.CountTexts) {
		return fmt.Errorf("len_texts and count_texts differ in size: %d != %d", len(c.LenTexts), len(c.CountTexts))
	}
	seen := make(map[int]bool, len(c.LenTexts))
	for i, l := range c.LenTexts {
		if l <= 0 {
			return fmt.Errorf("len_texts[%d] must be positive, got %d", i, l)
		}
		if seen[l] {
			return fmt.Errorf("len_texts has duplicate length %d", l)
		}
		seen[l] = true
		if c.CountTexts[i] < 0 {
			return fmt.Errorf("count_texts[%d] must not be negative, got %d", i, c.CountTexts[i])
		}
	}

	r := c.Reference
	if r.ForbidMassSymbols < 0 || r.ForbidMassSymbols > 1 || r.ForbidMassBigrams < 0 || r.ForbidMassBigrams > 1 {
		return fmt.Errorf("forbid masses must be in [0, 1]")
	}
	if r.PopularCoverage <= 0 || r.PopularCoverage > 1 {
		return fmt.Errorf("popular_coverage must be in (0, 1], got %v", r.PopularCoverage)
	}
	if r.EntropyAlpha < 0 || r.EntropyAlpha > 1 {
		return fmt.Errorf("entropy_alpha must be in [0, 1], got %v", r.EntropyAlpha)
	}
	if r.FragmentOverlap < 0 || r.FragmentOverlap >= 1 {
		return fmt.Errorf("fragment_overlap must be in [0, 1), got %v", r.FragmentOverlap)
	}
	if r.MaxFragmentsPerLength <= 0 || r.RandomSamplesPerLength <= 0 {
		return fmt.Errorf("sample sizes must be positive")
	}

	cr := c.Criteria
	if cr.Kp < 0 || cr.KEmpty < 0 {
		return fmt.Errorf("kp and k_empty must not be negative")
	}
	if cr.J <= 0 {
		return fmt.Errorf("j must be positive, got %d", cr.J)
	}
	if _, err := analysis.NewCompressor(cr.Compressor); err != nil {
		return err
	}
	for _, name := range cr.Enabled {
		if !isCriterionName(name) {
			return fmt.Errorf("unknown criterion %q", name)
		}
	}

	for _, k := range c.Variants.VigenereKeyLengths {
		if k <= 0 {
			return fmt.Errorf("vigenere key length must be positive, got %d", k)
		}
	}
	if _, err := c.pairingMode(); err != nil {
		return err
	}
	for _, name := range c.Variants.Enabled {
		if !enabled(name, c.VariantNames()) {
			return fmt.Errorf("unknown variant %q", name)
		}
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	return nil
}

func (c Config) cleanOptions() (textgen.CleanOptions, error) {
	alphabet, err := cripta.NewAlphabet(c.Alphabet)
	if err != nil {
		return textgen.CleanOptions{}, err
	}
	repl, err := c.replacementRunes()
	if err != nil {
		return textgen.CleanOptions{}, err
	}
	return textgen.CleanOptions{
		Alphabet:     alphabet,
		Replacements: repl,
		Language:     language.Make(c.Language),
	}, nil
}

func (c Config) replacementRunes() (map[rune]rune, error) {
	out := make(map[rune]rune, len(c.Replacements))
	for from, to := range c.Replacements {
		if utf8.RuneCountInString(from) != 1 || utf8.RuneCountInString(to) != 1 {
			return nil, fmt.Errorf("replacement %q -> %q must map one symbol to one symbol", from, to)
		}
		f, _ := utf8.DecodeRuneInString(from)
		t, _ := utf8.DecodeRuneInString(to)
		out[f] = t
	}
	return out, nil
}

func (c Config) pairingMode() (cripta.PairingMode, error) {
	switch c.Variants.BigramPairing {
	case "", "non_overlapping":
		return cripta.PairingNonOverlapping, nil
	case "crossing":
		return cripta.PairingCrossing, nil
	default:
		return 0, fmt.Errorf("unknown bigram pairing %q", c.Variants.BigramPairing)
	}
}
