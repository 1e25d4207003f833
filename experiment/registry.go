package experiment

import (
	"fmt"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/criteria"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

var criterionIDs = []string{"1_0", "1_1", "1_2", "1_3", "3_0", "5_1"}

const structuralName = "criteria_structural"

// CriterionNames все имена критериев в порядке отчета
func CriterionNames() []string {
	names := make([]string, 0, 2*len(criterionIDs)+1)
	for _, id := range criterionIDs {
		for _, mode := range []analysis.Mode{analysis.ModeSymbol, analysis.ModeBigram} {
			names = append(names, criteria.CriterionName(id, mode))
		}
	}
	return append(names, structuralName)
}

func isCriterionName(name string) bool {
	for _, n := range CriterionNames() {
		if n == name {
			return true
		}
	}
	return false
}

// VariantNames имена вариантов конфигурации в порядке отчета
func (c Config) VariantNames() []string {
	names := []string{"affine", "affine_bigram"}
	for _, k := range c.Variants.VigenereKeyLengths {
		names = append(names, textgen.VigenereVariantName(k))
	}
	return append(names, "random", "recursive")
}

func enabled(name string, list []string) bool {
	if len(list) == 0 {
		return true
	}
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func buildCriteria(cfg CriteriaConfig, ref *criteria.Reference, comp analysis.Compressor) []criteria.ICriterion {
	var all []criteria.ICriterion
	for _, mode := range []analysis.Mode{analysis.ModeSymbol, analysis.ModeBigram} {
		all = append(all,
			criteria.New10(mode, ref),
			criteria.New11(mode, cfg.Kp, ref),
			criteria.New12(mode, ref),
			criteria.New13(mode, ref),
			criteria.New30(mode, ref),
			criteria.New51(mode, cfg.J, cfg.KEmpty, ref),
		)
	}
	all = append(all, criteria.NewStructural(criteria.StructuralParams{
		Compressor:  comp,
		Threshold:   cfg.StructuralThreshold,
		UseBaseline: cfg.StructuralBaseline,
	}, ref))

	out := all[:0]
	for _, c := range all {
		if enabled(c.Name(), cfg.Enabled) {
			out = append(out, c)
		}
	}
	return out
}

// buildSources создает источники последовательностей для включенных вариантов.
// Шифры берут новый случайный ключ для каждого текста.
func buildSources(cfg Config, alphabet *cripta.Alphabet) ([]textgen.ISource, error) {
	mode, err := cfg.pairingMode()
	if err != nil {
		return nil, err
	}

	generators := map[string]cripta.IKeyGenerator{
		"affine":        cripta.AffineKeyGenerator{},
		"affine_bigram": cripta.AffineBigramKeyGenerator{Mode: mode},
	}
	for _, k := range cfg.Variants.VigenereKeyLengths {
		generators[textgen.VigenereVariantName(k)] = cripta.VigenereKeyGenerator{KeyLength: k}
	}

	var sources []textgen.ISource
	for _, name := range cfg.VariantNames() {
		if !enabled(name, cfg.Variants.Enabled) {
			continue
		}

		switch name {
		case "random":
			sources = append(sources, textgen.NewRandomSource(alphabet))
		case "recursive":
			sources = append(sources, textgen.NewRecursiveSource(alphabet))
		default:
			ctx, err := cripta.NewRekeyingCipherContext(alphabet, generators[name], cfg.Variants.ParallelEncryption)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", name, err)
			}
			sources = append(sources, textgen.NewCipherSource(name, ctx))
		}
	}
	return sources, nil
}
