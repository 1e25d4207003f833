package experiment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/criteria"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

// BuildReference считает эталонную статистику по очищенному корпусу: таблицы
// частот, запрещенные и популярные l-граммы, эталоны энтропии и, если нужно,
// эталон сжатия случайных текстов. Критерии запускаются только после нее.
func BuildReference(ctx context.Context, cfg Config, data string, alphabet *cripta.Alphabet, comp analysis.Compressor) (*criteria.Reference, error) {
	rc := cfg.Reference
	ref := &criteria.Reference{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		freq := analysis.NormalizeToFrequency(analysis.CountUnigrams(data))
		ref.SymbolSets = analysis.SelectForbiddenAndPopular(freq, rc.ForbidMassSymbols, rc.PopularCoverage)
		ref.SymbolFrequency = freq.Round(rc.Precision)
		return nil
	})

	g.Go(func() error {
		freq := analysis.NormalizeToFrequency(analysis.CountBigramsCrossing(data))
		ref.BigramSets = analysis.SelectForbiddenAndPopular(freq, rc.ForbidMassBigrams, rc.PopularCoverage)
		ref.BigramFrequency = freq.Round(rc.Precision)
		return nil
	})

	g.Go(func() error {
		fragments := analysis.SampleCleanFragments(data, cfg.LenTexts, rc.FragmentOverlap, rc.MaxFragmentsPerLength)

		var err error
		ref.SymbolEntropy, err = analysis.EstimateEntropyBaseline(fragments, analysis.ModeSymbol, rc.EntropyAlpha)
		if err != nil {
			return fmt.Errorf("symbol entropy baseline: %w", err)
		}
		ref.BigramEntropy, err = analysis.EstimateEntropyBaseline(fragments, analysis.ModeBigram, rc.EntropyAlpha)
		if err != nil {
			return fmt.Errorf("bigram entropy baseline: %w", err)
		}
		return nil
	})

	if cfg.Criteria.StructuralBaseline {
		g.Go(func() error {
			samples := make(map[int][]string, len(cfg.LenTexts))
			for _, length := range cfg.LenTexts {
				if err := gctx.Err(); err != nil {
					return err
				}
				texts := make([]string, rc.RandomSamplesPerLength)
				for i := range texts {
					text, err := textgen.RandomText(alphabet, length)
					if err != nil {
						return fmt.Errorf("random sample for L=%d: %w", length, err)
					}
					texts[i] = text
				}
				samples[length] = texts
			}

			baseline, err := analysis.EstimateCompressionBaseline(samples, comp, rc.EntropyAlpha)
			if err != nil {
				return fmt.Errorf("compression baseline: %w", err)
			}
			ref.Compression = &baseline
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ref, nil
}
