package criteria

import (
	"fmt"

	"github.com/nPaBwaYT/OKLabs/analysis"
)

// StructuralParams параметры структурного (компрессионного) критерия.
// При UseBaseline порог равен random_baseline(L) - tolerance(L), иначе Threshold.
type StructuralParams struct {
	Compressor  analysis.Compressor
	Threshold   float64
	UseBaseline bool
}

// Structural принимает H1, если степень сжатия последовательности не ниже порога:
// случайный текст сжимается хуже естественного.
func Structural(corpus Corpus, params StructuralParams, ref *Reference) (Result, error) {
	if params.Compressor == nil {
		return nil, fmt.Errorf("compressor is not set")
	}
	if params.UseBaseline && (ref == nil || ref.Compression == nil) {
		return nil, fmt.Errorf("compression baseline is not computed")
	}

	return evaluate(corpus, func(seq string, length int) (bool, error) {
		if seq == "" {
			return false, nil
		}

		cutoff := params.Threshold
		if params.UseBaseline {
			c, ok := ref.Compression.Cutoff(length)
			if !ok {
				return false, fmt.Errorf("no compression baseline for L=%d", length)
			}
			cutoff = c
		}

		ratio, err := analysis.CompressionRatio(params.Compressor, seq)
		if err != nil {
			return false, err
		}
		return ratio >= cutoff, nil
	})
}

func NewStructural(params StructuralParams, ref *Reference) ICriterion {
	return criterion{name: "criteria_structural", mode: analysis.ModeSymbol, fn: func(c Corpus) (Result, error) {
		return Structural(c, params, ref)
	}}
}
