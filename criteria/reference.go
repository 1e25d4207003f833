package criteria

import (
	"fmt"

	"github.com/nPaBwaYT/OKLabs/analysis"
)

// Reference эталонная статистика языка. Строится один раз до запуска
// критериев и далее только читается.
type Reference struct {
	SymbolFrequency *analysis.FrequencyTable
	BigramFrequency *analysis.FrequencyTable

	SymbolSets analysis.LGramSets
	BigramSets analysis.LGramSets

	SymbolEntropy analysis.EntropyBaseline
	BigramEntropy analysis.EntropyBaseline

	// Compression нужен только структурному критерию в режиме с эталоном
	Compression *analysis.CompressionBaseline
}

func (r *Reference) Frequency(mode analysis.Mode) *analysis.FrequencyTable {
	var table *analysis.FrequencyTable
	if mode == analysis.ModeBigram {
		table = r.BigramFrequency
	} else {
		table = r.SymbolFrequency
	}
	if table == nil {
		return analysis.NewFrequencyTable(nil)
	}
	return table
}

func (r *Reference) Sets(mode analysis.Mode) analysis.LGramSets {
	if mode == analysis.ModeBigram {
		return r.BigramSets
	}
	return r.SymbolSets
}

func (r *Reference) Entropy(mode analysis.Mode) analysis.EntropyBaseline {
	if mode == analysis.ModeBigram {
		return r.BigramEntropy
	}
	return r.SymbolEntropy
}

func (r *Reference) validate() error {
	if r == nil {
		return fmt.Errorf("reference statistics are not computed")
	}
	return nil
}

func toSet(lgrams []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lgrams))
	for _, lg := range lgrams {
		set[lg] = struct{}{}
	}
	return set
}
