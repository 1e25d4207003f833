package analysis

import (
	"fmt"
	"math"

	"github.com/lazybeaver/entropy"

	"github.com/nPaBwaYT/OKLabs/cripta"
)

// ShannonEntropy вычисляет H = -Σ p*log2(p) по таблице частот.
// Нулевые частоты пропускаются, для биграмм результат делится на 2.
func ShannonEntropy(table *FrequencyTable) float64 {
	if table == nil || table.IsEmpty() {
		return 0
	}

	sum := table.Sum()
	if sum <= 0 {
		return 0
	}

	h := 0.0
	for _, e := range table.entries {
		if e.Freq <= 0 {
			continue
		}
		p := e.Freq / sum
		h -= p * math.Log2(p)
	}

	if table.LGramLength() == 2 {
		h /= 2
	}

	return h
}

// EntropyOf энтропия текста в режиме mode (на символ)
func EntropyOf(text string, mode Mode) float64 {
	return ShannonEntropy(NormalizeToFrequency(Count(text, mode)))
}

// IndexOfCoincidence вычисляет Σ f_i(f_i-1) / [N(N-1)] по символам алфавита
func IndexOfCoincidence(text string, alphabet *cripta.Alphabet) (float64, error) {
	runes := []rune(text)
	n := len(runes)
	if n <= 1 {
		return 0, fmt.Errorf("index of coincidence is undefined for text of length %d", n)
	}

	counts := make(map[rune]int, alphabet.Size())
	for _, r := range runes {
		if alphabet.Contains(r) {
			counts[r]++
		}
	}

	sum := 0
	for _, f := range counts {
		sum += f * (f - 1)
	}

	return float64(sum) / float64(n*(n-1)), nil
}

// ByteEntropy энтропия Шеннона по байтам UTF-8 представления текста (бит на байт)
func ByteEntropy(text string) float64 {
	if text == "" {
		return 0
	}
	e := entropy.NewShannonEstimator()
	e.Write([]byte(text))
	return e.Value()
}
