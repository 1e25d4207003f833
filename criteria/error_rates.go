package criteria

import (
	"fmt"
	"math"
)

// ErrorRate ошибки первого (alpha) и второго (beta) рода
type ErrorRate struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// CalcErrorRates переводит результат критерия в ошибки по длинам:
// alpha = plain/n, beta = (n - cipher)/n; при n = 0 обе ошибки равны 0.
func CalcErrorRates(result Result, lenTexts, countTexts []int) (map[int]ErrorRate, error) {
	if len(lenTexts) != len(countTexts) {
		return nil, fmt.Errorf("len_texts and count_texts differ in size: %d != %d", len(lenTexts), len(countTexts))
	}

	nByLength := make(map[int]int, len(lenTexts))
	for i, l := range lenTexts {
		nByLength[l] = countTexts[i]
	}

	rates := make(map[int]ErrorRate, len(result))
	for length, counts := range result {
		n := nByLength[length]
		if n <= 0 {
			rates[length] = ErrorRate{}
			continue
		}
		rates[length] = ErrorRate{
			Alpha: clamp01(float64(counts.Plain) / float64(n)),
			Beta:  clamp01(float64(n-counts.Cipher) / float64(n)),
		}
	}

	return rates, nil
}

// CalcErrorRatesForAll применяет CalcErrorRates к результатам нескольких критериев
func CalcErrorRatesForAll(results map[string]Result, lenTexts, countTexts []int) (map[string]map[int]ErrorRate, error) {
	out := make(map[string]map[int]ErrorRate, len(results))
	for name, result := range results {
		rates, err := CalcErrorRates(result, lenTexts, countTexts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = rates
	}
	return out, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
