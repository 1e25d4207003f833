package analysis

import (
	"fmt"
	"math"
	"sort"
	"unicode"

	"gonum.org/v1/gonum/stat"
)

// EntropyBaseline эталонная энтропия H_L и допустимое отклонение k_H(L) по длинам
type EntropyBaseline struct {
	Mode Mode
	H    map[int]float64
	KH   map[int]float64
}

// At возвращает (H_L, k_H(L)) для длины L
func (b EntropyBaseline) At(length int) (float64, float64, bool) {
	h, ok := b.H[length]
	if !ok {
		return 0, 0, false
	}
	return h, b.KH[length], true
}

// ToleranceBound возвращает среднее выборки и отклонение от среднего на
// (1-alpha)-квантили: индекс round((1-alpha)*(n-1)) в отсортированных |x - mean|.
func ToleranceBound(values []float64, alpha float64) (float64, float64, error) {
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("empty sample")
	}
	if alpha < 0 || alpha > 1 {
		return 0, 0, fmt.Errorf("alpha must be in [0, 1], got %v", alpha)
	}

	mean := stat.Mean(values, nil)

	deltas := make([]float64, len(values))
	for i, v := range values {
		deltas[i] = math.Abs(v - mean)
	}
	sort.Float64s(deltas)

	idx := int(math.Round((1 - alpha) * float64(len(deltas)-1)))
	return mean, deltas[idx], nil
}

// EstimateEntropyBaseline вычисляет H_L и k_H(L) по чистым фрагментам каждой длины.
// Длины без фрагментов пропускаются.
func EstimateEntropyBaseline(samplesByLength map[int][]string, mode Mode, alpha float64) (EntropyBaseline, error) {
	baseline := EntropyBaseline{
		Mode: mode,
		H:    make(map[int]float64, len(samplesByLength)),
		KH:   make(map[int]float64, len(samplesByLength)),
	}

	for length, samples := range samplesByLength {
		if len(samples) == 0 {
			continue
		}

		values := make([]float64, len(samples))
		for i, s := range samples {
			values[i] = EntropyOf(s, mode)
		}

		mean, k, err := ToleranceBound(values, alpha)
		if err != nil {
			return EntropyBaseline{}, fmt.Errorf("entropy baseline for L=%d: %w", length, err)
		}
		baseline.H[length] = mean
		baseline.KH[length] = k
	}

	return baseline, nil
}

// SampleCleanFragments нарезает из текста фрагменты каждой длины L с шагом
// L*(1-overlap), не более maxPerLength штук (0 - без ограничения).
func SampleCleanFragments(text string, lengths []int, overlap float64, maxPerLength int) map[int][]string {
	runes := []rune(text)
	out := make(map[int][]string, len(lengths))

	for _, length := range lengths {
		samples := []string{}
		if length <= 0 {
			out[length] = samples
			continue
		}

		step := int(float64(length) * (1 - overlap))
		if step <= 0 {
			step = 1
		}

		for i := 0; i < len(runes)-length; i += step {
			fragment := runes[i : i+length]
			if hasSpace(fragment) {
				continue
			}
			samples = append(samples, string(fragment))
			if maxPerLength > 0 && len(samples) >= maxPerLength {
				break
			}
		}
		out[length] = samples
	}

	return out
}

func hasSpace(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
