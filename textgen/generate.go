package textgen

import (
	"fmt"

	"github.com/nPaBwaYT/OKLabs/cripta"
)

// RandomFragment возвращает случайный фрагмент data длины length
func RandomFragment(data []rune, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("fragment length must be positive, got %d", length)
	}
	if length > len(data) {
		return "", fmt.Errorf("corpus of %d symbols is too short for fragments of length %d", len(data), length)
	}

	start, err := cripta.RandomInt(int64(len(data) - length + 1))
	if err != nil {
		return "", fmt.Errorf("failed to sample fragment start: %w", err)
	}
	return string(data[start : int(start)+length]), nil
}

// GenerateFragments для каждой длины len_texts[i] выбирает count_texts[i]
// случайных фрагментов корпуса
func GenerateFragments(data string, lenTexts, countTexts []int) (map[int][]string, error) {
	if len(lenTexts) != len(countTexts) {
		return nil, fmt.Errorf("len_texts and count_texts differ in size: %d != %d", len(lenTexts), len(countTexts))
	}

	runes := []rune(data)
	out := make(map[int][]string, len(lenTexts))
	for i, length := range lenTexts {
		texts := make([]string, countTexts[i])
		for j := range texts {
			fragment, err := RandomFragment(runes, length)
			if err != nil {
				return nil, err
			}
			texts[j] = fragment
		}
		out[length] = texts
	}
	return out, nil
}

// RandomText равномерно случайная последовательность длины n
func RandomText(alphabet *cripta.Alphabet, n int) (string, error) {
	return cripta.RandomSymbols(alphabet, n)
}

// RecursiveText строит последовательность s_i = (s_{i-1} + s_{i-2}) mod m
// со случайными s_0, s_1
func RecursiveText(alphabet *cripta.Alphabet, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	seed, err := cripta.RandomSymbols(alphabet, 2)
	if err != nil {
		return "", err
	}

	m := alphabet.Size()
	idx := make([]int, 0, n+1)
	for _, r := range seed {
		i, _ := alphabet.Index(r)
		idx = append(idx, i)
	}
	for len(idx) < n {
		k := len(idx)
		idx = append(idx, (idx[k-1]+idx[k-2])%m)
	}

	return alphabet.FromIndices(idx[:n]), nil
}
