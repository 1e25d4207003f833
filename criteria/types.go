// Package criteria реализует критерии различения открытого текста и
// шифртекста (H0 - естественный язык, H1 - случайная последовательность)
// и вычисление ошибок первого и второго рода.
package criteria

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nPaBwaYT/OKLabs/analysis"
)

// TextPair открытый текст и соответствующая ему проверяемая последовательность
type TextPair struct {
	Plaintext  string `yaml:"plaintext"`
	Ciphertext string `yaml:"ciphertext"`
}

// Corpus пары текстов, сгруппированные по длине L открытого текста
type Corpus map[int][]TextPair

// Lengths возвращает длины корпуса по возрастанию
func (c Corpus) Lengths() []int {
	lengths := make([]int, 0, len(c))
	for l := range c {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// SampleSizes возвращает (len_texts, count_texts) корпуса
func (c Corpus) SampleSizes() ([]int, []int) {
	lengths := c.Lengths()
	counts := make([]int, len(lengths))
	for i, l := range lengths {
		counts[i] = len(c[l])
	}
	return lengths, counts
}

// Counts число принятий H1 для открытых текстов и шифртекстов
type Counts struct {
	Plain  int `yaml:"plain"`
	Cipher int `yaml:"cipher"`
}

// Result результат критерия по длинам
type Result map[int]Counts

type ICriterion interface {
	Name() string
	Mode() analysis.Mode
	Evaluate(corpus Corpus) (Result, error)
}

// decision решает, принимается ли H1 для последовательности корпуса длины length
type decision func(seq string, length int) (bool, error)

// LengthError сбой критерия на одной длине L
type LengthError struct {
	Length int
	Err    error
}

func (e *LengthError) Error() string {
	return e.Err.Error()
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// LengthErrors сбои критерия по отдельным длинам. Result для остальных длин
// при этом посчитан и валиден.
type LengthErrors []*LengthError

func (e LengthErrors) Error() string {
	msgs := make([]string, len(e))
	for i, le := range e {
		msgs[i] = fmt.Sprintf("L=%d: %v", le.Length, le.Err)
	}
	return strings.Join(msgs, "; ")
}

func (e LengthErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, le := range e {
		errs[i] = le
	}
	return errs
}

// evaluate применяет решение независимо к открытому тексту и шифртексту каждой
// пары. Длина, на которой решение вернуло ошибку, пропускается целиком и
// попадает в LengthErrors вместе с частичным результатом.
func evaluate(corpus Corpus, decide decision) (Result, error) {
	result := make(Result, len(corpus))
	var failed LengthErrors

	for _, length := range corpus.Lengths() {
		counts, err := evaluateLength(corpus[length], length, decide)
		if err != nil {
			failed = append(failed, &LengthError{Length: length, Err: err})
			continue
		}
		result[length] = counts
	}

	if len(failed) > 0 {
		return result, failed
	}
	return result, nil
}

func evaluateLength(pairs []TextPair, length int, decide decision) (Counts, error) {
	var counts Counts
	for _, pair := range pairs {
		plainH1, err := decide(pair.Plaintext, length)
		if err != nil {
			return Counts{}, err
		}
		cipherH1, err := decide(pair.Ciphertext, length)
		if err != nil {
			return Counts{}, err
		}

		if plainH1 {
			counts.Plain++
		}
		if cipherH1 {
			counts.Cipher++
		}
	}
	return counts, nil
}
