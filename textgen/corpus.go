// Package textgen готовит тексты для эксперимента: очищенный корпус, случайные
// фрагменты корпуса, случайные и рекуррентные последовательности и корпуса пар
// (открытый текст, последовательность) для каждого варианта.
package textgen

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/nPaBwaYT/OKLabs/cripta"
)

// CleanOptions правила очистки корпуса
type CleanOptions struct {
	Alphabet *cripta.Alphabet
	// Replacements заменяет вариант буквы базовой формой до фильтрации, например ґ -> г
	Replacements map[rune]rune
	Language     language.Tag
}

// UkrainianReplacements правило нормализации украинского корпуса
func UkrainianReplacements() map[rune]rune {
	return map[rune]rune{'ґ': 'г'}
}

// CleanText приводит текст к нижнему регистру, применяет замены и оставляет
// только символы алфавита. Пробелы между словами удаляются.
func CleanText(text string, opts CleanOptions) string {
	if opts.Alphabet == nil {
		return ""
	}

	lower := cases.Lower(opts.Language).String(norm.NFC.String(text))

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, word := range strings.Fields(lower) {
		for _, r := range word {
			if repl, ok := opts.Replacements[r]; ok {
				r = repl
			}
			if opts.Alphabet.Contains(r) {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// LoadCorpus читает файл корпуса и очищает его
func LoadCorpus(path string, opts CleanOptions) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus: %w", err)
	}

	cleaned := CleanText(string(raw), opts)
	if cleaned == "" {
		return "", fmt.Errorf("corpus %s has no symbols of alphabet %q", path, opts.Alphabet)
	}
	return cleaned, nil
}
