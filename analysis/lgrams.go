// Package analysis содержит статистику символьных последовательностей:
// подсчет l-грамм, частоты, энтропию, индекс совпадений, выбор запрещенных
// и популярных l-грамм и динамические пороги.
package analysis

import (
	"fmt"
	"sort"
)

// Mode режим l-грамм: символы (l=1) или биграммы (l=2)
type Mode int

const (
	ModeSymbol Mode = iota
	ModeBigram
)

func (m Mode) String() string {
	if m == ModeBigram {
		return "bigram"
	}
	return "sym"
}

// LGramLength длина l-граммы в символах
func (m Mode) LGramLength() int {
	if m == ModeBigram {
		return 2
	}
	return 1
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "sym", "symbol", "unigram", "l1":
		return ModeSymbol, nil
	case "bigram", "l2":
		return ModeBigram, nil
	default:
		return ModeSymbol, fmt.Errorf("unknown l-gram mode %q", s)
	}
}

// Entry l-грамма и число ее вхождений
type Entry struct {
	LGram string
	Count int
}

// CountTable таблица вхождений, отсортированная по убыванию
type CountTable []Entry

// Total суммарное число вхождений
func (t CountTable) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

func (t CountTable) Map() map[string]int {
	out := make(map[string]int, len(t))
	for _, e := range t {
		out[e.LGram] = e.Count
	}
	return out
}

func newCountTable(counts map[string]int) CountTable {
	table := make(CountTable, 0, len(counts))
	for lg, c := range counts {
		table = append(table, Entry{LGram: lg, Count: c})
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].LGram < table[j].LGram
	})
	return table
}

// CountUnigrams считает вхождения символов
func CountUnigrams(text string) CountTable {
	counts := make(map[string]int)
	for _, r := range text {
		counts[string(r)]++
	}
	return newCountTable(counts)
}

// CountBigramsCrossing считает перекрывающиеся биграммы: len(text) биграмм,
// последний символ образует пару сам с собой.
func CountBigramsCrossing(text string) CountTable {
	runes := []rune(text)
	counts := make(map[string]int)
	last := len(runes) - 1
	for i := range runes {
		next := i + 1
		if next > last {
			next = last
		}
		counts[string([]rune{runes[i], runes[next]})]++
	}
	return newCountTable(counts)
}

// CountBigramsNonCrossing считает неперекрывающиеся биграммы, непарный
// последний символ отбрасывается.
func CountBigramsNonCrossing(text string) CountTable {
	runes := []rune(text)
	counts := make(map[string]int)
	for i := 0; i+1 < len(runes); i += 2 {
		counts[string(runes[i:i+2])]++
	}
	return newCountTable(counts)
}

// Count считает l-граммы в режиме mode так же, как при построении эталонов
func Count(text string, mode Mode) CountTable {
	if mode == ModeBigram {
		return CountBigramsCrossing(text)
	}
	return CountUnigrams(text)
}

// LGrams возвращает все позиции l-грамм последовательности: len(text)
// символов или len(text)-1 перекрывающихся биграмм.
func LGrams(text string, mode Mode) []string {
	runes := []rune(text)
	if mode == ModeSymbol {
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}

	if len(runes) < 2 {
		return nil
	}
	out := make([]string, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out[i] = string(runes[i : i+2])
	}
	return out
}
