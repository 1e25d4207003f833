package analysis

import (
	"math"
	"sort"
	"unicode/utf8"
)

// FreqEntry l-грамма и ее относительная частота
type FreqEntry struct {
	LGram string
	Freq  float64
}

// FrequencyTable неизменяемая таблица частот, отсортированная по убыванию
type FrequencyTable struct {
	entries []FreqEntry
	index   map[string]float64
}

// NewFrequencyTable строит таблицу из записей, сортируя их по убыванию частоты
func NewFrequencyTable(entries []FreqEntry) *FrequencyTable {
	sorted := make([]FreqEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Freq != sorted[j].Freq {
			return sorted[i].Freq > sorted[j].Freq
		}
		return sorted[i].LGram < sorted[j].LGram
	})

	index := make(map[string]float64, len(sorted))
	for _, e := range sorted {
		index[e.LGram] = e.Freq
	}
	return &FrequencyTable{entries: sorted, index: index}
}

// NormalizeToFrequency делит каждое число вхождений на их сумму.
// Пустая таблица дает пустую таблицу частот.
func NormalizeToFrequency(counts CountTable) *FrequencyTable {
	total := counts.Total()
	if total == 0 {
		return NewFrequencyTable(nil)
	}

	entries := make([]FreqEntry, len(counts))
	for i, e := range counts {
		entries[i] = FreqEntry{LGram: e.LGram, Freq: float64(e.Count) / float64(total)}
	}
	return NewFrequencyTable(entries)
}

func (t *FrequencyTable) Entries() []FreqEntry {
	out := make([]FreqEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *FrequencyTable) Len() int {
	return len(t.entries)
}

func (t *FrequencyTable) IsEmpty() bool {
	return len(t.entries) == 0
}

// Freq возвращает эталонную частоту l-граммы; отсутствующая l-грамма дает 0
func (t *FrequencyTable) Freq(lgram string) float64 {
	return t.index[lgram]
}

// Sum сумма всех частот
func (t *FrequencyTable) Sum() float64 {
	sum := 0.0
	for _, e := range t.entries {
		sum += e.Freq
	}
	return sum
}

// LGramLength длина l-грамм таблицы (по первой записи)
func (t *FrequencyTable) LGramLength() int {
	if len(t.entries) == 0 {
		return 0
	}
	return utf8.RuneCountInString(t.entries[0].LGram)
}

// Top возвращает j самых частых l-грамм
func (t *FrequencyTable) Top(j int) []string {
	if j > len(t.entries) {
		j = len(t.entries)
	}
	if j < 0 {
		j = 0
	}
	out := make([]string, j)
	for i := 0; i < j; i++ {
		out[i] = t.entries[i].LGram
	}
	return out
}

// Round округляет частоты до precision знаков; precision < 0 оставляет таблицу как есть
func (t *FrequencyTable) Round(precision int) *FrequencyTable {
	if precision < 0 {
		return t
	}
	scale := math.Pow(10, float64(precision))
	entries := make([]FreqEntry, len(t.entries))
	for i, e := range t.entries {
		entries[i] = FreqEntry{LGram: e.LGram, Freq: math.Round(e.Freq*scale) / scale}
	}
	return NewFrequencyTable(entries)
}
