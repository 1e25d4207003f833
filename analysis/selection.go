package analysis

// massTolerance поглощает ошибку накопления при суммировании частот
const massTolerance = 1e-12

// LGramSets запрещенные и популярные l-граммы эталонного языка
type LGramSets struct {
	Forbidden []string
	Popular   []string
}

// SelectForbiddenAndPopular выбирает запрещенные l-граммы (самые редкие с
// суммарной массой <= forbidMass) и популярные (самые частые, пока суммарная
// масса не достигнет popularCoverage). Оба списка упорядочены по убыванию частоты.
func SelectForbiddenAndPopular(table *FrequencyTable, forbidMass, popularCoverage float64) LGramSets {
	sets := LGramSets{Forbidden: []string{}, Popular: []string{}}
	if table == nil || table.IsEmpty() {
		return sets
	}

	total := table.Sum()
	if total <= 0 {
		return sets
	}

	entries := table.entries

	cum := 0.0
	start := len(entries)
	for i := len(entries) - 1; i >= 0; i-- {
		p := entries[i].Freq / total
		if cum+p > forbidMass+massTolerance {
			break
		}
		cum += p
		start = i
	}
	for _, e := range entries[start:] {
		sets.Forbidden = append(sets.Forbidden, e.LGram)
	}

	cum = 0.0
	for _, e := range entries {
		sets.Popular = append(sets.Popular, e.LGram)
		cum += e.Freq / total
		if cum >= popularCoverage-massTolerance {
			break
		}
	}

	return sets
}
