package criteria

import (
	"fmt"
	"math"

	"github.com/nPaBwaYT/OKLabs/analysis"
)

// Criterion10 принимает H1, если в последовательности есть хотя бы одна
// запрещенная l-грамма.
func Criterion10(corpus Corpus, mode analysis.Mode, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	forbidden := toSet(ref.Sets(mode).Forbidden)

	return evaluate(corpus, func(seq string, _ int) (bool, error) {
		for _, lg := range analysis.LGrams(seq, mode) {
			if _, ok := forbidden[lg]; ok {
				return true, nil
			}
		}
		return false, nil
	})
}

// Criterion11 принимает H1, если различных запрещенных l-грамм в
// последовательности не меньше kp.
func Criterion11(corpus Corpus, mode analysis.Mode, kp int, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	forbidden := toSet(ref.Sets(mode).Forbidden)

	return evaluate(corpus, func(seq string, _ int) (bool, error) {
		found := make(map[string]struct{})
		for _, lg := range analysis.LGrams(seq, mode) {
			if _, ok := forbidden[lg]; ok {
				found[lg] = struct{}{}
			}
		}
		return len(found) >= kp, nil
	})
}

// Criterion12 принимает H1, если частота какой-либо запрещенной l-граммы в
// последовательности превышает ее эталонную частоту.
func Criterion12(corpus Corpus, mode analysis.Mode, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	forbidden := toSet(ref.Sets(mode).Forbidden)
	freq := ref.Frequency(mode)

	return evaluate(corpus, func(seq string, _ int) (bool, error) {
		positions := analysis.LGrams(seq, mode)
		if len(positions) == 0 {
			return false, nil
		}

		found := make(map[string]int)
		for _, lg := range positions {
			if _, ok := forbidden[lg]; ok {
				found[lg]++
			}
		}

		total := float64(len(positions))
		for lg, cnt := range found {
			if float64(cnt)/total > freq.Freq(lg) {
				return true, nil
			}
		}
		return false, nil
	})
}

// Criterion13 принимает H1, если суммарная частота запрещенных l-грамм в
// последовательности превышает их суммарную эталонную частоту.
func Criterion13(corpus Corpus, mode analysis.Mode, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	sets := ref.Sets(mode)
	forbidden := toSet(sets.Forbidden)
	freq := ref.Frequency(mode)

	kp := 0.0
	for _, lg := range sets.Forbidden {
		kp += freq.Freq(lg)
	}

	return evaluate(corpus, func(seq string, _ int) (bool, error) {
		positions := analysis.LGrams(seq, mode)
		if len(positions) == 0 {
			return false, nil
		}

		occurrences := 0
		for _, lg := range positions {
			if _, ok := forbidden[lg]; ok {
				occurrences++
			}
		}
		return float64(occurrences)/float64(len(positions)) > kp, nil
	})
}

// Criterion30 принимает H1, если |H - H_L| > k_H(L) по динамическому эталону
// энтропии для длины L.
func Criterion30(corpus Corpus, mode analysis.Mode, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	baseline := ref.Entropy(mode)

	return evaluate(corpus, func(seq string, length int) (bool, error) {
		h, k, ok := baseline.At(length)
		if !ok {
			return false, fmt.Errorf("no %s entropy baseline for L=%d", mode, length)
		}
		return math.Abs(analysis.EntropyOf(seq, mode)-h) > k, nil
	})
}

// Criterion51 принимает H1, если из j самых частых эталонных l-грамм в
// последовательности отсутствует не меньше kEmpty.
func Criterion51(corpus Corpus, mode analysis.Mode, j, kEmpty int, ref *Reference) (Result, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	if j <= 0 {
		return nil, fmt.Errorf("j must be positive, got %d", j)
	}
	top := ref.Frequency(mode).Top(j)

	return evaluate(corpus, func(seq string, _ int) (bool, error) {
		present := toSet(analysis.LGrams(seq, mode))
		missing := 0
		for _, lg := range top {
			if _, ok := present[lg]; !ok {
				missing++
			}
		}
		return missing >= kEmpty, nil
	})
}

type criterion struct {
	name string
	mode analysis.Mode
	fn   func(Corpus) (Result, error)
}

func (c criterion) Name() string {
	return c.name
}

func (c criterion) Mode() analysis.Mode {
	return c.mode
}

func (c criterion) Evaluate(corpus Corpus) (Result, error) {
	return c.fn(corpus)
}

// CriterionName имя критерия в отчете: criteria_1_0_sym, criteria_5_1_bigram, ...
func CriterionName(id string, mode analysis.Mode) string {
	return fmt.Sprintf("criteria_%s_%s", id, mode)
}

func New10(mode analysis.Mode, ref *Reference) ICriterion {
	return criterion{name: CriterionName("1_0", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion10(c, mode, ref)
	}}
}

func New11(mode analysis.Mode, kp int, ref *Reference) ICriterion {
	return criterion{name: CriterionName("1_1", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion11(c, mode, kp, ref)
	}}
}

func New12(mode analysis.Mode, ref *Reference) ICriterion {
	return criterion{name: CriterionName("1_2", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion12(c, mode, ref)
	}}
}

func New13(mode analysis.Mode, ref *Reference) ICriterion {
	return criterion{name: CriterionName("1_3", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion13(c, mode, ref)
	}}
}

func New30(mode analysis.Mode, ref *Reference) ICriterion {
	return criterion{name: CriterionName("3_0", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion30(c, mode, ref)
	}}
}

func New51(mode analysis.Mode, j, kEmpty int, ref *Reference) ICriterion {
	return criterion{name: CriterionName("5_1", mode), mode: mode, fn: func(c Corpus) (Result, error) {
		return Criterion51(c, mode, j, kEmpty, ref)
	}}
}
