package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nPaBwaYT/OKLabs/cripta"
)

func TestCounting(t *testing.T) {
	t.Run("Символы по убыванию", func(t *testing.T) {
		table := CountUnigrams("abracadabra")
		require.NotEmpty(t, table)
		assert.Equal(t, Entry{LGram: "a", Count: 5}, table[0])
		assert.Equal(t, 11, table.Total())
		for i := 1; i < len(table); i++ {
			assert.GreaterOrEqual(t, table[i-1].Count, table[i].Count)
		}
	})

	t.Run("Перекрывающиеся биграммы", func(t *testing.T) {
		table := CountBigramsCrossing("abcd")
		assert.Equal(t, 4, table.Total())
		assert.Equal(t, map[string]int{"ab": 1, "bc": 1, "cd": 1, "dd": 1}, table.Map())
	})

	t.Run("Перекрывающиеся биграммы из одного символа", func(t *testing.T) {
		table := CountBigramsCrossing("a")
		assert.Equal(t, map[string]int{"aa": 1}, table.Map())
		assert.Empty(t, CountBigramsCrossing(""))
	})

	t.Run("Неперекрывающиеся биграммы", func(t *testing.T) {
		table := CountBigramsNonCrossing("abcde")
		assert.Equal(t, 2, table.Total())
		assert.Equal(t, map[string]int{"ab": 1, "cd": 1}, table.Map())
	})

	t.Run("Кириллица", func(t *testing.T) {
		table := CountBigramsNonCrossing("прив")
		assert.Equal(t, map[string]int{"пр": 1, "ив": 1}, table.Map())
	})

	t.Run("Позиции l-грамм", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, LGrams("abc", ModeSymbol))
		assert.Equal(t, []string{"ab", "bc"}, LGrams("abc", ModeBigram))
		assert.Empty(t, LGrams("a", ModeBigram))
	})
}

func TestNormalizeToFrequency(t *testing.T) {
	t.Run("Пустая последовательность", func(t *testing.T) {
		table := NormalizeToFrequency(CountUnigrams(""))
		assert.True(t, table.IsEmpty())
		assert.Equal(t, 0.0, ShannonEntropy(table))
	})

	t.Run("Сумма частот", func(t *testing.T) {
		table := NormalizeToFrequency(CountUnigrams("abracadabra"))
		assert.InDelta(t, 1.0, table.Sum(), 1e-12)
		assert.InDelta(t, 5.0/11.0, table.Freq("a"), 1e-12)
		assert.Equal(t, 0.0, table.Freq("z"))
	})

	t.Run("Округление до трех знаков", func(t *testing.T) {
		table := NormalizeToFrequency(CountUnigrams("abracadabra")).Round(3)
		assert.Equal(t, 0.455, table.Freq("a"))
		assert.InDelta(t, 1.0, table.Sum(), 0.005)
	})
}

func TestShannonEntropy(t *testing.T) {
	t.Run("Один символ", func(t *testing.T) {
		assert.Equal(t, 0.0, EntropyOf("aaaaaaaaaa", ModeSymbol))
		assert.Equal(t, 0.0, EntropyOf("aaaaaaaaaa", ModeBigram))
	})

	t.Run("Равномерное распределение", func(t *testing.T) {
		assert.InDelta(t, 2.0, EntropyOf("abcdabcdabcd", ModeSymbol), 1e-12)
	})

	t.Run("Биграммы делятся на 2", func(t *testing.T) {
		table := NewFrequencyTable([]FreqEntry{{"ab", 0.25}, {"bc", 0.25}, {"cd", 0.25}, {"da", 0.25}})
		assert.InDelta(t, 1.0, ShannonEntropy(table), 1e-12)
	})

	t.Run("Нулевые частоты пропускаются", func(t *testing.T) {
		table := NewFrequencyTable([]FreqEntry{{"a", 0.5}, {"b", 0.5}, {"c", 0}})
		assert.InDelta(t, 1.0, ShannonEntropy(table), 1e-12)
	})

	t.Run("Границы", func(t *testing.T) {
		texts := []string{"hello", "mississippi", "thequickbrownfoxjumpsoverthelazydog", "ab"}
		for _, text := range texts {
			for _, mode := range []Mode{ModeSymbol, ModeBigram} {
				table := NormalizeToFrequency(Count(text, mode))
				h := ShannonEntropy(table)
				assert.GreaterOrEqual(t, h, 0.0)
				assert.LessOrEqual(t, h, math.Log2(float64(table.Len()))+1e-12, "%s %s", text, mode)
			}
		}
	})
}

func TestIndexOfCoincidence(t *testing.T) {
	alphabet := cripta.MustAlphabet("abcde")

	ic, err := IndexOfCoincidence("aaaaaaaaaa", alphabet)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ic)

	ic, err = IndexOfCoincidence("abcde", alphabet)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ic)

	ic, err = IndexOfCoincidence("aabb", alphabet)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/12.0, ic, 1e-12)

	_, err = IndexOfCoincidence("a", alphabet)
	assert.Error(t, err)
}

func TestSelectForbiddenAndPopular(t *testing.T) {
	table := NewFrequencyTable([]FreqEntry{
		{"a", 0.40}, {"b", 0.30}, {"c", 0.20}, {"d", 0.06}, {"e", 0.03}, {"f", 0.01},
	})

	t.Run("Запрещенные", func(t *testing.T) {
		sets := SelectForbiddenAndPopular(table, 0.05, 0.80)
		assert.Equal(t, []string{"e", "f"}, sets.Forbidden)
	})

	t.Run("Граница массы с допуском", func(t *testing.T) {
		sets := SelectForbiddenAndPopular(table, 0.04, 0.80)
		assert.Equal(t, []string{"e", "f"}, sets.Forbidden)
	})

	t.Run("Популярные", func(t *testing.T) {
		sets := SelectForbiddenAndPopular(table, 0.05, 0.80)
		assert.Equal(t, []string{"a", "b", "c"}, sets.Popular)

		sets = SelectForbiddenAndPopular(table, 0.05, 0.70)
		assert.Equal(t, []string{"a", "b"}, sets.Popular)
	})

	t.Run("Нулевая масса", func(t *testing.T) {
		sets := SelectForbiddenAndPopular(table, 0, 0.5)
		assert.Empty(t, sets.Forbidden)
	})

	t.Run("Пустая таблица", func(t *testing.T) {
		sets := SelectForbiddenAndPopular(NewFrequencyTable(nil), 0.05, 0.8)
		assert.Empty(t, sets.Forbidden)
		assert.Empty(t, sets.Popular)
	})
}

func TestToleranceBound(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	mean, k, err := ToleranceBound(values, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 3.0, mean)
	// |x-3| = [0 1 1 2 2], round(0.95*4) = 4
	assert.Equal(t, 2.0, k)

	_, k, err = ToleranceBound(values, 0.5)
	require.NoError(t, err)
	// round(0.5*4) = 2
	assert.Equal(t, 1.0, k)

	_, _, err = ToleranceBound(nil, 0.05)
	assert.Error(t, err)

	_, _, err = ToleranceBound(values, 1.5)
	assert.Error(t, err)
}

func TestEstimateEntropyBaseline(t *testing.T) {
	samples := map[int][]string{
		4:  {"abcd", "aabb", "aaaa"},
		10: {},
	}

	baseline, err := EstimateEntropyBaseline(samples, ModeSymbol, 0.05)
	require.NoError(t, err)

	h, k, ok := baseline.At(4)
	require.True(t, ok)
	assert.InDelta(t, 1.0, h, 1e-12) // (2 + 1 + 0) / 3
	assert.InDelta(t, 1.0, k, 1e-12)

	_, _, ok = baseline.At(10)
	assert.False(t, ok)
}

func TestSampleCleanFragments(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10)

	fragments := SampleCleanFragments(text, []int{10, 20}, 0.5, 3)
	require.Len(t, fragments[10], 3)
	assert.Equal(t, "abcdefghij", fragments[10][0])
	assert.Equal(t, "fghijabcde", fragments[10][1])
	assert.Len(t, fragments[20], 3)

	all := SampleCleanFragments(text, []int{10}, 0, 0)
	assert.Len(t, all[10], 9)

	withSpaces := SampleCleanFragments("ab cd", []int{2}, 0.5, 0)
	assert.Equal(t, []string{"ab"}, withSpaces[2])
}

func TestCompression(t *testing.T) {
	for _, name := range CompressorNames {
		t.Run(name, func(t *testing.T) {
			c, err := NewCompressor(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			repetitive, err := CompressionRatio(c, strings.Repeat("a", 1000))
			require.NoError(t, err)

			alphabet := cripta.MustAlphabet("abcdefghijklmnopqrstuvwxyz")
			random, err := cripta.RandomSymbols(alphabet, 1000)
			require.NoError(t, err)
			randomRatio, err := CompressionRatio(c, random)
			require.NoError(t, err)

			assert.Less(t, repetitive, randomRatio)

			empty, err := CompressionRatio(c, "")
			require.NoError(t, err)
			assert.Equal(t, 0.0, empty)
		})
	}

	_, err := NewCompressor("rar")
	assert.Error(t, err)
}

func TestEstimateCompressionBaseline(t *testing.T) {
	c, err := NewCompressor("zlib")
	require.NoError(t, err)

	alphabet := cripta.MustAlphabet("abcdefghijklmnopqrstuvwxyz")
	samples := map[int][]string{}
	for i := 0; i < 20; i++ {
		s, err := cripta.RandomSymbols(alphabet, 200)
		require.NoError(t, err)
		samples[200] = append(samples[200], s)
	}

	baseline, err := EstimateCompressionBaseline(samples, c, 0.05)
	require.NoError(t, err)

	cutoff, ok := baseline.Cutoff(200)
	require.True(t, ok)
	assert.Greater(t, baseline.Ratio[200], 0.0)
	assert.LessOrEqual(t, cutoff, baseline.Ratio[200])

	_, ok = baseline.Cutoff(50)
	assert.False(t, ok)
}

func TestByteEntropy(t *testing.T) {
	assert.Equal(t, 0.0, ByteEntropy(""))
	assert.InDelta(t, 0.0, ByteEntropy("aaaaaaaa"), 1e-9)
	assert.Greater(t, ByteEntropy("abcdefgh"), ByteEntropy("aaaabbbb"))
}
