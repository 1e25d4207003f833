package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

const latin = "abcdefghijklmnopqrstuvwxyz"

var testCorpus = strings.Repeat("thequickbrownfoxjumpsoverthelazydog", 20)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Alphabet = latin
	cfg.Language = "en"
	cfg.Replacements = nil
	cfg.LenTexts = []int{5, 20}
	cfg.CountTexts = []int{20, 10}
	cfg.Reference.MaxFragmentsPerLength = 50
	cfg.Reference.RandomSamplesPerLength = 20
	cfg.Variants.VigenereKeyLengths = []int{1, 3}
	cfg.Workers = 2
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfig(t *testing.T) {
	t.Run("Значения по умолчанию корректны", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("Загрузка YAML поверх значений по умолчанию", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exp.yaml")
		yml := `
corpus: corpus.txt
len_texts: [10, 100]
count_texts: [5, 5]
criteria:
  kp: 3
  compressor: zstd
variants:
  vigenere_key_lengths: [2]
  bigram_pairing: crossing
`
		require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "corpus.txt", cfg.CorpusPath)
		assert.Equal(t, []int{10, 100}, cfg.LenTexts)
		assert.Equal(t, 3, cfg.Criteria.Kp)
		assert.Equal(t, "zstd", cfg.Criteria.Compressor)
		assert.Equal(t, 10, cfg.Criteria.J)
		assert.Equal(t, 0.05, cfg.Reference.ForbidMassSymbols)
		assert.Equal(t, UkrainianAlphabet, cfg.Alphabet)
		assert.Equal(t, []string{"affine", "affine_bigram", "vigenere_k2", "random", "recursive"}, cfg.VariantNames())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Разные размеры планов", func(c *Config) { c.CountTexts = c.CountTexts[:1] }},
		{"Повтор длины", func(c *Config) { c.LenTexts = []int{5, 5} }},
		{"Неизвестный критерий", func(c *Config) { c.Criteria.Enabled = []string{"criteria_9_9_sym"} }},
		{"Неизвестный вариант", func(c *Config) { c.Variants.Enabled = []string{"caesar"} }},
		{"Неизвестный компрессор", func(c *Config) { c.Criteria.Compressor = "lzma" }},
		{"Неизвестное разбиение", func(c *Config) { c.Variants.BigramPairing = "diagonal" }},
		{"Плохая замена", func(c *Config) { c.Replacements = map[string]string{"ab": "c"} }},
		{"Короткий алфавит", func(c *Config) { c.Alphabet = "a" }},
		{"Нет воркеров", func(c *Config) { c.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRunOnCorpus(t *testing.T) {
	metrics := NewMetrics()
	runner, err := NewRunner(testConfig(), quietLogger(), metrics)
	require.NoError(t, err)

	report, err := runner.RunOnCorpus(context.Background(), testCorpus)
	require.NoError(t, err)

	t.Run("Все варианты и критерии", func(t *testing.T) {
		assert.NotEmpty(t, report.RunID)
		assert.Empty(t, report.Failures)
		assert.Equal(t, []string{"affine", "affine_bigram", "random", "recursive", "vigenere_k1", "vigenere_k3"}, report.Variants())

		for _, variant := range report.Variants() {
			assert.Len(t, report.Results[variant], len(CriterionNames()), variant)
			for name, rates := range report.Results[variant] {
				require.Len(t, rates, 2, name)
				for _, rate := range rates {
					assert.GreaterOrEqual(t, rate.Alpha, 0.0)
					assert.LessOrEqual(t, rate.Alpha, 1.0)
					assert.GreaterOrEqual(t, rate.Beta, 0.0)
					assert.LessOrEqual(t, rate.Beta, 1.0)
				}
			}
		}
	})

	t.Run("Диагностика", func(t *testing.T) {
		d := report.Diagnostics["random"]
		assert.Equal(t, 30, d.Texts)
		assert.Greater(t, d.MeanByteEntropy, 0.0)
		assert.Greater(t, d.MeanIC, 0.0)
	})

	t.Run("Метрики", func(t *testing.T) {
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cells.WithLabelValues("affine", "criteria_1_0_sym", resultOK)))
		assert.Equal(t, 30.0, testutil.ToFloat64(metrics.textsGenerated.WithLabelValues("vigenere_k3")))
		assert.Equal(t, 6*len(CriterionNames()), testutil.CollectAndCount(metrics.cells))

		path := filepath.Join(t.TempDir(), "metrics.prom")
		require.NoError(t, metrics.WriteToTextfile(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "criteria_cells_total")
	})

	t.Run("Таблица", func(t *testing.T) {
		out := report.Render(textgen.VariantTitle)
		assert.Contains(t, out, "Sequence by Affine cipher")
		assert.Contains(t, out, "Random sequence")
		assert.Contains(t, out, "structural")
		assert.Contains(t, out, "FP (l=2)")
	})

	t.Run("Экспорт YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		require.NoError(t, report.SaveYAML(path))

		loaded, err := LoadReport(path)
		require.NoError(t, err)
		assert.Equal(t, report.RunID, loaded.RunID)
		assert.Equal(t, report.Results["affine"]["criteria_1_0_sym"], loaded.Results["affine"]["criteria_1_0_sym"])
	})
}

func TestRunIsolatesFailures(t *testing.T) {
	cfg := testConfig()
	// для длины, равной длине корпуса, нет чистых фрагментов и эталона энтропии
	cfg.LenTexts = []int{5, len(testCorpus)}
	cfg.CountTexts = []int{10, 2}
	cfg.Variants.Enabled = []string{"affine", "random"}

	runner, err := NewRunner(cfg, quietLogger(), nil)
	require.NoError(t, err)

	report, err := runner.RunOnCorpus(context.Background(), testCorpus)
	require.NoError(t, err)

	require.Len(t, report.Failures, 4)
	for _, f := range report.Failures {
		assert.Contains(t, f.Criterion, "criteria_3_0")
		assert.Equal(t, len(testCorpus), f.Length)
		assert.Contains(t, f.Error, "entropy baseline")
	}
	assert.Equal(t, CellFailure{
		Variant:   "affine",
		Criterion: "criteria_3_0_bigram",
		Length:    len(testCorpus),
		Error:     report.Failures[0].Error,
	}, report.Failures[0])

	// длины с эталоном сохраняют свои ошибки
	assert.Len(t, report.Results["affine"], len(CriterionNames()))
	for _, variant := range []string{"affine", "random"} {
		rates := report.Results[variant]["criteria_3_0_sym"]
		assert.Contains(t, rates, 5, variant)
		assert.NotContains(t, rates, len(testCorpus), variant)
	}
	assert.Contains(t, report.Results["random"]["criteria_1_0_sym"], len(testCorpus))
	assert.Contains(t, report.Render(nil), fmt.Sprintf("FAILED affine/criteria_3_0_bigram (L=%d)", len(testCorpus)))
}

func TestBuildReferenceCancelled(t *testing.T) {
	cfg := testConfig()
	alphabet, err := cripta.NewAlphabet(cfg.Alphabet)
	require.NoError(t, err)
	comp, err := analysis.NewCompressor(cfg.Criteria.Compressor)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = BuildReference(ctx, cfg, testCorpus, alphabet, comp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSubset(t *testing.T) {
	cfg := testConfig()
	cfg.Criteria.Enabled = []string{"criteria_5_1_bigram"}
	cfg.Variants.Enabled = []string{"recursive"}

	runner, err := NewRunner(cfg, quietLogger(), nil)
	require.NoError(t, err)

	report, err := runner.RunOnCorpus(context.Background(), testCorpus)
	require.NoError(t, err)

	assert.Equal(t, []string{"recursive"}, report.Variants())
	assert.Len(t, report.Results["recursive"], 1)
	assert.Contains(t, report.Results["recursive"], "criteria_5_1_bigram")
}

func TestRunFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("The quick brown fox, jumps over the lazy dog!\n"+testCorpus), 0644))

	cfg := testConfig()
	cfg.CorpusPath = path
	cfg.Variants.Enabled = []string{"affine"}
	cfg.Criteria.Enabled = []string{"criteria_1_0_sym", "criteria_structural"}

	runner, err := NewRunner(cfg, quietLogger(), nil)
	require.NoError(t, err)

	t.Run("Прогон", func(t *testing.T) {
		report, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Results["affine"], 2)
	})

	t.Run("Отмена", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := runner.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Нет корпуса", func(t *testing.T) {
		cfg.CorpusPath = filepath.Join(dir, "missing.txt")
		r, err := NewRunner(cfg, quietLogger(), nil)
		require.NoError(t, err)
		_, err = r.Run(context.Background())
		assert.Error(t, err)
	})
}
