package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/experiment"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

/*
Полный эксперимент по конфигурации
go run . run --config exp.yaml --report report.yaml --metrics-file metrics.prom

Шифрование строки аффинным шифром с заданным ключом
go run . encrypt --cipher affine --a 5 --b 8 "привіт"

Шифрование файла биграммным аффинным шифром со случайным ключом
go run . encrypt --cipher affine-bigram --in input.txt --out output.txt

Дешифрование Виженера
go run . decrypt --cipher vigenere --key ключ "шифртекст"

Статистика корпуса
go run . stats --corpus data/data.txt

Шифры: affine, affine-bigram (--crossing для перекрывающихся биграмм), vigenere
*/

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "oklabs",
		Short:         "Distinguishing classical-cipher ciphertext from natural-language text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Уровень логирования: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Формат логов: text, json")

	root.AddCommand(newRunCmd(), newCipherCmd(true), newCipherCmd(false), newStatsCmd())
	return root
}

// newLogger создает slog логгер в stderr
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("неизвестный формат логов %q", format)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		reportPath  string
		metricsPath string
		corpusPath  string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full experiment and print FP/FN tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := experiment.DefaultConfig()
			if configPath != "" {
				loaded, err := experiment.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if corpusPath != "" {
				cfg.CorpusPath = corpusPath
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			metrics := experiment.NewMetrics()
			runner, err := experiment.NewRunner(cfg, slog.Default(), metrics)
			if err != nil {
				return err
			}

			startTime := time.Now()
			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Render(textgen.VariantTitle))
			fmt.Fprintf(cmd.OutOrStdout(), "Прогон %s: %v, сбоев: %d\n", report.RunID, time.Since(startTime), len(report.Failures))

			if reportPath != "" {
				if err := report.SaveYAML(reportPath); err != nil {
					return err
				}
				slog.Info("report saved", "path", reportPath)
			}
			if metricsPath != "" {
				if err := metrics.WriteToTextfile(metricsPath); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
				slog.Info("metrics saved", "path", metricsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML файл эксперимента")
	cmd.Flags().StringVar(&reportPath, "report", "", "Сохранить отчет в YAML")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Сохранить метрики prometheus")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Файл корпуса (перекрывает конфигурацию)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Число параллельных ячеек (перекрывает конфигурацию)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		corpusPath   string
		alphabetFlag string
		top          int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print entropy, index of coincidence and forbidden/popular l-grams of a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := experiment.DefaultConfig()
			alphabet, err := cripta.NewAlphabet(alphabetFlag)
			if err != nil {
				return err
			}

			data, err := textgen.LoadCorpus(corpusPath, textgen.CleanOptions{
				Alphabet:     alphabet,
				Replacements: textgen.UkrainianReplacements(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Символов: %d\n", len([]rune(data)))

			ic, err := analysis.IndexOfCoincidence(data, alphabet)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Индекс совпадений: %.6f\n", ic)
			fmt.Fprintf(out, "Байтовая энтропия: %.4f\n", analysis.ByteEntropy(data))

			masses := map[analysis.Mode]float64{
				analysis.ModeSymbol: cfg.Reference.ForbidMassSymbols,
				analysis.ModeBigram: cfg.Reference.ForbidMassBigrams,
			}
			for _, mode := range []analysis.Mode{analysis.ModeSymbol, analysis.ModeBigram} {
				freq := analysis.NormalizeToFrequency(analysis.Count(data, mode))
				sets := analysis.SelectForbiddenAndPopular(freq, masses[mode], cfg.Reference.PopularCoverage)

				fmt.Fprintf(out, "\nl=%d\n", mode.LGramLength())
				fmt.Fprintf(out, "  Энтропия: %.4f\n", analysis.ShannonEntropy(freq))
				fmt.Fprintf(out, "  Топ-%d: %s\n", top, strings.Join(freq.Top(top), " "))
				fmt.Fprintf(out, "  Запрещенные (%d): %s\n", len(sets.Forbidden), strings.Join(sets.Forbidden, " "))
				fmt.Fprintf(out, "  Популярные (%d): %s\n", len(sets.Popular), strings.Join(sets.Popular, " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "data/data.txt", "Файл корпуса")
	cmd.Flags().StringVar(&alphabetFlag, "alphabet", experiment.UkrainianAlphabet, "Алфавит")
	cmd.Flags().IntVar(&top, "top", 10, "Число самых частых l-грамм")
	return cmd
}
