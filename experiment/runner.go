package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/nPaBwaYT/OKLabs/analysis"
	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/criteria"
	"github.com/nPaBwaYT/OKLabs/textgen"
)

type Runner struct {
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
}

func NewRunner(cfg Config, logger *slog.Logger, metrics *Metrics) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Runner{cfg: cfg, logger: logger, metrics: metrics}, nil
}

func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run загружает корпус из конфигурации и выполняет эксперимент
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	opts, err := r.cfg.cleanOptions()
	if err != nil {
		return nil, err
	}

	data, err := textgen.LoadCorpus(r.cfg.CorpusPath, opts)
	if err != nil {
		return nil, err
	}
	return r.RunOnCorpus(ctx, data)
}

// RunOnCorpus выполняет эксперимент на уже очищенном корпусе. Ошибка
// возвращается только при сбое подготовки; сбои отдельных ячеек попадают в
// Report.Failures.
func (r *Runner) RunOnCorpus(ctx context.Context, data string) (*Report, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	report := newReport(runID)

	alphabet, err := cripta.NewAlphabet(r.cfg.Alphabet)
	if err != nil {
		return nil, err
	}
	comp, err := analysis.NewCompressor(r.cfg.Criteria.Compressor)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ref, err := BuildReference(ctx, r.cfg, data, alphabet, comp)
	if err != nil {
		return nil, fmt.Errorf("failed to build reference statistics: %w", err)
	}
	logger.Info("reference statistics built",
		"duration", time.Since(start),
		"forbidden_symbols", len(ref.SymbolSets.Forbidden),
		"forbidden_bigrams", len(ref.BigramSets.Forbidden),
	)

	fragments, err := textgen.GenerateFragments(data, r.cfg.LenTexts, r.cfg.CountTexts)
	if err != nil {
		return nil, fmt.Errorf("failed to sample plaintexts: %w", err)
	}

	sources, err := buildSources(r.cfg, alphabet)
	if err != nil {
		return nil, err
	}
	crits := buildCriteria(r.cfg.Criteria, ref, comp)

	corpora := r.buildCorpora(ctx, logger, report, fragments, sources, alphabet)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.evaluate(ctx, logger, report, corpora, crits)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.sortFailures()
	report.FinishedAt = time.Now().UTC()
	logger.Info("experiment finished",
		"variants", len(report.Results),
		"failures", len(report.Failures),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

// buildCorpora генерирует корпус каждого варианта. Вариант, который не удалось
// построить, фиксируется как сбой и дальше не участвует.
func (r *Runner) buildCorpora(
	ctx context.Context,
	logger *slog.Logger,
	report *Report,
	fragments map[int][]string,
	sources []textgen.ISource,
	alphabet *cripta.Alphabet,
) map[string]criteria.Corpus {
	var mu sync.Mutex
	corpora := make(map[string]criteria.Corpus, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for _, source := range sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			corpus, err := textgen.BuildCorpus(fragments, source)
			if err != nil {
				logger.Warn("variant generation failed", "variant", source.Name(), "error", err)
				report.addFailure(CellFailure{Variant: source.Name(), Error: err.Error()})
				return nil
			}

			diag := diagnose(corpus, alphabet)
			r.metrics.addTexts(source.Name(), diag.Texts)
			report.setDiagnostics(source.Name(), diag)

			mu.Lock()
			corpora[source.Name()] = corpus
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return corpora
}

// evaluate считает все ячейки (вариант, критерий) параллельно
func (r *Runner) evaluate(
	ctx context.Context,
	logger *slog.Logger,
	report *Report,
	corpora map[string]criteria.Corpus,
	crits []criteria.ICriterion,
) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for variant, corpus := range corpora {
		lenTexts, countTexts := corpus.SampleSizes()

		for _, crit := range crits {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}

				cellLogger := logger.With("variant", variant, "criterion", crit.Name())
				cellLogger.Debug("evaluating cell")

				start := time.Now()
				rates, failed, err := evaluateCell(crit, corpus, lenTexts, countTexts)
				cellErr := err
				if cellErr == nil && len(failed) > 0 {
					cellErr = failed
				}
				r.metrics.observeCell(variant, crit.Name(), time.Since(start).Seconds(), cellErr)

				if err != nil {
					cellLogger.Warn("cell failed", "error", err)
					report.addFailure(CellFailure{Variant: variant, Criterion: crit.Name(), Error: err.Error()})
					return nil
				}
				for _, le := range failed {
					cellLogger.Warn("length failed", "length", le.Length, "error", le.Err)
					report.addFailure(CellFailure{Variant: variant, Criterion: crit.Name(), Length: le.Length, Error: le.Err.Error()})
				}
				if len(rates) > 0 || len(failed) == 0 {
					report.setRates(variant, crit.Name(), rates)
				}
				return nil
			})
		}
	}

	_ = g.Wait()
}

// evaluateCell считает ошибки ячейки. Сбои отдельных длин возвращаются
// отдельно от ошибок по остальным длинам.
func evaluateCell(crit criteria.ICriterion, corpus criteria.Corpus, lenTexts, countTexts []int) (Rates, criteria.LengthErrors, error) {
	result, err := crit.Evaluate(corpus)
	var failed criteria.LengthErrors
	if err != nil && !errors.As(err, &failed) {
		return nil, nil, err
	}

	rates, err := criteria.CalcErrorRates(result, lenTexts, countTexts)
	if err != nil {
		return nil, nil, err
	}
	return rates, failed, nil
}

// diagnose считает средний индекс совпадений и среднюю байтовую энтропию
// последовательностей корпуса
func diagnose(corpus criteria.Corpus, alphabet *cripta.Alphabet) Diagnostics {
	var ics, entropies []float64
	texts := 0

	for _, pairs := range corpus {
		for _, pair := range pairs {
			texts++
			if pair.Ciphertext == "" {
				continue
			}
			entropies = append(entropies, analysis.ByteEntropy(pair.Ciphertext))
			if ic, err := analysis.IndexOfCoincidence(pair.Ciphertext, alphabet); err == nil {
				ics = append(ics, ic)
			}
		}
	}

	d := Diagnostics{Texts: texts}
	if len(ics) > 0 {
		d.MeanIC = stat.Mean(ics, nil)
	}
	if len(entropies) > 0 {
		d.MeanByteEntropy = stat.Mean(entropies, nil)
	}
	return d
}
