package experiment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// Metrics счетчики прогона в собственном реестре, чтобы несколько прогонов
// в одном процессе не конфликтовали
type Metrics struct {
	Registry *prometheus.Registry

	// cells число посчитанных ячеек (вариант, критерий).
	// Labels: variant, criterion, result (ok, failed)
	cells *prometheus.CounterVec

	// cellDuration время расчета одной ячейки.
	// Labels: criterion
	cellDuration *prometheus.HistogramVec

	// textsGenerated число сгенерированных последовательностей.
	// Labels: variant
	textsGenerated *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		cells: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "criteria_cells_total",
			Help: "Total evaluated (variant, criterion) cells by result",
		}, []string{"variant", "criterion", "result"}),
		cellDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "criteria_cell_duration_seconds",
			Help:    "Time to evaluate one criterion over one variant corpus",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"criterion"}),
		textsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "criteria_texts_generated_total",
			Help: "Total generated sequences by variant",
		}, []string{"variant"}),
	}
}

func (m *Metrics) observeCell(variant, criterion string, seconds float64, err error) {
	result := resultOK
	if err != nil {
		result = resultFailed
	}
	m.cells.WithLabelValues(variant, criterion, result).Inc()
	m.cellDuration.WithLabelValues(criterion).Observe(seconds)
}

func (m *Metrics) addTexts(variant string, n int) {
	m.textsGenerated.WithLabelValues(variant).Add(float64(n))
}

// WriteToTextfile сохраняет метрики в формате node_exporter textfile
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
