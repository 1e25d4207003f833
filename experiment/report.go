package experiment

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nPaBwaYT/OKLabs/criteria"
)

// Rates ошибки по длинам для одного критерия
type Rates map[int]criteria.ErrorRate

// CellFailure ячейка (вариант, критерий, L), которую не удалось посчитать.
// Length равен 0, если сбой затронул все длины.
type CellFailure struct {
	Variant   string `yaml:"variant"`
	Criterion string `yaml:"criterion,omitempty"`
	Length    int    `yaml:"length,omitempty"`
	Error     string `yaml:"error"`
}

// Diagnostics средние характеристики последовательностей варианта
type Diagnostics struct {
	Texts           int     `yaml:"texts"`
	MeanIC          float64 `yaml:"mean_ic"`
	MeanByteEntropy float64 `yaml:"mean_byte_entropy"`
}

// Report итог прогона: {вариант: {критерий: {L: {alpha, beta}}}}
type Report struct {
	RunID      string    `yaml:"run_id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`

	Results     map[string]map[string]Rates `yaml:"results"`
	Diagnostics map[string]Diagnostics      `yaml:"diagnostics,omitempty"`
	Failures    []CellFailure               `yaml:"failures,omitempty"`

	mu sync.Mutex
}

func newReport(runID string) *Report {
	return &Report{
		RunID:       runID,
		StartedAt:   time.Now().UTC(),
		Results:     make(map[string]map[string]Rates),
		Diagnostics: make(map[string]Diagnostics),
	}
}

func (r *Report) setRates(variant, criterion string, rates Rates) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byCriterion, ok := r.Results[variant]
	if !ok {
		byCriterion = make(map[string]Rates)
		r.Results[variant] = byCriterion
	}
	byCriterion[criterion] = rates
}

func (r *Report) setDiagnostics(variant string, d Diagnostics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Diagnostics[variant] = d
}

func (r *Report) addFailure(f CellFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, f)
}

func (r *Report) sortFailures() {
	sort.Slice(r.Failures, func(i, j int) bool {
		if r.Failures[i].Variant != r.Failures[j].Variant {
			return r.Failures[i].Variant < r.Failures[j].Variant
		}
		if r.Failures[i].Criterion != r.Failures[j].Criterion {
			return r.Failures[i].Criterion < r.Failures[j].Criterion
		}
		return r.Failures[i].Length < r.Failures[j].Length
	})
}

// Variants возвращает варианты отчета по алфавиту
func (r *Report) Variants() []string {
	out := make([]string, 0, len(r.Results))
	for v := range r.Results {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func (r *Report) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := r.WriteYAML(f); err != nil {
		return err
	}
	return f.Sync()
}

// LoadReport читает отчет, сохраненный SaveYAML
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	r := &Report{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return r, nil
}

// tableRow строка сводной таблицы: L, критерий, FP/FN для l=1 и l=2
type tableRow struct {
	length    int
	criterion string
	cells     [4]string
}

// splitCriterionName разбирает criteria_1_0_sym на ("1.0", 0), bigram дает колонку 1
func splitCriterionName(name string) (string, int, bool) {
	if name == structuralName {
		return "structural", 0, true
	}
	parts := strings.Split(name, "_")
	if len(parts) != 4 || parts[0] != "criteria" {
		return "", 0, false
	}
	col := 0
	if parts[3] == "bigram" {
		col = 1
	}
	return parts[1] + "." + parts[2], col, true
}

func pivot(byCriterion map[string]Rates) []tableRow {
	rows := make(map[string]*tableRow)
	for name, rates := range byCriterion {
		crit, col, ok := splitCriterionName(name)
		if !ok {
			continue
		}
		for length, rate := range rates {
			key := fmt.Sprintf("%08d/%s", length, crit)
			row, ok := rows[key]
			if !ok {
				row = &tableRow{length: length, criterion: crit, cells: [4]string{"-", "-", "-", "-"}}
				rows[key] = row
			}
			row.cells[2*col] = fmt.Sprintf("%.4f", rate.Alpha)
			row.cells[2*col+1] = fmt.Sprintf("%.4f", rate.Beta)
		}
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]tableRow, len(keys))
	for i, k := range keys {
		out[i] = *rows[k]
	}
	return out
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
)

// Render рисует для каждого варианта таблицу L x критерий с FP/FN при l=1 и l=2
func (r *Report) Render(titles func(string) string) string {
	var sb strings.Builder

	for _, variant := range r.Variants() {
		title := variant
		if titles != nil {
			title = titles(variant)
		}
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("L", "Criteria", "FP (l=1)", "FN (l=1)", "FP (l=2)", "FN (l=2)").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, row := range pivot(r.Results[variant]) {
			t.Row(append([]string{fmt.Sprint(row.length), row.criterion}, row.cells[:]...)...)
		}
		sb.WriteString(t.String())
		sb.WriteString("\n")

		if d, ok := r.Diagnostics[variant]; ok {
			sb.WriteString(fmt.Sprintf("texts: %d, mean IC: %.5f, mean byte entropy: %.4f\n", d.Texts, d.MeanIC, d.MeanByteEntropy))
		}
		sb.WriteString("\n")
	}

	for _, f := range r.Failures {
		cell := f.Variant
		if f.Criterion != "" {
			cell += "/" + f.Criterion
		}
		if f.Length > 0 {
			cell += fmt.Sprintf(" (L=%d)", f.Length)
		}
		sb.WriteString(errorStyle.Render(fmt.Sprintf("FAILED %s: %s", cell, f.Error)))
		sb.WriteString("\n")
	}

	return sb.String()
}
