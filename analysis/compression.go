package analysis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compressor универсальный компрессор для структурного критерия
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
}

// CompressorNames поддерживаемые компрессоры
var CompressorNames = []string{"zlib", "gzip", "flate", "zstd", "s2"}

// NewCompressor создает компрессор по имени
func NewCompressor(name string) (Compressor, error) {
	switch name {
	case "zlib":
		return streamCompressor{name: name, open: func(w io.Writer) (io.WriteCloser, error) {
			return zlib.NewWriterLevel(w, zlib.BestCompression)
		}}, nil
	case "gzip":
		return streamCompressor{name: name, open: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.BestCompression)
		}}, nil
	case "flate":
		return streamCompressor{name: name, open: func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.BestCompression)
		}}, nil
	case "zstd":
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return zstdCompressor{enc: enc}, nil
	case "s2":
		return s2Compressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compressor %q", name)
	}
}

type streamCompressor struct {
	name string
	open func(io.Writer) (io.WriteCloser, error)
}

func (c streamCompressor) Name() string {
	return c.name
}

func (c streamCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.open(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zstd.Encoder.EncodeAll безопасен для конкурентного вызова
type zstdCompressor struct {
	enc *zstd.Encoder
}

func (zstdCompressor) Name() string {
	return "zstd"
}

func (c zstdCompressor) Compress(data []byte) ([]byte, error) {
	return c.enc.EncodeAll(data, nil), nil
}

type s2Compressor struct{}

func (s2Compressor) Name() string {
	return "s2"
}

func (s2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.EncodeBest(nil, data), nil
}

// CompressionRatio отношение размера сжатого UTF-8 текста к исходному.
// Пустой текст дает 0.
func CompressionRatio(c Compressor, text string) (float64, error) {
	raw := []byte(text)
	if len(raw) == 0 {
		return 0, nil
	}

	compressed, err := c.Compress(raw)
	if err != nil {
		return 0, fmt.Errorf("%s compression failed: %w", c.Name(), err)
	}
	return float64(len(compressed)) / float64(len(raw)), nil
}

// CompressionBaseline средняя степень сжатия случайного текста и допуск по длинам
type CompressionBaseline struct {
	Compressor string
	Ratio      map[int]float64
	Tolerance  map[int]float64
}

// Cutoff возвращает порог baseline(L) - tolerance(L)
func (b CompressionBaseline) Cutoff(length int) (float64, bool) {
	r, ok := b.Ratio[length]
	if !ok {
		return 0, false
	}
	return r - b.Tolerance[length], true
}

// EstimateCompressionBaseline оценивает степень сжатия случайных текстов каждой
// длины тем же правилом квантили, что и для энтропии.
func EstimateCompressionBaseline(samplesByLength map[int][]string, c Compressor, alpha float64) (CompressionBaseline, error) {
	baseline := CompressionBaseline{
		Compressor: c.Name(),
		Ratio:      make(map[int]float64, len(samplesByLength)),
		Tolerance:  make(map[int]float64, len(samplesByLength)),
	}

	for length, samples := range samplesByLength {
		if len(samples) == 0 {
			continue
		}

		values := make([]float64, len(samples))
		for i, s := range samples {
			r, err := CompressionRatio(c, s)
			if err != nil {
				return CompressionBaseline{}, err
			}
			values[i] = r
		}

		mean, tol, err := ToleranceBound(values, alpha)
		if err != nil {
			return CompressionBaseline{}, fmt.Errorf("compression baseline for L=%d: %w", length, err)
		}
		baseline.Ratio[length] = mean
		baseline.Tolerance[length] = tol
	}

	return baseline, nil
}
