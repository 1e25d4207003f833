package textgen

import (
	"fmt"
	"unicode/utf8"

	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/criteria"
)

// ISource превращает открытые тексты в проверяемые последовательности
type ISource interface {
	Name() string
	Transform(plaintexts []string) ([]string, error)
}

var variantTitles = map[string]string{
	"affine":        "Sequence by Affine cipher",
	"affine_bigram": "Sequence by Affine Bigram cipher",
	"random":        "Random sequence",
	"recursive":     "Recursive sequence",
}

// VariantTitle человекочитаемое название варианта для отчета
func VariantTitle(name string) string {
	if title, ok := variantTitles[name]; ok {
		return title
	}
	var k int
	if _, err := fmt.Sscanf(name, "vigenere_k%d", &k); err == nil {
		return fmt.Sprintf("Sequence by Vigenere cipher (key length: %d)", k)
	}
	return name
}

// VigenereVariantName имя варианта Виженера с ключом длины k
func VigenereVariantName(k int) string {
	return fmt.Sprintf("vigenere_k%d", k)
}

type cipherSource struct {
	name string
	ctx  *cripta.CipherContext
}

// NewCipherSource шифрует каждый открытый текст через ctx. Для контекста с
// генератором ключей каждый текст получает свой ключ.
func NewCipherSource(name string, ctx *cripta.CipherContext) ISource {
	return cipherSource{name: name, ctx: ctx}
}

func (s cipherSource) Name() string {
	return s.name
}

func (s cipherSource) Transform(plaintexts []string) ([]string, error) {
	return s.ctx.EncryptBatch(plaintexts)
}

type generatorSource struct {
	name     string
	alphabet *cripta.Alphabet
	gen      func(*cripta.Alphabet, int) (string, error)
}

// NewRandomSource заменяет открытый текст равномерно случайной
// последовательностью той же длины
func NewRandomSource(alphabet *cripta.Alphabet) ISource {
	return generatorSource{name: "random", alphabet: alphabet, gen: RandomText}
}

// NewRecursiveSource заменяет открытый текст рекуррентной последовательностью той же длины
func NewRecursiveSource(alphabet *cripta.Alphabet) ISource {
	return generatorSource{name: "recursive", alphabet: alphabet, gen: RecursiveText}
}

func (s generatorSource) Name() string {
	return s.name
}

func (s generatorSource) Transform(plaintexts []string) ([]string, error) {
	out := make([]string, len(plaintexts))
	for i, p := range plaintexts {
		seq, err := s.gen(s.alphabet, utf8.RuneCountInString(p))
		if err != nil {
			return nil, fmt.Errorf("%s generation failed for text %d: %w", s.name, i, err)
		}
		out[i] = seq
	}
	return out, nil
}

// BuildCorpus строит корпус пар для источника по фрагментам, сгруппированным по длине
func BuildCorpus(fragments map[int][]string, source ISource) (criteria.Corpus, error) {
	corpus := make(criteria.Corpus, len(fragments))
	for length, plaintexts := range fragments {
		seqs, err := source.Transform(plaintexts)
		if err != nil {
			return nil, fmt.Errorf("%s, L=%d: %w", source.Name(), length, err)
		}

		pairs := make([]criteria.TextPair, len(plaintexts))
		for i := range plaintexts {
			pairs[i] = criteria.TextPair{Plaintext: plaintexts[i], Ciphertext: seqs[i]}
		}
		corpus[length] = pairs
	}
	return corpus, nil
}
