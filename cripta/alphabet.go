package cripta

import "fmt"

// Alphabet упорядоченный набор уникальных символов
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet создает алфавит из строки символов
func NewAlphabet(symbols string) (*Alphabet, error) {
	runes := []rune(symbols)
	if len(runes) < 2 {
		return nil, fmt.Errorf("alphabet must contain at least 2 symbols, got %d", len(runes))
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, ok := index[r]; ok {
			return nil, fmt.Errorf("duplicate symbol %q in alphabet", r)
		}
		index[r] = i
	}

	return &Alphabet{symbols: runes, index: index}, nil
}

// MustAlphabet как NewAlphabet, но паникует при ошибке
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Index возвращает позицию символа в алфавите
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Indices переводит текст в индексы алфавита
func (a *Alphabet) Indices(text string, where string) ([]int, error) {
	out := make([]int, 0, len(text))
	for _, r := range text {
		i, ok := a.index[r]
		if !ok {
			return nil, unknownSymbol(r, where)
		}
		out = append(out, i)
	}
	return out, nil
}

// FromIndices собирает строку из индексов алфавита
func (a *Alphabet) FromIndices(indices []int) string {
	out := make([]rune, len(indices))
	for i, idx := range indices {
		out[i] = a.symbols[idx]
	}
	return string(out)
}
