package cripta

// PairingMode способ разбиения текста на биграммы
type PairingMode int

const (
	// PairingNonOverlapping пары 0-1, 2-3, ...; нечетный текст дополняется
	PairingNonOverlapping PairingMode = iota
	// PairingCrossing пары 0-1, 1-2, 2-3, ...; len(text)-1 биграмм
	PairingCrossing
)

func (p PairingMode) String() string {
	if p == PairingCrossing {
		return "crossing"
	}
	return "non-overlapping"
}

// AffineBigramCipher биграммный аффинный шифр: Y = (a*X + b) mod m^2, X = x1*m + x2
type AffineBigramCipher struct {
	alphabet *Alphabet
	key      AffineKey
	aInv     int64
	mode     PairingMode
	pad      rune
}

// NewAffineBigramCipher создает биграммный шифр с символом дополнения alphabet[0]
func NewAffineBigramCipher(alphabet *Alphabet, a, b int64, mode PairingMode) (*AffineBigramCipher, error) {
	return NewAffineBigramCipherWithPad(alphabet, a, b, mode, alphabet.Symbol(0))
}

func NewAffineBigramCipherWithPad(alphabet *Alphabet, a, b int64, mode PairingMode, pad rune) (*AffineBigramCipher, error) {
	m := int64(alphabet.Size())
	key, err := NewAffineKey(a, b, m*m)
	if err != nil {
		return nil, err
	}
	aInv, err := key.Inverse()
	if err != nil {
		return nil, err
	}
	if !alphabet.Contains(pad) {
		return nil, unknownSymbol(pad, "pad symbol")
	}
	return &AffineBigramCipher{alphabet: alphabet, key: key, aInv: aInv, mode: mode, pad: pad}, nil
}

func (c *AffineBigramCipher) Name() string {
	return "affine_bigram"
}

func (c *AffineBigramCipher) Key() AffineKey {
	return c.key
}

func (c *AffineBigramCipher) Mode() PairingMode {
	return c.mode
}

func (c *AffineBigramCipher) Encrypt(plaintext string) (string, error) {
	xs, err := c.alphabet.Indices(plaintext, "plaintext")
	if err != nil {
		return "", err
	}

	if c.mode == PairingNonOverlapping && len(xs)%2 == 1 {
		padIdx, _ := c.alphabet.Index(c.pad)
		xs = append(xs, padIdx)
	}

	return c.transform(xs), nil
}

func (c *AffineBigramCipher) Decrypt(ciphertext string) (string, error) {
	ys, err := c.alphabet.Indices(ciphertext, "ciphertext")
	if err != nil {
		return "", err
	}

	if len(ys)%2 != 0 {
		return "", malformedInput("ciphertext length must be even in %s mode, got %d", c.mode, len(ys))
	}

	m := int64(c.alphabet.Size())
	xs := make([]int, 0, len(ys))
	for i := 0; i < len(ys); i += 2 {
		v := int64(ys[i])*m + int64(ys[i+1])
		w := Mod(c.aInv*(v-c.key.B), c.key.Modulus)
		xs = append(xs, int(w/m), int(w%m))
	}

	if c.mode == PairingNonOverlapping || len(xs) == 0 {
		return c.alphabet.FromIndices(xs), nil
	}

	// соседние биграммы x_i x_{i+1} и x_{i+1} x_{i+2} должны совпадать в общем символе
	plain := make([]int, 0, len(xs)/2+1)
	for i := 0; i < len(xs); i += 2 {
		if i > 0 && xs[i] != xs[i-1] {
			return "", malformedInput("crossing bigrams %d and %d do not overlap", i/2-1, i/2)
		}
		plain = append(plain, xs[i])
	}
	plain = append(plain, xs[len(xs)-1])

	return c.alphabet.FromIndices(plain), nil
}

// transform шифрует каждую пару индексов согласно режиму разбиения
func (c *AffineBigramCipher) transform(xs []int) string {
	m := int64(c.alphabet.Size())
	nmod := c.key.Modulus

	step := 2
	pairs := len(xs) / 2
	if c.mode == PairingCrossing {
		step = 1
		pairs = len(xs) - 1
	}
	if pairs <= 0 {
		return ""
	}

	out := make([]int, 0, pairs*2)
	for i := 0; i+1 < len(xs); i += step {
		v := int64(xs[i])*m + int64(xs[i+1])
		w := Mod(c.key.A*v+c.key.B, nmod)
		out = append(out, int(w/m), int(w%m))
	}
	return c.alphabet.FromIndices(out)
}
