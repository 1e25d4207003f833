package cripta

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// RandomInt возвращает равномерное случайное число из [0, n)
func RandomInt(n int64) (int64, error) {
	if n <= 0 {
		return 0, errors.New("upper bound must be positive")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// RandomRange возвращает равномерное случайное число из [lo, hi)
func RandomRange(lo, hi int64) (int64, error) {
	if hi <= lo {
		return 0, errors.New("empty range")
	}

	v, err := RandomInt(hi - lo)
	if err != nil {
		return 0, err
	}
	return lo + v, nil
}

// RandomSymbols возвращает n случайных символов алфавита
func RandomSymbols(alphabet *Alphabet, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	out := make([]rune, n)
	m := int64(alphabet.Size())
	for i := range out {
		idx, err := RandomInt(m)
		if err != nil {
			return "", err
		}
		out[i] = alphabet.Symbol(int(idx))
	}
	return string(out), nil
}
