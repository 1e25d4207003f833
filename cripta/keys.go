package cripta

import "fmt"

// RandomAffineKey генерирует случайный ключ (a, b) для модуля m или m^2
func RandomAffineKey(m int, bigram bool) (AffineKey, error) {
	modulus := int64(m)
	if bigram {
		modulus *= int64(m)
	}
	if modulus < 2 {
		return AffineKey{}, malformedInput("modulus must be at least 2, got %d", modulus)
	}

	var a int64
	for {
		v, err := RandomRange(1, modulus)
		if err != nil {
			return AffineKey{}, fmt.Errorf("failed to sample 'a': %w", err)
		}
		if IsCoprime(v, modulus) {
			a = v
			break
		}
	}

	b, err := RandomInt(modulus)
	if err != nil {
		return AffineKey{}, fmt.Errorf("failed to sample 'b': %w", err)
	}

	return NewAffineKey(a, b, modulus)
}

// RandomVigenereKey генерирует случайный ключ Виженера длины n
func RandomVigenereKey(alphabet *Alphabet, n int) (string, error) {
	if n <= 0 {
		return "", malformedInput("vigenere key length must be positive, got %d", n)
	}
	return RandomSymbols(alphabet, n)
}

// AffineKeyGenerator выдает аффинный шифр со свежим случайным ключом
type AffineKeyGenerator struct{}

func (AffineKeyGenerator) NewCipher(alphabet *Alphabet) (IClassicalCipher, error) {
	key, err := RandomAffineKey(alphabet.Size(), false)
	if err != nil {
		return nil, err
	}
	return NewAffineCipher(alphabet, key.A, key.B)
}

// AffineBigramKeyGenerator выдает биграммный аффинный шифр со свежим ключом
type AffineBigramKeyGenerator struct {
	Mode PairingMode
}

func (g AffineBigramKeyGenerator) NewCipher(alphabet *Alphabet) (IClassicalCipher, error) {
	key, err := RandomAffineKey(alphabet.Size(), true)
	if err != nil {
		return nil, err
	}
	return NewAffineBigramCipher(alphabet, key.A, key.B, g.Mode)
}

// VigenereKeyGenerator выдает шифр Виженера со случайным ключом длины KeyLength
type VigenereKeyGenerator struct {
	KeyLength int
}

func (g VigenereKeyGenerator) NewCipher(alphabet *Alphabet) (IClassicalCipher, error) {
	key, err := RandomVigenereKey(alphabet, g.KeyLength)
	if err != nil {
		return nil, err
	}
	return NewVigenereCipher(alphabet, key)
}
