package cripta

// AffineKey ключ аффинного шифра (a, b) по модулю Modulus
type AffineKey struct {
	A       int64
	B       int64
	Modulus int64
}

// NewAffineKey проверяет, что gcd(a, modulus) = 1, и приводит b к [0, modulus)
func NewAffineKey(a, b, modulus int64) (AffineKey, error) {
	if modulus < 2 {
		return AffineKey{}, malformedInput("modulus must be at least 2, got %d", modulus)
	}
	if !IsCoprime(a, modulus) {
		return AffineKey{}, nonInvertibleKey(a, modulus)
	}
	return AffineKey{A: Mod(a, modulus), B: Mod(b, modulus), Modulus: modulus}, nil
}

// Inverse возвращает a^-1 по модулю ключа
func (k AffineKey) Inverse() (int64, error) {
	inv, ok := ModularInverse(k.A, k.Modulus)
	if !ok {
		return 0, nonInvertibleKey(k.A, k.Modulus)
	}
	return inv, nil
}

// AffineCipher моноалфавитный аффинный шифр: E(x) = (a*x + b) mod m
type AffineCipher struct {
	alphabet *Alphabet
	key      AffineKey
	aInv     int64
}

// NewAffineCipher создает аффинный шифр; a должно быть взаимно просто с m
func NewAffineCipher(alphabet *Alphabet, a, b int64) (*AffineCipher, error) {
	m := int64(alphabet.Size())
	key, err := NewAffineKey(a, b, m)
	if err != nil {
		return nil, err
	}
	aInv, err := key.Inverse()
	if err != nil {
		return nil, err
	}
	return &AffineCipher{alphabet: alphabet, key: key, aInv: aInv}, nil
}

func (c *AffineCipher) Name() string {
	return "affine"
}

func (c *AffineCipher) Key() AffineKey {
	return c.key
}

func (c *AffineCipher) Encrypt(plaintext string) (string, error) {
	xs, err := c.alphabet.Indices(plaintext, "plaintext")
	if err != nil {
		return "", err
	}

	m := c.key.Modulus
	for i, x := range xs {
		xs[i] = int(Mod(c.key.A*int64(x)+c.key.B, m))
	}
	return c.alphabet.FromIndices(xs), nil
}

func (c *AffineCipher) Decrypt(ciphertext string) (string, error) {
	ys, err := c.alphabet.Indices(ciphertext, "ciphertext")
	if err != nil {
		return "", err
	}

	m := c.key.Modulus
	for i, y := range ys {
		ys[i] = int(Mod(c.aInv*(int64(y)-c.key.B), m))
	}
	return c.alphabet.FromIndices(ys), nil
}
