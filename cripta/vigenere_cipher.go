package cripta

// VigenereCipher полиалфавитная подстановка с циклическим ключом
type VigenereCipher struct {
	alphabet *Alphabet
	key      []int
	keyText  string
}

// NewVigenereCipher создает шифр Виженера; ключ непустой и состоит из символов алфавита
func NewVigenereCipher(alphabet *Alphabet, key string) (*VigenereCipher, error) {
	if key == "" {
		return nil, malformedInput("vigenere key cannot be empty")
	}
	idx, err := alphabet.Indices(key, "key")
	if err != nil {
		return nil, err
	}
	return &VigenereCipher{alphabet: alphabet, key: idx, keyText: key}, nil
}

func (c *VigenereCipher) Name() string {
	return "vigenere"
}

func (c *VigenereCipher) Key() string {
	return c.keyText
}

func (c *VigenereCipher) Encrypt(plaintext string) (string, error) {
	return c.shift(plaintext, "plaintext", 1)
}

func (c *VigenereCipher) Decrypt(ciphertext string) (string, error) {
	return c.shift(ciphertext, "ciphertext", -1)
}

func (c *VigenereCipher) shift(text, where string, sign int) (string, error) {
	xs, err := c.alphabet.Indices(text, where)
	if err != nil {
		return "", err
	}

	m := int64(c.alphabet.Size())
	for i, x := range xs {
		k := c.key[i%len(c.key)]
		xs[i] = int(Mod(int64(x+sign*k), m))
	}
	return c.alphabet.FromIndices(xs), nil
}
