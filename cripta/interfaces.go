package cripta

type IClassicalCipher interface {
	Name() string
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type IKeyGenerator interface {
	NewCipher(alphabet *Alphabet) (IClassicalCipher, error)
}
