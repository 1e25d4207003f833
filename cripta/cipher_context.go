package cripta

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// CipherContext связывает алфавит с шифром либо с генератором ключей.
// С генератором каждый текст шифруется на новом случайном ключе.
type CipherContext struct {
	alphabet  *Alphabet
	cipher    IClassicalCipher
	generator IKeyGenerator
	parallel  bool
}

func NewCipherContext(alphabet *Alphabet, cipher IClassicalCipher, parallel bool) (*CipherContext, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("alphabet cannot be nil")
	}
	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}

	return &CipherContext{
		alphabet: alphabet,
		cipher:   cipher,
		parallel: parallel,
	}, nil
}

func NewRekeyingCipherContext(alphabet *Alphabet, generator IKeyGenerator, parallel bool) (*CipherContext, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("alphabet cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("key generator cannot be nil")
	}

	return &CipherContext{
		alphabet:  alphabet,
		generator: generator,
		parallel:  parallel,
	}, nil
}

func (ctx *CipherContext) currentCipher() (IClassicalCipher, error) {
	if ctx.generator == nil {
		return ctx.cipher, nil
	}

	cipher, err := ctx.generator.NewCipher(ctx.alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return cipher, nil
}

func (ctx *CipherContext) EncryptText(plaintext string) (string, error) {
	cipher, err := ctx.currentCipher()
	if err != nil {
		return "", err
	}
	return cipher.Encrypt(plaintext)
}

func (ctx *CipherContext) DecryptText(ciphertext string) (string, error) {
	if ctx.generator != nil {
		return "", fmt.Errorf("decryption requires a fixed key")
	}
	return ctx.cipher.Decrypt(ciphertext)
}

// EncryptBatch шифрует тексты, сохраняя порядок
func (ctx *CipherContext) EncryptBatch(texts []string) ([]string, error) {
	return ctx.processBatch(texts, ctx.EncryptText, "encryption")
}

// DecryptBatch дешифрует тексты фиксированным ключом
func (ctx *CipherContext) DecryptBatch(texts []string) ([]string, error) {
	return ctx.processBatch(texts, ctx.DecryptText, "decryption")
}

func (ctx *CipherContext) processBatch(texts []string, op func(string) (string, error), opName string) ([]string, error) {
	if texts == nil {
		return nil, fmt.Errorf("texts cannot be nil")
	}

	if !ctx.parallel {
		out := make([]string, len(texts))
		for i, text := range texts {
			res, err := op(text)
			if err != nil {
				return nil, fmt.Errorf("%s failed for text %d: %w", opName, i, err)
			}
			out[i] = res
		}
		return out, nil
	}

	return processParallel(texts, op, opName)
}

func processParallel(texts []string, op func(string) (string, error), opName string) ([]string, error) {
	numTexts := len(texts)
	out := make([]string, numTexts)

	numThreads := runtime.NumCPU()
	if numThreads == 0 {
		numThreads = 4
	}

	var wg sync.WaitGroup
	errors := make(chan error, numThreads)

	textsPerThread := (numTexts + numThreads - 1) / numThreads

	for t := 0; t < numThreads; t++ {
		start := t * textsPerThread
		end := start + textsPerThread
		if end > numTexts {
			end = numTexts
		}

		if start >= numTexts {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				res, err := op(texts[i])
				if err != nil {
					errors <- fmt.Errorf("%s failed for text %d: %w", opName, i, err)
					return
				}
				out[i] = res
			}
		}(start, end)
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		return nil, err
	}

	return out, nil
}

func (ctx *CipherContext) EncryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	encrypted, err := ctx.EncryptText(strings.TrimRight(string(data), "\r\n"))
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, []byte(encrypted), 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func (ctx *CipherContext) DecryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	decrypted, err := ctx.DecryptText(strings.TrimRight(string(data), "\r\n"))
	if err != nil {
		return fmt.Errorf("decryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, []byte(decrypted), 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func (ctx *CipherContext) Alphabet() *Alphabet {
	return ctx.alphabet
}

func (ctx *CipherContext) IsParallel() bool {
	return ctx.parallel
}
