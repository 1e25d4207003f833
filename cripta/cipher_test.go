package cripta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latin = "abcdefghijklmnopqrstuvwxyz"

const ukrainian = "абвгдеєжзиіїйклмнопрстуфхцчшщьюя"

func TestAlphabet(t *testing.T) {
	t.Run("Индексы", func(t *testing.T) {
		a := MustAlphabet(ukrainian)
		assert.Equal(t, 32, a.Size())
		i, ok := a.Index('я')
		require.True(t, ok)
		assert.Equal(t, 31, i)
		assert.Equal(t, 'я', a.Symbol(31))
	})

	t.Run("Дубликаты", func(t *testing.T) {
		_, err := NewAlphabet("abca")
		assert.Error(t, err)
	})

	t.Run("Слишком короткий", func(t *testing.T) {
		_, err := NewAlphabet("a")
		assert.Error(t, err)
	})

	t.Run("Неизвестный символ", func(t *testing.T) {
		a := MustAlphabet("abc")
		_, err := a.Indices("abz", "plaintext")
		require.ErrorIs(t, err, ErrUnknownSymbol)
		var cerr *CipherError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 'z', cerr.Symbol)
	})
}

func TestAffineCipher(t *testing.T) {
	alphabet := MustAlphabet(latin)

	t.Run("hello с ключом (5, 8)", func(t *testing.T) {
		c, err := NewAffineCipher(alphabet, 5, 8)
		require.NoError(t, err)

		enc, err := c.Encrypt("hello")
		require.NoError(t, err)
		assert.Equal(t, "rclla", enc)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "hello", dec)
	})

	t.Run("Необратимый ключ", func(t *testing.T) {
		_, err := NewAffineCipher(alphabet, 13, 1)
		require.ErrorIs(t, err, ErrNonInvertibleKey)
		assert.Contains(t, err.Error(), "'a'=13")
		assert.Contains(t, err.Error(), "26")
	})

	t.Run("Круговое преобразование для всех ключей", func(t *testing.T) {
		text := "thequickbrownfoxjumpsoverthelazydog"
		for a := int64(1); a < 26; a++ {
			if GCD(a, 26) != 1 {
				continue
			}
			for b := int64(0); b < 26; b += 5 {
				c, err := NewAffineCipher(alphabet, a, b)
				require.NoError(t, err)
				enc, err := c.Encrypt(text)
				require.NoError(t, err)
				dec, err := c.Decrypt(enc)
				require.NoError(t, err)
				assert.Equal(t, text, dec, "a=%d b=%d", a, b)
			}
		}
	})

	t.Run("Неизвестный символ в открытом тексте", func(t *testing.T) {
		c, err := NewAffineCipher(alphabet, 5, 8)
		require.NoError(t, err)
		_, err = c.Encrypt("hello world")
		require.ErrorIs(t, err, ErrUnknownSymbol)
		assert.Contains(t, err.Error(), "' '")
	})

	t.Run("Кириллица", func(t *testing.T) {
		ua := MustAlphabet(ukrainian)
		c, err := NewAffineCipher(ua, 7, 3)
		require.NoError(t, err)
		enc, err := c.Encrypt("привітсвіт")
		require.NoError(t, err)
		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "привітсвіт", dec)
	})
}

func TestAffineBigramCipher(t *testing.T) {
	alphabet := MustAlphabet(latin)

	t.Run("Необратимый ключ по модулю m^2", func(t *testing.T) {
		_, err := NewAffineBigramCipher(alphabet, 13, 0, PairingNonOverlapping)
		require.ErrorIs(t, err, ErrNonInvertibleKey)
		assert.Contains(t, err.Error(), "676")
	})

	t.Run("Неперекрывающиеся пары", func(t *testing.T) {
		c, err := NewAffineBigramCipher(alphabet, 17, 100, PairingNonOverlapping)
		require.NoError(t, err)

		enc, err := c.Encrypt("attackatdawn")
		require.NoError(t, err)
		assert.Len(t, enc, 12)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "attackatdawn", dec)
	})

	t.Run("Дополнение нечетного текста", func(t *testing.T) {
		c, err := NewAffineBigramCipher(alphabet, 17, 100, PairingNonOverlapping)
		require.NoError(t, err)

		enc, err := c.Encrypt("hello")
		require.NoError(t, err)
		assert.Len(t, enc, 6)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "helloa", dec)
	})

	t.Run("Нечетный шифртекст", func(t *testing.T) {
		c, err := NewAffineBigramCipher(alphabet, 17, 100, PairingNonOverlapping)
		require.NoError(t, err)
		_, err = c.Decrypt("abc")
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Перекрывающиеся пары", func(t *testing.T) {
		c, err := NewAffineBigramCipher(alphabet, 17, 100, PairingCrossing)
		require.NoError(t, err)

		enc, err := c.Encrypt("hello")
		require.NoError(t, err)
		assert.Len(t, enc, 8)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "hello", dec)
	})

	t.Run("Короткий текст в перекрывающемся режиме", func(t *testing.T) {
		c, err := NewAffineBigramCipher(alphabet, 17, 100, PairingCrossing)
		require.NoError(t, err)
		enc, err := c.Encrypt("h")
		require.NoError(t, err)
		assert.Empty(t, enc)
	})

	t.Run("Символ дополнения вне алфавита", func(t *testing.T) {
		_, err := NewAffineBigramCipherWithPad(alphabet, 17, 100, PairingNonOverlapping, '#')
		require.ErrorIs(t, err, ErrUnknownSymbol)
	})

	t.Run("Случайные ключи", func(t *testing.T) {
		text := strings.Repeat("crypto", 7)
		for _, mode := range []PairingMode{PairingNonOverlapping, PairingCrossing} {
			for i := 0; i < 20; i++ {
				key, err := RandomAffineKey(alphabet.Size(), true)
				require.NoError(t, err)
				c, err := NewAffineBigramCipher(alphabet, key.A, key.B, mode)
				require.NoError(t, err)
				enc, err := c.Encrypt(text)
				require.NoError(t, err)
				dec, err := c.Decrypt(enc)
				require.NoError(t, err)
				assert.Equal(t, text, dec, "mode=%s key=%+v", mode, key)
			}
		}
	})
}

func TestVigenereCipher(t *testing.T) {
	alphabet := MustAlphabet(latin)

	t.Run("Классический пример", func(t *testing.T) {
		c, err := NewVigenereCipher(alphabet, "lemon")
		require.NoError(t, err)
		enc, err := c.Encrypt("attackatdawn")
		require.NoError(t, err)
		assert.Equal(t, "lxfopvefrnhr", enc)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "attackatdawn", dec)
	})

	t.Run("Пустой ключ", func(t *testing.T) {
		_, err := NewVigenereCipher(alphabet, "")
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("Ключ вне алфавита", func(t *testing.T) {
		_, err := NewVigenereCipher(alphabet, "key!")
		require.ErrorIs(t, err, ErrUnknownSymbol)
		assert.Contains(t, err.Error(), "'!'")
	})

	t.Run("Случайные ключи разной длины", func(t *testing.T) {
		text := "thequickbrownfoxjumpsoverthelazydog"
		for _, n := range []int{1, 5, 10, 50} {
			key, err := RandomVigenereKey(alphabet, n)
			require.NoError(t, err)
			c, err := NewVigenereCipher(alphabet, key)
			require.NoError(t, err)
			enc, err := c.Encrypt(text)
			require.NoError(t, err)
			dec, err := c.Decrypt(enc)
			require.NoError(t, err)
			assert.Equal(t, text, dec)
		}
	})
}

func TestRandomAffineKey(t *testing.T) {
	for _, bigram := range []bool{false, true} {
		for i := 0; i < 50; i++ {
			key, err := RandomAffineKey(32, bigram)
			require.NoError(t, err)
			assert.True(t, IsCoprime(key.A, key.Modulus))
			assert.GreaterOrEqual(t, key.B, int64(0))
			assert.Less(t, key.B, key.Modulus)
		}
	}
}

func TestCipherContext(t *testing.T) {
	alphabet := MustAlphabet(latin)

	texts := make([]string, 100)
	for i := range texts {
		s, err := RandomSymbols(alphabet, 10+i)
		require.NoError(t, err)
		texts[i] = s
	}

	t.Run("Параллельная обработка сохраняет порядок", func(t *testing.T) {
		c, err := NewAffineCipher(alphabet, 5, 8)
		require.NoError(t, err)

		seq, err := NewCipherContext(alphabet, c, false)
		require.NoError(t, err)
		par, err := NewCipherContext(alphabet, c, true)
		require.NoError(t, err)

		encSeq, err := seq.EncryptBatch(texts)
		require.NoError(t, err)
		encPar, err := par.EncryptBatch(texts)
		require.NoError(t, err)
		assert.Equal(t, encSeq, encPar)

		dec, err := par.DecryptBatch(encPar)
		require.NoError(t, err)
		assert.Equal(t, texts, dec)
	})

	t.Run("Новый ключ на каждый текст", func(t *testing.T) {
		ctx, err := NewRekeyingCipherContext(alphabet, VigenereKeyGenerator{KeyLength: 5}, true)
		require.NoError(t, err)

		enc, err := ctx.EncryptBatch(texts)
		require.NoError(t, err)
		require.Len(t, enc, len(texts))
		for i := range texts {
			assert.Len(t, enc[i], len(texts[i]))
		}

		_, err = ctx.DecryptText(enc[0])
		assert.Error(t, err)
	})

	t.Run("Ошибка в пакете", func(t *testing.T) {
		c, err := NewAffineCipher(alphabet, 5, 8)
		require.NoError(t, err)
		ctx, err := NewCipherContext(alphabet, c, true)
		require.NoError(t, err)

		_, err = ctx.EncryptBatch([]string{"abc", "ab1", "xyz"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSymbol))
	})

	t.Run("Файлы", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "plain.txt")
		enc := filepath.Join(dir, "plain.enc")
		out := filepath.Join(dir, "plain.dec")
		require.NoError(t, os.WriteFile(in, []byte("attackatdawn\n"), 0644))

		c, err := NewVigenereCipher(alphabet, "lemon")
		require.NoError(t, err)
		ctx, err := NewCipherContext(alphabet, c, false)
		require.NoError(t, err)

		require.NoError(t, ctx.EncryptFile(in, enc))
		require.NoError(t, ctx.DecryptFile(enc, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "attackatdawn", string(data))
	})
}
