package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nPaBwaYT/OKLabs/cripta"
	"github.com/nPaBwaYT/OKLabs/experiment"
)

type cipherOptions struct {
	cipher   string
	a, b     int64
	key      string
	crossing bool
	alphabet string
	in, out  string
}

func newCipherCmd(encrypt bool) *cobra.Command {
	opts := &cipherOptions{}

	use, short := "decrypt [text]", "Decrypt a text or file with a classical cipher"
	if encrypt {
		use, short = "encrypt [text]", "Encrypt a text or file with a classical cipher"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipher(cmd, args, opts, encrypt)
		},
	}

	cmd.Flags().StringVar(&opts.cipher, "cipher", "affine", "Шифр: affine, affine-bigram, vigenere")
	cmd.Flags().Int64Var(&opts.a, "a", 0, "Ключ a аффинного шифра (0 - сгенерировать)")
	cmd.Flags().Int64Var(&opts.b, "b", 0, "Ключ b аффинного шифра")
	cmd.Flags().StringVar(&opts.key, "key", "", "Ключ Виженера")
	cmd.Flags().BoolVar(&opts.crossing, "crossing", false, "Перекрывающиеся биграммы")
	cmd.Flags().StringVar(&opts.alphabet, "alphabet", experiment.UkrainianAlphabet, "Алфавит")
	cmd.Flags().StringVar(&opts.in, "in", "", "Входной файл")
	cmd.Flags().StringVar(&opts.out, "out", "", "Выходной файл")
	return cmd
}

func runCipher(cmd *cobra.Command, args []string, opts *cipherOptions, encrypt bool) error {
	alphabet, err := cripta.NewAlphabet(opts.alphabet)
	if err != nil {
		return err
	}

	cipher, err := createCipher(alphabet, opts, encrypt)
	if err != nil {
		return fmt.Errorf("ошибка создания шифра: %w", err)
	}

	ctx, err := cripta.NewCipherContext(alphabet, cipher, false)
	if err != nil {
		return err
	}

	if opts.in != "" {
		if opts.out == "" {
			return fmt.Errorf("необходимо указать выходной файл --out")
		}
		if encrypt {
			err = ctx.EncryptFile(opts.in, opts.out)
		} else {
			err = ctx.DecryptFile(opts.in, opts.out)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Файл обработан: %s -> %s\n", opts.in, opts.out)
		printKey(cmd.ErrOrStderr(), cipher)
		return nil
	}

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("ошибка чтения stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	var result string
	if encrypt {
		result, err = ctx.EncryptText(text)
	} else {
		result, err = ctx.DecryptText(text)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	printKey(cmd.ErrOrStderr(), cipher)
	return nil
}

// createCipher создает шифр по флагам; для шифрования без ключа ключ генерируется
func createCipher(alphabet *cripta.Alphabet, opts *cipherOptions, encrypt bool) (cripta.IClassicalCipher, error) {
	switch opts.cipher {
	case "affine", "affine-bigram":
		bigram := opts.cipher == "affine-bigram"
		a, b := opts.a, opts.b
		if a == 0 {
			if !encrypt {
				return nil, fmt.Errorf("для дешифрования нужен ключ --a")
			}
			key, err := cripta.RandomAffineKey(alphabet.Size(), bigram)
			if err != nil {
				return nil, err
			}
			a, b = key.A, key.B
		}

		if !bigram {
			return cripta.NewAffineCipher(alphabet, a, b)
		}
		mode := cripta.PairingNonOverlapping
		if opts.crossing {
			mode = cripta.PairingCrossing
		}
		return cripta.NewAffineBigramCipher(alphabet, a, b, mode)

	case "vigenere":
		key := opts.key
		if key == "" {
			if !encrypt {
				return nil, fmt.Errorf("для дешифрования нужен ключ --key")
			}
			var err error
			key, err = cripta.RandomVigenereKey(alphabet, 5)
			if err != nil {
				return nil, err
			}
		}
		return cripta.NewVigenereCipher(alphabet, key)

	default:
		return nil, fmt.Errorf("неизвестный шифр: %s", opts.cipher)
	}
}

func printKey(w io.Writer, cipher cripta.IClassicalCipher) {
	switch c := cipher.(type) {
	case *cripta.AffineCipher:
		fmt.Fprintf(w, "Ключ: a=%d b=%d (mod %d)\n", c.Key().A, c.Key().B, c.Key().Modulus)
	case *cripta.AffineBigramCipher:
		fmt.Fprintf(w, "Ключ: a=%d b=%d (mod %d), %s\n", c.Key().A, c.Key().B, c.Key().Modulus, c.Mode())
	case *cripta.VigenereCipher:
		fmt.Fprintf(w, "Ключ: %s\n", c.Key())
	}
}
