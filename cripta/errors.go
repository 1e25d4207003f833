package cripta

import (
	"errors"
	"fmt"
)

var (
	ErrNonInvertibleKey = errors.New("non-invertible key")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrMalformedInput   = errors.New("malformed input")
)

// CipherError ошибка шифра с указанием причины
type CipherError struct {
	Kind    error
	Symbol  rune  // для ErrUnknownSymbol
	A       int64 // для ErrNonInvertibleKey
	Modulus int64 // для ErrNonInvertibleKey
	Msg     string
}

func (e *CipherError) Error() string {
	switch e.Kind {
	case ErrNonInvertibleKey:
		return fmt.Sprintf("%v: 'a'=%d must be coprime with modulus %d", e.Kind, e.A, e.Modulus)
	case ErrUnknownSymbol:
		if e.Msg != "" {
			return fmt.Sprintf("%v %q in %s", e.Kind, e.Symbol, e.Msg)
		}
		return fmt.Sprintf("%v %q not in alphabet", e.Kind, e.Symbol)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
}

func (e *CipherError) Unwrap() error {
	return e.Kind
}

func nonInvertibleKey(a, modulus int64) error {
	return &CipherError{Kind: ErrNonInvertibleKey, A: a, Modulus: modulus}
}

func unknownSymbol(symbol rune, where string) error {
	return &CipherError{Kind: ErrUnknownSymbol, Symbol: symbol, Msg: where}
}

func malformedInput(format string, args ...any) error {
	return &CipherError{Kind: ErrMalformedInput, Msg: fmt.Sprintf(format, args...)}
}
