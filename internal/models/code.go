package models

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// CodeBits - разрядность кода challenge
const CodeBits = 256

// ErrInvalidCode indicates that a challenge code is not an unsigned 256-bit integer
var ErrInvalidCode = errors.New("invalid challenge code")

// Code is an unsigned 256-bit challenge code. The zero value is 0.
// Code is immutable: methods never modify the underlying integer.
type Code struct {
	n *big.Int
}

// NewCode returns a Code holding v
func NewCode(v uint64) Code {
	return Code{n: new(big.Int).SetUint64(v)}
}

// CodeFromBig validates v and returns a Code holding a copy of it
func CodeFromBig(v *big.Int) (Code, error) {
	if v == nil {
		return Code{}, fmt.Errorf("%w: nil value", ErrInvalidCode)
	}
	if v.Sign() < 0 {
		return Code{}, fmt.Errorf("%w: negative value", ErrInvalidCode)
	}
	if v.BitLen() > CodeBits {
		return Code{}, fmt.Errorf("%w: value exceeds %d bits", ErrInvalidCode, CodeBits)
	}
	return Code{n: new(big.Int).Set(v)}, nil
}

// ParseCode parses a decimal code, or a hexadecimal one with a 0x prefix
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Code{}, fmt.Errorf("%w: empty value", ErrInvalidCode)
	}

	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	// SetString принимает знак, поэтому отрицательные значения отсекаются в CodeFromBig
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Code{}, fmt.Errorf("%w: %q is not a base-%d integer", ErrInvalidCode, s, base)
	}
	return CodeFromBig(v)
}

// MustParseCode is like ParseCode but panics on error. Intended for tests and constants.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) int() *big.Int {
	if c.n == nil {
		return new(big.Int)
	}
	return c.n
}

// Big returns a copy of the code as a big.Int
func (c Code) Big() *big.Int {
	return new(big.Int).Set(c.int())
}

// Equal reports whether both codes hold the same value
func (c Code) Equal(other Code) bool {
	return c.int().Cmp(other.int()) == 0
}

// String returns the decimal representation
func (c Code) String() string {
	return c.int().String()
}

// MarshalText encodes the code as a decimal string
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a decimal or 0x-prefixed hexadecimal string
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
