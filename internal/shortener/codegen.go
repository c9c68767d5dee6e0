package shortener

import (
	"github.com/jaevor/go-nanoid"
)

const (
	// DefaultCodeLength is the length of generated short codes.
	DefaultCodeLength = 6

	// CodeAlphabet is the lowercase base-36 alphabet generated codes are drawn from.
	CodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// CodeGenerator generates short codes. Implementations do not check the store for collisions.
type CodeGenerator func() string

// NewRandomCodeGenerator returns a generator of random lowercase alphanumeric codes.
func NewRandomCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(CodeAlphabet, length)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
