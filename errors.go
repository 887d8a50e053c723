package tans

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them under errors.Is.
var (
	// ErrConfiguration indicates a degenerate distribution passed to BuildTable.
	ErrConfiguration = errors.New("tans: invalid configuration")
	// ErrUnknownSymbol indicates Encode saw a byte outside the table's alphabet.
	ErrUnknownSymbol = errors.New("tans: unknown symbol")
	// ErrInvalidState indicates Decode was given a key it cannot unfold.
	ErrInvalidState = errors.New("tans: invalid state")
)

// ConfigurationError reports why a table could not be built.
// No partial table is ever returned alongside it.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "tans: invalid configuration: " + e.Reason
}

// Is makes a ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownSymbolError reports the first input byte that is not part of the
// table's alphabet, and its position in the input.
type UnknownSymbolError struct {
	Symbol byte
	Pos    int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("tans: unknown symbol %#02x at position %d", e.Symbol, e.Pos)
}

// Is makes an UnknownSymbolError match ErrUnknownSymbol.
func (e *UnknownSymbolError) Is(target error) bool { return target == ErrUnknownSymbol }

// InvalidStateError reports a key that Decode refused to unfold.
type InvalidStateError struct {
	State  *big.Int // nil when no key was given
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.State == nil {
		return "tans: invalid state: " + e.Reason
	}
	return fmt.Sprintf("tans: invalid state %s: %s", e.State, e.Reason)
}

// Is makes an InvalidStateError match ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
