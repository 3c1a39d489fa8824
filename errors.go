package cflag

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies the errors returned while building a FlagSet or
// parsing arguments.
type ErrorKind int

const (
	// BadFlagSyntax is a token such as "---x" or "-=x".
	BadFlagSyntax ErrorKind = iota + 1
	// UnknownFlag is a well formed flag whose name is not registered.
	UnknownFlag
	// MissingArgument is a non-boolean flag at the end of the arguments with
	// no inline value.
	MissingArgument
	// ConversionError means the converter rejected the value text.
	ConversionError
	// HelpRequested is returned for -h, -help and --help when no flag of that
	// name is registered. Usage has already been written.
	HelpRequested
	// AllocationError means the registry could not be created.
	AllocationError
)

func (k ErrorKind) String() string {
	switch k {
	case BadFlagSyntax:
		return "bad flag syntax"
	case UnknownFlag:
		return "unknown flag"
	case MissingArgument:
		return "missing argument"
	case ConversionError:
		return "conversion error"
	case HelpRequested:
		return "help requested"
	case AllocationError:
		return "allocation error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by Parse. Flag holds the offending flag
// name, or the raw token for BadFlagSyntax.
type Error struct {
	Kind  ErrorKind
	Flag  string
	Value string
	Err   error
}

// Sentinels for use with errors.Is; they match any *Error of the same kind.
var (
	ErrBadFlagSyntax   = &Error{Kind: BadFlagSyntax}
	ErrUnknownFlag     = &Error{Kind: UnknownFlag}
	ErrMissingArgument = &Error{Kind: MissingArgument}
	ErrConversion      = &Error{Kind: ConversionError}
	ErrHelp            = &Error{Kind: HelpRequested}
	ErrAllocation      = &Error{Kind: AllocationError}
)

func (e *Error) Error() string {
	switch e.Kind {
	case BadFlagSyntax:
		return fmt.Sprintf("bad flag syntax: %s", e.Flag)
	case UnknownFlag:
		return fmt.Sprintf("flag provided but not defined: -%s", e.Flag)
	case MissingArgument:
		return fmt.Sprintf("flag needs an argument: -%s", e.Flag)
	case ConversionError:
		return fmt.Sprintf("invalid value %q for flag -%s: %v", e.Value, e.Flag, e.Err)
	case HelpRequested:
		return "flag: help requested"
	case AllocationError:
		return fmt.Sprintf("allocation failed: %v", e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func conversionError(name, value string, err error) *Error {
	return &Error{Kind: ConversionError, Flag: name, Value: value, Err: err}
}
