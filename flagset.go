package cflag

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

// ErrorHandling defines how Parse behaves once parsing fails.
type ErrorHandling int

const (
	// ContinueOnError returns the error to the caller.
	ContinueOnError ErrorHandling = iota
	// ExitOnError prints the error and exits with status 2. A help request
	// also exits with status 2, after the usage text and without the error
	// line.
	ExitOnError
	// PanicOnError prints the error and panics with it.
	PanicOnError
)

func (eh ErrorHandling) String() string {
	switch eh {
	case ContinueOnError:
		return "continue"
	case ExitOnError:
		return "exit"
	case PanicOnError:
		return "panic"
	default:
		return fmt.Sprintf("ErrorHandling(%d)", int(eh))
	}
}

// DefaultCapacity is the registry size hint used unless WithCapacity is
// given.
const DefaultCapacity = 30

// Terminator carries out the ExitOnError and PanicOnError policies.
type Terminator interface {
	Exit(code int)
	Panic(err error)
}

type osTerminator struct{}

func (osTerminator) Exit(code int) {
	os.Exit(code)
}

func (osTerminator) Panic(err error) {
	panic(err)
}

// FlagSet registers a list of flags and parses arguments against them.
// A FlagSet is not safe for concurrent use.
type FlagSet struct {
	parser

	name          string
	errorHandling ErrorHandling
	capacity      int
	parsed        bool
	err           error
	output        io.Writer
	env           Env
	terminator    Terminator
}

// Option configures a FlagSet at construction.
type Option interface {
	Apply(fs *FlagSet)
}

type optionFunc func(fs *FlagSet)

func (of optionFunc) Apply(fs *FlagSet) {
	of(fs)
}

// WithOutput sets the destination for usage and error messages.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(fs *FlagSet) {
		fs.SetOutput(w)
	})
}

// WithLogger sets the logger that receives debug records for registration
// and each parsed token. A nil logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(fs *FlagSet) {
		if logger != nil {
			fs.logger = logger
		}
	})
}

// WithTerminator replaces the process exit and panic used by ExitOnError and
// PanicOnError. A nil Terminator keeps the default.
func WithTerminator(t Terminator) Option {
	return optionFunc(func(fs *FlagSet) {
		if t != nil {
			fs.terminator = t
		}
	})
}

// WithEnv sets where EnvVar fallbacks are looked up; the default is the
// process environment. A nil Env disables the fallback.
func WithEnv(env Env) Option {
	return optionFunc(func(fs *FlagSet) {
		fs.env = env
	})
}

// WithCapacity sizes the flag registry for about n flags.
func WithCapacity(n int) Option {
	return optionFunc(func(fs *FlagSet) {
		fs.capacity = n
	})
}

// New creates a FlagSet for the named program. If the registry cannot be
// allocated New panics; use Build to handle that error instead.
func New(name string, errorHandling ErrorHandling, opts ...Option) *FlagSet {
	fs, err := Build(name, errorHandling, opts...)
	if err != nil {
		panic(fmt.Sprintf("cflag: %s", err))
	}
	return fs
}

// Build is like New, but returns an AllocationError instead of panicking.
func Build(name string, errorHandling ErrorHandling, opts ...Option) (*FlagSet, error) {
	fs := &FlagSet{
		name:          name,
		errorHandling: errorHandling,
		capacity:      DefaultCapacity,
		env:           OSEnv{},
		terminator:    osTerminator{},
	}
	fs.parser.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	fs.parser.usage = fs.Usage

	for _, opt := range opts {
		opt.Apply(fs)
	}

	formal, err := newRegistry(fs.capacity)
	if err != nil {
		return nil, &Error{Kind: AllocationError, Err: err}
	}
	fs.formal = formal
	return fs, nil
}

// Name returns the program name given to New.
func (fs *FlagSet) Name() string {
	return fs.name
}

// ErrorHandling returns the policy Parse applies on failure.
func (fs *FlagSet) ErrorHandling() ErrorHandling {
	return fs.errorHandling
}

// Output returns the destination for usage and error messages, os.Stderr if
// none was set.
func (fs *FlagSet) Output() io.Writer {
	if fs.output == nil {
		return os.Stderr
	}
	return fs.output
}

func (fs *FlagSet) SetOutput(w io.Writer) {
	fs.output = w
}

// Parse registers flags, applying each default (and environment override)
// as it goes, then parses arguments, which must not include the program
// name. Registration stops at the end of the slice or at the first zero
// Flag.
//
// On failure the error is kept for Err and the ErrorHandling policy is
// applied; with ContinueOnError the error is also returned.
func (fs *FlagSet) Parse(flags []Flag, arguments []string) error {
	fs.parsed = true
	fs.err = nil

	if fs.formal == nil {
		formal, err := newRegistry(fs.capacity)
		if err != nil {
			return fs.fail(&Error{Kind: AllocationError, Err: err})
		}
		fs.formal = formal
	}

	if err := fs.register(flags); err != nil {
		return fs.fail(err)
	}

	fs.argc = 0
	if err := fs.parse(arguments); err != nil {
		return fs.fail(err)
	}
	fs.logger.Debug("parsed", "flags", fs.formal.len(), "args", shellquote.Join(fs.args...))
	return nil
}

// ParseString splits cmdline with shell quoting rules and parses the result.
// A malformed command line is returned without applying the policy.
func (fs *FlagSet) ParseString(flags []Flag, cmdline string) error {
	arguments, err := shellquote.Split(cmdline)
	if err != nil {
		return errors.Wrap(err, "failed to split command line")
	}
	return fs.Parse(flags, arguments)
}

func (fs *FlagSet) register(flags []Flag) error {
	for i := range flags {
		if flags[i].isSentinel() {
			break
		}
		f := flags[i]
		if f.Convert == nil {
			return conversionError(f.Name, f.Default, errors.New("no converter"))
		}
		if bf, ok := f.Convert.(boolFlag); ok && bf.IsBoolFlag() {
			f.MarkBool()
		}

		if f.Default != "" {
			if err := f.Convert.Convert(&f, f.Default); err != nil {
				return conversionError(f.Name, f.Default, errors.Wrap(err, "bad default"))
			}
		}
		if f.EnvVar != "" && fs.env != nil {
			if s, ok := fs.env.Lookup(f.EnvVar); ok {
				if err := f.Convert.Convert(&f, s); err != nil {
					return conversionError(f.Name, s, errors.Wrapf(err, "from %s", f.EnvVar))
				}
			}
		}

		fs.formal.add(&f)
		fs.logger.Debug("flag registered", "flag", f.Name, "default", f.Default, "bool", f.IsBool())
	}
	return nil
}

func (fs *FlagSet) fail(err error) error {
	fs.err = err
	fs.logger.Debug("parse failed", "policy", fs.errorHandling, "err", err)

	switch fs.errorHandling {
	case ExitOnError:
		if !errors.Is(err, ErrHelp) {
			fs.printError(err)
		}
		fs.terminator.Exit(2)
	case PanicOnError:
		fs.printError(err)
		fs.terminator.Panic(err)
	}
	return err
}

func (fs *FlagSet) printError(err error) {
	fmt.Fprintf(fs.Output(), "%s %s\n", color.New(color.FgRed).Sprint("error:"), err)
}

// Parsed reports whether Parse has been called.
func (fs *FlagSet) Parsed() bool {
	return fs.parsed
}

// Err returns the error from the last Parse, if any.
func (fs *FlagSet) Err() error {
	return fs.err
}

// ErrorMessage returns the text of Err, or "" if the last Parse succeeded.
func (fs *FlagSet) ErrorMessage() string {
	if fs.err == nil {
		return ""
	}
	return fs.err.Error()
}

// Args returns the arguments left after flag parsing.
func (fs *FlagSet) Args() []string {
	return fs.args
}

func (fs *FlagSet) NArg() int {
	return len(fs.args)
}

// Arg returns the i'th remaining argument, or "" if there is none.
func (fs *FlagSet) Arg(i int) string {
	if i < 0 || i >= len(fs.args) {
		return ""
	}
	return fs.args[i]
}

// Terminated reports whether parsing stopped at a "--" terminator.
func (fs *FlagSet) Terminated() bool {
	return fs.argc > 0
}

// Lookup returns the registered descriptor for name, or nil.
func (fs *FlagSet) Lookup(name string) *Flag {
	if fs.formal == nil {
		return nil
	}
	return fs.formal.lookup(name)
}

// NFlag returns the number of registered flags.
func (fs *FlagSet) NFlag() int {
	if fs.formal == nil {
		return 0
	}
	return fs.formal.len()
}

// Visit calls fn for each registered flag in registry order, which is not
// registration order.
func (fs *FlagSet) Visit(fn func(f *Flag)) {
	if fs.formal == nil {
		return
	}
	fs.formal.visit(fn)
}

// Free releases the registry. Storage bound to the flags is not touched. A
// later Parse allocates a new registry.
func (fs *FlagSet) Free() {
	if fs.formal == nil {
		return
	}
	fs.formal.free()
	fs.formal = nil
}
