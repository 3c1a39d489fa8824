package cflag

import (
	"encoding"
	"net/netip"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Converter parses flag text into the storage referenced by f.Value. A
// converter must leave the storage untouched when it returns an error.
type Converter interface {
	Convert(f *Flag, text string) error
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(f *Flag, text string) error

func (cf ConverterFunc) Convert(f *Flag, text string) error {
	return cf(f, text)
}

// Built-in converters. The storage each one expects is noted alongside.
var (
	Int      Converter = ConverterFunc(convertInt)      // *int
	Int64    Converter = ConverterFunc(convertInt64)    // *int64
	Uint     Converter = ConverterFunc(convertUint)     // *uint
	Bool     Converter = boolConverter{}                // *bool
	String   Converter = ConverterFunc(convertString)   // *string
	Double   Converter = ConverterFunc(convertDouble)   // *float64
	Duration Converter = ConverterFunc(convertDuration) // *time.Duration
	IP       Converter = ConverterFunc(convertIP)       // *netip.Addr
	Port     Converter = ConverterFunc(convertPort)     // *uint16
	Addr     Converter = ConverterFunc(convertAddr)     // *netip.AddrPort
	Text     Converter = ConverterFunc(convertText)     // encoding.TextUnmarshaler
	Setter   Converter = ConverterFunc(convertSetter)   // ValueSetter
)

// ValueSetter is implemented by values that parse themselves, like
// flag.Value.
type ValueSetter interface {
	Set(s string) error
}

func storage[T any](f *Flag) (*T, error) {
	p, ok := f.Value.(*T)
	if !ok || p == nil {
		return nil, errors.Errorf("storage is %T, want %T", f.Value, p)
	}
	return p, nil
}

// numError strips the strconv function name and input from err, since the
// flag error already carries both.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func convertInt(f *Flag, s string) error {
	p, err := storage[int](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		return numError(err)
	}
	*p = int(v)
	return nil
}

func convertInt64(f *Flag, s string) error {
	p, err := storage[int64](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return numError(err)
	}
	*p = v
	return nil
}

func convertUint(f *Flag, s string) error {
	p, err := storage[uint](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 0, strconv.IntSize)
	if err != nil {
		return numError(err)
	}
	*p = uint(v)
	return nil
}

type boolConverter struct{}

func (boolConverter) IsBoolFlag() bool {
	return true
}

// Convert accepts 1, t, T, true, TRUE, True and 0, f, F, false, FALSE, False.
func (boolConverter) Convert(f *Flag, s string) error {
	p, err := storage[bool](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return numError(err)
	}
	*p = v
	f.MarkBool()
	return nil
}

func convertString(f *Flag, s string) error {
	p, err := storage[string](f)
	if err != nil {
		return err
	}
	*p = s
	return nil
}

func convertDouble(f *Flag, s string) error {
	p, err := storage[float64](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return numError(err)
	}
	*p = v
	return nil
}

func convertDuration(f *Flag, s string) error {
	p, err := storage[time.Duration](f)
	if err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func convertIP(f *Flag, s string) error {
	p, err := storage[netip.Addr](f)
	if err != nil {
		return err
	}
	v, err := netip.ParseAddr(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func convertPort(f *Flag, s string) error {
	p, err := storage[uint16](f)
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return errors.Wrap(numError(err), "port must be 0-65535")
	}
	*p = uint16(v)
	return nil
}

// convertAddr parses "ip:port". Empty text resets the address to its zero
// value.
func convertAddr(f *Flag, s string) error {
	p, err := storage[netip.AddrPort](f)
	if err != nil {
		return err
	}
	if s == "" {
		*p = netip.AddrPort{}
		return nil
	}
	v, err := netip.ParseAddrPort(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func convertText(f *Flag, s string) error {
	tu, ok := f.Value.(encoding.TextUnmarshaler)
	if !ok {
		return errors.Errorf("storage %T does not implement encoding.TextUnmarshaler", f.Value)
	}
	return tu.UnmarshalText([]byte(s))
}

func convertSetter(f *Flag, s string) error {
	vs, ok := f.Value.(ValueSetter)
	if !ok {
		return errors.Errorf("storage %T does not implement Set(string) error", f.Value)
	}
	return vs.Set(s)
}
