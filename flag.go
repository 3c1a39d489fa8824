package cflag

// Flag describes one command-line flag: its name, the default text applied
// at registration, the usage line, the converter and the caller-owned
// storage the converter writes through.
//
// A FlagSet copies each Flag it registers, so the caller's slice may be
// reused or discarded after Parse returns.
type Flag struct {
	Name    string
	Default string
	Usage   string
	Convert Converter
	Value   interface{}

	// EnvVar, if set, names an environment variable whose value overrides
	// Default. Command-line tokens still take precedence.
	EnvVar string

	// Placeholder names the value in usage output. It defaults to "value".
	Placeholder string

	isBool bool
}

// IsBool reports whether the flag takes no value on the command line.
func (f *Flag) IsBool() bool {
	return f.isBool
}

// MarkBool is called by converters of boolean values.
func (f *Flag) MarkBool() {
	f.isBool = true
}

// isSentinel reports whether f is the all-empty record that terminates a
// descriptor list.
func (f *Flag) isSentinel() bool {
	return f.Name == "" && f.Default == "" && f.Usage == "" &&
		f.Convert == nil && f.Value == nil
}

func (f *Flag) placeholder() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	return "value"
}

// boolFlag is implemented by converters that always produce booleans, so the
// flag is known to be boolean even before its default is converted.
type boolFlag interface {
	IsBoolFlag() bool
}
