package cflag

import (
	"io"
	"strings"
	"text/tabwriter"
	"text/template"
)

var usageTemplateString = `Usage of {{.Name}}:
{{- range .Flags}}
  -{{.Name}}
{{- if .HasArg}} <{{.Placeholder}}>{{end}}\t
{{- if .Usage}}  {{.Usage}}{{end}}
{{- if and .HasArg .Default}}  (default: {{.Default}}){{end}}
{{- end}}
`

var usageTemplate *template.Template

func init() {
	usageTemplate = template.Must(
		template.New("usage").Parse(usageTemplateString),
	)
}

type usageFlag struct {
	Name        string
	Placeholder string
	HasArg      bool
	Usage       string
	Default     string
}

// Usage writes the usage message to Output.
func (fs *FlagSet) Usage() {
	fs.WriteUsage(fs.Output())
}

// UsageString returns the usage message.
func (fs *FlagSet) UsageString() string {
	sb := strings.Builder{}
	fs.WriteUsage(&sb)
	return sb.String()
}

// WriteUsage writes one line per registered flag in registry order. Nothing
// is written when the program name is empty.
func (fs *FlagSet) WriteUsage(w io.Writer) {
	if fs.name == "" {
		return
	}

	flags := []usageFlag{}
	fs.Visit(func(f *Flag) {
		flags = append(flags, usageFlag{
			Name:        f.Name,
			Placeholder: f.placeholder(),
			HasArg:      !f.IsBool(),
			Usage:       f.Usage,
			Default:     f.Default,
		})
	})
	data := struct {
		Name  string
		Flags []usageFlag
	}{
		Name:  fs.name,
		Flags: flags,
	}

	tw := newEscapedTabWriter(w)
	err := usageTemplate.Execute(tw, data)
	if err != nil {
		panic(err)
	}
	tw.Flush()
}

type escapedTabWriter struct {
	replacer  *strings.Replacer
	tabWriter *tabwriter.Writer
}

func newEscapedTabWriter(w io.Writer) escapedTabWriter {
	return escapedTabWriter{
		replacer:  strings.NewReplacer(`\t`, "\t", `\f`, "\f"),
		tabWriter: tabwriter.NewWriter(w, 0, 0, 0, ' ', 0),
	}
}

func (w escapedTabWriter) Write(p []byte) (int, error) {
	return w.replacer.WriteString(w.tabWriter, string(p))
}

func (w escapedTabWriter) Flush() error {
	return w.tabWriter.Flush()
}
