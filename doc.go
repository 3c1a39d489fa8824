/*
Package cflag parses command-line flags against a list of typed flag
descriptors. Each descriptor names a flag, gives it a default and a usage
line, and binds it to caller-owned storage through a Converter.

Example

		package main

		import (
			"fmt"
			"os"

			"github.com/isobit/cflag"
		)

		type config struct {
			NT    int
			Debug bool
			Model string
		}

		func main() {
			cfg := config{}
			fs := cflag.New(os.Args[0], cflag.ExitOnError)
			fs.Parse([]cflag.Flag{
				{Name: "nt", Default: "0", Usage: "Maximum number of threads", Convert: cflag.Int, Value: &cfg.NT},
				{Name: "debug", Default: "false", Usage: "Open the server debug mode", Convert: cflag.Bool, Value: &cfg.Debug},
				{Name: "model", Default: "./", Usage: "engine directory", Convert: cflag.String, Value: &cfg.Model},
			}, os.Args[1:])
			fmt.Println(cfg, fs.Args())
		}

Flag Syntax

		-name, --name            boolean flags only
		-name=value, --name=value
		-name value, --name value  non-boolean flags only
		--                        stops flag parsing

One and two minus signs are equivalent. Parsing stops at the first token that
is not a flag, or just after "--"; the remaining tokens are returned by Args.
Boolean flags never consume the following token, so "--debug false" sets
debug to true and leaves "false" as an argument. -h, -help and --help print
usage and return ErrHelp unless a flag with that name is registered.

Defaults

Every descriptor's Default is converted when Parse registers it, before any
argument is read, so a flag that never appears on the command line still ends
with a defined value. An empty Default leaves the storage as it was. If
EnvVar is set and the variable is present, its value is converted next.

Errors

Parse errors are *Error values carrying an ErrorKind and the offending flag.
Use errors.Is with ErrUnknownFlag, ErrMissingArgument, ErrBadFlagSyntax,
ErrConversion, ErrHelp or ErrAllocation to tell them apart. What happens after
an error depends on the ErrorHandling given to New; the exit and panic
actions go through a Terminator, which WithTerminator can replace.

Struct Tags

Bind derives descriptors from a struct pointer. Tags look like
`cflag:"key1,key2=value"`:

		type Config struct {
			F1 string `cflag:"-"`                                // skipped
			F2 int    `cflag:"default=4"`                        // converted at registration
			F3 string `cflag:"usage='to help, or not to help?'"` // usage with a comma
			F4 string `cflag:"name=eee,placeholder=path"`        // explicit name and value label
			F5 string `cflag:"env=MY_F5"`                        // environment fallback
			F6 string `cflag:"env"`                              // environment fallback from F6
		}

Field types map to the built-in converters. Types with a Set(string) error
method use Setter, and encoding.TextUnmarshaler types use Text.
*/
package cflag
