/*
Some code in this file was copied from the go "flag" package source and
modified. That code's license is retained here:

Copyright (c) 2009 The Go Authors. All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

package cflag

import (
	"log/slog"
	"strings"
)

// parser walks the remaining arguments one token at a time, resolving flags
// through the registry.
type parser struct {
	formal *registry
	args   []string
	// argc counts tokens handed over as positional by a "--" terminator.
	argc   int
	usage  func()
	logger *slog.Logger
}

func (p *parser) parse(arguments []string) error {
	p.args = arguments
	for {
		seen, err := p.parseOne()
		if err != nil {
			return err
		}
		if !seen {
			break
		}
	}
	return nil
}

// parseOne consumes one flag and its value, if any. It returns false with a
// nil error when the next token is not a flag; that token and everything
// after it are left in p.args. The cursor only moves on success.
func (p *parser) parseOne() (bool, error) {
	if len(p.args) == 0 {
		return false, nil
	}
	s := p.args[0]
	if len(s) < 2 || s[0] != '-' {
		return false, nil
	}
	numMinuses := 1
	if s[1] == '-' {
		numMinuses++
		if len(s) == 2 { // "--" terminates the flags
			p.args = p.args[1:]
			p.argc++
			p.logger.Debug("flag terminator", "remaining", len(p.args))
			return false, nil
		}
	}
	name := s[numMinuses:]
	if len(name) == 0 || name[0] == '-' || name[0] == '=' {
		return false, &Error{Kind: BadFlagSyntax, Flag: s}
	}

	// it's a flag. does it have an argument?
	rest := p.args[1:]
	hasValue := false
	value := ""
	if i := strings.IndexByte(name, '='); i > 0 { // equals cannot be first
		value = name[i+1:]
		hasValue = true
		name = name[:i]
	}

	flag := p.formal.lookup(name)
	if flag == nil {
		if name == "h" || name == "help" { // special case for nice help message.
			if p.usage != nil {
				p.usage()
			}
			return false, &Error{Kind: HelpRequested, Flag: name}
		}
		return false, &Error{Kind: UnknownFlag, Flag: name}
	}

	if flag.IsBool() { // special case: doesn't need an arg
		if !hasValue {
			value = "true"
		}
	} else {
		// It must have a value, which might be the next argument.
		if !hasValue && len(rest) > 0 {
			// value is the next arg
			hasValue = true
			value, rest = rest[0], rest[1:]
		}
		if !hasValue {
			return false, &Error{Kind: MissingArgument, Flag: name}
		}
	}

	if err := flag.Convert.Convert(flag, value); err != nil {
		return false, conversionError(name, value, err)
	}
	p.args = rest
	p.logger.Debug("flag set", "flag", name, "value", value)
	return true, nil
}
