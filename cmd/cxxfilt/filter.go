package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/gocxx/cxxfilt/demangle"
	"github.com/spf13/cobra"
)

func runFilter(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		for _, a := range args {
			fmt.Fprintln(output, filterLine(a))
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		fmt.Fprintln(output, filterLine(scanner.Text()))
	}
	return scanner.Err()
}

// filterLine decodes a single line, matching the `c++filt` contract:
// unparseable or non-C++ input passes through unchanged.
func filterLine(line string) string {
	if demangleTypes {
		return demangleWordsIn(line)
	}
	return demangleOne(line)
}

// demangleOne decodes name, optionally retrying with a single leading
// underscore stripped (the "-n"/--no-strip-underscores flag disables the
// retry) — some toolchains (historically Darwin) prefix the Itanium "_Z"
// form with an extra underscore.
func demangleOne(name string) string {
	if out, err := demangle.Demangle(name); err == nil {
		return out
	}
	if !noStripUnderscore && strings.HasPrefix(name, "_") {
		if out, err := demangle.Demangle(name[1:]); err == nil {
			return out
		}
	}
	return name
}

// demangleWordsIn implements `-t`/`--types`: scan line for
// identifier-shaped tokens and decode any that look mangled, leaving
// surrounding text untouched.
func demangleWordsIn(line string) string {
	var out strings.Builder
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		out.WriteString(demangleOne(line[start:end]))
		start = -1
	}
	for i, r := range line {
		if isSymbolRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		out.WriteRune(r)
	}
	flush(len(line))
	return out.String()
}

func isSymbolRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
