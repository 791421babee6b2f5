package parser

import (
	"strings"

	"github.com/dlclark/regexp2"
)

const regExpFlags = "gimsuy"

// RegExp is the value of a regular expression literal. The pattern is
// validated with an ECMAScript-compatible engine when it is scanned.
type RegExp struct {
	Pattern string
	Flags   string

	compiled *regexp2.Regexp
}

func (r *RegExp) String() string {
	return "/" + r.Pattern + "/" + r.Flags
}

// MatchString runs the compiled pattern against s.
func (r *RegExp) MatchString(s string) (bool, error) {
	return r.compiled.MatchString(s)
}

func compileRegExp(pattern, flags string) (*RegExp, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for i, f := range flags {
		if !strings.ContainsRune(regExpFlags, f) || strings.ContainsRune(flags[:i], f) {
			return nil, &Error{Description: msgInvalidRegExp}
		}
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &RegExp{Pattern: pattern, Flags: flags, compiled: re}, nil
}
