package main

import (
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/duration"
)

// flagParseError wraps a pflag parse error with a user-facing reason and the
// offending flag.
type flagParseError struct {
	err    error
	reason string
	flag   string
}

func (f flagParseError) Error() string {
	return f.err.Error()
}

// ReasonFormat returns the user-facing reason with a %s verb for the flag.
func (f flagParseError) ReasonFormat() string {
	return f.reason
}

// Flag returns the flag that caused the parse error.
func (f flagParseError) Flag() string {
	return f.flag
}

var (
	shorthandFlagRE = regexp.MustCompile(`'.' in (-\w)`)
	invalidArgRE    = regexp.MustCompile(`invalid argument ".*" for "(.*)" flag`)
)

func newFlagParseError(err error) flagParseError {
	fpe := flagParseError{err: err}
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag:"):
		fpe.reason = "Flag %s does not exist."
		fpe.flag = strings.TrimSpace(strings.TrimPrefix(msg, "unknown flag:"))
	case strings.HasPrefix(msg, "unknown shorthand flag:"):
		fpe.reason = "Short flag %s does not exist."
		if m := shorthandFlagRE.FindStringSubmatch(msg); len(m) > 1 {
			fpe.flag = m[1]
		}
	case strings.HasPrefix(msg, "flag needs an argument:"):
		fpe.reason = "Flag %s needs an argument."
		fpe.flag = strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
		// Shorthands come in as "flag needs an argument: 'm' in -m".
		if i := strings.LastIndex(fpe.flag, " in "); i >= 0 {
			fpe.flag = fpe.flag[i+len(" in "):]
		}
	case strings.HasPrefix(msg, "invalid argument"):
		fpe.reason = "Flag %s has an invalid argument."
		if m := invalidArgRE.FindStringSubmatch(msg); len(m) > 1 {
			fpe.flag = m[1]
		}
	default:
		fpe.reason = msg
	}
	return fpe
}

// durationFlag is a pflag.Value that accepts humanized durations like "30s"
// or "1d" on top of the standard ones.
type durationFlag time.Duration

func newDurationFlag(val time.Duration, p *time.Duration) *durationFlag {
	*p = val
	return (*durationFlag)(p)
}

func (d *durationFlag) Set(s string) error {
	v, err := duration.Parse(s)
	if err != nil {
		return err //nolint:wrapcheck
	}
	*d = durationFlag(v)
	return nil
}

func (d *durationFlag) String() string {
	return time.Duration(*d).String()
}

func (*durationFlag) Type() string {
	return "duration"
}
