package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var flagParseErrorTests = []struct {
	in     string
	flag   string
	reason string
}{
	{
		"unknown flag: --nope",
		"--nope",
		"Flag %s does not exist.",
	},
	{
		"unknown shorthand flag: 'z' in -z",
		"-z",
		"Short flag %s does not exist.",
	},
	{
		"flag needs an argument: --model",
		"--model",
		"Flag %s needs an argument.",
	},
	{
		"flag needs an argument: 'm' in -m",
		"-m",
		"Flag %s needs an argument.",
	},
	{
		`invalid argument "20dd" for "--timeout" flag: time: unknown unit "dd" in duration "20dd"`,
		"--timeout",
		"Flag %s has an invalid argument.",
	},
	{
		`invalid argument "sdfjasdl" for "--max-tokens" flag: strconv.ParseInt: parsing "sdfjasdl": invalid syntax`,
		"--max-tokens",
		"Flag %s has an invalid argument.",
	},
	{
		`invalid argument "nope" for "-q, --quiet" flag: strconv.ParseBool: parsing "nope": invalid syntax`,
		"-q, --quiet",
		"Flag %s has an invalid argument.",
	},
}

func TestFlagParseError(t *testing.T) {
	for _, tf := range flagParseErrorTests {
		t.Run(tf.in, func(t *testing.T) {
			err := newFlagParseError(errors.New(tf.in))
			require.Equal(t, tf.flag, err.Flag())
			require.Equal(t, tf.reason, err.ReasonFormat())
			require.Equal(t, tf.in, err.Error())
		})
	}
}

func TestDurationFlag(t *testing.T) {
	var v time.Duration
	f := newDurationFlag(time.Minute, &v)
	require.Equal(t, time.Minute, v)
	require.Equal(t, "duration", f.Type())

	require.NoError(t, f.Set("1h30m"))
	require.Equal(t, 90*time.Minute, v)
	require.Equal(t, "1h30m0s", f.String())

	require.NoError(t, f.Set("1d"))
	require.Equal(t, 24*time.Hour, v)

	require.Error(t, f.Set("banana"))
	require.Equal(t, 24*time.Hour, v)
}
