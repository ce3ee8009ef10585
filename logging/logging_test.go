package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		s     string
		f     Flag
		valid bool
	}{
		{"", Nil, true},
		{"nil", Nil, true},
		{"performance", Performance, true},
		{"debug", Debug, true},
		{"verbose", Nil, false},
	}
	for i := range tests {
		f, err := ParseFlag(tests[i].s)
		require.Equal(t, tests[i].valid, err == nil, "%d) %q", i, tests[i].s)
		require.Equal(t, tests[i].f, f, "%d) %q", i, tests[i].s)
	}
}

func TestSetMode(t *testing.T) {
	defer SetMode(Nil)

	buf := &bytes.Buffer{}
	SetConsoleWriter(buf, true)

	SetMode(Nil)
	Log().Info().Msg("hidden")
	Log().Warn().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "WRN")

	SetMode(Debug)
	require.Equal(t, zerolog.DebugLevel, Log().GetLevel())
	Log().Debug().Msg("details")
	require.Contains(t, buf.String(), "DBG")
	require.Contains(t, buf.String(), "details")
}

func TestJSONWriter(t *testing.T) {
	defer SetConsoleWriter(&bytes.Buffer{}, true)
	defer SetMode(Nil)

	buf := &bytes.Buffer{}
	SetMode(Performance)
	SetJSONWriter(buf)
	Mem("checkpoint")
	require.True(t, strings.HasPrefix(buf.String(), "{"))
	require.Contains(t, buf.String(), `"mem":"Alloc - `)
}

func TestConsoleColors(t *testing.T) {
	defer SetConsoleWriter(&bytes.Buffer{}, true)
	defer SetMode(Nil)

	buf := &bytes.Buffer{}
	SetMode(Debug)
	SetConsoleWriter(buf, false)
	Log().Debug().Msg("a")
	Log().Info().Msg("b")
	Log().Warn().Msg("c")
	require.Contains(t, buf.String(), "\x1b[33mDBG\x1b[0m")
	require.Contains(t, buf.String(), "\x1b[32mINF\x1b[0m")
	require.Contains(t, buf.String(), "\x1b[31mWRN\x1b[0m")

	buf.Reset()
	SetConsoleWriter(buf, true)
	Log().Warn().Msg("c")
	require.NotContains(t, buf.String(), "\x1b[")
}
