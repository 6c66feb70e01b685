package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_TagsEveryLineWithService(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Debug().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"nesthome-web"`) {
		t.Fatalf("missing service tag: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("missing message: %s", out)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second})
	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Fatalf("second Init must not take effect")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected output on the first writer, got %q", first.String())
	}
}

func TestGet_InitialisesWithDefaults(t *testing.T) {
	Reset()
	defer Reset()

	if got := Get().GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q): got %s, want %s", tc.in, got, tc.want)
		}
	}
}
