package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "\n select id,\n\t  started_at\r\n from   training_runs \n"
	if got := compact(in); got != "select id, started_at from training_runs" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracer_Levels(t *testing.T) {
	tests := []struct {
		name  string
		ev    QueryEvent
		level string
	}{
		{"plain", QueryEvent{SQL: "select 1", ElapsedUS: 1500}, `"level":"debug"`},
		{"slow", QueryEvent{SQL: "select 1", Slow: true}, `"level":"warn"`},
		{"failed", QueryEvent{SQL: "select 1", Err: errors.New("boom")}, `"level":"error"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
			Tracer(root).OnQuery(context.Background(), tc.ev)
			out := buf.String()
			if !strings.Contains(out, tc.level) {
				t.Fatalf("want %s in %s", tc.level, out)
			}
			if !strings.Contains(out, `"component":"pg"`) || !strings.Contains(out, `"sql":"select 1"`) {
				t.Fatalf("missing fields in %s", out)
			}
		})
	}
}
