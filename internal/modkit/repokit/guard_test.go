package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeGuard struct {
	err         error
	hadDeadline bool
}

func (f *fakeGuard) Guard(ctx context.Context) error {
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func TestMustGuard(t *testing.T) {
	t.Parallel()

	g := &fakeGuard{}
	MustGuard(context.Background(), g)
	if !g.hadDeadline {
		t.Fatalf("expected a default deadline")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	MustGuard(ctx, g)
	if !g.hadDeadline {
		t.Fatalf("expected caller deadline to pass through")
	}
}

func TestMustGuard_PanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		if !strings.Contains(err.Error(), "dependency guard failed: pg down") {
			t.Fatalf("panic = %v", err)
		}
	}()
	MustGuard(context.Background(), &fakeGuard{err: errors.New("pg down")})
}
