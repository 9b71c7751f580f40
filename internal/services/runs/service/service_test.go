package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobmail/internal/modkit/repokit"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/store"
	"jobmail/internal/platform/testkit"
	"jobmail/internal/services/runs/domain"
	"jobmail/internal/services/runs/repo"
)

type fakeDB struct {
	execs []string
	inTx  bool
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, nil
}
func (f *fakeDB) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) store.Row       { return nil }
func (f *fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f)
}

type fakeRepo struct {
	db        *fakeDB
	inserted  []repo.RowRun
	insertTx  bool
	lastLimit int
	lastRep   bool
	rows      []repo.RowRun
}

func (r *fakeRepo) EnsureSchema(context.Context) error { return nil }
func (r *fakeRepo) Insert(_ context.Context, x repo.RowRun) error {
	r.inserted = append(r.inserted, x)
	r.insertTx = r.db.inTx
	return nil
}
func (r *fakeRepo) Recent(_ context.Context, limit int, withReport bool) ([]repo.RowRun, error) {
	r.lastLimit, r.lastRep = limit, withReport
	return r.rows, nil
}

func newSvc() (*Svc, *fakeDB, *fakeRepo) {
	db := &fakeDB{}
	fr := &fakeRepo{db: db}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return fr })
	return New(db, binder), db, fr
}

func TestNew_PanicsOnNil(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, repo.NewPG()) })
	testkit.MustPanic(t, func() { New(&fakeDB{}, nil) })
}

func TestRecord_InsideTxWithTimeout(t *testing.T) {
	s, db, fr := newSvc()
	run := domain.Run{
		ID:           "11111111-1111-1111-1111-111111111111",
		ArtifactID:   "22222222-2222-2222-2222-222222222222",
		StartedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.FixedZone("x", 3600)),
		TestAccuracy: 0.7,
	}
	if err := s.Record(context.Background(), run); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(fr.inserted) != 1 || !fr.insertTx {
		t.Fatalf("insert not run inside tx: %+v", fr)
	}
	if fr.inserted[0].StartedAt.Location() != time.UTC {
		t.Fatalf("timestamps not normalized to UTC")
	}
	if len(db.execs) == 0 || !strings.Contains(db.execs[0], "statement_timeout") {
		t.Fatalf("statement timeout hook missing: %v", db.execs)
	}
}

func TestRecord_RequiresIDs(t *testing.T) {
	s, _, _ := newSvc()
	err := s.Record(context.Background(), domain.Run{})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestRecent_LimitClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 20},
		{-4, 20},
		{5, 5},
		{500, 200},
	}
	for _, tc := range tests {
		s, _, fr := newSvc()
		fr.rows = []repo.RowRun{{ID: "a"}, {ID: "b"}}
		got, err := s.Recent(context.Background(), domain.ListInput{Limit: tc.in, WithReports: true})
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if fr.lastLimit != tc.want || !fr.lastRep {
			t.Fatalf("limit %d -> %d, want %d", tc.in, fr.lastLimit, tc.want)
		}
		if len(got) != 2 || got[0].ID != "a" {
			t.Fatalf("rows not mapped: %+v", got)
		}
	}
}
