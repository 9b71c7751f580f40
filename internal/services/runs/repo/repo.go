// Package repo provides postgres access for training runs
package repo

import (
	"context"
	"time"

	"jobmail/internal/modkit/repokit"
	perr "jobmail/internal/platform/errors"
)

// Repo defines the repository contract for runs
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, r RowRun) error
	Recent(ctx context.Context, limit int, withReport bool) ([]RowRun, error)
}

// RowRun mirrors the training_runs table
type RowRun struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Dataset       string
	Rows          int
	TrainRows     int
	TestRows      int
	TrainAccuracy float64
	TestAccuracy  float64
	MacroF1       float64
	Vocabulary    int
	ModelVersion  string
	ArtifactID    string
	Report        string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

var schemaSQL = []string{`
create table if not exists training_runs (
	id             uuid primary key,
	started_at     timestamptz not null,
	finished_at    timestamptz not null,
	dataset        text not null,
	rows_total     integer not null,
	rows_train     integer not null,
	rows_test      integer not null,
	train_accuracy double precision not null,
	test_accuracy  double precision not null,
	macro_f1       double precision not null,
	vocabulary     integer not null,
	model_version  text not null,
	artifact_id    uuid not null,
	report         text not null default ''
)`,
	`create index if not exists training_runs_finished_idx on training_runs (finished_at desc)`,
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaSQL {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgres(err, "ensure training_runs schema")
		}
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, x RowRun) error {
	const sql = `
insert into training_runs (
	id, started_at, finished_at, dataset, rows_total, rows_train, rows_test,
	train_accuracy, test_accuracy, macro_f1, vocabulary, model_version, artifact_id, report
) values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::uuid, $14)
`
	_, err := r.q.Exec(ctx, sql,
		x.ID, x.StartedAt, x.FinishedAt, x.Dataset, x.Rows, x.TrainRows, x.TestRows,
		x.TrainAccuracy, x.TestAccuracy, x.MacroF1, x.Vocabulary, x.ModelVersion, x.ArtifactID, x.Report,
	)
	if err != nil {
		return perr.FromPostgresWithField(err, "insert training run")
	}
	return nil
}

func (r *queries) Recent(ctx context.Context, limit int, withReport bool) ([]RowRun, error) {
	const sql = `
select id::text, started_at, finished_at, dataset, rows_total, rows_train, rows_test,
train_accuracy, test_accuracy, macro_f1, vocabulary, model_version, artifact_id::text,
case when $2 then report else '' end
from training_runs
order by finished_at desc
limit $1
`
	rows, err := r.q.Query(ctx, sql, limit, withReport)
	if err != nil {
		return nil, perr.FromPostgres(err, "list training runs")
	}
	defer rows.Close()

	var out []RowRun
	for rows.Next() {
		var x RowRun
		if err := rows.Scan(
			&x.ID,
			&x.StartedAt,
			&x.FinishedAt,
			&x.Dataset,
			&x.Rows,
			&x.TrainRows,
			&x.TestRows,
			&x.TrainAccuracy,
			&x.TestAccuracy,
			&x.MacroF1,
			&x.Vocabulary,
			&x.ModelVersion,
			&x.ArtifactID,
			&x.Report,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan training run")
		}
		out = append(out, x)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "iterate training runs")
	}
	return out, nil
}
