package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"jobmail/internal/adapters/mlclient"
	"jobmail/internal/core/corpus"
	"jobmail/internal/core/prefilter"
	"jobmail/internal/platform/config"
	"jobmail/internal/platform/logger"
)

func main() {
	cfg := config.New().Prefix("CORE_CLASSIFY_")

	var (
		baseURL = flag.String("url", cfg.MayString("URL", "http://localhost:8000"), "classifier base url")
		timeout = flag.Duration("timeout", cfg.MayDuration("TIMEOUT", 10*time.Second), "per request timeout")
		subject = flag.String("subject", "", "message subject")
		from    = flag.String("from", "", "message sender")
		body    = flag.String("body", "", "message body")
		csvPath = flag.String("csv", "", "classify every row of a corpus csv instead of one message")
		limit   = flag.Int("limit", 0, "stop after this many csv rows; 0 means all")
	)
	flag.Parse()

	l := logger.Named("jobmail-classify")
	ctx := context.Background()
	cl := mlclient.New(mlclient.Options{BaseURL: *baseURL, Timeout: *timeout})

	if err := cl.Health(ctx); err != nil {
		l.Fatal().Err(err).Str("url", *baseURL).Msg("classifier not healthy")
	}

	if *csvPath == "" {
		one(ctx, cl, mlclient.Request{Subject: *subject, From: *from, Body: *body})
		return
	}
	if err := batch(ctx, cl, *csvPath, *limit); err != nil {
		l.Fatal().Err(err).Str("csv", *csvPath).Msg("batch classify failed")
	}
}

func one(ctx context.Context, cl *mlclient.Client, req mlclient.Request) {
	l := logger.Named("jobmail-classify")
	v := prefilter.Evaluate(req.Subject, req.From, req.Body)
	res, err := cl.Classify(ctx, req)
	if err != nil {
		l.Fatal().Err(err).Msg("classify failed")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "prefilter\t%t (score %d)\n", v.JobRelated, v.Score)
	fmt.Fprintf(tw, "event_type\t%s\n", res.EventType)
	fmt.Fprintf(tw, "confidence\t%.3f\n", res.Confidence)
	fmt.Fprintf(tw, "job_related\t%t\n", res.IsJobRelated)
	fmt.Fprintf(tw, "model\t%s\n", res.ModelVersion)
	_ = tw.Flush()
}

func batch(ctx context.Context, cl *mlclient.Client, path string, limit int) error {
	l := logger.Named("jobmail-classify")

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := corpus.ReadCSV(f)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	var agree, prefilterAgree, failed int
	for i, r := range rows {
		res, err := cl.Classify(ctx, mlclient.Request{Subject: r.Subject, From: r.From, Body: r.Body})
		if err != nil {
			failed++
			l.Warn().Err(err).Int("row", i+1).Msg("classify failed")
			continue
		}
		if res.EventType == r.Label {
			agree++
		}
		if prefilter.LooksJobRelated(r.Subject, r.From, r.Body) == r.Label.IsJobRelated() {
			prefilterAgree++
		}
	}

	done := len(rows) - failed
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rows\t%d\n", len(rows))
	fmt.Fprintf(tw, "failed\t%d\n", failed)
	fmt.Fprintf(tw, "label agreement\t%d/%d (%s)\n", agree, done, pct(agree, done))
	fmt.Fprintf(tw, "prefilter agreement\t%d/%d (%s)\n", prefilterAgree, done, pct(prefilterAgree, done))
	return tw.Flush()
}

func pct(n, d int) string {
	if d == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(d))
}
