package corpus

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"jobmail/internal/core/features"
	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
)

// Header is the column order of the corpus CSV
var Header = []string{"label", "subject", "from", "body", "group_company", "sender_type", "ts_iso"}

// columns a reader cannot do without; sender_type and ts_iso may be absent in hand-labeled files
var requiredColumns = []string{"label", "subject", "from", "body", "group_company"}

var quoteEscaper = strings.NewReplacer(`"`, `""`)

// WriteCSV writes the header and rows with every field quoted and CRLF line endings
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if err := writeRecord(bw, Header); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write csv header")
	}
	rec := make([]string, len(Header))
	for i, r := range rows {
		rec[0] = string(r.Label)
		rec[1] = r.Subject
		rec[2] = r.From
		rec[3] = r.Body
		rec[4] = r.GroupKey
		rec[5] = string(r.Kind)
		rec[6] = r.Timestamp
		if err := writeRecord(bw, rec); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "write csv row %d", i+1)
		}
	}
	if err := bw.Flush(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "flush csv")
	}
	return nil
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := quoteEscaper.WriteString(w, f); err != nil {
			return err
		}
		if err := w.WriteByte('"'); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// ReadCSV parses a corpus CSV. Columns are located by header name. A row with a missing or
// unknown label fails the whole read with a Validation error naming the 1-based data row
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	// every row must carry as many fields as the header
	cr.FieldsPerRecord = 0

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.New(perr.ErrorCodeValidation, "csv is empty")
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "read csv header")
	}
	idx := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "csv missing column %q", c), c)
		}
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []Row
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "row %d", n)
		}
		l, err := label.Parse(get(rec, "label"))
		if err != nil {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "row %d", n), "label")
		}
		row := Row{
			Label:     l,
			Subject:   get(rec, "subject"),
			From:      get(rec, "from"),
			Body:      get(rec, "body"),
			GroupKey:  get(rec, "group_company"),
			Kind:      features.SenderKind(strings.TrimSpace(get(rec, "sender_type"))),
			Timestamp: get(rec, "ts_iso"),
		}
		if row.Kind != "" && !row.Kind.Valid() {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "row %d: unknown sender_type %q", n, row.Kind), "sender_type")
		}
		rows = append(rows, row)
	}
	return rows, nil
}
