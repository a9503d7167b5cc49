// Package export renders submissions as CSV for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"Backend-TanyaPintar/src/models"
)

// FixedColumns precede one column per question.
var FixedColumns = []string{"Timestamp", "Name", "Class"}

// FileName download name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("data_tanyapintar_%d.csv", t.UnixMilli())
}

// Header returns the header row for the given catalog.
func Header(questions []models.Question) []string {
	header := make([]string, 0, len(FixedColumns)+len(questions))
	header = append(header, FixedColumns...)
	for _, q := range questions {
		header = append(header, q.Text)
	}
	return header
}

// Row renders one submission. Timestamps are RFC 3339 in loc; missing answers
// are empty.
func Row(s models.Submission, questions []models.Question, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	row := make([]string, 0, len(FixedColumns)+len(questions))
	row = append(row, s.Timestamp.In(loc).Format(time.RFC3339), s.UserName, s.ClassName)
	for _, q := range questions {
		row = append(row, models.FormatAnswer(s.Answers[q.ID.Hex()]))
	}
	return row
}

// CSV renders the header and one row per submission, quoting per RFC 4180.
func CSV(subs []models.Submission, questions []models.Question, loc *time.Location) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(Header(questions)); err != nil {
		return nil, err
	}
	for _, s := range subs {
		if err := w.Write(Row(s, questions, loc)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
