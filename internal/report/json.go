package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samuli/bike-logs/internal/session"
	"github.com/samuli/bike-logs/internal/weekly"
)

type skippedFile struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type jsonReport struct {
	Weeks   []weekly.WeekSummary `json:"weeks"`
	Period  Period               `json:"period"`
	NoData  bool                 `json:"no_data"`
	Skipped []skippedFile        `json:"skipped,omitempty"`
}

// JSON prints the whole report as one indented document once the run ends.
type JSON struct {
	w   io.Writer
	out jsonReport
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w, out: jsonReport{Weeks: []weekly.WeekSummary{}}}
}

func (j *JSON) Skipped(err *session.DecodeError) {
	j.out.Skipped = append(j.out.Skipped, skippedFile{File: err.Path, Error: err.Err.Error()})
}

func (j *JSON) Week(w weekly.WeekSummary) {
	j.out.Weeks = append(j.out.Weeks, w)
}

func (j *JSON) Total(p Period) error {
	j.out.Period = p
	j.out.NoData = p.NoData()

	b, err := json.MarshalIndent(j.out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(j.w, string(b))
	return err
}
