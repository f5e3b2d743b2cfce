// Package batch runs every question cell of a table through the question
// pipeline and writes the results back with highlights.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jackzampolin/nsb/internal/columns"
	"github.com/jackzampolin/nsb/internal/document"
	"github.com/jackzampolin/nsb/internal/lint"
	"github.com/jackzampolin/nsb/internal/pool"
	"github.com/jackzampolin/nsb/internal/question"
)

// Options configures a batch run. Companion column names may be empty or
// absent from the table, in which case that column is not checked.
type Options struct {
	QuestionColumn   string
	TUBColumn        string
	SubjectColumn    string
	QuesColumn       string
	LODColumn        string
	NormalizeColumns bool
	Workers          int
	Colors           lint.Colors
	Logger           *slog.Logger
}

// Stats summarizes a run.
type Stats struct {
	Questions   int `json:"questions" yaml:"questions"`
	Blank       int `json:"blank" yaml:"blank"`
	Clean       int `json:"clean" yaml:"clean"`
	Parse       int `json:"parse" yaml:"parse"`
	Structure   int `json:"structure" yaml:"structure"`
	Corrections int `json:"corrections" yaml:"corrections"`
}

// Fix is a correction applied to one question.
type Fix struct {
	Index               int `json:"index" yaml:"index"`
	question.Correction `yaml:",inline"`
}

// Outcome is the result of a run. Table is a modified copy of the input.
type Outcome struct {
	RunID  string          `json:"run_id" yaml:"run_id"`
	Table  *document.Table `json:"-" yaml:"-"`
	Report lint.Report     `json:"report" yaml:"report"`
	Fixes  []Fix           `json:"fixes,omitempty" yaml:"fixes,omitempty"`
	Stats  Stats           `json:"stats" yaml:"stats"`
}

// HasParseDefects reports whether any cell was left unformatted.
func (o *Outcome) HasParseDefects() bool {
	return o.Stats.Parse > 0
}

// companion is a checked column next to the question column.
type companion struct {
	field     string
	column    int
	normalize func(string) (string, error)
}

// companionValue is one checked companion cell.
type companionValue struct {
	checked bool
	text    string
	err     *columns.Error
}

// cellResult is what one worker produces for one row.
type cellResult struct {
	blank      bool
	result     question.Result
	companions []companionValue
}

type runner struct {
	opts       Options
	logger     *slog.Logger
	table      *document.Table
	question   int
	tub        int
	companions []companion
}

// Run processes every row of t. Per-cell failures are reported, never
// returned; the returned error is non-nil only when the question column is
// missing or ctx is cancelled.
func Run(ctx context.Context, t *document.Table, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &runner{
		opts:     opts,
		table:    t.Clone(),
		question: t.ColumnIndex(opts.QuestionColumn),
		tub:      t.ColumnIndex(opts.TUBColumn),
	}
	if r.question < 0 {
		return nil, fmt.Errorf("question column %q not found in table", opts.QuestionColumn)
	}
	r.addCompanion(columns.ColumnTUB, opts.TUBColumn, columns.NormalizeTUB)
	r.addCompanion(columns.ColumnSubject, opts.SubjectColumn, columns.NormalizeSubject)
	r.addCompanion(columns.ColumnQues, opts.QuesColumn, columns.NormalizeQues)
	r.addCompanion(columns.ColumnLOD, opts.LODColumn, columns.ValidateLOD)

	runID := uuid.NewString()
	r.logger = logger.With("run", runID)

	results := make([]cellResult, len(r.table.Rows))
	p := pool.New(pool.Config{Name: "cells", Logger: r.logger, WorkerCount: opts.Workers})
	err := p.Run(ctx, len(results), func(ctx context.Context, i int) error {
		results[i] = r.process(i)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch cancelled in %s pool: %w", p.Name(), err)
	}

	out := r.apply(results)
	out.RunID = runID

	status := p.Status()
	r.logger.Info("batch finished",
		"rows", status.Completed,
		"workers", status.Workers,
		"questions", out.Stats.Questions,
		"clean", out.Stats.Clean,
		"parse", out.Stats.Parse,
		"structure", out.Stats.Structure,
		"corrections", out.Stats.Corrections)
	return out, nil
}

func (r *runner) addCompanion(column, name string, normalize func(string) (string, error)) {
	idx := r.table.ColumnIndex(name)
	if idx < 0 || idx == r.question {
		return
	}
	r.companions = append(r.companions, companion{
		field:     columns.FieldOf(column),
		column:    idx,
		normalize: normalize,
	})
}

// process reads row i. It only reads the table.
func (r *runner) process(i int) cellResult {
	text := r.table.Text(i, r.question)
	if strings.TrimSpace(text) == "" {
		return cellResult{blank: true}
	}

	res := cellResult{companions: make([]companionValue, len(r.companions))}
	hint := question.RoundUnknown
	for k, c := range r.companions {
		raw := r.table.Text(i, c.column)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v := companionValue{checked: true}
		var err error
		v.text, err = c.normalize(raw)
		if !errors.As(err, &v.err) && c.column == r.tub {
			hint = columns.RoundOf(v.text)
		}
		res.companions[k] = v
	}

	res.result = question.Process(text, hint)
	return res
}

// apply writes text back in row order, runs the linter over every defect
// and then applies the linter's highlights.
func (r *runner) apply(results []cellResult) *Outcome {
	out := &Outcome{Table: r.table}
	l := lint.New(r.opts.Colors)

	for i, res := range results {
		if res.blank {
			out.Stats.Blank++
			continue
		}
		out.Stats.Questions++

		cell := r.table.Cell(i, r.question)
		if res.result.Formatted() {
			cell.Text = res.result.Text
		}
		cell.Highlight = ""
		if res.result.Err != nil {
			l.AddError(i, res.result.Err)
		} else {
			out.Stats.Clean++
		}

		for _, c := range res.result.Corrections {
			r.logger.Info("corrected question", "question", i+1, "kind", c.Kind, "message", c.Message)
			out.Fixes = append(out.Fixes, Fix{Index: i, Correction: c})
		}

		for k, v := range res.companions {
			if !v.checked {
				continue
			}
			cell := r.table.Cell(i, r.companions[k].column)
			cell.Highlight = ""
			switch {
			case v.err != nil:
				l.Add(v.err.Defect(i))
			case r.opts.NormalizeColumns:
				cell.Text = v.text
			}
		}
	}

	out.Report = l.Report()
	r.highlight(out.Report.Highlights)
	out.Stats.Parse, out.Stats.Structure = out.Report.Count()
	out.Stats.Corrections = len(out.Fixes)
	return out
}

// highlight colors the cell each highlight points at. Companion fields map
// to their column; every other field is part of the question cell.
func (r *runner) highlight(hs []lint.Highlight) {
	for _, h := range hs {
		col := r.question
		for _, c := range r.companions {
			if c.field == h.Field {
				col = c.column
				break
			}
		}
		if cell := r.table.Cell(h.Index, col); cell != nil {
			cell.Highlight = string(h.Color)
		}
	}
}
