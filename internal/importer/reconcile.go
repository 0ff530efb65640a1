// Package importer reconciles bulk-import rows against the roster.
//
// Each row goes through header alias resolution, required-field checks, the
// NIM codec, GPA and program/cohort cross-checks, normalization and the
// duplicate check, strictly in input order. A bad row is recorded in the
// Summary and never stops the batch. Accepted rows are committed to the
// store together, with a single save.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/aanand-mishra/students-roster/internal/normalize"
	"github.com/aanand-mishra/students-roster/internal/rows"
	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/aanand-mishra/students-roster/internal/validation"
)

// Default cohort year bounds, used when Options leaves both at zero.
const (
	DefaultMinCohortYear = 2000
	DefaultMaxCohortYear = 2025
)

// Options tunes a Reconciler.
type Options struct {
	// MinCohortYear and MaxCohortYear bound a declared cohort year.
	MinCohortYear int
	MaxCohortYear int

	// DryRun validates every row and fills the Summary, but discards the
	// accepted rows instead of committing them.
	DryRun bool
}

// Reconciler imports rows into a Store.
type Reconciler struct {
	store      *store.Store
	normalizer *normalize.Normalizer
	validator  *validation.Validator
	opts       Options
	log        *slog.Logger
}

// New returns a Reconciler. validator may be nil, in which case the e-mail
// format of imported rows is not checked.
func New(st *store.Store, n *normalize.Normalizer, v *validation.Validator, opts Options, log *slog.Logger) *Reconciler {
	if n == nil {
		n = normalize.New(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	if opts.MinCohortYear == 0 && opts.MaxCohortYear == 0 {
		opts.MinCohortYear, opts.MaxCohortYear = DefaultMinCohortYear, DefaultMaxCohortYear
	}
	return &Reconciler{store: st, normalizer: n, validator: v, opts: opts, log: log}
}

var errDryRun = errors.New("dry run")

// Reconcile runs the import pass over rs. The returned error is only set
// when committing the batch fails; row-level problems end up in the
// Summary.
func (r *Reconciler) Reconcile(rs []rows.Row) (Summary, error) {
	const op = "importer.Reconcile"

	sum := Summary{BatchID: uuid.New(), Total: len(rs)}
	log := r.log.With(slog.String("op", op), slog.String("batch_id", sum.BatchID.String()))

	_, err := r.store.Batch(func(b *store.Batch) error {
		for _, row := range rs {
			r.reconcileRow(b, row, &sum)
		}
		if r.opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		log.Error("failed to commit import", slog.String("error", err.Error()))
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	sum.FinishedAt = time.Now()
	log.Info("import reconciled",
		slog.Int("rows", sum.Total),
		slog.Int("imported", sum.Imported),
		slog.Int("duplicate", sum.Duplicate),
		slog.Int("invalid", sum.Invalid),
		slog.Bool("dry_run", r.opts.DryRun),
	)
	return sum, nil
}

func (r *Reconciler) reconcileRow(b *store.Batch, row rows.Row, sum *Summary) {
	fields := resolve(row.Fields, sortedKeys(row.Fields))

	rec, err := r.check(fields)
	if err != nil {
		sum.Invalid++
		sum.Errors = append(sum.Errors, errorLine(row.Label, fields[FieldNIM], err))
		return
	}

	if b.IsDuplicate(rec.Name, rec.StudentID) {
		sum.Duplicate++
		r.log.Debug("duplicate row skipped", slog.String("row", row.Label), slog.String("nim", rec.StudentID))
		return
	}

	b.Append(rec)
	sum.Imported++
}

// check turns resolved fields into a normalized record, or returns the
// first problem found.
func (r *Reconciler) check(fields map[string]string) (types.Student, error) {
	var missing apperr.List
	if fields[FieldName] == "" {
		missing = missing.Add(apperr.Required(FieldName))
	}
	if fields[FieldNIM] == "" {
		missing = missing.Add(apperr.Required(FieldNIM))
	}
	if err := missing.OrNil(); err != nil {
		return types.Student{}, err
	}

	res := r.normalizer.Codec().Validate(fields[FieldNIM])
	if !res.Valid {
		return types.Student{}, res.Err
	}

	if fields[FieldAddress] == "" {
		return types.Student{}, apperr.Required(FieldAddress)
	}

	gpa, err := normalize.ParseGPA(fields[FieldGPA])
	if err != nil {
		return types.Student{}, err
	}

	if err := r.normalizer.CheckProgram(res, fields[FieldProgram]); err != nil {
		return types.Student{}, err
	}

	if err := r.checkCohort(fields[FieldCohort]); err != nil {
		return types.Student{}, err
	}
	if err := r.normalizer.CheckCohort(res, fields[FieldCohort]); err != nil {
		return types.Student{}, err
	}

	rec := types.Student{
		Name:       fields[FieldName],
		StudentID:  res.NormalizedID,
		Program:    fields[FieldProgram],
		CohortYear: fields[FieldCohort],
		Address:    fields[FieldAddress],
		Email:      fields[FieldEmail],
		GPA:        gpa,
		Notes:      fields[FieldNotes],
		Gender:     normalize.Gender(fields[FieldGender]),
		Photo:      fields[FieldPhoto],
	}

	rec, err = r.normalizer.Normalize(rec)
	if err != nil {
		return types.Student{}, err
	}

	if r.validator != nil {
		if err := r.validator.Struct(rec); err != nil {
			return types.Student{}, err
		}
	}
	return rec, nil
}

// checkCohort enforces the shape and configured bounds of a declared cohort
// year. A blank value passes.
func (r *Reconciler) checkCohort(cohort string) error {
	if cohort == "" {
		return nil
	}
	if !isFourDigits(cohort) {
		return apperr.Format(FieldCohort, "cohort year '%s' must be a 4-digit year", cohort)
	}
	year, _ := strconv.Atoi(cohort)
	if year < r.opts.MinCohortYear || year > r.opts.MaxCohortYear {
		return apperr.Range(FieldCohort, "cohort year %d is outside the range %d-%d",
			year, r.opts.MinCohortYear, r.opts.MaxCohortYear)
	}
	return nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func errorLine(label, studentID string, err error) string {
	if studentID == "" {
		return fmt.Sprintf("%s: %s", label, err.Error())
	}
	return fmt.Sprintf("%s (%s): %s", label, studentID, err.Error())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
