package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/evalflow/internal/analytics"
	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/riemann"
	"github.com/spacesedan/evalflow/internal/sales"
)

const DefaultWordLimit = 20

type RiemannParams struct {
	Function string
	A        float64
	B        float64
	N        int
	Rule     models.SamplingRule
}

// Session holds one user's selections. It is created per invocation and
// handed to every handler; nothing here is shared between sessions.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	Programs  []string
	Student   string
	WordLimit int

	Riemann RiemannParams
	Sales   sales.Filter
}

func New() *Session {
	first := riemann.Functions()[0]
	s := &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		WordLimit: DefaultWordLimit,
		Riemann: RiemannParams{
			Function: first.Name,
			A:        first.DefaultA,
			B:        first.DefaultB,
			N:        10,
			Rule:     models.RuleMidpoint,
		},
	}
	slog.Debug("[Session] started", slog.String("session_id", s.ID.String()))
	return s
}

// SelectedRecords narrows records to the selected programs.
func (s *Session) SelectedRecords(records []models.RecodedRecord) []models.RecodedRecord {
	return analytics.FilterByProgram(records, s.Programs)
}

func (s *Session) SelectedStudent(records []models.RecodedRecord) (models.RecodedRecord, error) {
	if s.Student == "" {
		return models.RecodedRecord{}, fmt.Errorf("[Session] no student selected")
	}
	rec, ok := analytics.FindStudent(s.SelectedRecords(records), s.Student)
	if !ok {
		return models.RecodedRecord{}, fmt.Errorf("[Session] student %q not found", s.Student)
	}
	return rec, nil
}

func (s *Session) SelectedSales(all []models.Sale) []models.Sale {
	return s.Sales.Apply(all)
}

// Approximation runs the Riemann sum for the current parameters. Errors are
// the typed riemann errors.
func (s *Session) Approximation() (models.RiemannApproximation, riemann.Function, error) {
	fn, err := riemann.Lookup(s.Riemann.Function)
	if err != nil {
		return models.RiemannApproximation{}, riemann.Function{}, err
	}
	res, err := riemann.Approximate(fn, s.Riemann.A, s.Riemann.B, s.Riemann.N, s.Riemann.Rule)
	if err != nil {
		return models.RiemannApproximation{}, fn, err
	}
	return res, fn, nil
}
