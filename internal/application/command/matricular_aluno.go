package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATRICULAR ALUNO COMMAND
// Enrolls an active student in a course. One enrollment per student+course;
// the aggregate root enforces the invariant before anything hits the database.
// ══════════════════════════════════════════════════════════════════════════════

// MatricularAlunoCommand contains the data to create an enrollment.
type MatricularAlunoCommand struct {
	// AlunoID is the internal ID of the student.
	AlunoID string

	// CursoID identifies the course being enrolled in.
	CursoID string

	// DataInicio is the course start date. At most 30 days in the past.
	DataInicio time.Time

	// ValorPago is the amount paid (0-999999.99).
	ValorPago float64

	// FormaPagamento is the payment method label, optional.
	FormaPagamento string

	// Observacoes is free-form text, optional.
	Observacoes string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c MatricularAlunoCommand) Validate() error {
	if c.AlunoID == "" {
		return errors.New("matricular_aluno: aluno_id is required")
	}
	if c.CursoID == "" {
		return errors.New("matricular_aluno: curso_id is required")
	}
	if c.DataInicio.IsZero() {
		return errors.New("matricular_aluno: data_inicio is required")
	}
	return nil
}

// MatricularAlunoResult contains the result of the enrollment.
type MatricularAlunoResult struct {
	MatriculaID   string
	AlunoID       string
	CursoID       string
	Status        matricula.Status
	DataMatricula time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// MatricularAlunoHandler handles the MatricularAlunoCommand.
type MatricularAlunoHandler struct {
	alunoRepo     aluno.Repository
	matriculaRepo matricula.Repository
	cache         aluno.Cache
	publisher     shared.EventPublisher
}

// NewMatricularAlunoHandler creates a new MatricularAlunoHandler.
func NewMatricularAlunoHandler(
	alunoRepo aluno.Repository,
	matriculaRepo matricula.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
) *MatricularAlunoHandler {
	return &MatricularAlunoHandler{
		alunoRepo:     alunoRepo,
		matriculaRepo: matriculaRepo,
		cache:         cache,
		publisher:     publisher,
	}
}

// Handle executes the enrollment command.
func (h *MatricularAlunoHandler) Handle(ctx context.Context, cmd MatricularAlunoCommand) (*MatricularAlunoResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("matricular_aluno: validation failed: %w", err)
	}

	a, err := h.alunoRepo.GetByID(ctx, cmd.AlunoID)
	if err != nil {
		return nil, fmt.Errorf("matricular_aluno: failed to get aluno: %w", err)
	}

	m, err := matricula.NovaMatricula(matricula.NovaMatriculaParams{
		AlunoID:        a.ID,
		CursoID:        cmd.CursoID,
		DataInicio:     cmd.DataInicio,
		ValorPago:      cmd.ValorPago,
		FormaPagamento: cmd.FormaPagamento,
		Observacoes:    cmd.Observacoes,
	})
	if err != nil {
		return nil, err
	}

	// Inactive aluno and duplicate course are rejected here, by the root.
	if err := a.AdicionarMatricula(m); err != nil {
		return nil, err
	}

	if err := h.matriculaRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("matricular_aluno: failed to create matricula: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, a.ID)
	}

	event := shared.NewMatriculaCriadaEvent(m.ID, m.AlunoID, m.CursoID, m.ValorPago)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(event)

	return &MatricularAlunoResult{
		MatriculaID:   m.ID,
		AlunoID:       m.AlunoID,
		CursoID:       m.CursoID,
		Status:        m.Status,
		DataMatricula: m.DataMatricula,
	}, nil
}
