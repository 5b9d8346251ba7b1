package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CANCELAR MATRICULA COMMAND
// Cancels an enrollment from any non-completed state. The reason, when given,
// is appended to the enrollment notes.
// ══════════════════════════════════════════════════════════════════════════════

// CancelarMatriculaCommand contains the data to cancel an enrollment.
type CancelarMatriculaCommand struct {
	// MatriculaID is the enrollment to cancel.
	MatriculaID string

	// Motivo is the cancellation reason, optional.
	Motivo string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c CancelarMatriculaCommand) Validate() error {
	if c.MatriculaID == "" {
		return errors.New("cancelar_matricula: matricula_id is required")
	}
	return nil
}

// CancelarMatriculaResult contains the result of the cancellation.
type CancelarMatriculaResult struct {
	MatriculaID string
	AlunoID     string
	CursoID     string
	Status      matricula.Status
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CancelarMatriculaHandler handles the CancelarMatriculaCommand.
type CancelarMatriculaHandler struct {
	matriculaRepo matricula.Repository
	cache         aluno.Cache
	publisher     shared.EventPublisher
}

// NewCancelarMatriculaHandler creates a new CancelarMatriculaHandler.
func NewCancelarMatriculaHandler(
	matriculaRepo matricula.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
) *CancelarMatriculaHandler {
	return &CancelarMatriculaHandler{
		matriculaRepo: matriculaRepo,
		cache:         cache,
		publisher:     publisher,
	}
}

// Handle executes the cancellation command.
func (h *CancelarMatriculaHandler) Handle(ctx context.Context, cmd CancelarMatriculaCommand) (*CancelarMatriculaResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("cancelar_matricula: validation failed: %w", err)
	}

	m, err := h.matriculaRepo.GetByID(ctx, cmd.MatriculaID)
	if err != nil {
		return nil, fmt.Errorf("cancelar_matricula: failed to get matricula: %w", err)
	}

	if err := m.Cancelar(cmd.Motivo); err != nil {
		return nil, err
	}

	if err := h.matriculaRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("cancelar_matricula: failed to update matricula: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, m.AlunoID)
	}

	event := shared.NewMatriculaCanceladaEvent(m.ID, m.AlunoID, m.CursoID, cmd.Motivo)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(event)

	return &CancelarMatriculaResult{
		MatriculaID: m.ID,
		AlunoID:     m.AlunoID,
		CursoID:     m.CursoID,
		Status:      m.Status,
	}, nil
}
