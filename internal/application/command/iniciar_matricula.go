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
// INICIAR MATRICULA COMMAND
// Moves an enrollment from Ativa to EmAndamento. Lesson progress is only
// accepted after this transition.
// ══════════════════════════════════════════════════════════════════════════════

// IniciarMatriculaCommand contains the data to start an enrollment.
type IniciarMatriculaCommand struct {
	// MatriculaID is the enrollment to start.
	MatriculaID string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c IniciarMatriculaCommand) Validate() error {
	if c.MatriculaID == "" {
		return errors.New("iniciar_matricula: matricula_id is required")
	}
	return nil
}

// IniciarMatriculaResult contains the result of starting the enrollment.
type IniciarMatriculaResult struct {
	MatriculaID string
	AlunoID     string
	CursoID     string
	Status      matricula.Status
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// IniciarMatriculaHandler handles the IniciarMatriculaCommand.
type IniciarMatriculaHandler struct {
	matriculaRepo matricula.Repository
	cache         aluno.Cache
	publisher     shared.EventPublisher
}

// NewIniciarMatriculaHandler creates a new IniciarMatriculaHandler.
func NewIniciarMatriculaHandler(
	matriculaRepo matricula.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
) *IniciarMatriculaHandler {
	return &IniciarMatriculaHandler{
		matriculaRepo: matriculaRepo,
		cache:         cache,
		publisher:     publisher,
	}
}

// Handle executes the start command.
func (h *IniciarMatriculaHandler) Handle(ctx context.Context, cmd IniciarMatriculaCommand) (*IniciarMatriculaResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("iniciar_matricula: validation failed: %w", err)
	}

	m, err := h.matriculaRepo.GetByID(ctx, cmd.MatriculaID)
	if err != nil {
		return nil, fmt.Errorf("iniciar_matricula: failed to get matricula: %w", err)
	}

	if err := m.Iniciar(); err != nil {
		return nil, err
	}

	if err := h.matriculaRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("iniciar_matricula: failed to update matricula: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, m.AlunoID)
	}

	event := shared.NewMatriculaIniciadaEvent(m.ID, m.AlunoID, m.CursoID)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(event)

	return &IniciarMatriculaResult{
		MatriculaID: m.ID,
		AlunoID:     m.AlunoID,
		CursoID:     m.CursoID,
		Status:      m.Status,
	}, nil
}
