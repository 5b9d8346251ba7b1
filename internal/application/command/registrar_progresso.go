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
// REGISTRAR PROGRESSO COMMAND
// Records watched percentage and time for one lesson of an in-progress
// enrollment. The lesson auto-starts on first update and auto-completes at
// 100%. Updates to an already completed lesson are no-ops.
// ══════════════════════════════════════════════════════════════════════════════

// RegistrarProgressoCommand contains the data to record lesson progress.
type RegistrarProgressoCommand struct {
	// MatriculaID is the enrollment the lesson belongs to.
	MatriculaID string

	// AulaID identifies the lesson.
	AulaID string

	// PercentualAssistido is the watched percentage (0-100).
	PercentualAssistido float64

	// TempoAssistidoSegundos is the watched time in seconds (0-86400).
	TempoAssistidoSegundos int

	// TotalAulasCurso, when positive, recomputes the enrollment completion
	// percentage as completed lessons over this total.
	TotalAulasCurso int

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c RegistrarProgressoCommand) Validate() error {
	if c.MatriculaID == "" {
		return errors.New("registrar_progresso: matricula_id is required")
	}
	if c.AulaID == "" {
		return errors.New("registrar_progresso: aula_id is required")
	}
	if c.PercentualAssistido < 0 || c.PercentualAssistido > 100 {
		return errors.New("registrar_progresso: percentual must be between 0 and 100")
	}
	if c.TempoAssistidoSegundos < 0 {
		return errors.New("registrar_progresso: tempo assistido cannot be negative")
	}
	return nil
}

// RegistrarProgressoResult contains the result of the progress update.
type RegistrarProgressoResult struct {
	MatriculaID         string
	AulaID              string
	StatusAula          matricula.StatusProgresso
	AulaConcluida       bool
	AulasConcluidas     int
	PercentualConclusao float64
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RegistrarProgressoHandler handles the RegistrarProgressoCommand.
type RegistrarProgressoHandler struct {
	matriculaRepo matricula.Repository
	cache         aluno.Cache
	publisher     shared.EventPublisher
}

// NewRegistrarProgressoHandler creates a new RegistrarProgressoHandler.
func NewRegistrarProgressoHandler(
	matriculaRepo matricula.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
) *RegistrarProgressoHandler {
	return &RegistrarProgressoHandler{
		matriculaRepo: matriculaRepo,
		cache:         cache,
		publisher:     publisher,
	}
}

// Handle executes the progress command.
func (h *RegistrarProgressoHandler) Handle(ctx context.Context, cmd RegistrarProgressoCommand) (*RegistrarProgressoResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("registrar_progresso: validation failed: %w", err)
	}

	m, err := h.matriculaRepo.GetByID(ctx, cmd.MatriculaID)
	if err != nil {
		return nil, fmt.Errorf("registrar_progresso: failed to get matricula: %w", err)
	}

	p := m.BuscarProgressoPorAula(cmd.AulaID)
	if p == nil {
		p, err = matricula.NovoProgresso(m.ID, cmd.AulaID)
		if err != nil {
			return nil, err
		}
		if err := m.AdicionarProgresso(p); err != nil {
			return nil, err
		}
	}

	jaConcluida := p.EstaConcluida()
	if err := p.AtualizarProgresso(cmd.PercentualAssistido, cmd.TempoAssistidoSegundos); err != nil {
		return nil, err
	}
	concluiuAgora := !jaConcluida && p.EstaConcluida()

	if cmd.TotalAulasCurso > 0 {
		percentual := float64(m.AulasConcluidas()) / float64(cmd.TotalAulasCurso) * 100
		if percentual > 100 {
			percentual = 100
		}
		if err := m.AtualizarPercentualConclusao(percentual); err != nil {
			return nil, err
		}
	}

	if err := h.matriculaRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("registrar_progresso: failed to update matricula: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, m.AlunoID)
	}

	if concluiuAgora {
		event := shared.NewAulaConcluidaEvent(m.ID, cmd.AulaID, m.AlunoID)
		if cmd.CorrelationID != "" {
			event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(event)
	}

	return &RegistrarProgressoResult{
		MatriculaID:         m.ID,
		AulaID:              cmd.AulaID,
		StatusAula:          p.Status,
		AulaConcluida:       p.EstaConcluida(),
		AulasConcluidas:     m.AulasConcluidas(),
		PercentualConclusao: m.PercentualConclusao,
	}, nil
}
