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
// CONCLUIR MATRICULA COMMAND
// Completes an in-progress enrollment, pinning completion at 100% and the end
// date at now. Optionally issues the certificate in the same unit of work.
// ══════════════════════════════════════════════════════════════════════════════

// ConcluirMatriculaCommand contains the data to complete an enrollment.
type ConcluirMatriculaCommand struct {
	// MatriculaID is the enrollment to complete.
	MatriculaID string

	// NotaFinal is the optional final grade (0-10).
	NotaFinal *float64

	// NomeCurso, CargaHoraria and NomeInstrutor describe the course for the
	// certificate. Required only when certificate issuing is enabled.
	NomeCurso     string
	CargaHoraria  int
	NomeInstrutor string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c ConcluirMatriculaCommand) Validate() error {
	if c.MatriculaID == "" {
		return errors.New("concluir_matricula: matricula_id is required")
	}
	return nil
}

// ConcluirMatriculaResult contains the result of the completion.
type ConcluirMatriculaResult struct {
	MatriculaID        string
	AlunoID            string
	CursoID            string
	Status             matricula.Status
	NotaFinal          *float64
	DataTermino        *time.Time
	CertificadoEmitido bool
	CertificadoCodigo  string
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ConcluirMatriculaHandlerConfig contains configuration for the handler.
type ConcluirMatriculaHandlerConfig struct {
	// EmitirCertificado issues the certificate automatically on completion.
	EmitirCertificado bool

	// ValidadeCertificadoDias is the certificate validity window in days.
	// Values <= 0 issue certificates without expiry.
	ValidadeCertificadoDias int
}

// DefaultConcluirMatriculaHandlerConfig returns default configuration.
func DefaultConcluirMatriculaHandlerConfig() ConcluirMatriculaHandlerConfig {
	return ConcluirMatriculaHandlerConfig{
		EmitirCertificado:       false,
		ValidadeCertificadoDias: matricula.ValidadeDiasPadrao,
	}
}

// ConcluirMatriculaHandler handles the ConcluirMatriculaCommand.
type ConcluirMatriculaHandler struct {
	alunoRepo     aluno.Repository
	matriculaRepo matricula.Repository
	cache         aluno.Cache
	publisher     shared.EventPublisher
	config        ConcluirMatriculaHandlerConfig
}

// NewConcluirMatriculaHandler creates a new ConcluirMatriculaHandler.
func NewConcluirMatriculaHandler(
	alunoRepo aluno.Repository,
	matriculaRepo matricula.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
	config ConcluirMatriculaHandlerConfig,
) *ConcluirMatriculaHandler {
	return &ConcluirMatriculaHandler{
		alunoRepo:     alunoRepo,
		matriculaRepo: matriculaRepo,
		cache:         cache,
		publisher:     publisher,
		config:        config,
	}
}

// Handle executes the completion command.
func (h *ConcluirMatriculaHandler) Handle(ctx context.Context, cmd ConcluirMatriculaCommand) (*ConcluirMatriculaResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("concluir_matricula: validation failed: %w", err)
	}

	m, err := h.matriculaRepo.GetByID(ctx, cmd.MatriculaID)
	if err != nil {
		return nil, fmt.Errorf("concluir_matricula: failed to get matricula: %w", err)
	}

	if err := m.Concluir(cmd.NotaFinal); err != nil {
		return nil, err
	}

	result := &ConcluirMatriculaResult{
		MatriculaID: m.ID,
		AlunoID:     m.AlunoID,
		CursoID:     m.CursoID,
		Status:      m.Status,
		NotaFinal:   m.NotaFinal,
		DataTermino: m.DataTermino,
	}

	var cert *matricula.Certificado
	if h.config.EmitirCertificado {
		a, err := h.alunoRepo.GetByID(ctx, m.AlunoID)
		if err != nil {
			return nil, fmt.Errorf("concluir_matricula: failed to get aluno: %w", err)
		}

		cert, err = matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
			MatriculaID:   m.ID,
			NomeCurso:     cmd.NomeCurso,
			NomeAluno:     a.Nome,
			CargaHoraria:  cmd.CargaHoraria,
			NotaFinal:     m.NotaFinal,
			NomeInstrutor: cmd.NomeInstrutor,
			ValidadeDias:  h.config.ValidadeCertificadoDias,
		})
		if err != nil {
			return nil, err
		}
		if err := m.AdicionarCertificado(cert); err != nil {
			return nil, err
		}
	}

	if err := h.matriculaRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("concluir_matricula: failed to update matricula: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, m.AlunoID)
	}

	conclusao := shared.NewMatriculaConcluidaEvent(m.ID, m.AlunoID, m.CursoID, m.NotaFinal)
	if cmd.CorrelationID != "" {
		conclusao.BaseEvent = conclusao.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(conclusao)

	if cert != nil {
		emissao := shared.NewCertificadoEmitidoEvent(cert.ID, m.ID, m.AlunoID, cert.Codigo)
		if cmd.CorrelationID != "" {
			emissao.BaseEvent = emissao.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(emissao)

		result.CertificadoEmitido = true
		result.CertificadoCodigo = cert.Codigo
	}

	return result, nil
}
