// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CADASTRAR ALUNO COMMAND
// Registers a new student profile. The aluno starts active and with no
// matriculas; enrollment is a separate command.
// ══════════════════════════════════════════════════════════════════════════════

// CadastrarAlunoCommand contains the data to register a student.
type CadastrarAlunoCommand struct {
	// RefAutenticacao is the external auth provider reference.
	RefAutenticacao string

	// Nome is the student's full name (2-100 characters).
	Nome string

	// Email is the contact e-mail, normalized by the domain.
	Email string

	// DataNascimento is the birth date; derived age must be 16-100.
	DataNascimento time.Time

	// Optional profile fields.
	Telefone string
	Genero   string
	Cidade   string
	Estado   string
	CEP      string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c CadastrarAlunoCommand) Validate() error {
	if c.Nome == "" {
		return errors.New("cadastrar_aluno: nome is required")
	}
	if c.Email == "" {
		return errors.New("cadastrar_aluno: email is required")
	}
	if c.DataNascimento.IsZero() {
		return errors.New("cadastrar_aluno: data_nascimento is required")
	}
	return nil
}

// CadastrarAlunoResult contains the result of the registration.
type CadastrarAlunoResult struct {
	AlunoID      string
	Nome         string
	Email        string
	CadastradoEm time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CadastrarAlunoHandler handles the CadastrarAlunoCommand.
type CadastrarAlunoHandler struct {
	alunoRepo aluno.Repository
	cache     aluno.Cache
	publisher shared.EventPublisher
}

// NewCadastrarAlunoHandler creates a new CadastrarAlunoHandler.
// The cache is optional; pass nil to skip cache warming.
func NewCadastrarAlunoHandler(
	alunoRepo aluno.Repository,
	cache aluno.Cache,
	publisher shared.EventPublisher,
) *CadastrarAlunoHandler {
	return &CadastrarAlunoHandler{
		alunoRepo: alunoRepo,
		cache:     cache,
		publisher: publisher,
	}
}

// Handle executes the registration command.
func (h *CadastrarAlunoHandler) Handle(ctx context.Context, cmd CadastrarAlunoCommand) (*CadastrarAlunoResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("cadastrar_aluno: validation failed: %w", err)
	}

	a, err := aluno.NovoAluno(aluno.NovoAlunoParams{
		RefAutenticacao: cmd.RefAutenticacao,
		Nome:            cmd.Nome,
		Email:           cmd.Email,
		DataNascimento:  cmd.DataNascimento,
		Telefone:        cmd.Telefone,
		Genero:          cmd.Genero,
		Cidade:          cmd.Cidade,
		Estado:          cmd.Estado,
		CEP:             cmd.CEP,
	})
	if err != nil {
		return nil, err
	}

	if err := h.alunoRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("cadastrar_aluno: failed to create aluno: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, a)
	}

	event := shared.NewAlunoCadastradoEvent(a.ID, a.Nome, string(a.Email))
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.publisher.Publish(event)

	return &CadastrarAlunoResult{
		AlunoID:      a.ID,
		Nome:         a.Nome,
		Email:        string(a.Email),
		CadastradoEm: a.CriadoEm,
	}, nil
}
