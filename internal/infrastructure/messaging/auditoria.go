package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/historico"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
	"github.com/educahub/educa-learning-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUDIT SUBSCRIBER
// ══════════════════════════════════════════════════════════════════════════════

// AuditoriaSubscriber listens to domain events and appends audit records
// to the student history. Subscribes to the event types that represent
// student-visible lifecycle changes; infrastructure events are ignored.
type AuditoriaSubscriber struct {
	repo    historico.Repository
	logger  *logger.Logger
	timeout time.Duration
}

// AuditoriaSubscriberConfig contains configuration for AuditoriaSubscriber.
type AuditoriaSubscriberConfig struct {
	// Repository used to append history records
	Repository historico.Repository

	// Timeout for each append (default: 10s)
	Timeout time.Duration

	// Logger for structured logging
	Logger *logger.Logger
}

// NewAuditoriaSubscriber creates a new audit subscriber.
func NewAuditoriaSubscriber(config AuditoriaSubscriberConfig) (*AuditoriaSubscriber, error) {
	if config.Repository == nil {
		return nil, fmt.Errorf("history repository is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = logger.Default().With(logger.Component("auditoria"))
	}

	return &AuditoriaSubscriber{
		repo:    config.Repository,
		logger:  config.Logger,
		timeout: config.Timeout,
	}, nil
}

// Attach subscribes the auditor to the relevant event types on the bus.
func (s *AuditoriaSubscriber) Attach(bus shared.EventSubscriber) error {
	eventTypes := []shared.EventType{
		shared.EventAlunoCadastrado,
		shared.EventMatriculaCriada,
		shared.EventMatriculaConcluida,
		shared.EventAulaConcluida,
		shared.EventCertificadoEmitido,
	}

	for _, et := range eventTypes {
		if err := bus.Subscribe(et, s.Handle); err != nil {
			return fmt.Errorf("subscribe %s: %w", et, err)
		}
	}

	return nil
}

// Handle converts a domain event into an audit record and persists it.
func (s *AuditoriaSubscriber) Handle(event shared.Event) error {
	registro, err := s.registroPara(event)
	if err != nil {
		return err
	}
	if registro == nil {
		// Event type carries no audit semantics
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.repo.Append(ctx, registro); err != nil {
		s.logger.Error("failed to append audit record",
			logger.String("event_type", string(event.EventType())),
			logger.AlunoID(registro.AlunoID),
			logger.Err(err),
		)
		return fmt.Errorf("append audit record: %w", err)
	}

	s.logger.Debug("audit record appended",
		logger.String("event_type", string(event.EventType())),
		logger.AlunoID(registro.AlunoID),
		logger.String("acao", registro.Acao),
	)

	return nil
}

// registroPara builds the audit record for a given event.
// The payload keys follow the event constructors in the shared package.
func (s *AuditoriaSubscriber) registroPara(event shared.Event) (*historico.HistoricoAluno, error) {
	payload := event.Payload()

	switch event.EventType() {
	case shared.EventAlunoCadastrado:
		return historico.NovoCadastro(event.AggregateID(), payloadString(payload, "nome"), historico.Contexto{})

	case shared.EventMatriculaCriada:
		return historico.NovaMatriculaRealizada(
			payloadString(payload, "aluno_id"),
			payloadString(payload, "matricula_id"),
			payloadString(payload, "curso_id"),
			historico.Contexto{},
		)

	case shared.EventMatriculaConcluida:
		return historico.NovaConclusaoCurso(
			payloadString(payload, "aluno_id"),
			payloadString(payload, "matricula_id"),
			payloadString(payload, "curso_id"),
			historico.Contexto{},
		)

	case shared.EventAulaConcluida:
		return historico.NovoAcessoAula(
			payloadString(payload, "aluno_id"),
			payloadString(payload, "matricula_id"),
			payloadString(payload, "aula_id"),
			historico.Contexto{},
		)

	case shared.EventCertificadoEmitido:
		return historico.NovaCertificacao(
			payloadString(payload, "aluno_id"),
			payloadString(payload, "certificado_id"),
			payloadString(payload, "codigo"),
			historico.Contexto{},
		)
	}

	return nil, nil
}

func payloadString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
