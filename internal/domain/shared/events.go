// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened during the enrollment lifecycle.
const (
	// Aluno events
	EventAlunoCadastrado  EventType = "aluno.cadastrado"
	EventAlunoAtualizado  EventType = "aluno.atualizado"
	EventAlunoAtivado     EventType = "aluno.ativado"
	EventAlunoDesativado  EventType = "aluno.desativado"

	// Matricula events
	EventMatriculaCriada    EventType = "matricula.criada"
	EventMatriculaIniciada  EventType = "matricula.iniciada"
	EventMatriculaConcluida EventType = "matricula.concluida"
	EventMatriculaCancelada EventType = "matricula.cancelada"
	EventMatriculaSuspensa  EventType = "matricula.suspensa"
	EventMatriculaReativada EventType = "matricula.reativada"

	// Progresso events
	EventAulaIniciada        EventType = "progresso.aula_iniciada"
	EventProgressoAtualizado EventType = "progresso.atualizado"
	EventAulaConcluida       EventType = "progresso.aula_concluida"

	// Certificado events
	EventCertificadoEmitido  EventType = "certificado.emitido"
	EventCertificadoRevogado EventType = "certificado.revogado"
	EventCertificadoExpirado EventType = "certificado.expirado"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Aluno Events
// ═══════════════════════════════════════════════════════════════════════════

// AlunoCadastradoEvent is emitted when a new student registers.
type AlunoCadastradoEvent struct {
	BaseEvent
	AlunoID string `json:"aluno_id"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
}

// Payload implements Event interface.
func (e AlunoCadastradoEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"aluno_id": e.AlunoID,
		"nome":     e.Nome,
		"email":    e.Email,
	}
}

// NewAlunoCadastradoEvent creates a new AlunoCadastradoEvent.
func NewAlunoCadastradoEvent(alunoID, nome, email string) AlunoCadastradoEvent {
	return AlunoCadastradoEvent{
		BaseEvent: NewBaseEvent(EventAlunoCadastrado, alunoID),
		AlunoID:   alunoID,
		Nome:      nome,
		Email:     email,
	}
}

// AlunoDesativadoEvent is emitted when a student is deactivated.
type AlunoDesativadoEvent struct {
	BaseEvent
	AlunoID string `json:"aluno_id"`
}

// Payload implements Event interface.
func (e AlunoDesativadoEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"aluno_id": e.AlunoID}
}

// NewAlunoDesativadoEvent creates a new AlunoDesativadoEvent.
func NewAlunoDesativadoEvent(alunoID string) AlunoDesativadoEvent {
	return AlunoDesativadoEvent{
		BaseEvent: NewBaseEvent(EventAlunoDesativado, alunoID),
		AlunoID:   alunoID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Matricula Events
// ═══════════════════════════════════════════════════════════════════════════

// MatriculaCriadaEvent is emitted when a student enrolls in a course.
type MatriculaCriadaEvent struct {
	BaseEvent
	MatriculaID string  `json:"matricula_id"`
	AlunoID     string  `json:"aluno_id"`
	CursoID     string  `json:"curso_id"`
	ValorPago   float64 `json:"valor_pago"`
}

// Payload implements Event interface.
func (e MatriculaCriadaEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"matricula_id": e.MatriculaID,
		"aluno_id":     e.AlunoID,
		"curso_id":     e.CursoID,
		"valor_pago":   e.ValorPago,
	}
}

// NewMatriculaCriadaEvent creates a new MatriculaCriadaEvent.
func NewMatriculaCriadaEvent(matriculaID, alunoID, cursoID string, valorPago float64) MatriculaCriadaEvent {
	return MatriculaCriadaEvent{
		BaseEvent:   NewBaseEvent(EventMatriculaCriada, matriculaID),
		MatriculaID: matriculaID,
		AlunoID:     alunoID,
		CursoID:     cursoID,
		ValorPago:   valorPago,
	}
}

// MatriculaIniciadaEvent is emitted when a student starts a course.
type MatriculaIniciadaEvent struct {
	BaseEvent
	MatriculaID string `json:"matricula_id"`
	AlunoID     string `json:"aluno_id"`
	CursoID     string `json:"curso_id"`
}

// Payload implements Event interface.
func (e MatriculaIniciadaEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"matricula_id": e.MatriculaID,
		"aluno_id":     e.AlunoID,
		"curso_id":     e.CursoID,
	}
}

// NewMatriculaIniciadaEvent creates a new MatriculaIniciadaEvent.
func NewMatriculaIniciadaEvent(matriculaID, alunoID, cursoID string) MatriculaIniciadaEvent {
	return MatriculaIniciadaEvent{
		BaseEvent:   NewBaseEvent(EventMatriculaIniciada, matriculaID),
		MatriculaID: matriculaID,
		AlunoID:     alunoID,
		CursoID:     cursoID,
	}
}

// MatriculaConcluidaEvent is emitted when a student completes a course.
type MatriculaConcluidaEvent struct {
	BaseEvent
	MatriculaID string   `json:"matricula_id"`
	AlunoID     string   `json:"aluno_id"`
	CursoID     string   `json:"curso_id"`
	NotaFinal   *float64 `json:"nota_final,omitempty"`
}

// Payload implements Event interface.
func (e MatriculaConcluidaEvent) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"matricula_id": e.MatriculaID,
		"aluno_id":     e.AlunoID,
		"curso_id":     e.CursoID,
	}
	if e.NotaFinal != nil {
		p["nota_final"] = *e.NotaFinal
	}
	return p
}

// NewMatriculaConcluidaEvent creates a new MatriculaConcluidaEvent.
func NewMatriculaConcluidaEvent(matriculaID, alunoID, cursoID string, notaFinal *float64) MatriculaConcluidaEvent {
	return MatriculaConcluidaEvent{
		BaseEvent:   NewBaseEvent(EventMatriculaConcluida, matriculaID),
		MatriculaID: matriculaID,
		AlunoID:     alunoID,
		CursoID:     cursoID,
		NotaFinal:   notaFinal,
	}
}

// MatriculaCanceladaEvent is emitted when an enrollment is cancelled.
type MatriculaCanceladaEvent struct {
	BaseEvent
	MatriculaID string `json:"matricula_id"`
	AlunoID     string `json:"aluno_id"`
	CursoID     string `json:"curso_id"`
	Motivo      string `json:"motivo,omitempty"`
}

// Payload implements Event interface.
func (e MatriculaCanceladaEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"matricula_id": e.MatriculaID,
		"aluno_id":     e.AlunoID,
		"curso_id":     e.CursoID,
		"motivo":       e.Motivo,
	}
}

// NewMatriculaCanceladaEvent creates a new MatriculaCanceladaEvent.
func NewMatriculaCanceladaEvent(matriculaID, alunoID, cursoID, motivo string) MatriculaCanceladaEvent {
	return MatriculaCanceladaEvent{
		BaseEvent:   NewBaseEvent(EventMatriculaCancelada, matriculaID),
		MatriculaID: matriculaID,
		AlunoID:     alunoID,
		CursoID:     cursoID,
		Motivo:      motivo,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progresso Events
// ═══════════════════════════════════════════════════════════════════════════

// AulaConcluidaEvent is emitted when a lesson is completed.
type AulaConcluidaEvent struct {
	BaseEvent
	MatriculaID string `json:"matricula_id"`
	AulaID      string `json:"aula_id"`
	AlunoID     string `json:"aluno_id"`
}

// Payload implements Event interface.
func (e AulaConcluidaEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"matricula_id": e.MatriculaID,
		"aula_id":      e.AulaID,
		"aluno_id":     e.AlunoID,
	}
}

// NewAulaConcluidaEvent creates a new AulaConcluidaEvent.
func NewAulaConcluidaEvent(matriculaID, aulaID, alunoID string) AulaConcluidaEvent {
	return AulaConcluidaEvent{
		BaseEvent:   NewBaseEvent(EventAulaConcluida, matriculaID),
		MatriculaID: matriculaID,
		AulaID:      aulaID,
		AlunoID:     alunoID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Certificado Events
// ═══════════════════════════════════════════════════════════════════════════

// CertificadoEmitidoEvent is emitted when a certificate is issued.
type CertificadoEmitidoEvent struct {
	BaseEvent
	CertificadoID string `json:"certificado_id"`
	MatriculaID   string `json:"matricula_id"`
	AlunoID       string `json:"aluno_id"`
	Codigo        string `json:"codigo"`
}

// Payload implements Event interface.
func (e CertificadoEmitidoEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"certificado_id": e.CertificadoID,
		"matricula_id":   e.MatriculaID,
		"aluno_id":       e.AlunoID,
		"codigo":         e.Codigo,
	}
}

// NewCertificadoEmitidoEvent creates a new CertificadoEmitidoEvent.
func NewCertificadoEmitidoEvent(certificadoID, matriculaID, alunoID, codigo string) CertificadoEmitidoEvent {
	return CertificadoEmitidoEvent{
		BaseEvent:     NewBaseEvent(EventCertificadoEmitido, certificadoID),
		CertificadoID: certificadoID,
		MatriculaID:   matriculaID,
		AlunoID:       alunoID,
		Codigo:        codigo,
	}
}

// CertificadoRevogadoEvent is emitted when a certificate is revoked.
type CertificadoRevogadoEvent struct {
	BaseEvent
	CertificadoID string `json:"certificado_id"`
	MatriculaID   string `json:"matricula_id"`
	Motivo        string `json:"motivo,omitempty"`
}

// Payload implements Event interface.
func (e CertificadoRevogadoEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"certificado_id": e.CertificadoID,
		"matricula_id":   e.MatriculaID,
		"motivo":         e.Motivo,
	}
}

// NewCertificadoRevogadoEvent creates a new CertificadoRevogadoEvent.
func NewCertificadoRevogadoEvent(certificadoID, matriculaID, motivo string) CertificadoRevogadoEvent {
	return CertificadoRevogadoEvent{
		BaseEvent:     NewBaseEvent(EventCertificadoRevogado, certificadoID),
		CertificadoID: certificadoID,
		MatriculaID:   matriculaID,
		Motivo:        motivo,
	}
}

// CertificadoExpiradoEvent is emitted by the expiry sweep when a stored
// certificate status flips to Expirado.
type CertificadoExpiradoEvent struct {
	BaseEvent
	CertificadoID string    `json:"certificado_id"`
	MatriculaID   string    `json:"matricula_id"`
	ExpirouEm     time.Time `json:"expirou_em"`
}

// Payload implements Event interface.
func (e CertificadoExpiradoEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"certificado_id": e.CertificadoID,
		"matricula_id":   e.MatriculaID,
		"expirou_em":     e.ExpirouEm.Format(time.RFC3339),
	}
}

// NewCertificadoExpiradoEvent creates a new CertificadoExpiradoEvent.
func NewCertificadoExpiradoEvent(certificadoID, matriculaID string, expirouEm time.Time) CertificadoExpiradoEvent {
	return CertificadoExpiradoEvent{
		BaseEvent:     NewBaseEvent(EventCertificadoExpirado, certificadoID),
		CertificadoID: certificadoID,
		MatriculaID:   matriculaID,
		ExpirouEm:     expirouEm,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	AggregateID   string          `json:"aggregate_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
