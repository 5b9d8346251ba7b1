// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrConflict      = errors.New("entity conflict")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrTerminalState   = errors.New("entity is in a terminal state")
	ErrExpired         = errors.New("expired")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "aluno", "matricula", "certificado"
	Op      string // Operation that failed, e.g., "Criar", "Concluir"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message naming the offending field/condition
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// Validationf creates a validation error with a formatted message.
func Validationf(domain, op, format string, args ...any) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    ErrValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Aluno domain errors
var (
	ErrAlunoNotFound        = NewDomainError("aluno", "Buscar", ErrNotFound, "aluno not found")
	ErrAlunoAlreadyExists   = NewDomainError("aluno", "Criar", ErrConflict, "aluno already exists")
	ErrAlunoInativo         = NewDomainError("aluno", "AdicionarMatricula", ErrInvalidState, "aluno is inactive")
	ErrMatriculaDuplicada   = NewDomainError("aluno", "AdicionarMatricula", ErrConflict, "aluno already enrolled in this course")
	ErrMatriculaNotFound    = NewDomainError("aluno", "BuscarMatricula", ErrNotFound, "matricula not found")
	ErrNomeInvalido         = NewDomainError("aluno", "Validar", ErrValidation, "nome must be 2-100 characters")
	ErrEmailInvalido        = NewDomainError("aluno", "Validar", ErrValidation, "email is malformed or longer than 200 characters")
	ErrDataNascimentoFutura = NewDomainError("aluno", "Validar", ErrFutureTimestamp, "data de nascimento cannot be in the future")
	ErrIdadeForaDaFaixa     = NewDomainError("aluno", "Validar", ErrValueOutOfRange, "idade must be between 16 and 100 years")
)

// Matricula domain errors
var (
	ErrMatriculaEncerrada      = NewDomainError("matricula", "Atualizar", ErrInvalidState, "matricula concluida or cancelada cannot change")
	ErrTransicaoInvalida       = NewDomainError("matricula", "Transicao", ErrStateTransition, "status transition not allowed")
	ErrValorPagoInvalido       = NewDomainError("matricula", "Validar", ErrValueOutOfRange, "valor pago must be between 0 and 999999.99")
	ErrDataInicioMuitoAntiga   = NewDomainError("matricula", "Validar", ErrValidation, "data de inicio cannot be more than 30 days in the past")
	ErrNotaInvalida            = NewDomainError("matricula", "Validar", ErrValueOutOfRange, "nota must be between 0 and 10")
	ErrPercentualInvalido      = NewDomainError("matricula", "Validar", ErrValueOutOfRange, "percentual must be between 0 and 100")
	ErrProgressoForaDeCurso    = NewDomainError("matricula", "AdicionarProgresso", ErrInvalidState, "progresso only accepted while matricula em andamento")
	ErrCertificadoSemConclusao = NewDomainError("matricula", "AdicionarCertificado", ErrInvalidState, "certificado only accepted after matricula concluida")
)

// Progresso domain errors
var (
	ErrAulaJaConcluida        = NewDomainError("progresso", "Iniciar", ErrInvalidState, "aula already concluida")
	ErrAulaNaoIniciada        = NewDomainError("progresso", "Concluir", ErrInvalidState, "aula was never started")
	ErrTempoAssistidoInvalido = NewDomainError("progresso", "Validar", ErrValueOutOfRange, "tempo assistido must be between 0 and 86400 seconds")
)

// Certificado domain errors
var (
	ErrCertificadoNotFound  = NewDomainError("certificado", "Buscar", ErrNotFound, "certificado not found")
	ErrCertificadoRevogado  = NewDomainError("certificado", "Transicao", ErrInvalidState, "certificado revogado is terminal")
	ErrValidadeInvalida     = NewDomainError("certificado", "Renovar", ErrValidation, "validade must be a positive number of days")
	ErrCargaHorariaInvalida = NewDomainError("certificado", "Validar", ErrValueOutOfRange, "carga horaria must be between 1 and 10000 hours")
	ErrNomeCertificadoCurto = NewDomainError("certificado", "Validar", ErrValidation, "nome do curso and nome do aluno must be at least 2 characters")
)

// Historico domain errors
var (
	ErrAcaoObrigatoria      = NewDomainError("historico", "Validar", ErrEmptyValue, "acao is required and must be at most 100 characters")
	ErrDescricaoObrigatoria = NewDomainError("historico", "Validar", ErrEmptyValue, "descricao is required and must be at most 500 characters")
	ErrAlunoObrigatorio     = NewDomainError("historico", "Validar", ErrEmptyValue, "aluno id is required")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error violates a uniqueness invariant.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrFutureTimestamp) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsInvalidState checks if the operation was rejected by a state machine guard.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateTransition) ||
		errors.Is(err, ErrTerminalState)
}
