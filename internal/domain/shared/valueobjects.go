// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════
// Entity Base
// ═══════════════════════════════════════════════════════════════════════════

// Entidade carries the fields every entity in the domain has: an opaque
// unique identifier, a creation timestamp, and an optional last-updated
// timestamp. Mutating methods must call Tocar() after changing state.
type Entidade struct {
	ID           string
	CriadoEm     time.Time
	AtualizadoEm *time.Time
}

// NovaEntidade creates the base with a fresh UUID and creation timestamp.
func NovaEntidade() Entidade {
	return Entidade{
		ID:       uuid.NewString(),
		CriadoEm: time.Now().UTC(),
	}
}

// RehydrateEntidade rebuilds the base from stored state. Persistence only.
func RehydrateEntidade(id string, criadoEm time.Time, atualizadoEm *time.Time) Entidade {
	return Entidade{ID: id, CriadoEm: criadoEm, AtualizadoEm: atualizadoEm}
}

// Tocar stamps the last-updated timestamp. Called on every mutation.
func (e *Entidade) Tocar() {
	now := time.Now().UTC()
	e.AtualizadoEm = &now
}

// NovoID generates a new opaque entity identifier.
func NovoID() string {
	return uuid.NewString()
}

// IDValido reports whether the value is a well-formed entity identifier.
func IDValido(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Email Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Email represents a normalized (lower-cased, trimmed) e-mail address.
type Email string

// Deliberately permissive: full RFC validation belongs to the edge, the
// domain only rejects obviously malformed addresses.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const MaxEmailLength = 200

// IsValid checks format and length.
func (e Email) IsValid() bool {
	s := string(e)
	return len(s) > 0 && len(s) <= MaxEmailLength && emailRegex.MatchString(s)
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// NovoEmail creates a normalized Email with validation.
func NovoEmail(value string) (Email, error) {
	e := Email(strings.ToLower(strings.TrimSpace(value)))
	if !e.IsValid() {
		return "", ErrEmailInvalido
	}
	return e, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Nota Value Object (final grade, 0-10)
// ═══════════════════════════════════════════════════════════════════════════

// Nota represents a grade on the 0-10 scale.
type Nota float64

const (
	MinNota Nota = 0
	MaxNota Nota = 10
)

// IsValid checks if the grade is within the 0-10 scale.
func (n Nota) IsValid() bool {
	return n >= MinNota && n <= MaxNota
}

// Float64 returns the underlying value.
func (n Nota) Float64() float64 {
	return float64(n)
}

// NovaNota creates a Nota with validation.
func NovaNota(value float64) (Nota, error) {
	n := Nota(value)
	if !n.IsValid() {
		return 0, ErrNotaInvalida
	}
	return n, nil
}

// ValidarNotaOpcional validates a nullable grade pointer.
func ValidarNotaOpcional(value *float64) error {
	if value == nil {
		return nil
	}
	if _, err := NovaNota(*value); err != nil {
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Percentual Value Object (0-100)
// ═══════════════════════════════════════════════════════════════════════════

// Percentual represents a completion percentage (0-100).
type Percentual float64

const (
	MinPercentual Percentual = 0
	MaxPercentual Percentual = 100
)

// IsValid checks the 0-100 range.
func (p Percentual) IsValid() bool {
	return p >= MinPercentual && p <= MaxPercentual
}

// Float64 returns the underlying value.
func (p Percentual) Float64() float64 {
	return float64(p)
}

// Completo reports whether the percentage reached 100.
func (p Percentual) Completo() bool {
	return p >= MaxPercentual
}

// NovoPercentual creates a Percentual with validation.
func NovoPercentual(value float64) (Percentual, error) {
	p := Percentual(value)
	if !p.IsValid() {
		return 0, ErrPercentualInvalido
	}
	return p, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// ValorPago Value Object (amount paid)
// ═══════════════════════════════════════════════════════════════════════════

// ValorPago represents the amount paid for an enrollment, in BRL.
type ValorPago float64

const (
	MinValorPago ValorPago = 0
	MaxValorPago ValorPago = 999999.99
)

// IsValid checks the allowed payment range.
func (v ValorPago) IsValid() bool {
	return v >= MinValorPago && v <= MaxValorPago
}

// Float64 returns the underlying value.
func (v ValorPago) Float64() float64 {
	return float64(v)
}

// NovoValorPago creates a ValorPago with validation.
func NovoValorPago(value float64) (ValorPago, error) {
	v := ValorPago(value)
	if !v.IsValid() {
		return 0, ErrValorPagoInvalido
	}
	return v, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Pagination represents pagination parameters for repository listings.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Offset returns the offset for database queries.
func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit returns the limit for database queries.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// NewPagination creates a new Pagination with defaults.
func NewPagination(page, pageSize int) Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}
