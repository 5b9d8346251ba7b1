package command

import (
	"context"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPIRAR CERTIFICADOS COMMAND
// Sweeps active certificates whose validity has passed and stores them as
// Expirado. This is the only code path that persists the expired status;
// reads derive validity from the date without depending on the sweep.
// ══════════════════════════════════════════════════════════════════════════════

// CertificadoCacheInvalidator removes cached verification verdicts.
type CertificadoCacheInvalidator interface {
	Invalidate(ctx context.Context, codigo string) error
}

// ExpirarCertificadosCommand contains the data for one sweep run.
type ExpirarCertificadosCommand struct {
	// Ate sets the sweep cutoff. Defaults to now when zero.
	Ate time.Time

	// CorrelationID for tracing.
	CorrelationID string
}

// ExpirarCertificadosResult contains the result of the sweep.
type ExpirarCertificadosResult struct {
	// Examinados is how many expiring certificates were loaded.
	Examinados int

	// Expirados is how many were stored as Expirado.
	Expirados int

	// Falhas maps certificate codes to the error that skipped them.
	Falhas map[string]error

	// ExecutadoEm is when the sweep ran.
	ExecutadoEm time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ExpirarCertificadosHandler handles the ExpirarCertificadosCommand.
type ExpirarCertificadosHandler struct {
	certificadoRepo matricula.CertificadoRepository
	cache           CertificadoCacheInvalidator
	publisher       shared.EventPublisher
}

// NewExpirarCertificadosHandler creates a new ExpirarCertificadosHandler.
// The cache is optional; pass nil to skip verdict invalidation.
func NewExpirarCertificadosHandler(
	certificadoRepo matricula.CertificadoRepository,
	cache CertificadoCacheInvalidator,
	publisher shared.EventPublisher,
) *ExpirarCertificadosHandler {
	return &ExpirarCertificadosHandler{
		certificadoRepo: certificadoRepo,
		cache:           cache,
		publisher:       publisher,
	}
}

// Handle executes one expiry sweep.
func (h *ExpirarCertificadosHandler) Handle(ctx context.Context, cmd ExpirarCertificadosCommand) (*ExpirarCertificadosResult, error) {
	ate := cmd.Ate
	if ate.IsZero() {
		ate = time.Now().UTC()
	}

	certificados, err := h.certificadoRepo.ListExpirando(ctx, ate)
	if err != nil {
		return nil, fmt.Errorf("expirar_certificados: failed to list expiring certificados: %w", err)
	}

	result := &ExpirarCertificadosResult{
		Examinados:  len(certificados),
		Falhas:      make(map[string]error),
		ExecutadoEm: ate,
	}

	for _, cert := range certificados {
		if err := cert.MarcarExpirado(); err != nil {
			result.Falhas[cert.Codigo] = err
			continue
		}

		if err := h.certificadoRepo.UpdateStatus(ctx, cert); err != nil {
			result.Falhas[cert.Codigo] = err
			continue
		}

		if h.cache != nil {
			_ = h.cache.Invalidate(ctx, cert.Codigo)
		}

		// DataValidade is non-nil here: the repository only lists dated
		// certificates and MarcarExpirado refuses undated ones.
		event := shared.NewCertificadoExpiradoEvent(cert.ID, cert.MatriculaID, *cert.DataValidade)
		if cmd.CorrelationID != "" {
			event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.publisher.Publish(event)

		result.Expirados++
	}

	return result, nil
}
