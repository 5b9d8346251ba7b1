package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
)

// ══════════════════════════════════════════════════════════════════════════════
// CERTIFICADOS EXPIRANDO QUERY
// Lists active certificates whose validity ends inside a window. Feeds the
// expiry sweep and expiry warning notifications.
// ══════════════════════════════════════════════════════════════════════════════

// CertificadosExpirandoQuery contains the window parameters.
type CertificadosExpirandoQuery struct {
	// Janela is how far ahead to look. Defaults to 24h when zero.
	Janela time.Duration

	// Referencia is the window start. Defaults to now when zero.
	Referencia time.Time
}

// Validate checks the query parameters.
func (q CertificadosExpirandoQuery) Validate() error {
	if q.Janela < 0 {
		return errors.New("certificados_expirando: janela cannot be negative")
	}
	return nil
}

// CertificadoExpirando is one row of the listing.
type CertificadoExpirando struct {
	CertificadoID string
	MatriculaID   string
	Codigo        string
	NomeAluno     string
	NomeCurso     string
	DataValidade  time.Time
	DiasRestantes int
	JaVencido     bool
}

// CertificadosExpirandoResult contains the listing.
type CertificadosExpirandoResult struct {
	Janela       time.Duration
	Referencia   time.Time
	Certificados []CertificadoExpirando
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CertificadosExpirandoHandler handles the CertificadosExpirandoQuery.
type CertificadosExpirandoHandler struct {
	certificadoRepo matricula.CertificadoRepository
}

// NewCertificadosExpirandoHandler creates a new CertificadosExpirandoHandler.
func NewCertificadosExpirandoHandler(certificadoRepo matricula.CertificadoRepository) *CertificadosExpirandoHandler {
	return &CertificadosExpirandoHandler{certificadoRepo: certificadoRepo}
}

// Handle lists the certificates expiring inside the window.
func (h *CertificadosExpirandoHandler) Handle(ctx context.Context, q CertificadosExpirandoQuery) (*CertificadosExpirandoResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	janela := q.Janela
	if janela == 0 {
		janela = 24 * time.Hour
	}
	referencia := q.Referencia
	if referencia.IsZero() {
		referencia = time.Now().UTC()
	}

	certificados, err := h.certificadoRepo.ListExpirando(ctx, referencia.Add(janela))
	if err != nil {
		return nil, fmt.Errorf("certificados_expirando: failed to list certificados: %w", err)
	}

	result := &CertificadosExpirandoResult{
		Janela:       janela,
		Referencia:   referencia,
		Certificados: make([]CertificadoExpirando, 0, len(certificados)),
	}

	for _, cert := range certificados {
		if cert.DataValidade == nil {
			continue
		}
		result.Certificados = append(result.Certificados, CertificadoExpirando{
			CertificadoID: cert.ID,
			MatriculaID:   cert.MatriculaID,
			Codigo:        cert.Codigo,
			NomeAluno:     cert.NomeAluno,
			NomeCurso:     cert.NomeCurso,
			DataValidade:  *cert.DataValidade,
			DiasRestantes: cert.DiasRestantesValidade(),
			JaVencido:     cert.EstaExpirado(),
		})
	}

	return result, nil
}
