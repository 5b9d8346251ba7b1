// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDAR CERTIFICADO QUERY
// Public certificate verification by code. Validity is computed from the
// stored status plus the validity date, never from the stored status alone.
// Verdicts are cached; the optional hash check always runs against the loaded
// certificate, cached or not.
// ══════════════════════════════════════════════════════════════════════════════

// VerificacaoCertificado is the verdict of a certificate check, as shown on
// the public verification page.
type VerificacaoCertificado struct {
	Codigo        string     `json:"codigo"`
	Valido        bool       `json:"valido"`
	Status        string     `json:"status"`
	NomeAluno     string     `json:"nome_aluno"`
	NomeCurso     string     `json:"nome_curso"`
	NomeInstrutor string     `json:"nome_instrutor,omitempty"`
	CargaHoraria  int        `json:"carga_horaria"`
	NotaFinal     *float64   `json:"nota_final,omitempty"`
	DataEmissao   time.Time  `json:"data_emissao"`
	DataValidade  *time.Time `json:"data_validade,omitempty"`
	VerificadoEm  time.Time  `json:"verificado_em"`

	// EmitidoEm is the issuance date rendered as dd/mm/aaaa in São Paulo
	// time, ready for the verification page.
	EmitidoEm string `json:"emitido_em"`
}

// VerificacaoCache caches verification verdicts keyed by certificate code.
// Implemented by the Redis layer.
type VerificacaoCache interface {
	Get(ctx context.Context, codigo string) (*VerificacaoCertificado, error)
	Set(ctx context.Context, v *VerificacaoCertificado) error
	Invalidate(ctx context.Context, codigo string) error
	RegistrarVerificacao(ctx context.Context, codigo string) (int64, error)
}

// ValidarCertificadoQuery contains the verification parameters.
type ValidarCertificadoQuery struct {
	// Codigo is the unique certificate code.
	Codigo string

	// Hash, when non-empty, is compared case-insensitively against the
	// stored verification hash.
	Hash string
}

// Validate checks the query parameters.
func (q ValidarCertificadoQuery) Validate() error {
	if q.Codigo == "" {
		return errors.New("validar_certificado: codigo is required")
	}
	return nil
}

// ValidarCertificadoResult contains the verification outcome.
type ValidarCertificadoResult struct {
	// Verificacao is the verdict for the code.
	Verificacao VerificacaoCertificado

	// HashConfere reports the hash comparison. Nil when no hash was given.
	HashConfere *bool

	// DoCache is true when the verdict came from the cache.
	DoCache bool
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ValidarCertificadoHandler handles the ValidarCertificadoQuery.
type ValidarCertificadoHandler struct {
	certificadoRepo matricula.CertificadoRepository
	cache           VerificacaoCache
}

// NewValidarCertificadoHandler creates a new ValidarCertificadoHandler.
// The cache is optional; pass nil to always hit the repository.
func NewValidarCertificadoHandler(
	certificadoRepo matricula.CertificadoRepository,
	cache VerificacaoCache,
) *ValidarCertificadoHandler {
	return &ValidarCertificadoHandler{
		certificadoRepo: certificadoRepo,
		cache:           cache,
	}
}

// Handle executes the verification.
func (h *ValidarCertificadoHandler) Handle(ctx context.Context, q ValidarCertificadoQuery) (*ValidarCertificadoResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		_, _ = h.cache.RegistrarVerificacao(ctx, q.Codigo)

		// A hash check needs the certificate itself, so only hash-less
		// lookups are served from cache.
		if q.Hash == "" {
			if v, err := h.cache.Get(ctx, q.Codigo); err == nil {
				return &ValidarCertificadoResult{Verificacao: *v, DoCache: true}, nil
			}
		}
	}

	cert, err := h.certificadoRepo.GetByCodigo(ctx, q.Codigo)
	if err != nil {
		return nil, fmt.Errorf("validar_certificado: failed to get certificado: %w", err)
	}

	verificacao := VerificacaoCertificado{
		Codigo:        cert.Codigo,
		Valido:        cert.EstaValido(),
		Status:        string(cert.Status),
		NomeAluno:     cert.NomeAluno,
		NomeCurso:     cert.NomeCurso,
		NomeInstrutor: cert.NomeInstrutor,
		CargaHoraria:  cert.CargaHoraria,
		NotaFinal:     cert.NotaFinal,
		DataEmissao:   cert.DataEmissao,
		DataValidade:  cert.DataValidade,
		VerificadoEm:  time.Now().UTC(),
		EmitidoEm:     timeutil.FormatBrazilian(cert.DataEmissao),
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, &verificacao)
	}

	result := &ValidarCertificadoResult{Verificacao: verificacao}
	if q.Hash != "" {
		confere := cert.ValidarHash(q.Hash)
		result.HashConfere = &confere
	}

	return result, nil
}
