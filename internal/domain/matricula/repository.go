package matricula

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTRATOS DE REPOSITÓRIO
// Implementações em infrastructure/persistence. Uma matrícula é sempre
// carregada e salva como agregado inteiro (com progressos e certificados);
// a disciplina de concorrência fica na borda de armazenamento.
// ══════════════════════════════════════════════════════════════════════════════

// Repository define as operações de persistência do agregado de matrícula.
type Repository interface {
	// Create persiste uma matrícula nova.
	Create(ctx context.Context, m *MatriculaCurso) error

	// GetByID carrega a matrícula com as coleções filhas.
	// Retorna shared.ErrMatriculaNotFound se não existir.
	GetByID(ctx context.Context, id string) (*MatriculaCurso, error)

	// GetByAlunoECurso carrega a matrícula de um aluno em um curso.
	// Retorna shared.ErrMatriculaNotFound se não existir.
	GetByAlunoECurso(ctx context.Context, alunoID, cursoID string) (*MatriculaCurso, error)

	// ListByAluno lista as matrículas de um aluno, com coleções filhas.
	ListByAluno(ctx context.Context, alunoID string) ([]*MatriculaCurso, error)

	// Update persiste o agregado inteiro: cabeçalho, progressos e certificados.
	// Retorna shared.ErrMatriculaNotFound se não existir.
	Update(ctx context.Context, m *MatriculaCurso) error
}

// CertificadoRepository define as consultas de certificado que atravessam
// matrículas (verificação pública e varredura de expiração).
type CertificadoRepository interface {
	// GetByCodigo busca um certificado pelo código único.
	// Retorna shared.ErrCertificadoNotFound se não existir.
	GetByCodigo(ctx context.Context, codigo string) (*Certificado, error)

	// ListExpirando lista certificados Ativos com validade anterior ao
	// instante informado (candidatos da varredura de expiração).
	ListExpirando(ctx context.Context, ate time.Time) ([]*Certificado, error)

	// UpdateStatus persiste a mudança de status de um certificado.
	UpdateStatus(ctx context.Context, c *Certificado) error
}
