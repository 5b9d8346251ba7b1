package aluno

import (
	"context"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTRATO DE REPOSITÓRIO
// Implementação em infrastructure/persistence. O aluno é carregado como
// agregado: as matrículas (com progressos e certificados) vêm junto.
// ══════════════════════════════════════════════════════════════════════════════

// Repository define as operações de persistência do agregado Aluno.
type Repository interface {
	// Create persiste um aluno novo.
	// Retorna shared.ErrAlunoAlreadyExists se o e-mail já está cadastrado.
	Create(ctx context.Context, a *Aluno) error

	// GetByID carrega o aluno com as matrículas.
	// Retorna shared.ErrAlunoNotFound se não existir.
	GetByID(ctx context.Context, id string) (*Aluno, error)

	// GetByEmail carrega o aluno pelo e-mail normalizado.
	// Retorna shared.ErrAlunoNotFound se não existir.
	GetByEmail(ctx context.Context, email shared.Email) (*Aluno, error)

	// List lista alunos paginados (sem as coleções filhas).
	List(ctx context.Context, page shared.Pagination) ([]*Aluno, error)

	// Update persiste o perfil do aluno (as matrículas são persistidas pelo
	// repositório de matrícula dentro da mesma unidade de trabalho).
	// Retorna shared.ErrAlunoNotFound se não existir.
	Update(ctx context.Context, a *Aluno) error

	// Exists verifica a existência do aluno pelo id.
	Exists(ctx context.Context, id string) (bool, error)
}

// Cache define o cache de leitura de alunos (implementado sobre Redis).
type Cache interface {
	// Get retorna o aluno do cache, ou erro de cache-miss.
	Get(ctx context.Context, id string) (*Aluno, error)

	// Set grava o aluno no cache.
	Set(ctx context.Context, a *Aluno) error

	// Invalidate remove o aluno do cache.
	Invalidate(ctx context.Context, id string) error
}
