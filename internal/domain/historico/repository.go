package historico

import (
	"context"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// Repository define a persistência do log de auditoria.
// Append-only: não há update nem delete.
type Repository interface {
	// Append persiste um fato novo.
	Append(ctx context.Context, h *HistoricoAluno) error

	// ListByAluno lista os fatos de um aluno, do mais recente para o mais
	// antigo, paginados.
	ListByAluno(ctx context.Context, alunoID string, page shared.Pagination) ([]*HistoricoAluno, error)

	// ListByAlunoETipo lista os fatos de um aluno filtrados por categoria.
	ListByAlunoETipo(ctx context.Context, alunoID string, tipo TipoAcao, page shared.Pagination) ([]*HistoricoAluno, error)

	// ListSince lista os fatos de um aluno a partir de um instante.
	ListSince(ctx context.Context, alunoID string, desde time.Time) ([]*HistoricoAluno, error)

	// CountByAluno conta os fatos registrados para um aluno.
	CountByAluno(ctx context.Context, alunoID string) (int, error)
}
