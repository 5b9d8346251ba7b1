package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educahub/educa-learning-hub/internal/domain/historico"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// HISTORICO REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// HistoricoRepository implements historico.Repository for PostgreSQL.
// The table is append-only: no update or delete paths exist.
type HistoricoRepository struct {
	conn *Connection
}

// NewHistoricoRepository creates a new HistoricoRepository.
func NewHistoricoRepository(conn *Connection) *HistoricoRepository {
	return &HistoricoRepository{conn: conn}
}

const historicoColumns = `
	id, aluno_id, acao, descricao, detalhes, tipo, usuario_id,
	endereco_ip, user_agent, criado_em, atualizado_em
`

// Append persists a new audit fact.
func (r *HistoricoRepository) Append(ctx context.Context, h *historico.HistoricoAluno) error {
	query := `
		INSERT INTO historico_alunos (
			id, aluno_id, acao, descricao, detalhes, tipo, usuario_id,
			endereco_ip, user_agent, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.conn.Exec(ctx, query,
		h.ID,
		h.AlunoID,
		h.Acao,
		h.Descricao,
		h.Detalhes,
		string(h.Tipo),
		h.UsuarioID,
		h.EnderecoIP,
		h.UserAgent,
		h.CriadoEm,
		h.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("failed to append historico: %w", err)
	}

	return nil
}

// ListByAluno returns the facts of a student, most recent first.
func (r *HistoricoRepository) ListByAluno(ctx context.Context, alunoID string, page shared.Pagination) ([]*historico.HistoricoAluno, error) {
	query := `SELECT` + historicoColumns + `
		FROM historico_alunos
		WHERE aluno_id = $1
		ORDER BY criado_em DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.conn.Query(ctx, query, alunoID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list historico: %w", err)
	}
	defer rows.Close()

	return collectHistorico(rows)
}

// ListByAlunoETipo returns the facts of a student filtered by category.
func (r *HistoricoRepository) ListByAlunoETipo(ctx context.Context, alunoID string, tipo historico.TipoAcao, page shared.Pagination) ([]*historico.HistoricoAluno, error) {
	query := `SELECT` + historicoColumns + `
		FROM historico_alunos
		WHERE aluno_id = $1 AND tipo = $2
		ORDER BY criado_em DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.conn.Query(ctx, query, alunoID, string(tipo), page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list historico by tipo: %w", err)
	}
	defer rows.Close()

	return collectHistorico(rows)
}

// ListSince returns the facts of a student created at or after the given
// instant, oldest first.
func (r *HistoricoRepository) ListSince(ctx context.Context, alunoID string, desde time.Time) ([]*historico.HistoricoAluno, error) {
	query := `SELECT` + historicoColumns + `
		FROM historico_alunos
		WHERE aluno_id = $1 AND criado_em >= $2
		ORDER BY criado_em ASC
	`

	rows, err := r.conn.Query(ctx, query, alunoID, desde)
	if err != nil {
		return nil, fmt.Errorf("failed to list historico since: %w", err)
	}
	defer rows.Close()

	return collectHistorico(rows)
}

// CountByAluno counts the facts recorded for a student.
func (r *HistoricoRepository) CountByAluno(ctx context.Context, alunoID string) (int, error) {
	var count int

	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM historico_alunos WHERE aluno_id = $1`, alunoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count historico: %w", err)
	}

	return count, nil
}

func collectHistorico(rows pgx.Rows) ([]*historico.HistoricoAluno, error) {
	var fatos []*historico.HistoricoAluno

	for rows.Next() {
		h, err := scanHistorico(rows)
		if err != nil {
			return nil, err
		}
		fatos = append(fatos, h)
	}

	return fatos, rows.Err()
}

func scanHistorico(row pgx.Row) (*historico.HistoricoAluno, error) {
	var (
		id, alunoID, acao, descricao, detalhes string
		tipo, usuarioID, enderecoIP, userAgent string
		criadoEm                               time.Time
		atualizadoEm                           *time.Time
	)

	err := row.Scan(
		&id,
		&alunoID,
		&acao,
		&descricao,
		&detalhes,
		&tipo,
		&usuarioID,
		&enderecoIP,
		&userAgent,
		&criadoEm,
		&atualizadoEm,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan historico: %w", err)
	}

	return historico.RehydrateHistorico(
		shared.RehydrateEntidade(id, criadoEm, atualizadoEm),
		alunoID, acao, descricao, detalhes,
		historico.TipoAcao(tipo),
		usuarioID, enderecoIP, userAgent,
	), nil
}
