package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ALUNO REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AlunoRepository implements aluno.Repository for PostgreSQL.
// GetByID and GetByEmail load the full aggregate: the student's matriculas,
// with progressos and certificados, come along.
type AlunoRepository struct {
	conn       *Connection
	matriculas *MatriculaRepository
}

// NewAlunoRepository creates a new AlunoRepository.
func NewAlunoRepository(conn *Connection) *AlunoRepository {
	return &AlunoRepository{
		conn:       conn,
		matriculas: NewMatriculaRepository(conn),
	}
}

const alunoColumns = `
	id, ref_autenticacao, nome, email, data_nascimento, telefone, genero,
	cidade, estado, cep, ativo, criado_em, atualizado_em
`

// Create persists a new student.
func (r *AlunoRepository) Create(ctx context.Context, a *aluno.Aluno) error {
	query := `
		INSERT INTO alunos (
			id, ref_autenticacao, nome, email, data_nascimento, telefone, genero,
			cidade, estado, cep, ativo, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.conn.Exec(ctx, query,
		a.ID,
		a.RefAutenticacao,
		a.Nome,
		a.Email.String(),
		a.DataNascimento,
		a.Telefone,
		a.Genero,
		a.Cidade,
		a.Estado,
		a.CEP,
		a.Ativo,
		a.CriadoEm,
		a.AtualizadoEm,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlunoAlreadyExists
		}
		return fmt.Errorf("failed to create aluno: %w", err)
	}

	return nil
}

// GetByID returns a student by ID with matriculas loaded.
func (r *AlunoRepository) GetByID(ctx context.Context, id string) (*aluno.Aluno, error) {
	query := `SELECT` + alunoColumns + `FROM alunos WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanAluno(ctx, row, true)
}

// GetByEmail returns a student by normalized email with matriculas loaded.
func (r *AlunoRepository) GetByEmail(ctx context.Context, email shared.Email) (*aluno.Aluno, error) {
	query := `SELECT` + alunoColumns + `FROM alunos WHERE LOWER(email) = $1`

	row := r.conn.QueryRow(ctx, query, email.String())
	return r.scanAluno(ctx, row, true)
}

// List returns students paginated, without child collections.
func (r *AlunoRepository) List(ctx context.Context, page shared.Pagination) ([]*aluno.Aluno, error) {
	query := `SELECT` + alunoColumns + `FROM alunos ORDER BY nome ASC LIMIT $1 OFFSET $2`

	rows, err := r.conn.Query(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list alunos: %w", err)
	}
	defer rows.Close()

	var alunos []*aluno.Aluno
	for rows.Next() {
		a, err := r.scanAlunoRow(rows)
		if err != nil {
			return nil, err
		}
		alunos = append(alunos, a)
	}

	return alunos, rows.Err()
}

// Update persists the student profile. Matriculas are persisted by the
// matricula repository within the same unit of work.
func (r *AlunoRepository) Update(ctx context.Context, a *aluno.Aluno) error {
	query := `
		UPDATE alunos SET
			ref_autenticacao = $1,
			nome = $2,
			email = $3,
			data_nascimento = $4,
			telefone = $5,
			genero = $6,
			cidade = $7,
			estado = $8,
			cep = $9,
			ativo = $10,
			atualizado_em = $11
		WHERE id = $12
	`

	result, err := r.conn.Exec(ctx, query,
		a.RefAutenticacao,
		a.Nome,
		a.Email.String(),
		a.DataNascimento,
		a.Telefone,
		a.Genero,
		a.Cidade,
		a.Estado,
		a.CEP,
		a.Ativo,
		time.Now().UTC(),
		a.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrAlunoAlreadyExists
		}
		return fmt.Errorf("failed to update aluno: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrAlunoNotFound
	}

	return nil
}

// Exists checks if a student exists by ID.
func (r *AlunoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM alunos WHERE id = $1)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check aluno existence: %w", err)
	}
	return exists, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

// scanAluno scans a single student from a row, optionally loading matriculas.
func (r *AlunoRepository) scanAluno(ctx context.Context, row pgx.Row, withMatriculas bool) (*aluno.Aluno, error) {
	a, err := r.scanAlunoRow(row)
	if err != nil {
		return nil, err
	}

	if !withMatriculas {
		return a, nil
	}

	matriculas, err := r.matriculas.ListByAluno(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return aluno.RehydrateAluno(
		shared.RehydrateEntidade(a.ID, a.CriadoEm, a.AtualizadoEm),
		a.RefAutenticacao,
		a.Nome,
		a.Email,
		a.DataNascimento,
		a.Telefone, a.Genero, a.Cidade, a.Estado, a.CEP,
		a.Ativo,
		matriculas,
	), nil
}

// scanAlunoRow scans the aluno columns from any pgx row source.
func (r *AlunoRepository) scanAlunoRow(row pgx.Row) (*aluno.Aluno, error) {
	var (
		id, refAutenticacao, nome, email      string
		telefone, genero, cidade, estado, cep string
		dataNascimento, criadoEm              time.Time
		atualizadoEm                          *time.Time
		ativo                                 bool
	)

	err := row.Scan(
		&id,
		&refAutenticacao,
		&nome,
		&email,
		&dataNascimento,
		&telefone,
		&genero,
		&cidade,
		&estado,
		&cep,
		&ativo,
		&criadoEm,
		&atualizadoEm,
	)

	if IsNoRows(err) {
		return nil, shared.ErrAlunoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan aluno: %w", err)
	}

	return aluno.RehydrateAluno(
		shared.RehydrateEntidade(id, criadoEm, atualizadoEm),
		refAutenticacao,
		nome,
		shared.Email(email),
		dataNascimento,
		telefone, genero, cidade, estado, cep,
		ativo,
		nil,
	), nil
}
