package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATRICULA REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// MatriculaRepository implements matricula.Repository for PostgreSQL.
// The aggregate is loaded and saved whole: progressos and certificados travel
// with the matricula header in a single transaction.
type MatriculaRepository struct {
	conn *Connection
}

// NewMatriculaRepository creates a new MatriculaRepository.
func NewMatriculaRepository(conn *Connection) *MatriculaRepository {
	return &MatriculaRepository{conn: conn}
}

const matriculaColumns = `
	id, aluno_id, curso_id, status, forma_pagamento, ativa, valor_pago,
	percentual_conclusao, nota_final, data_matricula, data_inicio,
	data_termino, observacoes, criado_em, atualizado_em
`

const progressoColumns = `
	id, matricula_id, aula_id, status, percentual_assistido,
	tempo_assistido_segundos, data_inicio, data_conclusao, ultimo_acesso,
	nota, observacoes, criado_em, atualizado_em
`

const certificadoColumns = `
	id, matricula_id, codigo, nome_curso, nome_aluno, nome_instrutor,
	data_emissao, data_validade, carga_horaria, nota_final, status,
	arquivo_url, hash_verificacao, observacoes, criado_em, atualizado_em
`

// ─────────────────────────────────────────────────────────────────────────────
// Aggregate loading
// ─────────────────────────────────────────────────────────────────────────────

// Create persists a new matricula with its child collections.
func (r *MatriculaRepository) Create(ctx context.Context, m *matricula.MatriculaCurso) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if err := r.insertHeader(ctx, tx, m); err != nil {
			return err
		}
		for _, p := range m.Progressos() {
			if err := r.upsertProgresso(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, c := range m.Certificados() {
			if err := r.upsertCertificado(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns a matricula by ID with children loaded.
func (r *MatriculaRepository) GetByID(ctx context.Context, id string) (*matricula.MatriculaCurso, error) {
	query := `SELECT` + matriculaColumns + `FROM matriculas WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	header, err := r.scanMatricula(row)
	if err != nil {
		return nil, err
	}

	return r.loadChildren(ctx, header)
}

// GetByAlunoECurso returns the matricula of a student in a course.
func (r *MatriculaRepository) GetByAlunoECurso(ctx context.Context, alunoID, cursoID string) (*matricula.MatriculaCurso, error) {
	query := `SELECT` + matriculaColumns + `
		FROM matriculas
		WHERE aluno_id = $1 AND curso_id = $2
		ORDER BY data_matricula DESC
		LIMIT 1
	`

	row := r.conn.QueryRow(ctx, query, alunoID, cursoID)
	header, err := r.scanMatricula(row)
	if err != nil {
		return nil, err
	}

	return r.loadChildren(ctx, header)
}

// ListByAluno returns all matriculas of a student with children loaded.
func (r *MatriculaRepository) ListByAluno(ctx context.Context, alunoID string) ([]*matricula.MatriculaCurso, error) {
	query := `SELECT` + matriculaColumns + `
		FROM matriculas
		WHERE aluno_id = $1
		ORDER BY data_matricula DESC
	`

	rows, err := r.conn.Query(ctx, query, alunoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matriculas: %w", err)
	}

	var headers []*matriculaRow
	for rows.Next() {
		header, err := r.scanMatriculaHeaderRows(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, header)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	matriculas := make([]*matricula.MatriculaCurso, 0, len(headers))
	for _, header := range headers {
		m, err := r.loadChildren(ctx, header)
		if err != nil {
			return nil, err
		}
		matriculas = append(matriculas, m)
	}

	return matriculas, nil
}

// Update persists the whole aggregate: header, progressos, and certificados.
func (r *MatriculaRepository) Update(ctx context.Context, m *matricula.MatriculaCurso) error {
	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		query := `
			UPDATE matriculas SET
				status = $1,
				forma_pagamento = $2,
				ativa = $3,
				valor_pago = $4,
				percentual_conclusao = $5,
				nota_final = $6,
				data_inicio = $7,
				data_termino = $8,
				observacoes = $9,
				atualizado_em = $10
			WHERE id = $11
		`

		result, err := tx.Exec(ctx, query,
			string(m.Status),
			m.FormaPagamento,
			m.Ativa,
			m.ValorPago,
			m.PercentualConclusao,
			m.NotaFinal,
			m.DataInicio,
			m.DataTermino,
			m.Observacoes,
			time.Now().UTC(),
			m.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update matricula: %w", err)
		}
		if result.RowsAffected() == 0 {
			return shared.ErrMatriculaNotFound
		}

		for _, p := range m.Progressos() {
			if err := r.upsertProgresso(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, c := range m.Certificados() {
			if err := r.upsertCertificado(ctx, tx, c); err != nil {
				return err
			}
		}

		return nil
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Header and child writes
// ─────────────────────────────────────────────────────────────────────────────

func (r *MatriculaRepository) insertHeader(ctx context.Context, tx pgx.Tx, m *matricula.MatriculaCurso) error {
	query := `
		INSERT INTO matriculas (
			id, aluno_id, curso_id, status, forma_pagamento, ativa, valor_pago,
			percentual_conclusao, nota_final, data_matricula, data_inicio,
			data_termino, observacoes, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := tx.Exec(ctx, query,
		m.ID,
		m.AlunoID,
		m.CursoID,
		string(m.Status),
		m.FormaPagamento,
		m.Ativa,
		m.ValorPago,
		m.PercentualConclusao,
		m.NotaFinal,
		m.DataMatricula,
		m.DataInicio,
		m.DataTermino,
		m.Observacoes,
		m.CriadoEm,
		m.AtualizadoEm,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrMatriculaDuplicada
		}
		return fmt.Errorf("failed to create matricula: %w", err)
	}

	return nil
}

func (r *MatriculaRepository) upsertProgresso(ctx context.Context, tx pgx.Tx, p *matricula.Progresso) error {
	query := `
		INSERT INTO progressos (
			id, matricula_id, aula_id, status, percentual_assistido,
			tempo_assistido_segundos, data_inicio, data_conclusao, ultimo_acesso,
			nota, observacoes, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT(matricula_id, aula_id) DO UPDATE SET
			status = EXCLUDED.status,
			percentual_assistido = EXCLUDED.percentual_assistido,
			tempo_assistido_segundos = EXCLUDED.tempo_assistido_segundos,
			data_inicio = EXCLUDED.data_inicio,
			data_conclusao = EXCLUDED.data_conclusao,
			ultimo_acesso = EXCLUDED.ultimo_acesso,
			nota = EXCLUDED.nota,
			observacoes = EXCLUDED.observacoes,
			atualizado_em = EXCLUDED.atualizado_em
	`

	_, err := tx.Exec(ctx, query,
		p.ID,
		p.MatriculaID,
		p.AulaID,
		string(p.Status),
		p.PercentualAssistido,
		p.TempoAssistidoSegundos,
		p.DataInicio,
		p.DataConclusao,
		p.UltimoAcesso,
		p.Nota,
		p.Observacoes,
		p.CriadoEm,
		p.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("failed to save progresso: %w", err)
	}

	return nil
}

func (r *MatriculaRepository) upsertCertificado(ctx context.Context, tx pgx.Tx, c *matricula.Certificado) error {
	query := `
		INSERT INTO certificados (
			id, matricula_id, codigo, nome_curso, nome_aluno, nome_instrutor,
			data_emissao, data_validade, carga_horaria, nota_final, status,
			arquivo_url, hash_verificacao, observacoes, criado_em, atualizado_em
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT(id) DO UPDATE SET
			status = EXCLUDED.status,
			data_validade = EXCLUDED.data_validade,
			arquivo_url = EXCLUDED.arquivo_url,
			observacoes = EXCLUDED.observacoes,
			atualizado_em = EXCLUDED.atualizado_em
	`

	_, err := tx.Exec(ctx, query,
		c.ID,
		c.MatriculaID,
		c.Codigo,
		c.NomeCurso,
		c.NomeAluno,
		c.NomeInstrutor,
		c.DataEmissao,
		c.DataValidade,
		c.CargaHoraria,
		c.NotaFinal,
		string(c.Status),
		c.ArquivoURL,
		c.HashVerificacao,
		c.Observacoes,
		c.CriadoEm,
		c.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("failed to save certificado: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Child loading
// ─────────────────────────────────────────────────────────────────────────────

// matriculaRow holds the scanned header before children are attached.
type matriculaRow struct {
	id                  string
	alunoID             string
	cursoID             string
	status              string
	formaPagamento      string
	ativa               bool
	valorPago           float64
	percentualConclusao float64
	notaFinal           *float64
	dataMatricula       time.Time
	dataInicio          time.Time
	dataTermino         *time.Time
	observacoes         string
	criadoEm            time.Time
	atualizadoEm        *time.Time
}

func (r *MatriculaRepository) loadChildren(ctx context.Context, h *matriculaRow) (*matricula.MatriculaCurso, error) {
	progressos, err := r.listProgressos(ctx, h.id)
	if err != nil {
		return nil, err
	}

	certificados, err := r.listCertificados(ctx, h.id)
	if err != nil {
		return nil, err
	}

	return matricula.RehydrateMatricula(
		shared.RehydrateEntidade(h.id, h.criadoEm, h.atualizadoEm),
		h.alunoID,
		h.cursoID,
		h.dataMatricula,
		h.dataInicio,
		h.dataTermino,
		matricula.Status(h.status),
		h.valorPago,
		h.formaPagamento,
		h.percentualConclusao,
		h.notaFinal,
		h.observacoes,
		h.ativa,
		progressos,
		certificados,
	), nil
}

func (r *MatriculaRepository) listProgressos(ctx context.Context, matriculaID string) ([]*matricula.Progresso, error) {
	query := `SELECT` + progressoColumns + `
		FROM progressos
		WHERE matricula_id = $1
		ORDER BY criado_em ASC
	`

	rows, err := r.conn.Query(ctx, query, matriculaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progressos: %w", err)
	}
	defer rows.Close()

	var progressos []*matricula.Progresso
	for rows.Next() {
		p, err := scanProgresso(rows)
		if err != nil {
			return nil, err
		}
		progressos = append(progressos, p)
	}

	return progressos, rows.Err()
}

func (r *MatriculaRepository) listCertificados(ctx context.Context, matriculaID string) ([]*matricula.Certificado, error) {
	query := `SELECT` + certificadoColumns + `
		FROM certificados
		WHERE matricula_id = $1
		ORDER BY data_emissao ASC
	`

	rows, err := r.conn.Query(ctx, query, matriculaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificados: %w", err)
	}
	defer rows.Close()

	var certificados []*matricula.Certificado
	for rows.Next() {
		c, err := scanCertificado(rows)
		if err != nil {
			return nil, err
		}
		certificados = append(certificados, c)
	}

	return certificados, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *MatriculaRepository) scanMatricula(row pgx.Row) (*matriculaRow, error) {
	var h matriculaRow

	err := row.Scan(
		&h.id,
		&h.alunoID,
		&h.cursoID,
		&h.status,
		&h.formaPagamento,
		&h.ativa,
		&h.valorPago,
		&h.percentualConclusao,
		&h.notaFinal,
		&h.dataMatricula,
		&h.dataInicio,
		&h.dataTermino,
		&h.observacoes,
		&h.criadoEm,
		&h.atualizadoEm,
	)

	if IsNoRows(err) {
		return nil, shared.ErrMatriculaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan matricula: %w", err)
	}

	return &h, nil
}

func (r *MatriculaRepository) scanMatriculaHeaderRows(rows pgx.Rows) (*matriculaRow, error) {
	var h matriculaRow

	err := rows.Scan(
		&h.id,
		&h.alunoID,
		&h.cursoID,
		&h.status,
		&h.formaPagamento,
		&h.ativa,
		&h.valorPago,
		&h.percentualConclusao,
		&h.notaFinal,
		&h.dataMatricula,
		&h.dataInicio,
		&h.dataTermino,
		&h.observacoes,
		&h.criadoEm,
		&h.atualizadoEm,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan matricula: %w", err)
	}

	return &h, nil
}

func scanProgresso(row pgx.Row) (*matricula.Progresso, error) {
	var (
		id, matriculaID, aulaID, status, observacoes string
		percentual                                   float64
		segundos                                     int
		dataInicio, dataConclusao, ultimoAcesso      *time.Time
		nota                                         *float64
		criadoEm                                     time.Time
		atualizadoEm                                 *time.Time
	)

	err := row.Scan(
		&id,
		&matriculaID,
		&aulaID,
		&status,
		&percentual,
		&segundos,
		&dataInicio,
		&dataConclusao,
		&ultimoAcesso,
		&nota,
		&observacoes,
		&criadoEm,
		&atualizadoEm,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan progresso: %w", err)
	}

	return matricula.RehydrateProgresso(
		shared.RehydrateEntidade(id, criadoEm, atualizadoEm),
		matriculaID,
		aulaID,
		matricula.StatusProgresso(status),
		percentual,
		segundos,
		dataInicio, dataConclusao, ultimoAcesso,
		nota,
		observacoes,
	), nil
}

func scanCertificado(row pgx.Row) (*matricula.Certificado, error) {
	var (
		id, matriculaID, codigo, nomeCurso, nomeAluno, nomeInstrutor string
		status, arquivoURL, hashVerificacao, observacoes             string
		dataEmissao, criadoEm                                        time.Time
		dataValidade, atualizadoEm                                   *time.Time
		cargaHoraria                                                 int
		notaFinal                                                    *float64
	)

	err := row.Scan(
		&id,
		&matriculaID,
		&codigo,
		&nomeCurso,
		&nomeAluno,
		&nomeInstrutor,
		&dataEmissao,
		&dataValidade,
		&cargaHoraria,
		&notaFinal,
		&status,
		&arquivoURL,
		&hashVerificacao,
		&observacoes,
		&criadoEm,
		&atualizadoEm,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan certificado: %w", err)
	}

	return matricula.RehydrateCertificado(
		shared.RehydrateEntidade(id, criadoEm, atualizadoEm),
		matriculaID,
		nomeCurso,
		nomeAluno,
		dataEmissao,
		dataValidade,
		cargaHoraria,
		notaFinal,
		matricula.StatusCertificado(status),
		arquivoURL, hashVerificacao, observacoes, nomeInstrutor, codigo,
	), nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CERTIFICADO REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CertificadoRepository implements matricula.CertificadoRepository for
// PostgreSQL. Covers the queries that cut across matriculas: public
// verification by code and the expiry sweep.
type CertificadoRepository struct {
	conn *Connection
}

// NewCertificadoRepository creates a new CertificadoRepository.
func NewCertificadoRepository(conn *Connection) *CertificadoRepository {
	return &CertificadoRepository{conn: conn}
}

// GetByCodigo returns a certificate by its unique code.
func (r *CertificadoRepository) GetByCodigo(ctx context.Context, codigo string) (*matricula.Certificado, error) {
	query := `SELECT` + certificadoColumns + `FROM certificados WHERE codigo = $1`

	row := r.conn.QueryRow(ctx, query, codigo)
	c, err := scanCertificado(row)
	if IsNoRows(err) {
		return nil, shared.ErrCertificadoNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// ListExpirando returns active certificates expiring before the given instant.
func (r *CertificadoRepository) ListExpirando(ctx context.Context, ate time.Time) ([]*matricula.Certificado, error) {
	query := `SELECT` + certificadoColumns + `
		FROM certificados
		WHERE status = 'ativo' AND data_validade IS NOT NULL AND data_validade <= $1
		ORDER BY data_validade ASC
	`

	rows, err := r.conn.Query(ctx, query, ate)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring certificados: %w", err)
	}
	defer rows.Close()

	var certificados []*matricula.Certificado
	for rows.Next() {
		c, err := scanCertificado(rows)
		if err != nil {
			return nil, err
		}
		certificados = append(certificados, c)
	}

	return certificados, rows.Err()
}

// UpdateStatus persists a certificate status change.
func (r *CertificadoRepository) UpdateStatus(ctx context.Context, c *matricula.Certificado) error {
	query := `
		UPDATE certificados SET
			status = $1,
			data_validade = $2,
			observacoes = $3,
			atualizado_em = $4
		WHERE id = $5
	`

	result, err := r.conn.Exec(ctx, query,
		string(c.Status),
		c.DataValidade,
		c.Observacoes,
		time.Now().UTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update certificado status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrCertificadoNotFound
	}

	return nil
}
