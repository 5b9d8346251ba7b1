package redis

import (
	"context"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// AlunoCache implements aluno.Cache using the generic Redis Cache.
//
// The aggregate holds its matriculas in a private collection, so the entity
// cannot be serialized directly. The cache stores a flat snapshot of the whole
// aggregate and rehydrates it on read, the same way the postgres layer does.
type AlunoCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewAlunoCache creates a new AlunoCache with the given TTL.
// A zero TTL falls back to TTLAlunoCache.
func NewAlunoCache(cache *Cache, ttl time.Duration) *AlunoCache {
	if ttl <= 0 {
		ttl = TTLAlunoCache
	}
	return &AlunoCache{cache: cache, ttl: ttl}
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot types
// ─────────────────────────────────────────────────────────────────────────────

type alunoSnapshot struct {
	ID              string              `json:"id"`
	CriadoEm        time.Time           `json:"criado_em"`
	AtualizadoEm    *time.Time          `json:"atualizado_em,omitempty"`
	RefAutenticacao string              `json:"ref_autenticacao"`
	Nome            string              `json:"nome"`
	Email           string              `json:"email"`
	DataNascimento  time.Time           `json:"data_nascimento"`
	Telefone        string              `json:"telefone,omitempty"`
	Genero          string              `json:"genero,omitempty"`
	Cidade          string              `json:"cidade,omitempty"`
	Estado          string              `json:"estado,omitempty"`
	CEP             string              `json:"cep,omitempty"`
	Ativo           bool                `json:"ativo"`
	Matriculas      []matriculaSnapshot `json:"matriculas,omitempty"`
}

type matriculaSnapshot struct {
	ID                  string                `json:"id"`
	CriadoEm            time.Time             `json:"criado_em"`
	AtualizadoEm        *time.Time            `json:"atualizado_em,omitempty"`
	AlunoID             string                `json:"aluno_id"`
	CursoID             string                `json:"curso_id"`
	Status              string                `json:"status"`
	FormaPagamento      string                `json:"forma_pagamento,omitempty"`
	Ativa               bool                  `json:"ativa"`
	ValorPago           float64               `json:"valor_pago"`
	PercentualConclusao float64               `json:"percentual_conclusao"`
	NotaFinal           *float64              `json:"nota_final,omitempty"`
	DataMatricula       time.Time             `json:"data_matricula"`
	DataInicio          time.Time             `json:"data_inicio"`
	DataTermino         *time.Time            `json:"data_termino,omitempty"`
	Observacoes         string                `json:"observacoes,omitempty"`
	Progressos          []progressoSnapshot   `json:"progressos,omitempty"`
	Certificados        []certificadoSnapshot `json:"certificados,omitempty"`
}

type progressoSnapshot struct {
	ID                     string     `json:"id"`
	CriadoEm               time.Time  `json:"criado_em"`
	AtualizadoEm           *time.Time `json:"atualizado_em,omitempty"`
	MatriculaID            string     `json:"matricula_id"`
	AulaID                 string     `json:"aula_id"`
	Status                 string     `json:"status"`
	PercentualAssistido    float64    `json:"percentual_assistido"`
	TempoAssistidoSegundos int        `json:"tempo_assistido_segundos"`
	DataInicio             *time.Time `json:"data_inicio,omitempty"`
	DataConclusao          *time.Time `json:"data_conclusao,omitempty"`
	UltimoAcesso           *time.Time `json:"ultimo_acesso,omitempty"`
	Nota                   *float64   `json:"nota,omitempty"`
	Observacoes            string     `json:"observacoes,omitempty"`
}

type certificadoSnapshot struct {
	ID              string     `json:"id"`
	CriadoEm        time.Time  `json:"criado_em"`
	AtualizadoEm    *time.Time `json:"atualizado_em,omitempty"`
	MatriculaID     string     `json:"matricula_id"`
	Codigo          string     `json:"codigo"`
	NomeCurso       string     `json:"nome_curso"`
	NomeAluno       string     `json:"nome_aluno"`
	NomeInstrutor   string     `json:"nome_instrutor,omitempty"`
	DataEmissao     time.Time  `json:"data_emissao"`
	DataValidade    *time.Time `json:"data_validade,omitempty"`
	CargaHoraria    int        `json:"carga_horaria"`
	NotaFinal       *float64   `json:"nota_final,omitempty"`
	Status          string     `json:"status"`
	ArquivoURL      string     `json:"arquivo_url,omitempty"`
	HashVerificacao string     `json:"hash_verificacao"`
	Observacoes     string     `json:"observacoes,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// aluno.Cache implementation
// ─────────────────────────────────────────────────────────────────────────────

// Get returns the cached aluno, or ErrCacheMiss.
func (c *AlunoCache) Get(ctx context.Context, id string) (*aluno.Aluno, error) {
	var snap alunoSnapshot
	if err := c.cache.Get(ctx, AlunoKey(id), &snap); err != nil {
		return nil, err
	}
	return snap.rehydrate(), nil
}

// Set stores the aluno aggregate with the configured TTL.
func (c *AlunoCache) Set(ctx context.Context, a *aluno.Aluno) error {
	if a == nil {
		return nil
	}
	return c.cache.Set(ctx, AlunoKey(a.ID), snapshotAluno(a), c.ttl)
}

// Invalidate removes the aluno from the cache.
func (c *AlunoCache) Invalidate(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, AlunoKey(id))
}

// ─────────────────────────────────────────────────────────────────────────────
// Conversion
// ─────────────────────────────────────────────────────────────────────────────

func snapshotAluno(a *aluno.Aluno) alunoSnapshot {
	matriculas := a.Matriculas()
	snap := alunoSnapshot{
		ID:              a.ID,
		CriadoEm:        a.CriadoEm,
		AtualizadoEm:    a.AtualizadoEm,
		RefAutenticacao: a.RefAutenticacao,
		Nome:            a.Nome,
		Email:           string(a.Email),
		DataNascimento:  a.DataNascimento,
		Telefone:        a.Telefone,
		Genero:          a.Genero,
		Cidade:          a.Cidade,
		Estado:          a.Estado,
		CEP:             a.CEP,
		Ativo:           a.Ativo,
		Matriculas:      make([]matriculaSnapshot, 0, len(matriculas)),
	}
	for _, m := range matriculas {
		snap.Matriculas = append(snap.Matriculas, snapshotMatricula(m))
	}
	return snap
}

func snapshotMatricula(m *matricula.MatriculaCurso) matriculaSnapshot {
	progressos := m.Progressos()
	certificados := m.Certificados()
	snap := matriculaSnapshot{
		ID:                  m.ID,
		CriadoEm:            m.CriadoEm,
		AtualizadoEm:        m.AtualizadoEm,
		AlunoID:             m.AlunoID,
		CursoID:             m.CursoID,
		Status:              string(m.Status),
		FormaPagamento:      m.FormaPagamento,
		Ativa:               m.Ativa,
		ValorPago:           m.ValorPago,
		PercentualConclusao: m.PercentualConclusao,
		NotaFinal:           m.NotaFinal,
		DataMatricula:       m.DataMatricula,
		DataInicio:          m.DataInicio,
		DataTermino:         m.DataTermino,
		Observacoes:         m.Observacoes,
		Progressos:          make([]progressoSnapshot, 0, len(progressos)),
		Certificados:        make([]certificadoSnapshot, 0, len(certificados)),
	}
	for _, p := range progressos {
		snap.Progressos = append(snap.Progressos, progressoSnapshot{
			ID:                     p.ID,
			CriadoEm:               p.CriadoEm,
			AtualizadoEm:           p.AtualizadoEm,
			MatriculaID:            p.MatriculaID,
			AulaID:                 p.AulaID,
			Status:                 string(p.Status),
			PercentualAssistido:    p.PercentualAssistido,
			TempoAssistidoSegundos: p.TempoAssistidoSegundos,
			DataInicio:             p.DataInicio,
			DataConclusao:          p.DataConclusao,
			UltimoAcesso:           p.UltimoAcesso,
			Nota:                   p.Nota,
			Observacoes:            p.Observacoes,
		})
	}
	for _, cert := range certificados {
		snap.Certificados = append(snap.Certificados, certificadoSnapshot{
			ID:              cert.ID,
			CriadoEm:        cert.CriadoEm,
			AtualizadoEm:    cert.AtualizadoEm,
			MatriculaID:     cert.MatriculaID,
			Codigo:          cert.Codigo,
			NomeCurso:       cert.NomeCurso,
			NomeAluno:       cert.NomeAluno,
			NomeInstrutor:   cert.NomeInstrutor,
			DataEmissao:     cert.DataEmissao,
			DataValidade:    cert.DataValidade,
			CargaHoraria:    cert.CargaHoraria,
			NotaFinal:       cert.NotaFinal,
			Status:          string(cert.Status),
			ArquivoURL:      cert.ArquivoURL,
			HashVerificacao: cert.HashVerificacao,
			Observacoes:     cert.Observacoes,
		})
	}
	return snap
}

func (s alunoSnapshot) rehydrate() *aluno.Aluno {
	matriculas := make([]*matricula.MatriculaCurso, 0, len(s.Matriculas))
	for _, m := range s.Matriculas {
		matriculas = append(matriculas, m.rehydrate())
	}
	return aluno.RehydrateAluno(
		shared.RehydrateEntidade(s.ID, s.CriadoEm, s.AtualizadoEm),
		s.RefAutenticacao,
		s.Nome,
		shared.Email(s.Email),
		s.DataNascimento,
		s.Telefone, s.Genero, s.Cidade, s.Estado, s.CEP,
		s.Ativo,
		matriculas,
	)
}

func (s matriculaSnapshot) rehydrate() *matricula.MatriculaCurso {
	progressos := make([]*matricula.Progresso, 0, len(s.Progressos))
	for _, p := range s.Progressos {
		progressos = append(progressos, matricula.RehydrateProgresso(
			shared.RehydrateEntidade(p.ID, p.CriadoEm, p.AtualizadoEm),
			p.MatriculaID,
			p.AulaID,
			matricula.StatusProgresso(p.Status),
			p.PercentualAssistido,
			p.TempoAssistidoSegundos,
			p.DataInicio, p.DataConclusao, p.UltimoAcesso,
			p.Nota,
			p.Observacoes,
		))
	}

	certificados := make([]*matricula.Certificado, 0, len(s.Certificados))
	for _, c := range s.Certificados {
		certificados = append(certificados, matricula.RehydrateCertificado(
			shared.RehydrateEntidade(c.ID, c.CriadoEm, c.AtualizadoEm),
			c.MatriculaID,
			c.NomeCurso,
			c.NomeAluno,
			c.DataEmissao,
			c.DataValidade,
			c.CargaHoraria,
			c.NotaFinal,
			matricula.StatusCertificado(c.Status),
			c.ArquivoURL, c.HashVerificacao, c.Observacoes, c.NomeInstrutor, c.Codigo,
		))
	}

	return matricula.RehydrateMatricula(
		shared.RehydrateEntidade(s.ID, s.CriadoEm, s.AtualizadoEm),
		s.AlunoID,
		s.CursoID,
		s.DataMatricula,
		s.DataInicio,
		s.DataTermino,
		matricula.Status(s.Status),
		s.ValorPago,
		s.FormaPagamento,
		s.PercentualConclusao,
		s.NotaFinal,
		s.Observacoes,
		s.Ativa,
		progressos,
		certificados,
	)
}
