package query

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
	"github.com/educahub/educa-learning-hub/pkg/timeutil"
)

func certificadoEmitido(t *testing.T) *matricula.Certificado {
	t.Helper()
	cert, err := matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
		MatriculaID:   shared.NovoID(),
		NomeCurso:     "Go Avancado",
		NomeAluno:     "Maria Silva",
		CargaHoraria:  40,
		NomeInstrutor: "Prof. Carlos",
		ValidadeDias:  365,
	})
	require.NoError(t, err)
	return cert
}

func TestValidarCertificado(t *testing.T) {
	cert := certificadoEmitido(t)
	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewValidarCertificadoHandler(repo, nil)

	result, err := handler.Handle(context.Background(), ValidarCertificadoQuery{Codigo: cert.Codigo})

	require.NoError(t, err)
	assert.True(t, result.Verificacao.Valido)
	assert.Equal(t, "Maria Silva", result.Verificacao.NomeAluno)
	assert.Equal(t, "Go Avancado", result.Verificacao.NomeCurso)
	assert.Equal(t, string(matricula.CertificadoAtivo), result.Verificacao.Status)
	assert.Equal(t, timeutil.FormatBrazilian(cert.DataEmissao), result.Verificacao.EmitidoEm)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, result.Verificacao.EmitidoEm)
	assert.Nil(t, result.HashConfere)
	assert.False(t, result.DoCache)
}

func TestValidarCertificado_NaoEncontrado(t *testing.T) {
	handler := NewValidarCertificadoHandler(&fakeCertificadoRepo{}, nil)

	_, err := handler.Handle(context.Background(), ValidarCertificadoQuery{Codigo: "CERT-INEXISTENTE"})

	assert.ErrorIs(t, err, shared.ErrCertificadoNotFound)
}

func TestValidarCertificado_CodigoObrigatorio(t *testing.T) {
	handler := NewValidarCertificadoHandler(&fakeCertificadoRepo{}, nil)

	_, err := handler.Handle(context.Background(), ValidarCertificadoQuery{})

	assert.Error(t, err)
}

func TestValidarCertificado_RevogadoInvalido(t *testing.T) {
	cert := certificadoEmitido(t)
	require.NoError(t, cert.Revogar("fraude"))

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewValidarCertificadoHandler(repo, nil)

	result, err := handler.Handle(context.Background(), ValidarCertificadoQuery{Codigo: cert.Codigo})

	require.NoError(t, err)
	assert.False(t, result.Verificacao.Valido)
	assert.Equal(t, string(matricula.CertificadoRevogado), result.Verificacao.Status)
}

func TestValidarCertificado_ValidadeVencidaInvalida(t *testing.T) {
	cert := certificadoEmitido(t)
	vencida := time.Now().UTC().Add(-time.Hour)
	cert.DataValidade = &vencida

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewValidarCertificadoHandler(repo, nil)

	result, err := handler.Handle(context.Background(), ValidarCertificadoQuery{Codigo: cert.Codigo})

	require.NoError(t, err)
	// status armazenado segue ativo; o veredito deriva da data
	assert.Equal(t, string(matricula.CertificadoAtivo), result.Verificacao.Status)
	assert.False(t, result.Verificacao.Valido)
}

func TestValidarCertificado_Hash(t *testing.T) {
	cert := certificadoEmitido(t)
	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewValidarCertificadoHandler(repo, nil)

	result, err := handler.Handle(context.Background(), ValidarCertificadoQuery{
		Codigo: cert.Codigo,
		Hash:   strings.ToUpper(cert.HashVerificacao),
	})

	require.NoError(t, err)
	require.NotNil(t, result.HashConfere)
	assert.True(t, *result.HashConfere)

	result, err = handler.Handle(context.Background(), ValidarCertificadoQuery{
		Codigo: cert.Codigo,
		Hash:   "deadbeef",
	})

	require.NoError(t, err)
	require.NotNil(t, result.HashConfere)
	assert.False(t, *result.HashConfere)
}

func TestValidarCertificado_UsaCache(t *testing.T) {
	cert := certificadoEmitido(t)
	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	cache := newFakeVerificacaoCache()
	handler := NewValidarCertificadoHandler(repo, cache)

	q := ValidarCertificadoQuery{Codigo: cert.Codigo}

	primeiro, err := handler.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, primeiro.DoCache)
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, 1, cache.sets)

	segundo, err := handler.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, segundo.DoCache)
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, primeiro.Verificacao.Codigo, segundo.Verificacao.Codigo)

	assert.Equal(t, int64(2), cache.contagens[cert.Codigo])
}

func TestValidarCertificado_HashIgnoraCache(t *testing.T) {
	cert := certificadoEmitido(t)
	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	cache := newFakeVerificacaoCache()
	handler := NewValidarCertificadoHandler(repo, cache)

	_, err := handler.Handle(context.Background(), ValidarCertificadoQuery{Codigo: cert.Codigo})
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), ValidarCertificadoQuery{
		Codigo: cert.Codigo,
		Hash:   cert.HashVerificacao,
	})

	require.NoError(t, err)
	assert.False(t, result.DoCache)
	assert.Equal(t, 2, repo.getCalls)
	require.NotNil(t, result.HashConfere)
	assert.True(t, *result.HashConfere)
}
