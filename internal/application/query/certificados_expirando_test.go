package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
)

func certificadoValidoAte(t *testing.T, validade time.Time) *matricula.Certificado {
	t.Helper()
	cert := certificadoEmitido(t)
	cert.DataValidade = &validade
	return cert
}

func TestCertificadosExpirando(t *testing.T) {
	agora := time.Now().UTC()
	dentro := certificadoValidoAte(t, agora.Add(2*time.Hour))
	fora := certificadoValidoAte(t, agora.Add(100*24*time.Hour))

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{dentro, fora}}
	handler := NewCertificadosExpirandoHandler(repo)

	result, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{})

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, result.Janela)
	assert.False(t, result.Referencia.IsZero())
	require.Len(t, result.Certificados, 1)

	row := result.Certificados[0]
	assert.Equal(t, dentro.ID, row.CertificadoID)
	assert.Equal(t, dentro.MatriculaID, row.MatriculaID)
	assert.Equal(t, dentro.Codigo, row.Codigo)
	assert.Equal(t, "Maria Silva", row.NomeAluno)
	assert.Equal(t, "Go Avancado", row.NomeCurso)
	assert.Equal(t, 0, row.DiasRestantes)
	assert.False(t, row.JaVencido)
}

func TestCertificadosExpirando_JanelaExplicita(t *testing.T) {
	agora := time.Now().UTC()
	cert := certificadoValidoAte(t, agora.Add(5*24*time.Hour))

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewCertificadosExpirandoHandler(repo)

	result, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{
		Janela:     10 * 24 * time.Hour,
		Referencia: agora,
	})

	require.NoError(t, err)
	assert.Equal(t, 10*24*time.Hour, result.Janela)
	assert.Equal(t, agora, result.Referencia)
	require.Len(t, result.Certificados, 1)
	assert.InDelta(t, 5, result.Certificados[0].DiasRestantes, 1)
}

func TestCertificadosExpirando_JaVencido(t *testing.T) {
	vencido := certificadoValidoAte(t, time.Now().UTC().Add(-time.Hour))

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{vencido}}
	handler := NewCertificadosExpirandoHandler(repo)

	result, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{})

	require.NoError(t, err)
	require.Len(t, result.Certificados, 1)
	assert.True(t, result.Certificados[0].JaVencido)
	assert.Equal(t, 0, result.Certificados[0].DiasRestantes)
}

func TestCertificadosExpirando_JanelaNegativa(t *testing.T) {
	handler := NewCertificadosExpirandoHandler(&fakeCertificadoRepo{})

	_, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{Janela: -time.Hour})

	assert.Error(t, err)
}

func TestCertificadosExpirando_ErroDoRepositorio(t *testing.T) {
	falha := errors.New("db offline")
	repo := &fakeCertificadoRepo{listErr: falha}
	handler := NewCertificadosExpirandoHandler(repo)

	_, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{})

	assert.ErrorIs(t, err, falha)
}

func TestCertificadosExpirando_SemValidadeExcluido(t *testing.T) {
	cert, err := matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
		MatriculaID:   "mat-1",
		NomeCurso:     "Go Avancado",
		NomeAluno:     "Maria Silva",
		CargaHoraria:  40,
		NomeInstrutor: "Prof. Carlos",
	})
	require.NoError(t, err)
	require.Nil(t, cert.DataValidade)

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewCertificadosExpirandoHandler(repo)

	result, err := handler.Handle(context.Background(), CertificadosExpirandoQuery{})

	require.NoError(t, err)
	assert.Empty(t, result.Certificados)
}
