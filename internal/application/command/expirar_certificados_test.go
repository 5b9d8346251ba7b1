package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

func certificadoVencido(t *testing.T) *matricula.Certificado {
	t.Helper()
	cert, err := matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
		MatriculaID:  shared.NovoID(),
		NomeCurso:    "Go Avancado",
		NomeAluno:    "Maria Silva",
		CargaHoraria: 40,
		ValidadeDias: 30,
	})
	require.NoError(t, err)

	vencida := time.Now().UTC().Add(-time.Hour)
	cert.DataValidade = &vencida
	return cert
}

func TestExpirarCertificados(t *testing.T) {
	vencido := certificadoVencido(t)
	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{vencido}}
	cache := &fakeCertificadoCache{}
	pub := &fakePublisher{}
	handler := NewExpirarCertificadosHandler(repo, cache, pub)

	result, err := handler.Handle(context.Background(), ExpirarCertificadosCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Examinados)
	assert.Equal(t, 1, result.Expirados)
	assert.Empty(t, result.Falhas)

	assert.Equal(t, matricula.CertificadoExpirado, vencido.Status)
	assert.Equal(t, []string{vencido.Codigo}, repo.statusSaves)
	assert.Equal(t, []string{vencido.Codigo}, cache.invalidacoes)
	assert.Equal(t, []shared.EventType{shared.EventCertificadoExpirado}, pub.tipos())
}

func TestExpirarCertificados_IgnoraVigentes(t *testing.T) {
	vigente, err := matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
		MatriculaID:  shared.NovoID(),
		NomeCurso:    "Go Avancado",
		NomeAluno:    "Maria Silva",
		CargaHoraria: 40,
		ValidadeDias: 365,
	})
	require.NoError(t, err)

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{vigente}}
	handler := NewExpirarCertificadosHandler(repo, nil, &fakePublisher{})

	result, err := handler.Handle(context.Background(), ExpirarCertificadosCommand{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Examinados)
	assert.Equal(t, 0, result.Expirados)
	assert.Equal(t, matricula.CertificadoAtivo, vigente.Status)
}

func TestExpirarCertificados_FalhaDePersistenciaNaoAbortaVarredura(t *testing.T) {
	vencido := certificadoVencido(t)
	repo := &fakeCertificadoRepo{
		certificados: []*matricula.Certificado{vencido},
		updateErr:    errors.New("conexao perdida"),
	}
	pub := &fakePublisher{}
	handler := NewExpirarCertificadosHandler(repo, nil, pub)

	result, err := handler.Handle(context.Background(), ExpirarCertificadosCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Examinados)
	assert.Equal(t, 0, result.Expirados)
	assert.Contains(t, result.Falhas, vencido.Codigo)
	assert.Empty(t, pub.eventos)
}

func TestExpirarCertificados_ErroDeListagem(t *testing.T) {
	repo := &fakeCertificadoRepo{listErr: errors.New("timeout")}
	handler := NewExpirarCertificadosHandler(repo, nil, &fakePublisher{})

	_, err := handler.Handle(context.Background(), ExpirarCertificadosCommand{})

	assert.Error(t, err)
}

func TestExpirarCertificados_CorteExplicito(t *testing.T) {
	// validade daqui a 10 dias: entra na varredura com corte em 30 dias
	cert, err := matricula.EmitirCertificado(matricula.EmitirCertificadoParams{
		MatriculaID:  shared.NovoID(),
		NomeCurso:    "Go Avancado",
		NomeAluno:    "Maria Silva",
		CargaHoraria: 40,
		ValidadeDias: 10,
	})
	require.NoError(t, err)

	repo := &fakeCertificadoRepo{certificados: []*matricula.Certificado{cert}}
	handler := NewExpirarCertificadosHandler(repo, nil, &fakePublisher{})

	result, err := handler.Handle(context.Background(), ExpirarCertificadosCommand{
		Ate: time.Now().UTC().AddDate(0, 0, 30),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Examinados)
	// validade ainda não venceu de fato, então MarcarExpirado recusa
	assert.Equal(t, 0, result.Expirados)
	assert.Contains(t, result.Falhas, cert.Codigo)
}
