package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

func TestConcluirMatricula(t *testing.T) {
	alunoRepo := newFakeAlunoRepo()
	matriculaRepo := newFakeMatriculaRepo()
	cache := &fakeAlunoCache{}
	pub := &fakePublisher{}
	handler := NewConcluirMatriculaHandler(alunoRepo, matriculaRepo, cache, pub, DefaultConcluirMatriculaHandlerConfig())

	m := matriculaSalvaEmAndamento(t, matriculaRepo)
	nota := 9.0

	result, err := handler.Handle(context.Background(), ConcluirMatriculaCommand{
		MatriculaID: m.ID,
		NotaFinal:   &nota,
	})

	require.NoError(t, err)
	assert.Equal(t, matricula.StatusConcluida, result.Status)
	require.NotNil(t, result.NotaFinal)
	assert.Equal(t, 9.0, *result.NotaFinal)
	assert.NotNil(t, result.DataTermino)
	assert.False(t, result.CertificadoEmitido)

	assert.Equal(t, []string{m.AlunoID}, cache.invalidacoes)
	assert.Equal(t, []shared.EventType{shared.EventMatriculaConcluida}, pub.tipos())
}

func TestConcluirMatricula_ComCertificado(t *testing.T) {
	alunoRepo := newFakeAlunoRepo()
	matriculaRepo := newFakeMatriculaRepo()
	pub := &fakePublisher{}
	handler := NewConcluirMatriculaHandler(alunoRepo, matriculaRepo, nil, pub, ConcluirMatriculaHandlerConfig{
		EmitirCertificado:       true,
		ValidadeCertificadoDias: 365,
	})

	a := alunoCadastrado(t, alunoRepo)
	m, err := matricula.NovaMatricula(matricula.NovaMatriculaParams{
		AlunoID:    a.ID,
		CursoID:    "curso-go",
		DataInicio: time.Now().UTC(),
		ValorPago:  199.90,
	})
	require.NoError(t, err)
	require.NoError(t, m.Iniciar())
	require.NoError(t, matriculaRepo.Create(context.Background(), m))

	result, err := handler.Handle(context.Background(), ConcluirMatriculaCommand{
		MatriculaID:   m.ID,
		NomeCurso:     "Go Avancado",
		CargaHoraria:  40,
		NomeInstrutor: "Prof. Carlos",
	})

	require.NoError(t, err)
	assert.True(t, result.CertificadoEmitido)
	assert.NotEmpty(t, result.CertificadoCodigo)

	certs := m.Certificados()
	require.Len(t, certs, 1)
	assert.Equal(t, "Maria Silva", certs[0].NomeAluno)
	assert.Equal(t, 40, certs[0].CargaHoraria)
	require.NotNil(t, certs[0].DataValidade)

	assert.Equal(t, []shared.EventType{shared.EventMatriculaConcluida, shared.EventCertificadoEmitido}, pub.tipos())
}

func TestConcluirMatricula_CertificadoSemDadosDoCurso(t *testing.T) {
	alunoRepo := newFakeAlunoRepo()
	matriculaRepo := newFakeMatriculaRepo()
	handler := NewConcluirMatriculaHandler(alunoRepo, matriculaRepo, nil, &fakePublisher{}, ConcluirMatriculaHandlerConfig{
		EmitirCertificado: true,
	})

	a := alunoCadastrado(t, alunoRepo)
	m, err := matricula.NovaMatricula(matricula.NovaMatriculaParams{
		AlunoID:    a.ID,
		CursoID:    "curso-go",
		DataInicio: time.Now().UTC(),
		ValorPago:  100,
	})
	require.NoError(t, err)
	require.NoError(t, m.Iniciar())
	require.NoError(t, matriculaRepo.Create(context.Background(), m))

	_, err = handler.Handle(context.Background(), ConcluirMatriculaCommand{MatriculaID: m.ID})

	assert.ErrorIs(t, err, shared.ErrNomeCertificadoCurto)
}

func TestConcluirMatricula_EstadoInvalido(t *testing.T) {
	matriculaRepo := newFakeMatriculaRepo()
	pub := &fakePublisher{}
	handler := NewConcluirMatriculaHandler(newFakeAlunoRepo(), matriculaRepo, nil, pub, DefaultConcluirMatriculaHandlerConfig())

	m := matriculaSalva(t, matriculaRepo)

	_, err := handler.Handle(context.Background(), ConcluirMatriculaCommand{MatriculaID: m.ID})

	assert.ErrorIs(t, err, shared.ErrStateTransition)
	assert.Empty(t, pub.eventos)
}

func TestConcluirMatricula_NaoEncontrada(t *testing.T) {
	handler := NewConcluirMatriculaHandler(newFakeAlunoRepo(), newFakeMatriculaRepo(), nil, &fakePublisher{}, DefaultConcluirMatriculaHandlerConfig())

	_, err := handler.Handle(context.Background(), ConcluirMatriculaCommand{MatriculaID: shared.NovoID()})

	assert.ErrorIs(t, err, shared.ErrMatriculaNotFound)
}
