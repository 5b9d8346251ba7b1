package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

func TestCancelarMatricula(t *testing.T) {
	repo := newFakeMatriculaRepo()
	cache := &fakeAlunoCache{}
	pub := &fakePublisher{}
	handler := NewCancelarMatriculaHandler(repo, cache, pub)

	m := matriculaSalvaEmAndamento(t, repo)

	result, err := handler.Handle(context.Background(), CancelarMatriculaCommand{
		MatriculaID: m.ID,
		Motivo:      "desistencia do aluno",
	})

	require.NoError(t, err)
	assert.Equal(t, matricula.StatusCancelada, result.Status)
	assert.False(t, m.Ativa)
	assert.Contains(t, m.Observacoes, "desistencia do aluno")

	assert.Equal(t, []string{m.AlunoID}, cache.invalidacoes)
	assert.Equal(t, []shared.EventType{shared.EventMatriculaCancelada}, pub.tipos())
}

func TestCancelarMatricula_Concluida(t *testing.T) {
	repo := newFakeMatriculaRepo()
	pub := &fakePublisher{}
	handler := NewCancelarMatriculaHandler(repo, nil, pub)

	m := matriculaSalvaEmAndamento(t, repo)
	require.NoError(t, m.Concluir(nil))

	_, err := handler.Handle(context.Background(), CancelarMatriculaCommand{MatriculaID: m.ID})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Empty(t, pub.eventos)
}

func TestCancelarMatricula_NaoEncontrada(t *testing.T) {
	handler := NewCancelarMatriculaHandler(newFakeMatriculaRepo(), nil, &fakePublisher{})

	_, err := handler.Handle(context.Background(), CancelarMatriculaCommand{MatriculaID: shared.NovoID()})

	assert.ErrorIs(t, err, shared.ErrMatriculaNotFound)
}
