package matricula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

func progressoNovo(t *testing.T) *Progresso {
	t.Helper()
	p, err := NovoProgresso(shared.NovoID(), "aula-1")
	require.NoError(t, err)
	return p
}

func TestNovoProgresso(t *testing.T) {
	p := progressoNovo(t)

	assert.Equal(t, ProgressoNaoIniciado, p.Status)
	assert.Equal(t, 0.0, p.PercentualAssistido)
	assert.Equal(t, 0, p.TempoAssistidoSegundos)
	assert.Nil(t, p.DataInicio)
	assert.Nil(t, p.UltimoAcesso)
}

func TestNovoProgresso_CamposObrigatorios(t *testing.T) {
	_, err := NovoProgresso("", "aula-1")
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = NovoProgresso(shared.NovoID(), "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestProgressoIniciar(t *testing.T) {
	p := progressoNovo(t)

	require.NoError(t, p.Iniciar())

	assert.Equal(t, ProgressoEmAndamento, p.Status)
	require.NotNil(t, p.DataInicio)
	assert.NotNil(t, p.UltimoAcesso)
}

func TestProgressoIniciar_PreservaDataInicio(t *testing.T) {
	p := progressoNovo(t)

	require.NoError(t, p.Iniciar())
	primeira := *p.DataInicio

	require.NoError(t, p.Iniciar())
	assert.Equal(t, primeira, *p.DataInicio)
}

func TestProgressoIniciar_AulaConcluida(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.Iniciar())
	require.NoError(t, p.Concluir(nil))

	assert.ErrorIs(t, p.Iniciar(), shared.ErrAulaJaConcluida)
}

func TestAtualizarProgresso_IniciaAutomaticamente(t *testing.T) {
	p := progressoNovo(t)

	require.NoError(t, p.AtualizarProgresso(35, 600))

	assert.Equal(t, ProgressoEmAndamento, p.Status)
	assert.Equal(t, 35.0, p.PercentualAssistido)
	assert.Equal(t, 600, p.TempoAssistidoSegundos)
	assert.NotNil(t, p.DataInicio)
}

func TestAtualizarProgresso_ConcluiAos100(t *testing.T) {
	p := progressoNovo(t)

	require.NoError(t, p.AtualizarProgresso(100, 3600))

	assert.True(t, p.EstaConcluida())
	assert.Equal(t, 100.0, p.PercentualAssistido)
	assert.NotNil(t, p.DataConclusao)
}

func TestAtualizarProgresso_ConcluidaNaoMuda(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.AtualizarProgresso(100, 3600))

	require.NoError(t, p.AtualizarProgresso(10, 60))

	assert.Equal(t, ProgressoConcluido, p.Status)
	assert.Equal(t, 100.0, p.PercentualAssistido)
	assert.Equal(t, 3600, p.TempoAssistidoSegundos)
}

func TestAtualizarProgresso_Limites(t *testing.T) {
	p := progressoNovo(t)

	assert.ErrorIs(t, p.AtualizarProgresso(-1, 0), shared.ErrPercentualInvalido)
	assert.ErrorIs(t, p.AtualizarProgresso(101, 0), shared.ErrPercentualInvalido)
	assert.ErrorIs(t, p.AtualizarProgresso(50, -1), shared.ErrTempoAssistidoInvalido)
	assert.ErrorIs(t, p.AtualizarProgresso(50, MaxTempoAssistidoSegundos+1), shared.ErrTempoAssistidoInvalido)
}

func TestProgressoConcluir(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.Iniciar())

	nota := 8.0
	require.NoError(t, p.Concluir(&nota))

	assert.True(t, p.EstaConcluida())
	assert.Equal(t, 100.0, p.PercentualAssistido)
	require.NotNil(t, p.Nota)
	assert.Equal(t, 8.0, *p.Nota)
}

func TestProgressoConcluir_NaoIniciada(t *testing.T) {
	p := progressoNovo(t)

	assert.ErrorIs(t, p.Concluir(nil), shared.ErrAulaNaoIniciada)
}

func TestProgressoConcluir_NotaInvalida(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.Iniciar())

	nota := -1.0
	assert.ErrorIs(t, p.Concluir(&nota), shared.ErrNotaInvalida)
	assert.Equal(t, ProgressoEmAndamento, p.Status)
}

func TestReiniciar(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.AtualizarProgresso(100, 3600))

	p.Reiniciar()

	assert.Equal(t, ProgressoNaoIniciado, p.Status)
	assert.Equal(t, 0.0, p.PercentualAssistido)
	assert.Equal(t, 0, p.TempoAssistidoSegundos)
	assert.Nil(t, p.DataInicio)
	assert.Nil(t, p.DataConclusao)
	assert.Nil(t, p.UltimoAcesso)
	assert.Nil(t, p.Nota)
}

func TestEstaAbandonada(t *testing.T) {
	p := progressoNovo(t)
	assert.False(t, p.EstaAbandonada(24))

	require.NoError(t, p.Iniciar())
	assert.False(t, p.EstaAbandonada(24))

	antigo := time.Now().UTC().Add(-48 * time.Hour)
	p.UltimoAcesso = &antigo
	assert.True(t, p.EstaAbandonada(24))
	assert.False(t, p.EstaAbandonada(72))

	// limite <= 0 cai no padrão de 24 horas
	assert.True(t, p.EstaAbandonada(0))
}

func TestEstaAbandonada_ConcluidaNunca(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.AtualizarProgresso(100, 60))

	antigo := time.Now().UTC().Add(-48 * time.Hour)
	p.UltimoAcesso = &antigo

	assert.False(t, p.EstaAbandonada(24))
}

func TestProgressoClone(t *testing.T) {
	p := progressoNovo(t)
	require.NoError(t, p.AtualizarProgresso(50, 300))

	clone := p.Clone()
	clone.PercentualAssistido = 75

	assert.Equal(t, 50.0, p.PercentualAssistido)
	assert.Equal(t, p.ID, clone.ID)
}
