package aluno

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

func paramsValidos() NovoAlunoParams {
	return NovoAlunoParams{
		RefAutenticacao: "auth-123",
		Nome:            "Maria Silva",
		Email:           "maria.silva@educahub.com.br",
		DataNascimento:  time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Telefone:        "+55 11 99999-0000",
		Cidade:          "São Paulo",
		Estado:          "SP",
		CEP:             "01310-100",
	}
}

func novaMatriculaDe(t *testing.T, alunoID, cursoID string) *matricula.MatriculaCurso {
	t.Helper()
	m, err := matricula.NovaMatricula(matricula.NovaMatriculaParams{
		AlunoID:    alunoID,
		CursoID:    cursoID,
		DataInicio: time.Now().UTC(),
		ValorPago:  199.90,
	})
	require.NoError(t, err)
	return m
}

func TestNovoAluno(t *testing.T) {
	a, err := NovoAluno(paramsValidos())

	require.NoError(t, err)
	assert.True(t, shared.IDValido(a.ID))
	assert.Equal(t, "Maria Silva", a.Nome)
	assert.Equal(t, shared.Email("maria.silva@educahub.com.br"), a.Email)
	assert.True(t, a.Ativo)
	assert.Empty(t, a.Matriculas())
}

func TestNovoAluno_NormalizaCampos(t *testing.T) {
	params := paramsValidos()
	params.Nome = "  Maria Silva  "
	params.Email = "  MARIA.SILVA@EducaHub.com.BR "

	a, err := NovoAluno(params)

	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", a.Nome)
	assert.Equal(t, "maria.silva@educahub.com.br", a.Email.String())
}

func TestNovoAluno_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NovoAlunoParams)
		wantErr error
	}{
		{
			"nome curto",
			func(p *NovoAlunoParams) { p.Nome = "M" },
			shared.ErrNomeInvalido,
		},
		{
			"email invalido",
			func(p *NovoAlunoParams) { p.Email = "nao-tem-arroba" },
			shared.ErrEmailInvalido,
		},
		{
			"nascimento no futuro",
			func(p *NovoAlunoParams) { p.DataNascimento = time.Now().UTC().AddDate(1, 0, 0) },
			shared.ErrDataNascimentoFutura,
		},
		{
			"menor de 16 anos",
			func(p *NovoAlunoParams) { p.DataNascimento = time.Now().UTC().AddDate(-10, 0, 0) },
			shared.ErrIdadeForaDaFaixa,
		},
		{
			"mais de 100 anos",
			func(p *NovoAlunoParams) { p.DataNascimento = time.Now().UTC().AddDate(-120, 0, 0) },
			shared.ErrIdadeForaDaFaixa,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsValidos()
			tt.mutate(&params)

			_, err := NovoAluno(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNovoAluno_NomeLongo(t *testing.T) {
	params := paramsValidos()
	nome := make([]byte, MaxNome+1)
	for i := range nome {
		nome[i] = 'a'
	}
	params.Nome = string(nome)

	_, err := NovoAluno(params)
	assert.ErrorIs(t, err, shared.ErrNomeInvalido)
}

func TestAtualizarDados(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	err = a.AtualizarDados(AtualizarDadosParams{
		Nome:           "Maria S. Oliveira",
		Email:          "maria.oliveira@educahub.com.br",
		DataNascimento: a.DataNascimento,
		Cidade:         "Campinas",
		Estado:         "SP",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria S. Oliveira", a.Nome)
	assert.Equal(t, "maria.oliveira@educahub.com.br", a.Email.String())
	assert.Equal(t, "Campinas", a.Cidade)
	assert.NotNil(t, a.AtualizadoEm)
}

func TestAtualizarDados_RejeitaInvalido(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	err = a.AtualizarDados(AtualizarDadosParams{
		Nome:           "X",
		Email:          "maria@educahub.com.br",
		DataNascimento: a.DataNascimento,
	})

	assert.ErrorIs(t, err, shared.ErrNomeInvalido)
	assert.Equal(t, "Maria Silva", a.Nome)
}

func TestAtivarDesativar_Idempotente(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	a.Desativar()
	assert.False(t, a.Ativo)

	a.Desativar()
	assert.False(t, a.Ativo)

	a.Ativar()
	assert.True(t, a.Ativo)

	a.Ativar()
	assert.True(t, a.Ativo)
}

func TestCalcularIdade(t *testing.T) {
	params := paramsValidos()
	params.DataNascimento = time.Now().UTC().AddDate(-30, 0, -1)

	a, err := NovoAluno(params)
	require.NoError(t, err)

	assert.Equal(t, 30, a.CalcularIdade())
}

func TestAdicionarMatricula(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	m := novaMatriculaDe(t, a.ID, "curso-go")

	require.NoError(t, a.AdicionarMatricula(m))
	assert.Len(t, a.Matriculas(), 1)
	assert.True(t, a.EstaMatriculadoNoCurso("curso-go"))
}

func TestAdicionarMatricula_Nil(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	err = a.AdicionarMatricula(nil)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAdicionarMatricula_AlunoInativo(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)
	a.Desativar()

	m := novaMatriculaDe(t, a.ID, "curso-go")

	err = a.AdicionarMatricula(m)
	assert.ErrorIs(t, err, shared.ErrAlunoInativo)
	assert.Empty(t, a.Matriculas())
}

func TestAdicionarMatricula_CursoDuplicado(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	require.NoError(t, a.AdicionarMatricula(novaMatriculaDe(t, a.ID, "curso-go")))

	err = a.AdicionarMatricula(novaMatriculaDe(t, a.ID, "curso-go"))
	assert.ErrorIs(t, err, shared.ErrMatriculaDuplicada)
	assert.Len(t, a.Matriculas(), 1)
}

func TestAdicionarMatricula_DeOutroAluno(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	m := novaMatriculaDe(t, shared.NovoID(), "curso-go")

	err = a.AdicionarMatricula(m)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestBuscarMatricula(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	m := novaMatriculaDe(t, a.ID, "curso-go")
	require.NoError(t, a.AdicionarMatricula(m))

	encontrada, err := a.BuscarMatricula(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, encontrada.ID)

	_, err = a.BuscarMatricula("inexistente")
	assert.ErrorIs(t, err, shared.ErrMatriculaNotFound)
}

func TestBuscarMatriculaPorCurso(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	m := novaMatriculaDe(t, a.ID, "curso-go")
	require.NoError(t, a.AdicionarMatricula(m))

	assert.NotNil(t, a.BuscarMatriculaPorCurso("curso-go"))
	assert.Nil(t, a.BuscarMatriculaPorCurso("curso-rust"))
}

func TestRemoverMatricula(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	m := novaMatriculaDe(t, a.ID, "curso-go")
	require.NoError(t, a.AdicionarMatricula(m))

	require.NoError(t, a.RemoverMatricula(m.ID))
	assert.Empty(t, a.Matriculas())

	err = a.RemoverMatricula(m.ID)
	assert.ErrorIs(t, err, shared.ErrMatriculaNotFound)
}

func TestMatriculas_RetornaCopia(t *testing.T) {
	a, err := NovoAluno(paramsValidos())
	require.NoError(t, err)

	require.NoError(t, a.AdicionarMatricula(novaMatriculaDe(t, a.ID, "curso-go")))

	copia := a.Matriculas()
	copia[0] = nil

	assert.NotNil(t, a.Matriculas()[0])
}
