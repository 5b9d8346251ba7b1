package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovaEntidade(t *testing.T) {
	e := NovaEntidade()

	assert.True(t, IDValido(e.ID))
	assert.False(t, e.CriadoEm.IsZero())
	assert.Equal(t, time.UTC, e.CriadoEm.Location())
	assert.Nil(t, e.AtualizadoEm)
}

func TestEntidade_Tocar(t *testing.T) {
	e := NovaEntidade()
	e.Tocar()

	require.NotNil(t, e.AtualizadoEm)
	assert.False(t, e.AtualizadoEm.Before(e.CriadoEm))
}

func TestRehydrateEntidade(t *testing.T) {
	criado := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	atualizado := criado.Add(time.Hour)

	e := RehydrateEntidade("id-1", criado, &atualizado)

	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, criado, e.CriadoEm)
	require.NotNil(t, e.AtualizadoEm)
	assert.Equal(t, atualizado, *e.AtualizadoEm)
}

func TestNovoEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Email
		wantErr bool
	}{
		{"valid", "aluno@escola.com.br", "aluno@escola.com.br", false},
		{"normalizes case and spaces", "  Aluno@Escola.COM ", "aluno@escola.com", false},
		{"missing at", "aluno.escola.com", "", true},
		{"missing domain", "aluno@", "", true},
		{"empty", "", "", true},
		{"whitespace inside", "alu no@escola.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NovoEmail(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmailInvalido)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNovoEmail_TooLong(t *testing.T) {
	local := make([]byte, MaxEmailLength)
	for i := range local {
		local[i] = 'a'
	}

	_, err := NovoEmail(string(local) + "@escola.com")
	assert.ErrorIs(t, err, ErrEmailInvalido)
}

func TestNovaNota(t *testing.T) {
	n, err := NovaNota(7.5)
	require.NoError(t, err)
	assert.Equal(t, 7.5, n.Float64())

	_, err = NovaNota(-0.1)
	assert.ErrorIs(t, err, ErrNotaInvalida)

	_, err = NovaNota(10.1)
	assert.ErrorIs(t, err, ErrNotaInvalida)
}

func TestValidarNotaOpcional(t *testing.T) {
	assert.NoError(t, ValidarNotaOpcional(nil))

	ok := 10.0
	assert.NoError(t, ValidarNotaOpcional(&ok))

	demais := 11.0
	assert.ErrorIs(t, ValidarNotaOpcional(&demais), ErrNotaInvalida)
}

func TestNovoPercentual(t *testing.T) {
	p, err := NovoPercentual(100)
	require.NoError(t, err)
	assert.True(t, p.Completo())

	p, err = NovoPercentual(99.9)
	require.NoError(t, err)
	assert.False(t, p.Completo())

	_, err = NovoPercentual(-1)
	assert.ErrorIs(t, err, ErrPercentualInvalido)

	_, err = NovoPercentual(100.5)
	assert.ErrorIs(t, err, ErrPercentualInvalido)
}

func TestNovoValorPago(t *testing.T) {
	v, err := NovoValorPago(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Float64())

	_, err = NovoValorPago(999999.99)
	assert.NoError(t, err)

	_, err = NovoValorPago(-0.01)
	assert.ErrorIs(t, err, ErrValorPagoInvalido)

	_, err = NovoValorPago(1000000)
	assert.ErrorIs(t, err, ErrValorPagoInvalido)
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, 0)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, DefaultPageSize, p.Limit())

	p = NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())

	p = NewPagination(1, 10000)
	assert.Equal(t, MaxPageSize, p.Limit())
}

func TestDomainError_Classifiers(t *testing.T) {
	assert.True(t, IsNotFound(ErrAlunoNotFound))
	assert.True(t, IsConflict(ErrMatriculaDuplicada))
	assert.True(t, IsInvalidState(ErrAlunoInativo))
	assert.True(t, IsValidation(ErrNomeInvalido))

	assert.False(t, IsNotFound(ErrMatriculaDuplicada))
	assert.False(t, IsConflict(ErrAlunoNotFound))
}

func TestDomainError_Is_MatchesSentinel(t *testing.T) {
	err := Validationf("aluno", "Validar", "campo %s invalido", "nome")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "nome")
}
