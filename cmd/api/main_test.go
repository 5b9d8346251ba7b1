package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplication_NomesListaTodosOsHandlers(t *testing.T) {
	nomes := (&application{}).nomes()

	assert.Len(t, nomes, 10)
	assert.Contains(t, nomes, "CadastrarAluno")
	assert.Contains(t, nomes, "ExpirarCertificados")
	assert.Contains(t, nomes, "ValidarCertificado")
	assert.Contains(t, nomes, "CertificadosExpirando")
}
