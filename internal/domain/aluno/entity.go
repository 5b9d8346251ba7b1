package aluno

import (
	"fmt"
	"strings"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// Limites de validação do perfil.
const (
	MinNome   = 2
	MaxNome   = 100
	IdadeMin  = 16
	IdadeMax  = 100
)

// ══════════════════════════════════════════════════════════════════════════════
// RAIZ DE AGREGADO: ALUNO
// ══════════════════════════════════════════════════════════════════════════════

// Aluno representa o perfil do aluno e é dono das matrículas dele.
// A coleção de matrículas é privada; mutações passam pelos métodos da raiz.
type Aluno struct {
	shared.Entidade

	// RefAutenticacao - referência ao identificador do provedor de
	// autenticação externo.
	RefAutenticacao string

	// Nome - nome completo (2-100 caracteres).
	Nome string

	// Email - e-mail normalizado (minúsculo, sem espaços, <= 200).
	Email shared.Email

	// DataNascimento - data de nascimento; a idade derivada deve estar
	// entre 16 e 100 anos.
	DataNascimento time.Time

	// Telefone - telefone de contato, opcional.
	Telefone string

	// Genero - gênero, opcional.
	Genero string

	// Cidade, Estado, CEP - endereço resumido, opcional.
	Cidade string
	Estado string
	CEP    string

	// Ativo - aluno ativo na plataforma. Aluno inativo não recebe novas
	// matrículas.
	Ativo bool

	// matriculas - coleção interna, exposta como cópia via Matriculas().
	matriculas []*matricula.MatriculaCurso
}

// NovoAlunoParams contém os parâmetros de cadastro de um aluno.
type NovoAlunoParams struct {
	RefAutenticacao string
	Nome            string
	Email           string
	DataNascimento  time.Time
	Telefone        string
	Genero          string
	Cidade          string
	Estado          string
	CEP             string
}

// NovoAluno cria um aluno validado e ativo.
func NovoAluno(params NovoAlunoParams) (*Aluno, error) {
	nome := strings.TrimSpace(params.Nome)
	email, err := shared.NovoEmail(params.Email)
	if err != nil {
		return nil, err
	}
	if err := validarNome(nome); err != nil {
		return nil, err
	}
	if err := validarNascimento(params.DataNascimento); err != nil {
		return nil, err
	}

	return &Aluno{
		Entidade:        shared.NovaEntidade(),
		RefAutenticacao: strings.TrimSpace(params.RefAutenticacao),
		Nome:            nome,
		Email:           email,
		DataNascimento:  params.DataNascimento,
		Telefone:        strings.TrimSpace(params.Telefone),
		Genero:          strings.TrimSpace(params.Genero),
		Cidade:          strings.TrimSpace(params.Cidade),
		Estado:          strings.TrimSpace(params.Estado),
		CEP:             strings.TrimSpace(params.CEP),
		Ativo:           true,
	}, nil
}

// RehydrateAluno reconstrói um aluno a partir do estado persistido, com as
// matrículas já carregadas, sem revalidar as regras de cadastro.
// Uso exclusivo da camada de persistência.
func RehydrateAluno(
	base shared.Entidade,
	refAutenticacao, nome string,
	email shared.Email,
	dataNascimento time.Time,
	telefone, genero, cidade, estado, cep string,
	ativo bool,
	matriculas []*matricula.MatriculaCurso,
) *Aluno {
	return &Aluno{
		Entidade:        base,
		RefAutenticacao: refAutenticacao,
		Nome:            nome,
		Email:           email,
		DataNascimento:  dataNascimento,
		Telefone:        telefone,
		Genero:          genero,
		Cidade:          cidade,
		Estado:          estado,
		CEP:             cep,
		Ativo:           ativo,
		matriculas:      matriculas,
	}
}

func validarNome(nome string) error {
	if len(nome) < MinNome || len(nome) > MaxNome {
		return shared.ErrNomeInvalido
	}
	return nil
}

func validarNascimento(nascimento time.Time) error {
	if nascimento.IsZero() {
		return shared.Validationf("aluno", "Validar", "data de nascimento is required")
	}
	now := time.Now().UTC()
	if nascimento.After(now) {
		return shared.ErrDataNascimentoFutura
	}
	idade := calcularIdade(nascimento, now)
	if idade < IdadeMin || idade > IdadeMax {
		return shared.ErrIdadeForaDaFaixa
	}
	return nil
}

// calcularIdade computa a idade em anos completos, descontando um ano quando
// o aniversário ainda não chegou na data de referência.
func calcularIdade(nascimento, ref time.Time) int {
	idade := ref.Year() - nascimento.Year()
	aniversario := time.Date(ref.Year(), nascimento.Month(), nascimento.Day(), 0, 0, 0, 0, time.UTC)
	if aniversario.After(ref) {
		idade--
	}
	return idade
}

// ══════════════════════════════════════════════════════════════════════════════
// PERFIL
// ══════════════════════════════════════════════════════════════════════════════

// AtualizarDadosParams contém os campos atualizáveis do perfil.
type AtualizarDadosParams struct {
	Nome           string
	Email          string
	DataNascimento time.Time
	Telefone       string
	Genero         string
	Cidade         string
	Estado         string
	CEP            string
}

// AtualizarDados atualiza o perfil com as mesmas validações do cadastro.
func (a *Aluno) AtualizarDados(params AtualizarDadosParams) error {
	nome := strings.TrimSpace(params.Nome)
	email, err := shared.NovoEmail(params.Email)
	if err != nil {
		return err
	}
	if err := validarNome(nome); err != nil {
		return err
	}
	if err := validarNascimento(params.DataNascimento); err != nil {
		return err
	}

	a.Nome = nome
	a.Email = email
	a.DataNascimento = params.DataNascimento
	a.Telefone = strings.TrimSpace(params.Telefone)
	a.Genero = strings.TrimSpace(params.Genero)
	a.Cidade = strings.TrimSpace(params.Cidade)
	a.Estado = strings.TrimSpace(params.Estado)
	a.CEP = strings.TrimSpace(params.CEP)
	a.Tocar()

	return nil
}

// Ativar liga a flag de atividade. Idempotente: ativar um aluno já ativo não
// é erro.
func (a *Aluno) Ativar() {
	a.Ativo = true
	a.Tocar()
}

// Desativar desliga a flag de atividade. Idempotente.
func (a *Aluno) Desativar() {
	a.Ativo = false
	a.Tocar()
}

// CalcularIdade retorna a idade atual do aluno em anos completos.
func (a *Aluno) CalcularIdade() int {
	return calcularIdade(a.DataNascimento, time.Now().UTC())
}

// ══════════════════════════════════════════════════════════════════════════════
// MATRÍCULAS
// ══════════════════════════════════════════════════════════════════════════════

// AdicionarMatricula anexa uma matrícula ao aluno. Falha para aluno inativo
// e para curso já matriculado (um curso por aluno).
func (a *Aluno) AdicionarMatricula(m *matricula.MatriculaCurso) error {
	if m == nil {
		return shared.Validationf("aluno", "AdicionarMatricula", "matricula is required")
	}
	if !a.Ativo {
		return shared.ErrAlunoInativo
	}
	if m.AlunoID != a.ID {
		return shared.Validationf("aluno", "AdicionarMatricula",
			"matricula belongs to aluno %s, not %s", m.AlunoID, a.ID)
	}
	if a.EstaMatriculadoNoCurso(m.CursoID) {
		return shared.ErrMatriculaDuplicada
	}

	a.matriculas = append(a.matriculas, m)
	a.Tocar()

	return nil
}

// RemoverMatricula remove uma matrícula pelo id.
// Falha se a matrícula não pertence ao aluno.
func (a *Aluno) RemoverMatricula(matriculaID string) error {
	for i, m := range a.matriculas {
		if m.ID == matriculaID {
			a.matriculas = append(a.matriculas[:i], a.matriculas[i+1:]...)
			a.Tocar()
			return nil
		}
	}
	return shared.ErrMatriculaNotFound
}

// BuscarMatricula retorna a matrícula pelo id.
// Retorna shared.ErrMatriculaNotFound se não existir.
func (a *Aluno) BuscarMatricula(matriculaID string) (*matricula.MatriculaCurso, error) {
	for _, m := range a.matriculas {
		if m.ID == matriculaID {
			return m, nil
		}
	}
	return nil, shared.ErrMatriculaNotFound
}

// BuscarMatriculaPorCurso retorna a matrícula do curso, ou nil se o aluno
// não está matriculado. Ausência não é erro.
func (a *Aluno) BuscarMatriculaPorCurso(cursoID string) *matricula.MatriculaCurso {
	for _, m := range a.matriculas {
		if m.CursoID == cursoID {
			return m
		}
	}
	return nil
}

// EstaMatriculadoNoCurso retorna true se o aluno já tem matrícula no curso.
func (a *Aluno) EstaMatriculadoNoCurso(cursoID string) bool {
	return a.BuscarMatriculaPorCurso(cursoID) != nil
}

// Matriculas retorna uma cópia da coleção de matrículas.
func (a *Aluno) Matriculas() []*matricula.MatriculaCurso {
	out := make([]*matricula.MatriculaCurso, len(a.matriculas))
	copy(out, a.matriculas)
	return out
}

// String retorna uma representação curta para logs.
func (a *Aluno) String() string {
	return fmt.Sprintf(
		"Aluno{ID: %s, Nome: %s, Email: %s, Ativo: %t, Matriculas: %d}",
		a.ID, a.Nome, a.Email, a.Ativo, len(a.matriculas),
	)
}
