// Package matricula contém o agregado de matrícula do aluno em um curso.
// É o coração do ciclo de vida de matrícula: máquina de estados da matrícula,
// progresso por aula e certificado de conclusão. Sem dependências de
// infraestrutura - só regras de negócio.
package matricula

import (
	"fmt"
	"strings"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status define o estado de uma matrícula.
//
// Transições permitidas:
//
//	Ativa --Iniciar--> EmAndamento --Concluir--> Concluida [terminal]
//	Ativa/EmAndamento --Cancelar--> Cancelada [terminal]
//	Ativa/EmAndamento --Suspender--> Suspensa --Reativar--> Ativa
type Status string

const (
	// StatusAtiva - matrícula criada, curso ainda não iniciado.
	StatusAtiva Status = "ativa"
	// StatusEmAndamento - aluno cursando.
	StatusEmAndamento Status = "em_andamento"
	// StatusConcluida - curso concluído (terminal para mudanças de conteúdo).
	StatusConcluida Status = "concluida"
	// StatusCancelada - matrícula cancelada (terminal para mudanças de conteúdo).
	StatusCancelada Status = "cancelada"
	// StatusSuspensa - matrícula temporariamente suspensa.
	StatusSuspensa Status = "suspensa"
)

// IsValid verifica se o status é conhecido.
func (s Status) IsValid() bool {
	switch s {
	case StatusAtiva, StatusEmAndamento, StatusConcluida, StatusCancelada, StatusSuspensa:
		return true
	default:
		return false
	}
}

// EhTerminal retorna true para os estados que bloqueiam mudanças de conteúdo.
func (s Status) EhTerminal() bool {
	return s == StatusConcluida || s == StatusCancelada
}

// Limites da matrícula.
const (
	MaxDiasInicioRetroativo = 30
	LimiteAtrasoDiasPadrao  = 365
)

// ══════════════════════════════════════════════════════════════════════════════
// AGREGADO: MATRICULA
// ══════════════════════════════════════════════════════════════════════════════

// MatriculaCurso representa a matrícula de um aluno em um curso. É dona das
// coleções de Progresso (uma entrada por aula) e Certificado (somente após a
// conclusão); toda mutação das coleções passa pelos métodos do agregado.
type MatriculaCurso struct {
	shared.Entidade

	// AlunoID - aluno dono da matrícula.
	AlunoID string

	// CursoID - curso matriculado.
	CursoID string

	// DataMatricula - quando a matrícula foi criada (UTC).
	DataMatricula time.Time

	// DataInicio - início do curso.
	DataInicio time.Time

	// DataTermino - término do curso. Nil enquanto não concluída.
	DataTermino *time.Time

	// Status - estado atual da matrícula.
	Status Status

	// ValorPago - valor pago pela matrícula (0-999999.99).
	ValorPago float64

	// FormaPagamento - forma de pagamento, opcional.
	FormaPagamento string

	// PercentualConclusao - percentual de conclusão do curso (0-100).
	PercentualConclusao float64

	// NotaFinal - nota final opcional (0-10).
	NotaFinal *float64

	// Observacoes - texto livre; motivos de cancelamento/suspensão são anexados.
	Observacoes string

	// Ativa - flag de atividade, limpa no cancelamento.
	Ativa bool

	// Coleções internas: expostas apenas como cópias via Progressos()/Certificados().
	progressos   []*Progresso
	certificados []*Certificado
}

// NovaMatriculaParams contém os parâmetros de criação de uma matrícula.
type NovaMatriculaParams struct {
	AlunoID        string
	CursoID        string
	DataInicio     time.Time
	ValorPago      float64
	FormaPagamento string
	Observacoes    string
}

// NovaMatricula cria uma matrícula validada, no estado Ativa.
// A data de início não pode estar mais de 30 dias no passado.
func NovaMatricula(params NovaMatriculaParams) (*MatriculaCurso, error) {
	if params.AlunoID == "" {
		return nil, shared.Validationf("matricula", "Criar", "aluno id is required")
	}
	if params.CursoID == "" {
		return nil, shared.Validationf("matricula", "Criar", "curso id is required")
	}
	if params.DataInicio.IsZero() {
		return nil, shared.Validationf("matricula", "Criar", "data de inicio is required")
	}

	if _, err := shared.NovoValorPago(params.ValorPago); err != nil {
		return nil, err
	}

	limite := time.Now().UTC().AddDate(0, 0, -MaxDiasInicioRetroativo)
	if params.DataInicio.Before(limite) {
		return nil, shared.ErrDataInicioMuitoAntiga
	}

	base := shared.NovaEntidade()

	return &MatriculaCurso{
		Entidade:            base,
		AlunoID:             params.AlunoID,
		CursoID:             params.CursoID,
		DataMatricula:       base.CriadoEm,
		DataInicio:          params.DataInicio,
		Status:              StatusAtiva,
		ValorPago:           params.ValorPago,
		FormaPagamento:      strings.TrimSpace(params.FormaPagamento),
		PercentualConclusao: 0,
		Observacoes:         strings.TrimSpace(params.Observacoes),
		Ativa:               true,
	}, nil
}

// RehydrateMatricula reconstrói uma matrícula a partir do estado persistido,
// incluindo as coleções filhas, sem revalidar as regras de criação.
// Uso exclusivo da camada de persistência.
func RehydrateMatricula(
	base shared.Entidade,
	alunoID, cursoID string,
	dataMatricula, dataInicio time.Time,
	dataTermino *time.Time,
	status Status,
	valorPago float64,
	formaPagamento string,
	percentualConclusao float64,
	notaFinal *float64,
	observacoes string,
	ativa bool,
	progressos []*Progresso,
	certificados []*Certificado,
) *MatriculaCurso {
	return &MatriculaCurso{
		Entidade:            base,
		AlunoID:             alunoID,
		CursoID:             cursoID,
		DataMatricula:       dataMatricula,
		DataInicio:          dataInicio,
		DataTermino:         dataTermino,
		Status:              status,
		ValorPago:           valorPago,
		FormaPagamento:      formaPagamento,
		PercentualConclusao: percentualConclusao,
		NotaFinal:           notaFinal,
		Observacoes:         observacoes,
		Ativa:               ativa,
		progressos:          progressos,
		certificados:        certificados,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MÁQUINA DE ESTADOS
// ══════════════════════════════════════════════════════════════════════════════

// Iniciar move a matrícula de Ativa para EmAndamento.
func (m *MatriculaCurso) Iniciar() error {
	if m.Status != StatusAtiva {
		return shared.NewDomainError("matricula", "Iniciar", shared.ErrStateTransition,
			fmt.Sprintf("cannot start from status %s", m.Status))
	}

	m.Status = StatusEmAndamento
	m.Tocar()

	return nil
}

// Concluir move a matrícula de EmAndamento para Concluida, fixando o
// percentual em 100 e a data de término em agora.
func (m *MatriculaCurso) Concluir(nota *float64) error {
	if m.Status != StatusEmAndamento {
		return shared.NewDomainError("matricula", "Concluir", shared.ErrStateTransition,
			fmt.Sprintf("cannot complete from status %s", m.Status))
	}
	if err := shared.ValidarNotaOpcional(nota); err != nil {
		return err
	}

	now := time.Now().UTC()
	m.Status = StatusConcluida
	m.PercentualConclusao = 100
	m.DataTermino = &now
	if nota != nil {
		m.NotaFinal = nota
	}
	m.Tocar()

	return nil
}

// Cancelar cancela a matrícula a partir de qualquer estado não concluído,
// limpando a flag de atividade. O motivo, quando informado, é anexado às
// observações.
func (m *MatriculaCurso) Cancelar(motivo string) error {
	if m.Status == StatusConcluida {
		return shared.NewDomainError("matricula", "Cancelar", shared.ErrInvalidState,
			"matricula concluida cannot be cancelled")
	}

	m.Status = StatusCancelada
	m.Ativa = false
	m.anexarObservacao("Cancelamento", motivo)
	m.Tocar()

	return nil
}

// Suspender suspende a matrícula. Falha se concluída, cancelada ou já
// suspensa.
func (m *MatriculaCurso) Suspender(motivo string) error {
	if m.Status == StatusConcluida || m.Status == StatusCancelada {
		return shared.ErrMatriculaEncerrada
	}
	if m.Status == StatusSuspensa {
		return shared.NewDomainError("matricula", "Suspender", shared.ErrInvalidState,
			"matricula already suspensa")
	}

	m.Status = StatusSuspensa
	m.anexarObservacao("Suspensao", motivo)
	m.Tocar()

	return nil
}

// Reativar devolve uma matrícula suspensa ao estado Ativa.
func (m *MatriculaCurso) Reativar() error {
	if m.Status != StatusSuspensa {
		return shared.NewDomainError("matricula", "Reativar", shared.ErrStateTransition,
			fmt.Sprintf("cannot reactivate from status %s", m.Status))
	}

	m.Status = StatusAtiva
	m.Tocar()

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MUTADORES
// ══════════════════════════════════════════════════════════════════════════════

// AtualizarDadosParams contém os campos atualizáveis da matrícula.
type AtualizarDadosParams struct {
	DataInicio     time.Time
	ValorPago      float64
	FormaPagamento string
	Observacoes    string
}

// AtualizarDados atualiza os dados comerciais da matrícula.
// Falha se a matrícula já está concluída ou cancelada.
func (m *MatriculaCurso) AtualizarDados(params AtualizarDadosParams) error {
	if m.Status.EhTerminal() {
		return shared.ErrMatriculaEncerrada
	}
	if params.DataInicio.IsZero() {
		return shared.Validationf("matricula", "AtualizarDados", "data de inicio is required")
	}
	if _, err := shared.NovoValorPago(params.ValorPago); err != nil {
		return err
	}

	m.DataInicio = params.DataInicio
	m.ValorPago = params.ValorPago
	m.FormaPagamento = strings.TrimSpace(params.FormaPagamento)
	m.Observacoes = strings.TrimSpace(params.Observacoes)
	m.Tocar()

	return nil
}

// AtualizarPercentualConclusao atualiza o percentual de conclusão (0-100).
func (m *MatriculaCurso) AtualizarPercentualConclusao(percentual float64) error {
	if _, err := shared.NovoPercentual(percentual); err != nil {
		return err
	}

	m.PercentualConclusao = percentual
	m.Tocar()

	return nil
}

// AdicionarProgresso registra o progresso de uma aula, substituindo qualquer
// registro existente para a mesma aula. Somente aceito com a matrícula
// EmAndamento.
func (m *MatriculaCurso) AdicionarProgresso(p *Progresso) error {
	if p == nil {
		return shared.Validationf("matricula", "AdicionarProgresso", "progresso is required")
	}
	if m.Status != StatusEmAndamento {
		return shared.ErrProgressoForaDeCurso
	}
	if p.MatriculaID != m.ID {
		return shared.Validationf("matricula", "AdicionarProgresso",
			"progresso belongs to matricula %s, not %s", p.MatriculaID, m.ID)
	}

	for i, existente := range m.progressos {
		if existente.AulaID == p.AulaID {
			m.progressos[i] = p
			m.Tocar()
			return nil
		}
	}

	m.progressos = append(m.progressos, p)
	m.Tocar()

	return nil
}

// AdicionarCertificado anexa um certificado à matrícula.
// Somente aceito com a matrícula Concluida.
func (m *MatriculaCurso) AdicionarCertificado(c *Certificado) error {
	if c == nil {
		return shared.Validationf("matricula", "AdicionarCertificado", "certificado is required")
	}
	if m.Status != StatusConcluida {
		return shared.ErrCertificadoSemConclusao
	}
	if c.MatriculaID != m.ID {
		return shared.Validationf("matricula", "AdicionarCertificado",
			"certificado belongs to matricula %s, not %s", c.MatriculaID, m.ID)
	}

	m.certificados = append(m.certificados, c)
	m.Tocar()

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSULTAS
// ══════════════════════════════════════════════════════════════════════════════

// Progressos retorna uma cópia da coleção de progressos.
func (m *MatriculaCurso) Progressos() []*Progresso {
	out := make([]*Progresso, len(m.progressos))
	copy(out, m.progressos)
	return out
}

// Certificados retorna uma cópia da coleção de certificados.
func (m *MatriculaCurso) Certificados() []*Certificado {
	out := make([]*Certificado, len(m.certificados))
	copy(out, m.certificados)
	return out
}

// BuscarProgressoPorAula retorna o progresso de uma aula, ou nil se não há
// registro. Ausência não é erro.
func (m *MatriculaCurso) BuscarProgressoPorAula(aulaID string) *Progresso {
	for _, p := range m.progressos {
		if p.AulaID == aulaID {
			return p
		}
	}
	return nil
}

// AulasConcluidas retorna quantas aulas registradas foram concluídas.
func (m *MatriculaCurso) AulasConcluidas() int {
	total := 0
	for _, p := range m.progressos {
		if p.EstaConcluida() {
			total++
		}
	}
	return total
}

// CalcularDuracaoDias retorna a duração da matrícula em dias inteiros:
// (data de término ou agora) menos a data de início.
func (m *MatriculaCurso) CalcularDuracaoDias() int {
	fim := time.Now().UTC()
	if m.DataTermino != nil {
		fim = *m.DataTermino
	}
	dias := int(fim.Sub(m.DataInicio).Hours() / 24)
	if dias < 0 {
		return 0
	}
	return dias
}

// EstaAtrasada retorna true quando a matrícula não terminal passou do limite
// de dias desde a data de início (padrão 365).
func (m *MatriculaCurso) EstaAtrasada(limiteDias int) bool {
	if m.Status.EhTerminal() {
		return false
	}
	if limiteDias <= 0 {
		limiteDias = LimiteAtrasoDiasPadrao
	}
	return time.Now().UTC().After(m.DataInicio.AddDate(0, 0, limiteDias))
}

func (m *MatriculaCurso) anexarObservacao(acao, motivo string) {
	if motivo == "" {
		return
	}
	entrada := fmt.Sprintf("%s: %s", acao, motivo)
	if m.Observacoes == "" {
		m.Observacoes = entrada
		return
	}
	m.Observacoes = m.Observacoes + " | " + entrada
}

// String retorna uma representação curta para logs.
func (m *MatriculaCurso) String() string {
	return fmt.Sprintf(
		"MatriculaCurso{ID: %s, Aluno: %s, Curso: %s, Status: %s, Conclusao: %.0f%%}",
		m.ID, m.AlunoID, m.CursoID, m.Status, m.PercentualConclusao,
	)
}
