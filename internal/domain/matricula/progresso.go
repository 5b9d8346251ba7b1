package matricula

import (
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESSO (acompanhamento por aula)
// ══════════════════════════════════════════════════════════════════════════════

// StatusProgresso define o estado de uma aula dentro da matrícula.
type StatusProgresso string

const (
	// ProgressoNaoIniciado - aula ainda não assistida.
	ProgressoNaoIniciado StatusProgresso = "nao_iniciado"
	// ProgressoEmAndamento - aula começou a ser assistida.
	ProgressoEmAndamento StatusProgresso = "em_andamento"
	// ProgressoConcluido - aula concluída (100% ou conclusão explícita).
	ProgressoConcluido StatusProgresso = "concluido"
)

// IsValid verifica se o status é conhecido.
func (s StatusProgresso) IsValid() bool {
	switch s {
	case ProgressoNaoIniciado, ProgressoEmAndamento, ProgressoConcluido:
		return true
	default:
		return false
	}
}

// Limites de tempo assistido por aula.
const (
	MaxTempoAssistidoSegundos = 86400 // um dia inteiro
	LimiteAbandonoHorasPadrao = 24
)

// Progresso registra o estado de exibição/conclusão de uma aula para uma
// matrícula. É uma entidade filha: toda mutação estrutural passa pela
// MatriculaCurso dona.
type Progresso struct {
	shared.Entidade

	// MatriculaID - matrícula à qual este progresso pertence.
	MatriculaID string

	// AulaID - identificador da aula.
	AulaID string

	// Status - estado atual da aula.
	Status StatusProgresso

	// PercentualAssistido - percentual assistido (0-100).
	PercentualAssistido float64

	// TempoAssistidoSegundos - segundos assistidos (0-86400).
	TempoAssistidoSegundos int

	// DataInicio - quando a aula foi iniciada.
	DataInicio *time.Time

	// DataConclusao - quando a aula foi concluída.
	DataConclusao *time.Time

	// UltimoAcesso - último acesso à aula.
	UltimoAcesso *time.Time

	// Nota - nota opcional da aula (0-10).
	Nota *float64

	// Observacoes - texto livre.
	Observacoes string
}

// NovoProgresso cria o progresso de uma aula, ainda não iniciado.
func NovoProgresso(matriculaID, aulaID string) (*Progresso, error) {
	if matriculaID == "" {
		return nil, shared.Validationf("progresso", "Criar", "matricula id is required")
	}
	if aulaID == "" {
		return nil, shared.Validationf("progresso", "Criar", "aula id is required")
	}

	return &Progresso{
		Entidade:               shared.NovaEntidade(),
		MatriculaID:            matriculaID,
		AulaID:                 aulaID,
		Status:                 ProgressoNaoIniciado,
		PercentualAssistido:    0,
		TempoAssistidoSegundos: 0,
	}, nil
}

// RehydrateProgresso reconstrói um progresso a partir do estado persistido,
// sem revalidar as regras de criação. Uso exclusivo da camada de persistência.
func RehydrateProgresso(
	base shared.Entidade,
	matriculaID, aulaID string,
	status StatusProgresso,
	percentual float64,
	segundos int,
	dataInicio, dataConclusao, ultimoAcesso *time.Time,
	nota *float64,
	observacoes string,
) *Progresso {
	return &Progresso{
		Entidade:               base,
		MatriculaID:            matriculaID,
		AulaID:                 aulaID,
		Status:                 status,
		PercentualAssistido:    percentual,
		TempoAssistidoSegundos: segundos,
		DataInicio:             dataInicio,
		DataConclusao:          dataConclusao,
		UltimoAcesso:           ultimoAcesso,
		Nota:                   nota,
		Observacoes:            observacoes,
	}
}

// Iniciar marca a aula como em andamento. Falha se a aula já foi concluída.
func (p *Progresso) Iniciar() error {
	if p.Status == ProgressoConcluido {
		return shared.ErrAulaJaConcluida
	}

	now := time.Now().UTC()
	p.Status = ProgressoEmAndamento
	if p.DataInicio == nil {
		p.DataInicio = &now
	}
	p.UltimoAcesso = &now
	p.Tocar()

	return nil
}

// AtualizarProgresso registra percentual e tempo assistidos. Inicia a aula
// automaticamente se ainda não iniciada e conclui automaticamente ao atingir
// 100%. Uma aula já concluída não é alterada por novas atualizações.
func (p *Progresso) AtualizarProgresso(percentual float64, segundos int) error {
	if percentual < 0 || percentual > 100 {
		return shared.ErrPercentualInvalido
	}
	if segundos < 0 || segundos > MaxTempoAssistidoSegundos {
		return shared.ErrTempoAssistidoInvalido
	}

	if p.Status == ProgressoConcluido {
		return nil
	}

	if p.Status == ProgressoNaoIniciado {
		if err := p.Iniciar(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	p.PercentualAssistido = percentual
	p.TempoAssistidoSegundos = segundos
	p.UltimoAcesso = &now
	p.Tocar()

	if percentual >= 100 {
		return p.Concluir(nil)
	}

	return nil
}

// Concluir marca a aula como concluída, forçando o percentual a 100.
// Falha se a aula nunca foi iniciada ou se a nota for inválida.
func (p *Progresso) Concluir(nota *float64) error {
	if p.Status == ProgressoNaoIniciado {
		return shared.ErrAulaNaoIniciada
	}
	if err := shared.ValidarNotaOpcional(nota); err != nil {
		return err
	}

	now := time.Now().UTC()
	p.Status = ProgressoConcluido
	p.PercentualAssistido = 100
	p.DataConclusao = &now
	p.UltimoAcesso = &now
	if nota != nil {
		p.Nota = nota
	}
	p.Tocar()

	return nil
}

// Reiniciar zera o progresso da aula incondicionalmente, voltando a
// NaoIniciado com todos os campos limpos.
func (p *Progresso) Reiniciar() {
	p.Status = ProgressoNaoIniciado
	p.PercentualAssistido = 0
	p.TempoAssistidoSegundos = 0
	p.DataInicio = nil
	p.DataConclusao = nil
	p.UltimoAcesso = nil
	p.Nota = nil
	p.Tocar()
}

// EstaAbandonada retorna true se a aula está em andamento e o último acesso
// passou do limite de horas informado (padrão 24).
func (p *Progresso) EstaAbandonada(limiteHoras int) bool {
	if p.Status != ProgressoEmAndamento || p.UltimoAcesso == nil {
		return false
	}
	if limiteHoras <= 0 {
		limiteHoras = LimiteAbandonoHorasPadrao
	}
	return time.Now().UTC().After(p.UltimoAcesso.Add(time.Duration(limiteHoras) * time.Hour))
}

// EstaConcluida retorna true se a aula foi concluída.
func (p *Progresso) EstaConcluida() bool {
	return p.Status == ProgressoConcluido
}

// Clone cria uma cópia do progresso.
func (p *Progresso) Clone() *Progresso {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
