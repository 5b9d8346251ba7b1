package matricula

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CERTIFICADO
// ══════════════════════════════════════════════════════════════════════════════

// StatusCertificado define o estado persistido de um certificado.
//
// Expiração é um predicado derivado (EstaExpirado/EstaValido): um certificado
// Ativo com validade vencida já lê como inválido mesmo antes de qualquer
// transição. O valor CertificadoExpirado só é gravado pelo passo explícito
// MarcarExpirado - nunca automaticamente durante leituras.
type StatusCertificado string

const (
	// CertificadoAtivo - certificado emitido e vigente.
	CertificadoAtivo StatusCertificado = "ativo"
	// CertificadoSuspenso - certificado temporariamente suspenso.
	CertificadoSuspenso StatusCertificado = "suspenso"
	// CertificadoRevogado - certificado revogado (terminal).
	CertificadoRevogado StatusCertificado = "revogado"
	// CertificadoExpirado - validade vencida, aplicada pelo passo de varredura.
	CertificadoExpirado StatusCertificado = "expirado"
)

// IsValid verifica se o status é conhecido.
func (s StatusCertificado) IsValid() bool {
	switch s {
	case CertificadoAtivo, CertificadoSuspenso, CertificadoRevogado, CertificadoExpirado:
		return true
	default:
		return false
	}
}

// Limites de carga horária e validade.
const (
	MaxCargaHoraria     = 10000
	ValidadeDiasPadrao  = 3650
	MinNomeCertificado  = 2
)

// Certificado registra a emissão de um certificado para uma matrícula
// concluída: código único, hash de verificação, janela de validade e
// metadados de emissão. Código e hash são derivados na emissão e imutáveis.
type Certificado struct {
	shared.Entidade

	// MatriculaID - matrícula que originou o certificado.
	MatriculaID string

	// NomeCurso - nome do curso no momento da emissão.
	NomeCurso string

	// NomeAluno - nome do aluno no momento da emissão.
	NomeAluno string

	// DataEmissao - quando o certificado foi emitido (UTC).
	DataEmissao time.Time

	// DataValidade - validade do certificado. Nil = sem expiração.
	DataValidade *time.Time

	// CargaHoraria - carga horária do curso em horas (1-10000).
	CargaHoraria int

	// NotaFinal - nota final opcional (0-10).
	NotaFinal *float64

	// Status - estado persistido.
	Status StatusCertificado

	// ArquivoURL - URL do arquivo gerado (preenchida por serviço externo).
	ArquivoURL string

	// HashVerificacao - hash SHA3-256 derivado na emissão, usado para
	// verificação de autenticidade.
	HashVerificacao string

	// Observacoes - texto livre; motivos de revogação/suspensão são anexados aqui.
	Observacoes string

	// NomeInstrutor - instrutor responsável, opcional.
	NomeInstrutor string

	// Codigo - código único legível (timestamp + sufixo aleatório).
	Codigo string
}

// EmitirCertificadoParams contém os parâmetros de emissão.
type EmitirCertificadoParams struct {
	MatriculaID   string
	NomeCurso     string
	NomeAluno     string
	CargaHoraria  int
	NotaFinal     *float64
	NomeInstrutor string
	// ValidadeDias define a janela de validade. Valores <= 0 emitem um
	// certificado sem expiração. O chamador usa ValidadeDiasPadrao (10 anos)
	// quando não há política específica.
	ValidadeDias int
}

// EmitirCertificado emite um certificado com código e hash determinísticos
// derivados no momento da emissão.
func EmitirCertificado(params EmitirCertificadoParams) (*Certificado, error) {
	if params.MatriculaID == "" {
		return nil, shared.Validationf("certificado", "Emitir", "matricula id is required")
	}

	nomeCurso := strings.TrimSpace(params.NomeCurso)
	nomeAluno := strings.TrimSpace(params.NomeAluno)
	if len(nomeCurso) < MinNomeCertificado || len(nomeAluno) < MinNomeCertificado {
		return nil, shared.ErrNomeCertificadoCurto
	}

	if params.CargaHoraria <= 0 || params.CargaHoraria > MaxCargaHoraria {
		return nil, shared.ErrCargaHorariaInvalida
	}

	if err := shared.ValidarNotaOpcional(params.NotaFinal); err != nil {
		return nil, err
	}

	base := shared.NovaEntidade()
	emissao := base.CriadoEm

	var validade *time.Time
	if params.ValidadeDias > 0 {
		v := emissao.AddDate(0, 0, params.ValidadeDias)
		validade = &v
	}

	cert := &Certificado{
		Entidade:      base,
		MatriculaID:   params.MatriculaID,
		NomeCurso:     nomeCurso,
		NomeAluno:     nomeAluno,
		DataEmissao:   emissao,
		DataValidade:  validade,
		CargaHoraria:  params.CargaHoraria,
		NotaFinal:     params.NotaFinal,
		Status:        CertificadoAtivo,
		NomeInstrutor: strings.TrimSpace(params.NomeInstrutor),
		Codigo:        gerarCodigo(emissao),
	}
	cert.HashVerificacao = calcularHash(cert.ID, cert.MatriculaID, cert.NomeCurso, cert.NomeAluno, cert.DataEmissao)

	return cert, nil
}

// RehydrateCertificado reconstrói um certificado a partir do estado
// persistido, sem revalidar as regras de emissão. Uso exclusivo da camada de
// persistência.
func RehydrateCertificado(
	base shared.Entidade,
	matriculaID, nomeCurso, nomeAluno string,
	dataEmissao time.Time,
	dataValidade *time.Time,
	cargaHoraria int,
	notaFinal *float64,
	status StatusCertificado,
	arquivoURL, hashVerificacao, observacoes, nomeInstrutor, codigo string,
) *Certificado {
	return &Certificado{
		Entidade:        base,
		MatriculaID:     matriculaID,
		NomeCurso:       nomeCurso,
		NomeAluno:       nomeAluno,
		DataEmissao:     dataEmissao,
		DataValidade:    dataValidade,
		CargaHoraria:    cargaHoraria,
		NotaFinal:       notaFinal,
		Status:          status,
		ArquivoURL:      arquivoURL,
		HashVerificacao: hashVerificacao,
		Observacoes:     observacoes,
		NomeInstrutor:   nomeInstrutor,
		Codigo:          codigo,
	}
}

// gerarCodigo produz o código único: timestamp de emissão + sufixo aleatório.
func gerarCodigo(emissao time.Time) string {
	sufixo := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("CERT-%s-%s", emissao.Format("20060102150405"), sufixo)
}

// calcularHash deriva o hash de verificação a partir dos campos imutáveis da
// emissão. SHA3-256 em hexadecimal minúsculo.
func calcularHash(id, matriculaID, nomeCurso, nomeAluno string, emissao time.Time) string {
	material := strings.Join([]string{
		id,
		matriculaID,
		nomeCurso,
		nomeAluno,
		emissao.UTC().Format(time.RFC3339),
	}, "|")
	sum := sha3.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// Revogar revoga o certificado em definitivo. Falha se já revogado.
// O motivo, quando informado, é anexado às observações.
func (c *Certificado) Revogar(motivo string) error {
	if c.Status == CertificadoRevogado {
		return shared.ErrCertificadoRevogado
	}

	c.Status = CertificadoRevogado
	c.anexarObservacao("Revogado", motivo)
	c.Tocar()

	return nil
}

// Suspender suspende temporariamente o certificado.
// Falha se revogado ou já suspenso.
func (c *Certificado) Suspender(motivo string) error {
	if c.Status == CertificadoRevogado {
		return shared.ErrCertificadoRevogado
	}
	if c.Status == CertificadoSuspenso {
		return shared.NewDomainError("certificado", "Suspender", shared.ErrInvalidState, "certificado already suspenso")
	}

	c.Status = CertificadoSuspenso
	c.anexarObservacao("Suspenso", motivo)
	c.Tocar()

	return nil
}

// Reativar devolve o certificado ao estado Ativo.
// Falha se revogado ou já ativo.
func (c *Certificado) Reativar() error {
	if c.Status == CertificadoRevogado {
		return shared.ErrCertificadoRevogado
	}
	if c.Status == CertificadoAtivo {
		return shared.NewDomainError("certificado", "Reativar", shared.ErrInvalidState, "certificado already ativo")
	}

	c.Status = CertificadoAtivo
	c.Tocar()

	return nil
}

// Renovar estende a validade por novosDias a partir de agora. Falha se
// revogado ou se novosDias <= 0. Um status Expirado armazenado volta a Ativo.
func (c *Certificado) Renovar(novosDias int) error {
	if c.Status == CertificadoRevogado {
		return shared.ErrCertificadoRevogado
	}
	if novosDias <= 0 {
		return shared.ErrValidadeInvalida
	}

	novaValidade := time.Now().UTC().AddDate(0, 0, novosDias)
	c.DataValidade = &novaValidade
	if c.Status == CertificadoExpirado {
		c.Status = CertificadoAtivo
	}
	c.Tocar()

	return nil
}

// MarcarExpirado grava o status Expirado. É a única transição autorizada a
// persistir expiração e só se aplica a um certificado Ativo cuja validade já
// venceu; chamadores normais devem usar apenas EstaExpirado/EstaValido.
func (c *Certificado) MarcarExpirado() error {
	if c.Status != CertificadoAtivo {
		return shared.NewDomainError("certificado", "MarcarExpirado", shared.ErrInvalidState, "only an ativo certificado can expire")
	}
	if !c.EstaExpirado() {
		return shared.NewDomainError("certificado", "MarcarExpirado", shared.ErrInvalidState, "certificado validade has not passed")
	}

	c.Status = CertificadoExpirado
	c.Tocar()

	return nil
}

// EstaValido retorna true somente se o status é Ativo e a validade não
// venceu. Predicado computado: não confia no status armazenado para a
// condição temporal.
func (c *Certificado) EstaValido() bool {
	if c.Status != CertificadoAtivo {
		return false
	}
	return !c.EstaExpirado()
}

// EstaExpirado retorna true se existe validade e ela já passou.
func (c *Certificado) EstaExpirado() bool {
	if c.DataValidade == nil {
		return false
	}
	return c.DataValidade.Before(time.Now().UTC())
}

// DiasRestantesValidade retorna os dias inteiros até o vencimento.
// Retorna -1 para certificados sem expiração e 0 quando já vencido.
func (c *Certificado) DiasRestantesValidade() int {
	if c.DataValidade == nil {
		return -1
	}
	restante := time.Until(*c.DataValidade)
	if restante <= 0 {
		return 0
	}
	return int(restante.Hours() / 24)
}

// ValidarHash compara o hash candidato com o hash de verificação,
// ignorando maiúsculas/minúsculas.
func (c *Certificado) ValidarHash(candidato string) bool {
	return candidato != "" && strings.EqualFold(candidato, c.HashVerificacao)
}

// AtualizarArquivoURL registra a URL do arquivo renderizado externamente.
func (c *Certificado) AtualizarArquivoURL(url string) {
	c.ArquivoURL = strings.TrimSpace(url)
	c.Tocar()
}

func (c *Certificado) anexarObservacao(acao, motivo string) {
	if motivo == "" {
		return
	}
	entrada := fmt.Sprintf("%s: %s", acao, motivo)
	if c.Observacoes == "" {
		c.Observacoes = entrada
		return
	}
	c.Observacoes = c.Observacoes + " | " + entrada
}

// String retorna uma representação curta para logs.
func (c *Certificado) String() string {
	return fmt.Sprintf("Certificado{ID: %s, Codigo: %s, Status: %s}", c.ID, c.Codigo, c.Status)
}
