// Package historico contém o fato de auditoria imutável do aluno.
// Cada registro descreve uma ação tomada pelo aluno ou sobre ele e nunca é
// atualizado ou apagado: o histórico é um log append-only, alimentado pelas
// fábricas por categoria de ação.
package historico

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATEGORIAS DE AÇÃO
// ══════════════════════════════════════════════════════════════════════════════

// TipoAcao categoriza a ação registrada.
type TipoAcao string

const (
	// AcaoCadastro - cadastro do aluno.
	AcaoCadastro TipoAcao = "cadastro"
	// AcaoAtualizacao - atualização de dados do perfil.
	AcaoAtualizacao TipoAcao = "atualizacao"
	// AcaoMatricula - matrícula em um curso.
	AcaoMatricula TipoAcao = "matricula"
	// AcaoConclusao - conclusão de um curso.
	AcaoConclusao TipoAcao = "conclusao"
	// AcaoCertificacao - emissão de certificado.
	AcaoCertificacao TipoAcao = "certificacao"
	// AcaoLogin - entrada na plataforma.
	AcaoLogin TipoAcao = "login"
	// AcaoLogout - saída da plataforma.
	AcaoLogout TipoAcao = "logout"
	// AcaoAcessoAula - acesso a uma aula.
	AcaoAcessoAula TipoAcao = "acesso_aula"
)

// IsValid verifica se a categoria é conhecida.
func (t TipoAcao) IsValid() bool {
	switch t {
	case AcaoCadastro, AcaoAtualizacao, AcaoMatricula, AcaoConclusao,
		AcaoCertificacao, AcaoLogin, AcaoLogout, AcaoAcessoAula:
		return true
	default:
		return false
	}
}

// Limites dos campos textuais.
const (
	MaxAcao               = 100
	MaxDescricao          = 500
	JanelaRecenteMinutos  = 30
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTIDADE: HISTORICO
// ══════════════════════════════════════════════════════════════════════════════

// HistoricoAluno é um fato imutável da trilha de auditoria do aluno.
// Sem transições: escreve-se uma vez e nunca muda.
type HistoricoAluno struct {
	shared.Entidade

	// AlunoID - aluno a que o fato se refere.
	AlunoID string

	// Acao - rótulo curto da ação (<= 100 caracteres).
	Acao string

	// Descricao - descrição em texto livre (<= 500 caracteres).
	Descricao string

	// Detalhes - payload estruturado opaco (JSON) com os ids/nomes da ação.
	Detalhes string

	// Tipo - categoria da ação.
	Tipo TipoAcao

	// UsuarioID - usuário que executou a ação, quando diferente do aluno.
	UsuarioID string

	// EnderecoIP e UserAgent - contexto da requisição que originou o fato.
	EnderecoIP string
	UserAgent  string
}

// Contexto carrega os metadados de requisição anexados a um fato.
type Contexto struct {
	UsuarioID  string
	EnderecoIP string
	UserAgent  string
}

// NovoHistorico cria um fato de auditoria genérico validado.
func NovoHistorico(alunoID, acao, descricao, detalhes string, tipo TipoAcao, ctx Contexto) (*HistoricoAluno, error) {
	if alunoID == "" {
		return nil, shared.ErrAlunoObrigatorio
	}
	acao = strings.TrimSpace(acao)
	if acao == "" || len(acao) > MaxAcao {
		return nil, shared.ErrAcaoObrigatoria
	}
	descricao = strings.TrimSpace(descricao)
	if descricao == "" || len(descricao) > MaxDescricao {
		return nil, shared.ErrDescricaoObrigatoria
	}
	if !tipo.IsValid() {
		return nil, shared.Validationf("historico", "Criar", "tipo de acao desconhecido: %s", tipo)
	}

	return &HistoricoAluno{
		Entidade:   shared.NovaEntidade(),
		AlunoID:    alunoID,
		Acao:       acao,
		Descricao:  descricao,
		Detalhes:   detalhes,
		Tipo:       tipo,
		UsuarioID:  ctx.UsuarioID,
		EnderecoIP: ctx.EnderecoIP,
		UserAgent:  ctx.UserAgent,
	}, nil
}

// RehydrateHistorico reconstrói um fato a partir do estado persistido.
// Uso exclusivo da camada de persistência.
func RehydrateHistorico(
	base shared.Entidade,
	alunoID, acao, descricao, detalhes string,
	tipo TipoAcao,
	usuarioID, enderecoIP, userAgent string,
) *HistoricoAluno {
	return &HistoricoAluno{
		Entidade:   base,
		AlunoID:    alunoID,
		Acao:       acao,
		Descricao:  descricao,
		Detalhes:   detalhes,
		Tipo:       tipo,
		UsuarioID:  usuarioID,
		EnderecoIP: enderecoIP,
		UserAgent:  userAgent,
	}
}

// EhRecente retorna true se o fato foi criado dentro da janela de minutos
// informada (padrão 30).
func (h *HistoricoAluno) EhRecente(janelaMinutos int) bool {
	if janelaMinutos <= 0 {
		janelaMinutos = JanelaRecenteMinutos
	}
	limite := h.CriadoEm.Add(time.Duration(janelaMinutos) * time.Minute)
	return !time.Now().UTC().After(limite)
}

// detalhesJSON serializa o payload padrão quando o chamador não fornece um.
func detalhesJSON(campos map[string]string) string {
	if len(campos) == 0 {
		return ""
	}
	b, err := json.Marshal(campos)
	if err != nil {
		return ""
	}
	return string(b)
}

// ══════════════════════════════════════════════════════════════════════════════
// FÁBRICAS POR CATEGORIA
// Cada fábrica fixa o rótulo e a categoria da ação e monta o payload de
// detalhes a partir dos ids/nomes relevantes quando o chamador não fornece um.
// ══════════════════════════════════════════════════════════════════════════════

// NovoCadastro registra o cadastro do aluno.
func NovoCadastro(alunoID, nome string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Cadastro de aluno",
		fmt.Sprintf("Aluno %s cadastrado na plataforma", nome),
		detalhesJSON(map[string]string{"aluno_id": alunoID, "nome": nome}),
		AcaoCadastro,
		ctx,
	)
}

// NovaAtualizacao registra uma atualização de perfil.
func NovaAtualizacao(alunoID, camposAlterados string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Atualizacao de dados",
		"Dados do perfil atualizados",
		detalhesJSON(map[string]string{"aluno_id": alunoID, "campos": camposAlterados}),
		AcaoAtualizacao,
		ctx,
	)
}

// NovaMatriculaRealizada registra uma matrícula em curso.
func NovaMatriculaRealizada(alunoID, matriculaID, cursoID string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Matricula em curso",
		fmt.Sprintf("Aluno matriculado no curso %s", cursoID),
		detalhesJSON(map[string]string{"matricula_id": matriculaID, "curso_id": cursoID}),
		AcaoMatricula,
		ctx,
	)
}

// NovaConclusaoCurso registra a conclusão de um curso.
func NovaConclusaoCurso(alunoID, matriculaID, cursoID string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Conclusao de curso",
		fmt.Sprintf("Curso %s concluido", cursoID),
		detalhesJSON(map[string]string{"matricula_id": matriculaID, "curso_id": cursoID}),
		AcaoConclusao,
		ctx,
	)
}

// NovaCertificacao registra a emissão de um certificado.
func NovaCertificacao(alunoID, certificadoID, codigo string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Emissao de certificado",
		fmt.Sprintf("Certificado %s emitido", codigo),
		detalhesJSON(map[string]string{"certificado_id": certificadoID, "codigo": codigo}),
		AcaoCertificacao,
		ctx,
	)
}

// NovoLogin registra a entrada do aluno na plataforma.
func NovoLogin(alunoID string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Login",
		"Aluno entrou na plataforma",
		detalhesJSON(map[string]string{"aluno_id": alunoID}),
		AcaoLogin,
		ctx,
	)
}

// NovoLogout registra a saída do aluno da plataforma.
func NovoLogout(alunoID string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Logout",
		"Aluno saiu da plataforma",
		detalhesJSON(map[string]string{"aluno_id": alunoID}),
		AcaoLogout,
		ctx,
	)
}

// NovoAcessoAula registra o acesso a uma aula.
func NovoAcessoAula(alunoID, matriculaID, aulaID string, ctx Contexto) (*HistoricoAluno, error) {
	return NovoHistorico(
		alunoID,
		"Acesso a aula",
		fmt.Sprintf("Aula %s acessada", aulaID),
		detalhesJSON(map[string]string{"matricula_id": matriculaID, "aula_id": aulaID}),
		AcaoAcessoAula,
		ctx,
	)
}
