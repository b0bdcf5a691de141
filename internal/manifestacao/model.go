package manifestacao

import (
	"errors"
	"time"

	"github.com/ouvidoriasenai/portal/internal/permissao"
)

var (
	ErrNaoEncontrada        = errors.New("manifestação não encontrada")
	ErrBlobCorrompido       = errors.New("registro de manifestações corrompido")
	ErrTipoInvalido         = errors.New("tipo de manifestação inválido")
	ErrStatusInvalido       = errors.New("status inválido")
	ErrDescricaoObrigatoria = errors.New("descrição obrigatória")
	ErrContatoObrigatorio   = errors.New("contato obrigatório para envio identificado")
	ErrRespostaObrigatoria  = errors.New("resposta obrigatória para alterar o status")
)

// Tipos de manifestação aceitos.
const (
	TipoReclamacao = "Reclamação"
	TipoDenuncia   = "Denúncia"
	TipoElogio     = "Elogio"
	TipoSugestao   = "Sugestão"

	// TipoTodos é o filtro identidade das listagens.
	TipoTodos = "Todos"
)

// Status canônicos do ciclo de vida.
const (
	StatusPendente    = "Pendente"
	StatusEmAndamento = "Em Andamento"
	StatusResolvida   = "Resolvida"
)

// Visibilidades reconhecidas.
const (
	VisibilidadeAdmin = "admin"
	VisibilidadeTodos = "todos"
)

// ValorAnonimo preenche nome/contato dos envios anônimos.
const ValorAnonimo = "Anônimo"

var tiposValidos = map[string]string{
	"reclamacao": TipoReclamacao,
	"denuncia":   TipoDenuncia,
	"elogio":     TipoElogio,
	"sugestao":   TipoSugestao,
}

// Grafias legadas de status encontradas em blobs antigos, dobradas para o
// conjunto canônico na fronteira.
var statusValidos = map[string]string{
	"pendente":     StatusPendente,
	"em andamento": StatusEmAndamento,
	"em_andamento": StatusEmAndamento,
	"em analise":   StatusEmAndamento,
	"em_analise":   StatusEmAndamento,
	"resolvida":    StatusResolvida,
	"resolvido":    StatusResolvida,
	"arquivado":    StatusResolvida,
}

// Manifestacao é o registro central do portal. As chaves JSON preservam o
// formato do blob persistido original.
type Manifestacao struct {
	ID              string     `json:"id"`
	Tipo            string     `json:"tipo"`
	Nome            string     `json:"nome"`
	Contato         string     `json:"contato"`
	Setor           string     `json:"setor"`
	Local           string     `json:"local,omitempty"`
	DataHora        string     `json:"dataHora,omitempty"`
	Descricao       string     `json:"descricao"`
	AnexoNome       string     `json:"anexoNome,omitempty"`
	AnexoBase64     string     `json:"anexoBase64,omitempty"`
	AnexoURL        string     `json:"anexoUrl,omitempty"`
	Status          string     `json:"status"`
	RespostaAdmin   string     `json:"respostaAdmin,omitempty"`
	Visibilidade    string     `json:"visibilidade"`
	DataCriacao     time.Time  `json:"dataCriacao"`
	DataResposta    *time.Time `json:"dataResposta,omitempty"`
	DataAtualizacao *time.Time `json:"dataAtualizacao,omitempty"`
}

// CriarEntrada reúne os campos aceitos na abertura de uma manifestação.
type CriarEntrada struct {
	Tipo        string
	Nome        string
	Contato     string
	Setor       string
	Local       string
	DataHora    string
	Descricao   string
	AnexoNome   string
	AnexoBase64 string
	AnexoURL    string
	// Status inicial pedido pelo chamador. Só o fluxo de elogio pode entrar
	// pré-resolvido (Resolvida); qualquer outro valor é ignorado e o
	// registro nasce Pendente.
	Status string
}

// AtualizacaoEntrada é o patch aplicado por Store.Atualizar. Ponteiros nulos
// deixam o campo como está.
type AtualizacaoEntrada struct {
	Status        *string
	RespostaAdmin *string
	DataResposta  *time.Time
	Visibilidade  *string
}

// NormalizarTipo devolve a grafia canônica do tipo. O segundo retorno indica
// se o tipo é reconhecido.
func NormalizarTipo(tipo string) (string, bool) {
	canonico, ok := tiposValidos[permissao.Normalizar(tipo)]
	return canonico, ok
}

// NormalizarStatus dobra qualquer grafia legada para o status canônico.
// Vazio vira Pendente.
func NormalizarStatus(status string) (string, bool) {
	norm := permissao.Normalizar(status)
	if norm == "" {
		return StatusPendente, true
	}
	canonico, ok := statusValidos[norm]
	return canonico, ok
}

// PodeTransitar indica se a mudança de status é permitida. Nenhum estado é
// terminal: qualquer status alcança qualquer outro, e permanecer no mesmo
// status é sempre válido.
func PodeTransitar(de, para string) bool {
	deCanon, okDe := NormalizarStatus(de)
	paraCanon, okPara := NormalizarStatus(para)
	if !okDe || !okPara {
		return false
	}
	if deCanon == paraCanon {
		return true
	}
	for _, destino := range transicoes[deCanon] {
		if destino == paraCanon {
			return true
		}
	}
	return false
}

var transicoes = map[string][]string{
	StatusPendente:    {StatusEmAndamento, StatusResolvida},
	StatusEmAndamento: {StatusPendente, StatusResolvida},
	StatusResolvida:   {StatusPendente, StatusEmAndamento},
}

// StatusParaPainelAluno traduz o status interno para os rótulos exibidos no
// painel do aluno.
func StatusParaPainelAluno(status string) string {
	canonico, ok := NormalizarStatus(status)
	if !ok {
		return "Em Análise"
	}
	switch canonico {
	case StatusResolvida:
		return "Finalizadas"
	default:
		return "Em Análise"
	}
}
