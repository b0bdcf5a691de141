package manifestacao

import "github.com/ouvidoriasenai/portal/internal/permissao"

// FiltrarPorTipo devolve o subconjunto do tipo informado. "Todos" é o filtro
// identidade; a comparação é normalizada, então "denuncia" casa com "Denúncia".
func FiltrarPorTipo(registros []Manifestacao, tipo string) []Manifestacao {
	if permissao.Normalizar(tipo) == permissao.Normalizar(TipoTodos) {
		return registros
	}

	tipoNorm := permissao.Normalizar(tipo)
	var resultado []Manifestacao
	for _, registro := range registros {
		if permissao.Normalizar(registro.Tipo) == tipoNorm {
			resultado = append(resultado, registro)
		}
	}
	return resultado
}

// FiltrarVisiveis aplica PodeVisualizar ponto a ponto, preservando a ordem.
func FiltrarVisiveis(permissoes *permissao.Engine, ator permissao.Ator, registros []Manifestacao) []Manifestacao {
	var visiveis []Manifestacao
	for _, registro := range registros {
		if permissoes.PodeVisualizar(ator, registro.Setor) {
			visiveis = append(visiveis, registro)
		}
	}
	return visiveis
}

// Resumo agrega os contadores exibidos nos cartões do painel.
type Resumo struct {
	Total      int `json:"total"`
	Pendentes  int `json:"pendentes"`
	Resolvidas int `json:"resolvidas"`
}

// Metricas calcula o resumo sobre registros já limitados à visão do ator.
// Total conta o conjunto inteiro; Pendentes/Resolvidas são restritos às
// áreas de escopo quando informadas — o total é global, o detalhamento é
// por área, espelhando os painéis administrativos.
func Metricas(registros []Manifestacao, escopo []string) Resumo {
	resumo := Resumo{Total: len(registros)}

	for _, registro := range registros {
		if len(escopo) > 0 && !areaNoEscopo(registro.Setor, escopo) {
			continue
		}
		status, ok := NormalizarStatus(registro.Status)
		if !ok {
			continue
		}
		switch status {
		case StatusPendente:
			resumo.Pendentes++
		case StatusResolvida:
			resumo.Resolvidas++
		}
	}
	return resumo
}

func areaNoEscopo(setor string, escopo []string) bool {
	for _, area := range escopo {
		if permissao.MesmaArea(area, setor) {
			return true
		}
	}
	return false
}
