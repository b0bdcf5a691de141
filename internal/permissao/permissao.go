package permissao

import "errors"

var (
	// ErrSemPermissao indica ausência de permissão para a operação.
	ErrSemPermissao = errors.New("acesso negado")
)

// Áreas conhecidas do portal. O conjunto é configurável por quem monta o
// Engine; estas são as padrão da instituição.
const (
	AreaGeral         = "Geral"
	AreaInformatica   = "Informática"
	AreaMecanica      = "Mecânica"
	AreaFaculdade     = "Faculdade"
	AreaManufaturacao = "Manufaturação Digital"
)

// Perfis de ator reconhecidos pelo resolvedor de identidade.
const (
	PerfilAluno       = "aluno"
	PerfilFuncionario = "funcionario"
	PerfilCoordenacao = "coordenador"
	PerfilAdminGeral  = "admin_geral"
	PerfilAdminArea   = "admin_area"
	PerfilAnonimo     = "anonimo"
)

// PerfilCoordenador descreve o que um coordenador pode editar e visualizar.
// Invariante: toda área editável também é visualizável.
type PerfilCoordenador struct {
	Nome          string
	Editaveis     []string
	Visualizaveis []string
}

// Ator é o sujeito de toda decisão de permissão.
type Ator struct {
	Perfil string
	Email  string
	Nome   string
	// Coordenacao presente apenas quando Perfil == PerfilCoordenacao.
	Coordenacao *PerfilCoordenador
	// AreaVinculada presente apenas quando Perfil == PerfilAdminArea.
	AreaVinculada string
}

// Anonimo devolve o ator sem capacidade administrativa.
func Anonimo() Ator {
	return Ator{Perfil: PerfilAnonimo}
}

// Admin indica se o ator possui algum papel administrativo.
func (a Ator) Admin() bool {
	switch a.Perfil {
	case PerfilAdminGeral, PerfilAdminArea, PerfilCoordenacao:
		return true
	}
	return false
}

// Engine centraliza as regras de visualização e edição por área. As telas do
// portal são apenas chamadoras; nenhuma regra de permissão vive fora daqui.
type Engine struct {
	coordenadores map[string]PerfilCoordenador
	adminsDeArea  map[string]string
}

// NewEngine cria o motor com os mapas informados. Chaves são e-mails de login,
// comparados após Normalizar. Passar nil usa os mapas padrão.
func NewEngine(coordenadores map[string]PerfilCoordenador, adminsDeArea map[string]string) *Engine {
	if coordenadores == nil {
		coordenadores = CoordenadoresPadrao()
	}
	if adminsDeArea == nil {
		adminsDeArea = AdminsDeAreaPadrao()
	}

	normCoord := make(map[string]PerfilCoordenador, len(coordenadores))
	for email, perfil := range coordenadores {
		normCoord[Normalizar(email)] = perfil
	}
	normAdmins := make(map[string]string, len(adminsDeArea))
	for email, area := range adminsDeArea {
		normAdmins[Normalizar(email)] = area
	}

	return &Engine{coordenadores: normCoord, adminsDeArea: normAdmins}
}

// CoordenadoresPadrao devolve a tabela estática de permissões por coordenador.
func CoordenadoresPadrao() map[string]PerfilCoordenador {
	return map[string]PerfilCoordenador{
		"chile@coordenador.senai": {
			Nome:      "Chile",
			Editaveis: []string{AreaGeral, AreaInformatica, AreaManufaturacao},
			Visualizaveis: []string{
				AreaGeral, AreaInformatica, AreaManufaturacao, AreaFaculdade, AreaMecanica,
			},
		},
		"pino@coordenador.senai": {
			Nome:      "Pino",
			Editaveis: []string{AreaGeral, AreaMecanica, AreaManufaturacao},
			Visualizaveis: []string{
				AreaGeral, AreaMecanica, AreaManufaturacao, AreaInformatica, AreaFaculdade,
			},
		},
		"vieira@coordenador.senai": {
			Nome:      "Vieira",
			Editaveis: []string{AreaFaculdade, AreaGeral},
			Visualizaveis: []string{
				AreaFaculdade, AreaGeral, AreaManufaturacao, AreaInformatica, AreaMecanica,
			},
		},
	}
}

// AdminsDeAreaPadrao devolve o mapa de administradores vinculados a uma única área.
func AdminsDeAreaPadrao() map[string]string {
	return map[string]string{
		"pino@senai.br":   AreaMecanica,
		"vieira@senai.br": AreaFaculdade,
	}
}

// PerfilCoordenadorPor devolve o perfil do coordenador, se houver.
func (e *Engine) PerfilCoordenadorPor(email string) (PerfilCoordenador, bool) {
	perfil, ok := e.coordenadores[Normalizar(email)]
	return perfil, ok
}

// AreaDoAdmin devolve a área vinculada de um administrador de área, se houver.
func (e *Engine) AreaDoAdmin(email string) (string, bool) {
	area, ok := e.adminsDeArea[Normalizar(email)]
	return area, ok
}

// PodeVisualizar decide se o ator enxerga uma manifestação do setor informado.
// A restrição de visão só existe para coordenadores com perfil explícito; todos
// os demais veem tudo que a tela lhes entregar. O admin de área também enxerga
// além da própria área (o vínculo limita a edição e o detalhamento das
// métricas, não a visão). Escolha documentada, não descuido.
func (e *Engine) PodeVisualizar(ator Ator, setor string) bool {
	switch ator.Perfil {
	case PerfilCoordenacao:
		if ator.Coordenacao == nil {
			return true
		}
		return algumaArea(ator.Coordenacao.Visualizaveis, setor)
	default:
		return true
	}
}

// PodeEditar decide se o ator pode responder, alterar ou excluir uma
// manifestação do setor informado.
func (e *Engine) PodeEditar(ator Ator, setor string) bool {
	switch ator.Perfil {
	case PerfilAdminGeral:
		return true
	case PerfilAdminArea:
		return temAreaGeral([]string{ator.AreaVinculada}) || contemArea(ator.AreaVinculada, setor)
	case PerfilCoordenacao:
		if ator.Coordenacao == nil {
			return false
		}
		return algumaArea(ator.Coordenacao.Editaveis, setor)
	default:
		return false
	}
}

// AreasDeEscopo devolve as áreas que limitam as métricas do ator. Vazio
// significa escopo global (admin geral ou ator sem perfil).
func (e *Engine) AreasDeEscopo(ator Ator) []string {
	switch ator.Perfil {
	case PerfilAdminArea:
		if temAreaGeral([]string{ator.AreaVinculada}) {
			return nil
		}
		return []string{ator.AreaVinculada}
	case PerfilCoordenacao:
		if ator.Coordenacao == nil {
			return nil
		}
		return ator.Coordenacao.Editaveis
	default:
		return nil
	}
}

func contemArea(area, setor string) bool {
	return MesmaArea(area, setor)
}

func algumaArea(areas []string, setor string) bool {
	for _, area := range areas {
		if MesmaArea(area, setor) {
			return true
		}
	}
	return false
}

func temAreaGeral(areas []string) bool {
	for _, area := range areas {
		if MesmaArea(area, AreaGeral) {
			return true
		}
	}
	return false
}
