package manifestacao

import (
	"context"
	"errors"
	"testing"

	"github.com/ouvidoriasenai/portal/internal/kv"
	"github.com/ouvidoriasenai/portal/internal/permissao"
)

func novoService() *Service {
	return NewService(novoStore(), permissao.NewEngine(nil, nil), nil, 0)
}

func atorCoordenador(t *testing.T, engine *permissao.Engine, email string) permissao.Ator {
	t.Helper()
	perfil, ok := engine.PerfilCoordenadorPor(email)
	if !ok {
		t.Fatalf("perfil de coordenador não encontrado para %s", email)
	}
	return permissao.Ator{Perfil: permissao.PerfilCoordenacao, Email: email, Nome: perfil.Nome, Coordenacao: &perfil}
}

func TestRegistrarValidacoes(t *testing.T) {
	svc := novoService()
	ctx := context.Background()

	if _, err := svc.Registrar(ctx, CriarEntrada{Tipo: "Pedido"}, false); !errors.Is(err, ErrTipoInvalido) {
		t.Errorf("tipo desconhecido: esperava ErrTipoInvalido, obteve %v", err)
	}
	if _, err := svc.Registrar(ctx, CriarEntrada{Tipo: TipoReclamacao, Contato: "x"}, false); !errors.Is(err, ErrDescricaoObrigatoria) {
		t.Errorf("sem descrição: esperava ErrDescricaoObrigatoria, obteve %v", err)
	}
	if _, err := svc.Registrar(ctx, CriarEntrada{Tipo: TipoReclamacao, Descricao: "d"}, false); !errors.Is(err, ErrContatoObrigatorio) {
		t.Errorf("identificada sem contato: esperava ErrContatoObrigatorio, obteve %v", err)
	}
}

func TestRegistrarAnonima(t *testing.T) {
	svc := novoService()

	registro, err := svc.Registrar(context.Background(), CriarEntrada{
		Tipo:      TipoDenuncia,
		Nome:      "Maria",
		Contato:   "maria@aluno.senai.br",
		Descricao: "assédio na sala 3",
	}, true)
	if err != nil {
		t.Fatal(err)
	}

	if registro.Nome != ValorAnonimo || registro.Contato != ValorAnonimo {
		t.Errorf("envio anônimo deveria apagar identificação, obteve nome=%q contato=%q", registro.Nome, registro.Contato)
	}
	if registro.Setor != permissao.AreaGeral {
		t.Errorf("setor vazio deveria virar Geral, obteve %q", registro.Setor)
	}
}

func TestRegistrarNormalizaTipo(t *testing.T) {
	svc := novoService()

	registro, err := svc.Registrar(context.Background(), CriarEntrada{
		Tipo:      "reclamacao",
		Contato:   "a@senai.br",
		Descricao: "d",
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if registro.Tipo != TipoReclamacao {
		t.Errorf("esperava tipo canônico %q, obteve %q", TipoReclamacao, registro.Tipo)
	}
}

func TestElogioNascePreResolvido(t *testing.T) {
	svc := novoService()
	ctx := context.Background()

	elogio, err := svc.Registrar(ctx, CriarEntrada{
		Tipo:      TipoElogio,
		Contato:   "a@aluno.senai.br",
		Descricao: "professor excelente",
		Status:    StatusResolvida,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if elogio.Status != StatusResolvida {
		t.Errorf("elogio deveria aceitar status pré-resolvido, obteve %q", elogio.Status)
	}

	// Qualquer outro tipo ignora o status do chamador.
	reclamacao, err := svc.Registrar(ctx, CriarEntrada{
		Tipo:      TipoReclamacao,
		Contato:   "a@aluno.senai.br",
		Descricao: "d",
		Status:    StatusResolvida,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if reclamacao.Status != StatusPendente {
		t.Errorf("reclamação deveria nascer Pendente, obteve %q", reclamacao.Status)
	}
}

func TestElogioSoEntraResolvido(t *testing.T) {
	svc := novoService()
	ctx := context.Background()

	// Resolvida é a única exceção de criação; qualquer outro status deixaria
	// o registro fora de Pendente com respostaAdmin vazia.
	for _, status := range []string{StatusEmAndamento, "em_analise", "cancelado"} {
		registro, err := svc.Registrar(ctx, CriarEntrada{
			Tipo:      TipoElogio,
			Contato:   "a@aluno.senai.br",
			Descricao: "atendimento rápido",
			Status:    status,
		}, false)
		if err != nil {
			t.Fatalf("%q: %v", status, err)
		}
		if registro.Status != StatusPendente {
			t.Errorf("elogio com status %q deveria nascer Pendente, obteve %q", status, registro.Status)
		}
	}
}

func TestResponder(t *testing.T) {
	svc := novoService()
	ctx := context.Background()
	diretor := permissao.Ator{Perfil: permissao.PerfilAdminGeral, Email: "diretor@senai.br"}

	registro, _ := svc.Registrar(ctx, CriarEntrada{
		Tipo: TipoReclamacao, Contato: "a@aluno.senai.br", Descricao: "d", Setor: permissao.AreaMecanica,
	}, false)

	// Status não pendente sem resposta é rejeitado.
	if _, err := svc.Responder(ctx, diretor, registro.ID, StatusResolvida, "  "); !errors.Is(err, ErrRespostaObrigatoria) {
		t.Errorf("esperava ErrRespostaObrigatoria, obteve %v", err)
	}

	// Alias legado de status é aceito e dobrado para o canônico.
	atualizado, err := svc.Responder(ctx, diretor, registro.ID, "em_analise", "estamos verificando")
	if err != nil {
		t.Fatal(err)
	}
	if atualizado.Status != StatusEmAndamento {
		t.Errorf("esperava %q, obteve %q", StatusEmAndamento, atualizado.Status)
	}
	if atualizado.RespostaAdmin != "estamos verificando" {
		t.Errorf("resposta não gravada: %q", atualizado.RespostaAdmin)
	}
	if atualizado.DataResposta == nil || atualizado.DataResposta.IsZero() {
		t.Error("dataResposta deveria ser preenchida")
	}

	atualizado, err = svc.Responder(ctx, diretor, registro.ID, StatusResolvida, "torno substituído")
	if err != nil {
		t.Fatal(err)
	}
	if atualizado.Status != StatusResolvida {
		t.Errorf("esperava %q, obteve %q", StatusResolvida, atualizado.Status)
	}
}

func TestResponderSemPermissao(t *testing.T) {
	svc := novoService()
	ctx := context.Background()

	registro, _ := svc.Registrar(ctx, CriarEntrada{
		Tipo: TipoReclamacao, Contato: "a@aluno.senai.br", Descricao: "d", Setor: permissao.AreaMecanica,
	}, false)

	// Chile visualiza Mecânica mas não edita.
	chile := atorCoordenador(t, svc.permissoes, "chile@coordenador.senai")
	if _, err := svc.Responder(ctx, chile, registro.ID, StatusResolvida, "ok"); !errors.Is(err, permissao.ErrSemPermissao) {
		t.Errorf("esperava ErrSemPermissao, obteve %v", err)
	}

	if _, err := svc.Responder(ctx, permissao.Anonimo(), registro.ID, StatusResolvida, "ok"); !errors.Is(err, permissao.ErrSemPermissao) {
		t.Errorf("anônimo: esperava ErrSemPermissao, obteve %v", err)
	}
}

func TestResponderStatusDesconhecido(t *testing.T) {
	svc := novoService()
	ctx := context.Background()
	diretor := permissao.Ator{Perfil: permissao.PerfilAdminGeral}

	registro, _ := svc.Registrar(ctx, CriarEntrada{Tipo: TipoSugestao, Contato: "c", Descricao: "d"}, false)

	if _, err := svc.Responder(ctx, diretor, registro.ID, "cancelado", "ok"); !errors.Is(err, ErrStatusInvalido) {
		t.Errorf("esperava ErrStatusInvalido, obteve %v", err)
	}
}

func TestExcluir(t *testing.T) {
	svc := novoService()
	ctx := context.Background()
	diretor := permissao.Ator{Perfil: permissao.PerfilAdminGeral}

	registro, _ := svc.Registrar(ctx, CriarEntrada{Tipo: TipoSugestao, Contato: "c", Descricao: "d"}, false)

	if _, err := svc.Excluir(ctx, permissao.Anonimo(), registro.ID); !errors.Is(err, permissao.ErrSemPermissao) {
		t.Errorf("anônimo: esperava ErrSemPermissao, obteve %v", err)
	}

	removida, err := svc.Excluir(ctx, diretor, registro.ID)
	if err != nil || !removida {
		t.Fatalf("esperava exclusão, obteve removida=%v err=%v", removida, err)
	}

	// Id inexistente não é erro, apenas nada removido.
	removida, err = svc.Excluir(ctx, diretor, registro.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removida {
		t.Error("segunda exclusão deveria devolver false")
	}
}

func TestListarPorTipo(t *testing.T) {
	svc := novoService()
	ctx := context.Background()
	diretor := permissao.Ator{Perfil: permissao.PerfilAdminGeral}

	svc.Registrar(ctx, CriarEntrada{Tipo: TipoReclamacao, Contato: "c", Descricao: "1"}, false)
	svc.Registrar(ctx, CriarEntrada{Tipo: TipoDenuncia, Contato: "c", Descricao: "2"}, false)
	svc.Registrar(ctx, CriarEntrada{Tipo: TipoReclamacao, Contato: "c", Descricao: "3"}, false)

	todos, err := svc.ListarPorTipo(ctx, diretor, TipoTodos)
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 3 {
		t.Errorf("filtro Todos deveria devolver tudo, obteve %d", len(todos))
	}

	reclamacoes, _ := svc.ListarPorTipo(ctx, diretor, "reclamação")
	if len(reclamacoes) != 2 {
		t.Errorf("esperava 2 reclamações, obteve %d", len(reclamacoes))
	}
	// Ordem de criação preservada.
	if len(reclamacoes) == 2 && (reclamacoes[0].Descricao != "1" || reclamacoes[1].Descricao != "3") {
		t.Error("filtro deveria preservar a ordem de criação")
	}
}

func TestResumoComEscopoDeArea(t *testing.T) {
	svc := novoService()
	ctx := context.Background()
	diretor := permissao.Ator{Perfil: permissao.PerfilAdminGeral, Email: "diretor@senai.br"}

	abrir := func(setor string) Manifestacao {
		registro, err := svc.Registrar(ctx, CriarEntrada{
			Tipo: TipoReclamacao, Contato: "c", Descricao: "d", Setor: setor,
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		return registro
	}

	abrir(permissao.AreaMecanica)
	resolvida := abrir(permissao.AreaMecanica)
	abrir(permissao.AreaInformatica)

	if _, err := svc.Responder(ctx, diretor, resolvida.ID, StatusResolvida, "resolvido"); err != nil {
		t.Fatal(err)
	}

	// O admin vinculado a Mecânica enxerga todas (total global), mas o
	// detalhamento por status fica limitado à área dele.
	pino := permissao.Ator{Perfil: permissao.PerfilAdminArea, Email: "pino@senai.br", AreaVinculada: permissao.AreaMecanica}
	resumo, err := svc.Resumo(ctx, pino)
	if err != nil {
		t.Fatal(err)
	}
	if resumo.Total != 3 {
		t.Errorf("total deveria ser global (3), obteve %d", resumo.Total)
	}
	if resumo.Pendentes != 1 {
		t.Errorf("esperava 1 pendente no escopo, obteve %d", resumo.Pendentes)
	}
	if resumo.Resolvidas != 1 {
		t.Errorf("esperava 1 resolvida no escopo, obteve %d", resumo.Resolvidas)
	}

	// Admin geral conta tudo em todos os contadores.
	resumo, err = svc.Resumo(ctx, diretor)
	if err != nil {
		t.Fatal(err)
	}
	if resumo.Total != 3 || resumo.Pendentes != 2 || resumo.Resolvidas != 1 {
		t.Errorf("resumo global errado: %+v", resumo)
	}
}

func TestCorruptBlobNaoDerrubaService(t *testing.T) {
	backend := kv.NewMemoryStore()
	ctx := context.Background()
	backend.Save(ctx, ChaveManifestacoes, "não é json")

	svc := NewService(NewStore(backend, false), permissao.NewEngine(nil, nil), nil, 0)

	registros, err := svc.Listar(ctx, permissao.Ator{Perfil: permissao.PerfilAdminGeral})
	if err != nil {
		t.Fatalf("blob corrompido não deveria derrubar a listagem: %v", err)
	}
	if len(registros) != 0 {
		t.Errorf("esperava lista vazia, obteve %d", len(registros))
	}
}
