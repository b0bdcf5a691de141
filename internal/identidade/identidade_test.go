package identidade

import (
	"context"
	"testing"

	"github.com/ouvidoriasenai/portal/internal/kv"
	"github.com/ouvidoriasenai/portal/internal/permissao"
)

func novoResolver() *Resolver {
	return NewResolver(permissao.NewEngine(nil, nil))
}

func TestResolverPerfis(t *testing.T) {
	r := novoResolver()

	casos := []struct {
		email  string
		perfil string
	}{
		{"diretor@senai.br", permissao.PerfilAdminGeral},
		{"chile@coordenador.senai", permissao.PerfilCoordenacao},
		{"PINO@coordenador.senai", permissao.PerfilCoordenacao},
		{"pino@senai.br", permissao.PerfilAdminArea},
		{"maria@aluno.senai.br", permissao.PerfilAluno},
		{"jose@senai.br", permissao.PerfilFuncionario},
		{"alguem@gmail.com", permissao.PerfilAnonimo},
		{"", permissao.PerfilAnonimo},
		{"não-é-email", permissao.PerfilAnonimo},
	}

	for _, caso := range casos {
		ator := r.Resolver(caso.email)
		if ator.Perfil != caso.perfil {
			t.Errorf("%q: esperava perfil %s, obteve %s", caso.email, caso.perfil, ator.Perfil)
		}
	}
}

func TestResolverCoordenadorCarregaPerfil(t *testing.T) {
	ator := novoResolver().Resolver("chile@coordenador.senai")

	if ator.Coordenacao == nil {
		t.Fatal("coordenador deveria carregar perfil de permissões")
	}
	if ator.Nome != "Chile" {
		t.Errorf("esperava nome Chile, obteve %q", ator.Nome)
	}
	if len(ator.Coordenacao.Editaveis) == 0 || len(ator.Coordenacao.Visualizaveis) < len(ator.Coordenacao.Editaveis) {
		t.Error("editáveis deveriam ser subconjunto de visualizáveis")
	}
}

func TestResolverAdminDeAreaAntesDeFuncionario(t *testing.T) {
	// pino@senai.br termina com o sufixo de funcionário, mas é admin de área.
	ator := novoResolver().Resolver("pino@senai.br")

	if ator.Perfil != permissao.PerfilAdminArea {
		t.Fatalf("esperava admin de área, obteve %s", ator.Perfil)
	}
	if ator.AreaVinculada != permissao.AreaMecanica {
		t.Errorf("esperava área Mecânica, obteve %q", ator.AreaVinculada)
	}
}

func TestSessaoRoundTrip(t *testing.T) {
	sessoes := NewSessoes(kv.NewMemoryStore())
	ctx := context.Background()

	if _, ok := sessoes.Carregar(ctx); ok {
		t.Fatal("não deveria haver sessão antes do login")
	}

	gravada := Sessao{Nome: "Maria", Email: "maria@aluno.senai.br", Tipo: permissao.PerfilAluno}
	if err := sessoes.Gravar(ctx, gravada); err != nil {
		t.Fatalf("gravar: %v", err)
	}

	carregada, ok := sessoes.Carregar(ctx)
	if !ok || carregada != gravada {
		t.Fatalf("esperava %+v, obteve %+v (ok=%v)", gravada, carregada, ok)
	}

	if err := sessoes.Encerrar(ctx); err != nil {
		t.Fatalf("encerrar: %v", err)
	}
	if _, ok := sessoes.Carregar(ctx); ok {
		t.Fatal("sessão deveria ter sido removida")
	}
}

func TestSessaoMalformadaViraAnonimo(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, ChaveSessao, "{isso não é json"); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewSessoes(store).Carregar(ctx); ok {
		t.Fatal("sessão malformada deveria colapsar para anônimo")
	}
}
