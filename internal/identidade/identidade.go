// Package identidade resolve o e-mail informado no login para um ator do
// portal. Não há autenticação real: a identidade é uma declaração, e o papel
// dela derivado governa o que as telas permitem.
package identidade

import (
	"strings"

	"github.com/ouvidoriasenai/portal/internal/permissao"
)

// Sufixos institucionais e identidade reservada do administrador geral.
const (
	SufixoAluno       = "@aluno.senai.br"
	SufixoFuncionario = "@senai.br"
	EmailAdminGeral   = "diretor@senai.br"
)

// Resolver mapeia e-mails para atores usando as tabelas do motor de permissões.
type Resolver struct {
	permissoes *permissao.Engine
}

// NewResolver cria o resolvedor sobre o motor de permissões.
func NewResolver(permissoes *permissao.Engine) *Resolver {
	return &Resolver{permissoes: permissoes}
}

// Resolver classifica o e-mail. Identificadores irreconhecíveis ou vazios
// viram Anônimo; nunca há erro.
//
// Precedência: admin geral > coordenador > admin de área > aluno > funcionário.
// O admin de área precisa vir antes do funcionário porque compartilha o
// sufixo @senai.br.
func (r *Resolver) Resolver(email string) permissao.Ator {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return permissao.Anonimo()
	}

	if email == EmailAdminGeral {
		return permissao.Ator{Perfil: permissao.PerfilAdminGeral, Email: email, Nome: "Admin"}
	}

	if perfil, ok := r.permissoes.PerfilCoordenadorPor(email); ok {
		return permissao.Ator{
			Perfil:      permissao.PerfilCoordenacao,
			Email:       email,
			Nome:        perfil.Nome,
			Coordenacao: &perfil,
		}
	}

	if area, ok := r.permissoes.AreaDoAdmin(email); ok {
		return permissao.Ator{
			Perfil:        permissao.PerfilAdminArea,
			Email:         email,
			Nome:          "Admin de " + area,
			AreaVinculada: area,
		}
	}

	if strings.HasSuffix(email, SufixoAluno) {
		return permissao.Ator{Perfil: permissao.PerfilAluno, Email: email}
	}

	if strings.HasSuffix(email, SufixoFuncionario) {
		return permissao.Ator{Perfil: permissao.PerfilFuncionario, Email: email}
	}

	return permissao.Anonimo()
}
