package permissao

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var removerAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar remove acentos (decomposição canônica + remoção de marcas),
// converte para minúsculas e apara espaços. Toda comparação de setor, área,
// tipo ou status do portal passa por aqui — nunca compare essas strings de
// outra forma.
func Normalizar(s string) string {
	limpo, _, err := transform.String(removerAcentos, s)
	if err != nil {
		limpo = s
	}
	return strings.ToLower(strings.TrimSpace(limpo))
}

// MesmaArea compara duas áreas de forma normalizada.
func MesmaArea(a, b string) bool {
	return Normalizar(a) == Normalizar(b)
}
