// Package datas formata carimbos de tempo no padrão brasileiro usado pelas
// telas do portal.
package datas

import "time"

// NaoInformada é exibida quando o registro não carrega a data.
const NaoInformada = "Data não informada"

// Formatar devolve "DD/MM/AAAA às HH:MM".
func Formatar(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NaoInformada
	}
	return t.Format("02/01/2006") + " às " + t.Format("15:04")
}

// FormatarSimples devolve apenas "DD/MM/AAAA".
func FormatarSimples(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NaoInformada
	}
	return t.Format("02/01/2006")
}

// FormatarCompleta devolve "DD/MM/AAAA às HH:MM:SS".
func FormatarCompleta(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NaoInformada
	}
	return t.Format("02/01/2006") + " às " + t.Format("15:04:05")
}
