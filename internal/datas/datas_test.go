package datas

import (
	"testing"
	"time"
)

func TestFormatar(t *testing.T) {
	quando := time.Date(2026, 3, 7, 14, 5, 9, 0, time.UTC)

	if got := Formatar(&quando); got != "07/03/2026 às 14:05" {
		t.Errorf("Formatar: %q", got)
	}
	if got := FormatarSimples(&quando); got != "07/03/2026" {
		t.Errorf("FormatarSimples: %q", got)
	}
	if got := FormatarCompleta(&quando); got != "07/03/2026 às 14:05:09" {
		t.Errorf("FormatarCompleta: %q", got)
	}
}

func TestFormatarSemData(t *testing.T) {
	var zero time.Time

	for _, got := range []string{Formatar(nil), Formatar(&zero), FormatarSimples(nil), FormatarCompleta(nil)} {
		if got != NaoInformada {
			t.Errorf("esperava %q, obteve %q", NaoInformada, got)
		}
	}
}
