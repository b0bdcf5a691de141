// Package anexo valida e decodifica anexos enviados como data-URL, o único
// formato aceito pelas telas de envio (no máximo um anexo por manifestação).
package anexo

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/h2non/filetype"
)

var (
	ErrFormatoInvalido = errors.New("anexo deve ser uma data-URL base64")
	ErrMuitoGrande     = errors.New("anexo excede o tamanho máximo permitido")
	ErrNaoImagem       = errors.New("anexo deve ser uma imagem")
)

// TamanhoMaxPadrao limita anexos a 5 MB, como no formulário original.
const TamanhoMaxPadrao = 5 * 1024 * 1024

// Anexo é o resultado da validação de uma data-URL.
type Anexo struct {
	ContentType string
	Conteudo    []byte
}

// Validar decodifica a data-URL, confere o limite de tamanho e garante que o
// conteúdo é de fato uma imagem (o MIME declarado na URL não é confiável).
// maxBytes <= 0 usa TamanhoMaxPadrao.
func Validar(dataURL string, maxBytes int64) (Anexo, error) {
	if maxBytes <= 0 {
		maxBytes = TamanhoMaxPadrao
	}

	resto, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return Anexo{}, ErrFormatoInvalido
	}

	meta, payload, ok := strings.Cut(resto, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return Anexo{}, ErrFormatoInvalido
	}

	// Base64 expande ~4/3; corta cedo antes de decodificar um payload enorme.
	if int64(len(payload)) > (maxBytes/3+1)*4 {
		return Anexo{}, ErrMuitoGrande
	}

	conteudo, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Anexo{}, ErrFormatoInvalido
	}
	if int64(len(conteudo)) > maxBytes {
		return Anexo{}, ErrMuitoGrande
	}

	if !filetype.IsImage(conteudo) {
		return Anexo{}, ErrNaoImagem
	}

	tipo, err := filetype.Match(conteudo)
	if err != nil {
		return Anexo{}, ErrFormatoInvalido
	}

	return Anexo{ContentType: tipo.MIME.Value, Conteudo: conteudo}, nil
}
