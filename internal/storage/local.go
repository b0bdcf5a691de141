package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader grava anexos em disco, num diretório servido estaticamente.
// É o destino natural para um portal processo-único; a interface permite
// trocar por um object store sem tocar no serviço.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader garante o diretório e devolve o uploader. baseURL é o
// prefixo público sob o qual o diretório é servido (ex.: /anexos).
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage: diretório de anexos obrigatório")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: criar diretório: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Upload grava o conteúdo e devolve a URL pública correspondente.
func (l *LocalUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	nome := filepath.Base(input.Key)
	if nome == "." || nome == string(filepath.Separator) {
		return nil, fmt.Errorf("storage: chave de anexo inválida")
	}

	destino := filepath.Join(l.dir, nome)
	if err := os.WriteFile(destino, input.Body, 0o644); err != nil {
		return nil, fmt.Errorf("storage: gravar anexo: %w", err)
	}

	return &UploadResult{URL: l.baseURL + "/" + nome}, nil
}
