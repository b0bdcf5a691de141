package storage

import (
	"context"
	"errors"
)

// ErrSemUploader sinaliza que nenhum destino de anexos foi configurado.
var ErrSemUploader = errors.New("storage: uploader não configurado")

// NoopUploader é o padrão quando os anexos permanecem inline no blob.
type NoopUploader struct{}

// Upload sempre falha; o chamador decide manter o anexo inline.
func (NoopUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	return nil, ErrSemUploader
}
