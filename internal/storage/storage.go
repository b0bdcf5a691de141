package storage

import "context"

// UploadInput descreve um anexo a ser descarregado do blob principal.
type UploadInput struct {
	Key         string
	Body        []byte
	ContentType string
}

// UploadResult aponta para o anexo persistido.
type UploadResult struct {
	URL string
}

// Uploader define o destino dos anexos quando o portal é configurado para
// não mantê-los inline no blob de manifestações.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}
