// Package objectstore implementa el puerto proposal.ObjectStore sobre MinIO
// (o cualquier almacenamiento compatible S3).
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appproposal "github.com/tu-usuario/backoffice-api/internal/application/proposal"
	"github.com/tu-usuario/backoffice-api/pkg/config"
)

var _ appproposal.ObjectStore = (*MinioStore)(nil)

// MinioStore sube objetos a un bucket y resuelve URLs públicas.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioStore construye el cliente MinIO y verifica que el bucket exista
// (lo crea si falta). Requiere credenciales en la configuración de storage.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: crear cliente: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("objectstore: verificar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("objectstore: crear bucket: %w", err)
		}
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload sube el objeto y devuelve su URL pública. objectName es la ruta
// dentro del bucket, ej. "proposals/<id>/propuesta.pdf".
func (s *MinioStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: subir %s: %w", objectName, err)
	}
	return s.publicURL(objectName), nil
}

// publicURL resuelve la URL del objeto: base pública configurada (CDN) o, en
// su defecto, el endpoint del propio MinIO.
func (s *MinioStore) publicURL(objectName string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.client.EndpointURL().String(), "/"), s.bucket, objectName)
}
