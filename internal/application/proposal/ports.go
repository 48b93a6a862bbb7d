package proposal

import (
	"context"
	"io"

	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// PDFGenerator genera la representación gráfica (PDF) de una propuesta.
// Cualquier adaptador (Maroto, mock) debe implementar esta interfaz; la
// aplicación solo conoce este contrato (DIP).
type PDFGenerator interface {
	GenerateProposalPDF(ctx context.Context, proposal *entity.Proposal, client *entity.Client) ([]byte, error)
}

// ObjectStore sube archivos a un almacenamiento de objetos (S3/MinIO) y
// devuelve la URL pública. objectName es la ruta dentro del bucket,
// p.ej. "proposals/<id>/propuesta.pdf".
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader, size int64) (url string, err error)
}
