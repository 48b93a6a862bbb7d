package proposal

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// UseCase flujo de propuestas comerciales: crear (genera PDF y lo sube al
// almacenamiento de objetos), enviar (acuña el token de firma), firmar por
// token (enlace público) y declinar.
type UseCase struct {
	repo       repository.ProposalRepository
	clientRepo repository.ClientRepository
	generator  PDFGenerator
	store      ObjectStore
}

// NewUseCase construye el caso de uso inyectando generador y almacenamiento.
func NewUseCase(
	repo repository.ProposalRepository,
	clientRepo repository.ClientRepository,
	generator PDFGenerator,
	store ObjectStore,
) *UseCase {
	return &UseCase{repo: repo, clientRepo: clientRepo, generator: generator, store: store}
}

// Create crea la propuesta en draft, genera su PDF y lo sube. La propuesta
// queda persistida con la URL pública del PDF.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	if in.Title == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	p := &entity.Proposal{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Title:     in.Title,
		Amount:    in.Amount,
		Status:    entity.ProposalDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	pdfBytes, err := uc.generator.GenerateProposalPDF(ctx, p, client)
	if err != nil {
		return nil, fmt.Errorf("proposal: generación de PDF fallida: %w", err)
	}
	objectName := fmt.Sprintf("proposals/%s/propuesta.pdf", p.ID)
	url, err := uc.store.Upload(ctx, objectName, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("proposal: subida de PDF fallida: %w", err)
	}
	p.PDFURL = url

	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

// GetByID obtiene una propuesta por ID.
func (uc *UseCase) GetByID(id string) (*dto.ProposalResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProposalResponse(p), nil
}

// List lista propuestas con paginación.
func (uc *UseCase) List(limit, offset int) (*dto.ProposalListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProposalResponse(p))
	}
	return &dto.ProposalListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByClient lista las propuestas de un cliente.
func (uc *UseCase) ListByClient(clientID string) ([]dto.ProposalResponse, error) {
	list, err := uc.repo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProposalResponse(p))
	}
	return out, nil
}

// Send pasa la propuesta de draft a sent y acuña el token de firma.
// Solo las propuestas en draft se pueden enviar.
func (uc *UseCase) Send(id string) (*dto.ProposalResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status != entity.ProposalDraft {
		return nil, domain.ErrConflict
	}
	p.Status = entity.ProposalSent
	p.SignToken = uuid.New().String()
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

// SignByToken firma la propuesta identificada por el token del enlace público.
// La firma es por posesión del token; solo propuestas en sent se pueden firmar.
func (uc *UseCase) SignByToken(token string, in dto.SignProposalRequest) (*dto.ProposalResponse, error) {
	if token == "" || in.SignerName == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetBySignToken(token)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidSignToken
	}
	if p.Status != entity.ProposalSent {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	p.Status = entity.ProposalSigned
	p.SignerName = in.SignerName
	p.SignedAt = &now
	p.UpdatedAt = now
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

// DeclineByToken declina la propuesta identificada por el token del enlace público.
func (uc *UseCase) DeclineByToken(token string) (*dto.ProposalResponse, error) {
	if token == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetBySignToken(token)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidSignToken
	}
	if p.Status != entity.ProposalSent {
		return nil, domain.ErrConflict
	}
	p.Status = entity.ProposalDeclined
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

func toProposalResponse(p *entity.Proposal) *dto.ProposalResponse {
	if p == nil {
		return nil
	}
	return &dto.ProposalResponse{
		ID:         p.ID,
		ClientID:   p.ClientID,
		Title:      p.Title,
		Amount:     p.Amount,
		Status:     p.Status,
		PDFURL:     p.PDFURL,
		SignToken:  p.SignToken,
		SignerName: p.SignerName,
		SignedAt:   p.SignedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
