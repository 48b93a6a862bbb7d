package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implementación del puerto ProposalRepository sobre PostgreSQL (usable con pool o tx).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create persiste una nueva propuesta.
func (r *ProposalRepo) Create(p *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, client_id, title, amount, status, pdf_url, sign_token, signer_name, signed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ClientID, p.Title, p.Amount, p.Status, nullIfEmpty(p.PDFURL),
		nullIfEmpty(p.SignToken), nullIfEmpty(p.SignerName), p.SignedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

// GetByID obtiene una propuesta por ID.
func (r *ProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	p, err := r.scanOne(r.q.QueryRow(context.Background(), r.selectQuery(`WHERE id = $1`), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return p, nil
}

// GetBySignToken obtiene una propuesta por su token de firma (enlace público).
func (r *ProposalRepo) GetBySignToken(token string) (*entity.Proposal, error) {
	p, err := r.scanOne(r.q.QueryRow(context.Background(), r.selectQuery(`WHERE sign_token = $1`), token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal by sign token: %w", err)
	}
	return p, nil
}

// Update actualiza una propuesta (estado, firma, token).
func (r *ProposalRepo) Update(p *entity.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $2, amount = $3, status = $4, pdf_url = $5, sign_token = $6, signer_name = $7, signed_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Title, p.Amount, p.Status, nullIfEmpty(p.PDFURL),
		nullIfEmpty(p.SignToken), nullIfEmpty(p.SignerName), p.SignedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	return nil
}

// ListByClient lista las propuestas de un cliente.
func (r *ProposalRepo) ListByClient(clientID string) ([]*entity.Proposal, error) {
	rows, err := r.q.Query(context.Background(),
		r.selectQuery(`WHERE client_id = $1 ORDER BY created_at DESC`), clientID)
	if err != nil {
		return nil, fmt.Errorf("list proposals by client: %w", err)
	}
	return r.collect(rows)
}

// List lista propuestas con paginación.
func (r *ProposalRepo) List(limit, offset int) ([]*entity.Proposal, error) {
	rows, err := r.q.Query(context.Background(),
		r.selectQuery(`ORDER BY created_at DESC LIMIT $1 OFFSET $2`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return r.collect(rows)
}

func (r *ProposalRepo) selectQuery(tail string) string {
	return `
		SELECT id, client_id, title, amount, status, pdf_url, sign_token, signer_name, signed_at, created_at, updated_at
		FROM proposals ` + tail
}

func (r *ProposalRepo) collect(rows pgx.Rows) ([]*entity.Proposal, error) {
	defer rows.Close()
	var list []*entity.Proposal
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProposalRepo) scanOne(row pgx.Row) (*entity.Proposal, error) {
	var p entity.Proposal
	var pdfURL, signToken, signerName *string
	if err := row.Scan(&p.ID, &p.ClientID, &p.Title, &p.Amount, &p.Status,
		&pdfURL, &signToken, &signerName, &p.SignedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if pdfURL != nil {
		p.PDFURL = *pdfURL
	}
	if signToken != nil {
		p.SignToken = *signToken
	}
	if signerName != nil {
		p.SignerName = *signerName
	}
	return &p, nil
}
