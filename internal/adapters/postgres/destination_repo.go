package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// DestinationRepo implements ports.DestinationRepository.
type DestinationRepo struct {
	db *DB
}

func NewDestinationRepo(db *DB) *DestinationRepo {
	return &DestinationRepo{db: db}
}

func (r *DestinationRepo) List(ctx context.Context, includeInactive bool) ([]domain.Destination, error) {
	query := `
		SELECT id, name, address, active, created_at
		FROM destinations
	`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *DestinationRepo) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	d := &domain.Destination{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, address, active, created_at
		FROM destinations WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.Address, &d.Active, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DestinationRepo) Create(ctx context.Context, d *domain.Destination) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO destinations (name, address, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, d.Name, d.Address, d.Active).Scan(&d.ID, &d.CreatedAt)
}

func (r *DestinationRepo) Update(ctx context.Context, d *domain.Destination) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE destinations SET name = $2, address = $3 WHERE id = $1
	`, d.ID, d.Name, d.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DestinationRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE destinations SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
