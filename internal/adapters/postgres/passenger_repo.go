package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// PassengerRepo implements ports.PassengerRepository.
type PassengerRepo struct {
	db *DB
}

func NewPassengerRepo(db *DB) *PassengerRepo {
	return &PassengerRepo{db: db}
}

func (r *PassengerRepo) List(ctx context.Context, includeInactive bool) ([]domain.Passenger, error) {
	query := `
		SELECT id, name, address, lat, lng, active, created_at
		FROM passengers
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

	var passengers []domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PassengerRepo) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p := &domain.Passenger{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, address, lat, lng, active, created_at
		FROM passengers WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PassengerRepo) Create(ctx context.Context, p *domain.Passenger) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO passengers (name, address, lat, lng, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, p.Name, p.Address, p.Lat, p.Lng, p.Active).Scan(&p.ID, &p.CreatedAt)
}

func (r *PassengerRepo) Update(ctx context.Context, p *domain.Passenger) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE passengers
		SET name = $2, address = $3, lat = $4, lng = $5
		WHERE id = $1
	`, p.ID, p.Name, p.Address, p.Lat, p.Lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PassengerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE passengers SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
