package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// DriverRepo implements ports.DriverRepository.
type DriverRepo struct {
	db *DB
}

func NewDriverRepo(db *DB) *DriverRepo {
	return &DriverRepo{db: db}
}

func (r *DriverRepo) List(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error) {
	query := `
		SELECT id, name, COALESCE(car_model, ''), seats, address, lat, lng, active, created_at
		FROM drivers
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

	var drivers []domain.RosterDriver
	for rows.Next() {
		var d domain.RosterDriver
		if err := rows.Scan(&d.ID, &d.Name, &d.CarModel, &d.Seats, &d.Address, &d.Lat, &d.Lng, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepo) GetByID(ctx context.Context, id int64) (*domain.RosterDriver, error) {
	d := &domain.RosterDriver{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(car_model, ''), seats, address, lat, lng, active, created_at
		FROM drivers WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.CarModel, &d.Seats, &d.Address, &d.Lat, &d.Lng, &d.Active, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DriverRepo) Create(ctx context.Context, d *domain.RosterDriver) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO drivers (name, car_model, seats, address, lat, lng, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, d.Name, d.CarModel, d.Seats, d.Address, d.Lat, d.Lng, d.Active).Scan(&d.ID, &d.CreatedAt)
}

func (r *DriverRepo) Update(ctx context.Context, d *domain.RosterDriver) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE drivers
		SET name = $2, car_model = $3, seats = $4, address = $5, lat = $6, lng = $7
		WHERE id = $1
	`, d.ID, d.Name, d.CarModel, d.Seats, d.Address, d.Lat, d.Lng)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DriverRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE drivers SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
