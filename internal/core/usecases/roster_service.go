package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
)

// DriverService handles driver roster CRUD.
type DriverService struct {
	drivers ports.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(drivers ports.DriverRepository) *DriverService {
	return &DriverService{drivers: drivers}
}

// List returns active drivers, or all drivers when includeInactive is set.
func (s *DriverService) List(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error) {
	return s.drivers.List(ctx, includeInactive)
}

// Create stores a new driver.
func (s *DriverService) Create(ctx context.Context, d *domain.RosterDriver) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("driver name is required")
	}
	if d.Seats <= 0 {
		return fmt.Errorf("driver seats must be > 0")
	}
	d.Active = true
	return s.drivers.Create(ctx, d)
}

// Update replaces the editable fields of an existing driver.
func (s *DriverService) Update(ctx context.Context, d *domain.RosterDriver) (*domain.RosterDriver, error) {
	existing, err := s.drivers.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = d.Name
	existing.CarModel = d.CarModel
	existing.Seats = d.Seats
	existing.Address = d.Address
	existing.Lat = d.Lat
	existing.Lng = d.Lng
	if err := s.drivers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate soft-deletes a driver so it disappears from default listings.
func (s *DriverService) Deactivate(ctx context.Context, id int64) error {
	return s.drivers.SetActive(ctx, id, false)
}

// Restore reactivates a soft-deleted driver.
func (s *DriverService) Restore(ctx context.Context, id int64) error {
	return s.drivers.SetActive(ctx, id, true)
}

// PassengerService handles passenger roster CRUD.
type PassengerService struct {
	passengers ports.PassengerRepository
}

// NewPassengerService creates a new PassengerService.
func NewPassengerService(passengers ports.PassengerRepository) *PassengerService {
	return &PassengerService{passengers: passengers}
}

// List returns active passengers, or all when includeInactive is set.
func (s *PassengerService) List(ctx context.Context, includeInactive bool) ([]domain.Passenger, error) {
	return s.passengers.List(ctx, includeInactive)
}

// Create stores a new passenger.
func (s *PassengerService) Create(ctx context.Context, p *domain.Passenger) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("passenger name is required")
	}
	p.Active = true
	return s.passengers.Create(ctx, p)
}

// Update replaces the editable fields of an existing passenger.
func (s *PassengerService) Update(ctx context.Context, p *domain.Passenger) (*domain.Passenger, error) {
	existing, err := s.passengers.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = p.Name
	existing.Address = p.Address
	existing.Lat = p.Lat
	existing.Lng = p.Lng
	if err := s.passengers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate soft-deletes a passenger.
func (s *PassengerService) Deactivate(ctx context.Context, id int64) error {
	return s.passengers.SetActive(ctx, id, false)
}

// Restore reactivates a soft-deleted passenger.
func (s *PassengerService) Restore(ctx context.Context, id int64) error {
	return s.passengers.SetActive(ctx, id, true)
}

// DestinationService handles saved destination CRUD.
type DestinationService struct {
	destinations ports.DestinationRepository
}

// NewDestinationService creates a new DestinationService.
func NewDestinationService(destinations ports.DestinationRepository) *DestinationService {
	return &DestinationService{destinations: destinations}
}

// List returns active destinations, or all when includeInactive is set.
func (s *DestinationService) List(ctx context.Context, includeInactive bool) ([]domain.Destination, error) {
	return s.destinations.List(ctx, includeInactive)
}

// Create stores a new destination.
func (s *DestinationService) Create(ctx context.Context, d *domain.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("destination name is required")
	}
	d.Active = true
	return s.destinations.Create(ctx, d)
}

// Update replaces the name and address of an existing destination.
func (s *DestinationService) Update(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	existing, err := s.destinations.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = d.Name
	existing.Address = d.Address
	if err := s.destinations.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate soft-deletes a destination.
func (s *DestinationService) Deactivate(ctx context.Context, id int64) error {
	return s.destinations.SetActive(ctx, id, false)
}

// Restore reactivates a soft-deleted destination.
func (s *DestinationService) Restore(ctx context.Context, id int64) error {
	return s.destinations.SetActive(ctx, id, true)
}
