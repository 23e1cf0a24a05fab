package http

import (
	natsadapter "github.com/2270330995/VRP-Carpool/internal/adapters/nats"
	"github.com/2270330995/VRP-Carpool/internal/adapters/postgres"
	"github.com/2270330995/VRP-Carpool/internal/adapters/valkey"
	"github.com/2270330995/VRP-Carpool/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Optimize     *usecases.OptimizeService
	Drivers      *usecases.DriverService
	Passengers   *usecases.PassengerService
	Destinations *usecases.DestinationService
	Runs         *usecases.RunService
	Places       *usecases.PlaceService
	Events       *natsadapter.Publisher
	DB           *postgres.DB
	Cache        *valkey.Cache
}
