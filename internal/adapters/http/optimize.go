package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// OptimizeHandler runs route optimization for the posted drivers, students,
// and event. Responds 400 on validation failures and 502 when the solver
// cannot be reached.
func OptimizeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.OptimizeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}

		plans, err := deps.Optimize.Optimize(c.Context(), &req)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("optimize failed",
				"drivers", len(req.Drivers), "students", len(req.Students), "error", err)
			return optimizeError(c, err)
		}
		return c.JSON(plans)
	}
}

// SampleOptimizeHandler runs optimization over a small fixed scenario, used
// to smoke-test solver connectivity without crafting a payload.
func SampleOptimizeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seats := 4
		req := &domain.OptimizeRequest{
			Event: &domain.Event{Location: domain.Coord(43.0800, -89.4000)},
			Drivers: []domain.Driver{
				{ID: "1", Home: domain.Coord(43.0731, -89.4012), SeatCapacity: &seats},
			},
			Students: []domain.Student{
				{ID: "1", Home: domain.Coord(43.0750, -89.4100)},
				{ID: "2", Home: domain.Coord(43.0700, -89.4200)},
				{ID: "3", Home: domain.Coord(43.0650, -89.4050)},
			},
			GlobalStartTime: "2026-01-01T00:00:00Z",
			GlobalEndTime:   "2026-01-01T06:00:00Z",
		}

		plans, err := deps.Optimize.Optimize(c.Context(), req)
		if err != nil {
			return optimizeError(c, err)
		}
		return c.JSON(plans)
	}
}

func optimizeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return errBadRequest(c, verr.Error())
	}
	if errors.Is(err, domain.ErrSolverUnavailable) {
		return errBadGateway(c, "route solver unavailable: "+err.Error())
	}
	return errInternal(c, err.Error())
}
