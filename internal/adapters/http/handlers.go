package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// --- Driver roster ---

// ListDriversHandler returns the driver roster. Soft-deleted drivers are
// hidden unless include_inactive is set.
func ListDriversHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		includeInactive := c.QueryBool("include_inactive", false)
		drivers, err := deps.Drivers.List(c.Context(), includeInactive)
		if err != nil {
			return errInternal(c, err.Error())
		}

		// Apply offset/limit pagination on the full list
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(drivers)
		if offset >= total {
			drivers = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			drivers = drivers[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: drivers, Pagination: pg})
	}
}

// CreateDriverHandler adds a driver to the roster.
func CreateDriverHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d domain.RosterDriver
		if err := c.BodyParser(&d); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		if err := deps.Drivers.Create(c.Context(), &d); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// UpdateDriverHandler replaces the editable fields of a driver.
func UpdateDriverHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "driver id must be a positive integer")
		}
		var d domain.RosterDriver
		if err := c.BodyParser(&d); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		d.ID = int64(id)

		updated, err := deps.Drivers.Update(c.Context(), &d)
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "driver not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(updated)
	}
}

// DeactivateDriverHandler soft-deletes a driver.
func DeactivateDriverHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "driver id must be a positive integer")
		}
		if err := deps.Drivers.Deactivate(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "driver not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreDriverHandler reactivates a soft-deleted driver.
func RestoreDriverHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "driver id must be a positive integer")
		}
		if err := deps.Drivers.Restore(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "driver not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// --- Passenger roster ---

// ListPassengersHandler returns the passenger roster.
func ListPassengersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		includeInactive := c.QueryBool("include_inactive", false)
		passengers, err := deps.Passengers.List(c.Context(), includeInactive)
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(passengers)
		if offset >= total {
			passengers = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			passengers = passengers[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: passengers, Pagination: pg})
	}
}

// CreatePassengerHandler adds a passenger to the roster.
func CreatePassengerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p domain.Passenger
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		if err := deps.Passengers.Create(c.Context(), &p); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePassengerHandler replaces the editable fields of a passenger.
func UpdatePassengerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "passenger id must be a positive integer")
		}
		var p domain.Passenger
		if err := c.BodyParser(&p); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		p.ID = int64(id)

		updated, err := deps.Passengers.Update(c.Context(), &p)
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "passenger not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(updated)
	}
}

// DeactivatePassengerHandler soft-deletes a passenger.
func DeactivatePassengerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "passenger id must be a positive integer")
		}
		if err := deps.Passengers.Deactivate(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "passenger not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestorePassengerHandler reactivates a soft-deleted passenger.
func RestorePassengerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "passenger id must be a positive integer")
		}
		if err := deps.Passengers.Restore(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "passenger not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// --- Saved destinations ---

// ListDestinationsHandler returns saved destinations.
func ListDestinationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		includeInactive := c.QueryBool("include_inactive", false)
		destinations, err := deps.Destinations.List(c.Context(), includeInactive)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(destinations)
	}
}

// CreateDestinationHandler adds a saved destination.
func CreateDestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d domain.Destination
		if err := c.BodyParser(&d); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		if err := deps.Destinations.Create(c.Context(), &d); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// UpdateDestinationHandler replaces the name and address of a destination.
func UpdateDestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "destination id must be a positive integer")
		}
		var d domain.Destination
		if err := c.BodyParser(&d); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		d.ID = int64(id)

		updated, err := deps.Destinations.Update(c.Context(), &d)
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "destination not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(updated)
	}
}

// DeactivateDestinationHandler soft-deletes a destination.
func DeactivateDestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "destination id must be a positive integer")
		}
		if err := deps.Destinations.Deactivate(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "destination not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreDestinationHandler reactivates a soft-deleted destination.
func RestoreDestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "destination id must be a positive integer")
		}
		if err := deps.Destinations.Restore(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "destination not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// --- Assignment runs ---

// CreateRunHandler assigns the active roster and records the result.
func CreateRunHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Note string `json:"note"`
		}
		// Body is optional; an empty POST creates an unannotated run.
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return errBadRequest(c, "invalid request body: "+err.Error())
			}
		}

		summary, err := deps.Runs.CreateRun(c.Context(), body.Note)
		if err != nil {
			return errInternal(c, err.Error())
		}
		LoggerFromCtx(c.UserContext()).Info("assignment run created",
			"run_id", summary.RunID, "assigned", summary.AssignedCount, "unassigned", summary.UnassignedCount)
		return c.Status(fiber.StatusCreated).JSON(summary)
	}
}

// ListRunsHandler lists assignment runs, newest first.
func ListRunsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		runs, err := deps.Runs.ListRuns(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(runs)
	}
}

// LatestRunHandler returns the detail of the most recent run.
func LatestRunHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := deps.Runs.LatestRunDetail(c.Context())
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "no runs recorded")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(detail)
	}
}

// GetRunHandler returns the detail of one run.
func GetRunHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "run id must be a positive integer")
		}
		detail, err := deps.Runs.RunDetail(c.Context(), int64(id))
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "run not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(detail)
	}
}

// DeleteRunHandler removes a run and its assignments.
func DeleteRunHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "run id must be a positive integer")
		}
		if err := deps.Runs.DeleteRun(c.Context(), int64(id)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "run not found")
			}
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// --- Places lookup ---

// PlaceAutocompleteHandler proxies address autocomplete.
func PlaceAutocompleteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := c.Query("input")
		if input == "" {
			return errBadRequest(c, "input query parameter is required")
		}
		if len(input) > 200 {
			return errBadRequest(c, "input too long (max 200 characters)")
		}

		suggestions, err := deps.Places.Autocomplete(c.Context(), input)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(suggestions)
	}
}

// PlaceDetailsHandler resolves a place to its address and coordinates.
func PlaceDetailsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		placeID := c.Params("id")
		if placeID == "" {
			return errBadRequest(c, "place id is required")
		}

		details, err := deps.Places.Details(c.Context(), placeID)
		if errors.Is(err, domain.ErrNotFound) {
			return errNotFound(c, "place not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(details)
	}
}
