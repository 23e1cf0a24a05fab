package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/2270330995/VRP-Carpool/internal/adapters/http"
	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
	"github.com/2270330995/VRP-Carpool/internal/core/usecases"
)

// ---- Mock repositories and services ----

type mockDriverRepo struct {
	listFn      func(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error)
	getByIDFn   func(ctx context.Context, id int64) (*domain.RosterDriver, error)
	createFn    func(ctx context.Context, d *domain.RosterDriver) error
	updateFn    func(ctx context.Context, d *domain.RosterDriver) error
	setActiveFn func(ctx context.Context, id int64, active bool) error
}

func (m *mockDriverRepo) List(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error) {
	if m.listFn != nil {
		return m.listFn(ctx, includeInactive)
	}
	return nil, nil
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id int64) (*domain.RosterDriver, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockDriverRepo) Create(ctx context.Context, d *domain.RosterDriver) error {
	if m.createFn != nil {
		return m.createFn(ctx, d)
	}
	return nil
}
func (m *mockDriverRepo) Update(ctx context.Context, d *domain.RosterDriver) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, d)
	}
	return nil
}
func (m *mockDriverRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return nil
}

type mockPassengerRepo struct {
	listFn func(ctx context.Context, includeInactive bool) ([]domain.Passenger, error)
}

func (m *mockPassengerRepo) List(ctx context.Context, includeInactive bool) ([]domain.Passenger, error) {
	if m.listFn != nil {
		return m.listFn(ctx, includeInactive)
	}
	return nil, nil
}
func (m *mockPassengerRepo) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return nil, domain.ErrNotFound
}
func (m *mockPassengerRepo) Create(ctx context.Context, p *domain.Passenger) error { return nil }
func (m *mockPassengerRepo) Update(ctx context.Context, p *domain.Passenger) error { return nil }
func (m *mockPassengerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return nil
}

type mockDestinationRepo struct{}

func (m *mockDestinationRepo) List(ctx context.Context, includeInactive bool) ([]domain.Destination, error) {
	return nil, nil
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	return nil, domain.ErrNotFound
}
func (m *mockDestinationRepo) Create(ctx context.Context, d *domain.Destination) error { return nil }
func (m *mockDestinationRepo) Update(ctx context.Context, d *domain.Destination) error { return nil }
func (m *mockDestinationRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return nil
}

type mockRunRepo struct {
	createRunFn func(ctx context.Context, note string) (*domain.AssignmentRun, error)
	getRunFn    func(ctx context.Context, id int64) (*domain.AssignmentRun, error)
	listRunsFn  func(ctx context.Context) ([]domain.AssignmentRun, error)
}

func (m *mockRunRepo) CreateRun(ctx context.Context, note string) (*domain.AssignmentRun, error) {
	if m.createRunFn != nil {
		return m.createRunFn(ctx, note)
	}
	return &domain.AssignmentRun{ID: 1, Note: note}, nil
}
func (m *mockRunRepo) AddAssignments(ctx context.Context, runID int64, rows []domain.Assignment) error {
	return nil
}
func (m *mockRunRepo) ListRuns(ctx context.Context) ([]domain.AssignmentRun, error) {
	if m.listRunsFn != nil {
		return m.listRunsFn(ctx)
	}
	return nil, nil
}
func (m *mockRunRepo) GetRun(ctx context.Context, id int64) (*domain.AssignmentRun, error) {
	if m.getRunFn != nil {
		return m.getRunFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockRunRepo) LatestRun(ctx context.Context) (*domain.AssignmentRun, error) {
	return nil, domain.ErrNotFound
}
func (m *mockRunRepo) ListAssignments(ctx context.Context, runID int64) ([]domain.Assignment, error) {
	return nil, nil
}
func (m *mockRunRepo) DeleteRun(ctx context.Context, runID int64) error { return nil }

type mockSolver struct {
	solveFn func(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*ports.SolverResponse, error)
}

func (m *mockSolver) Solve(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*ports.SolverResponse, error) {
	if m.solveFn != nil {
		return m.solveFn(ctx, drivers, students, event, window)
	}
	return &ports.SolverResponse{}, nil
}

type mockPlaces struct {
	autocompleteFn func(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
	detailsFn      func(ctx context.Context, placeID string) (*domain.PlaceDetails, error)
}

func (m *mockPlaces) Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	if m.autocompleteFn != nil {
		return m.autocompleteFn(ctx, input)
	}
	return nil, nil
}
func (m *mockPlaces) Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, placeID)
	}
	return nil, domain.ErrNotFound
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Optimize:     usecases.NewOptimizeService(&mockSolver{}, nil),
		Drivers:      usecases.NewDriverService(&mockDriverRepo{}),
		Passengers:   usecases.NewPassengerService(&mockPassengerRepo{}),
		Destinations: usecases.NewDestinationService(&mockDestinationRepo{}),
		Runs:         usecases.NewRunService(&mockDriverRepo{}, &mockPassengerRepo{}, &mockRunRepo{}, nil),
		Places:       usecases.NewPlaceService(&mockPlaces{}, nil),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

// ---- Driver roster tests ----

func TestListDrivers_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Drivers = usecases.NewDriverService(&mockDriverRepo{
			listFn: func(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error) {
				return []domain.RosterDriver{
					{ID: 1, Name: "Alice", Seats: 4, Active: true},
					{ID: 2, Name: "Bob", Seats: 2, Active: true},
				}, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/drivers", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.RosterDriver `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 2 || len(result.Data) != 2 {
		t.Errorf("expected 2 drivers, got total=%d len=%d", result.Pagination.Total, len(result.Data))
	}
}

func TestListDrivers_Pagination(t *testing.T) {
	drivers := make([]domain.RosterDriver, 5)
	for i := range drivers {
		drivers[i] = domain.RosterDriver{ID: int64(i + 1), Name: "D", Seats: 4, Active: true}
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Drivers = usecases.NewDriverService(&mockDriverRepo{
			listFn: func(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error) {
				return drivers, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/drivers?offset=4&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.RosterDriver `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 5 || len(result.Data) != 1 {
		t.Errorf("expected last page with 1 driver, got total=%d len=%d", result.Pagination.Total, len(result.Data))
	}
	if link := resp.Header.Get("Link"); !strings.Contains(link, `rel="prev"`) {
		t.Errorf("expected a prev link header, got %q", link)
	}
}

func TestCreateDriver_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/drivers",
		strings.NewReader(`{"name":"Alice","seats":4,"address":"1 Main St"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var created domain.RosterDriver
	json.NewDecoder(resp.Body).Decode(&created)
	if !created.Active {
		t.Error("created driver should be active")
	}
}

func TestCreateDriver_InvalidSeats(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/drivers",
		strings.NewReader(`{"name":"Alice","seats":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateDriver_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("PUT", "/v1/drivers/99",
		strings.NewReader(`{"name":"Alice","seats":4}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeactivateDriver_NoContent(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("DELETE", "/v1/drivers/1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestDeactivateDriver_BadID(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("DELETE", "/v1/drivers/abc", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Optimize tests ----

func TestOptimize_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Optimize = usecases.NewOptimizeService(&mockSolver{
			solveFn: func(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*ports.SolverResponse, error) {
				idx := 0
				return &ports.SolverResponse{
					Routes: []ports.SolverRoute{{
						VehicleIndex: &idx,
						Visits: []ports.SolverVisit{
							{VisitLabel: "pickup_student_1", StartTime: "2026-01-01T00:10:00Z"},
							{VisitLabel: "dropoff_student_1", StartTime: "2026-01-01T00:30:00Z"},
						},
					}},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	body := `{
		"event": {"location": {"lat": 43.08, "lng": -89.40}},
		"drivers": [{"id": "d1", "home": {"lat": 43.07, "lng": -89.40}, "seatCapacity": 4}],
		"students": [{"id": "1", "home": {"lat": 43.075, "lng": -89.41}}]
	}`
	req := httptest.NewRequest("POST", "/v1/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var plans []domain.RoutePlan
	json.NewDecoder(resp.Body).Decode(&plans)
	if len(plans) != 1 || plans[0].DriverID != "d1" {
		t.Fatalf("plans = %+v", plans)
	}
	if len(plans[0].Timeline) != 2 {
		t.Errorf("expected 2 timeline entries, got %d", len(plans[0].Timeline))
	}
}

func TestOptimize_ValidationFailure(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{
		"event": {"location": {"lat": 43.08, "lng": -89.40}},
		"drivers": [{"id": "d1", "home": {"lat": 43.07, "lng": -89.40}}],
		"students": [{"id": "1", "home": {"lat": 43.075, "lng": -89.41}}]
	}`
	req := httptest.NewRequest("POST", "/v1/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for missing seat capacity, got %d", resp.StatusCode)
	}
	if b := readBody(t, resp.Body); !strings.Contains(string(b), "seatCapacity") {
		t.Errorf("expected the offending field in the response, got %s", b)
	}
}

func TestOptimize_SolverUnavailable(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Optimize = usecases.NewOptimizeService(&mockSolver{
			solveFn: func(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*ports.SolverResponse, error) {
				return nil, domain.ErrSolverUnavailable
			},
		}, nil)
	})
	app := setupApp(deps)

	body := `{
		"event": {"location": {"lat": 43.08, "lng": -89.40}},
		"drivers": [{"id": "d1", "home": {"lat": 43.07, "lng": -89.40}, "seatCapacity": 4}],
		"students": [{"id": "1", "home": {"lat": 43.075, "lng": -89.41}}]
	}`
	req := httptest.NewRequest("POST", "/v1/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestOptimize_MalformedBody(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/optimize", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Assignment run tests ----

func TestCreateRun_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/assign", strings.NewReader(`{"note":"weekly"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var summary domain.RunSummary
	json.NewDecoder(resp.Body).Decode(&summary)
	if summary.RunID != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCreateRun_EmptyBodyAllowed(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/assign", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/runs/99", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Places tests ----

func TestPlaceAutocomplete_RequiresInput(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/places/autocomplete", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceAutocomplete_CacheHeader(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Places = usecases.NewPlaceService(&mockPlaces{
			autocompleteFn: func(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
				return []domain.PlaceSuggestion{{PlaceID: "pid-1", Description: "500 State St"}}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/places/autocomplete?input=500+State", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "max-age=300") {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestPlaceDetails_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Places = usecases.NewPlaceService(&mockPlaces{
			detailsFn: func(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
				return &domain.PlaceDetails{Address: "500 State St", Lat: 43.07, Lng: -89.39}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/places/pid-1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "max-age=3600") {
		t.Errorf("Cache-Control = %q", cc)
	}

	var details domain.PlaceDetails
	json.NewDecoder(resp.Body).Decode(&details)
	if details.Address != "500 State St" {
		t.Errorf("details = %+v", details)
	}
}

func TestPlaceDetails_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/places/missing", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Health tests ----

func TestHealth_Alive(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReady_NoDatabase(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503 without a database, got %d", resp.StatusCode)
	}
}
