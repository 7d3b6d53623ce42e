package programs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Ulmj7/fulltravelapp/internal/middleware"
	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
)

type fakeStore struct {
	orgs     map[uuid.UUID]*models.Organization // keyed by user id
	programs map[uuid.UUID]*models.Program
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orgs:     make(map[uuid.UUID]*models.Organization),
		programs: make(map[uuid.UUID]*models.Program),
	}
}

func (s *fakeStore) addOrg(userID uuid.UUID, name string) {
	s.orgs[userID] = &models.Organization{ID: uuid.New(), UserID: userID, Name: name, Status: models.StatusActive}
}

func (s *fakeStore) GetOrganizationByUserID(_ context.Context, userID uuid.UUID) (*models.Organization, error) {
	o, ok := s.orgs[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func (s *fakeStore) Create(_ context.Context, p *models.Program) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.programs[p.ID] = &cp
	return nil
}

func (s *fakeStore) GetOwned(_ context.Context, id, userID uuid.UUID) (*models.Program, error) {
	p, ok := s.programs[id]
	if !ok || p.OrganizationID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) ListActive(_ context.Context) ([]models.Program, error) {
	var out []models.Program
	for _, p := range s.programs {
		if p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByOrganization(_ context.Context, userID uuid.UUID) ([]models.Program, error) {
	var out []models.Program
	for _, p := range s.programs {
		if p.OrganizationID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, p *models.Program) error {
	cp := *p
	s.programs[p.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.programs, id)
	return nil
}

func (s *fakeStore) IncrementProgramCount(_ context.Context, userID uuid.UUID) error {
	if o, ok := s.orgs[userID]; ok {
		o.TotalPrograms++
	}
	return nil
}

func (s *fakeStore) DecrementProgramCount(_ context.Context, userID uuid.UUID) error {
	if o, ok := s.orgs[userID]; ok && o.TotalPrograms > 0 {
		o.TotalPrograms--
	}
	return nil
}

func newTestPrograms(t *testing.T, store Store, userID uuid.UUID, role models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, zap.NewNop())

	router := gin.New()
	router.GET("/programs/all", h.ListAll)

	authed := router.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, string(role))
	})
	authed.POST("/programs/create", h.Create)
	authed.GET("/programs/my-programs", h.ListMine)
	authed.PUT("/programs/:id", h.Update)
	authed.DELETE("/programs/:id", h.Delete)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validProgram() gin.H {
	return gin.H{
		"title":    "Gobi Desert Trek",
		"subtitle": "Five days in the Gobi",
		"duration": "5 days",
		"price":    500,
		"image":    "https://example.com/gobi.jpg",
		"bestTime": "June-September",
	}
}

func TestCreateRequiresOrganizationRole(t *testing.T) {
	router := newTestPrograms(t, newFakeStore(), uuid.New(), models.RoleTourist)
	w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram())
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestCreateRequiresProfile(t *testing.T) {
	router := newTestPrograms(t, newFakeStore(), uuid.New(), models.RoleOrganization)
	w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateSnapshotsNameAndBumpsCounter(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addOrg(userID, "Bolor Travel")
	router := newTestPrograms(t, store, userID, models.RoleOrganization)

	w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if n := store.orgs[userID].TotalPrograms; n != 1 {
		t.Errorf("totalPrograms = %d, want 1", n)
	}
	for _, p := range store.programs {
		if p.OrganizationName != "Bolor Travel" {
			t.Errorf("organizationName = %q, want snapshot of owner name", p.OrganizationName)
		}
		if p.Status != models.StatusActive {
			t.Errorf("status = %s, want active", p.Status)
		}
		if p.Difficulty != models.DifficultyModerate {
			t.Errorf("difficulty = %s, want default moderate", p.Difficulty)
		}
		if p.PriceDescription != models.DefaultPriceDescription {
			t.Errorf("priceDescription = %q, want default", p.PriceDescription)
		}
	}
}

func TestDeleteRestoresCounterAndFloorsAtZero(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addOrg(userID, "Bolor Travel")
	router := newTestPrograms(t, store, userID, models.RoleOrganization)

	w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram())
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	var id uuid.UUID
	for pid := range store.programs {
		id = pid
	}

	if w := doJSON(t, router, http.MethodDelete, "/programs/"+id.String(), nil); w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, want 200", w.Code)
	}
	if n := store.orgs[userID].TotalPrograms; n != 0 {
		t.Errorf("totalPrograms after delete = %d, want 0", n)
	}

	// Redundant decrement must not go negative; the row is gone, so the
	// ownership check reports not found and the counter stays at zero.
	if w := doJSON(t, router, http.MethodDelete, "/programs/"+id.String(), nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
	if n := store.orgs[userID].TotalPrograms; n != 0 {
		t.Errorf("totalPrograms = %d, want 0 (floored)", n)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addOrg(userID, "Bolor Travel")
	router := newTestPrograms(t, store, userID, models.RoleOrganization)

	if w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram()); w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	var id uuid.UUID
	for pid := range store.programs {
		id = pid
	}

	w := doJSON(t, router, http.MethodPut, "/programs/"+id.String(), gin.H{"price": 750, "status": "inactive"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, want 200: %s", w.Code, w.Body.String())
	}
	p := store.programs[id]
	if p.Price != 750 {
		t.Errorf("price = %v, want 750", p.Price)
	}
	if p.Status != models.StatusInactive {
		t.Errorf("status = %s, want inactive", p.Status)
	}
	if p.Title != "Gobi Desert Trek" {
		t.Errorf("title = %q, want unchanged", p.Title)
	}
	if p.Duration != "5 days" {
		t.Errorf("duration = %q, want unchanged", p.Duration)
	}
}

func TestUpdateRejectsInvalidEnums(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addOrg(userID, "Bolor Travel")
	router := newTestPrograms(t, store, userID, models.RoleOrganization)

	if w := doJSON(t, router, http.MethodPost, "/programs/create", validProgram()); w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	var id uuid.UUID
	for pid := range store.programs {
		id = pid
	}

	if w := doJSON(t, router, http.MethodPut, "/programs/"+id.String(), gin.H{"difficulty": "impossible"}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid difficulty: status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, "/programs/"+id.String(), gin.H{"status": "archived"}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: status = %d, want 400", w.Code)
	}
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()
	store.addOrg(owner, "Bolor Travel")
	p := &models.Program{OrganizationID: owner, OrganizationName: "Bolor Travel", Title: "Gobi Trek",
		Status: models.StatusActive, Difficulty: models.DifficultyModerate}
	if err := store.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	intruder := uuid.New()
	store.addOrg(intruder, "Other Agency")
	router := newTestPrograms(t, store, intruder, models.RoleOrganization)

	if w := doJSON(t, router, http.MethodPut, "/programs/"+p.ID.String(), gin.H{"title": "hijacked"}); w.Code != http.StatusNotFound {
		t.Errorf("update as non-owner: status = %d, want 404", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/programs/"+p.ID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("delete as non-owner: status = %d, want 404", w.Code)
	}
}

func TestListAllReturnsOnlyActive(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()
	store.addOrg(owner, "Bolor Travel")
	active := &models.Program{OrganizationID: owner, OrganizationName: "Bolor Travel", Title: "Active Trek", Status: models.StatusActive}
	hidden := &models.Program{OrganizationID: owner, OrganizationName: "Bolor Travel", Title: "Hidden Trek", Status: models.StatusInactive}
	for _, p := range []*models.Program{active, hidden} {
		if err := store.Create(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	router := newTestPrograms(t, store, owner, models.RoleOrganization)
	w := doJSON(t, router, http.MethodGet, "/programs/all", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body response.Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	list := body.Data.([]any)
	if len(list) != 1 {
		t.Fatalf("public listing has %d programs, want 1", len(list))
	}
	entry := list[0].(map[string]any)
	if entry["title"] != "Active Trek" {
		t.Errorf("title = %v, want Active Trek", entry["title"])
	}
	if entry["agency"] != "Bolor Travel" {
		t.Errorf("agency = %v, want Bolor Travel", entry["agency"])
	}

	// my-programs includes every status.
	w = doJSON(t, router, http.MethodGet, "/programs/my-programs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my-programs: status = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := len(body.Data.([]any)); got != 2 {
		t.Errorf("my-programs has %d entries, want 2", got)
	}
}
