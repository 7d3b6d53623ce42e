package admin

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

	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
)

type fakeStore struct {
	users    map[string]*models.User
	orgs     map[uuid.UUID]*models.Organization
	programs map[uuid.UUID]uuid.UUID // program id -> owning user id
	stats    Statistics
	recent   []RecentOrder
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		orgs:     make(map[uuid.UUID]*models.Organization),
		programs: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *fakeStore) UserExists(_ context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *fakeStore) CreateOrganization(_ context.Context, email, passwordHash, name, description, phone, address string) (*models.User, *models.Organization, error) {
	u := &models.User{ID: uuid.New(), Email: email, Password: passwordHash, Role: models.RoleOrganization}
	o := &models.Organization{ID: uuid.New(), UserID: u.ID, Name: name, Email: email,
		Description: description, Phone: phone, Address: address, Status: models.StatusActive,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.users[email] = u
	s.orgs[o.ID] = o
	return u, o, nil
}

func (s *fakeStore) ListOrganizations(_ context.Context) ([]OrganizationSummary, error) {
	var out []OrganizationSummary
	for _, o := range s.orgs {
		out = append(out, OrganizationSummary{ID: o.ID, UserID: o.UserID, Email: o.Email,
			Name: o.Name, Status: o.Status, CreatedAt: o.CreatedAt})
	}
	return out, nil
}

func (s *fakeStore) GetOrganizationByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	o, ok := s.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func (s *fakeStore) DeleteOrganizationCascade(_ context.Context, org *models.Organization) error {
	for pid, owner := range s.programs {
		if owner == org.UserID {
			delete(s.programs, pid)
		}
	}
	delete(s.orgs, org.ID)
	delete(s.users, org.Email)
	return nil
}

func (s *fakeStore) GetStatistics(_ context.Context) (*Statistics, []RecentOrder, error) {
	stats := s.stats
	return &stats, s.recent, nil
}

func newTestAdmin(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, zap.NewNop())

	router := gin.New()
	router.POST("/admin/create-organization", h.CreateOrganization)
	router.GET("/admin/organizations", h.ListOrganizations)
	router.GET("/admin/statistics", h.GetStatistics)
	router.DELETE("/admin/organizations/:id", h.DeleteOrganization)
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

func TestCreateOrganizationValidation(t *testing.T) {
	router := newTestAdmin(t, newFakeStore())
	cases := map[string]gin.H{
		"missing email":    {"password": "orgpass123", "name": "Bolor Travel"},
		"missing password": {"email": "org@gmail.com", "name": "Bolor Travel"},
		"missing name":     {"email": "org@gmail.com", "password": "orgpass123"},
	}
	for name, body := range cases {
		if w := doJSON(t, router, http.MethodPost, "/admin/create-organization", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestCreateOrganizationConflict(t *testing.T) {
	store := newFakeStore()
	router := newTestAdmin(t, store)
	body := gin.H{"email": "org@gmail.com", "password": "orgpass123", "name": "Bolor Travel"}

	if w := doJSON(t, router, http.MethodPost, "/admin/create-organization", body); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, want 201", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/admin/create-organization", body); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status = %d, want 400", w.Code)
	}

	if u := store.users["org@gmail.com"]; u == nil || u.Role != models.RoleOrganization {
		t.Errorf("stored user role = %v, want organization", store.users["org@gmail.com"])
	}
}

func TestDeleteOrganizationCascades(t *testing.T) {
	store := newFakeStore()
	router := newTestAdmin(t, store)

	_, org, err := store.CreateOrganization(context.Background(), "org@gmail.com", "hash", "Bolor Travel", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	store.programs[uuid.New()] = org.UserID
	store.programs[uuid.New()] = org.UserID
	otherProgram := uuid.New()
	store.programs[otherProgram] = uuid.New() // different owner, must survive

	w := doJSON(t, router, http.MethodDelete, "/admin/organizations/"+org.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	if len(store.orgs) != 0 {
		t.Errorf("organization still listed after delete")
	}
	if _, ok := store.users["org@gmail.com"]; ok {
		t.Errorf("user still present after cascade")
	}
	if len(store.programs) != 1 {
		t.Errorf("programs remaining = %d, want 1 (only the other owner's)", len(store.programs))
	}
	if _, ok := store.programs[otherProgram]; !ok {
		t.Errorf("unrelated program was deleted")
	}

	// Deleting again: the profile is gone.
	if w := doJSON(t, router, http.MethodDelete, "/admin/organizations/"+org.ID.String(), nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
}

func TestDeleteOrganizationMalformedID(t *testing.T) {
	router := newTestAdmin(t, newFakeStore())
	w := doJSON(t, router, http.MethodDelete, "/admin/organizations/not-a-uuid", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("malformed id: status = %d, want 404", w.Code)
	}
}

func TestGetStatistics(t *testing.T) {
	store := newFakeStore()
	store.stats = Statistics{
		TotalTouristUsers:  12,
		TotalOrganizations: 3,
		TotalPrograms:      7,
		TotalOrders:        20,
		CompletedOrders:    5,
		PendingOrders:      11,
		TotalRevenue:       15400,
	}
	store.recent = []RecentOrder{{ID: uuid.New(), UserEmail: "t1@gmail.com", Type: models.OrderTypeProgram,
		ItemName: "Gobi Trek", TotalAmount: 550, Status: models.OrderConfirmed,
		PaymentStatus: models.PaymentCompleted, CreatedAt: time.Now()}}

	router := newTestAdmin(t, store)
	w := doJSON(t, router, http.MethodGet, "/admin/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body response.Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data := body.Data.(map[string]any)
	stats := data["statistics"].(map[string]any)
	if stats["totalRevenue"].(float64) != 15400 {
		t.Errorf("totalRevenue = %v, want 15400", stats["totalRevenue"])
	}
	if stats["totalTouristUsers"].(float64) != 12 {
		t.Errorf("totalTouristUsers = %v, want 12", stats["totalTouristUsers"])
	}
	recent := data["recentOrders"].([]any)
	if len(recent) != 1 {
		t.Fatalf("recentOrders = %d entries, want 1", len(recent))
	}
	if recent[0].(map[string]any)["userEmail"] != "t1@gmail.com" {
		t.Errorf("recent order userEmail = %v", recent[0].(map[string]any)["userEmail"])
	}
}
