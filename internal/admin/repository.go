package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ulmj7/fulltravelapp/internal/models"
)

// OrganizationSummary is a profile row joined with its owning user id for the
// admin listing.
type OrganizationSummary struct {
	ID            uuid.UUID            `json:"id"`
	UserID        uuid.UUID            `json:"userId"`
	Email         string               `json:"email"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	TotalPrograms int                  `json:"totalPrograms"`
	Rating        float64              `json:"rating"`
	Status        models.ProfileStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	TotalTouristUsers  int     `json:"totalTouristUsers"`
	TotalOrganizations int     `json:"totalOrganizations"`
	TotalPrograms      int     `json:"totalPrograms"`
	TotalOrders        int     `json:"totalOrders"`
	CompletedOrders    int     `json:"completedOrders"`
	PendingOrders      int     `json:"pendingOrders"`
	TotalRevenue       float64 `json:"totalRevenue"`
}

// RecentOrder is one of the latest orders joined with the purchaser's email.
type RecentOrder struct {
	ID            uuid.UUID            `json:"id"`
	UserEmail     string               `json:"userEmail"`
	Type          models.OrderType     `json:"type"`
	ItemName      string               `json:"itemName"`
	TotalAmount   float64              `json:"totalAmount"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Repository handles admin persistence on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// UserExists reports whether a user with the given email is registered.
func (r *Repository) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// CreateOrganization creates the organization user and its profile in one
// transaction.
func (r *Repository) CreateOrganization(ctx context.Context, email, passwordHash, name, description, phone, address string) (*models.User, *models.Organization, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var u models.User
	err = tx.QueryRow(ctx, `INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, role, created_at, updated_at`,
		email, passwordHash, string(models.RoleOrganization)).
		Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, nil, err
	}

	var o models.Organization
	err = tx.QueryRow(ctx, `INSERT INTO organizations (user_id, name, email, description, phone, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, user_id, name, email, description, logo, phone, address, website,
			rating, total_programs, status, created_at, updated_at`,
		u.ID, name, email, description, phone, address).
		Scan(&o.ID, &o.UserID, &o.Name, &o.Email, &o.Description, &o.Logo, &o.Phone,
			&o.Address, &o.Website, &o.Rating, &o.TotalPrograms, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &u, &o, nil
}

// ListOrganizations returns all organization profiles, newest first.
func (r *Repository) ListOrganizations(ctx context.Context) ([]OrganizationSummary, error) {
	const q = `SELECT id, user_id, email, name, description, phone, address,
		total_programs, rating, status, created_at
		FROM organizations ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OrganizationSummary
	for rows.Next() {
		var s OrganizationSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Email, &s.Name, &s.Description, &s.Phone,
			&s.Address, &s.TotalPrograms, &s.Rating, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetOrganizationByID returns a profile by its own id (not the user id).
func (r *Repository) GetOrganizationByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, user_id, name, email, description, logo, phone, address, website,
		rating, total_programs, status, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.UserID, &o.Name, &o.Email,
		&o.Description, &o.Logo, &o.Phone, &o.Address, &o.Website, &o.Rating,
		&o.TotalPrograms, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrganizationCascade removes the organization's programs, its profile
// and the owning user, as three independent writes in that order. A fault
// between steps leaves the remaining rows in place; this drift is the
// documented behavior, so no transaction wraps the sequence.
func (r *Repository) DeleteOrganizationCascade(ctx context.Context, org *models.Organization) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE organization_id = $1`, org.UserID); err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, org.ID); err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, org.UserID); err != nil {
		return err
	}
	return nil
}

// GetStatistics aggregates the dashboard counters and the ten latest orders.
func (r *Repository) GetStatistics(ctx context.Context) (*Statistics, []RecentOrder, error) {
	var s Statistics
	const counts = `SELECT
		(SELECT COUNT(*) FROM users WHERE role = 'tourist'),
		(SELECT COUNT(*) FROM organizations),
		(SELECT COUNT(*) FROM programs),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM orders WHERE status = 'confirmed'),
		(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'completed')`
	err := r.pool.QueryRow(ctx, counts).Scan(&s.TotalTouristUsers, &s.TotalOrganizations,
		&s.TotalPrograms, &s.TotalOrders, &s.CompletedOrders, &s.PendingOrders, &s.TotalRevenue)
	if err != nil {
		return nil, nil, err
	}

	const recent = `SELECT o.id, COALESCE(u.email, ''), o.type, o.item_name, o.total_amount,
		o.status, o.payment_status, o.created_at
		FROM orders o LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC LIMIT 10`
	rows, err := r.pool.Query(ctx, recent)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var orders []RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.UserEmail, &o.Type, &o.ItemName, &o.TotalAmount,
			&o.Status, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
	}
	return &s, orders, rows.Err()
}
