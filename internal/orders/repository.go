package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ulmj7/fulltravelapp/internal/models"
)

const orderColumns = `id, user_id, type, item_id, item_name, item_image, price, total_amount,
	service_fee, discount, status, payment_status, payment_method, details, payment_date,
	created_at, updated_at`

// Repository handles order persistence on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an order repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Type, &o.ItemID, &o.ItemName, &o.ItemImage,
		&o.Price, &o.TotalAmount, &o.ServiceFee, &o.Discount, &o.Status, &o.PaymentStatus,
		&o.PaymentMethod, &o.Details, &o.PaymentDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order in pending/pending state.
func (r *Repository) Create(ctx context.Context, o *models.Order) error {
	const q = `INSERT INTO orders (user_id, type, item_id, item_name, item_image, price,
		total_amount, service_fee, discount, status, payment_status, payment_method, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, o.UserID, string(o.Type), o.ItemID, o.ItemName, o.ItemImage,
		o.Price, o.TotalAmount, o.ServiceFee, o.Discount, string(o.Status),
		string(o.PaymentStatus), string(o.PaymentMethod), o.Details).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// GetOwned returns the order with the given id only when owned by userID.
func (r *Repository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	return scanOrder(r.pool.QueryRow(ctx, q, id, userID))
}

// ListByUser returns all orders owned by userID, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// MarkPaid flips the order to confirmed/completed and stamps the payment date.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	const q = `UPDATE orders SET payment_status = 'completed', status = 'confirmed',
		payment_date = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, paidAt)
	return err
}

// Cancel sets status to cancelled. payment_status is left untouched.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE orders SET status = 'cancelled', updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}
