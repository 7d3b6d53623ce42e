package programs

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ulmj7/fulltravelapp/internal/models"
)

const programColumns = `id, organization_id, organization_name, title, subtitle, description,
	full_description, highlights, activities, duration, price, price_description, image,
	difficulty, best_time, status, created_at, updated_at`

// Repository handles program persistence on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a program repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProgram(row interface{ Scan(...any) error }) (*models.Program, error) {
	var p models.Program
	err := row.Scan(&p.ID, &p.OrganizationID, &p.OrganizationName, &p.Title, &p.Subtitle,
		&p.Description, &p.FullDescription, &p.Highlights, &p.Activities, &p.Duration,
		&p.Price, &p.PriceDescription, &p.Image, &p.Difficulty, &p.BestTime, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrganizationByUserID returns the organization profile owned by userID.
func (r *Repository) GetOrganizationByUserID(ctx context.Context, userID uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, user_id, name, email, description, logo, phone, address, website,
		rating, total_programs, status, created_at, updated_at
		FROM organizations WHERE user_id = $1`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, userID).Scan(&o.ID, &o.UserID, &o.Name, &o.Email,
		&o.Description, &o.Logo, &o.Phone, &o.Address, &o.Website, &o.Rating,
		&o.TotalPrograms, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new program.
func (r *Repository) Create(ctx context.Context, p *models.Program) error {
	const q = `INSERT INTO programs (organization_id, organization_name, title, subtitle,
		description, full_description, highlights, activities, duration, price,
		price_description, image, difficulty, best_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, p.OrganizationID, p.OrganizationName, p.Title, p.Subtitle,
		p.Description, p.FullDescription, p.Highlights, p.Activities, p.Duration, p.Price,
		p.PriceDescription, p.Image, string(p.Difficulty), p.BestTime, string(p.Status)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetOwned returns the program with the given id only when owned by userID.
func (r *Repository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Program, error) {
	q := `SELECT ` + programColumns + ` FROM programs WHERE id = $1 AND organization_id = $2`
	return scanProgram(r.pool.QueryRow(ctx, q, id, userID))
}

// ListActive returns all active programs, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Program, error) {
	q := `SELECT ` + programColumns + ` FROM programs WHERE status = 'active' ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListByOrganization returns all programs owned by userID regardless of status, newest first.
func (r *Repository) ListByOrganization(ctx context.Context, userID uuid.UUID) ([]models.Program, error) {
	q := `SELECT ` + programColumns + ` FROM programs WHERE organization_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]models.Program, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update writes back every editable field of p.
func (r *Repository) Update(ctx context.Context, p *models.Program) error {
	const q = `UPDATE programs SET title = $1, subtitle = $2, description = $3,
		full_description = $4, highlights = $5, activities = $6, duration = $7,
		price = $8, price_description = $9, image = $10, difficulty = $11,
		best_time = $12, status = $13, updated_at = NOW()
		WHERE id = $14`
	_, err := r.pool.Exec(ctx, q, p.Title, p.Subtitle, p.Description, p.FullDescription,
		p.Highlights, p.Activities, p.Duration, p.Price, p.PriceDescription, p.Image,
		string(p.Difficulty), p.BestTime, string(p.Status), p.ID)
	return err
}

// Delete removes a program by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	return err
}

// IncrementProgramCount bumps the owning organization's program counter.
func (r *Repository) IncrementProgramCount(ctx context.Context, userID uuid.UUID) error {
	const q = `UPDATE organizations SET total_programs = total_programs + 1, updated_at = NOW()
		WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, q, userID)
	return err
}

// DecrementProgramCount lowers the counter, never below zero.
func (r *Repository) DecrementProgramCount(ctx context.Context, userID uuid.UUID) error {
	const q = `UPDATE organizations SET total_programs = total_programs - 1, updated_at = NOW()
		WHERE user_id = $1 AND total_programs > 0`
	_, err := r.pool.Exec(ctx, q, userID)
	return err
}
