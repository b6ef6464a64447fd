package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{db: store.db}
}

// Create persists a new custom category. The id is assigned by the caller.
func (r *CategoryRepository) Create(c *domain.CustomCategory) (*domain.CustomCategory, error) {
	now := time.Now().UTC()

	_, err := r.db.Exec(
		`INSERT INTO categories (id, direction, label, icon, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID,
		string(c.Direction),
		c.Label,
		c.Icon,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	return r.GetByID(c.ID)
}

// GetByID retrieves a custom category by its id.
func (r *CategoryRepository) GetByID(id string) (*domain.CustomCategory, error) {
	row := r.db.QueryRow(
		`SELECT id, direction, label, icon, created_at FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetAll returns all custom categories in creation (store) order.
func (r *CategoryRepository) GetAll() ([]*domain.CustomCategory, error) {
	rows, err := r.db.Query(
		`SELECT id, direction, label, icon, created_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.CustomCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Delete removes a custom category by id. Transactions keep their category
// reference; it dangles and resolves to Uncategorized from then on.
func (r *CategoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.CustomCategory, error) {
	var (
		c         domain.CustomCategory
		direction string
		createdAt string
	)

	if err := row.Scan(&c.ID, &direction, &c.Label, &c.Icon, &createdAt); err != nil {
		return nil, err
	}

	c.Direction = domain.Direction(direction)

	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return &c, nil
}
