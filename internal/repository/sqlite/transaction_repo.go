package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using SQLite
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{db: store.db}
}

// Create persists a new transaction and assigns its id.
func (r *TransactionRepository) Create(t *domain.Transaction) (*domain.Transaction, error) {
	now := time.Now().UTC()

	result, err := r.db.Exec(
		`INSERT INTO transactions (direction, amount, category_id, note, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(t.Direction),
		t.Amount.String(),
		nullString(t.CategoryID),
		nullString(t.Note),
		t.Date.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID retrieves a transaction by its id.
func (r *TransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(
		`SELECT id, direction, amount, category_id, note, date, created_at, updated_at
		 FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetAll returns the full record set, newest business date first.
func (r *TransactionRepository) GetAll() ([]*domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, direction, amount, category_id, note, date, created_at, updated_at
		 FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Update overwrites a transaction's fields wholesale under the same id.
func (r *TransactionRepository) Update(id int64, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	result, err := r.db.Exec(
		`UPDATE transactions
		 SET direction = ?, amount = ?, category_id = ?, note = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		string(data.Direction),
		data.Amount.String(),
		nullString(data.CategoryID),
		nullString(data.Note),
		data.Date.Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return r.GetByID(id)
}

// Delete removes a transaction by id. No soft delete.
func (r *TransactionRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t          domain.Transaction
		direction  string
		amount     string
		categoryID sql.NullString
		note       sql.NullString
		date       string
		createdAt  string
		updatedAt  string
	)

	if err := row.Scan(&t.ID, &direction, &amount, &categoryID, &note, &date, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	t.Direction = domain.Direction(direction)
	t.Amount = parsedAmount
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	if note.Valid {
		t.Note = &note.String
	}

	if t.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}

	return &t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
