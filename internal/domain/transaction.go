package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Transaction is a single cash event. Amount is always positive; Direction
// says which way the money moved. CategoryID is a weak reference: it may
// point at a built-in category key or a custom category id, and it may
// dangle after a custom category is deleted.
type Transaction struct {
	ID         int64           `json:"id"`
	Direction  Direction       `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *string         `json:"categoryId,omitempty"`
	Note       *string         `json:"note,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// UpdateTransactionData carries the replacement field values for an edit.
// Date preservation on edit is the service's job: it passes the stored date
// through when the caller did not supply a new one.
type UpdateTransactionData struct {
	Direction  Direction
	Amount     decimal.Decimal
	CategoryID *string
	Note       *string
	Date       time.Time
}

// Validation constants
const (
	MaxNoteLength = 500
)

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id int64) (*Transaction, error)
	GetAll() ([]*Transaction, error)
	Update(id int64, data *UpdateTransactionData) (*Transaction, error)
	Delete(id int64) error
}
