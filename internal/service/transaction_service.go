package service

import (
	"strings"
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction lifecycle: create, edit, delete.
// Every successful write publishes a change event so the UI can re-run its
// queries against the live record set.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	publisher       websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, publisher websocket.EventPublisher) *TransactionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Direction  domain.Direction
	Amount     decimal.Decimal
	CategoryID *string
	Note       *string
	Date       *time.Time
}

// CreateTransaction validates and persists a new cash event. The business
// date defaults to now when the caller leaves it unset. The category id is
// deliberately not checked for existence: it is a weak reference and an
// unknown id simply resolves to Uncategorized at display time.
func (s *TransactionService) CreateTransaction(input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	note, err := normalizeNote(input.Note)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		date = *input.Date
	}

	transaction, err := s.transactionRepo.Create(&domain.Transaction{
		Direction:  input.Direction,
		Amount:     input.Amount,
		CategoryID: normalizeCategoryID(input.CategoryID),
		Note:       note,
		Date:       date,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(websocket.TransactionCreated(transaction))
	return transaction, nil
}

// UpdateTransactionInput holds the input for updating a transaction
type UpdateTransactionInput struct {
	Direction  domain.Direction
	Amount     decimal.Decimal
	CategoryID *string
	Note       *string
	Date       *time.Time
}

// UpdateTransaction overwrites a transaction's fields wholesale under the
// same id. The stored business date is preserved unless the caller passes a
// new one.
func (s *TransactionService) UpdateTransaction(id int64, input UpdateTransactionInput) (*domain.Transaction, error) {
	if !input.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	note, err := normalizeNote(input.Note)
	if err != nil {
		return nil, err
	}

	existing, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	date := existing.Date
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		date = *input.Date
	}

	transaction, err := s.transactionRepo.Update(id, &domain.UpdateTransactionData{
		Direction:  input.Direction,
		Amount:     input.Amount,
		CategoryID: normalizeCategoryID(input.CategoryID),
		Note:       note,
		Date:       date,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(websocket.TransactionUpdated(transaction))
	return transaction, nil
}

// DeleteTransaction removes a transaction by id. Deletion is immediate and
// irreversible; there is no soft delete.
func (s *TransactionService) DeleteTransaction(id int64) error {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.Delete(id); err != nil {
		return err
	}

	s.publisher.Publish(websocket.TransactionDeleted(transaction))
	return nil
}

// GetTransaction retrieves a transaction by id.
func (s *TransactionService) GetTransaction(id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// GetAllTransactions returns the full record set, newest first by business
// date (store order).
func (s *TransactionService) GetAllTransactions() ([]*domain.Transaction, error) {
	return s.transactionRepo.GetAll()
}

func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxNoteLength {
		return nil, domain.ErrNoteTooLong
	}
	return &trimmed, nil
}

func normalizeCategoryID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
