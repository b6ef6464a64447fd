package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Direction  string  `json:"direction"`
	Amount     string  `json:"amount"`
	CategoryID *string `json:"categoryId,omitempty"`
	Note       *string `json:"note,omitempty"`
	Date       *string `json:"date,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	Direction  string  `json:"direction"`
	Amount     string  `json:"amount"`
	CategoryID *string `json:"categoryId,omitempty"`
	Note       *string `json:"note,omitempty"`
	Date       *string `json:"date,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         int64   `json:"id"`
	Direction  string  `json:"direction"`
	Amount     string  `json:"amount"`
	CategoryID *string `json:"categoryId,omitempty"`
	Note       *string `json:"note,omitempty"`
	Date       string  `json:"date"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be an RFC 3339 timestamp"},
		})
	}

	input := service.CreateTransactionInput{
		Direction:  domain.Direction(req.Direction),
		Amount:     amount,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Date:       date,
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int64("transaction_id", transaction.ID).Str("direction", string(transaction.Direction)).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	transactions, err := h.transactionService.GetAllTransactions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	resp := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		resp = append(resp, toTransactionResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be an RFC 3339 timestamp"},
		})
	}

	input := service.UpdateTransactionInput{
		Direction:  domain.Direction(req.Direction),
		Amount:     amount,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		Date:       date,
	}

	transaction, err := h.transactionService.UpdateTransaction(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Int64("transaction_id", transaction.ID).Msg("Transaction updated")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int64("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// transactionValidationResponse maps domain validation errors to RFC 7807
// responses. Returns nil when the error is not a validation error.
func transactionValidationResponse(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidDirection) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Direction must be one of: IN, OUT"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	if errors.Is(err, domain.ErrNoteTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "note", Message: "Note must be 500 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDate) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be a valid timestamp"},
		})
	}
	return nil
}

// parseDateParam accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDateParam(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        transaction.ID,
		Direction: string(transaction.Direction),
		Amount:    transaction.Amount.StringFixed(2),
		Date:      transaction.Date.Format(time.RFC3339),
		CreatedAt: transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt: transaction.UpdatedAt.Format(time.RFC3339),
	}
	if transaction.CategoryID != nil {
		resp.CategoryID = transaction.CategoryID
	}
	if transaction.Note != nil {
		resp.Note = transaction.Note
	}
	return resp
}
