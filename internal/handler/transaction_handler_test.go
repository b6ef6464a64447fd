package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/service"
	"github.com/cashbookhq/cashbook-backend/internal/testutil"
)

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "OUT", "amount": "45.90", "categoryId": "food", "note": "groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Direction != "OUT" {
		t.Errorf("Expected direction 'OUT', got %s", response.Direction)
	}
	if response.Amount != "45.90" {
		t.Errorf("Expected amount '45.90', got %s", response.Amount)
	}
	if response.CategoryID == nil || *response.CategoryID != "food" {
		t.Error("Expected categoryId 'food'")
	}
	if response.Note == nil || *response.Note != "groceries" {
		t.Error("Expected note 'groceries'")
	}
}

func TestCreateTransaction_WithDate(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "IN", "amount": "100.00", "date": "2024-03-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	parsed, err := time.Parse(time.RFC3339, response.Date)
	if err != nil {
		t.Fatalf("Failed to parse response date: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.March || parsed.Day() != 15 {
		t.Errorf("Expected date 2024-03-15, got %s", response.Date)
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "OUT", "amount": "not-a-number"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "OUT", "amount": "-5.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCreateTransaction_InvalidDirection(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "SIDEWAYS", "amount": "10.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactions(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        1,
		Direction: domain.DirectionIn,
		Amount:    decimal.NewFromInt(100),
		Date:      time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        2,
		Direction: domain.DirectionOut,
		Amount:    decimal.NewFromInt(40),
		Date:      time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(response))
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.GetTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateTransaction_Success(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        1,
		Direction: domain.DirectionOut,
		Amount:    decimal.NewFromInt(10),
		Date:      time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	})

	reqBody := `{"direction": "OUT", "amount": "25.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/transactions/1", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "25.00" {
		t.Errorf("Expected amount '25.00', got %s", response.Amount)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	reqBody := `{"direction": "OUT", "amount": "25.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/transactions/42", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:        1,
		Direction: domain.DirectionOut,
		Amount:    decimal.NewFromInt(10),
		Date:      time.Now(),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteTransaction_InvalidID(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, nil)
	handler := NewTransactionHandler(transactionService)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
