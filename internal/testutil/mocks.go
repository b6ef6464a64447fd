package testutil

import (
	"time"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	NextID       int64
	Err          error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{NextID: 1}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) {
	if t.ID == 0 {
		t.ID = m.NextID
	}
	if t.ID >= m.NextID {
		m.NextID = t.ID + 1
	}
	m.Transactions = append(m.Transactions, t)
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(t *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t.ID = m.NextID
	m.NextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.Transactions = append(m.Transactions, t)
	return t, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, t := range m.Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// GetAll returns all transactions
func (m *MockTransactionRepository) GetAll() ([]*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}

// Update overwrites a transaction's fields
func (m *MockTransactionRepository) Update(id int64, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, t := range m.Transactions {
		if t.ID == id {
			t.Direction = data.Direction
			t.Amount = data.Amount
			t.CategoryID = data.CategoryID
			t.Note = data.Note
			t.Date = data.Date
			t.UpdatedAt = time.Now()
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// Delete removes a transaction by ID
func (m *MockTransactionRepository) Delete(id int64) error {
	if m.Err != nil {
		return m.Err
	}
	for i, t := range m.Transactions {
		if t.ID == id {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories []*domain.CustomCategory
	Err        error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(c *domain.CustomCategory) {
	m.Categories = append(m.Categories, c)
}

// Create persists a new custom category
func (m *MockCategoryRepository) Create(c *domain.CustomCategory) (*domain.CustomCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c.CreatedAt = time.Now()
	m.Categories = append(m.Categories, c)
	return c, nil
}

// GetByID retrieves a custom category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.CustomCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll returns all custom categories in store order
func (m *MockCategoryRepository) GetAll() ([]*domain.CustomCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

// Delete removes a custom category by ID
func (m *MockCategoryRepository) Delete(id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, c := range m.Categories {
		if c.ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}
