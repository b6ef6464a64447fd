package service

import (
	"strings"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// Built-in categories, fixed per direction. Order here is display order.
var builtinIn = []domain.BuiltinCategory{
	{ID: "home_in", Label: "Home", Icon: "home"},
	{ID: "salary", Label: "Salary", Icon: "briefcase"},
	{ID: "rent_in", Label: "Rent", Icon: "building"},
	{ID: "business", Label: "Business", Icon: "package"},
	{ID: "interest", Label: "Interest", Icon: "banknote"},
	{ID: "other_in", Label: "Other", Icon: "user"},
}

var builtinOut = []domain.BuiltinCategory{
	{ID: "stock", Label: "Stock", Icon: "package"},
	{ID: "rent", Label: "Rent", Icon: "building"},
	{ID: "labour", Label: "Labour", Icon: "users"},
	{ID: "transport", Label: "Transport", Icon: "car"},
	{ID: "food", Label: "Food", Icon: "coffee"},
	{ID: "electricity", Label: "Bill", Icon: "zap"},
	{ID: "household", Label: "Home", Icon: "home"},
}

// defaultIcon is used when a stored icon key is no longer in the catalog.
const defaultIcon = "help-circle"

// iconCatalog is the closed set of icon keys a custom category may use.
var iconCatalog = []string{
	"briefcase", "package", "building", "home", "banknote", "gift",
	"credit-card", "shopping-bag", "user", "coffee", "car", "users",
	"zap", "smartphone", "heart-pulse", "graduation-cap", "plane",
	"clapperboard", "dumbbell", "gamepad", "music", "video", "book",
	"camera", "headphones", "laptop", "watch", "utensils", "truck",
	"hammer", "wrench", "palette", "smile", "star", "heart", "sun",
}

var iconSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(iconCatalog))
	for _, icon := range iconCatalog {
		set[icon] = struct{}{}
	}
	return set
}()

// Uncategorized is the sentinel descriptor for records with no category or a
// dangling category reference. Resolution never fails.
var Uncategorized = domain.CategoryDescriptor{
	ID:    "",
	Label: "Uncategorized",
	Icon:  defaultIcon,
}

// CategoryService owns custom category persistence and merges built-ins with
// the user's own categories. Resolution itself is a pure function of the
// inputs so callers can hand it any snapshot of the custom list.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	publisher    websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, publisher websocket.EventPublisher) *CategoryService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &CategoryService{categoryRepo: categoryRepo, publisher: publisher}
}

// Builtins returns the compiled-in categories for a direction, in
// declaration order.
func Builtins(direction domain.Direction) []domain.BuiltinCategory {
	if direction == domain.DirectionIn {
		return builtinIn
	}
	return builtinOut
}

// Icons returns the catalog of icon keys available to custom categories.
func Icons() []string {
	return iconCatalog
}

// IconOrDefault maps an icon key through the catalog, falling back to the
// default icon for unknown keys.
func IconOrDefault(icon string) string {
	if _, ok := iconSet[icon]; ok {
		return icon
	}
	return defaultIcon
}

// MergedList returns the effective category list for a direction: built-ins
// first in fixed order, then the customs of that direction in store order.
// No de-duplication: a custom label may collide with a built-in label and
// the two stay distinct by id.
func MergedList(direction domain.Direction, customs []*domain.CustomCategory) []domain.CategoryDescriptor {
	builtins := Builtins(direction)
	merged := make([]domain.CategoryDescriptor, 0, len(builtins)+len(customs))
	for _, b := range builtins {
		merged = append(merged, domain.CategoryDescriptor{ID: b.ID, Label: b.Label, Icon: b.Icon})
	}
	for _, c := range customs {
		if c.Direction != direction {
			continue
		}
		merged = append(merged, domain.CategoryDescriptor{
			ID:       c.ID,
			Label:    c.Label,
			Icon:     IconOrDefault(c.Icon),
			IsCustom: true,
		})
	}
	return merged
}

// Resolve looks up a category id for a direction, first among built-ins,
// then among the custom categories of that direction. Dangling or empty ids
// resolve to the Uncategorized sentinel, never an error.
func Resolve(id *string, direction domain.Direction, customs []*domain.CustomCategory) domain.CategoryDescriptor {
	if id == nil || *id == "" {
		return Uncategorized
	}
	for _, b := range Builtins(direction) {
		if b.ID == *id {
			return domain.CategoryDescriptor{ID: b.ID, Label: b.Label, Icon: b.Icon}
		}
	}
	for _, c := range customs {
		if c.Direction == direction && c.ID == *id {
			return domain.CategoryDescriptor{
				ID:       c.ID,
				Label:    c.Label,
				Icon:     IconOrDefault(c.Icon),
				IsCustom: true,
			}
		}
	}
	return Uncategorized
}

// GetCustomCategories returns all custom categories in store order.
func (s *CategoryService) GetCustomCategories() ([]*domain.CustomCategory, error) {
	return s.categoryRepo.GetAll()
}

// GetMergedList returns the effective list for a direction, built-ins plus
// the persisted customs.
func (s *CategoryService) GetMergedList(direction domain.Direction) ([]domain.CategoryDescriptor, error) {
	if !direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}
	customs, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return MergedList(direction, customs), nil
}

// CreateCustomCategory validates and persists a new custom category.
func (s *CategoryService) CreateCustomCategory(direction domain.Direction, label, icon string) (*domain.CustomCategory, error) {
	if !direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.ErrLabelRequired
	}
	if len(label) > domain.MaxCategoryLabelLength {
		return nil, domain.ErrLabelTooLong
	}

	if _, ok := iconSet[icon]; !ok {
		return nil, domain.ErrUnknownIcon
	}

	category, err := s.categoryRepo.Create(&domain.CustomCategory{
		ID:        uuid.New().String(),
		Direction: direction,
		Label:     label,
		Icon:      icon,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(websocket.CategoryCreated(category))

	return category, nil
}

// DeleteCustomCategory removes a custom category by id. Transactions that
// referenced it keep their id and resolve to Uncategorized from then on.
func (s *CategoryService) DeleteCustomCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.publisher.Publish(websocket.CategoryDeleted(id))

	return nil
}
