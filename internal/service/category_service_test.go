package service

import (
	"strings"
	"testing"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/testutil"
)

func TestBuiltins(t *testing.T) {
	in := Builtins(domain.DirectionIn)
	if len(in) != 6 {
		t.Errorf("Expected 6 income built-ins, got %d", len(in))
	}
	if in[0].ID != "home_in" {
		t.Errorf("Expected first income built-in 'home_in', got %s", in[0].ID)
	}

	out := Builtins(domain.DirectionOut)
	if len(out) != 7 {
		t.Errorf("Expected 7 expense built-ins, got %d", len(out))
	}
	if out[0].ID != "stock" {
		t.Errorf("Expected first expense built-in 'stock', got %s", out[0].ID)
	}
}

func TestIconOrDefault(t *testing.T) {
	if got := IconOrDefault("coffee"); got != "coffee" {
		t.Errorf("Expected catalog icon to pass through, got %s", got)
	}
	if got := IconOrDefault("retired-icon"); got != "help-circle" {
		t.Errorf("Expected fallback icon, got %s", got)
	}
	if got := IconOrDefault(""); got != "help-circle" {
		t.Errorf("Expected fallback for empty icon, got %s", got)
	}
}

func TestMergedList(t *testing.T) {
	customs := []*domain.CustomCategory{
		{ID: "c1", Direction: domain.DirectionOut, Label: "Hobby", Icon: "music"},
		{ID: "c2", Direction: domain.DirectionIn, Label: "Gifts", Icon: "gift"},
	}

	merged := MergedList(domain.DirectionOut, customs)

	// Built-ins first, then customs of the same direction in store order.
	if len(merged) != 8 {
		t.Fatalf("Expected 8 entries, got %d", len(merged))
	}
	if merged[0].IsCustom {
		t.Error("Expected built-ins before customs")
	}
	last := merged[len(merged)-1]
	if !last.IsCustom || last.ID != "c1" {
		t.Errorf("Expected custom 'c1' last, got %+v", last)
	}
}

func TestResolve(t *testing.T) {
	customs := []*domain.CustomCategory{
		{ID: "c1", Direction: domain.DirectionOut, Label: "Hobby", Icon: "music"},
	}

	builtinID := "food"
	customID := "c1"
	danglingID := "gone"
	empty := ""

	tests := []struct {
		name      string
		id        *string
		wantID    string
		wantLabel string
	}{
		{"nil id", nil, Uncategorized.ID, Uncategorized.Label},
		{"empty id", &empty, Uncategorized.ID, Uncategorized.Label},
		{"built-in", &builtinID, "food", "Food"},
		{"custom", &customID, "c1", "Hobby"},
		{"dangling", &danglingID, Uncategorized.ID, Uncategorized.Label},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.id, domain.DirectionOut, customs)
			if got.ID != tt.wantID {
				t.Errorf("Expected id %s, got %s", tt.wantID, got.ID)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Expected label %s, got %s", tt.wantLabel, got.Label)
			}
		})
	}
}

func TestCreateCustomCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	publisher := &recordingPublisher{}
	categoryService := NewCategoryService(categoryRepo, publisher)

	category, err := categoryService.CreateCustomCategory(domain.DirectionOut, "  Hobby  ", "music")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.ID == "" {
		t.Error("Expected a generated id")
	}
	if category.Label != "Hobby" {
		t.Errorf("Expected trimmed label 'Hobby', got %q", category.Label)
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != "category.created" {
		t.Error("Expected a category.created event")
	}
}

func TestCreateCustomCategory_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.Direction
		label     string
		icon      string
		wantErr   error
	}{
		{"invalid direction", "SIDEWAYS", "Hobby", "music", domain.ErrInvalidDirection},
		{"empty label", domain.DirectionOut, "   ", "music", domain.ErrLabelRequired},
		{"label too long", domain.DirectionOut, strings.Repeat("x", domain.MaxCategoryLabelLength+1), "music", domain.ErrLabelTooLong},
		{"unknown icon", domain.DirectionOut, "Hobby", "not-an-icon", domain.ErrUnknownIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := testutil.NewMockCategoryRepository()
			categoryService := NewCategoryService(categoryRepo, nil)

			if _, err := categoryService.CreateCustomCategory(tt.direction, tt.label, tt.icon); err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDeleteCustomCategory(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	publisher := &recordingPublisher{}
	categoryService := NewCategoryService(categoryRepo, publisher)

	categoryRepo.AddCategory(&domain.CustomCategory{ID: "c1", Direction: domain.DirectionOut, Label: "Hobby", Icon: "music"})

	if err := categoryService.DeleteCustomCategory("c1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != "category.deleted" {
		t.Error("Expected a category.deleted event")
	}
}

func TestDeleteCustomCategory_NotFound(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	if err := categoryService.DeleteCustomCategory("missing"); err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestGetMergedList_InvalidDirection(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	if _, err := categoryService.GetMergedList("SIDEWAYS"); err != domain.ErrInvalidDirection {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}
