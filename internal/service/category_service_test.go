package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"just-in-time/internal/model"
	"just-in-time/internal/repository"
)

func TestCategoryService_Create(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.categories.Create(ctx, CategoryCreateInput{Name: "Work", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be stamped")
	}
	if created.Count.Todos != 0 {
		t.Errorf("fresh category should have count 0, got %d", created.Count.Todos)
	}

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := f.categories.Create(ctx, CategoryCreateInput{Name: "   "})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.Field != "name" {
			t.Errorf("expected name validation, got %q", vErr.Field)
		}
	})

	t.Run("empty color defaulted", func(t *testing.T) {
		cat, err := f.categories.Create(ctx, CategoryCreateInput{Name: "Errands"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if cat.Color != "#000000" {
			t.Errorf("expected default color, got %q", cat.Color)
		}
	})
}

func TestCategoryService_GetAllOrderAndCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := model.Category{ID: uuid.NewString(), Name: "Older", Color: "#111111", CreatedAt: base, UpdatedAt: base}
	newer := model.Category{ID: uuid.NewString(), Name: "Newer", Color: "#222222", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)}
	for _, cat := range []model.Category{older, newer} {
		if err := f.db.Create(&cat).Error; err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := f.todos.Create(ctx, TodoCreateInput{Title: "task", CategoryID: ptr(older.ID)}); err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
	}

	all, err := f.categories.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(all))
	}
	if all[0].ID != newer.ID {
		t.Errorf("expected newest first, got %q", all[0].Name)
	}
	if all[0].Count.Todos != 0 {
		t.Errorf("expected count 0 for %q, got %d", all[0].Name, all[0].Count.Todos)
	}
	if all[1].Count.Todos != 2 {
		t.Errorf("expected count 2 for %q, got %d", all[1].Name, all[1].Count.Todos)
	}
}

// The count is live: re-pointing a todo's category must be visible on
// the next read without any cache invalidation.
func TestCategoryService_CountFollowsTodoReassignment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	work, err := f.categories.Create(ctx, CategoryCreateInput{Name: "Work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	todo, err := f.todos.Create(ctx, TodoCreateInput{
		Title:      "Quarterly report",
		Priority:   model.PriorityHigh,
		DueDate:    &due,
		CategoryID: ptr(work.ID),
	})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	got, err := f.categories.GetByID(ctx, work.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Count.Todos != 1 {
		t.Fatalf("expected count 1, got %d", got.Count.Todos)
	}

	if _, err := f.todos.Update(ctx, TodoUpdateInput{ID: todo.ID, CategoryID: PatchClear[string]()}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err = f.categories.GetByID(ctx, work.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Count.Todos != 0 {
		t.Errorf("expected count 0 after reassignment, got %d", got.Count.Todos)
	}
}

func TestCategoryService_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.categories.Create(ctx, CategoryCreateInput{Name: "Chores", Description: ptr("house stuff")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("merge patch", func(t *testing.T) {
		updated, err := f.categories.Update(ctx, CategoryUpdateInput{
			ID:   created.ID,
			Name: ptr("Housework"),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Name != "Housework" {
			t.Errorf("expected renamed category, got %q", updated.Name)
		}
		if updated.Description == nil || *updated.Description != "house stuff" {
			t.Error("untouched description should survive the patch")
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Error("expected updatedAt to advance")
		}
	})

	t.Run("explicit null clears description", func(t *testing.T) {
		updated, err := f.categories.Update(ctx, CategoryUpdateInput{
			ID:          created.ID,
			Description: PatchClear[string](),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Description != nil {
			t.Errorf("expected cleared description, got %q", *updated.Description)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		_, err := f.categories.Update(ctx, CategoryUpdateInput{ID: "missing", Name: ptr("x")})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCategoryService_DeleteLeavesTodosDangling(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cat, err := f.categories.Create(ctx, CategoryCreateInput{Name: "Transient"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	todo, err := f.todos.Create(ctx, TodoCreateInput{Title: "survivor", CategoryID: ptr(cat.ID)})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	if err := f.categories.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	found, err := f.todos.GetByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("todo should survive category delete: %v", err)
	}
	if found.CategoryID == nil || *found.CategoryID != cat.ID {
		t.Error("todo should keep its dangling category id")
	}
	if found.Category != nil {
		t.Error("dangling reference should resolve to nil")
	}

	t.Run("absent id", func(t *testing.T) {
		if err := f.categories.Delete(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
