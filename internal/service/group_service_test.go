package service

import (
	"context"
	"errors"
	"testing"

	"just-in-time/internal/repository"
)

func TestGroupService_CreateAndCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	grp, err := f.groups.Create(ctx, GroupCreateInput{Name: "Side projects"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if grp.Count.Todos != 0 {
		t.Errorf("fresh group should have count 0, got %d", grp.Count.Todos)
	}

	if _, err := f.todos.Create(ctx, TodoCreateInput{Title: "grouped", GroupID: ptr(grp.ID)}); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	all, err := f.groups.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 || all[0].Count.Todos != 1 {
		t.Fatalf("expected live count 1, got %+v", all)
	}

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := f.groups.Create(ctx, GroupCreateInput{Name: ""})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestGroupService_GetList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.groups.Create(ctx, GroupCreateInput{Name: "First", Color: "#101010"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := f.groups.Create(ctx, GroupCreateInput{Name: "Second", Color: "#202020"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	refs, err := f.groups.GetList(ctx)
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].ID != first.ID || refs[1].ID != second.ID {
		t.Errorf("expected oldest-first refs, got %+v", refs)
	}
	if refs[1].Color != "#202020" {
		t.Errorf("expected color carried into ref, got %q", refs[1].Color)
	}
}

func TestGroupService_DeletePreservesTodos(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	grp, err := f.groups.Create(ctx, GroupCreateInput{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	todo, err := f.todos.Create(ctx, TodoCreateInput{Title: "keeps group id", GroupID: ptr(grp.ID)})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	if err := f.groups.Delete(ctx, grp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := f.groups.GetByID(ctx, grp.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	found, err := f.todos.GetByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("todo should survive group delete: %v", err)
	}
	if found.GroupID == nil || *found.GroupID != grp.ID {
		t.Error("todo should keep its dangling group id")
	}
	if found.Group != nil {
		t.Error("dangling group reference should resolve to nil")
	}
}
