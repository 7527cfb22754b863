package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"just-in-time/internal/model"
)

// TodoRepository handles CRUD for todos, including the composite
// writes that must span todo and subtask rows.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// CreateWithSubtasks inserts a todo and its initial subtasks in one
// transaction so the pair succeeds or fails together.
func (r *TodoRepository) CreateWithSubtasks(ctx context.Context, todo *model.Todo, subtasks []model.Subtask) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(todo).Error; err != nil {
			return err
		}
		if len(subtasks) > 0 {
			if err := tx.Create(&subtasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// FindByID returns the todo with its category, group and subtasks
// resolved. A dangling category or group reference resolves to nil.
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Group").
		Preload("Subtasks").
		First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

// ListAll returns every todo, newest first, each resolved with its
// category, group and subtasks.
func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Group").
		Preload("Subtasks").
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// UpdateFields merges the given column values into the todo row.
func (r *TodoRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Todo{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the todo and all its subtasks in one
// transaction.
func (r *TodoRepository) DeleteCascade(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Todo{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Delete(&model.Subtask{}, "todo_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// ListPending returns incomplete todos with their categories resolved,
// for reminder summaries.
func (r *TodoRepository) ListPending(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("completed = ?", false).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list pending todos: %w", err)
	}
	return todos, nil
}

// ListDueBetween returns incomplete todos whose due date falls inside
// (after, until].
func (r *TodoRepository) ListDueBetween(ctx context.Context, after, until time.Time) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("completed = ? AND due_date IS NOT NULL AND due_date > ? AND due_date <= ?", false, after, until).
		Order("due_date ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list due todos: %w", err)
	}
	return todos, nil
}

// ReplaceTags swaps the todo's tag associations for the given set.
func (r *TodoRepository) ReplaceTags(ctx context.Context, todoID string, tags []model.TodoTag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TodoTag{}, "todo_id = ?", todoID).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Create(&tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace todo tags: %w", err)
	}
	return nil
}

// ListTagIDs returns the tag ids associated with the todo.
func (r *TodoRepository) ListTagIDs(ctx context.Context, todoID string) ([]string, error) {
	var tagIDs []string
	err := r.db.WithContext(ctx).
		Model(&model.TodoTag{}).
		Where("todo_id = ?", todoID).
		Pluck("tag_id", &tagIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list todo tags: %w", err)
	}
	return tagIDs, nil
}
