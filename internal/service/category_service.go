package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"just-in-time/internal/livequery"
	"just-in-time/internal/model"
	"just-in-time/internal/repository"
)

// defaultColor is used when create input leaves the color empty.
const defaultColor = "#000000"

// TodoCount holds the derived todo count attached to category and
// group reads. It is never stored, always recomputed at read time.
type TodoCount struct {
	Todos int64
}

// CategoryWithCount is a category read result annotated with its live
// todo count.
type CategoryWithCount struct {
	model.Category
	Count TodoCount
}

// CategoryCreateInput holds the fields for a new category.
type CategoryCreateInput struct {
	Name        string
	Description *string
	Color       string
}

// CategoryUpdateInput is a partial patch; nil fields stay untouched.
type CategoryUpdateInput struct {
	ID          string
	Name        *string
	Description Patch[string]
	Color       *string
}

// CategoryService implements the category operations on top of the
// repository, publishing change events after every write.
type CategoryService struct {
	repo *repository.CategoryRepository
	bus  *livequery.Bus
}

func NewCategoryService(repo *repository.CategoryRepository, bus *livequery.Bus) *CategoryService {
	return &CategoryService{repo: repo, bus: bus}
}

// Create validates and persists a new category. A fresh category has
// no todos yet, so the returned count is zero.
func (s *CategoryService) Create(ctx context.Context, input CategoryCreateInput) (*CategoryWithCount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	color := input.Color
	if color == "" {
		color = defaultColor
	}

	now := time.Now()
	category := model.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	s.publish()
	return &CategoryWithCount{Category: category}, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*CategoryWithCount, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountTodos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CategoryWithCount{Category: *category, Count: TodoCount{Todos: count}}, nil
}

// GetAll returns every category, newest first, each with its live todo
// count. One count query per category; fine at local scale.
func (s *CategoryService) GetAll(ctx context.Context) ([]CategoryWithCount, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.repo.CountTodos(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, Count: TodoCount{Todos: count}})
	}
	return result, nil
}

// Update merge-patches the category and returns the full record with a
// recomputed count. Returns repository.ErrNotFound on an absent id.
func (s *CategoryService) Update(ctx context.Context, input CategoryUpdateInput) (*CategoryWithCount, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		fields["name"] = name
	}
	input.Description.apply(fields, "description")
	if input.Color != nil {
		fields["color"] = *input.Color
	}
	fields["updated_at"] = time.Now()

	if err := s.repo.UpdateFields(ctx, input.ID, fields); err != nil {
		return nil, err
	}

	s.publish()
	return s.GetByID(ctx, input.ID)
}

// Delete removes the category. Referencing todos are left untouched;
// their category reference dangles until changed explicitly.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Watch re-runs GetAll on every category or todo write; the todo table
// is a dependency because of the derived counts.
func (s *CategoryService) Watch(ctx context.Context) *livequery.Query[[]CategoryWithCount] {
	return livequery.Watch(ctx, s.bus, []livequery.Table{livequery.TableCategories, livequery.TableTodos}, s.GetAll)
}

func (s *CategoryService) publish() {
	if s.bus != nil {
		s.bus.Publish(livequery.TableCategories)
	}
}
