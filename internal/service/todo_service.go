package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"just-in-time/internal/livequery"
	"just-in-time/internal/model"
	"just-in-time/internal/query"
	"just-in-time/internal/repository"
)

// SubtaskSeed describes a subtask created together with its todo.
type SubtaskSeed struct {
	Title string
}

// TodoCreateInput holds the fields for a new todo. Completion state in
// the input is ignored: a todo is always created incomplete.
type TodoCreateInput struct {
	Title       string
	Description *string
	Priority    int
	DueDate     *time.Time
	CategoryID  *string
	GroupID     *string
	TagIDs      []string
	Subtasks    []SubtaskSeed
}

// TodoUpdateInput is a partial patch. Plain pointer fields stay
// untouched when nil; Patch fields additionally distinguish "clear".
// A nil TagIDs leaves tags alone, a non-nil one replaces them.
type TodoUpdateInput struct {
	ID          string
	Title       *string
	Completed   *bool
	Priority    *int
	Description Patch[string]
	DueDate     Patch[time.Time]
	CategoryID  Patch[string]
	GroupID     Patch[string]
	TagIDs      []string
}

// SubtaskCreateInput holds the fields for a new subtask.
type SubtaskCreateInput struct {
	TodoID string
	Title  string
}

// SubtaskUpdateInput is a partial subtask patch.
type SubtaskUpdateInput struct {
	ID        string
	Title     *string
	Completed *bool
}

// ListOptions narrows, orders and pages the resolved todo collection.
type ListOptions struct {
	Filter *query.Filter
	Sort   *query.Sort
	Page   *query.Page
}

// TodoService implements the todo and subtask operations, publishing
// change events after every write.
type TodoService struct {
	todoRepo    *repository.TodoRepository
	subtaskRepo *repository.SubtaskRepository
	bus         *livequery.Bus
}

func NewTodoService(todoRepo *repository.TodoRepository, subtaskRepo *repository.SubtaskRepository, bus *livequery.Bus) *TodoService {
	return &TodoService{todoRepo: todoRepo, subtaskRepo: subtaskRepo, bus: bus}
}

// Create persists a new todo and its initial subtasks in one
// transaction, then returns the record with category, group and
// subtasks resolved (a read after write, not a cached shape).
func (s *TodoService) Create(ctx context.Context, input TodoCreateInput) (*model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	priority := input.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}
	if priority < model.PriorityLow || priority > model.PriorityUrgent {
		return nil, &ValidationError{Field: "priority", Reason: "must be between 1 and 4"}
	}

	now := time.Now()
	todo := model.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		Completed:   false,
		CompletedAt: nil,
		CategoryID:  input.CategoryID,
		GroupID:     input.GroupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	subtasks := make([]model.Subtask, 0, len(input.Subtasks))
	for _, seed := range input.Subtasks {
		subtasks = append(subtasks, model.Subtask{
			ID:        uuid.NewString(),
			Title:     seed.Title,
			Completed: false,
			TodoID:    todo.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.todoRepo.CreateWithSubtasks(ctx, &todo, subtasks); err != nil {
		return nil, err
	}

	tables := []livequery.Table{livequery.TableTodos}
	if len(subtasks) > 0 {
		tables = append(tables, livequery.TableSubtasks)
	}
	if len(input.TagIDs) > 0 {
		if err := s.replaceTags(ctx, todo.ID, input.TagIDs); err != nil {
			return nil, err
		}
		tables = append(tables, livequery.TableTodoTags)
	}
	s.publish(tables...)

	return s.todoRepo.FindByID(ctx, todo.ID)
}

// GetByID returns the todo resolved with its category, group and
// subtasks. Dangling references come back as nil.
func (s *TodoService) GetByID(ctx context.Context, id string) (*model.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// GetAll returns every todo, newest first, fully resolved.
func (s *TodoService) GetAll(ctx context.Context) ([]model.Todo, error) {
	return s.todoRepo.ListAll(ctx)
}

// List applies the filter, sort and page options in memory over the
// resolved collection.
func (s *TodoService) List(ctx context.Context, opts ListOptions) ([]model.Todo, error) {
	todos, err := s.todoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	todos = query.FilterTodos(todos, opts.Filter)
	todos = query.SortTodos(todos, opts.Sort)
	if opts.Page != nil {
		todos = opts.Page.Apply(todos)
	}
	return todos, nil
}

// Update merge-patches the todo. Whenever Completed is part of the
// patch the completion timestamp is recomputed, even if the value did
// not change. Returns repository.ErrNotFound on an absent id.
func (s *TodoService) Update(ctx context.Context, input TodoUpdateInput) (*model.Todo, error) {
	now := time.Now()
	fields := map[string]any{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		fields["title"] = title
	}
	if input.Priority != nil {
		if *input.Priority < model.PriorityLow || *input.Priority > model.PriorityUrgent {
			return nil, &ValidationError{Field: "priority", Reason: "must be between 1 and 4"}
		}
		fields["priority"] = *input.Priority
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
		if *input.Completed {
			fields["completed_at"] = now
		} else {
			fields["completed_at"] = nil
		}
	}
	input.Description.apply(fields, "description")
	input.DueDate.apply(fields, "due_date")
	input.CategoryID.apply(fields, "category_id")
	input.GroupID.apply(fields, "group_id")
	fields["updated_at"] = now

	if err := s.todoRepo.UpdateFields(ctx, input.ID, fields); err != nil {
		return nil, err
	}

	tables := []livequery.Table{livequery.TableTodos}
	if input.TagIDs != nil {
		if err := s.replaceTags(ctx, input.ID, input.TagIDs); err != nil {
			return nil, err
		}
		tables = append(tables, livequery.TableTodoTags)
	}
	s.publish(tables...)

	return s.todoRepo.FindByID(ctx, input.ID)
}

// Delete removes the todo and cascades to all its subtasks.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := s.todoRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.publish(livequery.TableTodos, livequery.TableSubtasks)
	return nil
}

// CreateSubtask adds a subtask to an existing todo. New subtasks are
// always incomplete.
func (s *TodoService) CreateSubtask(ctx context.Context, input SubtaskCreateInput) (*model.Subtask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	now := time.Now()
	subtask := model.Subtask{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
		TodoID:    input.TodoID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subtaskRepo.Create(ctx, &subtask); err != nil {
		return nil, err
	}

	s.publish(livequery.TableSubtasks)
	return &subtask, nil
}

// UpdateSubtask merge-patches a subtask, mirroring the todo completion
// timestamp rule independently per subtask.
func (s *TodoService) UpdateSubtask(ctx context.Context, input SubtaskUpdateInput) (*model.Subtask, error) {
	now := time.Now()
	fields := map[string]any{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		fields["title"] = title
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
		if *input.Completed {
			fields["completed_at"] = now
		} else {
			fields["completed_at"] = nil
		}
	}
	fields["updated_at"] = now

	if err := s.subtaskRepo.UpdateFields(ctx, input.ID, fields); err != nil {
		return nil, err
	}

	s.publish(livequery.TableSubtasks)
	return s.subtaskRepo.FindByID(ctx, input.ID)
}

// ChangeSubtaskStatus flips a subtask's completion state.
func (s *TodoService) ChangeSubtaskStatus(ctx context.Context, id string, completed bool) (*model.Subtask, error) {
	return s.UpdateSubtask(ctx, SubtaskUpdateInput{ID: id, Completed: &completed})
}

// DeleteSubtask removes a single subtask.
func (s *TodoService) DeleteSubtask(ctx context.Context, id string) error {
	if err := s.subtaskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(livequery.TableSubtasks)
	return nil
}

// Watch re-runs GetAll on any write touching the resolved shape: the
// todos themselves, their subtasks, or the categories and groups
// joined into each record.
func (s *TodoService) Watch(ctx context.Context) *livequery.Query[[]model.Todo] {
	tables := []livequery.Table{
		livequery.TableTodos,
		livequery.TableSubtasks,
		livequery.TableCategories,
		livequery.TableGroups,
	}
	return livequery.Watch(ctx, s.bus, tables, s.GetAll)
}

func (s *TodoService) replaceTags(ctx context.Context, todoID string, tagIDs []string) error {
	tags := make([]model.TodoTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tags = append(tags, model.TodoTag{
			ID:     uuid.NewString(),
			TodoID: todoID,
			TagID:  tagID,
		})
	}
	return s.todoRepo.ReplaceTags(ctx, todoID, tags)
}

func (s *TodoService) publish(tables ...livequery.Table) {
	if s.bus != nil {
		s.bus.Publish(tables...)
	}
}
