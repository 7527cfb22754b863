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

// GroupWithCount is a group read result annotated with its live todo
// count.
type GroupWithCount struct {
	model.Group
	Count TodoCount
}

// GroupRef is the lightweight shape used by pickers.
type GroupRef struct {
	ID    string
	Name  string
	Color string
}

// GroupCreateInput holds the fields for a new group.
type GroupCreateInput struct {
	Name        string
	Description *string
	Color       string
}

// GroupUpdateInput is a partial patch; nil fields stay untouched.
type GroupUpdateInput struct {
	ID          string
	Name        *string
	Description Patch[string]
	Color       *string
}

// GroupService implements the group operations. Groups behave exactly
// like categories; only the foreign key column differs.
type GroupService struct {
	repo *repository.GroupRepository
	bus  *livequery.Bus
}

func NewGroupService(repo *repository.GroupRepository, bus *livequery.Bus) *GroupService {
	return &GroupService{repo: repo, bus: bus}
}

func (s *GroupService) Create(ctx context.Context, input GroupCreateInput) (*GroupWithCount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	color := input.Color
	if color == "" {
		color = defaultColor
	}

	now := time.Now()
	group := model.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &group); err != nil {
		return nil, err
	}

	s.publish()
	return &GroupWithCount{Group: group}, nil
}

func (s *GroupService) GetByID(ctx context.Context, id string) (*GroupWithCount, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountTodos(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GroupWithCount{Group: *group, Count: TodoCount{Todos: count}}, nil
}

// GetAll returns every group, newest first, each with its live todo
// count.
func (s *GroupService) GetAll(ctx context.Context) ([]GroupWithCount, error) {
	groups, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]GroupWithCount, 0, len(groups))
	for _, group := range groups {
		count, err := s.repo.CountTodos(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, GroupWithCount{Group: group, Count: TodoCount{Todos: count}})
	}
	return result, nil
}

// GetList returns id/name/color triples for selection widgets, oldest
// first.
func (s *GroupService) GetList(ctx context.Context) ([]GroupRef, error) {
	groups, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]GroupRef, 0, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		refs = append(refs, GroupRef{ID: groups[i].ID, Name: groups[i].Name, Color: groups[i].Color})
	}
	return refs, nil
}

func (s *GroupService) Update(ctx context.Context, input GroupUpdateInput) (*GroupWithCount, error) {
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

// Delete removes the group. Referencing todos keep their group id.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Watch re-runs GetAll on every group or todo write.
func (s *GroupService) Watch(ctx context.Context) *livequery.Query[[]GroupWithCount] {
	return livequery.Watch(ctx, s.bus, []livequery.Table{livequery.TableGroups, livequery.TableTodos}, s.GetAll)
}

func (s *GroupService) publish() {
	if s.bus != nil {
		s.bus.Publish(livequery.TableGroups)
	}
}
