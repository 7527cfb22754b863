package query

import (
	"sort"

	"just-in-time/internal/model"
)

// Sortable fields.
const (
	SortByCreatedAt = "createdAt"
	SortByDueDate   = "dueDate"
	SortByPriority  = "priority"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort orders a todo collection by a single field. Todos with no value
// for the field sort last regardless of direction; ties keep their
// input order, so chained sorts compose into a stable multi-key
// ordering.
type Sort struct {
	By    string
	Order string
}

// SortTodos returns a sorted copy of todos. A nil sort or empty By
// returns the input order unchanged.
func SortTodos(todos []model.Todo, s *Sort) []model.Todo {
	result := make([]model.Todo, len(todos))
	copy(result, todos)
	if s == nil || s.By == "" {
		return result
	}

	desc := s.Order == SortDesc
	sort.SliceStable(result, func(i, j int) bool {
		a, aOK := sortValue(result[i], s.By)
		b, bOK := sortValue(result[j], s.By)
		switch {
		case aOK && bOK:
			if desc {
				return a > b
			}
			return a < b
		case aOK:
			// Unscheduled items last, whatever the direction.
			return true
		default:
			return false
		}
	})
	return result
}

// sortValue coerces the sort field to a comparable number. The second
// return is false when the todo has no usable value for the field.
func sortValue(todo model.Todo, by string) (int64, bool) {
	switch by {
	case SortByCreatedAt:
		if todo.CreatedAt.IsZero() {
			return 0, false
		}
		return todo.CreatedAt.UnixMilli(), true
	case SortByDueDate:
		if todo.DueDate == nil {
			return 0, false
		}
		return todo.DueDate.UnixMilli(), true
	case SortByPriority:
		if todo.Priority == 0 {
			return 0, false
		}
		return int64(todo.Priority), true
	}
	return 0, false
}
