// Package query provides in-memory filtering, sorting and paging over
// resolved todo collections.
package query

import (
	"time"

	"just-in-time/internal/model"
)

// Filter narrows a todo collection. Nil fields leave that dimension
// unconstrained; every set field must match (AND).
type Filter struct {
	GroupID    *string
	CategoryID *string
	Priority   *int
	Completed  *bool
	// DueDate keeps todos due on or after the given time, or on the
	// same calendar day when ExactDate is set. Todos without a due
	// date never match a due-date filter.
	DueDate   *time.Time
	ExactDate bool
}

// FilterTodos returns the todos matching f, preserving input order.
// A nil filter matches everything.
func FilterTodos(todos []model.Todo, f *Filter) []model.Todo {
	result := make([]model.Todo, 0, len(todos))
	for _, todo := range todos {
		if f == nil || f.matches(todo) {
			result = append(result, todo)
		}
	}
	return result
}

func (f *Filter) matches(todo model.Todo) bool {
	if f.GroupID != nil && (todo.GroupID == nil || *todo.GroupID != *f.GroupID) {
		return false
	}
	if f.CategoryID != nil && (todo.CategoryID == nil || *todo.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Priority != nil && todo.Priority != *f.Priority {
		return false
	}
	if f.Completed != nil && todo.Completed != *f.Completed {
		return false
	}
	if f.DueDate != nil {
		if todo.DueDate == nil {
			return false
		}
		if f.ExactDate {
			if !sameDay(*todo.DueDate, *f.DueDate) {
				return false
			}
		} else if todo.DueDate.Before(*f.DueDate) {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
