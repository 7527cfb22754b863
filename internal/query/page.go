package query

import "just-in-time/internal/model"

// Page selects a window of an already filtered and sorted collection.
// A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// Apply returns the todos within the page window.
func (p Page) Apply(todos []model.Todo) []model.Todo {
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(todos) {
		return []model.Todo{}
	}
	end := len(todos)
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	return todos[start:end]
}
