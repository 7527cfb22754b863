package service

import (
	"testing"

	"gorm.io/gorm"

	"just-in-time/internal/livequery"
	"just-in-time/internal/repository"
)

// fixtures wires every service onto one in-memory database sharing a
// single change bus, the way the daemon wires them.
type fixtures struct {
	db         *gorm.DB
	bus        *livequery.Bus
	categories *CategoryService
	groups     *GroupService
	todos      *TodoService
	prefs      *PreferencesService
}

func setup(t *testing.T) fixtures {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	bus := livequery.NewBus()
	return fixtures{
		db:         db,
		bus:        bus,
		categories: NewCategoryService(repository.NewCategoryRepository(db), bus),
		groups:     NewGroupService(repository.NewGroupRepository(db), bus),
		todos:      NewTodoService(repository.NewTodoRepository(db), repository.NewSubtaskRepository(db), bus),
		prefs:      NewPreferencesService(repository.NewPreferencesRepository(db), bus),
	}
}

func ptr[T any](v T) *T {
	return &v
}
