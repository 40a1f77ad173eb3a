package persistence

import (
	"errors"
	"testing"

	"github.com/0xsj/overwatch-pkg/types"

	pgadapter "github.com/0xsj/overwatch-mediator/internal/adapter/outbound/postgres"
	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

func createTestItem(t *testing.T, name string, priceCents int64) *model.Item {
	t.Helper()
	item, err := model.NewItem(name, priceCents)
	if err != nil {
		t.Fatalf("NewItem() error = %v", err)
	}
	return item
}

func TestItemRepository_Create(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	item := createTestItem(t, "Widget", 1999)
	item.SetDescription("A useful widget")

	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(ctx, item.ID())
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.ID() != item.ID() {
		t.Errorf("ID = %v, want %v", found.ID(), item.ID())
	}
	if found.Name() != "Widget" {
		t.Errorf("Name = %v, want Widget", found.Name())
	}
	if found.PriceCents() != 1999 {
		t.Errorf("PriceCents = %v, want 1999", found.PriceCents())
	}
	if !found.Description().IsPresent() || found.Description().MustGet() != "A useful widget" {
		t.Errorf("Description = %v, want A useful widget", found.Description())
	}
}

func TestItemRepository_Create_DuplicateName(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	if err := repo.Create(ctx, createTestItem(t, "Widget", 100)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, createTestItem(t, "Widget", 200))

	if !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestItemRepository_Update(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	item := createTestItem(t, "Widget", 100)
	item.SetDescription("old")
	repo.Create(ctx, item)

	if _, err := item.Rename("Gadget"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	item.ClearDescription()
	if err := item.SetPrice(250); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}

	if err := repo.Update(ctx, item); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, _ := repo.FindByID(ctx, item.ID())
	if found.Name() != "Gadget" {
		t.Errorf("Name = %v, want Gadget", found.Name())
	}
	if found.Description().IsPresent() {
		t.Errorf("Description = %v, want none", found.Description())
	}
	if found.PriceCents() != 250 {
		t.Errorf("PriceCents = %v, want 250", found.PriceCents())
	}
}

func TestItemRepository_Update_NotFound(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())

	err := repo.Update(getContext(), createTestItem(t, "Ghost", 1))

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestItemRepository_Update_NameConflict(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	repo.Create(ctx, createTestItem(t, "Widget", 1))
	other := createTestItem(t, "Gadget", 1)
	repo.Create(ctx, other)

	other.Rename("Widget")
	err := repo.Update(ctx, other)

	if !errors.Is(err, repository.ErrConflict) {
		t.Errorf("Update() error = %v, want ErrConflict", err)
	}
}

func TestItemRepository_FindByID_NotFound(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())

	_, err := repo.FindByID(getContext(), types.NewID())

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestItemRepository_ExistsByName(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	repo.Create(ctx, createTestItem(t, "Widget", 1))

	tests := []struct {
		name string
		want bool
	}{
		{"Widget", true},
		{"widget", false},
		{"Gadget", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExistsByName(ctx, tt.name)
			if err != nil {
				t.Fatalf("ExistsByName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExistsByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestItemRepository_List(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	for _, tc := range []struct {
		name  string
		price int64
	}{
		{"Charlie", 300},
		{"Alpha", 100},
		{"Bravo", 200},
	} {
		if err := repo.Create(ctx, createTestItem(t, tc.name, tc.price)); err != nil {
			t.Fatalf("Create(%s) error = %v", tc.name, err)
		}
	}

	t.Run("by name ascending", func(t *testing.T) {
		items, err := repo.List(ctx, repository.ListItemsParams{
			Limit:     10,
			SortBy:    repository.ItemSortFieldName,
			SortOrder: repository.SortOrderAsc,
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"Alpha", "Bravo", "Charlie"}
		if len(items) != len(want) {
			t.Fatalf("List() returned %d items, want %d", len(items), len(want))
		}
		for i, item := range items {
			if item.Name() != want[i] {
				t.Errorf("items[%d] = %v, want %v", i, item.Name(), want[i])
			}
		}
	})

	t.Run("by price descending with offset", func(t *testing.T) {
		items, err := repo.List(ctx, repository.ListItemsParams{
			Limit:     1,
			Offset:    1,
			SortBy:    repository.ItemSortFieldPrice,
			SortOrder: repository.SortOrderDesc,
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(items) != 1 || items[0].Name() != "Bravo" {
			t.Errorf("List() = %v, want [Bravo]", items)
		}
	})

	t.Run("unknown sort field falls back", func(t *testing.T) {
		items, err := repo.List(ctx, repository.ListItemsParams{
			Limit:  10,
			SortBy: repository.ItemSortField("name; DROP TABLE items"),
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(items) != 3 {
			t.Errorf("List() returned %d items, want 3", len(items))
		}
	})

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestItemRepository_Delete(t *testing.T) {
	truncateTables(t)
	repo := pgadapter.NewItemRepository(getPool())
	ctx := getContext()

	item := createTestItem(t, "Widget", 1)
	repo.Create(ctx, item)

	if err := repo.Delete(ctx, item.ID()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(ctx, item.ID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, item.ID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
