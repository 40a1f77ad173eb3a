package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/app"
	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/domain/event"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
	"github.com/0xsj/overwatch-mediator/pkg/registry"
	"github.com/0xsj/overwatch-mediator/pkg/validation"
	"github.com/0xsj/overwatch-mediator/tests/testutil"
	"github.com/0xsj/overwatch-mediator/tests/testutil/mocks"
)

type catalog struct {
	dispatcher *mediator.Dispatcher
	repo       *mocks.ItemRepository
	cache      *mocks.ItemCache
	publisher  *mocks.EventPublisher
}

func newCatalog(t *testing.T, withValidation bool) *catalog {
	t.Helper()

	c := &catalog{
		repo:      mocks.NewItemRepository(),
		cache:     mocks.NewItemCache(),
		publisher: mocks.NewEventPublisher(),
	}

	reg := registry.New()
	if err := app.Register(reg, app.Dependencies{
		ItemRepo:  c.repo,
		ItemCache: c.cache,
		Publisher: c.publisher,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var opts []mediator.Option
	if withValidation {
		pipeline := validation.NewPipeline(validation.DefaultOptions())
		app.RegisterValidators(pipeline)
		opts = append(opts, mediator.WithValidation(pipeline))
	}
	c.dispatcher = mediator.New(reg, opts...)
	return c
}

func TestRegister_Twice(t *testing.T) {
	reg := registry.New()
	deps := app.Dependencies{
		ItemRepo:  mocks.NewItemRepository(),
		ItemCache: mocks.NewItemCache(),
		Publisher: mocks.NewEventPublisher(),
	}

	if err := app.Register(reg, deps); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	err := app.Register(reg, deps)

	if !errors.Is(err, registry.ErrDuplicateHandler) {
		t.Errorf("second Register() error = %v, want ErrDuplicateHandler", err)
	}
	if reg.Len() != 5 {
		t.Errorf("Len() = %d, want 5", reg.Len())
	}
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := newCatalog(t, false)

		result, err := mediator.Send(ctx, c.dispatcher, command.CreateItem{
			Name:        "  Widget ",
			Description: "A useful widget",
			PriceCents:  1999,
		})

		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		item := c.repo.GetItem(result.ItemID)
		if item == nil {
			t.Fatal("item should be stored")
		}
		if item.Name() != "Widget" {
			t.Errorf("Name = %q, want Widget", item.Name())
		}
		if item.Description().MustGet() != "A useful widget" {
			t.Errorf("Description = %v", item.Description())
		}

		created := c.publisher.ItemCreatedEvents()
		if len(created) != 1 || created[0].ItemID != result.ItemID || created[0].PriceCents != 1999 {
			t.Errorf("ItemCreated events = %+v", created)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		c := newCatalog(t, false)
		c.repo.AddItem(testutil.Fixtures.ItemBuilder().WithName("Widget").Build())

		_, err := mediator.Send(ctx, c.dispatcher, command.CreateItem{Name: "Widget", PriceCents: 1})

		if !errors.Is(err, domainerror.ErrItemAlreadyExists) {
			t.Errorf("error = %v, want ErrItemAlreadyExists", err)
		}
		if c.repo.Calls.Create != 0 {
			t.Error("Create should not be called")
		}
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		c := newCatalog(t, false)
		c.repo.Errors.Create = repository.ErrConflict

		_, err := mediator.Send(ctx, c.dispatcher, command.CreateItem{Name: "Widget", PriceCents: 1})

		if !errors.Is(err, domainerror.ErrItemAlreadyExists) {
			t.Errorf("error = %v, want ErrItemAlreadyExists", err)
		}
		if c.publisher.EventCount() != 0 {
			t.Error("no event should be published")
		}
	})

	t.Run("domain rejects negative price", func(t *testing.T) {
		c := newCatalog(t, false)

		_, err := mediator.Send(ctx, c.dispatcher, command.CreateItem{Name: "Widget", PriceCents: -1})

		if !errors.Is(err, domainerror.ErrItemPriceInvalid) {
			t.Errorf("error = %v, want ErrItemPriceInvalid", err)
		}
	})

	t.Run("validation rejects before the handler", func(t *testing.T) {
		c := newCatalog(t, true)

		_, err := mediator.Send(ctx, c.dispatcher, command.CreateItem{Name: "", PriceCents: -1})

		var failed *validation.FailedError
		if !errors.As(err, &failed) {
			t.Fatalf("error = %v, want *validation.FailedError", err)
		}
		if c.repo.Calls.ExistsByName != 0 {
			t.Error("handler should not run")
		}
	})
}

func TestGetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads and populates", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.Item()
		c.repo.AddItem(item)

		result, err := mediator.Send(ctx, c.dispatcher, query.GetItem{ItemID: item.ID()})

		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if result.Item.ID() != item.ID() {
			t.Errorf("ID = %v, want %v", result.Item.ID(), item.ID())
		}
		if !c.cache.Has(item.ID()) {
			t.Error("item should be cached")
		}
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.Item()
		c.cache.Set(ctx, item, 0)

		if _, err := mediator.Send(ctx, c.dispatcher, query.GetItem{ItemID: item.ID()}); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if c.repo.Calls.FindByID != 0 {
			t.Errorf("FindByID calls = %d, want 0", c.repo.Calls.FindByID)
		}
	})

	t.Run("cache error falls through", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.Item()
		c.repo.AddItem(item)
		c.cache.Errors.Get = errors.New("redis down")

		if _, err := mediator.Send(ctx, c.dispatcher, query.GetItem{ItemID: item.ID()}); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		c := newCatalog(t, false)

		_, err := mediator.Send(ctx, c.dispatcher, query.GetItem{ItemID: types.NewID()})

		if !errors.Is(err, domainerror.ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		c := newCatalog(t, false)

		_, err := mediator.Send(ctx, c.dispatcher, query.GetItem{})

		if !errors.Is(err, domainerror.ErrItemIDRequired) {
			t.Errorf("error = %v, want ErrItemIDRequired", err)
		}
	})

	t.Run("concurrent reads share the handler", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.Item()
		c.repo.AddItem(item)

		var g errgroup.Group
		for range 16 {
			g.Go(func() error {
				result, err := mediator.Send(ctx, c.dispatcher, query.GetItem{ItemID: item.ID()})
				if err != nil {
					return err
				}
				if result.Item.ID() != item.ID() {
					return fmt.Errorf("ID = %v, want %v", result.Item.ID(), item.ID())
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent GetItem: %v", err)
		}

		if c.dispatcher.Cached() != 1 {
			t.Errorf("Cached() = %d, want 1", c.dispatcher.Cached())
		}
	})
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t, false)
	for range 3 {
		c.repo.AddItem(testutil.Fixtures.Item())
	}

	result, err := mediator.Send(ctx, c.dispatcher, query.ListItems{Limit: 2})

	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(result.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(result.Items))
	}
	if result.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", result.TotalCount)
	}
}

func TestRenameItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.ItemBuilder().WithName("Widget").Build()
		c.repo.AddItem(item)
		c.cache.Set(ctx, item, 0)

		err := mediator.SendCommand(ctx, c.dispatcher, command.RenameItem{ItemID: item.ID(), Name: "Gadget"})

		if err != nil {
			t.Fatalf("SendCommand() error = %v", err)
		}
		if c.repo.GetItem(item.ID()).Name() != "Gadget" {
			t.Error("name should be updated")
		}
		if c.cache.Has(item.ID()) {
			t.Error("cache should be evicted")
		}
		renamed := c.publisher.ItemRenamedEvents()
		if len(renamed) != 1 || renamed[0].OldName != "Widget" || renamed[0].NewName != "Gadget" {
			t.Errorf("ItemRenamed events = %+v", renamed)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.ItemBuilder().WithName("Widget").Build()
		c.repo.AddItem(item)

		err := mediator.SendCommand(ctx, c.dispatcher, command.RenameItem{ItemID: item.ID(), Name: "Widget"})

		if !errors.Is(err, domainerror.ErrItemNameUnchanged) {
			t.Errorf("error = %v, want ErrItemNameUnchanged", err)
		}
		if c.publisher.HasEvent(event.EventTypeItemRenamed) {
			t.Error("no event should be published")
		}
	})

	t.Run("name taken", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.ItemBuilder().WithName("Widget").Build()
		c.repo.AddItem(item)
		c.repo.AddItem(testutil.Fixtures.ItemBuilder().WithName("Gadget").Build())

		err := mediator.SendCommand(ctx, c.dispatcher, command.RenameItem{ItemID: item.ID(), Name: "Gadget"})

		if !errors.Is(err, domainerror.ErrItemAlreadyExists) {
			t.Errorf("error = %v, want ErrItemAlreadyExists", err)
		}
		if c.repo.GetItem(item.ID()).Name() != "Widget" {
			t.Error("item should keep its name")
		}
	})

	t.Run("not found", func(t *testing.T) {
		c := newCatalog(t, false)

		err := mediator.SendCommand(ctx, c.dispatcher, command.RenameItem{ItemID: types.NewID(), Name: "Gadget"})

		if !errors.Is(err, domainerror.ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := newCatalog(t, false)
		item := testutil.Fixtures.Item()
		c.repo.AddItem(item)
		c.cache.Set(ctx, item, 0)

		if err := mediator.SendCommand(ctx, c.dispatcher, command.DeleteItem{ItemID: item.ID()}); err != nil {
			t.Fatalf("SendCommand() error = %v", err)
		}
		if c.repo.Len() != 0 {
			t.Error("item should be removed")
		}
		if c.cache.Has(item.ID()) {
			t.Error("cache should be evicted")
		}
		if !c.publisher.HasEvent(event.EventTypeItemDeleted) {
			t.Error("expected ItemDeleted event")
		}
	})

	t.Run("not found", func(t *testing.T) {
		c := newCatalog(t, false)

		err := mediator.SendCommand(ctx, c.dispatcher, command.DeleteItem{ItemID: types.NewID()})

		if !errors.Is(err, domainerror.ErrItemNotFound) {
			t.Errorf("error = %v, want ErrItemNotFound", err)
		}
		if c.publisher.EventCount() != 0 {
			t.Error("no event should be published")
		}
	})
}

func TestValidators(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{"create ok", command.CreateItem{Name: "Widget", PriceCents: 0}, false},
		{"create blank name", command.CreateItem{Name: "", PriceCents: 1}, true},
		{"create negative price", command.CreateItem{Name: "Widget", PriceCents: -1}, true},
		{"rename missing id", command.RenameItem{Name: "Gadget"}, true},
		{"delete missing id", command.DeleteItem{}, true},
		{"get missing id", query.GetItem{}, true},
		{"list negative offset", query.ListItems{Offset: -1}, true},
		{"list defaults", query.ListItems{}, false},
	}

	pipeline := validation.NewPipeline(validation.Options{FailOnError: true, RunAll: true})
	app.RegisterValidators(pipeline)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.Validate(ctx, tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
