package controllers

import (
	"context"
	"testing"

	"folio/folio/sources/psql/dao"
	"folio/folio/utils/types"
)

func TestContactCreateValidation(t *testing.T) {
	db := testDB(t)
	c := NewContactController(dao.NewContactMessageDAO(db))
	ctx := context.Background()

	bad := []types.ContactRequest{
		{},
		{Name: "A", Email: "a@example.com"},
		{Name: "  ", Email: "a@example.com", Message: "hi"},
		{Name: "A", Email: "   ", Message: "hi"},
	}
	for i, req := range bad {
		if _, err := c.Create(ctx, req); err != ErrInvalidContact {
			t.Errorf("case %d: expected ErrInvalidContact, got %v", i, err)
		}
	}

	msg, err := c.Create(ctx, types.ContactRequest{
		Name:    "  Ada  ",
		Email:   " ada@example.com ",
		Subject: " Quote ",
		Message: " Need a site. ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg.ID == 0 {
		t.Errorf("saved message should have an id")
	}
	if msg.Name != "Ada" || msg.Email != "ada@example.com" || msg.Subject != "Quote" || msg.Message != "Need a site." {
		t.Errorf("fields should be trimmed: %+v", msg)
	}

	list, err := c.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected the one valid submission, got %d", len(list))
	}
}
