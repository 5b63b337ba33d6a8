package services

import (
	"context"
	"testing"

	"github.com/diewo77/docrender/internal/theme"
)

func TestDesignServiceActiveDefault(t *testing.T) {
	svc := NewDesignService(setupTestDB(t))
	d, err := svc.Active(context.Background(), 7)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if d.TenantID != 7 || d.PrimaryColor != theme.DefaultPrimary || d.ID != 0 {
		t.Errorf("default design = %+v", d)
	}
}

func TestDesignServiceSave(t *testing.T) {
	svc := NewDesignService(setupTestDB(t))
	ctx := context.Background()
	off := false
	first, err := svc.Save(ctx, 3, theme.DesignSettings{Name: "Bleu", Primary: "#0000FF", ShowPaymentBox: &off})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := svc.Save(ctx, 3, theme.DesignSettings{Name: "Rouge", Primary: "#FF0000"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("save should update the tenant's design, got ids %d and %d", first.ID, second.ID)
	}
	got, err := svc.Active(ctx, 3)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	s := got.ToSettings()
	if s.Name != "Rouge" || s.Primary != "#FF0000" {
		t.Errorf("active = %+v", s)
	}
	if s.ShowPaymentBox == nil || !*s.ShowPaymentBox {
		t.Error("omitted toggle should be stored as true")
	}
}
