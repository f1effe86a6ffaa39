package services_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"candelore/internal/repos"
	"candelore/internal/services"
	"candelore/internal/uploads"
)

func newCompositions(t *testing.T) (*services.CompositionService, string) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	store, err := uploads.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return services.NewCompositionService(repos.NewCompositionRepo(db), store), dir
}

func TestCompositionLifecycle(t *testing.T) {
	svc, dir := newCompositions(t)

	id, err := svc.Create("Autumn Set", "Three amber candles", true, "set.png", bytes.NewReader(pngBytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	c, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Image == "" {
		t.Fatal("composition image not stored")
	}
	if _, err := os.Stat(filepath.Join(dir, c.Image)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	// Deactivate: drops off the storefront list, stays in admin list
	if err := svc.Update(id, "Autumn Set", "Three amber candles", false, "", nil); err != nil {
		t.Fatal(err)
	}
	active, err := svc.ListActive()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("inactive composition visible on storefront: %+v", active)
	}
	all, err := svc.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("admin list should keep it: %+v", all)
	}

	if err := svc.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, c.Image)); err == nil {
		t.Fatal("image file should be removed with the composition")
	}
}

func TestCompositionImageIsOptional(t *testing.T) {
	svc, _ := newCompositions(t)
	id, err := svc.Create("Plain Set", "", true, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err := svc.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Image != "" {
		t.Fatalf("unexpected image: %q", c.Image)
	}
}
