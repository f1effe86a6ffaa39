package repos_test

import (
	"testing"

	"candelore/internal/repos"
)

func TestEnsureCartIsIdempotent(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewCartRepo(db)

	first, err := r.EnsureCart("visitor-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.EnsureCart("visitor-1")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("cart ids differ across calls: %q vs %q", first, second)
	}
}

// A broken database must surface as the lookup error, not as a downstream
// insert failure.
func TestEnsureCartPropagatesDBFailure(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewCartRepo(db)
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.EnsureCart("visitor-1"); err == nil {
		t.Fatal("want an error from a closed database, got nil")
	}
}
