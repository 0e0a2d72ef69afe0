package invites

import (
	"testing"
	"time"
)

func newTestResolver(t *testing.T) (*Resolver, *Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupTestDB(t))
	svc := NewService(repo, "http://localhost:3000")
	return NewResolver(repo, nil), svc, repo
}

func TestResolve(t *testing.T) {
	resolver, svc, repo := newTestResolver(t)

	profile, err := svc.CreateProfile(&ProfileInput{
		GroomName: "Dev",
		BrideName: "Anita",
		EventType: "marriage",
		EventDate: time.Now().Add(14 * 24 * time.Hour).Unix(),
		Venue:     "Lakeside Lawns",
	})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if _, err := svc.AddMedia(profile.ID, &MediaInput{MediaType: MediaPhoto, MediaURL: "https://cdn.example.com/a.jpg"}); err != nil {
		t.Fatalf("AddMedia failed: %v", err)
	}

	view, err := resolver.Resolve(profile.Slug, ViewContext{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if view.Slug != profile.Slug || view.GroomName != "Dev" || view.BrideName != "Anita" {
		t.Errorf("View fields wrong: %+v", view)
	}
	if len(view.Media) != 1 {
		t.Errorf("Expected 1 media item, got %d", len(view.Media))
	}
	if view.Greetings == nil || len(view.Greetings) != 0 {
		t.Errorf("Expected empty (non-nil) greetings, got %v", view.Greetings)
	}

	// Each resolution counts a view
	got, _ := repo.GetProfileByID(profile.ID)
	if got.ViewCount != 1 {
		t.Errorf("Expected view_count 1, got %d", got.ViewCount)
	}
}

func TestResolveUnknownSlug(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	if _, err := resolver.Resolve("never-minted", ViewContext{}); err != ErrSlugNotFound {
		t.Errorf("Expected ErrSlugNotFound, got %v", err)
	}
}

func TestResolveDeletedProfile(t *testing.T) {
	resolver, svc, _ := newTestResolver(t)

	profile, err := svc.CreateProfile(&ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := svc.DeleteProfile(profile.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	// The slug is still known, so this is gone, not not-found
	if _, err := resolver.Resolve(profile.Slug, ViewContext{}); err != ErrLinkInactive {
		t.Errorf("Expected ErrLinkInactive, got %v", err)
	}
}

func TestResolveDateExpiry(t *testing.T) {
	resolver, svc, _ := newTestResolver(t)

	past := time.Now().Add(-time.Hour).Unix()
	profile, err := svc.CreateProfile(&ProfileInput{
		GroomName:       "A",
		BrideName:       "B",
		LinkExpiryType:  ExpiryDate,
		LinkExpiryValue: &past,
	})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	if _, err := resolver.Resolve(profile.Slug, ViewContext{}); err != ErrLinkInactive {
		t.Errorf("Expected ErrLinkInactive, got %v", err)
	}
}

func TestResolveViewLimit(t *testing.T) {
	resolver, svc, repo := newTestResolver(t)

	limit := int64(1)
	profile, err := svc.CreateProfile(&ProfileInput{
		GroomName:       "A",
		BrideName:       "B",
		LinkExpiryType:  ExpiryViewCount,
		LinkExpiryValue: &limit,
	})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	// The limit-th view still succeeds
	if _, err := resolver.Resolve(profile.Slug, ViewContext{}); err != nil {
		t.Fatalf("First resolve should succeed: %v", err)
	}
	// The next one does not
	if _, err := resolver.Resolve(profile.Slug, ViewContext{}); err != ErrLinkInactive {
		t.Errorf("Expected ErrLinkInactive on exhausted link, got %v", err)
	}

	got, _ := repo.GetProfileByID(profile.ID)
	if got.ViewCount != 1 {
		t.Errorf("Counter overshot the limit: %d", got.ViewCount)
	}
}

func TestSubmitGreeting(t *testing.T) {
	resolver, svc, repo := newTestResolver(t)

	profile, err := svc.CreateProfile(&ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	greeting, err := resolver.SubmitGreeting(profile.Slug, "Nisha", "Wishing you both the best!")
	if err != nil {
		t.Fatalf("SubmitGreeting failed: %v", err)
	}
	if greeting.ID == "" || greeting.ProfileID != profile.ID {
		t.Error("Greeting not stamped correctly")
	}

	// Posting a greeting is not a view
	got, _ := repo.GetProfileByID(profile.ID)
	if got.ViewCount != 0 {
		t.Errorf("Greeting must not touch view_count, got %d", got.ViewCount)
	}
}

func TestSubmitGreetingValidation(t *testing.T) {
	resolver, svc, _ := newTestResolver(t)

	profile, err := svc.CreateProfile(&ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	if _, err := resolver.SubmitGreeting(profile.Slug, "", "hi"); err == nil {
		t.Error("Expected error for missing guest name")
	}
	if _, err := resolver.SubmitGreeting(profile.Slug, "Nisha", ""); err == nil {
		t.Error("Expected error for missing message")
	}
	if _, err := resolver.SubmitGreeting("never-minted", "Nisha", "hi"); err != ErrSlugNotFound {
		t.Errorf("Expected ErrSlugNotFound, got %v", err)
	}
}

func TestSubmitGreetingInactiveLink(t *testing.T) {
	resolver, svc, repo := newTestResolver(t)

	profile, err := svc.CreateProfile(&ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := svc.DeleteProfile(profile.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	if _, err := resolver.SubmitGreeting(profile.Slug, "Nisha", "hi"); err != ErrLinkInactive {
		t.Errorf("Expected ErrLinkInactive, got %v", err)
	}

	count, err := repo.CountGreetingsByProfile(profile.ID)
	if err != nil {
		t.Fatalf("CountGreetingsByProfile failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Rejected greeting was stored, count %d", count)
	}
}
