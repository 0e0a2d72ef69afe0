package analytics

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupAnalyticsDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE profile_views (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			slug TEXT NOT NULL,
			viewed_at INTEGER NOT NULL,
			ip_address TEXT,
			user_agent TEXT,
			device_type TEXT,
			os TEXT,
			browser TEXT,
			referrer TEXT
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

func insertView(t *testing.T, db *sql.DB, id, profileID, ip string, viewedAt int64) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO profile_views (id, profile_id, slug, viewed_at, ip_address, user_agent, device_type, os, browser, referrer)
		VALUES (?, ?, 'abc12345', ?, ?, 'test', 'mobile', 'Android', 'Chrome', 'https://wa.me/')
	`, id, profileID, viewedAt, ip)
	if err != nil {
		t.Fatalf("Failed to insert view: %v", err)
	}
}

func TestGetViews(t *testing.T) {
	db := setupAnalyticsDB(t)
	repo := NewRepository(db)

	for i := 0; i < 5; i++ {
		insertView(t, db, fmt.Sprintf("v%d", i), "p1", "10.0.0.1", int64(1000+i))
	}
	insertView(t, db, "other", "p2", "10.0.0.2", 2000)

	views, err := repo.GetViews("p1", 3, 0)
	if err != nil {
		t.Fatalf("GetViews failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("Expected 3 views, got %d", len(views))
	}
	// Newest first
	if views[0].ViewedAt != 1004 {
		t.Errorf("Expected newest view first, got %d", views[0].ViewedAt)
	}
	if views[0].DeviceType != "mobile" || views[0].Browser != "Chrome" {
		t.Errorf("View fields wrong: %+v", views[0])
	}

	page, err := repo.GetViews("p1", 3, 3)
	if err != nil {
		t.Fatalf("GetViews with offset failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("Expected 2 views on second page, got %d", len(page))
	}
}

func TestGetSummary(t *testing.T) {
	db := setupAnalyticsDB(t)
	repo := NewRepository(db)

	insertView(t, db, "v1", "p1", "10.0.0.1", 1000)
	insertView(t, db, "v2", "p1", "10.0.0.1", 2000)
	insertView(t, db, "v3", "p1", "10.0.0.2", 3000)

	summary, err := repo.GetSummary("p1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalViews != 3 {
		t.Errorf("Expected 3 total views, got %d", summary.TotalViews)
	}
	if summary.UniqueIPs != 2 {
		t.Errorf("Expected 2 unique IPs, got %d", summary.UniqueIPs)
	}
	if summary.LastViewedAt == nil || *summary.LastViewedAt != 3000 {
		t.Errorf("Expected last view at 3000, got %v", summary.LastViewedAt)
	}
}

func TestGetSummaryEmpty(t *testing.T) {
	repo := NewRepository(setupAnalyticsDB(t))

	summary, err := repo.GetSummary("p1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalViews != 0 || summary.UniqueIPs != 0 {
		t.Errorf("Expected zero counts, got %+v", summary)
	}
	if summary.LastViewedAt != nil {
		t.Errorf("Expected nil last view, got %d", *summary.LastViewedAt)
	}
}
