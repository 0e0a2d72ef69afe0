package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"invitr/internal/engine/invites"
	"invitr/internal/platform/audit"
)

func newProfileTestHandler(t *testing.T) (*ProfileHandler, *invites.Service) {
	t.Helper()
	db := setupHandlerDB(t)
	repo := invites.NewRepository(db)
	svc := invites.NewService(repo, "http://localhost:3000")
	return NewProfileHandler(svc, audit.NewLogger(db)), svc
}

func TestProfileCreate(t *testing.T) {
	handler, _ := newProfileTestHandler(t)

	body := `{
		"groom_name": "Aman",
		"bride_name": "Tara",
		"event_type": "marriage",
		"event_date": "2025-12-25T18:00:00Z",
		"venue": "Hilltop Gardens",
		"link_expiry_type": "view_count",
		"link_expiry_value": 100
	}`
	req := httptest.NewRequest("POST", "/api/admin/profiles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile invites.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if profile.Slug == "" {
		t.Error("Expected minted slug")
	}
	if profile.InvitationLink != "http://localhost:3000/invite/"+profile.Slug {
		t.Errorf("Unexpected invitation link: %s", profile.InvitationLink)
	}
	if profile.LinkExpiryValue == nil || *profile.LinkExpiryValue != 100 {
		t.Errorf("Expiry value not parsed: %v", profile.LinkExpiryValue)
	}
}

func TestProfileCreateInvalid(t *testing.T) {
	handler, _ := newProfileTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing names", `{"event_date": 1766685600}`},
		{"missing event date", `{"groom_name": "A", "bride_name": "B"}`},
		{"date expiry without value", `{"groom_name": "A", "bride_name": "B", "event_date": 1766685600, "link_expiry_type": "date"}`},
		{"unknown expiry type", `{"groom_name": "A", "bride_name": "B", "event_date": 1766685600, "link_expiry_type": "weekly", "link_expiry_value": 1}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/profiles", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestProfileGetAndDelete(t *testing.T) {
	handler, svc := newProfileTestHandler(t)

	created, err := svc.CreateProfile(&invites.ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	params := httprouter.Params{{Key: "profile_id", Value: created.ID}}

	t.Run("get existing", func(t *testing.T) {
		req := withParams(httptest.NewRequest("GET", "/api/admin/profiles/"+created.ID, nil), params)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("get missing is 404", func(t *testing.T) {
		req := withParams(httptest.NewRequest("GET", "/api/admin/profiles/missing", nil),
			httprouter.Params{{Key: "profile_id", Value: "missing"}})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req := withParams(httptest.NewRequest("DELETE", "/api/admin/profiles/"+created.ID, nil), params)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("Profile deleted successfully")) {
			t.Errorf("Unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("deleted profile still visible to admin", func(t *testing.T) {
		req := withParams(httptest.NewRequest("GET", "/api/admin/profiles/"+created.ID, nil), params)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte(`"is_deleted":true`)) {
			t.Errorf("Expected is_deleted flag in body: %s", rec.Body.String())
		}
	})
}

func TestProfileUpdate(t *testing.T) {
	handler, svc := newProfileTestHandler(t)

	created, err := svc.CreateProfile(&invites.ProfileInput{GroomName: "A", BrideName: "B", Venue: "Old Hall"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	params := httprouter.Params{{Key: "profile_id", Value: created.ID}}

	body := `{"venue": "New Hall", "link_expiry_type": "view_count", "link_expiry_value": 10}`
	req := withParams(httptest.NewRequest("PUT", "/api/admin/profiles/"+created.ID, strings.NewReader(body)), params)
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile invites.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if profile.Venue != "New Hall" {
		t.Errorf("Venue not updated: %s", profile.Venue)
	}
	if profile.GroomName != "A" {
		t.Error("Untouched field changed")
	}
	if profile.Slug != created.Slug {
		t.Error("Slug must not change on update")
	}
}

func TestProfileQRCode(t *testing.T) {
	handler, svc := newProfileTestHandler(t)

	created, err := svc.CreateProfile(&invites.ProfileInput{GroomName: "A", BrideName: "B"})
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	params := httprouter.Params{{Key: "profile_id", Value: created.ID}}

	req := withParams(httptest.NewRequest("GET", "/api/admin/profiles/"+created.ID+"/qr", nil), params)
	rec := httptest.NewRecorder()
	handler.GetQRCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	req = withParams(httptest.NewRequest("GET", "/api/admin/profiles/"+created.ID+"/qr?size=50", nil), params)
	rec = httptest.NewRecorder()
	handler.GetQRCode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for undersized QR, got %d", rec.Code)
	}
}
