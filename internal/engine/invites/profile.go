package invites

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

const (
	ExpiryPermanent = "permanent"
	ExpiryDate      = "date"
	ExpiryViewCount = "view_count"
)

const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// SectionKeys is the fixed set of invitation page sections a profile can toggle.
var SectionKeys = []string{
	"opening", "welcome", "couple", "photos",
	"video", "events", "greetings", "footer",
}

type SectionFlags map[string]bool

// DefaultSections enables every section.
func DefaultSections() SectionFlags {
	flags := make(SectionFlags, len(SectionKeys))
	for _, key := range SectionKeys {
		flags[key] = true
	}
	return flags
}

// Value implements the driver.Valuer interface for SectionFlags
func (f SectionFlags) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements the sql.Scanner interface for SectionFlags
func (f *SectionFlags) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &f)
}

type Profile struct {
	ID              string       `json:"id"`
	GroomName       string       `json:"groom_name"`
	BrideName       string       `json:"bride_name"`
	EventType       string       `json:"event_type"` // marriage, engagement, other; open set
	EventDate       int64        `json:"event_date"`
	Venue           string       `json:"venue"`
	Language        string       `json:"language"`
	SectionsEnabled SectionFlags `json:"sections_enabled"`
	Slug            string       `json:"slug"` // immutable, never recycled
	LinkExpiryType  string       `json:"link_expiry_type"`
	LinkExpiryValue *int64       `json:"link_expiry_value,omitempty"` // unix seconds (date) or view limit (view_count)
	ViewCount       int64        `json:"view_count"`
	IsDeleted       bool         `json:"is_deleted"`
	CreatedAt       int64        `json:"created_at"`
	UpdatedAt       int64        `json:"updated_at"`

	// Derived from the public base URL at read time, never persisted.
	InvitationLink string `json:"invitation_link,omitempty"`
}

type Media struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	MediaType string `json:"media_type"` // photo, video
	MediaURL  string `json:"media_url"`
	Caption   string `json:"caption,omitempty"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"created_at"`
}

type Greeting struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// InvitationView is the aggregate served to guests. Admin bookkeeping
// (is_deleted, expiry internals, view counter) stays out of it.
type InvitationView struct {
	Slug            string       `json:"slug"`
	GroomName       string       `json:"groom_name"`
	BrideName       string       `json:"bride_name"`
	EventType       string       `json:"event_type"`
	EventDate       int64        `json:"event_date"`
	Venue           string       `json:"venue"`
	Language        string       `json:"language"`
	SectionsEnabled SectionFlags `json:"sections_enabled"`
	Media           []*Media     `json:"media"`
	Greetings       []*Greeting  `json:"greetings"`
}
