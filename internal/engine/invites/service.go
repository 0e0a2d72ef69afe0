package invites

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrMediaNotFound   = errors.New("media not found")
)

type Service struct {
	repo    *Repository
	baseURL string
}

func NewService(repo *Repository, publicBaseURL string) *Service {
	return &Service{
		repo:    repo,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

type ProfileInput struct {
	GroomName       string
	BrideName       string
	EventType       string
	EventDate       int64
	Venue           string
	Language        string
	SectionsEnabled SectionFlags
	LinkExpiryType  string
	LinkExpiryValue *int64
}

// CreateProfile assigns id and slug, stamps the lifecycle defaults and
// persists. The returned profile carries the derived invitation link.
func (s *Service) CreateProfile(input *ProfileInput) (*Profile, error) {
	if input.GroomName == "" || input.BrideName == "" {
		return nil, errors.New("groom_name and bride_name are required")
	}

	expiryType := input.LinkExpiryType
	if expiryType == "" {
		expiryType = ExpiryPermanent
	}
	if err := ValidateExpiry(expiryType, input.LinkExpiryValue); err != nil {
		return nil, err
	}

	slug, err := GenerateSlug(s.repo)
	if err != nil {
		return nil, err
	}

	sections := input.SectionsEnabled
	if sections == nil {
		sections = DefaultSections()
	}

	now := time.Now().Unix()
	profile := &Profile{
		ID:              uuid.New().String(),
		GroomName:       input.GroomName,
		BrideName:       input.BrideName,
		EventType:       input.EventType,
		EventDate:       input.EventDate,
		Venue:           input.Venue,
		Language:        input.Language,
		SectionsEnabled: sections,
		Slug:            slug,
		LinkExpiryType:  expiryType,
		LinkExpiryValue: input.LinkExpiryValue,
		ViewCount:       0,
		IsDeleted:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateProfile(profile); err != nil {
		return nil, err
	}

	profile.InvitationLink = s.InvitationLink(slug)
	return profile, nil
}

func (s *Service) InvitationLink(slug string) string {
	return s.baseURL + "/invite/" + slug
}

// GetProfile serves the admin path: soft-deleted profiles stay retrievable,
// and the read never touches the view counter.
func (s *Service) GetProfile(id string) (*Profile, error) {
	profile, err := s.repo.GetProfileByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	profile.InvitationLink = s.InvitationLink(profile.Slug)
	return profile, nil
}

func (s *Service) ListProfiles() ([]*Profile, error) {
	profiles, err := s.repo.ListProfiles()
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		p.InvitationLink = s.InvitationLink(p.Slug)
	}
	return profiles, nil
}

// ProfileUpdate carries the fields an admin may change. Nil pointers mean
// "leave untouched". The slug is immutable and deliberately absent.
// LinkExpiryValue stays in wire form until the expiry type is merged, since
// its meaning (timestamp vs count) depends on the final type.
type ProfileUpdate struct {
	GroomName       *string
	BrideName       *string
	EventType       *string
	EventDate       *int64
	Venue           *string
	Language        *string
	SectionsEnabled SectionFlags
	LinkExpiryType  *string
	LinkExpiryValue json.RawMessage
	ExpiryValueSet  bool
}

func (s *Service) UpdateProfile(id string, upd *ProfileUpdate) (*Profile, error) {
	existing, err := s.repo.GetProfileByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProfileNotFound
	}

	if upd.GroomName != nil {
		existing.GroomName = *upd.GroomName
	}
	if upd.BrideName != nil {
		existing.BrideName = *upd.BrideName
	}
	if upd.EventType != nil {
		existing.EventType = *upd.EventType
	}
	if upd.EventDate != nil {
		existing.EventDate = *upd.EventDate
	}
	if upd.Venue != nil {
		existing.Venue = *upd.Venue
	}
	if upd.Language != nil {
		existing.Language = *upd.Language
	}
	if upd.SectionsEnabled != nil {
		existing.SectionsEnabled = upd.SectionsEnabled
	}
	if upd.LinkExpiryType != nil {
		existing.LinkExpiryType = *upd.LinkExpiryType
	}
	if upd.ExpiryValueSet {
		value, err := ParseExpiryValue(existing.LinkExpiryType, upd.LinkExpiryValue)
		if err != nil {
			return nil, err
		}
		existing.LinkExpiryValue = value
	} else if upd.LinkExpiryType != nil && existing.LinkExpiryType == ExpiryPermanent {
		// Switching to permanent without resending a value clears it
		existing.LinkExpiryValue = nil
	}

	// Validate the merged expiry configuration before saving
	if err := ValidateExpiry(existing.LinkExpiryType, existing.LinkExpiryValue); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(existing); err != nil {
		return nil, err
	}

	existing.InvitationLink = s.InvitationLink(existing.Slug)
	return existing, nil
}

// DeleteProfile soft-deletes. Media and greetings are not removed; they
// become invisible along with the profile on the public path. Deleting an
// already-deleted profile succeeds again.
func (s *Service) DeleteProfile(id string) error {
	existing, err := s.repo.GetProfileByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProfileNotFound
	}
	return s.repo.SoftDeleteProfile(id)
}

type MediaInput struct {
	MediaType string
	MediaURL  string
	Caption   string
	Order     int
}

func (s *Service) AddMedia(profileID string, input *MediaInput) (*Media, error) {
	profile, err := s.repo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	media := &Media{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		MediaType: input.MediaType,
		MediaURL:  input.MediaURL,
		Caption:   input.Caption,
		Order:     input.Order,
		CreatedAt: time.Now().Unix(),
	}

	if err := ValidateMedia(media); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMedia(media); err != nil {
		return nil, err
	}

	return media, nil
}

func (s *Service) ListMedia(profileID string) ([]*Media, error) {
	profile, err := s.repo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return s.repo.ListMediaByProfile(profileID)
}

func (s *Service) DeleteMedia(mediaID string) error {
	deleted, err := s.repo.DeleteMedia(mediaID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMediaNotFound
	}
	return nil
}

func (s *Service) ListGreetings(profileID string) ([]*Greeting, error) {
	profile, err := s.repo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return s.repo.ListGreetingsByProfile(profileID)
}
