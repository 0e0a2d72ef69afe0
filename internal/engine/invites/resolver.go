package invites

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSlugNotFound: no profile has ever held the slug (404).
	ErrSlugNotFound = errors.New("no invitation for slug")
	// ErrLinkInactive: the slug was valid once but the link no longer
	// resolves (410). Callers must not leak profile content alongside it.
	ErrLinkInactive = errors.New("invitation link is no longer active")
)

// Resolver is the guest-facing read path. It evaluates the lifecycle fresh on
// every call; nothing here caches an expiry decision.
type Resolver struct {
	repo  *Repository
	views *ViewLogger
}

func NewResolver(repo *Repository, views *ViewLogger) *Resolver {
	return &Resolver{repo: repo, views: views}
}

// Resolve looks up a slug and, while the link is active, assembles the
// combined invitation view. Each successful resolution admits exactly one
// view through the store's atomic counter, so the Nth view of a
// view-limited link still succeeds and the N+1th gets ErrLinkInactive.
func (r *Resolver) Resolve(slug string, viewCtx ViewContext) (*InvitationView, error) {
	profile, err := r.repo.GetProfileBySlug(slug)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrSlugNotFound
	}

	if state := EvaluateState(profile, time.Now()); !state.Active() {
		return nil, ErrLinkInactive
	}

	admitted, err := r.repo.AdmitView(profile.ID)
	if err != nil {
		return nil, err
	}
	if !admitted {
		// Lost the race for the last admissible view
		return nil, ErrLinkInactive
	}

	media, err := r.repo.ListMediaByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	greetings, err := r.repo.ListGreetingsByProfile(profile.ID)
	if err != nil {
		return nil, err
	}

	if media == nil {
		media = []*Media{}
	}
	if greetings == nil {
		greetings = []*Greeting{}
	}

	if r.views != nil {
		go r.views.LogView(profile.ID, slug, viewCtx)
	}

	return &InvitationView{
		Slug:            profile.Slug,
		GroomName:       profile.GroomName,
		BrideName:       profile.BrideName,
		EventType:       profile.EventType,
		EventDate:       profile.EventDate,
		Venue:           profile.Venue,
		Language:        profile.Language,
		SectionsEnabled: profile.SectionsEnabled,
		Media:           media,
		Greetings:       greetings,
	}, nil
}

// SubmitGreeting gates on the same lifecycle as Resolve but never touches
// the view counter; posting a greeting is not a view.
func (r *Resolver) SubmitGreeting(slug, guestName, message string) (*Greeting, error) {
	if guestName == "" {
		return nil, errors.New("guest_name is required")
	}
	if message == "" {
		return nil, errors.New("message is required")
	}

	profile, err := r.repo.GetProfileBySlug(slug)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrSlugNotFound
	}

	if state := EvaluateState(profile, time.Now()); !state.Active() {
		return nil, ErrLinkInactive
	}

	greeting := &Greeting{
		ID:        uuid.New().String(),
		ProfileID: profile.ID,
		GuestName: guestName,
		Message:   message,
		CreatedAt: time.Now().Unix(),
	}

	if err := r.repo.CreateGreeting(greeting); err != nil {
		return nil, err
	}

	return greeting, nil
}
