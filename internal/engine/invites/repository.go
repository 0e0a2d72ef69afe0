package invites

import (
	"database/sql"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Profiles

func (r *Repository) CreateProfile(p *Profile) error {
	query := `
		INSERT INTO profiles (
			id, groom_name, bride_name, event_type, event_date, venue, language,
			sections_enabled, slug, link_expiry_type, link_expiry_value,
			view_count, is_deleted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		p.ID,
		p.GroomName,
		p.BrideName,
		p.EventType,
		p.EventDate,
		p.Venue,
		p.Language,
		p.SectionsEnabled,
		p.Slug,
		p.LinkExpiryType,
		p.LinkExpiryValue,
		p.ViewCount,
		p.IsDeleted,
		p.CreatedAt,
		p.UpdatedAt,
	)

	return err
}

const profileColumns = `
	id, groom_name, bride_name, event_type, event_date, venue, language,
	sections_enabled, slug, link_expiry_type, link_expiry_value,
	view_count, is_deleted, created_at, updated_at
`

func (r *Repository) GetProfileByID(id string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetProfileBySlug returns soft-deleted profiles too; the lifecycle decides
// what a guest gets to see, not the query.
func (r *Repository) GetProfileBySlug(slug string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE slug = ?`, slug)
	return scanProfile(row)
}

func (r *Repository) ExistsBySlug(slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM profiles WHERE slug = ?)", slug).Scan(&exists)
	return exists, err
}

// ListProfiles returns every profile, soft-deleted included, in creation order.
func (r *Repository) ListProfiles() ([]*Profile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *Repository) UpdateProfile(p *Profile) error {
	query := `
		UPDATE profiles SET
			groom_name = ?, bride_name = ?, event_type = ?, event_date = ?,
			venue = ?, language = ?, sections_enabled = ?,
			link_expiry_type = ?, link_expiry_value = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		p.GroomName,
		p.BrideName,
		p.EventType,
		p.EventDate,
		p.Venue,
		p.Language,
		p.SectionsEnabled,
		p.LinkExpiryType,
		p.LinkExpiryValue,
		time.Now().Unix(),
		p.ID,
	)
	return err
}

// SoftDeleteProfile flips the delete flag. Dependent media and greeting rows
// stay in place; they go dark with the profile. Repeat calls are harmless.
func (r *Repository) SoftDeleteProfile(id string) error {
	_, err := r.db.Exec(`UPDATE profiles SET is_deleted = 1, updated_at = ? WHERE id = ?`, time.Now().Unix(), id)
	return err
}

// AdmitView is the atomic increment-and-check behind view_count expiry.
// The guard and the increment run in one UPDATE, so concurrent resolutions
// cannot over-admit past the limit (zero overshoot). Profiles without a view
// limit are counted unconditionally. Returns false when the link is spent.
func (r *Repository) AdmitView(id string) (bool, error) {
	query := `
		UPDATE profiles SET view_count = view_count + 1
		WHERE id = ? AND is_deleted = 0
		  AND (link_expiry_type != 'view_count' OR view_count < link_expiry_value)
	`
	res, err := r.db.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func scanProfile(s interface {
	Scan(dest ...interface{}) error
}) (*Profile, error) {
	var p Profile
	var expiryValue sql.NullInt64

	err := s.Scan(
		&p.ID,
		&p.GroomName,
		&p.BrideName,
		&p.EventType,
		&p.EventDate,
		&p.Venue,
		&p.Language,
		&p.SectionsEnabled,
		&p.Slug,
		&p.LinkExpiryType,
		&expiryValue,
		&p.ViewCount,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if expiryValue.Valid {
		val := expiryValue.Int64
		p.LinkExpiryValue = &val
	}

	return &p, nil
}

// Media

func (r *Repository) CreateMedia(m *Media) error {
	_, err := r.db.Exec(`
		INSERT INTO media (id, profile_id, media_type, media_url, caption, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ProfileID, m.MediaType, m.MediaURL, m.Caption, m.Order, m.CreatedAt)
	return err
}

// ListMediaByProfile orders by the admin-assigned position; ties fall back to
// insertion order.
func (r *Repository) ListMediaByProfile(profileID string) ([]*Media, error) {
	rows, err := r.db.Query(`
		SELECT id, profile_id, media_type, media_url, caption, display_order, created_at
		FROM media WHERE profile_id = ?
		ORDER BY display_order ASC, created_at ASC, id ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Media
	for rows.Next() {
		m := &Media{}
		if err := rows.Scan(&m.ID, &m.ProfileID, &m.MediaType, &m.MediaURL, &m.Caption, &m.Order, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// DeleteMedia is a hard delete. Returns false when no row had the id.
func (r *Repository) DeleteMedia(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Greetings

func (r *Repository) CreateGreeting(g *Greeting) error {
	_, err := r.db.Exec(`
		INSERT INTO greetings (id, profile_id, guest_name, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.ID, g.ProfileID, g.GuestName, g.Message, g.CreatedAt)
	return err
}

func (r *Repository) ListGreetingsByProfile(profileID string) ([]*Greeting, error) {
	rows, err := r.db.Query(`
		SELECT id, profile_id, guest_name, message, created_at
		FROM greetings WHERE profile_id = ?
		ORDER BY created_at ASC, id ASC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var greetings []*Greeting
	for rows.Next() {
		g := &Greeting{}
		if err := rows.Scan(&g.ID, &g.ProfileID, &g.GuestName, &g.Message, &g.CreatedAt); err != nil {
			return nil, err
		}
		greetings = append(greetings, g)
	}
	return greetings, rows.Err()
}

func (r *Repository) CountGreetingsByProfile(profileID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM greetings WHERE profile_id = ?`, profileID).Scan(&count)
	return count, err
}
