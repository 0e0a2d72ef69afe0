package analytics

import (
	"database/sql"
)

// ViewStat is one guest resolution of an invitation link.
type ViewStat struct {
	ViewedAt   int64  `json:"viewed_at"`
	DeviceType string `json:"device_type"`
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	Referrer   string `json:"referrer"`
}

// Summary aggregates a profile's view history for the admin dashboard.
type Summary struct {
	TotalViews   int    `json:"total_views"`
	UniqueIPs    int    `json:"unique_ips"`
	LastViewedAt *int64 `json:"last_viewed_at,omitempty"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetViews(profileID string, limit, offset int) ([]ViewStat, error) {
	query := `
		SELECT viewed_at, device_type, os, browser, referrer
		FROM profile_views
		WHERE profile_id = ?
		ORDER BY viewed_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.Query(query, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []ViewStat
	for rows.Next() {
		var v ViewStat
		var device, os, browser, referrer sql.NullString
		if err := rows.Scan(&v.ViewedAt, &device, &os, &browser, &referrer); err != nil {
			return nil, err
		}
		v.DeviceType = device.String
		v.OS = os.String
		v.Browser = browser.String
		v.Referrer = referrer.String
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *Repository) GetSummary(profileID string) (*Summary, error) {
	summary := &Summary{}

	err := r.db.QueryRow(
		"SELECT COUNT(*), COUNT(DISTINCT ip_address) FROM profile_views WHERE profile_id = ?",
		profileID,
	).Scan(&summary.TotalViews, &summary.UniqueIPs)
	if err != nil {
		return nil, err
	}

	var last sql.NullInt64
	err = r.db.QueryRow(
		"SELECT MAX(viewed_at) FROM profile_views WHERE profile_id = ?",
		profileID,
	).Scan(&last)
	if err != nil {
		return nil, err
	}
	if last.Valid {
		val := last.Int64
		summary.LastViewedAt = &val
	}

	return summary, nil
}
