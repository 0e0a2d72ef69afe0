package invites

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"invitr/internal/pkg/parser"
)

// ViewContext captures request metadata for a single public resolution.
type ViewContext struct {
	IPAddress   string
	UserAgent   string
	Referrer    string
	RequestTime time.Time
}

// ViewLogger appends a row per admitted public resolution. The view counter
// on the profile is maintained by AdmitView; these rows are the audit trail
// behind it.
type ViewLogger struct {
	db *sql.DB
}

func NewViewLogger(db *sql.DB) *ViewLogger {
	return &ViewLogger{db: db}
}

// LogView is designed to be called in a goroutine; it takes values only, so
// a cancelled request context cannot interfere with the write.
func (l *ViewLogger) LogView(profileID, slug string, viewCtx ViewContext) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered in LogView")
		}
	}()

	os, browser := parser.ParseUserAgent(viewCtx.UserAgent)

	_, err := l.db.Exec(`
		INSERT INTO profile_views (id, profile_id, slug, viewed_at, ip_address, user_agent, device_type, os, browser, referrer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		profileID,
		slug,
		viewCtx.RequestTime.Unix(),
		viewCtx.IPAddress,
		viewCtx.UserAgent,
		parser.ParseDeviceType(viewCtx.UserAgent),
		os,
		browser,
		viewCtx.Referrer,
	)

	if err != nil {
		log.Error().Err(err).Str("profile_id", profileID).Msg("failed to log view")
	}
}
