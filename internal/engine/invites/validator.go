package invites

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ValidateExpiry checks that the expiry value is present and type-consistent.
// event_type and language are display metadata and deliberately pass through
// unvalidated; only the expiry configuration drives lifecycle decisions.
func ValidateExpiry(expiryType string, value *int64) error {
	switch expiryType {
	case ExpiryPermanent:
		if value != nil {
			return errors.New("link_expiry_value must be null when link_expiry_type is 'permanent'")
		}
	case ExpiryDate:
		if value == nil {
			return errors.New("link_expiry_value is required when link_expiry_type is 'date'")
		}
	case ExpiryViewCount:
		if value == nil {
			return errors.New("link_expiry_value is required when link_expiry_type is 'view_count'")
		}
		if *value < 1 {
			return errors.New("link_expiry_value must be a positive view count")
		}
	default:
		return errors.New("link_expiry_type must be 'permanent', 'date' or 'view_count'")
	}
	return nil
}

func ValidateMedia(m *Media) error {
	if m.MediaType != MediaPhoto && m.MediaType != MediaVideo {
		return errors.New("media_type must be 'photo' or 'video'")
	}
	if m.MediaURL == "" {
		return errors.New("media_url is required")
	}
	return nil
}

// ParseTimestamp accepts either a unix-seconds integer or an RFC 3339 string.
func ParseTimestamp(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("timestamp is required")
	}

	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return unix, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, errors.New("invalid timestamp format")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, str); err == nil {
			return ts.Unix(), nil
		}
	}
	return 0, errors.New("invalid timestamp format")
}

// ParseExpiryValue normalises the wire form of link_expiry_value: a timestamp
// when the type is 'date', an integer when 'view_count', null otherwise.
func ParseExpiryValue(expiryType string, raw json.RawMessage) (*int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}

	switch expiryType {
	case ExpiryDate:
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return nil, errors.New("link_expiry_value must be a timestamp when link_expiry_type is 'date'")
		}
		return &ts, nil
	case ExpiryViewCount:
		count, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.New("link_expiry_value must be an integer when link_expiry_type is 'view_count'")
		}
		return &count, nil
	default:
		// permanent (or unknown type, caught by ValidateExpiry)
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.New("invalid link_expiry_value")
		}
		return &v, nil
	}
}
