package invites

import "time"

// State is the computed activity status of a profile's public link.
type State string

const (
	StateActive         State = "active"
	StateExpiredByDate  State = "expired_by_date"
	StateExpiredByViews State = "expired_by_views"
	StateDeleted        State = "deleted"
)

func (s State) Active() bool {
	return s == StateActive
}

// EvaluateState computes the lifecycle state of a profile snapshot.
// DELETED is terminal and supersedes any expiry configuration. Evaluation
// is side-effect free; admitting a view against a view_count limit is the
// store's job (Repository.AdmitView), so the check and the increment stay
// a single atomic read-modify-write.
func EvaluateState(p *Profile, now time.Time) State {
	if p.IsDeleted {
		return StateDeleted
	}

	switch p.LinkExpiryType {
	case ExpiryDate:
		if p.LinkExpiryValue != nil && now.Unix() >= *p.LinkExpiryValue {
			return StateExpiredByDate
		}
	case ExpiryViewCount:
		if p.LinkExpiryValue != nil && p.ViewCount >= *p.LinkExpiryValue {
			return StateExpiredByViews
		}
	}

	return StateActive
}
