package analytics

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetViewHistory(profileID string, limit, offset int) ([]ViewStat, error) {
	return s.repo.GetViews(profileID, limit, offset)
}

func (s *Service) GetSummary(profileID string) (*Summary, error) {
	return s.repo.GetSummary(profileID)
}
