package app

// Store bundles every collection the service persists. Infrastructure
// implementations (memory, postgres) satisfy the whole set; services
// depend only on the slice they use.
type Store interface {
	QuestionRepository
	ResultRepository
	AccessCodeRepository
	SettingRepository
	Resetter
}
