package repositories

import (
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

// On-disk layout, relative to the store root. One JSON file per logical
// collection or per-entity-per-user; this layout is an external contract.
const (
	usersFile         = "users.json"
	usersDir          = "users"
	notebooksDir      = "user-notebooks"
	notebooksFile     = "notebooks.json"
	followsDir        = "user-follows"
	testPagesDir      = "test_pages"
	questionBankDir   = "question_bank"
	questionsSubdir   = "questions"
	referralsFile     = "referral-offers.json"
	settingsFile      = "platform-settings.json"
	refreshTokensFile = "refresh-tokens.json"
)

// Repositories contains every repository, each backed by the same file store
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	NotebookRepository *NotebookRepository
	FollowRepository   *FollowRepository
	TestRepository     *TestRepository
	QuestionRepository *QuestionRepository
	ReferralRepository *ReferralRepository
	SettingsRepository *SettingsRepository
}

// NewRepositories creates all repositories over one store
func NewRepositories(store *jsonstore.Store) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(store),
		TokenRepository:    NewTokenRepository(store),
		NotebookRepository: NewNotebookRepository(store),
		FollowRepository:   NewFollowRepository(store),
		TestRepository:     NewTestRepository(store),
		QuestionRepository: NewQuestionRepository(store),
		ReferralRepository: NewReferralRepository(store),
		SettingsRepository: NewSettingsRepository(store),
	}
}
