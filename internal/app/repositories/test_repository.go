package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/helpers"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// testTypeDirs is the fixed lookup order for code-based retrieval. There is
// no secondary index; GetByCode probes each directory until a {code}.json
// file turns up.
var testTypeDirs = []models.TestType{
	models.TestTypeChapterwise,
	models.TestTypeFullLength,
}

// TestRepository handles generated test definitions, stored one file per
// test under test_pages/{chapterwise|full_length}/{code}.json
type TestRepository struct {
	store *jsonstore.Store
}

// NewTestRepository creates a new TestRepository
func NewTestRepository(store *jsonstore.Store) *TestRepository {
	return &TestRepository{store: store}
}

func (r *TestRepository) path(testType models.TestType, code string) string {
	return r.store.Path(testPagesDir, string(testType), code+".json")
}

// CreateTest persists a new test definition, generating its code and
// timestamps. Codes are retried on the unlikely collision with an existing
// file in either directory.
func (r *TestRepository) CreateTest(ctx context.Context, test *models.GeneratedTest) error {
	var code string
	for i := 0; ; i++ {
		c, err := helpers.NewShortCode(8)
		if err != nil {
			return fmt.Errorf("error generating test code: %w", err)
		}
		if !r.codeExists(c) {
			code = c
			break
		}
		if i >= 4 {
			return apperrors.ErrTestCodeExists
		}
	}

	now := time.Now()
	test.Code = code
	test.CreatedAt = now
	test.UpdatedAt = now
	if test.TestType == models.TestTypeFullLength && test.SubjectQuestions == nil {
		test.SubjectQuestions = map[string][]models.TestQuestion{}
	}
	if test.TestType == models.TestTypeChapterwise && test.Questions == nil {
		test.Questions = []models.TestQuestion{}
	}

	if err := jsonstore.Write(r.store, r.path(test.TestType, code), test); err != nil {
		return fmt.Errorf("error creating test: %w", err)
	}
	return nil
}

func (r *TestRepository) codeExists(code string) bool {
	for _, t := range testTypeDirs {
		if r.store.Exists(r.path(t, code)) {
			return true
		}
	}
	return false
}

// GetTestByCode locates a test by code, probing the known directories in
// fixed order. The test's type is inferred from the directory it was found
// in, even when the stored JSON omits the field.
func (r *TestRepository) GetTestByCode(ctx context.Context, code string) (*models.GeneratedTest, error) {
	for _, testType := range testTypeDirs {
		path := r.path(testType, code)
		var test models.GeneratedTest
		if err := jsonstore.Load(r.store, path, &test); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn().Str("path", path).Err(err).Msg("Test file failed to parse, treating as absent")
			}
			continue
		}
		repairTest(&test, code, testType)
		return &test, nil
	}
	return nil, apperrors.ErrTestNotFound
}

// repairTest back-fills fields omitted by older records
func repairTest(test *models.GeneratedTest, code string, testType models.TestType) {
	if test.Code == "" {
		test.Code = code
	}
	if test.TestType == "" {
		test.TestType = testType
	}
	if test.TestType == models.TestTypeChapterwise && test.Questions == nil {
		test.Questions = []models.TestQuestion{}
	}
	if test.TestType == models.TestTypeFullLength && test.SubjectQuestions == nil {
		test.SubjectQuestions = map[string][]models.TestQuestion{}
	}
}

// UpdateTestQuestions replaces a test's question content. Code, subject and
// type are immutable; only question lists change.
func (r *TestRepository) UpdateTestQuestions(ctx context.Context, code string, questions []models.TestQuestion, subjectQuestions map[string][]models.TestQuestion) (*models.GeneratedTest, error) {
	test, err := r.GetTestByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	path := r.path(test.TestType, code)
	updated, err := jsonstore.Update(r.store, path, models.GeneratedTest{}, func(current models.GeneratedTest) (models.GeneratedTest, error) {
		repairTest(&current, code, test.TestType)
		switch current.TestType {
		case models.TestTypeFullLength:
			if len(questions) > 0 {
				return current, shapeMismatch(current.TestType, "subjectQuestions")
			}
			if subjectQuestions != nil {
				current.SubjectQuestions = subjectQuestions
			}
		default:
			if len(subjectQuestions) > 0 {
				return current, shapeMismatch(current.TestType, "questions")
			}
			if questions != nil {
				current.Questions = questions
			}
		}
		current.UpdatedAt = time.Now()
		return current, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrImmutableTestData) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating test: %w", err)
	}
	return &updated, nil
}

// shapeMismatch reports an update that carries the question shape of the
// other test type, which would amount to changing the type in place
func shapeMismatch(testType models.TestType, wanted string) error {
	return apperrors.NewCustomError(apperrors.ErrImmutableTestData,
		fmt.Sprintf("%s tests take %s", testType, wanted)).
		WithDetails(map[string]interface{}{"testType": string(testType)})
}

// DeleteTest removes a test definition
func (r *TestRepository) DeleteTest(ctx context.Context, code string) error {
	for _, testType := range testTypeDirs {
		path := r.path(testType, code)
		if r.store.Exists(path) {
			return r.store.Remove(path)
		}
	}
	return apperrors.ErrTestNotFound
}

// ListAllTests enumerates every test in every type directory, sorted by
// creation time descending. Files that fail to parse are logged and skipped
// so one corrupt record cannot take down the whole listing.
func (r *TestRepository) ListAllTests(ctx context.Context) ([]models.GeneratedTest, error) {
	var tests []models.GeneratedTest
	for _, testType := range testTypeDirs {
		dir := r.store.Path(testPagesDir, string(testType))
		files, err := r.store.ListFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("error listing tests: %w", err)
		}
		for _, name := range files {
			if filepath.Ext(name) != ".json" {
				continue
			}
			code := strings.TrimSuffix(name, ".json")
			path := r.path(testType, code)
			var test models.GeneratedTest
			if err := jsonstore.Load(r.store, path, &test); err != nil {
				logger.Warn().Str("path", path).Err(err).Msg("Skipping unparsable test file in listing")
				continue
			}
			repairTest(&test, code, testType)
			tests = append(tests, test)
		}
	}

	sort.Slice(tests, func(i, j int) bool {
		return tests[i].CreatedAt.After(tests[j].CreatedAt)
	})
	return tests, nil
}
