package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-checker/internal/schemas"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := DefaultCatalog()
	require.Equal(t, 3, catalog.Len())

	all, err := catalog.List(ctx)
	require.NoError(t, err)
	ids := []string{all[0].ID, all[1].ID, all[2].ID}
	assert.Equal(t, []string{"job1", "job2", "job3"}, ids)

	job, err := catalog.Get(ctx, "job2")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", job.Title)
	assert.Equal(t, types.EducationMaster, job.MinEducationLevel)
	assert.Equal(t, 3.0, job.MinYearsExperience)
	assert.Contains(t, job.RequiredSkills, "machine learning")
}

func TestCatalog_GetNotFound(t *testing.T) {
	_, err := DefaultCatalog().Get(context.Background(), "job42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJobNotFound))
	assert.Contains(t, err.Error(), "job42")
}

func TestCatalog_GetTrimsID(t *testing.T) {
	job, err := DefaultCatalog().Get(context.Background(), "  job1 ")
	require.NoError(t, err)
	assert.Equal(t, "job1", job.ID)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	catalog := DefaultCatalog()

	job, err := catalog.Get(ctx, "job1")
	require.NoError(t, err)
	job.RequiredSkills[0] = "cobol"
	job.Title = "changed"

	again, err := catalog.Get(ctx, "job1")
	require.NoError(t, err)
	assert.Equal(t, "python", again.RequiredSkills[0])
	assert.Equal(t, "Senior Software Engineer", again.Title)

	all, err := catalog.List(ctx)
	require.NoError(t, err)
	all[0].RequiredSkills[0] = "cobol"

	again, err = catalog.Get(ctx, "job1")
	require.NoError(t, err)
	assert.Equal(t, "python", again.RequiredSkills[0])
}

func TestNewCatalog_Errors(t *testing.T) {
	_, err := NewCatalog([]types.JobRequirements{
		{ID: "a", Title: "A"},
		{ID: "a", Title: "Again"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate job id")

	_, err = NewCatalog([]types.JobRequirements{{ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job at index 0")

	_, err = NewCatalog([]types.JobRequirements{{ID: "a", Title: "A", MinYearsExperience: -2}})
	assert.Error(t, err)
}

func TestNewCatalog_DoesNotAliasInput(t *testing.T) {
	input := []types.JobRequirements{{ID: "a", Title: "A", RequiredSkills: []string{"go"}}}
	catalog, err := NewCatalog(input)
	require.NoError(t, err)

	input[0].RequiredSkills[0] = "rust"

	job, err := catalog.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, job.RequiredSkills)
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`[
		{"id": "backend", "title": "Backend Engineer", "required_skills": ["Go", "PostgreSQL"], "min_years_experience": 2.5, "min_education": "Bachelor's degree"},
		{"id": "research", "title": "Research Scientist", "required_skills": ["Python"], "min_education": 5},
		{"id": "support", "title": "Support", "required_skills": []}
	]`)

	catalog, err := ParseCatalog(data)
	require.NoError(t, err)
	require.Equal(t, 3, catalog.Len())

	ctx := context.Background()
	backend, err := catalog.Get(ctx, "backend")
	require.NoError(t, err)
	assert.Equal(t, 2.5, backend.MinYearsExperience)
	assert.Equal(t, types.EducationBachelor, backend.MinEducationLevel)

	research, err := catalog.Get(ctx, "research")
	require.NoError(t, err)
	assert.Equal(t, types.EducationPhD, research.MinEducationLevel)

	support, err := catalog.Get(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, types.EducationNone, support.MinEducationLevel)
}

func TestParseCatalog_SchemaViolation(t *testing.T) {
	_, err := ParseCatalog([]byte(`[{"id": "x", "required_skills": "go"}]`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestParseCatalog_Duplicate(t *testing.T) {
	_, err := ParseCatalog([]byte(`[
		{"id": "x", "title": "X", "required_skills": []},
		{"id": "x", "title": "Y", "required_skills": []}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "j", "title": "J", "required_skills": ["sql"]}]`), 0644))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	_, err = LoadCatalogFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job catalog")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0644))
	_, err = LoadCatalogFile(bad)
	assert.Error(t, err)
}

func TestCatalog_ImplementsProvider(t *testing.T) {
	var _ Provider = DefaultCatalog()
}
