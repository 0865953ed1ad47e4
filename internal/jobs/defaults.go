package jobs

import "github.com/jonathan/resume-checker/internal/types"

var defaultJobs = []types.JobRequirements{
	{
		ID:                 "job1",
		Title:              "Senior Software Engineer",
		RequiredSkills:     []string{"python", "javascript", "react", "aws", "docker", "kubernetes"},
		MinYearsExperience: 5,
		MinEducationLevel:  types.EducationBachelor,
	},
	{
		ID:                 "job2",
		Title:              "Data Scientist",
		RequiredSkills:     []string{"python", "sql", "machine learning", "pandas", "pytorch", "statistics"},
		MinYearsExperience: 3,
		MinEducationLevel:  types.EducationMaster,
	},
	{
		ID:                 "job3",
		Title:              "Product Manager",
		RequiredSkills:     []string{"agile", "jira", "user stories", "roadmap planning", "stakeholder management"},
		MinYearsExperience: 4,
		MinEducationLevel:  types.EducationBachelor,
	},
}

// DefaultCatalog returns the built-in demo jobs.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultJobs)
	if err != nil {
		panic("jobs: invalid default catalog: " + err.Error())
	}
	return c
}
