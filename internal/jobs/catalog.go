// Package jobs provides read-only access to the job requirements resumes are scored against.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-checker/internal/schemas"
	"github.com/jonathan/resume-checker/internal/types"
)

// ErrJobNotFound is returned when a job ID is not in the catalog.
var ErrJobNotFound = errors.New("job not found")

// Provider resolves job IDs to requirements.
type Provider interface {
	Get(ctx context.Context, id string) (*types.JobRequirements, error)
	List(ctx context.Context) ([]types.JobRequirements, error)
}

// Catalog is an in-memory Provider. It is immutable after construction.
type Catalog struct {
	order []string
	byID  map[string]types.JobRequirements
}

// NewCatalog validates every job and indexes it by ID. Duplicate IDs are rejected.
func NewCatalog(jobs []types.JobRequirements) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(jobs)),
		byID:  make(map[string]types.JobRequirements, len(jobs)),
	}

	for i := range jobs {
		job := jobs[i]
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("invalid job at index %d: %w", i, err)
		}
		if _, exists := c.byID[job.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", job.ID)
		}
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		c.byID[job.ID] = job
		c.order = append(c.order, job.ID)
	}

	return c, nil
}

// Get returns a copy of the job with the given ID, or an error wrapping ErrJobNotFound.
func (c *Catalog) Get(_ context.Context, id string) (*types.JobRequirements, error) {
	job, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
	return &job, nil
}

// List returns copies of all jobs in catalog order.
func (c *Catalog) List(_ context.Context) ([]types.JobRequirements, error) {
	jobs := make([]types.JobRequirements, 0, len(c.order))
	for _, id := range c.order {
		job := c.byID[id]
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Len returns the number of jobs in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// ParseCatalog validates data against the job catalog schema and builds a Catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	if err := schemas.Validate("job_catalog", data); err != nil {
		return nil, fmt.Errorf("job catalog does not match schema: %w", err)
	}

	var jobs []types.JobRequirements
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job catalog JSON: %w", err)
	}

	return NewCatalog(jobs)
}

// LoadCatalogFile reads a JSON job catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job catalog %s: %w", path, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load job catalog %s: %w", path, err)
	}
	return catalog, nil
}
