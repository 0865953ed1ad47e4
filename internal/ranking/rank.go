package ranking

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-checker/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scorer computes ScoreRecords. It holds no mutable state, so one Scorer may
// be shared across goroutines.
type Scorer struct {
	weights types.Weights
	now     func() time.Time
	logger  *zap.Logger
}

// NewScorer creates a Scorer with default weights. now supplies the current
// time for open-ended ranges ("present"); nil means time.Now.
func NewScorer(weights types.Weights, now func() time.Time, logger *zap.Logger) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, &WeightsError{Weights: weights, Cause: err}
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{weights: weights, now: now, logger: logger}, nil
}

// Weights returns the scorer's default weights.
func (s *Scorer) Weights() types.Weights {
	return s.weights
}

func (s *Scorer) resolveWeights(weights *types.Weights) (types.Weights, error) {
	if weights == nil {
		return s.weights, nil
	}
	if err := weights.Validate(); err != nil {
		return types.Weights{}, &WeightsError{Weights: *weights, Cause: err}
	}
	return *weights, nil
}

// ComputeScore scores a resume against one job. A nil weights pointer uses the
// scorer's defaults; invalid weights return a *WeightsError.
func (s *Scorer) ComputeScore(resume *types.ResumeRecord, job *types.JobRequirements, weights *types.Weights) (*types.ScoreRecord, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is nil")
	}
	if job == nil {
		return nil, fmt.Errorf("job requirements are nil")
	}

	w, err := s.resolveWeights(weights)
	if err != nil {
		return nil, err
	}

	return s.score(resume, job, w), nil
}

func (s *Scorer) score(resume *types.ResumeRecord, job *types.JobRequirements, w types.Weights) *types.ScoreRecord {
	matching, missing, extra := skillSets(resume.Skills, job.RequiredSkills)
	skillScore := computeSkillMatchScore(matching, missing)

	totalYears := totalYearsExperience(resume.Experience, s.now())
	experienceScore := computeExperienceScore(totalYears, job.MinYearsExperience)

	level := resume.HighestEducationLevel()
	educationScore := computeEducationScore(level, job.MinEducationLevel)

	// Calculate weighted overall score
	overall := (w.Skills * skillScore) +
		(w.Experience * experienceScore) +
		(w.Education * educationScore)

	record := &types.ScoreRecord{
		JobID:                   job.ID,
		OverallScore:            clamp(overall, 0, 1),
		SkillMatchScore:         skillScore,
		ExperienceScore:         experienceScore,
		EducationScore:          educationScore,
		MatchingSkills:          matching,
		MissingSkills:           missing,
		ExtraSkills:             extra,
		TotalYearsExperience:    totalYears,
		CandidateEducationLevel: level,
	}

	s.logger.Debug("computed score",
		zap.String("job_id", job.ID),
		zap.Float64("overall", record.OverallScore),
		zap.Float64("skills", skillScore),
		zap.Float64("experience", experienceScore),
		zap.Float64("education", educationScore),
		zap.Float64("total_years", totalYears),
		zap.Stringer("education_level", level),
	)

	return record
}

// RankJobs scores a resume against every job concurrently and returns the
// records sorted by overall score (descending), ties broken by job ID.
func (s *Scorer) RankJobs(ctx context.Context, resume *types.ResumeRecord, jobs []types.JobRequirements, weights *types.Weights) ([]types.ScoreRecord, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is nil")
	}

	w, err := s.resolveWeights(weights)
	if err != nil {
		return nil, err
	}

	records := make([]types.ScoreRecord, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("ranking cancelled before job %s: %w", jobs[i].ID, err)
			}
			records[i] = *s.score(resume, &jobs[i], w)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sort by overall score (descending)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].OverallScore != records[j].OverallScore {
			return records[i].OverallScore > records[j].OverallScore
		}
		return records[i].JobID < records[j].JobID
	})

	return records, nil
}

// sortSkills orders skills case-insensitively, falling back to byte order.
func sortSkills(skills []string) {
	slices.SortFunc(skills, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
