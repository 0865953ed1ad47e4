package ranking

import (
	"fmt"

	"github.com/jonathan/resume-checker/internal/types"
)

// WeightsError is returned when a weight configuration cannot be used for scoring.
type WeightsError struct {
	Weights types.Weights
	Cause   error
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid score weights (skills=%.3f, experience=%.3f, education=%.3f): %v",
		e.Weights.Skills, e.Weights.Experience, e.Weights.Education, e.Cause)
}

func (e *WeightsError) Unwrap() error {
	return e.Cause
}
