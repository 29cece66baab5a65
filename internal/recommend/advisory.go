package recommend

import (
	"github.com/sebasr/rehab-service/internal/models"
)

// advisoryKey identifies one entry in the advisory lookup table
type advisoryKey struct {
	exercise   models.ExerciseType
	difficulty models.Difficulty
	risk       models.RiskLevel
}

// fallbackAdvisory is returned when no table entry matches. An unmatched
// combination is not an error.
const fallbackAdvisory = "Continue with your current progression and monitor your balance daily."

// advisoryTable is a fixed lookup, not a generative process
var advisoryTable = map[advisoryKey]string{
	{models.ExerciseSeatedBalance, models.DifficultyBeginner, models.RiskHigh}:      "Keep sessions short and seated. Have someone nearby while you exercise.",
	{models.ExerciseSeatedBalance, models.DifficultyIntermediate, models.RiskHigh}:  "Stay seated for all exercises this week and avoid uneven surfaces.",
	{models.ExerciseStandingBalance, models.DifficultyBeginner, models.RiskMedium}:  "Practice standing balance near a stable support such as a counter or rail.",
	{models.ExerciseStandingBalance, models.DifficultyIntermediate, models.RiskLow}: "Add eyes-closed holds to your standing balance practice.",
	{models.ExerciseGaitTraining, models.DifficultyIntermediate, models.RiskMedium}: "Focus on even step timing during short indoor walks.",
	{models.ExerciseGaitTraining, models.DifficultyAdvanced, models.RiskLow}:        "Increase your walking distance gradually and vary your walking pace.",
	{models.ExerciseDualTask, models.DifficultyAdvanced, models.RiskLow}:            "Combine walking with a counting task to build divided attention.",
	{models.ExerciseObstacleWalk, models.DifficultyExpert, models.RiskLow}:          "You are ready for outdoor routes with natural obstacles. Keep a steady cadence.",
	{models.ExerciseObstacleWalk, models.DifficultyAdvanced, models.RiskLow}:        "Introduce low obstacles and direction changes into your walking route.",
}

// advisory looks up the next-session advisory text for the combination,
// falling back to a generic progression message when no entry matches
func advisory(exercise models.ExerciseType, difficulty models.Difficulty, risk models.RiskLevel) string {
	if text, ok := advisoryTable[advisoryKey{exercise, difficulty, risk}]; ok {
		return text
	}
	return fallbackAdvisory
}
