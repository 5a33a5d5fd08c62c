package quiz

import (
	"errors"
	"math"

	"github.com/trezcool/elimu/core"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Achievements unlockable by a finished session. Persisting badges is the
// caller's concern; the engine only names them.
const (
	AchievementPerfectScore = "perfect_score"
	AchievementHighScore    = "high_score"
	AchievementQuickFinish  = "quick_finish"
)

var (
	AllDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

	// errors
	ErrUnknownDifficulty    = errors.New("unknown difficulty")
	ErrInvalidTimeRemaining = errors.New("time remaining cannot be negative")
	ErrInvalidSession       = errors.New("invalid session totals")
)

// SessionSummary aggregates a finished quiz session.
type SessionSummary struct {
	CorrectCount         int      `json:"correct_count"`
	TotalQuestions       int      `json:"total_questions"`
	AccuracyPercent      int      `json:"accuracy_percent"`
	BonusXP              int      `json:"bonus_xp"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
}

// Scorer applies the quiz scoring constants. Construct one per
// application from config and inject it; widgets must not ship their own
// copies of the constants.
type Scorer struct {
	conf core.QuizConfig
}

func NewScorer(conf core.QuizConfig) *Scorer {
	return &Scorer{conf: conf}
}

func (s *Scorer) baseXP(difficulty string) (int, error) {
	switch difficulty {
	case DifficultyEasy:
		return s.conf.EasyXP, nil
	case DifficultyMedium:
		return s.conf.MediumXP, nil
	case DifficultyHard:
		return s.conf.HardXP, nil
	}
	return 0, ErrUnknownDifficulty
}

// ScoreQuestion computes XP for one correct answer: the difficulty base,
// a bonus for unused countdown ticks, and a flat streak bonus once the
// run of consecutive correct answers (this one included) reaches the
// threshold. currentStreak is the run length before this answer.
// Incorrect answers and timeouts award 0 and never reach this function.
func (s *Scorer) ScoreQuestion(difficulty string, timeRemaining, currentStreak int) (int, error) {
	if timeRemaining < 0 {
		return 0, ErrInvalidTimeRemaining
	}
	xp, err := s.baseXP(difficulty)
	if err != nil {
		return 0, err
	}

	xp += timeRemaining / s.conf.TimeBonusDivisor

	if currentStreak+1 >= s.conf.StreakThreshold {
		xp += s.conf.StreakBonusXP
	}
	return xp, nil
}

// FinalizeSession computes the end-of-session aggregates exactly once,
// after the last question: accuracy, the one-time bonus XP, and the
// achievement names unlocked. Never call it for an abandoned session.
func (s *Scorer) FinalizeSession(correctCount, totalQuestions, sessionDurationSeconds int) (SessionSummary, error) {
	if totalQuestions <= 0 || correctCount < 0 || correctCount > totalQuestions {
		return SessionSummary{}, ErrInvalidSession
	}

	summary := SessionSummary{
		CorrectCount:    correctCount,
		TotalQuestions:  totalQuestions,
		AccuracyPercent: int(math.Round(float64(correctCount) / float64(totalQuestions) * 100)),
	}

	switch {
	case summary.AccuracyPercent == 100:
		summary.BonusXP += s.conf.PerfectBonusXP
		summary.AchievementsUnlocked = append(summary.AchievementsUnlocked, AchievementPerfectScore)
	case summary.AccuracyPercent >= s.conf.HighScorePercent:
		summary.BonusXP += s.conf.HighScoreBonusXP
		summary.AchievementsUnlocked = append(summary.AchievementsUnlocked, AchievementHighScore)
	}

	// finished in under half the allotted time
	if sessionDurationSeconds >= 0 && sessionDurationSeconds < totalQuestions*s.conf.QuestionCountdown/2 {
		summary.AchievementsUnlocked = append(summary.AchievementsUnlocked, AchievementQuickFinish)
	}
	return summary, nil
}
