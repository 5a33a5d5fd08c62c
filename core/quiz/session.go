package quiz

import (
	"errors"
	"sync"
)

var (
	// errors
	ErrNoQuestions       = errors.New("session needs at least one question")
	ErrQuestionPending   = errors.New("current question not resolved yet")
	ErrQuestionClosed    = errors.New("question already resolved")
	ErrSessionFinished   = errors.New("session already finished")
	ErrSessionIncomplete = errors.New("session has unresolved questions")
)

// QuestionState is the per-question lifecycle:
// Unanswered -> Answered(correct|incorrect) | TimedOut -> Explained -> next.
type QuestionState int

const (
	Unanswered QuestionState = iota
	AnsweredCorrect
	AnsweredIncorrect
	TimedOut
	Explained
)

// QuestionResult records how one question ended.
type QuestionResult struct {
	Index         int           `json:"index"`
	Difficulty    string        `json:"difficulty"`
	State         QuestionState `json:"state"`
	TimeRemaining int           `json:"time_remaining"`
	XPAwarded     int           `json:"xp_awarded"`
}

// SessionResult is what a session yields, finished or abandoned.
type SessionResult struct {
	Questions  []QuestionResult `json:"questions"`
	QuestionXP int              `json:"question_xp"`
	Summary    SessionSummary   `json:"summary"`
	Completed  bool             `json:"completed"`
}

// Session runs one finite quiz of N questions, each under an independent
// countdown of conf.QuestionCountdown discrete ticks. It is event-driven:
// the owner of the tick source calls Tick, the UI calls the rest. All
// methods are safe for a tick source firing from another goroutine.
type Session struct {
	mu     sync.Mutex
	scorer *Scorer
	total  int

	index     int  // current question, 0-based
	started   bool // current question armed
	state     QuestionState
	remaining int // countdown ticks left on the current question
	streak    int // consecutive correct answers, resets on miss/timeout
	correct   int
	xp        int
	finished  bool
	results   []QuestionResult
	ticks     int // total ticks consumed, for the duration aggregate
}

func NewSession(scorer *Scorer, totalQuestions int) (*Session, error) {
	if totalQuestions <= 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		scorer:  scorer,
		total:   totalQuestions,
		results: make([]QuestionResult, 0, totalQuestions),
	}, nil
}

// StartQuestion arms the next question's countdown and starts awaiting an
// answer. The previous question must have been resolved.
func (s *Session) StartQuestion(difficulty string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrSessionFinished
	}
	if s.started && s.state == Unanswered {
		return ErrQuestionPending
	}
	if len(s.results) >= s.total {
		return ErrSessionFinished
	}
	if _, err := s.scorer.baseXP(difficulty); err != nil {
		return err
	}

	s.index = len(s.results)
	s.results = append(s.results, QuestionResult{Index: s.index, Difficulty: difficulty})
	s.started = true
	s.state = Unanswered
	s.remaining = s.scorer.conf.QuestionCountdown
	return nil
}

// Tick consumes one countdown tick. It reports whether the countdown is
// still live; once the question is resolved (answered, explained or timed
// out) it is a no-op returning false, so a tick source that missed its
// cancellation cannot double-fire a timeout.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.state != Unanswered || s.remaining <= 0 {
		return false
	}
	s.remaining--
	s.ticks++
	if s.remaining > 0 {
		return true
	}

	// countdown expired before an answer: 0 XP, streak broken
	s.state = TimedOut
	s.streak = 0
	s.results[s.index].State = TimedOut
	return false
}

// Answer scores the submitted answer. Answers arriving after the timeout
// already fired are rejected: no double-scoring for the same question.
func (s *Session) Answer(isCorrect bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return 0, ErrSessionFinished
	}
	if !s.started || s.state != Unanswered {
		return 0, ErrQuestionClosed
	}

	result := &s.results[s.index]
	result.TimeRemaining = s.remaining

	if !isCorrect {
		s.state = AnsweredIncorrect
		result.State = AnsweredIncorrect
		s.streak = 0
		return 0, nil
	}

	xp, err := s.scorer.ScoreQuestion(result.Difficulty, s.remaining, s.streak)
	if err != nil {
		return 0, err
	}
	s.state = AnsweredCorrect
	result.State = AnsweredCorrect
	result.XPAwarded = xp
	s.streak++
	s.correct++
	s.xp += xp
	return xp, nil
}

// ShowExplanation moves a resolved question to the Explained state; the
// countdown stays stopped while the explanation is on screen.
func (s *Session) ShowExplanation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrSessionFinished
	}
	if !s.started || s.state == Unanswered {
		return ErrQuestionPending
	}
	s.state = Explained
	s.results[s.index].State = Explained
	return nil
}

// Finish computes the end-of-session aggregates, exactly once, after the
// last question was resolved.
func (s *Session) Finish() (SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return SessionResult{}, ErrSessionFinished
	}
	if len(s.results) < s.total || (s.started && s.state == Unanswered) {
		return SessionResult{}, ErrSessionIncomplete
	}

	summary, err := s.scorer.FinalizeSession(s.correct, s.total, s.ticks)
	if err != nil {
		return SessionResult{}, err
	}
	s.finished = true
	return SessionResult{
		Questions:  append([]QuestionResult{}, s.results...),
		QuestionXP: s.xp,
		Summary:    summary,
		Completed:  true,
	}, nil
}

// Abandon ends the session early: per-question XP already awarded is
// retained, aggregates are never computed.
func (s *Session) Abandon() SessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = true
	return SessionResult{
		Questions:  append([]QuestionResult{}, s.results...),
		QuestionXP: s.xp,
		Completed:  false,
	}
}
