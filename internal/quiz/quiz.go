// Package quiz runs the screening quiz a student takes before applying to a
// job. Scoring happens client side; the server only sees quizPassed=true.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/pkg/model"
)

// PassThreshold is the number of correct answers needed to apply.
const PassThreshold = 2

var (
	ErrNotStartable      = errors.New("quiz cannot be started for this job")
	ErrNotInProgress     = errors.New("quiz is not in progress")
	ErrIncompleteAnswers = errors.New("Please answer all questions.")
	ErrQuizFailed        = errors.New("You need to answer at least 2 correctly to apply.")
	ErrAnswerOutOfRange  = errors.New("answer out of range")
)

type State int

const (
	StateIdle State = iota
	StateInProgress
	StateScoring
	StateGate
	StateApplied
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in_progress"
	case StateScoring:
		return "scoring"
	case StateGate:
		return "gate"
	case StateApplied:
		return "applied"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Applier submits the application once the gate is passed.
type Applier interface {
	Apply(ctx context.Context, jobID uuid.UUID, quizPassed bool) error
}

// Refresher reloads the job after a successful application so the
// applications list includes the new entry.
type Refresher interface {
	Refresh(ctx context.Context, jobID uuid.UUID) error
}

// Score counts answers equal to the stored correct index. Unanswered (-1)
// and missing answers never count.
func Score(questions []model.QuizQuestion, answers []int) int {
	correct := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if idx := q.CorrectIndex(); idx >= 0 && answers[i] == idx {
			correct++
		}
	}
	return correct
}

func Passed(correct int) bool {
	return correct >= PassThreshold
}

type Result struct {
	Correct int
	Passed  bool
	// RefreshErr is set when the application went through but the job
	// could not be reloaded.
	RefreshErr error
}

// Session is the quiz flow of one job detail view. It is safe for
// concurrent use.
type Session struct {
	mu        sync.Mutex
	job       *model.Job
	applied   bool
	state     State
	answers   []int
	applier   Applier
	refresher Refresher

	// OnTransition, when set, is called with the old and new state on
	// every change. It runs with the session lock held.
	OnTransition func(from, to State)
}

func NewSession(job *model.Job, applied bool, applier Applier, refresher Refresher) *Session {
	s := &Session{applier: applier, refresher: refresher}
	s.reset(job, applied)
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CanStart reports whether the viewer may take the quiz: not yet applied and
// the job carries a full quiz.
func (s *Session) CanStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canStart()
}

func (s *Session) canStart() bool {
	return s.state == StateIdle && !s.applied && s.job != nil && len(s.job.Quiz) == model.QuizLength
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canStart() {
		return ErrNotStartable
	}
	s.answers = unanswered(len(s.job.Quiz))
	s.transition(StateInProgress)
	return nil
}

// Select records option as the answer to question, replacing any earlier
// choice.
func (s *Session) Select(question, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if question < 0 || question >= len(s.job.Quiz) {
		return fmt.Errorf("question %d: %w", question, ErrAnswerOutOfRange)
	}
	if option < 0 || option >= len(s.job.Quiz[question].Options) {
		return fmt.Errorf("option %d: %w", option, ErrAnswerOutOfRange)
	}
	s.answers[question] = option
	return nil
}

// Answers returns a copy of the current selections; -1 means unanswered.
func (s *Session) Answers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.answers...)
}

// Submit scores the answers and, when the gate is passed, applies with
// quizPassed=true. A failed gate never reaches the applier.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return Result{}, ErrNotInProgress
	}

	s.transition(StateScoring)
	for _, a := range s.answers {
		if a < 0 {
			s.transition(StateInProgress)
			return Result{}, ErrIncompleteAnswers
		}
	}

	res := Result{Correct: Score(s.job.Quiz, s.answers)}
	s.transition(StateGate)
	if res.Passed = Passed(res.Correct); !res.Passed {
		s.transition(StateInProgress)
		return res, ErrQuizFailed
	}

	if err := s.applier.Apply(ctx, s.job.JobID, true); err != nil {
		s.transition(StateInProgress)
		return res, err
	}
	s.applied = true
	s.transition(StateApplied)

	if s.refresher != nil {
		res.RefreshErr = s.refresher.Refresh(ctx, s.job.JobID)
	}
	return res, nil
}

// Reset switches the session to another job and drops all answers.
func (s *Session) Reset(job *model.Job, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(job, applied)
}

func (s *Session) reset(job *model.Job, applied bool) {
	s.job = job
	s.applied = applied
	s.answers = nil
	if applied {
		s.transition(StateApplied)
		return
	}
	s.transition(StateIdle)
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if s.OnTransition != nil && from != to {
		s.OnTransition(from, to)
	}
}

func unanswered(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	return out
}
