package model

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuizLength is the number of screening questions every job carries.
const QuizLength = 3

const (
	MsgJobFieldsMissing = "Missing required fields or invalid quiz data."
	MsgQuizInvalid      = "Each quiz must have a question, at least 2 options, and a correct answer."
	MsgNegativeNumbers  = "Salary and position must not be negative."
	MsgPositionInvalid  = "Position must be a whole number of openings."
)

// QuizQuestion is one single-choice screening question.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
}

// CorrectIndex returns the stored answer index, or -1 when unset.
func (q QuizQuestion) CorrectIndex() int {
	if q.CorrectAnswerIndex == nil {
		return -1
	}
	return *q.CorrectAnswerIndex
}

type Job struct {
	JobID           uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Requirements    []string       `json:"requirements"`
	Salary          float64        `json:"salary"`
	Location        string         `json:"location"`
	JobType         string         `json:"jobType"`
	ExperienceLevel string         `json:"experienceLevel"`
	Position        int            `json:"position"`
	CompanyID       uuid.UUID      `json:"companyId"`
	Company         *Company       `json:"company,omitempty"`
	CreatedBy       uuid.UUID      `json:"created_by"`
	Quiz            []QuizQuestion `json:"quiz"`
	Applications    []Application  `json:"applications"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ValidationMode selects the required-field set of JobReq.Validate.
type ValidationMode int

const (
	ModeCreate ValidationMode = iota
	ModeUpdate
)

// JobReq is the body of both the post and the update job endpoints. On
// update, nil optional fields keep their stored values.
type JobReq struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Requirements StringList     `json:"requirements"`
	Salary       *FlexNumber    `json:"salary"`
	Location     *string        `json:"location"`
	JobType      *string        `json:"jobType"`
	Experience   *string        `json:"experience"`
	Position     *FlexNumber    `json:"position"`
	CompanyID    string         `json:"companyId"`
	Quiz         []QuizQuestion `json:"quiz"`
}

// Validate checks the request for the given mode. Create requires every
// field; update requires title, description, requirements, companyId and the
// quiz. Quiz shape rules are the same for both.
func (r *JobReq) Validate(mode ValidationMode) error {
	if blank(r.Title) || blank(r.Description) || len(r.Requirements) == 0 ||
		blank(r.CompanyID) || len(r.Quiz) != QuizLength {
		return &ValidationError{Msg: MsgJobFieldsMissing}
	}

	if mode == ModeCreate {
		if r.Salary == nil || *r.Salary == 0 ||
			r.Location == nil || blank(*r.Location) ||
			r.JobType == nil || blank(*r.JobType) ||
			r.Experience == nil || blank(*r.Experience) ||
			r.Position == nil || *r.Position == 0 {
			return &ValidationError{Msg: MsgJobFieldsMissing}
		}
	}

	if (r.Salary != nil && *r.Salary < 0) || (r.Position != nil && *r.Position < 0) {
		return &ValidationError{Msg: MsgNegativeNumbers}
	}
	if r.Position != nil {
		p := float64(*r.Position)
		if p < 1 || p > math.MaxInt32 || p != math.Trunc(p) {
			return &ValidationError{Msg: MsgPositionInvalid}
		}
	}

	return ValidateQuiz(r.Quiz)
}

// ValidateQuiz enforces the stored-job invariant: exactly QuizLength
// questions, each with text, at least two non-empty options and an answer
// index inside the options.
func ValidateQuiz(quiz []QuizQuestion) error {
	if len(quiz) != QuizLength {
		return &ValidationError{Msg: MsgJobFieldsMissing}
	}
	for _, q := range quiz {
		if blank(q.Question) || len(q.Options) < 2 {
			return &ValidationError{Msg: MsgQuizInvalid}
		}
		for _, opt := range q.Options {
			if blank(opt) {
				return &ValidationError{Msg: MsgQuizInvalid}
			}
		}
		if idx := q.CorrectIndex(); idx < 0 || idx >= len(q.Options) {
			return &ValidationError{Msg: MsgQuizInvalid}
		}
	}
	return nil
}

// ApplyTo copies the request onto job. Optional fields are only copied when
// present, so a create should start from a zero Job.
func (r *JobReq) ApplyTo(job *Job, companyID uuid.UUID) {
	job.Title = strings.TrimSpace(r.Title)
	job.Description = strings.TrimSpace(r.Description)
	job.Requirements = append([]string(nil), r.Requirements...)
	job.CompanyID = companyID
	job.Quiz = r.Quiz

	if r.Salary != nil {
		job.Salary = float64(*r.Salary)
	}
	if r.Location != nil {
		job.Location = strings.TrimSpace(*r.Location)
	}
	if r.JobType != nil {
		job.JobType = strings.TrimSpace(*r.JobType)
	}
	if r.Experience != nil {
		job.ExperienceLevel = strings.TrimSpace(*r.Experience)
	}
	if r.Position != nil {
		job.Position = int(*r.Position)
	}
}

type ListJobsQuery struct {
	Keyword string `form:"keyword"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
