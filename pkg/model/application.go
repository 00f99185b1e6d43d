package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus accepts any letter case, the recruiter dashboard
// posts capitalised labels.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

type Application struct {
	ApplicationID uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"job"`
	ApplicantID   uuid.UUID         `json:"applicant"`
	QuizPassed    bool              `json:"quizPassed"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	Job       *Job     `json:"jobDetails,omitempty"`
	Applicant *UserRes `json:"applicantDetails,omitempty"`
}

type ApplyReq struct {
	QuizPassed *bool `json:"quizPassed"`
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationEvent is published whenever an application is created or its
// status changes.
type ApplicationEvent struct {
	ApplicationID uuid.UUID         `json:"applicationId"`
	JobID         uuid.UUID         `json:"jobId"`
	ApplicantID   uuid.UUID         `json:"applicantId"`
	Status        ApplicationStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

func (a *Application) Event() ApplicationEvent {
	return ApplicationEvent{
		ApplicationID: a.ApplicationID,
		JobID:         a.JobID,
		ApplicantID:   a.ApplicantID,
		Status:        a.Status,
		OccurredAt:    a.UpdatedAt,
	}
}
