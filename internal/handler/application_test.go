package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/internal/cache"
	"github.com/siddharth180703/NextHire/pkg/model"
)

func TestApply_RequiresPassedQuiz(t *testing.T) {
	e := newEnv()
	recruiter, company := e.seedRecruiter(t)
	student := e.seedStudent(t)
	job := e.seedJob(t, recruiter, company, "Title")
	target := "/application/apply/" + job.JobID.String()

	for _, b := range []any{map[string]any{"quizPassed": false}, map[string]any{}, nil} {
		w, body := e.do(t, http.MethodPost, "/application/apply/:id", target, student, b, e.h.Apply)
		wantStatus(t, w, body, http.StatusBadRequest, "You must pass the quiz to apply.")
	}
	if len(e.store.apps) != 0 {
		t.Error("no application should be stored")
	}
}

func TestApply_CreatesOnceAndPublishes(t *testing.T) {
	e := newEnv()
	recruiter, company := e.seedRecruiter(t)
	student := e.seedStudent(t)
	job := e.seedJob(t, recruiter, company, "Title")
	target := "/application/apply/" + job.JobID.String()
	passed := map[string]any{"quizPassed": true}

	w, body := e.do(t, http.MethodPost, "/application/apply/:id", target, student, passed, e.h.Apply)
	wantStatus(t, w, body, http.StatusCreated, "Job applied successfully.")

	if len(e.events.sent) != 1 || e.events.sent[0].channel != cache.ChannelApplicationSubmitted {
		t.Fatalf("events = %+v, want one %s", e.events.sent, cache.ChannelApplicationSubmitted)
	}
	ev, ok := e.events.sent[0].event.(model.ApplicationEvent)
	if !ok || ev.JobID != job.JobID || ev.ApplicantID != student.UserID || ev.Status != model.ApplicationStatusPending {
		t.Errorf("event = %+v", e.events.sent[0].event)
	}

	w, body = e.do(t, http.MethodPost, "/application/apply/:id", target, student, passed, e.h.Apply)
	wantStatus(t, w, body, http.StatusBadRequest, "You have already applied for this job")
	if len(e.store.apps) != 1 {
		t.Errorf("applications = %d, want 1", len(e.store.apps))
	}
}

func TestApply_UnknownJob(t *testing.T) {
	e := newEnv()
	student := e.seedStudent(t)

	w, body := e.do(t, http.MethodPost, "/application/apply/:id", "/application/apply/"+uuid.NewString(),
		student, map[string]any{"quizPassed": true}, e.h.Apply)
	wantStatus(t, w, body, http.StatusNotFound, "Job not found")
}

func TestGetAppliedJobs(t *testing.T) {
	e := newEnv()
	recruiter, company := e.seedRecruiter(t)
	student := e.seedStudent(t)
	job := e.seedJob(t, recruiter, company, "Title")
	e.do(t, http.MethodPost, "/application/apply/:id", "/application/apply/"+job.JobID.String(),
		student, map[string]any{"quizPassed": true}, e.h.Apply)

	w, body := e.do(t, http.MethodGet, "/application/get", "/application/get", student, nil, e.h.GetAppliedJobs)
	wantStatus(t, w, body, http.StatusOK, "")
	apps, _ := body["applications"].([]any)
	if len(apps) != 1 {
		t.Fatalf("applications = %v, want 1", apps)
	}
	details, _ := apps[0].(map[string]any)["jobDetails"].(map[string]any)
	if details == nil || details["title"] != "Title" {
		t.Errorf("jobDetails = %v", details)
	}
}

func TestGetApplicants_OwnerOnly(t *testing.T) {
	e := newEnv()
	recruiter, company := e.seedRecruiter(t)
	other, _ := e.seedRecruiter(t)
	student := e.seedStudent(t)
	job := e.seedJob(t, recruiter, company, "Title")
	e.do(t, http.MethodPost, "/application/apply/:id", "/application/apply/"+job.JobID.String(),
		student, map[string]any{"quizPassed": true}, e.h.Apply)

	target := "/application/" + job.JobID.String() + "/applicants"
	w, body := e.do(t, http.MethodGet, "/application/:id/applicants", target, recruiter, nil, e.h.GetApplicants)
	wantStatus(t, w, body, http.StatusOK, "")
	got, _ := body["job"].(map[string]any)
	apps, _ := got["applications"].([]any)
	if len(apps) != 1 {
		t.Fatalf("applications = %v, want 1", apps)
	}
	applicant, _ := apps[0].(map[string]any)["applicantDetails"].(map[string]any)
	if applicant == nil || applicant["fullname"] != student.Fullname {
		t.Errorf("applicantDetails = %v", applicant)
	}

	w, body = e.do(t, http.MethodGet, "/application/:id/applicants", target, other, nil, e.h.GetApplicants)
	wantStatus(t, w, body, http.StatusNotFound, "Job not found")
}

func TestUpdateStatus(t *testing.T) {
	e := newEnv()
	recruiter, company := e.seedRecruiter(t)
	student := e.seedStudent(t)
	job := e.seedJob(t, recruiter, company, "Title")
	_, applied := e.do(t, http.MethodPost, "/application/apply/:id", "/application/apply/"+job.JobID.String(),
		student, map[string]any{"quizPassed": true}, e.h.Apply)
	appID := applied["application"].(map[string]any)["id"].(string)
	target := "/application/status/" + appID + "/update"
	route := "/application/status/:id/update"

	w, body := e.do(t, http.MethodPost, route, target, recruiter, map[string]any{"status": "hired"}, e.h.UpdateStatus)
	wantStatus(t, w, body, http.StatusBadRequest, "Invalid status.")

	w, body = e.do(t, http.MethodPost, route, target, recruiter, map[string]any{"status": "Accepted"}, e.h.UpdateStatus)
	wantStatus(t, w, body, http.StatusOK, "Status updated successfully.")
	if got := e.store.apps[uuid.MustParse(appID)].Status; got != model.ApplicationStatusAccepted {
		t.Errorf("status = %q, want accepted", got)
	}
	last := e.events.sent[len(e.events.sent)-1]
	if last.channel != cache.ChannelApplicationStatus {
		t.Errorf("last event channel = %s, want %s", last.channel, cache.ChannelApplicationStatus)
	}

	w, body = e.do(t, http.MethodPost, route, "/application/status/"+uuid.NewString()+"/update",
		recruiter, map[string]any{"status": "rejected"}, e.h.UpdateStatus)
	wantStatus(t, w, body, http.StatusNotFound, "Application not found.")
}
