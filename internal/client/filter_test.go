package client_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/internal/client"
	"github.com/siddharth180703/NextHire/pkg/model"
)

func sampleJobs() []model.Job {
	return []model.Job{
		{Title: "Frontend Developer", Description: "React", Location: "Pune", Salary: 12},
		{Title: "Backend Developer", Description: "Go services", Location: "Bangalore", Salary: 25},
		{Title: "Data Engineer", Description: "Pipelines", Location: "Delhi NCR", Salary: 30},
		{Title: "Intern", Description: "Backend support", Location: "Mumbai"},
	}
}

func titles(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestFilterJobs_SalaryBucket(t *testing.T) {
	got := client.FilterJobs(sampleJobs(), "", 20, 30)
	if len(got) != 2 || got[0].Title != "Backend Developer" || got[1].Title != "Data Engineer" {
		t.Errorf("FilterJobs(20-30) = %v", titles(got))
	}
}

func TestFilterJobs_QueryMatchesTitleDescriptionLocation(t *testing.T) {
	cases := map[string][]string{
		"backend": {"Backend Developer", "Intern"},
		"PUNE":    {"Frontend Developer"},
		"delhi":   {"Data Engineer"},
		"":        {"Frontend Developer", "Backend Developer", "Data Engineer", "Intern"},
		"rust":    {},
	}
	for query, want := range cases {
		got := titles(client.FilterJobs(sampleJobs(), query, 0, math.Inf(1)))
		if len(got) != len(want) {
			t.Errorf("FilterJobs(%q) = %v, want %v", query, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("FilterJobs(%q)[%d] = %q, want %q", query, i, got[i], want[i])
			}
		}
	}
}

func TestFilterJobs_MissingSalaryCountsAsZero(t *testing.T) {
	got := client.FilterJobs(sampleJobs(), "", 0, 20)
	if len(got) != 2 || got[1].Title != "Intern" {
		t.Errorf("FilterJobs(0-20) = %v, want Frontend Developer and Intern", titles(got))
	}
}

func TestParseFilterSelection(t *testing.T) {
	q, lo, hi := client.ParseFilterSelection("20-30")
	if q != "" || lo != 20 || hi != 30 {
		t.Errorf(`ParseFilterSelection("20-30") = %q, %v, %v`, q, lo, hi)
	}

	for _, v := range []string{"Pune", "Delhi NCR", "Full-Stack", ""} {
		q, lo, hi := client.ParseFilterSelection(v)
		if q != v || lo != 0 || !math.IsInf(hi, 1) {
			t.Errorf("ParseFilterSelection(%q) = %q, %v, %v", v, q, lo, hi)
		}
	}
}

func TestHasApplied(t *testing.T) {
	me := uuid.New()
	job := &model.Job{Applications: []model.Application{{ApplicantID: uuid.New()}, {ApplicantID: me}}}
	if !client.HasApplied(job, me) {
		t.Error("HasApplied = false, want true")
	}
	if client.HasApplied(job, uuid.New()) {
		t.Error("HasApplied for a stranger = true")
	}
	if client.HasApplied(nil, me) {
		t.Error("HasApplied(nil) = true")
	}
}

func TestJobState_ApplySelection(t *testing.T) {
	s := client.NewJobState(nil)
	s.SetAllJobs(sampleJobs())

	if got := s.Filtered(); len(got) != 4 {
		t.Fatalf("default filter kept %d jobs, want 4", len(got))
	}

	s.ApplySelection("20-30")
	if got := titles(s.Filtered()); len(got) != 2 {
		t.Errorf("after bucket: %v", got)
	}

	s.ApplySelection("Mumbai")
	if got := titles(s.Filtered()); len(got) != 1 || got[0] != "Intern" {
		t.Errorf("after location: %v", got)
	}
	if lo, hi := s.MinMax(); lo != 0 || !math.IsInf(hi, 1) {
		t.Errorf("MinMax = %v, %v; want 0, +Inf", lo, hi)
	}
}
