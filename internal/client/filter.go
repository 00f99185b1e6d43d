package client

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/pkg/model"
)

// FilterSection is one group of choices on the job filter card.
type FilterSection struct {
	Name    string
	Choices []string
}

// FilterSections lists the filter card choices. Salary buckets are in
// lakhs per annum.
var FilterSections = []FilterSection{
	{Name: "Location", Choices: []string{"Delhi NCR", "Bangalore", "Hyderabad", "Pune", "Mumbai"}},
	{Name: "Industry", Choices: []string{"Frontend Developer", "Backend Developer", "FullStack Developer"}},
	{Name: "Salary(In LPA)", Choices: []string{"0-20", "20-30", "30-50"}},
}

// FilterJobs keeps jobs whose title, description or location contains query
// (ignoring case) and whose salary lies in [minSalary, maxSalary]. An empty
// query matches everything.
func FilterJobs(jobs []model.Job, query string, minSalary, maxSalary float64) []model.Job {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if q != "" &&
			!strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Description), q) &&
			!strings.Contains(strings.ToLower(job.Location), q) {
			continue
		}
		if job.Salary < minSalary || job.Salary > maxSalary {
			continue
		}
		out = append(out, job)
	}
	return out
}

// ParseFilterSelection turns a filter choice into a query and salary range.
// "a-b" with numeric bounds is a salary bucket; anything else is a text
// query over the full salary range.
func ParseFilterSelection(value string) (query string, minSalary, maxSalary float64) {
	if lo, hi, ok := strings.Cut(value, "-"); ok {
		a, errA := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errA == nil && errB == nil {
			return "", a, b
		}
	}
	return value, 0, math.Inf(1)
}

// HasApplied reports whether userID is among the job's applicants.
func HasApplied(job *model.Job, userID uuid.UUID) bool {
	if job == nil {
		return false
	}
	for _, app := range job.Applications {
		if app.ApplicantID == userID {
			return true
		}
	}
	return false
}
