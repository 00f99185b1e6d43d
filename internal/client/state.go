package client

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/pkg/model"
)

type JobFetcher interface {
	Jobs(ctx context.Context, keyword string) ([]model.Job, error)
	Job(ctx context.Context, jobID uuid.UUID) (*model.Job, error)
}

// JobState holds the job list, the job being viewed and the active filter.
type JobState struct {
	mu            sync.RWMutex
	fetcher       JobFetcher
	allJobs       []model.Job
	singleJob     *model.Job
	searchedQuery string
	minSalary     float64
	maxSalary     float64
}

func NewJobState(fetcher JobFetcher) *JobState {
	return &JobState{fetcher: fetcher, maxSalary: math.Inf(1)}
}

func (s *JobState) SetAllJobs(jobs []model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allJobs = jobs
}

func (s *JobState) SetSingleJob(job *model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.singleJob = job
}

func (s *JobState) SetSearchedQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchedQuery = query
}

func (s *JobState) SetMinMax(minSalary, maxSalary float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minSalary, s.maxSalary = minSalary, maxSalary
}

// ApplySelection sets the query and salary range from one filter choice.
func (s *JobState) ApplySelection(value string) {
	query, lo, hi := ParseFilterSelection(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchedQuery, s.minSalary, s.maxSalary = query, lo, hi
}

func (s *JobState) AllJobs() []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allJobs
}

func (s *JobState) SingleJob() *model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.singleJob
}

func (s *JobState) SearchedQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchedQuery
}

func (s *JobState) MinMax() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minSalary, s.maxSalary
}

// Filtered applies the current query and salary range to the job list.
func (s *JobState) Filtered() []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterJobs(s.allJobs, s.searchedQuery, s.minSalary, s.maxSalary)
}

// Load fetches the job list for keyword.
func (s *JobState) Load(ctx context.Context, keyword string) error {
	jobs, err := s.fetcher.Jobs(ctx, keyword)
	if err != nil {
		return err
	}
	s.SetAllJobs(jobs)
	return nil
}

// Refresh reloads one job into SingleJob. It satisfies quiz.Refresher.
func (s *JobState) Refresh(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.fetcher.Job(ctx, jobID)
	if err != nil {
		return err
	}
	s.SetSingleJob(job)
	return nil
}
