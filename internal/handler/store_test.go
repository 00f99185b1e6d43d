package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/internal/auth"
	"github.com/siddharth180703/NextHire/internal/handler"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg/model"
	"go.uber.org/zap"
)

// memStore is an in-memory handler.Store.
type memStore struct {
	users     map[uuid.UUID]*model.User
	companies map[uuid.UUID]*model.Company
	jobs      map[uuid.UUID]*model.Job
	apps      map[uuid.UUID]*model.Application
	clock     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]*model.User{},
		companies: map[uuid.UUID]*model.Company{},
		jobs:      map[uuid.UUID]*model.Job{},
		apps:      map[uuid.UUID]*model.Application{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memStore) CreateUser(_ context.Context, u *model.User) error {
	for _, other := range s.users {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UserID = uuid.New()
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.UserID] = &cp
	return nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UpdateUser(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.UserID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = s.tick()
	cp := *u
	s.users[u.UserID] = &cp
	return nil
}

func (s *memStore) CreateCompany(_ context.Context, c *model.Company) error {
	for _, other := range s.companies {
		if other.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	c.CompanyID = uuid.New()
	c.CreatedAt = s.tick()
	cp := *c
	s.companies[c.CompanyID] = &cp
	return nil
}

func (s *memStore) GetCompanyByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) ListCompaniesByUser(_ context.Context, userID uuid.UUID) ([]model.Company, error) {
	out := []model.Company{}
	for _, c := range s.companies {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) UpdateCompany(_ context.Context, c *model.Company) error {
	if _, ok := s.companies[c.CompanyID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	s.companies[c.CompanyID] = &cp
	return nil
}

func (s *memStore) CreateJob(_ context.Context, j *model.Job) error {
	j.JobID = uuid.New()
	j.CreatedAt = s.tick()
	j.UpdatedAt = j.CreatedAt
	cp := *j
	cp.Company = nil
	s.jobs[j.JobID] = &cp
	return nil
}

func (s *memStore) UpdateJob(_ context.Context, j *model.Job) error {
	stored, ok := s.jobs[j.JobID]
	if !ok || stored.CreatedBy != j.CreatedBy {
		return repository.ErrNotFound
	}
	j.UpdatedAt = s.tick()
	cp := *j
	cp.Company = nil
	cp.Applications = nil
	s.jobs[j.JobID] = &cp
	return nil
}

func (s *memStore) expand(j *model.Job) model.Job {
	cp := *j
	if c, ok := s.companies[j.CompanyID]; ok {
		company := *c
		cp.Company = &company
	}
	cp.Applications = []model.Application{}
	for _, a := range s.apps {
		if a.JobID == j.JobID {
			cp.Applications = append(cp.Applications, *a)
		}
	}
	return cp
}

func (s *memStore) GetJobByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := s.expand(j)
	return &out, nil
}

func (s *memStore) ListJobs(_ context.Context, keyword string) ([]model.Job, error) {
	kw := strings.ToLower(keyword)
	return s.sorted(func(j *model.Job) bool {
		return strings.Contains(strings.ToLower(j.Title), kw) || strings.Contains(strings.ToLower(j.Description), kw)
	}), nil
}

func (s *memStore) ListJobsByCreator(_ context.Context, userID uuid.UUID) ([]model.Job, error) {
	return s.sorted(func(j *model.Job) bool { return j.CreatedBy == userID }), nil
}

func (s *memStore) sorted(keep func(*model.Job) bool) []model.Job {
	out := []model.Job{}
	for _, j := range s.jobs {
		if keep(j) {
			out = append(out, s.expand(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (s *memStore) CreateApplication(_ context.Context, a *model.Application) error {
	if _, ok := s.jobs[a.JobID]; !ok {
		return repository.ErrNotFound
	}
	for _, other := range s.apps {
		if other.JobID == a.JobID && other.ApplicantID == a.ApplicantID {
			return repository.ErrDuplicate
		}
	}
	a.ApplicationID = uuid.New()
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.apps[a.ApplicationID] = &cp
	return nil
}

func (s *memStore) ListApplicationsByApplicant(_ context.Context, userID uuid.UUID) ([]model.Application, error) {
	out := []model.Application{}
	for _, a := range s.apps {
		if a.ApplicantID == userID {
			cp := *a
			job := s.expand(s.jobs[a.JobID])
			cp.Job = &job
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *memStore) ListApplicantsByJob(_ context.Context, jobID uuid.UUID) ([]model.Application, error) {
	out := []model.Application{}
	for _, a := range s.apps {
		if a.JobID == jobID {
			cp := *a
			if u, ok := s.users[a.ApplicantID]; ok {
				res := u.Response()
				cp.Applicant = &res
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *memStore) UpdateApplicationStatus(_ context.Context, appID, recruiterID uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	a, ok := s.apps[appID]
	if !ok || s.jobs[a.JobID].CreatedBy != recruiterID {
		return nil, repository.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = s.tick()
	cp := *a
	return &cp, nil
}

type published struct {
	channel string
	event   any
}

type fakeEvents struct{ sent []published }

func (f *fakeEvents) Publish(_ context.Context, channel string, event any) error {
	f.sent = append(f.sent, published{channel, event})
	return nil
}

type fakeRevoker struct{ revoked map[string]time.Duration }

func (f *fakeRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	f.revoked[id] = ttl
	return nil
}

type env struct {
	store   *memStore
	events  *fakeEvents
	revoker *fakeRevoker
	h       *handler.Handler
}

func newEnv() *env {
	gin.SetMode(gin.TestMode)
	e := &env{
		store:   newMemStore(),
		events:  &fakeEvents{},
		revoker: &fakeRevoker{revoked: map[string]time.Duration{}},
	}
	e.h = &handler.Handler{
		Logger:     zap.NewNop(),
		Repository: e.store,
		TokenMaker: auth.NewJWTMaker("test-secret-test-secret-test-secret"),
		TokenTTL:   24 * time.Hour,
		Revoker:    e.revoker,
		Events:     e.events,
	}
	return e
}

// seedRecruiter stores a recruiter and a company they own.
func (e *env) seedRecruiter(t *testing.T) (*model.User, *model.Company) {
	t.Helper()
	u := &model.User{Fullname: "Rita Recruiter", Email: uuid.NewString() + "@corp.test", Role: model.UserRoleRecruiter}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	c := &model.Company{Name: "Acme " + uuid.NewString(), UserID: u.UserID}
	if err := e.store.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return u, c
}

func (e *env) seedStudent(t *testing.T) *model.User {
	t.Helper()
	u := &model.User{Fullname: "Sam Student", Email: uuid.NewString() + "@uni.test", Role: model.UserRoleStudent}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// do runs one request through fn with claims for user (nil for anonymous).
func (e *env) do(t *testing.T, method, route, target string, user *model.User, body any, fn gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if user != nil {
			claims, err := auth.NewUserClaims(user.UserID, user.Email, user.Role, time.Hour)
			if err != nil {
				t.Fatalf("claims: %v", err)
			}
			c.Set(auth.ClaimsKey, claims)
		}
		c.Next()
	}, fn)

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, body map[string]any, status int, message string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %v)", w.Code, status, body)
	}
	if message != "" && body["message"] != message {
		t.Errorf("message = %v, want %q", body["message"], message)
	}
	wantSuccess := status < http.StatusBadRequest
	if body["success"] != wantSuccess {
		t.Errorf("success = %v, want %v", body["success"], wantSuccess)
	}
}
