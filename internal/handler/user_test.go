package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/siddharth180703/NextHire/internal/handler"
	"github.com/siddharth180703/NextHire/pkg/model"
)

func register(t *testing.T, e *env, email string, role model.UserRole) {
	t.Helper()
	w, body := e.do(t, http.MethodPost, "/user/register", "/user/register", nil, map[string]any{
		"fullname":    "Asha Rao",
		"email":       email,
		"phoneNumber": "9876543210",
		"password":    "secret123",
		"role":        role,
	}, e.h.Register)
	wantStatus(t, w, body, http.StatusCreated, "Account created successfully.")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv()
	register(t, e, "asha@example.com", model.UserRoleStudent)

	w, body := e.do(t, http.MethodPost, "/user/register", "/user/register", nil, map[string]any{
		"fullname": "Asha Again", "email": "ASHA@example.com", "phoneNumber": "1", "password": "secret123", "role": "student",
	}, e.h.Register)
	wantStatus(t, w, body, http.StatusBadRequest, "User already exist with this email.")
}

func TestRegister_MissingField(t *testing.T) {
	e := newEnv()
	w, body := e.do(t, http.MethodPost, "/user/register", "/user/register", nil, map[string]any{
		"email": "x@example.com", "password": "secret123", "role": "student",
	}, e.h.Register)
	wantStatus(t, w, body, http.StatusBadRequest, "Something is missing")
}

func TestLogin_SetsCookieAndChecksRole(t *testing.T) {
	e := newEnv()
	register(t, e, "asha@example.com", model.UserRoleRecruiter)

	creds := map[string]any{"email": "asha@example.com", "password": "secret123", "role": "recruiter"}
	w, body := e.do(t, http.MethodPost, "/user/login", "/user/login", nil, creds, e.h.Login)
	wantStatus(t, w, body, http.StatusOK, "Welcome back Asha Rao")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == handler.TokenCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("token cookie = %+v", cookie)
	}
	if cookie.MaxAge != 24*60*60 {
		t.Errorf("cookie max age = %d, want one day", cookie.MaxAge)
	}
	if body["token"] != cookie.Value {
		t.Error("body token should match the cookie")
	}
	if _, err := e.h.TokenMaker.VerifyToken(cookie.Value); err != nil {
		t.Errorf("issued token does not verify: %v", err)
	}

	creds["role"] = "student"
	w, body = e.do(t, http.MethodPost, "/user/login", "/user/login", nil, creds, e.h.Login)
	wantStatus(t, w, body, http.StatusBadRequest, "Account doesn't exist with current role.")

	creds["role"] = "recruiter"
	creds["password"] = "wrong-password"
	w, body = e.do(t, http.MethodPost, "/user/login", "/user/login", nil, creds, e.h.Login)
	wantStatus(t, w, body, http.StatusBadRequest, "Incorrect email or password.")
}

func TestLogout_RevokesToken(t *testing.T) {
	e := newEnv()
	student := e.seedStudent(t)

	w, body := e.do(t, http.MethodGet, "/user/logout", "/user/logout", student, nil, e.h.Logout)
	wantStatus(t, w, body, http.StatusOK, "Logged out successfully.")
	if len(e.revoker.revoked) != 1 {
		t.Fatalf("revoked = %v, want one token", e.revoker.revoked)
	}
	for _, ttl := range e.revoker.revoked {
		if ttl <= 0 {
			t.Errorf("revocation ttl = %v, want positive", ttl)
		}
	}

	w, body = e.do(t, http.MethodGet, "/user/logout", "/user/logout", nil, nil, e.h.Logout)
	wantStatus(t, w, body, http.StatusUnauthorized, "User not authenticated")
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv()
	student := e.seedStudent(t)

	w, body := e.do(t, http.MethodPost, "/user/profile/update", "/user/profile/update", student,
		map[string]any{"bio": "Gopher", "skills": "Go, SQL"}, e.h.UpdateProfile)
	wantStatus(t, w, body, http.StatusOK, "Profile updated successfully.")

	stored := e.store.users[student.UserID]
	if stored.Profile.Bio != "Gopher" || len(stored.Profile.Skills) != 2 {
		t.Errorf("profile = %+v", stored.Profile)
	}
	if stored.Fullname != student.Fullname {
		t.Errorf("fullname changed to %q", stored.Fullname)
	}
}

func TestMe(t *testing.T) {
	e := newEnv()
	student := e.seedStudent(t)

	w, body := e.do(t, http.MethodGet, "/user/me", "/user/me", student, nil, e.h.Me)
	wantStatus(t, w, body, http.StatusOK, "")
	user, _ := body["user"].(map[string]any)
	if user["email"] != student.Email || user["role"] != "student" {
		t.Errorf("user = %v", user)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	e := newEnv()
	reg := func(password string) map[string]any {
		return map[string]any{
			"fullname": "Asha Rao", "email": "asha@example.com", "phoneNumber": "1", "password": password, "role": "student",
		}
	}

	w, body := e.do(t, http.MethodPost, "/user/register", "/user/register", nil, reg(strings.Repeat("a", 73)), e.h.Register)
	wantStatus(t, w, body, http.StatusBadRequest, "Something is missing")

	w, body = e.do(t, http.MethodPost, "/user/register", "/user/register", nil, reg(strings.Repeat("é", 40)), e.h.Register)
	wantStatus(t, w, body, http.StatusBadRequest, "Password must be at most 72 bytes.")

	if len(e.store.users) != 0 {
		t.Errorf("stored users = %d, want 0", len(e.store.users))
	}
}
