package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/db"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/notify"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupE2EDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := db.Open(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:e2e_" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(dbi))
	require.NoError(t, db.Seed(dbi))
	sqlDB, err := dbi.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return dbi
}

type e2e struct {
	t      *testing.T
	db     *gorm.DB
	mailer *notify.MemoryMailer
	srv    *httptest.Server
}

func newE2E(t *testing.T) *e2e {
	t.Helper()
	dbi := setupE2EDB(t)
	files, err := storage.NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)
	mailer := &notify.MemoryMailer{}
	app := NewApp(dbi, Options{Files: files, Mailer: mailer, MaxUpload: 1 << 20})
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return &e2e{t: t, db: dbi, mailer: mailer, srv: srv}
}

// client returns a browser-like client with its own cookie jar, pinned to English.
func (e *e2e) client() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(e.t, err)
	u, _ := url.Parse(e.srv.URL)
	jar.SetCookies(u, []*http.Cookie{{Name: "lang", Value: "en", Path: "/"}})
	return &http.Client{Jar: jar}
}

func (e *e2e) get(c *http.Client, path string) (*http.Response, string) {
	e.t.Helper()
	resp, err := c.Get(e.srv.URL + path)
	require.NoError(e.t, err)
	return resp, readBody(e.t, resp)
}

func (e *e2e) post(c *http.Client, path string, form url.Values) (*http.Response, string) {
	e.t.Helper()
	resp, err := c.PostForm(e.srv.URL+path, form)
	require.NoError(e.t, err)
	return resp, readBody(e.t, resp)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// signup registers username through the form; the client ends up signed in.
func (e *e2e) signup(username string) *http.Client {
	e.t.Helper()
	c := e.client()
	resp, body := e.post(c, "/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"first_name":       {strings.ToUpper(username[:1]) + username[1:]},
		"password":         {"correct-horse"},
		"password_confirm": {"correct-horse"},
	})
	require.Equal(e.t, http.StatusOK, resp.StatusCode, body)
	require.Equal(e.t, "/", resp.Request.URL.Path)
	return c
}

func (e *e2e) createProject(c *http.Client, name, modality, category, salary string) string {
	e.t.Helper()
	resp, body := e.post(c, "/projects/new", url.Values{
		"name":        {name},
		"description": {"Details for " + name},
		"modality":    {modality},
		"category":    {category},
		"salary":      {salary},
		"currency":    {"USD"},
	})
	require.Equal(e.t, http.StatusOK, resp.StatusCode, body)
	require.True(e.t, strings.HasPrefix(resp.Request.URL.Path, "/projects/"), resp.Request.URL.Path)
	return resp.Request.URL.Path
}

func TestSignupSignsInAndShowsFlash(t *testing.T) {
	e := newE2E(t)
	c := e.client()

	resp, body := e.post(c, "/register", url.Values{
		"username":         {"ana"},
		"email":            {"ana@example.com"},
		"password":         {"correct-horse"},
		"password_confirm": {"correct-horse"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Account created. Welcome!")
	assert.Contains(t, body, `action="/logout"`)

	// The flash is shown once.
	_, body = e.get(c, "/")
	assert.NotContains(t, body, "Account created. Welcome!")

	resp, _ = e.get(c, "/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Request.URL.Path)
}

func TestSignupRejectsMismatchedPasswords(t *testing.T) {
	e := newE2E(t)
	resp, body := e.post(e.client(), "/register", url.Values{
		"username":         {"ana"},
		"email":            {"ana@example.com"},
		"password":         {"correct-horse"},
		"password_confirm": {"battery-staple"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/register", resp.Request.URL.Path)
	assert.Contains(t, body, "field-error")

	var n int64
	e.db.Model(&models.User{}).Count(&n)
	assert.Zero(t, n)
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	e := newE2E(t)
	c := e.client()
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, _ := e.get(c, "/projects/new")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fprojects%2Fnew", resp.Header.Get("Location"))
}

func TestLoginReturnsToNext(t *testing.T) {
	e := newE2E(t)
	e.signup("ana")

	c := e.client()
	resp, body := e.post(c, "/login", url.Values{"username": {"ana"}, "password": {"wrong"}})
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "alert-error")

	resp, _ = e.post(c, "/login", url.Values{"username": {"ana"}, "password": {"correct-horse"}, "next": {"/projects/mine"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/projects/mine", resp.Request.URL.Path)
}

func TestProjectSearch(t *testing.T) {
	e := newE2E(t)
	owner := e.signup("olga")
	e.createProject(owner, "Logo Design", "remote", "design", "500")
	e.createProject(owner, "Landing page", "on-site", "development", "1500")

	visitor := e.client()
	_, body := e.get(visitor, "/projects?name=logo&modality=remote&category=design&salary=400")
	assert.Contains(t, body, "Logo Design")
	assert.NotContains(t, body, "Landing page")

	_, body = e.get(visitor, "/projects?salary=1000")
	assert.NotContains(t, body, "Logo Design")
	assert.Contains(t, body, "Landing page")

	// Invalid filters fall back to the full list.
	resp, body := e.get(visitor, "/projects?salary=abc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Some filters are invalid")
	assert.Contains(t, body, "Logo Design")
	assert.Contains(t, body, "Landing page")

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/projects?salary=abc", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := visitor.Do(req)
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectJSONHidesOwnerEmail(t *testing.T) {
	e := newE2E(t)
	owner := e.signup("olga")
	detail := e.createProject(owner, "Logo Design", "remote", "design", "500")

	visitor := e.client()
	for _, path := range []string{"/projects", detail} {
		req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Accept", "application/json")
		resp, err := visitor.Do(req)
		require.NoError(t, err)
		body := readBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, `"username":"olga"`, path)
		assert.NotContains(t, body, `"email"`, path)
		assert.NotContains(t, body, "olga@example.com", path)
	}
}

func TestApplyOnceAndNotifyOwner(t *testing.T) {
	e := newE2E(t)
	owner := e.signup("olga")
	path := e.createProject(owner, "Logo Design", "remote", "design", "500")

	freelancer := e.signup("fede")
	_, body := e.get(freelancer, path+"/apply")
	assert.Contains(t, body, `action="`+path+`/apply"`)

	resp, body := e.post(freelancer, path+"/apply", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, path, resp.Request.URL.Path)
	assert.Contains(t, body, "You applied to the project")

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"olga@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Body, "Logo Design")

	_, body = e.post(freelancer, path+"/apply", nil)
	assert.Contains(t, body, "already applied to this project")
	assert.Len(t, e.mailer.Sent(), 1)

	var n int64
	e.db.Model(&models.Application{}).Count(&n)
	assert.EqualValues(t, 1, n)

	_, body = e.get(freelancer, "/applications/mine")
	assert.Contains(t, body, "Logo Design")
	_, body = e.get(owner, "/applications/manage")
	assert.Contains(t, body, "fede@example.com")
}

func TestOwnerCannotApplyToOwnProject(t *testing.T) {
	e := newE2E(t)
	owner := e.signup("olga")
	path := e.createProject(owner, "Logo Design", "remote", "design", "500")

	resp, _ := e.post(owner, path+"/apply", nil)
	assert.Equal(t, path, resp.Request.URL.Path)
	assert.Empty(t, e.mailer.Sent())

	var n int64
	e.db.Model(&models.Application{}).Count(&n)
	assert.Zero(t, n)
}

func TestOnlyOwnerUpdatesApplicationStatus(t *testing.T) {
	e := newE2E(t)
	owner := e.signup("olga")
	path := e.createProject(owner, "Logo Design", "remote", "design", "500")
	freelancer := e.signup("fede")
	e.post(freelancer, path+"/apply", nil)

	var app models.Application
	require.NoError(t, e.db.First(&app).Error)
	statusPath := "/applications/" + itoa(app.ID) + "/status/accepted"

	_, body := e.post(freelancer, statusPath, nil)
	assert.Contains(t, body, "You are not allowed to do that")
	require.NoError(t, e.db.First(&app, app.ID).Error)
	assert.Equal(t, models.ApplicationPending, app.Status)

	resp, body := e.post(owner, statusPath, nil)
	assert.Equal(t, "/applications/manage", resp.Request.URL.Path)
	assert.Contains(t, body, "Status updated")
	require.NoError(t, e.db.First(&app, app.ID).Error)
	assert.Equal(t, models.ApplicationAccepted, app.Status)
}

func TestExperienceIsPrivateToItsOwner(t *testing.T) {
	e := newE2E(t)
	ana := e.signup("ana")
	resp, _ := e.post(ana, "/profile/experience", url.Values{
		"title":      {"Illustrator"},
		"company":    {"Studio"},
		"start_date": {"2020-01-01"},
	})
	assert.Equal(t, "/profile", resp.Request.URL.Path)

	var exp models.Experience
	require.NoError(t, e.db.First(&exp).Error)

	bob := e.signup("bob")
	resp, _ = e.get(bob, "/profile/experience/"+itoa(exp.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.post(bob, "/profile/experience/"+itoa(exp.ID)+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body := e.get(ana, "/profile")
	assert.Contains(t, body, "Illustrator")
}

func TestContactForm(t *testing.T) {
	e := newE2E(t)
	c := e.client()
	_, body := e.post(c, "/contact", url.Values{"name": {"Ana"}, "email": {"nope"}, "message": {"Hi"}})
	assert.Contains(t, body, "field-error")

	resp, body := e.post(c, "/contact", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "message": {"Hi"}})
	assert.Equal(t, "/contact", resp.Request.URL.Path)
	assert.Contains(t, body, "Message sent. Thank you!")

	var n int64
	e.db.Model(&models.ContactMessage{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestOperationalEndpoints(t *testing.T) {
	e := newE2E(t)
	c := e.client()

	resp, body := e.get(c, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ok")

	resp, body = e.get(c, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests_total")

	resp, body = e.get(c, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "The page you are looking for does not exist.")
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
