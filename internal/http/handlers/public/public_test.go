package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devlegal/internal/config"
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/provider"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testTemplates = map[string]string{
	"404.html":       "NOT FOUND {{ title }}",
	"500.html":       "SERVER ERROR",
	"index.html":     "<main>{{ latest_posts }}</main>",
	"blog/post.html": "<h1>{{ post_title }}</h1>{{ comment_notice }}<section>{{ comments }}</section>{{ comment_form }}",
}

func setupPublicHandlerTest(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	templatesDir := t.TempDir()
	for name, body := range testTemplates {
		path := filepath.Join(templatesDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("write template failed: %v", err)
		}
	}

	cfg := &config.Config{
		Session:   config.SessionConfig{Secret: "public-test-secret", CookieName: "devlegal_session", TTLHours: 24},
		Upload:    config.UploadConfig{Dir: t.TempDir()},
		Templates: config.TemplatesConfig{Dir: templatesDir},
	}
	container, err := provider.NewContainer(cfg, db, false)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	return New(container)
}

func createPost(t *testing.T, h *Handler, title string, published bool) *models.Post {
	t.Helper()
	body := "<p>" + title + " body</p>"
	post, err := h.PostService.Create(service.PostInput{Title: &title, Content: &body, Published: &published})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func serveWith(identity *service.Identity, method, routePath string, handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, routePath, func(c *gin.Context) {
		handlershared.SetIdentity(c, identity)
		handler(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPostsHidesDraftsFromAnonymous(t *testing.T) {
	h := setupPublicHandlerTest(t)
	createPost(t, h, "Published One", true)
	createPost(t, h, "Draft One", false)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?published=false", nil)
	w := serveWith(nil, http.MethodGet, "/api/posts", h.ListPosts, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d", w.Code)
	}
	var body struct {
		Posts []map[string]interface{} `json:"posts"`
		Total int64                    `json:"total"`
		Page  int                      `json:"page"`
		Limit int                      `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Total != 1 || len(body.Posts) != 1 || body.Posts[0]["title"] != "Published One" {
		t.Fatalf("anonymous caller should only see published posts: %+v", body)
	}
	if body.Page != 1 || body.Limit != 10 {
		t.Fatalf("unexpected paging: page=%d limit=%d", body.Page, body.Limit)
	}

	admin := &service.Identity{UserID: 1, Username: "admin", IsAdmin: true}
	req = httptest.NewRequest(http.MethodGet, "/api/posts?published=false", nil)
	w = serveWith(admin, http.MethodGet, "/api/posts", h.ListPosts, req)
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Total != 1 || body.Posts[0]["title"] != "Draft One" {
		t.Fatalf("admin should be able to filter drafts: %+v", body)
	}
}

func TestGetPostUnpublished(t *testing.T) {
	h := setupPublicHandlerTest(t)
	draft := createPost(t, h, "Hidden Draft", false)
	path := fmt.Sprintf("/api/posts/%d", draft.ID)

	w := serveWith(nil, http.MethodGet, "/api/posts/:id", h.GetPost, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("anonymous draft want 404 got %d", w.Code)
	}

	admin := &service.Identity{UserID: 1, Username: "admin", IsAdmin: true}
	w = serveWith(admin, http.MethodGet, "/api/posts/:id", h.GetPost, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("admin draft want 200 got %d", w.Code)
	}
}

func TestBlogPostRendersAndCountsViews(t *testing.T) {
	h := setupPublicHandlerTest(t)
	post := createPost(t, h, "Estate Planning", true)

	req := httptest.NewRequest(http.MethodGet, "/blog/post/"+post.Slug+"?comment=pending", nil)
	w := serveWith(nil, http.MethodGet, "/blog/post/:slug", h.BlogPost, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200 got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<h1>Estate Planning</h1>") {
		t.Fatalf("post title not rendered: %s", w.Body.String())
	}

	stored, err := h.PostService.GetByID(post.ID, false)
	if err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if stored.Views != 1 {
		t.Fatalf("views want 1 got %d", stored.Views)
	}

	w = serveWith(nil, http.MethodGet, "/blog/post/:slug", h.BlogPost, httptest.NewRequest(http.MethodGet, "/blog/post/missing", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "NOT FOUND") {
		t.Fatalf("missing post should render 404 page, got %d %s", w.Code, w.Body.String())
	}
}

func TestSubmitCommentOutcomes(t *testing.T) {
	h := setupPublicHandlerTest(t)
	post := createPost(t, h, "Small Claims", true)

	submit := func(slug string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/blog/post/"+slug+"/comment", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serveWith(nil, http.MethodPost, "/blog/post/:slug/comment", h.SubmitComment, req)
	}

	valid := url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "content": {"Thanks!"}}
	w := submit(post.Slug, valid)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("want 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/blog/post/small-claims?comment=pending#comments" {
		t.Fatalf("unexpected location: %s", loc)
	}

	w = submit(post.Slug, url.Values{"name": {"Ann"}})
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "comment=invalid") {
		t.Fatalf("missing fields should be invalid: %s", loc)
	}

	if _, err := h.PostService.ToggleComments(post.ID); err != nil {
		t.Fatalf("toggle comments failed: %v", err)
	}
	w = submit(post.Slug, valid)
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "comment=disabled") {
		t.Fatalf("disabled comments should redirect with disabled: %s", loc)
	}

	w = submit("no-such-post", valid)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown post want 404 got %d", w.Code)
	}

	pending, err := h.CommentService.CountPending()
	if err != nil {
		t.Fatalf("count pending failed: %v", err)
	}
	if pending != 1 {
		t.Fatalf("expected exactly one stored comment, got %d", pending)
	}
}

func TestNotFoundNegotiation(t *testing.T) {
	h := setupPublicHandlerTest(t)
	r := gin.New()
	r.NoRoute(h.NotFound)

	cases := []struct {
		name     string
		method   string
		path     string
		wantJSON bool
	}{
		{name: "page", method: http.MethodGet, path: "/nope", wantJSON: false},
		{name: "api path", method: http.MethodGet, path: "/api/nope", wantJSON: true},
		{name: "non get", method: http.MethodPost, path: "/nope", wantJSON: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != http.StatusNotFound {
				t.Fatalf("want 404 got %d", w.Code)
			}
			isJSON := strings.HasPrefix(w.Header().Get("Content-Type"), "application/json")
			if isJSON != tc.wantJSON {
				t.Fatalf("json want %v got %v (%s)", tc.wantJSON, isJSON, w.Body.String())
			}
		})
	}
}

func TestContactAndSubscribe(t *testing.T) {
	h := setupPublicHandlerTest(t)

	post := func(handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serveWith(nil, http.MethodPost, path, handler, req)
	}

	w := post(h.SubmitContact, "/api/contact", `{"name":"Bo","email":"bo@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("incomplete contact want 400 got %d", w.Code)
	}
	w = post(h.SubmitContact, "/api/contact", `{"name":"Bo","email":"bo@example.com","message":"Need advice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("contact want 200 got %d: %s", w.Code, w.Body.String())
	}

	w = post(h.Subscribe, "/api/subscribe", `{"email":"reader@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("subscribe want 200 got %d", w.Code)
	}
	w = post(h.Subscribe, "/api/subscribe", `{"email":"reader@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat subscribe should stay idempotent, got %d", w.Code)
	}
	w = post(h.Subscribe, "/api/subscribe", `{"email":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty email want 400 got %d", w.Code)
	}
}

func TestResolveCommentOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "accepted", err: nil, want: commentStatusPending},
		{name: "disabled", err: service.ErrCommentsDisabled, want: commentStatusDisabled},
		{name: "captcha", err: service.ErrCaptchaInvalid, want: commentStatusInvalid},
		{name: "unknown", err: fmt.Errorf("boom"), want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveCommentOutcome(tc.err); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}
