package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tinnitussen/DAT250/auth"
	"github.com/Tinnitussen/DAT250/config"
	"github.com/Tinnitussen/DAT250/database"
	"github.com/Tinnitussen/DAT250/routes"
	"github.com/Tinnitussen/DAT250/utils"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		GinMode:           gin.TestMode,
		DBDriver:          "sqlite",
		DBDSN:             fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
		UploadsDir:        t.TempDir(),
		JWTSecret:         "test-secret",
		SessionTTL:        time.Hour,
		AuthRatePerMinute: 6000,
		AuthRateBurst:     1000,
		MailEnabled:       false,
	}

	db, err := database.Initialize(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger := utils.NewLogger(gin.TestMode)
	logger.SetOutput(io.Discard)

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, logger)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, username, password string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/", gin.H{
		"register": gin.H{
			"username":   username,
			"password":   password,
			"first_name": "Test",
			"last_name":  "User",
		},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register %s: status %d body %s", username, w.Code, w.Body.String())
	}
}

func loginUser(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/", gin.H{
		"login": gin.H{"username": username, "password": password},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to log in %s: status %d body %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("login response for %s did not set a session cookie", username)
	return nil
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %s: %v", w.Body.String(), err)
	}
	return env
}

func multipartPost(t *testing.T, r *gin.Engine, path, content, fileName string, fileData []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("content", content); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := setupServer(t)

	registerUser(t, r, "alice", "correcthorse")

	w := doJSON(t, r, http.MethodPost, "/", gin.H{
		"register": gin.H{
			"username":   "alice",
			"password":   "otherpassword",
			"first_name": "Other",
			"last_name":  "Alice",
		},
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate registration, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	r := setupServer(t)

	cases := []gin.H{
		{"username": "alice", "password": "short", "first_name": "A", "last_name": "B"},
		{"username": "alice", "password": strings.Repeat("x", 80), "first_name": "A", "last_name": "B"},
		{"username": "", "password": "correcthorse", "first_name": "A", "last_name": "B"},
		{"username": "alice", "password": "correcthorse", "first_name": "", "last_name": "B"},
	}
	for i, form := range cases {
		w := doJSON(t, r, http.MethodPost, "/", gin.H{"register": form}, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d: %s", i, w.Code, w.Body.String())
		}
	}

	// None of the rejected forms may have created a user.
	w := doJSON(t, r, http.MethodPost, "/", gin.H{
		"login": gin.H{"username": "alice", "password": "correcthorse"},
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("rejected registration left a usable account: %d", w.Code)
	}
}

func TestLoginExactMatchOnly(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")

	for _, creds := range []gin.H{
		{"username": "alice", "password": "wrongpassword"},
		{"username": "alice", "password": "Correcthorse"},
		{"username": "Alice", "password": "correcthorse"},
		{"username": "nobody", "password": "correcthorse"},
	} {
		w := doJSON(t, r, http.MethodPost, "/", gin.H{"login": creds}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("credentials %v: expected 401, got %d", creds, w.Code)
		}
	}

	cookie := loginUser(t, r, "alice", "correcthorse")

	// The principal bound to the session matches the stored user.
	w := doJSON(t, r, http.MethodGet, "/profile/alice", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching own profile, got %d", w.Code)
	}
	var profile struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Username != "alice" || profile.ID == "" {
		t.Errorf("unexpected principal profile: %+v", profile)
	}
}

func TestRoutesRequireAuthentication(t *testing.T) {
	r := setupServer(t)

	paths := []string{"/stream/alice", "/comments/alice/some-post", "/friends/alice", "/profile/alice", "/uploads/pic.png", "/logout"}
	for _, path := range paths {
		w := doJSON(t, r, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without session: expected 401, got %d", path, w.Code)
		}
	}
}

func TestPostContentLengthLimit(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	cookie := loginUser(t, r, "alice", "correcthorse")

	w := multipartPost(t, r, "/stream/alice", strings.Repeat("a", 501), "", nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for over-long content, got %d", w.Code)
	}

	// Nothing was persisted.
	w = doJSON(t, r, http.MethodGet, "/stream/alice", nil, cookie)
	var stream struct {
		Posts []json.RawMessage `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stream); err != nil {
		t.Fatalf("failed to decode stream: %v", err)
	}
	if len(stream.Posts) != 0 {
		t.Errorf("rejected post was persisted")
	}

	w = multipartPost(t, r, "/stream/alice", strings.Repeat("a", 500), "", nil, cookie)
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201 for max-length content, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStreamVisibility(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	registerUser(t, r, "bob", "batterystaple")
	registerUser(t, r, "carol", "tr0ub4dor&3x")
	aliceCookie := loginUser(t, r, "alice", "correcthorse")
	bobCookie := loginUser(t, r, "bob", "batterystaple")

	if w := multipartPost(t, r, "/stream/alice", "hello from alice", "", nil, aliceCookie); w.Code != http.StatusCreated {
		t.Fatalf("failed to create post: %d %s", w.Code, w.Body.String())
	}

	streamContents := func(cookie *http.Cookie, path string) []string {
		w := doJSON(t, r, http.MethodGet, path, nil, cookie)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: %d %s", path, w.Code, w.Body.String())
		}
		var stream struct {
			Posts []struct {
				Content string `json:"content"`
			} `json:"posts"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &stream); err != nil {
			t.Fatalf("failed to decode stream: %v", err)
		}
		contents := make([]string, 0, len(stream.Posts))
		for _, p := range stream.Posts {
			contents = append(contents, p.Content)
		}
		return contents
	}

	// Not friends yet: bob's stream does not include alice's post.
	if got := streamContents(bobCookie, "/stream/bob"); len(got) != 0 {
		t.Errorf("expected empty stream for bob, got %v", got)
	}

	if w := doJSON(t, r, http.MethodPost, "/friends/bob", gin.H{"username": "alice"}, bobCookie); w.Code != http.StatusCreated {
		t.Fatalf("failed to add friend: %d %s", w.Code, w.Body.String())
	}

	if got := streamContents(bobCookie, "/stream/bob"); len(got) != 1 || got[0] != "hello from alice" {
		t.Errorf("expected alice's post on bob's stream, got %v", got)
	}

	// Carol is nobody's friend; her stream stays empty.
	carolCookie := loginUser(t, r, "carol", "tr0ub4dor&3x")
	if got := streamContents(carolCookie, "/stream/carol"); len(got) != 0 {
		t.Errorf("expected empty stream for carol, got %v", got)
	}

	// Unknown stream user.
	if w := doJSON(t, r, http.MethodGet, "/stream/nobody", nil, aliceCookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown stream user, got %d", w.Code)
	}
}

func TestCommentsFlow(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	cookie := loginUser(t, r, "alice", "correcthorse")

	w := multipartPost(t, r, "/stream/alice", "first post", "", nil, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create post: %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var post struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("failed to decode created post: %v", err)
	}

	commentsPath := "/comments/alice/" + post.ID
	if w := doJSON(t, r, http.MethodPost, commentsPath, gin.H{"comment": "nice post"}, cookie); w.Code != http.StatusCreated {
		t.Fatalf("failed to create comment: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, commentsPath, gin.H{"comment": strings.Repeat("x", 501)}, cookie); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for over-long comment, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, commentsPath, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to fetch comments: %d", w.Code)
	}
	var page struct {
		Comments []struct {
			Body string `json:"body"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode comments: %v", err)
	}
	if len(page.Comments) != 1 || page.Comments[0].Body != "nice post" {
		t.Errorf("unexpected comments: %+v", page.Comments)
	}

	// Commenting on a post that does not exist.
	if w := doJSON(t, r, http.MethodPost, "/comments/alice/no-such-post", gin.H{"comment": "hello"}, cookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown post, got %d", w.Code)
	}
}

func TestFriendRules(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	registerUser(t, r, "bob", "batterystaple")
	cookie := loginUser(t, r, "alice", "correcthorse")

	if w := doJSON(t, r, http.MethodPost, "/friends/alice", gin.H{"username": "alice"}, cookie); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for self-friendship, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/friends/alice", gin.H{"username": "nobody"}, cookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown friend, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/friends/alice", gin.H{"username": "bob"}, cookie); w.Code != http.StatusCreated {
		t.Errorf("expected 201 adding a friend, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/friends/alice", gin.H{"username": "bob"}, cookie); w.Code != http.StatusConflict {
		t.Errorf("expected 409 adding the same friend twice, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/friends/alice", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to list friends: %d", w.Code)
	}
	var page struct {
		Friends []struct {
			Username string `json:"username"`
		} `json:"friends"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode friends: %v", err)
	}
	if len(page.Friends) != 1 || page.Friends[0].Username != "bob" {
		t.Errorf("unexpected friend list: %+v", page.Friends)
	}
}

func TestProfileUpdateIsOwnerOnly(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	registerUser(t, r, "bob", "batterystaple")
	aliceCookie := loginUser(t, r, "alice", "correcthorse")
	bobCookie := loginUser(t, r, "bob", "batterystaple")

	update := gin.H{"education": "UiS", "music": "jazz"}

	if w := doJSON(t, r, http.MethodPost, "/profile/alice", update, bobCookie); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 when updating another user's profile, got %d", w.Code)
	}

	// The stored profile is unchanged after the rejected update.
	w := doJSON(t, r, http.MethodGet, "/profile/alice", nil, aliceCookie)
	var profile struct {
		Education string `json:"education"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Education != "" {
		t.Errorf("rejected update mutated the profile: %+v", profile)
	}

	if w := doJSON(t, r, http.MethodPost, "/profile/alice", update, aliceCookie); w.Code != http.StatusOK {
		t.Errorf("expected 200 updating own profile, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/profile/alice", nil, aliceCookie)
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Education != "UiS" {
		t.Errorf("own update not persisted: %+v", profile)
	}

	if w := doJSON(t, r, http.MethodGet, "/profile/nobody", nil, aliceCookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown profile, got %d", w.Code)
	}
}

func TestUploadExtensionPolicy(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	cookie := loginUser(t, r, "alice", "correcthorse")

	// Disallowed extension is rejected and never stored.
	w := multipartPost(t, r, "/stream/alice", "with attachment", "evil.exe", []byte{0x4d, 0x5a}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for disallowed extension, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/uploads/evil.exe", nil, cookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 fetching rejected upload, got %d", w.Code)
	}

	// Allowed extension round-trips.
	pixels := []byte{0x89, 0x50, 0x4e, 0x47}
	w = multipartPost(t, r, "/stream/alice", "photo post", "my pic.png", pixels, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for png upload, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var post struct {
		ImageFile string `json:"image_file"`
	}
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("failed to decode created post: %v", err)
	}
	if post.ImageFile != "my_pic.png" {
		t.Errorf("expected sanitized filename my_pic.png, got %q", post.ImageFile)
	}

	w = doJSON(t, r, http.MethodGet, "/uploads/"+post.ImageFile, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching stored upload, got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), pixels) {
		t.Errorf("stored file content mismatch")
	}

	if w := doJSON(t, r, http.MethodGet, "/uploads/missing.png", nil, cookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown upload, got %d", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alice", "correcthorse")
	cookie := loginUser(t, r, "alice", "correcthorse")

	w := doJSON(t, r, http.MethodGet, "/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to log out: %d", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("logout did not expire the session cookie")
	}
}

func TestIndexRejectsEmptySubmission(t *testing.T) {
	r := setupServer(t)

	if w := doJSON(t, r, http.MethodPost, "/", gin.H{}, nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty composite form, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/", nil, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 on index page, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/ping", nil, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 on health check, got %d", w.Code)
	}
}
