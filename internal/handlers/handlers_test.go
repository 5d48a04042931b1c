package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/storage"
	"github.com/churchhub/apiserver/internal/store/memory"
	"github.com/churchhub/apiserver/types"
	"github.com/go-chi/chi/v5"
)

const testSecret = "test-secret"

type testEnv struct {
	router *chi.Mux
	users  *services.UserService
}

// newTestEnv wires a router over fresh in-memory repositories, the same
// shape the server assembles in production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userService := services.NewUserService(memory.NewUserRepository())
	eventService := services.NewEventService(memory.NewEventRepository())
	studyService := services.NewStudyService(memory.NewStudyRepository())
	postService := services.NewPostService(memory.NewPostRepository())
	forumService := services.NewForumService(memory.NewForumTopicRepository(), memory.NewForumReplyRepository())
	settingService := services.NewSettingService(memory.NewSettingRepository())
	mediaStorage := storage.NewStorage(storage.NewStubStorage(""))

	authMiddleware := RequireAuth(testSecret, userService)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			AuthRouter(r, userService, testSecret)
		})
		r.Route("/events", func(r chi.Router) {
			EventRouter(r, eventService, authMiddleware)
		})
		r.Route("/studies", func(r chi.Router) {
			StudyRouter(r, studyService, authMiddleware)
		})
		r.Route("/posts", func(r chi.Router) {
			PostRouter(r, postService, authMiddleware)
		})
		r.Route("/forum", func(r chi.Router) {
			ForumRouter(r, forumService, authMiddleware)
		})
		r.Route("/users", func(r chi.Router) {
			UserRouter(r, userService, authMiddleware)
		})
		r.Route("/site-settings", func(r chi.Router) {
			SettingRouter(r, settingService, authMiddleware)
		})
		r.Route("/media", func(r chi.Router) {
			MediaRouter(r, mediaStorage, authMiddleware)
		})
	})

	return &testEnv{router: router, users: userService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its token and user.
func (e *testEnv) register(t *testing.T, username string) (string, types.User) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Name:     username,
		Password: "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", username, rec.Code, rec.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token, resp.User
}

// registerAdmin registers an account and promotes it to admin directly
// through the service, since no admin exists to do it over HTTP yet.
func (e *testEnv) registerAdmin(t *testing.T, username string) (string, types.User) {
	t.Helper()

	token, user := e.register(t, username)
	role := types.RoleAdmin
	promoted, err := e.users.Update(context.Background(), user.ID, types.UserUpdate{Role: &role})
	if err != nil {
		t.Fatalf("promote %s: %v", username, err)
	}
	return token, promoted
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(rec.Body.Bytes(), &value); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return value
}

func TestEventLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	adminToken, admin := env.registerAdmin(t, "pastor")
	memberToken, _ := env.register(t, "ruth")

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	rec := env.do(t, http.MethodPost, "/api/events", adminToken, CreateEventRequest{
		Title:     "Service",
		EventType: "service",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Location:  "Hall",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: status %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[types.Event](t, rec)
	if created.ID < 1 {
		t.Fatalf("expected assigned id, got %d", created.ID)
	}
	if created.CreatedBy != admin.ID {
		t.Errorf("expected created_by %d, got %d", admin.ID, created.CreatedBy)
	}

	path := fmt.Sprintf("/api/events/%d", created.ID)

	// Non-owner member is refused.
	rec = env.do(t, http.MethodPatch, path, memberToken, map[string]string{"title": "Hijacked"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("member patch: expected 403, got %d", rec.Code)
	}

	// Owner updates the title; identity and audit fields are untouched.
	rec = env.do(t, http.MethodPatch, path, adminToken, map[string]string{"title": "Evening Service"})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[types.Event](t, rec)
	if updated.Title != "Evening Service" {
		t.Errorf("title not updated: %q", updated.Title)
	}
	if updated.ID != created.ID || updated.CreatedBy != created.CreatedBy || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("identity or audit fields changed: %+v vs %+v", updated, created)
	}
}

func TestOwnershipGateOrdering(t *testing.T) {
	env := newTestEnv(t)
	ownerToken, _ := env.register(t, "owner")
	otherToken, _ := env.register(t, "other")

	rec := env.do(t, http.MethodPost, "/api/posts", ownerToken, CreatePostRequest{Title: "Hello", Content: "World"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: status %d", rec.Code)
	}
	post := decodeBody[types.Post](t, rec)

	// Existing resource, wrong principal: forbidden.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), otherToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by non-owner: expected 403, got %d", rec.Code)
	}

	// Missing resource: not found, even for a non-owner.
	rec = env.do(t, http.MethodDelete, "/api/posts/9999", otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing: expected 404, got %d", rec.Code)
	}

	// Unauthenticated mutation never reaches the ownership check.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("delete unauthenticated: expected 401, got %d", rec.Code)
	}

	// The owner can delete, and a second delete reports not found.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete by owner: expected 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete: expected 404, got %d", rec.Code)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "writer")

	rec := env.do(t, http.MethodPost, "/api/events", token, map[string]string{"description": "no title"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Message == "" {
		t.Errorf("expected a message")
	}
	if len(resp.Errors) == 0 {
		t.Fatalf("expected field violations")
	}
	found := false
	for _, fieldErr := range resp.Errors {
		if fieldErr.Field == "title" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a violation for title, got %+v", resp.Errors)
	}
}

func TestPasswordNeverLeaks(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAdmin(t, "shepherd")
	_, member := env.register(t, "lamb")

	checks := []struct {
		name string
		rec  *httptest.ResponseRecorder
	}{
		{"user list", env.do(t, http.MethodGet, "/api/users", adminToken, nil)},
		{"single user", env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", member.ID), adminToken, nil)},
		{"user update", env.do(t, http.MethodPatch, fmt.Sprintf("/api/users/%d", member.ID), adminToken, map[string]string{"name": "Renamed"})},
		{"me", env.do(t, http.MethodGet, "/api/auth/me", adminToken, nil)},
	}
	for _, check := range checks {
		if check.rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d: %s", check.name, check.rec.Code, check.rec.Body.String())
		}
		if strings.Contains(strings.ToLower(check.rec.Body.String()), "password") {
			t.Errorf("%s: response contains a password field: %s", check.name, check.rec.Body.String())
		}
	}
}

func TestUserAdministrationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	memberToken, member := env.register(t, "plain")

	rec := env.do(t, http.MethodGet, "/api/users", memberToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member user list: expected 403, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous user list: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/users/%d", member.ID), memberToken, map[string]string{"role": "admin"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("member self-promotion: expected 403, got %d", rec.Code)
	}
}

func TestUpcomingEventsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "planner")

	now := time.Now().UTC()
	for _, offset := range []time.Duration{time.Hour, 3 * time.Hour, -time.Hour, 2 * time.Hour} {
		rec := env.do(t, http.MethodPost, "/api/events", token, CreateEventRequest{
			Title:     "e",
			EventType: "meeting",
			StartTime: now.Add(offset),
			EndTime:   now.Add(offset + time.Hour),
			Location:  "Room",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create event: status %d", rec.Code)
		}
	}

	rec := env.do(t, http.MethodGet, "/api/events/upcoming?count=3", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("upcoming: status %d", rec.Code)
	}
	events := decodeBody[[]types.Event](t, rec)
	if len(events) != 3 {
		t.Fatalf("expected 3 upcoming events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].StartTime.After(events[i].StartTime) {
			t.Errorf("events out of order at %d", i)
		}
	}

	rec = env.do(t, http.MethodGet, "/api/events/upcoming?count=bogus", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus count: expected 400, got %d", rec.Code)
	}
}

func TestSettingsUpsertStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAdmin(t, "keeper")
	memberToken, _ := env.register(t, "visitor")

	rec := env.do(t, http.MethodPost, "/api/site-settings", adminToken, UpsertSettingRequest{Key: "siteName", Value: "A"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first upsert: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/site-settings", adminToken, UpsertSettingRequest{Key: "siteName", Value: "B"})
	if rec.Code != http.StatusOK {
		t.Fatalf("second upsert: expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/site-settings/siteName", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get by key: status %d", rec.Code)
	}
	setting := decodeBody[types.SiteSetting](t, rec)
	if setting.Value != "B" {
		t.Errorf("expected value B, got %q", setting.Value)
	}

	rec = env.do(t, http.MethodPost, "/api/site-settings", memberToken, UpsertSettingRequest{Key: "x", Value: "y"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("member upsert: expected 403, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/site-settings/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing key: expected 404, got %d", rec.Code)
	}
}

func TestSettingsBatchSkipsMalformedElements(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAdmin(t, "steward")

	body := []map[string]string{
		{"key": "a", "value": "1"},
		{"key": "b", "value": "2"},
		{"foo": "bad"},
	}
	rec := env.do(t, http.MethodPost, "/api/site-settings/batch", adminToken, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("batch: status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[BatchUpsertResponse](t, rec)
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}

	rec = env.do(t, http.MethodGet, "/api/site-settings", "", nil)
	settings := decodeBody[[]types.SiteSetting](t, rec)
	if len(settings) != 2 {
		t.Errorf("expected 2 stored settings, got %d", len(settings))
	}
}

func TestForumRepliesByTopic(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "talker")

	rec := env.do(t, http.MethodPost, "/api/forum/topics", token, CreateTopicRequest{Title: "Welcome", Content: "Say hi", Category: "general"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create topic: status %d", rec.Code)
	}
	topic := decodeBody[types.ForumTopic](t, rec)

	for i := 0; i < 3; i++ {
		rec = env.do(t, http.MethodPost, "/api/forum/replies", token, CreateReplyRequest{Content: fmt.Sprintf("reply %d", i), TopicID: topic.ID})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create reply: status %d", rec.Code)
		}
	}

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/forum/topics/%d/replies", topic.ID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list replies: status %d", rec.Code)
	}
	replies := decodeBody[[]types.ForumReply](t, rec)
	if len(replies) != 3 {
		t.Fatalf("expected 3 replies, got %d", len(replies))
	}
	for i, reply := range replies {
		if reply.TopicID != topic.ID {
			t.Errorf("reply %d belongs to topic %d", i, reply.TopicID)
		}
	}
}

func TestAuthFlows(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jonah")

	// Duplicate username is refused.
	rec := env.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: "jonah",
		Email:    "jonah2@example.com",
		Name:     "Jonah",
		Password: "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Username: "jonah", Password: "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Username: "jonah", Password: "password123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d", rec.Code)
	}
	resp := decodeBody[AuthResponse](t, rec)
	if resp.Token == "" {
		t.Errorf("expected a token")
	}

	rec = env.do(t, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", rec.Code)
	}
}

func TestGetMissingAndInvalidIDs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/studies/42", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing study: expected 404, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/studies/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id: expected 400, got %d", rec.Code)
	}
}

func TestMediaPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "uploader")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "banner.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("not a real png")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: status %d: %s", rec.Code, rec.Body.String())
	}
	object := decodeBody[storage.MediaObject](t, rec)
	if object.URL == "" || !strings.Contains(object.URL, "banner.png") {
		t.Errorf("expected a synthetic url for banner.png, got %q", object.URL)
	}

	listRec := env.do(t, http.MethodGet, "/api/media", "", nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list media: status %d", listRec.Code)
	}
	objects := decodeBody[[]storage.MediaObject](t, listRec)
	if len(objects) == 0 {
		t.Errorf("expected sample media records")
	}
}
