package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/churchhub/apiserver/config"
	"github.com/churchhub/apiserver/internal/db"
	"github.com/churchhub/apiserver/internal/handlers"
	"github.com/churchhub/apiserver/internal/services"
	"github.com/churchhub/apiserver/internal/storage"
	"github.com/churchhub/apiserver/internal/store"
	"github.com/churchhub/apiserver/internal/store/memory"
	"github.com/churchhub/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// repositories bundles one backing implementation per entity kind so
// the storage driver can be swapped without touching the route layer.
type repositories struct {
	users    services.UserRepository
	events   services.EventRepository
	studies  services.StudyRepository
	posts    services.PostRepository
	topics   services.ForumTopicRepository
	replies  services.ForumReplyRepository
	settings services.SettingRepository
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	repos, dbConn, err := newRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(repos.users)
	eventService := services.NewEventService(repos.events)
	studyService := services.NewStudyService(repos.studies)
	postService := services.NewPostService(repos.posts)
	forumService := services.NewForumService(repos.topics, repos.replies)
	settingService := services.NewSettingService(repos.settings)
	mediaStorage := storage.NewStorage(storage.NewStubStorage(""))

	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		jwtSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if jwtSecret == "" {
		if dbConn != nil {
			_ = dbConn.Close()
		}
		return nil, errors.New("JWT_SECRET is required")
	}

	if err := seedAdmin(ctx, cfg.Admin, userService); err != nil {
		if dbConn != nil {
			_ = dbConn.Close()
		}
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	authMiddleware := handlers.RequireAuth(jwtSecret, userService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, userService, jwtSecret)
		})
		r.Route("/events", func(r chi.Router) {
			handlers.EventRouter(r, eventService, authMiddleware)
		})
		r.Route("/studies", func(r chi.Router) {
			handlers.StudyRouter(r, studyService, authMiddleware)
		})
		r.Route("/posts", func(r chi.Router) {
			handlers.PostRouter(r, postService, authMiddleware)
		})
		r.Route("/forum", func(r chi.Router) {
			handlers.ForumRouter(r, forumService, authMiddleware)
		})
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, authMiddleware)
		})
		r.Route("/site-settings", func(r chi.Router) {
			handlers.SettingRouter(r, settingService, authMiddleware)
		})
		r.Route("/media", func(r chi.Router) {
			handlers.MediaRouter(r, mediaStorage, authMiddleware)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

func newRepositories(ctx context.Context, cfg config.Config) (repositories, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			users:    store.NewUserRepository(dbConn),
			events:   store.NewEventRepository(dbConn),
			studies:  store.NewStudyRepository(dbConn),
			posts:    store.NewPostRepository(dbConn),
			topics:   store.NewForumTopicRepository(dbConn),
			replies:  store.NewForumReplyRepository(dbConn),
			settings: store.NewSettingRepository(dbConn),
		}, dbConn, nil
	case config.StorageDriverMemory, "":
		return repositories{
			users:    memory.NewUserRepository(),
			events:   memory.NewEventRepository(),
			studies:  memory.NewStudyRepository(),
			posts:    memory.NewPostRepository(),
			topics:   memory.NewForumTopicRepository(),
			replies:  memory.NewForumReplyRepository(),
			settings: memory.NewSettingRepository(),
		}, nil, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// seedAdmin creates the bootstrap admin account if configured and not
// already present.
func seedAdmin(ctx context.Context, cfg config.AdminConfig, users *services.UserService) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	if _, err := users.GetByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, types.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		Name:         "Administrator",
		Role:         types.RoleAdmin,
		PasswordHash: string(hashed),
	})
	if errors.Is(err, store.ErrConflict) {
		return nil
	}
	return err
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
