package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/slimtrack/slimtrack/internal/accounts"
	"github.com/slimtrack/slimtrack/internal/auth"
	"github.com/slimtrack/slimtrack/internal/blob"
	"github.com/slimtrack/slimtrack/internal/config"
	"github.com/slimtrack/slimtrack/internal/exerciselog"
	"github.com/slimtrack/slimtrack/internal/foodlog"
	"github.com/slimtrack/slimtrack/internal/kvstore"
	"github.com/slimtrack/slimtrack/internal/profile"
	"github.com/slimtrack/slimtrack/internal/reports"
	"github.com/slimtrack/slimtrack/internal/snapshot"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	kv             kvstore.Store
	registry       *accounts.Registry
	manager        *snapshot.Manager
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()

	registry, err := accounts.NewRegistry(context.Background(), s.kv)
	if err != nil {
		return nil, fmt.Errorf("init accounts registry: %w", err)
	}
	s.registry = registry

	s.routes()
	return s, nil
}

// initStorage инициализирует KV store (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.kv = kvstore.NewMemory()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	pg, err := kvstore.NewPostgres(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.kv = kvstore.NewMemory()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.kv = pg
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// In-memory working set for the active account
	profileStore := profile.NewStore()
	foodStore := foodlog.NewStore()
	exerciseStore := exerciselog.NewStore()

	s.manager = snapshot.NewManager(s.kv, s.registry, profileStore, foodStore, exerciseStore)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(s.config, authService, s.registry)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Profile API
	profileHandler := profile.NewHandler(profileStore)
	s.mux.HandleFunc("GET /v1/profile", profileHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/profile", profileHandler.HandlePut)
	s.mux.HandleFunc("PATCH /v1/profile", profileHandler.HandlePatch)
	s.mux.HandleFunc("POST /v1/profile/onboarding/complete", profileHandler.HandleCompleteOnboarding)
	s.mux.HandleFunc("PUT /v1/profile/subscription", profileHandler.HandlePutSubscription)

	// Weight logs API
	s.mux.HandleFunc("GET /v1/weight-logs", profileHandler.HandleListWeightLogs)
	s.mux.HandleFunc("POST /v1/weight-logs", profileHandler.HandleAddWeightLog)

	// Food logs API
	photoStore := s.initBlobStore()
	foodHandler := foodlog.NewHandler(foodStore, photoStore, s.config)
	s.mux.HandleFunc("GET /v1/food-logs", foodHandler.HandleList)
	s.mux.HandleFunc("POST /v1/food-logs", foodHandler.HandleCreate)
	s.mux.HandleFunc("PATCH /v1/food-logs/{id}", foodHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/food-logs/{id}", foodHandler.HandleDelete)
	s.mux.HandleFunc("GET /v1/food-logs/summary", foodHandler.HandleSummary)
	s.mux.HandleFunc("GET /v1/food-logs/favorites", foodHandler.HandleListFavorites)
	s.mux.HandleFunc("POST /v1/food-logs/favorites", foodHandler.HandleAddFavorite)
	s.mux.HandleFunc("DELETE /v1/food-logs/favorites/{id}", foodHandler.HandleRemoveFavorite)
	s.mux.HandleFunc("GET /v1/food-logs/equivalents", foodHandler.HandleListEquivalents)
	s.mux.HandleFunc("PUT /v1/food-logs/{id}/photo", foodHandler.HandlePutPhoto)
	s.mux.HandleFunc("GET /v1/food-logs/{id}/photo", foodHandler.HandleGetPhoto)

	// Exercise logs API
	exerciseHandler := exerciselog.NewHandler(exerciseStore)
	s.mux.HandleFunc("GET /v1/exercise-logs", exerciseHandler.HandleList)
	s.mux.HandleFunc("POST /v1/exercise-logs", exerciseHandler.HandleCreate)
	s.mux.HandleFunc("PATCH /v1/exercise-logs/{id}", exerciseHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/exercise-logs/{id}", exerciseHandler.HandleDelete)
	s.mux.HandleFunc("GET /v1/exercise-logs/summary", exerciseHandler.HandleSummary)

	// Accounts API
	accountsHandler := snapshot.NewHandler(s.manager, s.registry)
	s.mux.HandleFunc("GET /v1/accounts", accountsHandler.HandleList)
	s.mux.HandleFunc("POST /v1/accounts/switch", accountsHandler.HandleSwitch)
	s.mux.HandleFunc("POST /v1/accounts/signout", accountsHandler.HandleSignOut)

	// Reports API
	reportsService := reports.NewService(profileStore, foodStore, exerciseStore, s.config.ReportsMaxRangeDays)
	reportsHandler := reports.NewHandlers(reportsService)
	s.mux.HandleFunc("GET /v1/reports/progress", reportsHandler.HandleProgress)
}

// initBlobStore initializes the meal photo blob store.
func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing photo store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize photo store: %v", err)
	}
	log.Printf("INFO blob: photo blob mode: %s", mode)
	return store
}

// MigrateLegacy moves pre-account snapshots under the synthetic
// local account. Called once on startup.
func (s *Server) MigrateLegacy(ctx context.Context) error {
	return s.manager.MigrateLegacy(ctx)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler builds the full middleware chain (outermost first):
// CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Profile API: http://localhost%s/v1/profile\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close сохраняет состояние активного аккаунта и закрывает storage.
func (s *Server) Close() error {
	if s.manager != nil {
		if err := s.manager.Save(context.Background()); err != nil {
			log.Printf("WARN failed to save account state on shutdown: %v", err)
		}
	}
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}
