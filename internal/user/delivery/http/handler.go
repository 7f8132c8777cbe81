package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pededrink/internal/user/domain"
	"github.com/tair/pededrink/internal/user/usecase/command"
	"github.com/tair/pededrink/internal/user/usecase/query"
	"github.com/tair/pededrink/pkg/logger"
	"github.com/tair/pededrink/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Commands groups the account write handlers.
type Commands struct {
	Register *command.RegisterUserHandler
	Login    *command.LoginUserHandler
	Refresh  *command.RefreshTokenHandler
	Update   *command.UpdateUserHandler
	Delete   *command.DeleteUserHandler
}

// Queries groups the account read handlers.
type Queries struct {
	Get   *query.GetUserHandler
	List  *query.ListUsersHandler
	Stats *query.GetStatsHandler
}

// UserHandler handles HTTP requests for authentication and accounts
type UserHandler struct {
	commands Commands
	queries  Queries
	metrics  *middleware.HTTPMetrics

	registeredUsers prometheus.Gauge
	loginFailures   prometheus.Counter
}

// NewUserHandler creates a new user handler
func NewUserHandler(commands Commands, queries Queries, metrics *middleware.HTTPMetrics, reg prometheus.Registerer) *UserHandler {
	h := &UserHandler{
		commands: commands,
		queries:  queries,
		metrics:  metrics,
		registeredUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pededrink",
			Name:      "registered_users",
			Help:      "Number of registered user accounts",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pededrink",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts",
		}),
	}
	reg.MustRegister(h.registeredUsers, h.loginFailures)
	return h
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}

// RegisterRoutes registers all auth and account routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/auth/login", h.metrics.Wrap("/api/auth/login", h.Login)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", h.metrics.Wrap("/api/auth/register", h.Register)).Methods(http.MethodPost)

	// Authenticated user routes
	router.HandleFunc("/api/auth/verify", h.metrics.Wrap("/api/auth/verify", middleware.AuthMiddleware(h.Verify))).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/refresh", h.metrics.Wrap("/api/auth/refresh", middleware.AuthMiddleware(h.Refresh))).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/profile", h.metrics.Wrap("/api/auth/profile", middleware.AuthMiddleware(h.Profile))).Methods(http.MethodGet)

	// Admin routes
	router.HandleFunc("/api/auth/users", h.metrics.Wrap("/api/auth/users", middleware.AdminMiddleware(h.ListUsers))).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/users", h.metrics.Wrap("/api/auth/users", middleware.AdminMiddleware(h.CreateUser))).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/users/stats", h.metrics.Wrap("/api/auth/users/stats", middleware.AdminMiddleware(h.Stats))).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/users/{id}", h.metrics.Wrap("/api/auth/users/{id}", middleware.AdminMiddleware(h.UpdateUser))).Methods(http.MethodPut)
	router.HandleFunc("/api/auth/users/{id}", h.metrics.Wrap("/api/auth/users/{id}", middleware.AdminMiddleware(h.DeleteUser))).Methods(http.MethodDelete)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.commands.Login.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.loginFailures.Inc()
			logger.Warn(r.Context()).Str("email", req.Email).Msg("Rejected login")
		}
		h.respondError(w, r, err, "Failed to login")
		return
	}

	logger.Info(r.Context()).Str("user_id", resp.User.ID).Msg("User logged in")
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// Register handles POST /api/auth/register. Self-registered accounts always
// get the user role.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

// CreateUser handles POST /api/auth/users (admin only)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request, allowRole bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	role := domain.RoleUser
	if allowRole && req.Role != "" {
		role = req.Role
	}

	resp, err := h.commands.Register.Handle(r.Context(), command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to register user")
		return
	}

	h.updateRegisteredUsers(r.Context())
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User created successfully",
		Data:    resp,
	})
}

// Verify handles GET /api/auth/verify
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Token is valid",
		Data:    map[string]interface{}{"user": user},
	})
}

// Profile handles GET /api/auth/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User profile",
		Data:    map[string]interface{}{"user": user},
	})
}

// Refresh handles POST /api/auth/refresh
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.commands.Refresh.Handle(r.Context(), command.RefreshTokenCommand{
		UserID: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to refresh token")
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Token refreshed successfully",
		Data:    map[string]string{"token": token},
	})
}

// ListUsers handles GET /api/auth/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.List.Handle(r.Context(), query.ListUsersQuery{Role: r.URL.Query().Get("role")})
	if err != nil {
		h.respondError(w, r, err, "Failed to list users")
		return
	}

	h.registeredUsers.Set(float64(len(users)))
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"users": users,
			"total": len(users),
		},
	})
}

// Stats handles GET /api/auth/users/stats (admin only)
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.Stats.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		h.respondError(w, r, err, "Failed to compute user stats")
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// UpdateUser handles PUT /api/auth/users/{id} (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.commands.Update.Handle(r.Context(), command.UpdateUserCommand{
		ID:    mux.Vars(r)["id"],
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to update user")
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser handles DELETE /api/auth/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.commands.Delete.Handle(r.Context(), command.DeleteUserCommand{
		ID:          mux.Vars(r)["id"],
		RequestedBy: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to delete user")
		return
	}

	h.updateRegisteredUsers(r.Context())
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
}

func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, err := h.queries.Get.Handle(r.Context(), query.GetUserQuery{
		ID: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to load user")
		return nil, false
	}
	return user, true
}

// updateRegisteredUsers refreshes the account gauge
func (h *UserHandler) updateRegisteredUsers(ctx context.Context) {
	stats, err := h.queries.Stats.Handle(ctx, query.GetStatsQuery{})
	if err == nil {
		h.registeredUsers.Set(float64(stats.TotalUsers))
	}
}

func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid data",
			Details: validation.Rules,
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid credentials"})
	case errors.Is(err, domain.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found"})
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, command.ErrSelfDelete):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: capitalize(err.Error())})
	default:
		logger.Error(r.Context()).Err(err).Msg(action)
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
