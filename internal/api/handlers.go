// Package api exposes the HTTP route layer for the exercise tracker.
package api

import (
	"net/http"
	"strconv"
	"time"

	"example.com/exercisetracker/internal/domain"
)

// readableDate renders dates the way clients of the original API expect,
// e.g. "Mon Aug 31 2026".
const readableDate = "Mon Jan 02 2006"

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	users     *domain.UserService
	exercises *domain.ExerciseService
}

// NewHandler builds a Handler.
func NewHandler(users *domain.UserService, exercises *domain.ExerciseService) *Handler {
	return &Handler{users: users, exercises: exercises}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/exercise/users", h.listUsers)
	mux.HandleFunc("/api/exercise/new-user", h.createUser)
	mux.HandleFunc("/api/exercise/add", h.addExercise)
	mux.HandleFunc("/api/exercise/log", h.exerciseLog)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	// A route claims only its own method; anything else is an unmatched route.
	if r.Method != http.MethodGet {
		writeError(w, domain.ErrNotFound)
		return
	}

	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, userView{Username: user.Username, ID: user.ID})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, domain.ErrNotFound)
		return
	}

	values, err := bodyValues(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), values.Get("username"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userView{Username: user.Username, ID: user.ID})
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, domain.ErrNotFound)
		return
	}

	values, err := bodyValues(r)
	if err != nil {
		writeError(w, err)
		return
	}

	input := domain.RecordExerciseInput{
		UserID:      values.Get("userId"),
		Description: values.Get("description"),
	}

	if raw := values.Get("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, &domain.ValidationError{Fields: []domain.FieldError{{Field: "duration", Message: "invalid duration"}}})
			return
		}
		input.Duration = duration
	}

	if raw := values.Get("date"); raw != "" {
		date := parseDate(raw)
		if date == nil {
			writeError(w, &domain.ValidationError{Fields: []domain.FieldError{{Field: "date", Message: "invalid date"}}})
			return
		}
		input.Date = date
	}

	exercise, err := h.exercises.RecordExercise(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exerciseView{
		UserID:      exercise.UserID,
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.Format(readableDate),
	})
}

func (h *Handler) exerciseLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, domain.ErrNotFound)
		return
	}

	query := r.URL.Query()

	// An unparseable bound means "no bound", not an error.
	from := parseDate(query.Get("from"))
	to := parseDate(query.Get("to"))

	// A non-numeric limit means "no limit".
	limit := 0
	if parsed, err := strconv.Atoi(query.Get("limit")); err == nil && parsed > 0 {
		limit = parsed
	}

	user, exercises, err := h.exercises.Log(r.Context(), query.Get("userId"), from, to, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]logEntryView, 0, len(exercises))
	for _, exercise := range exercises {
		entries = append(entries, logEntryView{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.Date.Format(readableDate),
		})
	}

	view := logView{
		UserID:   user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}
	if from != nil {
		view.From = from.Format(readableDate)
	}
	if to != nil {
		view.To = to.Format(readableDate)
	}
	writeJSON(w, http.StatusOK, view)
}

// parseDate accepts calendar dates and RFC 3339 timestamps; anything else
// returns nil.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

// userView exposes a stored user. The identifier keeps the original wire
// name so existing clients keep working.
type userView struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// exerciseView is the response body for a newly recorded exercise.
type exerciseView struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// logView packages a filtered exercise log. From and To are echoed only when
// the corresponding query parameter parsed as a date.
type logView struct {
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	From     string         `json:"from,omitempty"`
	To       string         `json:"to,omitempty"`
	Count    int            `json:"count"`
	Log      []logEntryView `json:"log"`
}
