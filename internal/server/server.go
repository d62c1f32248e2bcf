package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ldi/tasker/internal/tasks"
	"github.com/ldi/tasker/pkg/models"
)

type Server struct {
	manager *tasks.Manager
	server  *http.Server
}

type addTaskRequest struct {
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
}

func NewServer(manager *tasks.Manager) *Server {
	return &Server{manager: manager}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.handleCompleteTask)

	return mux
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.manager.Tasks(), nil)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	priority := models.DefaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	t, err := s.manager.AddTask(r.Context(), req.Description, req.DueDate, priority)
	s.respond(w, http.StatusCreated, t, err)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	t, found := s.manager.GetTaskByID(id)
	if !found {
		s.respond(w, 0, nil, fmt.Errorf("%w: %d", tasks.ErrTaskNotFound, id))
		return
	}
	s.respond(w, http.StatusOK, t, nil)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	done, err := s.manager.MarkTaskCompleted(r.Context(), id)
	if err == nil && !done {
		err = fmt.Errorf("%w: %d", tasks.ErrTaskNotFound, id)
	}
	if err != nil {
		s.respond(w, 0, nil, err)
		return
	}

	t, _ := s.manager.GetTaskByID(id)
	s.respond(w, http.StatusOK, t, nil)
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) respond(w http.ResponseWriter, status int, data any, err error) {
	if errors.Is(err, tasks.ErrTaskNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
