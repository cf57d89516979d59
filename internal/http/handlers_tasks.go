package http

import (
	"net/http"

	"lifeos/internal/core"
	"lifeos/internal/log"
)

type taskListResponse struct {
	Tasks     []core.Task `json:"tasks"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.session.Tasks()
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	NewJSONResponse().Body(taskListResponse{Tasks: tasks, Total: len(tasks), Completed: completed}).Write(w)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	task, err := s.session.AddTask(r.Context(), p.Get("text"))
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	s.invalidate(r.Context())
	log.FromContext(r.Context()).InfoContext(r.Context(), "Task created", log.FieldTaskID, task.ID)
	NewJSONResponse().Status(http.StatusCreated).Body(task).Write(w)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	task, err := s.session.ToggleTask(r.Context(), id)
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	s.invalidate(r.Context())
	NewJSONResponse().Body(task).Write(w)
}

// handleDeleteTask needs ?confirm=true; without it the task is kept and 409
// tells the client to ask the user first.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if err := s.session.DeleteTask(r.Context(), id, parseConfirm(r.URL.Query())); err != nil {
		DomainError(err).Write(w)
		return
	}
	s.invalidate(r.Context())
	log.FromContext(r.Context()).InfoContext(r.Context(), "Task deleted", log.FieldTaskID, id)
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	n := s.session.ClearCompleted(r.Context())
	if n > 0 {
		s.invalidate(r.Context())
	}
	NewJSONResponse().Body(map[string]int{"removed": n}).Write(w)
}
