package http

import (
	"net/http"
	"time"

	"lifeos/internal/core"
	"lifeos/internal/habit"
)

type habitResponse struct {
	Result        *habit.Result `json:"result,omitempty"`
	Streak        int           `json:"streak"`
	LastHabitDate *time.Time    `json:"lastHabitDate,omitempty"`
	MarkedToday   bool          `json:"markedToday"`
	Motivation    string        `json:"motivation"`
	Calendar      []habit.Day   `json:"calendar"`
}

func (s *Server) habitState(res *habit.Result) habitResponse {
	v := s.currentView()
	return habitResponse{
		Result:        res,
		Streak:        v.Streak,
		LastHabitDate: v.LastHabitDate,
		MarkedToday:   v.MarkedToday,
		Motivation:    v.Motivation,
		Calendar:      v.Calendar,
	}
}

func (s *Server) handleHabit(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.habitState(nil)).Write(w)
}

// handleMarkToday answers 200 with outcome already_marked_today on a repeat
// mark; nothing changes in that case.
func (s *Server) handleMarkToday(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.MarkToday(r.Context())
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	if res.Changed() {
		s.invalidate(r.Context())
	}
	NewJSONResponse().Body(s.habitState(&res)).Write(w)
}

func (s *Server) handleMarkDay(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}
	date, err := core.ParseDay(p.Get("date"), s.session.Location())
	if err != nil {
		BadRequestError("date must be YYYY-MM-DD").Write(w)
		return
	}

	res, err := s.session.MarkDay(r.Context(), date)
	if err != nil {
		DomainError(err).Write(w)
		return
	}
	if res.Changed() {
		s.invalidate(r.Context())
	}
	NewJSONResponse().Body(s.habitState(&res)).Write(w)
}

func (s *Server) handleResetStreak(w http.ResponseWriter, r *http.Request) {
	res := s.session.ResetStreak(r.Context())
	if res.Changed() {
		s.invalidate(r.Context())
	}
	NewJSONResponse().Body(s.habitState(&res)).Write(w)
}
