package api

import (
	"net/http"

	"github.com/splitty/splitty/internal/models"
)

type createEventRequest struct {
	Title string `json:"title"`
}

type eventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at"`
}

func toEventResponse(e *models.Event) eventResponse {
	return eventResponse{ID: e.ID, Title: e.Title, CreatedAt: e.CreatedAt}
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := s.svc.CreateEvent(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.svc.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.ListEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type participantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	IBAN  string `json:"iban"`
	BIC   string `json:"bic"`
}

type participantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	IBAN      string `json:"iban,omitempty"`
	BIC       string `json:"bic,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toParticipantResponse(p *models.Participant) participantResponse {
	return participantResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		IBAN:      p.IBAN,
		BIC:       p.BIC,
		CreatedAt: p.CreatedAt,
	}
}

func (s *Server) addParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	participant := &models.Participant{
		Name:  req.Name,
		Email: req.Email,
		IBAN:  req.IBAN,
		BIC:   req.BIC,
	}
	if err := s.svc.AddParticipant(r.Context(), r.PathValue("id"), participant); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantResponse(participant))
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.svc.ListParticipants(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, toParticipantResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) removeParticipant(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveParticipant(r.Context(), r.PathValue("id"), r.PathValue("pid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
