package handler

import (
	"encoding/json"
	"net/http"
)

// InterceptChat handles POST /chat/intercept.
// The widget calls it before sending a message to the assistant; a handled
// reply is shown locally, anything else is forwarded unchanged.
func (s *Server) InterceptChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be {\"message\": string}"))
		return
	}

	reply := s.chat.Intercept(r.Context(), req.Message)
	if !reply.Handled {
		writeJSON(w, http.StatusOK, ChatResponse{Handled: false})
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{
		Handled: true,
		HerbId:  &reply.HerbID,
		Text:    &reply.Text,
		Html:    &reply.HTML,
	})
}
