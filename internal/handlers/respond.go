package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nokokiii/API-Engineering-Exam/internal/app"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type messageBody struct {
	Message string `json:"message"`
}

var userCreated = messageBody{Message: "User created successfully"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := app.AsError(err)
	if e.Status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(e.Err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, e.Status, errorBody{Error: e.Title, Message: e.Message})
}
