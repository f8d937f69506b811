// Package server exposes the dispatcher and the coordinate pipeline over
// HTTP. Only total model-gateway failure and plan parse failure surface as
// non-200 responses; every other failure is already a user-facing string by
// the time it reaches this layer.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
	planx "agenthub/agent/plan"
	promptx "agenthub/agent/prompt"
)

type Config struct {
	Addr string `envconfig:"ADDR" split_words:"true" default:":3000"`
}

type Server struct {
	dispatcher contractx.Dispatcher
	generator  *planx.Generator
	executor   *planx.Executor
	catalog    *promptx.Catalog
	mux        *http.ServeMux
}

func New(dispatcher contractx.Dispatcher, generator *planx.Generator, executor *planx.Executor, catalog *promptx.Catalog) (*Server, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if generator == nil {
		return nil, errors.New("plan generator is required")
	}
	if executor == nil {
		return nil, errors.New("plan executor is required")
	}
	if catalog == nil {
		return nil, errors.New("agent catalog is required")
	}

	s := &Server{
		dispatcher: dispatcher,
		generator:  generator,
		executor:   executor,
		catalog:    catalog,
		mux:        http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /", s.handleHealth)
	s.mux.HandleFunc("POST /api/agent", s.handleAgent)
	s.mux.HandleFunc("POST /api/coordinate", s.handleCoordinate)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.NewString()
	w.Header().Set("X-Request-Id", reqID)

	// The mobile client calls from a different origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mux.ServeHTTP(w, r)
	log.Info().
		Str("request_id", reqID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Dur("elapsed", time.Since(start)).
		Msg("request handled")
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("agenthub backend listening")
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "AgentHub Backend çalışıyor!"})
}

type agentRequest struct {
	AgentID     string `json:"agentId"`
	AgentName   string `json:"agentName"`
	UserMessage string `json:"userMessage"`
}

type agentResponse struct {
	Success   bool   `json:"success"`
	AgentName string `json:"agentName,omitempty"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		writeErr(w, http.StatusBadRequest, "userMessage boş olamaz")
		return
	}

	agentName := strings.TrimSpace(req.AgentName)
	if agentName == "" {
		agentName = s.catalog.Resolve(req.AgentID).Name
	}

	reply, err := s.dispatcher.Dispatch(r.Context(), req.AgentID, req.UserMessage)
	if err != nil {
		log.Error().Err(err).Str("agent_id", req.AgentID).Msg("agent dispatch failed")
		writeErr(w, http.StatusInternalServerError, serviceUnavailableMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, agentResponse{
		Success:   true,
		AgentName: agentName,
		Response:  reply,
	})
}

type coordinateRequest struct {
	UserMessage string `json:"userMessage"`
}

func (s *Server) handleCoordinate(w http.ResponseWriter, r *http.Request) {
	var req coordinateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		writeErr(w, http.StatusBadRequest, "userMessage boş olamaz")
		return
	}

	p, err := s.generator.Generate(r.Context(), req.UserMessage)
	if err != nil {
		log.Error().Err(err).Msg("plan generation failed")
		writeErr(w, http.StatusInternalServerError, serviceUnavailableMessage(err))
		return
	}

	results := s.executor.Execute(r.Context(), p)
	writeJSON(w, http.StatusOK, agentResponse{
		Success:  true,
		Response: planx.Transcript(p, results),
	})
}

func serviceUnavailableMessage(err error) string {
	switch {
	case errors.Is(err, contractx.ErrMalformedPlan):
		return "Plan oluşturulamadı, lütfen isteğinizi farklı şekilde ifade edin."
	case errors.Is(err, contractx.ErrCredentialsExhausted):
		return "Yapay zeka servisi şu anda kullanılamıyor, lütfen daha sonra tekrar deneyin."
	default:
		return fmt.Sprintf("Bir hata oluştu: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, agentResponse{Success: false, Error: msg})
}
