package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

type amountRequest struct {
	Amount string `json:"amount"`
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Connect(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "connected"})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SetupAccount(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.Deposit(r.Context(), req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.Withdraw(r.Context(), req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ClaimReward(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ManualRefresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.svc.Position()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			ErrorCode: types.RecordNotFound.String(),
			Message:   "no stake position fetched yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.History())
}

func (s *Server) handleNotification(w http.ResponseWriter, r *http.Request) {
	notification, ok := s.svc.Notification()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func decodeAmount(r *http.Request) (*amountRequest, *types.Error) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.InvalidAmount, err)
	}
	return &req, nil
}

func writeError(w http.ResponseWriter, err *types.Error) {
	writeJSON(w, err.StatusCode, errorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
