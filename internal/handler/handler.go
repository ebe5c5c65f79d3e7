package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/transactions-service/internal/models"
)

const maxBodyBytes = 1 << 20

// TransactionService is what the handlers need from the service layer
type TransactionService interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	svc TransactionService
	log *logrus.Logger
}

func NewHandler(svc TransactionService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers the handler endpoints on r
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	r.HandleFunc("/transactions", h.AddTransaction).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// ListTransactions handles GET /transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// AddTransaction handles POST /transactions
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.WithError(err).Debug("Failed to read transaction payload")
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Unmarshal rejects anything after the JSON object.
	var t models.Transaction
	if err := json.Unmarshal(body, &t); err != nil {
		h.log.WithError(err).Debug("Rejected transaction payload")
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	stored, err := h.svc.AddTransaction(r.Context(), t)
	if err != nil {
		// Both repository error kinds are server faults.
		h.writeError(w, http.StatusInternalServerError, "failed to add transaction")
		return
	}
	h.writeJSON(w, http.StatusOK, stored)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Debug("Failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
