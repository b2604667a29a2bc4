// Package handler exposes client onboarding and listing over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ledger/internal/clients/models"
	"ledger/internal/clients/service"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/platform/httputil"
)

// maxPageSize caps one listing page.
const maxPageSize = 100

// ClientService is the onboarding surface the handler drives.
type ClientService interface {
	AddClient(ctx context.Context, req models.AddClientRequest) (*service.AddClientResult, error)
	ListClientsByAgency(ctx context.Context, agencyID int64, f models.ListFilter) (*models.Page, error)
}

// Handler serves the client routes.
type Handler struct {
	service ClientService
	logger  *slog.Logger
}

func New(service ClientService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the client routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/clients", h.addClient)
	r.Get("/agencies/{agencyID}/clients", h.listByAgency)
}

type addClientRequest struct {
	NationalID  string `json:"national_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	AgencyID    int64  `json:"agency_id"`
	CreatedBy   *int64 `json:"created_by,omitempty"`
}

type clientResponse struct {
	ID           int64  `json:"id"`
	NationalID   string `json:"national_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	AgencyID     int64  `json:"agency_id"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at"`
}

func toClientResponse(c models.Client) clientResponse {
	out := clientResponse{
		ID:           c.ID,
		NationalID:   c.NationalID,
		FullName:     c.FullName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		AgencyID:     c.AgencyID,
		Status:       string(c.Status),
		RegisteredAt: c.RegisteredAt.UTC().Format(time.RFC3339),
	}
	if c.DateOfBirth != nil {
		out.DateOfBirth = c.DateOfBirth.Format("2006-01-02")
	}
	return out
}

func (h *Handler) addClient(w http.ResponseWriter, r *http.Request) {
	var req addClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}

	model := models.AddClientRequest{
		NationalID: req.NationalID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		AgencyID:   req.AgencyID,
		CreatedBy:  req.CreatedBy,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "date_of_birth must be formatted 2006-01-02"))
			return
		}
		model.DateOfBirth = &dob
	}

	result, err := h.service.AddClient(r.Context(), model)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"client_id": result.ClientID,
		"message":   result.Message,
	})
}

func (h *Handler) listByAgency(w http.ResponseWriter, r *http.Request) {
	agencyID, err := strconv.ParseInt(chi.URLParam(r, "agencyID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "agency id must be an integer"))
		return
	}

	query := r.URL.Query()
	filter := models.ListFilter{
		Search: query.Get("search"),
		SortBy: models.ParseSortField(query.Get("sort_by")),
		Order:  models.ParseSortOrder(query.Get("sort_order")),
		Limit:  20,
	}
	if raw := query.Get("status"); raw != "" {
		status, ok := models.ParseStatus(raw)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unrecognized client status"))
			return
		}
		filter.Status = &status
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "offset must be a non-negative integer"))
			return
		}
		filter.Offset = offset
	}

	page, err := h.service.ListClientsByAgency(r.Context(), agencyID, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	clients := make([]clientResponse, 0, len(page.Clients))
	for _, c := range page.Clients {
		clients = append(clients, toClientResponse(c))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"total":   page.Total,
		"clients": clients,
	})
}
