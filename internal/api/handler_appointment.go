package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/appointment"
	"github.com/taehan09/studio/internal/flows"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/storage"
)

// summarizeTimeout bounds the best-effort summary generation at submission
// time. A slow or failing model never blocks or fails the submission.
const summarizeTimeout = 10 * time.Second

// --- Huma Input/Output types ---

type SubmitAppointmentBody struct {
	FullName           string `json:"fullName" doc:"Client's full name" required:"true" minLength:"1"`
	Email              string `json:"email" doc:"Contact email" required:"true" format:"email"`
	Phone              string `json:"phone" doc:"Contact phone number" required:"true" minLength:"1"`
	PreferredArtist    string `json:"preferredArtist,omitempty" doc:"Preferred artist name, or empty for no preference" required:"false"`
	TattooStyle        string `json:"tattooStyle,omitempty" doc:"Desired tattoo style" required:"false"`
	Placement          string `json:"placement,omitempty" doc:"Body placement" required:"false"`
	ApproximateSize    string `json:"approximateSize,omitempty" doc:"Approximate size" required:"false"`
	TattooDescription  string `json:"tattooDescription" doc:"Description of the tattoo idea" required:"true" minLength:"10"`
	BudgetRange        string `json:"budgetRange,omitempty" doc:"Budget range" required:"false"`
	PreferredTimeframe string `json:"preferredTimeframe,omitempty" doc:"Preferred timeframe" required:"false"`
}

type SubmitAppointmentInput struct {
	Body SubmitAppointmentBody
}

type SubmitAppointmentOutput struct {
	Body appointment.Request
}

type ListAppointmentsOutput struct {
	Body []appointment.Request
}

type DeleteAppointmentInput struct {
	ID string `path:"id" doc:"Appointment request ID" format:"uuid"`
}

// --- Handler ---

type AppointmentHandler struct {
	store  storage.AppointmentStore
	flows  *flows.Service
	logger *slog.Logger
}

func NewAppointmentHandler(store storage.AppointmentStore, flowSvc *flows.Service, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{store: store, flows: flowSvc, logger: logger}
}

func registerAppointmentRoutes(api huma.API, h *AppointmentHandler, requireAdmin func(huma.Context, func(huma.Context))) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-appointment",
		Method:        http.MethodPost,
		Path:          "/v1/appointments",
		Summary:       "Submit an appointment request",
		Tags:          []string{"appointments"},
		DefaultStatus: http.StatusCreated,
	}, h.Submit)

	huma.Register(api, huma.Operation{
		OperationID: "list-appointments",
		Method:      http.MethodGet,
		Path:        "/v1/admin/appointments",
		Summary:     "List appointment requests, newest first",
		Tags:        []string{"appointments", "admin"},
		Middlewares: huma.Middlewares{requireAdmin},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-appointment",
		Method:        http.MethodDelete,
		Path:          "/v1/admin/appointments/{id}",
		Summary:       "Delete an appointment request",
		Tags:          []string{"appointments", "admin"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   huma.Middlewares{requireAdmin},
	}, h.Delete)
}

func (h *AppointmentHandler) Submit(ctx context.Context, input *SubmitAppointmentInput) (*SubmitAppointmentOutput, error) {
	req := appointment.Request{
		FullName:           input.Body.FullName,
		Email:              input.Body.Email,
		Phone:              input.Body.Phone,
		PreferredArtist:    input.Body.PreferredArtist,
		TattooStyle:        input.Body.TattooStyle,
		Placement:          input.Body.Placement,
		ApproximateSize:    input.Body.ApproximateSize,
		TattooDescription:  input.Body.TattooDescription,
		BudgetRange:        input.Body.BudgetRange,
		PreferredTimeframe: input.Body.PreferredTimeframe,
	}
	if req.PreferredArtist == "" {
		req.PreferredArtist = appointment.NoPreference
	}

	if h.flows != nil {
		sctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
		summary, err := h.flows.SummarizeRequest(sctx, req)
		cancel()
		if err != nil {
			h.logger.Warn("appointment summary generation failed", "error", err)
			metrics.FlowCall("summarize", "error")
		} else {
			req.Summary = summary
			metrics.FlowCall("summarize", "ok")
		}
	}

	stored, err := h.store.AppendAppointment(ctx, req)
	if err != nil {
		h.logger.Error("failed to store appointment request", "error", err)
		return nil, huma.Error500InternalServerError("failed to submit appointment request")
	}
	metrics.AppointmentSubmitted()

	h.logger.Info("appointment request submitted", "id", stored.ID, "preferred_artist", stored.PreferredArtist)
	return &SubmitAppointmentOutput{Body: *stored}, nil
}

func (h *AppointmentHandler) List(ctx context.Context, _ *struct{}) (*ListAppointmentsOutput, error) {
	requests, err := h.store.ListAppointments(ctx)
	if err != nil {
		h.logger.Error("failed to list appointment requests", "error", err)
		return nil, huma.Error500InternalServerError("failed to list appointment requests")
	}
	if requests == nil {
		requests = []appointment.Request{}
	}
	return &ListAppointmentsOutput{Body: requests}, nil
}

func (h *AppointmentHandler) Delete(ctx context.Context, input *DeleteAppointmentInput) (*struct{}, error) {
	if err := h.store.DeleteAppointment(ctx, input.ID); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return nil, huma.Error404NotFound("appointment request not found")
		}
		h.logger.Error("failed to delete appointment request", "id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete appointment request")
	}
	return nil, nil
}

// Export streams all appointment requests as a CSV attachment.
func (h *AppointmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	requests, err := h.store.ListAppointments(r.Context())
	if err != nil {
		h.logger.Error("failed to export appointment requests", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export appointment requests")
		return
	}

	filename := fmt.Sprintf("appointment-requests-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if err := appointment.WriteCSV(w, requests); err != nil {
		h.logger.Error("failed to write CSV export", "error", err)
	}
}
