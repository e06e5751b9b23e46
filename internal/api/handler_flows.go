package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/flows"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/repository"
)

// --- Huma Input/Output types ---

type CategorizeDesignBody struct {
	PhotoDataURI string `json:"photoDataUri" doc:"Tattoo design image as a base64 data URI (data:image/...;base64,...)" required:"true" minLength:"1"`
}

type CategorizeDesignInput struct {
	Body CategorizeDesignBody
}

type CategorizeDesignOutput struct {
	Body flows.CategorizeResult
}

type GenerateIdeaBody struct {
	Prompt string `json:"prompt" doc:"The client's tattoo idea in their own words" required:"true" minLength:"10"`
}

type GenerateIdeaInput struct {
	Body GenerateIdeaBody
}

type GenerateIdeaOutput struct {
	Body flows.IdeaResult
}

// --- Handler ---

// FlowHandler exposes the generative flows. When the service is nil the
// flows are not configured and every call answers 503.
type FlowHandler struct {
	flows  *flows.Service
	repo   *repository.Repository
	logger *slog.Logger
}

func NewFlowHandler(flowSvc *flows.Service, repo *repository.Repository, logger *slog.Logger) *FlowHandler {
	return &FlowHandler{flows: flowSvc, repo: repo, logger: logger}
}

func registerFlowRoutes(api huma.API, h *FlowHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "categorize-design",
		Method:      http.MethodPost,
		Path:        "/v1/flows/categorize-design",
		Summary:     "Categorize a tattoo design image by style",
		Tags:        []string{"flows"},
	}, h.CategorizeDesign)

	huma.Register(api, huma.Operation{
		OperationID: "generate-idea",
		Method:      http.MethodPost,
		Path:        "/v1/flows/generate-idea",
		Summary:     "Turn a tattoo idea into a concrete concept",
		Tags:        []string{"flows"},
	}, h.GenerateIdea)
}

func (h *FlowHandler) CategorizeDesign(ctx context.Context, input *CategorizeDesignInput) (*CategorizeDesignOutput, error) {
	if h.flows == nil {
		return nil, huma.Error503ServiceUnavailable("generative features are not configured")
	}

	result, err := h.flows.CategorizeDesign(ctx, input.Body.PhotoDataURI)
	if err != nil {
		return nil, h.flowError("categorize", err)
	}
	metrics.FlowCall("categorize", "ok")

	return &CategorizeDesignOutput{Body: *result}, nil
}

func (h *FlowHandler) GenerateIdea(ctx context.Context, input *GenerateIdeaInput) (*GenerateIdeaOutput, error) {
	if h.flows == nil {
		return nil, huma.Error503ServiceUnavailable("generative features are not configured")
	}

	roster, err := h.repo.Artists.Get(ctx)
	if err != nil {
		// The flow falls back to the default roster on its own.
		h.logger.Warn("failed to load artist roster for idea flow", "error", err)
		roster = nil
	}

	result, err := h.flows.GenerateIdea(ctx, input.Body.Prompt, roster)
	if err != nil {
		return nil, h.flowError("idea", err)
	}
	metrics.FlowCall("idea", "ok")

	return &GenerateIdeaOutput{Body: *result}, nil
}

// flowError maps flow failures onto HTTP statuses: invalid input is the
// caller's fault, anything else is a generation failure reported upstream.
func (h *FlowHandler) flowError(flow string, err error) error {
	if errors.Is(err, flows.ErrInvalidInput) {
		metrics.FlowCall(flow, "invalid")
		return huma.Error422UnprocessableEntity(err.Error())
	}
	metrics.FlowCall(flow, "error")
	h.logger.Error("flow failed", "flow", flow, "error", err)
	return huma.Error502BadGateway("generation failed, please try again")
}
