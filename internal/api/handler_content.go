package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/content"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/repository"
)

// --- Huma Input/Output types ---

type GetContentInput struct {
	Section string `path:"section" doc:"Section name"`
}

type ContentResponse struct {
	Section string          `json:"section" doc:"Section name"`
	Content json.RawMessage `json:"content" doc:"Section content"`
}

type GetContentOutput struct {
	Body ContentResponse
}

type PutContentInput struct {
	Section string `path:"section" doc:"Section name"`
	RawBody []byte
}

type PutContentOutput struct {
	Body ContentResponse
}

type GalleryInput struct {
	Category string `query:"category" doc:"Filter images by category (case-insensitive); empty or \"All\" returns everything" required:"false"`
}

type GalleryResponse struct {
	Images  []content.GalleryImage `json:"images" doc:"Gallery images matching the filter"`
	Filters []string               `json:"filters" doc:"Available filter categories"`
}

type GalleryOutput struct {
	Body GalleryResponse
}

// --- Handler ---

type ContentHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

func NewContentHandler(repo *repository.Repository, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{repo: repo, logger: logger}
}

func registerContentRoutes(api huma.API, h *ContentHandler, requireAdmin func(huma.Context, func(huma.Context))) {
	huma.Register(api, huma.Operation{
		OperationID: "get-content",
		Method:      http.MethodGet,
		Path:        "/v1/content/{section}",
		Summary:     "Get a content section",
		Tags:        []string{"content"},
	}, h.GetContent)

	huma.Register(api, huma.Operation{
		OperationID: "put-content",
		Method:      http.MethodPut,
		Path:        "/v1/admin/content/{section}",
		Summary:     "Replace a content section",
		Tags:        []string{"content", "admin"},
		Middlewares: huma.Middlewares{requireAdmin},
	}, h.PutContent)

	huma.Register(api, huma.Operation{
		OperationID: "get-gallery",
		Method:      http.MethodGet,
		Path:        "/v1/gallery",
		Summary:     "Get gallery images, optionally filtered by category",
		Tags:        []string{"content"},
	}, h.Gallery)
}

func (h *ContentHandler) GetContent(ctx context.Context, input *GetContentInput) (*GetContentOutput, error) {
	section, ok := h.repo.Section(input.Section)
	if !ok {
		return nil, huma.Error404NotFound("unknown section " + input.Section)
	}

	body, err := section.GetRaw(ctx)
	if err != nil {
		h.logger.Error("failed to get content", "section", input.Section, "error", err)
		return nil, huma.Error500InternalServerError("failed to get content")
	}

	return &GetContentOutput{Body: ContentResponse{Section: input.Section, Content: body}}, nil
}

func (h *ContentHandler) PutContent(ctx context.Context, input *PutContentInput) (*PutContentOutput, error) {
	section, ok := h.repo.Section(input.Section)
	if !ok {
		return nil, huma.Error404NotFound("unknown section " + input.Section)
	}

	if err := section.PutRaw(ctx, input.RawBody); err != nil {
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			return nil, validationError(verr)
		}
		h.logger.Error("failed to put content", "section", input.Section, "error", err)
		return nil, huma.Error500InternalServerError("failed to save content")
	}
	metrics.ContentWrite(input.Section)

	// Echo back the stored value so the editor sees assigned ids.
	body, err := section.GetRaw(ctx)
	if err != nil {
		h.logger.Error("failed to reload content after write", "section", input.Section, "error", err)
		return nil, huma.Error500InternalServerError("failed to save content")
	}

	return &PutContentOutput{Body: ContentResponse{Section: input.Section, Content: body}}, nil
}

func (h *ContentHandler) Gallery(ctx context.Context, input *GalleryInput) (*GalleryOutput, error) {
	images, err := h.repo.Gallery.Get(ctx)
	if err != nil {
		h.logger.Error("failed to get gallery", "error", err)
		return nil, huma.Error500InternalServerError("failed to get gallery")
	}

	category := strings.TrimSpace(input.Category)
	if category != "" && !strings.EqualFold(category, "all") {
		filtered := make([]content.GalleryImage, 0, len(images))
		for _, img := range images {
			if strings.EqualFold(img.Category, category) {
				filtered = append(filtered, img)
			}
		}
		images = filtered
	}

	return &GalleryOutput{Body: GalleryResponse{Images: images, Filters: content.GalleryFilters}}, nil
}
