package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
	"github.com/faqdesk/faqconsole/internal/core/service"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
)

const maxBodyBytes = 1 << 20

// Importer bulk-creates FAQs.
type Importer interface {
	Run(ctx context.Context, faqs []domain.FAQInput) []queue.ImportResult
}

// ResourceHandler proxies the console's resource calls to the backend.
// Request and response bodies pass through unmodified.
type ResourceHandler struct {
	client   ports.ResourceClient
	importer Importer
}

func NewResourceHandler(client ports.ResourceClient, importer Importer) *ResourceHandler {
	return &ResourceHandler{client: client, importer: importer}
}

// --- Categories ---

func (h *ResourceHandler) ListCategories(c echo.Context) error {
	out, err := h.client.GetCategories(c.Request().Context())
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.client.GetCategory(c.Request().Context(), id)
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) CreateCategory(c echo.Context) error {
	body, err := readJSON(c)
	if err != nil {
		return err
	}
	out, err := h.client.CreateCategory(c.Request().Context(), body)
	return respond(c, http.StatusCreated, out, err)
}

func (h *ResourceHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := readJSON(c)
	if err != nil {
		return err
	}
	out, err := h.client.UpdateCategory(c.Request().Context(), id, body)
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.client.DeleteCategory(c.Request().Context(), id)
	return respond(c, http.StatusOK, out, err)
}

// --- FAQs ---

func (h *ResourceHandler) ListFAQs(c echo.Context) error {
	var q faqListQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	out, err := h.client.GetFAQs(c.Request().Context(), ports.FAQListParams{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		Sort:     q.Sort,
	})
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) GetFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var q faqGetQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	out, err := h.client.GetFAQ(c.Request().Context(), id, ports.FAQGetParams{IncludeAllTranslations: q.IncludeAllTranslations})
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) CreateFAQ(c echo.Context) error {
	body, err := readJSON(c)
	if err != nil {
		return err
	}
	out, err := h.client.CreateFAQ(c.Request().Context(), body)
	return respond(c, http.StatusCreated, out, err)
}

func (h *ResourceHandler) UpdateFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := readJSON(c)
	if err != nil {
		return err
	}
	out, err := h.client.UpdateFAQ(c.Request().Context(), id, body)
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) DeleteFAQ(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.client.DeleteFAQ(c.Request().Context(), id)
	return respond(c, http.StatusOK, out, err)
}

// ImportFAQs creates the FAQs of a YAML document body. It answers 200 when
// every FAQ was created and 207 when some failed.
//
// @Summary      Bulk import FAQs
// @Tags         faqs
// @Accept       application/x-yaml
// @Produce      json
// @Success      200  {object}  importResponse
// @Success      207  {object}  importResponse
// @Failure      422  {object}  map[string]string
// @Router       /console/api/faqs/import [post]
func (h *ResourceHandler) ImportFAQs(c echo.Context) error {
	faqs, err := service.ParseFAQImport(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	results := h.importer.Run(c.Request().Context(), faqs)
	failed := queue.Failed(results)
	metrics.ImportItemsTotal.WithLabelValues("created").Add(float64(len(results) - failed))
	metrics.ImportItemsTotal.WithLabelValues("failed").Add(float64(failed))

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, importResponse{
		Total:   len(results),
		Created: len(results) - failed,
		Failed:  failed,
		Results: results,
	})
}

// --- Stores ---

func (h *ResourceHandler) ListStores(c echo.Context) error {
	out, err := h.client.GetStores(c.Request().Context())
	return respond(c, http.StatusOK, out, err)
}

func (h *ResourceHandler) GetStore(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.client.GetStore(c.Request().Context(), id)
	return respond(c, http.StatusOK, out, err)
}

// readJSON returns the request body after checking it is a JSON document.
func readJSON(c echo.Context) (json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil || !json.Valid(data) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return json.RawMessage(data), nil
}

// respond writes the backend body unmodified, or 204 when there is none.
func respond(c echo.Context, status int, body json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	if body == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSONBlob(status, body)
}
