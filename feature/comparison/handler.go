package comparison

import (
	"bytes"
	"encoding/json"
	"errors"

	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"
	"table-reconciler/feature/dataset"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Get("/", h.HandleCompare)
	group.Post("/", h.HandleCompareInline)
	group.Get("/datasets", h.HandleListDatasets)
}

// HandleCompare reconciles two loadable datasets.
// @Summary Compare Datasets
// @Description Loads the source and destination datasets (sql:<table>, s3:<object.csv>, synthetic:<rows>) and reconciles them.
// @Tags comparison
// @Produce json,html
// @Param source query string true "Source dataset identifier"
// @Param destination query string true "Destination dataset identifier"
// @Param by query string false "Comma-separated compare-by columns"
// @Param columns query string false "Comma-separated compared columns"
// @Param mode query string false "Match mode (exact, positional)"
// @Param limit query int false "Row limit per dataset"
// @Param workers query int false "Matching goroutines"
// @Param format query string false "Response format (json, html)"
// @Param summary query boolean false "Only return the summary"
// @Success 200 {object} reconcile.Report "Report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Dataset could not be loaded"
// @Router /compare [get]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := CompareRequest{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		CompareBy:   reconcile.SplitColumns(c.Query("by")),
		Columns:     reconcile.SplitColumns(c.Query("columns")),
		Mode:        c.Query("mode"),
		Limit:       c.QueryInt("limit"),
		Workers:     c.QueryInt("workers"),
	}

	report, err := h.service.Compare(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, report)
}

// HandleCompareInline reconciles two datasets posted in the body.
// @Summary Compare Inline Datasets
// @Description Reconciles the source and destination datasets given in the request body.
// @Tags comparison
// @Accept json
// @Produce json,html
// @Param request body InlineRequest true "Datasets and options"
// @Param format query string false "Response format (json, html)"
// @Param summary query boolean false "Only return the summary"
// @Success 200 {object} reconcile.Report "Report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /compare [post]
func (h *Handler) HandleCompareInline(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req InlineRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	report, err := h.service.CompareInline(req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, report)
}

// HandleListDatasets lists CSV datasets in object storage.
// @Summary List Datasets
// @Description Lists the CSV dataset identifiers available in the storage bucket.
// @Tags comparison
// @Produce json
// @Param prefix query string false "Object key prefix"
// @Success 200 {object} map[string]interface{} "Dataset identifiers"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/datasets [get]
func (h *Handler) HandleListDatasets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	ids, err := h.service.ListDatasets(c.Context(), c.Query("prefix"))
	if err != nil {
		l.Error("Failed to list datasets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"datasets": ids,
		"count":    len(ids),
	})
}

func (h *Handler) respond(c *fiber.Ctx, report *reconcile.Report) error {
	if c.QueryBool("summary") {
		return c.JSON(fiber.Map{
			"source":      report.Source,
			"destination": report.Destination,
			"clean":       report.Clean(),
			"summary":     report.Summary,
		})
	}
	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err := RenderHTML(&buf, report); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Comparison failed", zap.Error(err))
	} else {
		l.Warn("Comparison rejected", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps comparison errors onto HTTP status codes.
func statusFor(err error) int {
	var missing *reconcile.MissingColumnError
	var mismatch *reconcile.SchemaMismatchError
	var load *reconcile.LoadError

	switch {
	case errors.As(err, &missing), errors.As(err, &mismatch),
		errors.Is(err, reconcile.ErrNoKeyColumns),
		errors.Is(err, reconcile.ErrUnknownMatchMode),
		errors.Is(err, reconcile.ErrMalformedRow),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, dataset.ErrUnknownScheme),
		errors.Is(err, dataset.ErrInvalidSource):
		return fiber.StatusBadRequest
	case errors.As(err, &load):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
