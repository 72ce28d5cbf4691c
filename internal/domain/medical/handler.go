package medical

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/domain/catalog"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/platform/auth"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/internal/platform/blobstore"
	"github.com/supriyapandey93/Arogya-Vritti-TeleHealth/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medical/health-metrics", h.GetHealthMetrics)
	api.POST("/medical/health-metrics", h.AddHealthMetric)
	api.GET("/medical/health-metrics/catalog", h.GetCatalog)
	api.GET("/medical/health-metrics/summary", h.GetSummary)

	api.GET("/medical/records", h.GetRecord)
	api.POST("/medical/records", h.UpdateRecord)

	api.POST("/medical/reports/upload", h.UploadReport)
	api.GET("/medical/reports", h.ListReports)
	api.GET("/medical/reports/:id/download", h.DownloadReport)
	api.DELETE("/medical/reports/:id", h.DeleteReport)
}

// metricsResponse is the POST body: the full updated list plus a version
// token (the reading count) so clients can order concurrent responses.
type metricsResponse struct {
	HealthMetrics []MetricReading `json:"healthMetrics"`
	Version       int             `json:"version"`
}

type storeErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func userID(c echo.Context) (string, error) {
	uid := auth.UserIDFromContext(c.Request().Context())
	if uid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	return uid, nil
}

func (h *Handler) GetHealthMetrics(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	metrics, err := h.svc.GetReadings(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to fetch health metrics", Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, metrics)
}

func (h *Handler) AddHealthMetric(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var in ReadingInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	metrics, version, err := h.svc.AddReading(c.Request().Context(), uid, in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, verr)
		}
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to save health metric", Error: err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, metricsResponse{HealthMetrics: metrics, Version: version})
}

func (h *Handler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Definitions())
}

func (h *Handler) GetSummary(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	summary, err := h.svc.Summary(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to build metrics summary", Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetRecord(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to fetch medical record", Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.UpdateRecord(c.Request().Context(), uid, &rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to save medical record", Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) UploadReport(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to open uploaded file", Error: err.Error(),
		})
	}
	defer src.Close()

	rep, err := h.svc.UploadReport(c.Request().Context(), uid,
		c.FormValue("name"), c.FormValue("category"),
		file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		switch {
		case errors.Is(err, blobstore.ErrFileTooLarge):
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, blobstore.ErrInvalidContentType),
			errors.Is(err, blobstore.ErrInvalidCategory),
			errors.Is(err, blobstore.ErrMissingFileName):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return c.JSON(http.StatusInternalServerError, storeErrorResponse{
				Message: "Failed to store report", Error: err.Error(),
			})
		}
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) ListReports(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	reports, err := h.svc.ListReports(c.Request().Context(), uid, c.QueryParam("category"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to fetch reports", Error: err.Error(),
		})
	}

	p := pagination.FromContext(c)
	total := len(reports)
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(reports[start:end], total, p.Limit, p.Offset))
}

func (h *Handler) DownloadReport(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	rc, meta, err := h.svc.DownloadReport(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, blobstore.ErrBlobNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to download report", Error: err.Error(),
		})
	}
	defer rc.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, meta.FileName))
	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReport(c.Request().Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return c.JSON(http.StatusInternalServerError, storeErrorResponse{
			Message: "Failed to delete report", Error: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
