package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/incident_reporter/internal/config"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/render"
	"github.com/shenikar/incident_reporter/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	HeaderReportPages    = "X-Report-Pages"
	HeaderReportWarnings = "X-Report-Warnings"
)

type Handler struct {
	reportService service.ReportService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Validate an incident record
// @Description Validate a record with base and category rules. Any export flag in the query switches to export validation for that profile. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body models.IncidentRecord true "Incident record"
// @Param summaryOnly query bool false "Summary report profile"
// @Param includeSignatures query bool false "Require signatures"
// @Param includePhotos query bool false "Require at least one photo"
// @Param includeRootCause query bool false "Include root cause analysis"
// @Param includeCorrectiveActions query bool false "Include corrective actions"
// @Param includeAttachments query bool false "Include attachments"
// @Success 200 {object} ValidationResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents/validate [post]
func (h *Handler) validateIncident(c *gin.Context) {
	log := h.logger.WithField("method", "validateIncident")

	var query ValidateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	var record models.IncidentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var result models.ValidationResult
	if opts, ok := QueryToExportOptions(query); ok {
		result = h.reportService.ValidateForExport(c.Request.Context(), &record, opts)
	} else {
		result = h.reportService.Validate(c.Request.Context(), &record)
	}
	c.JSON(http.StatusOK, ModelToValidationResponse(result))
}

// @Summary Generate a PDF report
// @Description Validate the record for the export profile and render it as a paginated PDF. Requires API key.
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param request body GenerateReportRequest true "Incident record and export profile"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} ValidationErrorResponse "Record is not complete enough for the profile"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) generateReport(c *gin.Context) {
	var input GenerateReportRequest
	log := h.logger.WithField("method", "generateReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sink := render.NewMemorySink()
	report, err := h.reportService.Generate(c.Request.Context(), input.Incident, DTOToExportOptions(input.Options), sink)
	if err != nil {
		if reporterrors.IsCategory(err, reporterrors.CategoryValidation) && report != nil {
			c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:      "incident record failed validation",
				Validation: ModelToValidationResponse(report.Validation),
			})
			return
		}
		log.WithError(err).WithField("category", reporterrors.GetCategory(err)).Error("Failed to generate report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename))
	c.Header(HeaderReportWarnings, strconv.Itoa(len(report.Validation.Warnings)))
	if report.Render != nil {
		c.Header(HeaderReportPages, strconv.Itoa(report.Render.PageCount))
	}
	c.Data(http.StatusOK, "application/pdf", sink.Bytes())
}

// @Summary List report exports of an incident
// @Description Get the paginated export audit log of an incident, newest first. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} ExportRecordResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Export audit is not configured"
// @Router /incidents/{id}/exports [get]
func (h *Handler) listExports(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listExports").WithField("id", id)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	records, err := h.reportService.ListExports(c.Request.Context(), id, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrAuditDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export audit is not configured"})
			return
		}
		log.WithError(err).Error("Failed to list exports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToExportRecordResponses(records))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
