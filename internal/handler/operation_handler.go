package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/internal/service"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
	"github.com/noah-isme/srms-gateway/pkg/export"
	"github.com/noah-isme/srms-gateway/pkg/response"
)

const maxArgsBody = 64 << 10

type operationInvoker interface {
	Invoke(ctx context.Context, principal models.Principal, op models.Operation, args dto.Args) (*dto.OperationResult, error)
}

// OperationHandler exposes the command router over HTTP.
type OperationHandler struct {
	router        operationInvoker
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	exportEnabled bool
}

// NewOperationHandler constructs an OperationHandler. Exports are rendered only when enabled.
func NewOperationHandler(router operationInvoker, exportEnabled bool) *OperationHandler {
	return &OperationHandler{
		router:        router,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		exportEnabled: exportEnabled,
	}
}

// List godoc
// @Summary List permitted operations
// @Description Returns the operations the current role may invoke
// @Tags Operations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /operations [get]
func (h *OperationHandler) List(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, dto.OperationsResponse{
		Role:       session.Principal.Role,
		Operations: service.PermittedOperations(session.Principal.Role),
	})
}

// Invoke godoc
// @Summary Invoke an operation
// @Description Runs a role-gated operation against the remote store. Arguments are a flat object of form fields.
// @Tags Operations
// @Accept json
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param name path string true "Operation name"
// @Param format query string false "Export format for row results (csv or pdf)"
// @Param payload body map[string]string false "Operation arguments"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /operations/{name} [post]
func (h *OperationHandler) Invoke(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format != "" && format != "json" {
		if !h.exportEnabled || (format != "csv" && format != "pdf") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedExportFormat, fmt.Sprintf("format %q is not available", format)))
			return
		}
	}

	args, err := argsFromRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	op := models.Operation(c.Param("name"))
	result, err := h.router.Invoke(c.Request.Context(), session.Principal, op, args)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch format {
	case "csv", "pdf":
		h.render(c, format, result)
	default:
		response.JSON(c, http.StatusOK, result)
	}
}

func (h *OperationHandler) render(c *gin.Context, format string, result *dto.OperationResult) {
	if result.Data == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedExportFormat, fmt.Sprintf("%s returns no rows to export", result.Operation)))
		return
	}
	data, err := export.FromRows(result.Data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prepare export"))
		return
	}

	filename := string(result.Operation) + "." + format
	switch format {
	case "csv":
		body, err := h.csv.Render(data)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		response.File(c, "text/csv; charset=utf-8", filename, body)
	case "pdf":
		body, err := h.pdf.Render(data, string(result.Operation))
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		response.File(c, "application/pdf", filename, body)
	}
}

// argsFromRequest reads operation arguments from a JSON object or a form body.
// JSON scalars are converted to their textual form.
func argsFromRequest(c *gin.Context) (dto.Args, error) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return dto.Args{}, nil
	}
	if c.ContentType() != gin.MIMEJSON {
		if err := c.Request.ParseForm(); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form body")
		}
		args := dto.Args{}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				args[key] = values[0]
			}
		}
		return args, nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgsBody))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read arguments")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return dto.Args{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "arguments must be a flat JSON object")
	}

	args := make(dto.Args, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
		case string:
			args[key] = v
		case json.Number:
			args[key] = v.String()
		case bool:
			args[key] = strconv.FormatBool(v)
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a string or number", key))
		}
	}
	return args, nil
}
