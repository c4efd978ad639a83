package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/docgen"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/response"
)

// RenderHandler handles PDF generation requests
type RenderHandler struct {
	renderService *service.RenderService
}

// NewRenderHandler creates a new render handler
func NewRenderHandler(renderService *service.RenderService) *RenderHandler {
	return &RenderHandler{renderService: renderService}
}

// accepts reports whether the Accept header names mime.
func accepts(c *gin.Context, mime string) bool {
	return strings.Contains(c.GetHeader("Accept"), mime)
}

// respond sends a download as a PDF attachment and a preview as the JSON
// result holding the viewer URL. Either side can ask for the other form
// through Accept.
func (h *RenderHandler) respond(c *gin.Context, res *docgen.Result) {
	if res.Action == docgen.ActionPreview {
		if accepts(c, "application/pdf") {
			response.PDF(c, res.FileName, res.PDF, true)
			return
		}
		response.OK(c, "Preview ready", res)
		return
	}
	if accepts(c, "application/json") {
		response.OK(c, "Document saved", res)
		return
	}
	response.PDF(c, res.FileName, res.PDF, false)
}

// Render handles rendering a stored document
// @Summary Render Document
// @Description download saves the PDF under its number; preview publishes it and returns a viewer URL
// @Tags render
// @Security BearerAuth
// @Produce application/pdf,json
// @Param id path string true "Document ID"
// @Param action query string false "download (default) or preview"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/render [post]
func (h *RenderHandler) Render(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	action, err := docgen.ParseAction(c.Query("action"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.renderService.RenderDocument(c.Request.Context(), id, action)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.respond(c, res)
}

// RenderDraft handles rendering a document that has not been saved
// @Summary Render Draft
// @Tags render
// @Security BearerAuth
// @Accept json
// @Produce application/pdf,json
// @Success 200 {object} response.APIResponse
// @Router /render [post]
func (h *RenderHandler) RenderDraft(c *gin.Context) {
	var req request.RenderDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	action, err := docgen.ParseAction(req.Action)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.renderService.RenderDraft(c.Request.Context(), req.Document, action)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.respond(c, res)
}

// Preview handles serving a published preview to the browser viewer
// @Summary Get Preview
// @Tags render
// @Produce application/pdf
// @Param handle path string true "Preview handle"
// @Success 200 {file} binary
// @Router /previews/{handle} [get]
func (h *RenderHandler) Preview(c *gin.Context) {
	handle := c.Param("handle")
	data, err := h.renderService.GetPreview(handle)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "private, no-store")
	response.PDF(c, "preview-"+handle+".pdf", data, true)
}

// OutputStatus returns where downloads are saved and whether it is reachable
// @Summary Output Status
// @Tags render
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /output/status [get]
func (h *RenderHandler) OutputStatus(c *gin.Context) {
	response.OK(c, "Output status retrieved", h.renderService.GetStatus())
}
