package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

// DocumentHandler handles quotation, invoice and billing note requests
type DocumentHandler struct {
	documentService *service.DocumentService
	uploads         Uploads
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, uploads Uploads) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, uploads: uploads}
}

func documentInput(c *gin.Context, req *request.DocumentRequest) (*service.DocumentInput, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	input := &service.DocumentInput{
		Number:         req.Number,
		Date:           date,
		CreditDays:     req.CreditDays,
		CustomerID:     req.CustomerID,
		VatMode:        req.VatMode,
		Remark:         req.Remark,
		InternalRemark: req.InternalRemark,
	}
	if req.Type != nil {
		input.Type = *req.Type
	}
	if userID := GetUserID(c); userID != nil {
		input.EmployeeID = *userID
	}
	if req.Customer != nil {
		input.Customer = &entity.CustomerSnapshot{
			Name:    req.Customer.Name,
			Address: req.Customer.Address,
			Phone:   req.Customer.Phone,
			TaxID:   req.Customer.TaxID,
		}
	}
	if req.RemarkParams != nil {
		input.RemarkParams = &service.RemarkParams{
			Deposit:  req.RemarkParams.Deposit,
			Duration: req.RemarkParams.Duration,
			Bank:     req.RemarkParams.Bank,
		}
	}
	if req.Payment != nil {
		payDate, err := parseDate("payment.date", req.Payment.Date)
		if err != nil {
			return nil, err
		}
		input.Payment = &entity.Payment{
			Method: req.Payment.Method,
			Bank:   req.Payment.Bank,
			Number: req.Payment.Number,
			Branch: req.Payment.Branch,
			Date:   payDate,
			Time:   req.Payment.Time,
			Proof:  req.Payment.ProofImage,
		}
	}
	if req.Items != nil {
		input.Items = make([]service.ItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			input.Items = append(input.Items, service.ItemInput{
				ProductID:   item.ProductID,
				Name:        item.Name,
				Description: item.Description,
				Unit:        item.Unit,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
	}
	return input, nil
}

// List handles listing documents
// @Summary List Documents
// @Description Get documents with pagination and filtering
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Number or customer name"
// @Param type query string false "quotation, invoice or billing_note"
// @Param status query string false "Pending, Approved, Paid or Canceled"
// @Success 200 {object} response.APIResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListDocumentsInput{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if filter.Type != "" {
		t, err := enum.ParseDocumentType(filter.Type)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		input.Type = &t
	}
	if filter.Status != "" {
		st, err := enum.ParseDocumentStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		input.Status = &st
	}
	customerID, err := utils.ParseOptionalUUID(filter.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	input.CustomerID = customerID

	result, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Documents retrieved successfully", result)
}

// Draft handles getting a blank document with its defaults and next number
// @Summary New Document Draft
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param type query string true "quotation, invoice or billing_note"
// @Success 200 {object} response.APIResponse
// @Router /documents/draft [get]
func (h *DocumentHandler) Draft(c *gin.Context) {
	t, err := enum.ParseDocumentType(c.Query("type"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var employeeID uuid.UUID
	if userID := GetUserID(c); userID != nil {
		employeeID = *userID
	}

	doc, err := h.documentService.Draft(c.Request.Context(), t, employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft created", doc)
}

// Create handles creating a document
// @Summary Create Document
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req request.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Type == nil {
		response.BadRequest(c, "Document type is required")
		return
	}

	input, err := documentInput(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document created successfully", doc)
}

// Get handles getting a single document with its items
// @Summary Get Document
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", doc)
}

// Update handles updating a document
// @Summary Update Document
// @Description Header fields left out are unchanged; items, when sent, replace all lines
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var req request.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := documentInput(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document updated successfully", doc)
}

// UpdateStatus handles moving a document to another status
// @Summary Update Document Status
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document status updated successfully", doc)
}

// Delete handles deleting a document
// @Summary Delete Document
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateInvoice handles starting an invoice from a quotation
// @Summary Create Invoice From Quotation
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} response.APIResponse
// @Router /documents/{id}/invoice [post]
func (h *DocumentHandler) CreateInvoice(c *gin.Context) {
	h.fromSource(c, h.documentService.CreateInvoiceFromQuotation, "Invoice created successfully")
}

// CreateBillingNote handles starting a billing note from a quotation or invoice
// @Summary Create Billing Note From Source
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation or invoice ID"
// @Success 201 {object} response.APIResponse
// @Router /documents/{id}/billing-note [post]
func (h *DocumentHandler) CreateBillingNote(c *gin.Context) {
	h.fromSource(c, h.documentService.CreateBillingNoteFromSource, "Billing note created successfully")
}

func (h *DocumentHandler) fromSource(c *gin.Context, derive func(context.Context, uuid.UUID, uuid.UUID) (*entity.SalesDocument, error), message string) {
	sourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var employeeID uuid.UUID
	if userID := GetUserID(c); userID != nil {
		employeeID = *userID
	}

	doc, err := derive(c.Request.Context(), sourceID, employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message, doc)
}

// UploadPaymentProof handles attaching a transfer slip or cheque image to a
// billing note
// @Summary Upload Payment Proof
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Billing note ID"
// @Param proof formData file true "PNG or JPEG image"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/payment-proof [post]
func (h *DocumentHandler) UploadPaymentProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	if _, err := h.documentService.GetDocument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	ref, err := h.uploads.SaveImage(c, "proof", "payments")
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.SetPaymentProof(c.Request.Context(), id, ref)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment proof uploaded successfully", doc)
}
