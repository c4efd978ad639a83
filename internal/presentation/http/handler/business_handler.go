package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/response"
)

// BusinessHandler handles the issuing business profile
type BusinessHandler struct {
	businessService *service.BusinessService
	uploads         Uploads
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService, uploads Uploads) *BusinessHandler {
	return &BusinessHandler{businessService: businessService, uploads: uploads}
}

func businessInput(req *request.BusinessRequest) *service.BusinessInput {
	input := &service.BusinessInput{
		Name:       req.Name,
		BranchCode: req.BranchCode,
		Logo:       req.Logo,
		Address:    req.Address,
		TaxID:      req.TaxID,
		Phone:      req.Phone,
	}
	if req.Banks != nil {
		input.Banks = make([]entity.BankAccount, 0, len(req.Banks))
		for _, b := range req.Banks {
			input.Banks = append(input.Banks, entity.BankAccount{
				BankName:      b.BankName,
				AccountName:   b.AccountName,
				AccountNumber: b.AccountNumber,
			})
		}
	}
	return input
}

// Create handles creating the profile of the business in the token
// @Summary Create Business Profile
// @Tags business
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /business [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	var req request.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), businessInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business created successfully", business)
}

// Get handles getting the business profile
// @Summary Get Business Profile
// @Tags business
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	business, err := h.businessService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// Update handles updating the business profile
// @Summary Update Business Profile
// @Tags business
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /business [put]
func (h *BusinessHandler) Update(c *gin.Context) {
	var req request.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.businessService.UpdateProfile(c.Request.Context(), businessInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", business)
}

// UploadLogo handles replacing the logo printed in the document header
// @Summary Upload Business Logo
// @Tags business
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "PNG or JPEG image"
// @Success 200 {object} response.APIResponse
// @Router /business/logo [post]
func (h *BusinessHandler) UploadLogo(c *gin.Context) {
	ref, err := h.uploads.SaveImage(c, "logo", "logos")
	if err != nil {
		response.Error(c, err)
		return
	}

	business, err := h.businessService.UpdateProfile(c.Request.Context(), &service.BusinessInput{Logo: &ref})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Logo uploaded successfully", business)
}
