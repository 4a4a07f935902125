package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/http/handlers/common"
	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/service"
)

// Submitter принимает заявки с форм.
type Submitter interface {
	SubmitHireRequest(ctx context.Context, req models.HireRequest) (*models.SubmissionResult, error)
	SubmitApplication(ctx context.Context, app models.Application, resume *service.Upload) (*models.SubmissionResult, error)
	SubmitProductPurchase(ctx context.Context, p models.Purchase) (*models.SubmissionResult, error)
	SubmitJobPosting(ctx context.Context, posting models.JobPosting, image *service.Upload) (*models.SubmissionResult, error)
	SubmitProductPosting(ctx context.Context, posting models.ProductPosting, image *service.Upload) (*models.SubmissionResult, error)
	SubmitWaitlistSignup(ctx context.Context, email, userType string) (*models.SubmissionResult, error)
}

type SubmissionHandler struct {
	submissions Submitter
}

func NewSubmissionHandler(submissions Submitter) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// HireArtisan POST /api/artisans/:id/hire
func (h *SubmissionHandler) HireArtisan(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	var body dto.HireRequestBody
	if err := common.BindJSON(c, &body); err != nil {
		common.Fail(c, err)
		return
	}

	res, err := h.submissions.SubmitHireRequest(c.Request.Context(), models.HireRequest{
		ArtisanID:      id,
		Contact:        body.Contact(),
		ProjectDetails: body.ProjectDetails,
	})
	respond(c, res, err)
}

// ApplyToJob POST /api/jobs/:id/applications (multipart, файл в поле "resume")
func (h *SubmissionHandler) ApplyToJob(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	var form dto.ApplicationForm
	if err := common.BindForm(c, &form); err != nil {
		common.Fail(c, err)
		return
	}
	resume, closeFile, err := common.FormFile(c, "resume")
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closeFile()

	res, err := h.submissions.SubmitApplication(c.Request.Context(), models.Application{
		JobID:   id,
		Contact: form.Contact(),
	}, resume)
	respond(c, res, err)
}

// PurchaseProduct POST /api/products/:id/purchase
func (h *SubmissionHandler) PurchaseProduct(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}
	var body dto.PurchaseRequestBody
	if err := common.BindJSON(c, &body); err != nil {
		common.Fail(c, err)
		return
	}

	res, err := h.submissions.SubmitProductPurchase(c.Request.Context(), models.Purchase{
		ProductID:       id,
		Buyer:           body.Buyer(),
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
	})
	respond(c, res, err)
}

// PostJob POST /api/jobs (multipart, картинка в поле "image")
func (h *SubmissionHandler) PostJob(c *gin.Context) {
	var form dto.JobPostingForm
	if err := common.BindForm(c, &form); err != nil {
		common.Fail(c, err)
		return
	}
	image, closeFile, err := common.FormFile(c, "image")
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closeFile()

	res, err := h.submissions.SubmitJobPosting(c.Request.Context(), form.ToPosting(), image)
	respond(c, res, err)
}

// PostProduct POST /api/products (multipart, картинка в поле "image")
func (h *SubmissionHandler) PostProduct(c *gin.Context) {
	var form dto.ProductPostingForm
	if err := common.BindForm(c, &form); err != nil {
		common.Fail(c, err)
		return
	}
	image, closeFile, err := common.FormFile(c, "image")
	if err != nil {
		common.Fail(c, err)
		return
	}
	defer closeFile()

	res, err := h.submissions.SubmitProductPosting(c.Request.Context(), form.ToPosting(), image)
	respond(c, res, err)
}

// JoinWaitlist POST /api/waitlist
func (h *SubmissionHandler) JoinWaitlist(c *gin.Context) {
	var body dto.WaitlistRequestBody
	if err := common.BindJSON(c, &body); err != nil {
		common.Fail(c, err)
		return
	}

	res, err := h.submissions.SubmitWaitlistSignup(c.Request.Context(), body.Email, body.UserType)
	respond(c, res, err)
}

func respond(c *gin.Context, res *models.SubmissionResult, err error) {
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
