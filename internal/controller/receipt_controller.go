package controller

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"smart-receipt-be/internal/dto"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/pkg/serverutils"
	"smart-receipt-be/internal/service"
)

type IReceiptController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type receiptController struct {
	pipelineService service.IPipelineService
	feedbackService service.IFeedbackService
}

func NewReceiptController(pipelineService service.IPipelineService, feedbackService service.IFeedbackService) IReceiptController {
	return &receiptController{
		pipelineService: pipelineService,
		feedbackService: feedbackService,
	}
}

func (c *receiptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/receipt/v1")
	h.Post("process", c.Process)
	h.Post("feedback", c.Feedback)
}

func (c *receiptController) Process(ctx *fiber.Ctx) error {
	image, err := c.readImage(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	result, cacheUsed, err := c.pipelineService.Process(ctx.Context(), image)
	if err != nil {
		return err
	}

	res := dto.ProcessReceiptResponse{
		Fingerprint: entity.NewReceiptFingerprint(image).String(),
		Amount:      result.Amount,
		UsageDate:   result.UsageAt,
		Location:    result.Location,
		Category:    result.Category,
		Description: result.Description,
		Confidence:  result.Confidence,
		Path:        result.Path,
		Trace:       result.Trace,
		CacheUsed:   cacheUsed,
		ProcessedIn: time.Since(start).String(),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process receipt", res))
}

// readImage accepts either a multipart upload under "image" or a raw body.
func (c *receiptController) readImage(ctx *fiber.Ctx) ([]byte, error) {
	if file, err := ctx.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unreadable image upload")
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	body := ctx.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing receipt image")
	}
	image := make([]byte, len(body))
	copy(image, body)
	return image, nil
}

func (c *receiptController) Feedback(ctx *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Submit(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}
