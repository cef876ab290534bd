package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// maxFilesPerUpload caps a multi-file upload request.
const maxFilesPerUpload = 5

// UploadHandler handles file uploads for product images and AR models.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the upload routes. All of them require auth.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	uploadRoutes := router.Group("/upload", auth)
	uploadRoutes.Post("/single", h.HandleUploadSingle)
	uploadRoutes.Post("/multiple", h.HandleUploadMultiple)
}

// HandleUploadSingle stores one file from the "file" form field.
func (h *UploadHandler) HandleUploadSingle(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please upload a file",
		})
	}

	file, err := h.service.SaveFile(header)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"file":    file,
	})
}

// HandleUploadMultiple stores up to maxFilesPerUpload files from the "files"
// form field.
func (h *UploadHandler) HandleUploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondBadBody(c, err)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please upload files",
		})
	}
	if len(headers) > maxFilesPerUpload {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Too many files",
		})
	}

	files := make([]*services.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := h.service.SaveFile(header)
		if err != nil {
			return respondError(c, err)
		}
		files = append(files, file)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"files":   files,
	})
}
