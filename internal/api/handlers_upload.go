package api

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/services"
)

func (handler *Handler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return handler.respondServiceError(c, "upload", services.ErrUploadMissingFile)
	}

	handler.ensureDependencies()
	file, err := handler.uploadService.Store(c.UserContext(), header)
	if err != nil {
		return handler.respondServiceError(c, "upload", err)
	}
	return c.JSON(file)
}

func (handler *Handler) UploadImages(c *fiber.Ctx) error {
	return handler.uploadBatch(c, services.MediaImage)
}

func (handler *Handler) UploadVideos(c *fiber.Ctx) error {
	return handler.uploadBatch(c, services.MediaVideo)
}

func (handler *Handler) uploadBatch(c *fiber.Ctx, kind services.MediaKind) error {
	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		headers = form.File["files"]
	}

	handler.ensureDependencies()
	files, err := handler.uploadService.StoreBatch(c.UserContext(), headers, kind)
	if err != nil {
		return handler.respondServiceError(c, "upload "+string(kind)+"s", err)
	}
	return c.JSON(fiber.Map{"files": files})
}
