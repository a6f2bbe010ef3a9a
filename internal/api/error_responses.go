package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/courtlog/internal/services"
)

type errorMapping struct {
	target error
	status int
	key    string
}

var serviceErrorMappings = []errorMapping{
	{services.ErrRegisterInputMissing, fiber.StatusBadRequest, "error.register_missing"},
	{services.ErrRegisterEmailInvalid, fiber.StatusBadRequest, "error.invalid_email"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "error.weak_password"},
	{services.ErrEmailAlreadyRegistered, fiber.StatusBadRequest, "error.email_taken"},
	{services.ErrRegisterFailed, fiber.StatusInternalServerError, "error.register_failed"},
	{services.ErrAuthCredentialsInvalid, fiber.StatusUnauthorized, "error.invalid_credentials"},
	{services.ErrAuthUserNotFound, fiber.StatusUnauthorized, "error.unauthorized"},

	{services.ErrPasswordChangeInvalidInput, fiber.StatusBadRequest, "error.password_change_missing"},
	{services.ErrPasswordChangeInvalidCurrent, fiber.StatusBadRequest, "error.password_current_invalid"},
	{services.ErrPasswordChangeMustDiffer, fiber.StatusBadRequest, "error.password_must_differ"},
	{services.ErrPasswordUpdateFailed, fiber.StatusInternalServerError, "error.password_update_failed"},

	{services.ErrActionInvalidInput, fiber.StatusBadRequest, "error.action_required"},
	{services.ErrActionNotFound, fiber.StatusNotFound, "error.action_not_found"},
	{services.ErrActionLoadFailed, fiber.StatusInternalServerError, "error.actions_load_failed"},
	{services.ErrActionCreateFailed, fiber.StatusInternalServerError, "error.action_create_failed"},
	{services.ErrActionUpdateFailed, fiber.StatusInternalServerError, "error.action_update_failed"},
	{services.ErrActionDeleteFailed, fiber.StatusInternalServerError, "error.action_delete_failed"},

	{services.ErrDiaryInvalidInput, fiber.StatusBadRequest, "error.diary_required"},
	{services.ErrDiaryInvalidDate, fiber.StatusBadRequest, "error.diary_invalid_date"},
	{services.ErrDiaryInvalidMonth, fiber.StatusBadRequest, "error.diary_invalid_month"},
	{services.ErrDiaryEntryNotFound, fiber.StatusNotFound, "error.diary_not_found"},
	{services.ErrDiaryEntryLoadFailed, fiber.StatusInternalServerError, "error.diary_load_failed"},
	{services.ErrDiaryEntryCreateFailed, fiber.StatusInternalServerError, "error.diary_create_failed"},
	{services.ErrDiaryEntryUpdateFailed, fiber.StatusInternalServerError, "error.diary_update_failed"},
	{services.ErrDiaryEntryDeleteFailed, fiber.StatusInternalServerError, "error.diary_delete_failed"},

	{services.ErrUploadMissingFile, fiber.StatusBadRequest, "error.upload_missing"},
	{services.ErrUploadUnsupportedType, fiber.StatusBadRequest, "error.upload_type"},
	{services.ErrUploadTooManyFiles, fiber.StatusBadRequest, "error.upload_too_many"},
	{services.ErrUploadTooLarge, fiber.StatusRequestEntityTooLarge, "error.upload_too_large"},
	{services.ErrUploadFailed, fiber.StatusInternalServerError, "error.upload_failed"},
}

// respondError writes {"error": <localized key>}.
func (handler *Handler) respondError(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.localize(c, key))
}

// respondServiceError maps a service error onto its status and message.
// Server-side failures are logged with the operation and caller.
func (handler *Handler) respondServiceError(c *fiber.Ctx, operation string, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			if mapping.status >= fiber.StatusInternalServerError {
				logRequestFailure(c, operation, err)
			}
			return handler.respondError(c, mapping.status, mapping.key)
		}
	}
	logRequestFailure(c, operation, err)
	return handler.respondError(c, fiber.StatusInternalServerError, "error.internal")
}

func logRequestFailure(c *fiber.Ctx, operation string, err error) {
	userID := ""
	if user, ok := currentUser(c); ok {
		userID = user.ID
	}
	slog.Error("request failed",
		"operation", operation,
		"method", c.Method(),
		"path", c.Path(),
		"user_id", userID,
		"error", err,
	)
}

// CSRFError answers requests rejected by the CSRF middleware.
func (handler *Handler) CSRFError(c *fiber.Ctx, _ error) error {
	return handler.respondError(c, fiber.StatusForbidden, "error.csrf")
}
