package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/register", handler.ShowRegisterPage)
	app.Get("/", handler.AuthRequired, handler.RedirectHome)

	dashboard := app.Group("/dashboard", handler.AuthRequired)
	dashboard.Get("", handler.ShowDashboard)
	dashboard.Get("/actions", handler.ShowActions)
	dashboard.Get("/actions/new", handler.ShowNewAction)
	dashboard.Get("/actions/:id", handler.ShowAction)
	dashboard.Get("/actions/:id/edit", handler.ShowEditAction)
	dashboard.Get("/diary", handler.ShowDiary)
	dashboard.Get("/diary/new", handler.ShowNewDiaryEntry)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/session", handler.AuthRequired, handler.Session)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	actions := api.Group("/actions", handler.AuthRequired)
	actions.Get("", handler.ListActions)
	actions.Post("", handler.CreateAction)
	actions.Get("/:id", handler.GetAction)
	actions.Put("/:id", handler.UpdateAction)
	actions.Delete("/:id", handler.DeleteAction)

	diary := api.Group("/diary", handler.AuthRequired)
	diary.Get("", handler.ListDiaryEntries)
	diary.Post("", handler.CreateDiaryEntry)
	diary.Get("/calendar", handler.DiaryCalendar)
	diary.Get("/:id", handler.GetDiaryEntry)
	diary.Put("/:id", handler.UpdateDiaryEntry)
	diary.Delete("/:id", handler.DeleteDiaryEntry)

	upload := api.Group("/upload", handler.AuthRequired)
	upload.Post("", handler.Upload)
	upload.Post("/images", handler.UploadImages)
	upload.Post("/videos", handler.UploadVideos)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
