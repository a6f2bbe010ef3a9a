package api

import (
	"html/template"
	"time"

	"github.com/terraincognita07/courtlog/internal/db"
	"github.com/terraincognita07/courtlog/internal/i18n"
	"github.com/terraincognita07/courtlog/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	store        services.ObjectStore
	cookieCodec  *secureCookieCodec

	repositories  *db.Repositories
	authService   *services.AuthService
	actionService *services.ActionService
	diaryService  *services.DiaryService
	uploadService *services.UploadService
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type registerInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type actionPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
}

// MaxRequestBodyBytes leaves room for a full video batch plus form overhead.
const MaxRequestBodyBytes = 5*services.MaxVideoBytes + 4<<20
