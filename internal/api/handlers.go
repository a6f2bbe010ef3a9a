package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/terraincognita07/courtlog/internal/i18n"
	"github.com/terraincognita07/courtlog/internal/services"
	"gorm.io/gorm"
)

var pageTemplates = []string{
	"login",
	"register",
	"dashboard",
	"actions",
	"action_form",
	"action_detail",
	"diary",
	"diary_form",
	"not_found",
}

func NewHandler(database *gorm.DB, secret string, templateFiles fs.FS, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, store services.ObjectStore) (*Handler, error) {
	if location == nil {
		location = time.UTC
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if store == nil {
		return nil, errors.New("upload store is required")
	}

	codec, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	funcMap := template.FuncMap{
		"t": func(messages map[string]string, key string) string {
			return translateMessage(messages, key)
		},
		"tf": func(messages map[string]string, key string, args ...any) string {
			return fmt.Sprintf(translateMessage(messages, key), args...)
		},
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.In(location).Format(layout)
		},
		"deref": func(value *int) string {
			if value == nil {
				return ""
			}
			return fmt.Sprint(*value)
		},
		"isActiveRoute": func(currentPath string, route string) bool {
			path := strings.TrimSpace(currentPath)
			return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
		},
		"toJSON": func(value any) template.JS {
			serialized, _ := json.Marshal(value)
			return template.JS(serialized)
		},
	}

	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(templateFiles, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		templates:    templates,
		store:        store,
		cookieCodec:  codec,
	}
	return handler.withDependencies(database), nil
}
