package i18n

import (
	"sort"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLocaleKeysParity(t *testing.T) {
	manager := mustNewManager(t, LangEN)
	en := manager.locales[LangEN]
	zh := manager.locales[LangZH]

	if missing := missingKeys(en, zh); len(missing) > 0 {
		t.Errorf("keys missing in zh locale: %s", strings.Join(missing, ", "))
	}
	if missing := missingKeys(zh, en); len(missing) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missing, ", "))
	}
}

func TestLanguageNegotiation(t *testing.T) {
	manager := mustNewManager(t, "fr")

	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected unsupported default to fall back to en, got %q", manager.DefaultLanguage())
	}
	if got := manager.NormalizeLanguage("zh_CN"); got != LangZH {
		t.Fatalf("expected zh_CN to normalize to zh, got %q", got)
	}
	if got := manager.DetectFromAcceptLanguage("fr-FR,zh-TW;q=0.8,en;q=0.5"); got != LangZH {
		t.Fatalf("expected first supported language zh, got %q", got)
	}
	if got := manager.DetectFromAcceptLanguage(""); got != LangEN {
		t.Fatalf("expected default for empty header, got %q", got)
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	catalogs := fstest.MapFS{
		"en.json": {Data: []byte(`{"greeting": "Hello", "only.en": "English only", "calendar.title": "%s %d"}`)},
		"zh.json": {Data: []byte(`{"greeting": "你好", "calendar.title": "%[2]d年%[1]s"}`)},
	}
	manager, err := NewManager(LangEN, catalogs)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	if got := manager.Translate(LangZH, "greeting"); got != "你好" {
		t.Fatalf("expected zh greeting, got %q", got)
	}
	if got := manager.Translate(LangZH, "only.en"); got != "English only" {
		t.Fatalf("expected fallback to en, got %q", got)
	}
	if got := manager.Translate(LangZH, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if got := manager.Translatef(LangZH, "calendar.title", "3月", 2024); got != "2024年3月" {
		t.Fatalf("unexpected zh title %q", got)
	}
	if got := manager.Translatef(LangEN, "calendar.title", "March", 2024); got != "March 2024" {
		t.Fatalf("unexpected en title %q", got)
	}
}

func TestNewManagerRequiresBothCatalogs(t *testing.T) {
	_, err := NewManager(LangEN, fstest.MapFS{"en.json": {Data: []byte(`{"a": "b"}`)}})
	if err == nil {
		t.Fatal("expected error when zh catalog is missing")
	}
}

func mustNewManager(t *testing.T, defaultLanguage string) *Manager {
	t.Helper()
	manager, err := NewManager(defaultLanguage, Locales())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
