package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,es;q=0.8") != "es" {
		t.Fatalf("expected es as first supported language")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "es" {
		t.Fatalf("expected es fallback")
	}
	if DetectLanguage("") != "es" {
		t.Fatalf("expected default es")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("es", "required") != "Obligatorio" {
		t.Fatalf("expected Obligatorio")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to es translation if exists
	if T("fr", "required") != "Obligatorio" {
		t.Fatalf("expected es fallback for fr lang")
	}
}

func TestTf(t *testing.T) {
	got := Tf("es", "mail.application_body", "ana", "Logo Design")
	if got != "ana se ha postulado a tu proyecto: Logo Design." {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for code := range catalog[Default] {
		if _, ok := catalog["en"][code]; !ok {
			t.Errorf("en catalog missing %q", code)
		}
	}
	for code := range catalog["en"] {
		if _, ok := catalog[Default][code]; !ok {
			t.Errorf("es catalog missing %q", code)
		}
	}
}

func TestLangContext(t *testing.T) {
	ctx := context.Background()
	if LangFromContext(ctx) != Default {
		t.Fatalf("expected default lang")
	}
	if LangFromContext(WithLang(ctx, "en")) != "en" {
		t.Fatalf("expected en from context")
	}
}
