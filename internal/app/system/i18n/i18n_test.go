package i18n_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/courseforge/internal/app/system/i18n"
	"golang.org/x/text/language"
)

func TestT_English(t *testing.T) {
	tr := i18n.New(language.English)
	if got := tr.T("All Students and Staff"); got != "All Students and Staff" {
		t.Errorf("english is the source language, got %q", got)
	}
}

func TestT_Spanish(t *testing.T) {
	tr := i18n.New(language.Spanish)
	if got := tr.T("Deleted Group"); got != "Grupo eliminado" {
		t.Errorf("expected spanish catalog entry, got %q", got)
	}
}

func TestT_UnknownStringFallsBack(t *testing.T) {
	tr := i18n.New(language.Spanish)
	if got := tr.T("Some brand new string"); got != "Some brand new string" {
		t.Errorf("uncataloged strings must pass through unchanged, got %q", got)
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		header string
		want   language.Tag
	}{
		{"es-MX,es;q=0.9", language.Spanish},
		{"en-US", language.English},
		{"", language.English},
		{"not-a-language;;;", language.English},
		{"fr-FR", language.English}, // unsupported → fallback
	}
	for _, c := range cases {
		got := i18n.Match(c.header)
		base, _ := got.Base()
		wantBase, _ := c.want.Base()
		if base != wantBase {
			t.Errorf("Match(%q): got %v, want %v", c.header, got, c.want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "es")
	tr := i18n.FromRequest(req)
	if got := tr.T("Warning:"); got != "Advertencia:" {
		t.Errorf("request-scoped translator: got %q", got)
	}
}
