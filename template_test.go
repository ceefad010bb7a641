package apikit

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tmpl, err := ParseTemplate("https://example.com/users/{user}/posts/{post}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tmpl.ParamNames(); !reflect.DeepEqual(got, []string{"user", "post"}) {
		t.Errorf("unexpected params: %v", got)
	}
}

func TestParseTemplateErrors(t *testing.T) {
	cases := []string{
		"https://example.com/items/{id",  // unterminated
		"https://example.com/items/{}",   // empty
		"https://example.com/items/id}",  // unmatched close
		"https://example.com/items/{a{b", // nested open
		"https://example.com/{a/b}",      // slash inside placeholder
	}
	for _, raw := range cases {
		if _, err := ParseTemplate(raw); err == nil {
			t.Errorf("ParseTemplate(%q): expected error", raw)
		}
	}
}

func TestTemplateExpand(t *testing.T) {
	tmpl := MustTemplate("https://example.com/users/{user}/posts/{post}")

	got, err := tmpl.Expand(Params{"user": "ann", "post": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/users/ann/posts/7" {
		t.Errorf("unexpected expansion %q", got)
	}
}

func TestTemplateExpandEscapes(t *testing.T) {
	tmpl := MustTemplate("https://example.com/files/{name}")
	got, err := tmpl.Expand(Params{"name": "a/b c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "a/b") || !strings.Contains(got, "%2F") {
		t.Errorf("value was not path-escaped: %q", got)
	}
}

func TestTemplateExpandMissingParam(t *testing.T) {
	tmpl := MustTemplate("https://example.com/items/{id}")
	if _, err := tmpl.Expand(nil); err == nil {
		t.Fatal("expected error for missing parameter")
	}
}

func TestTemplateExpandIgnoresExtras(t *testing.T) {
	tmpl := MustTemplate("https://example.com/items")
	got, err := tmpl.Expand(Params{"unused": 1})
	if err != nil || got != "https://example.com/items" {
		t.Errorf("Expand = %q, %v", got, err)
	}
}

func TestMustTemplatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustTemplate("{broken")
}
