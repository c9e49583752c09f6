package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name      string
		themeName string
		wantErr   error
		wantDark  bool
	}{
		{name: "loads paper", themeName: "paper"},
		{name: "loads midnight", themeName: "midnight", wantDark: true},
		{name: "loads glass", themeName: "glass"},
		{name: "loads mint", themeName: "mint"},
		{name: "nonexistent", themeName: "nonexistent-theme-xyz", wantErr: ErrThemeNotFound},
		{name: "empty name", themeName: "", wantErr: ErrInvalidAssetName},
		{name: "path traversal", themeName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "name with dot", themeName: "paper.yaml", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTheme(tt.themeName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTheme(%q) error = %v, want %v", tt.themeName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadTheme(%q) unexpected error: %v", tt.themeName, err)
			}
			if got.ID != tt.themeName {
				t.Errorf("LoadTheme(%q).ID = %q", tt.themeName, got.ID)
			}
			if got.Dark != tt.wantDark {
				t.Errorf("LoadTheme(%q).Dark = %v, want %v", tt.themeName, got.Dark, tt.wantDark)
			}
			if got.CodeStyle == "" {
				t.Errorf("LoadTheme(%q).CodeStyle is empty", tt.themeName)
			}
		})
	}
}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) unexpected error: %v", DefaultStyleName, err)
	}
	for _, want := range []string{".card", ".markdown-body", ".watermark", "var(--card-background)"} {
		if !strings.Contains(got, want) {
			t.Errorf("LoadStyle(%q) missing %q", DefaultStyleName, want)
		}
	}

	if _, err := loader.LoadStyle("nonexistent-style-xyz"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("..\\secret"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(traversal) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", DefaultTemplateName, err)
	}
	for _, want := range []string{"{{.Body}}", "{{.CSS}}", "{{.Watermark}}", `class="card"`} {
		if !strings.Contains(got, want) {
			t.Errorf("LoadTemplate(%q) missing %q", DefaultTemplateName, want)
		}
	}

	if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(nonexistent) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoader_ListThemes(t *testing.T) {
	t.Parallel()

	got, err := NewEmbeddedLoader().ListThemes()
	if err != nil {
		t.Fatalf("ListThemes() unexpected error: %v", err)
	}

	want := []string{"glass", "midnight", "mint", "paper"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListThemes() mismatch (-want +got):\n%s", diff)
	}
}
