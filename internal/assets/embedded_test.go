package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads default style",
			styleName:   DefaultStyleName,
			wantContain: "--background",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) missing %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		set         string
		tmpl        string
		wantErr     error
		wantContain string
	}{
		{
			name:        "base layout",
			set:         DefaultTemplateSetName,
			tmpl:        TemplateBase,
			wantContain: `{{template "content" .}}`,
		},
		{
			name:        "404 page",
			set:         DefaultTemplateSetName,
			tmpl:        TemplateNotFound,
			wantContain: `{{define "content"}}`,
		},
		{
			name:    "unknown set",
			set:     "nonexistent",
			tmpl:    TemplateBase,
			wantErr: ErrTemplateSetNotFound,
		},
		{
			name:    "unknown template in known set",
			set:     DefaultTemplateSetName,
			tmpl:    "sidebar",
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "traversal in set name",
			set:     "../default",
			tmpl:    TemplateBase,
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "traversal in template name",
			set:     DefaultTemplateSetName,
			tmpl:    "../base",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.set, tt.tmpl)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q, %q) error = %v, want %v", tt.set, tt.tmpl, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate() unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadTemplate(%q, %q) missing %q", tt.set, tt.tmpl, tt.wantContain)
			}
		})
	}
}

func TestDefaultTemplateSet_Parses(t *testing.T) {
	t.Parallel()

	ts, err := LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}

	funcs := template.FuncMap{"plural": func(int) string { return "" }}
	layout, err := template.New(TemplateBase).Funcs(funcs).Parse(ts.Templates[TemplateBase])
	if err != nil {
		t.Fatalf("parsing base: %v", err)
	}
	if _, err := layout.Parse(ts.Templates[TemplatePartials]); err != nil {
		t.Fatalf("parsing partials: %v", err)
	}

	for _, page := range ts.Pages() {
		t.Run(page, func(t *testing.T) {
			t.Parallel()

			clone, err := layout.Clone()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := clone.Parse(ts.Templates[page]); err != nil {
				t.Fatalf("parsing %s: %v", page, err)
			}
			if clone.Lookup("content") == nil {
				t.Errorf("%s does not define content", page)
			}
		})
	}
}

func TestDefaultTemplateSet_SearchHooks(t *testing.T) {
	t.Parallel()

	base, err := LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{
		`id="search-index"`,
		`id="search-modal"`,
		`id="search-input"`,
		`id="search-results"`,
		`id="search-toggle"`,
		`class="search-backdrop"`,
		`id="theme-toggle"`,
		`id="navbar-nav"`,
		`id="mobile-menu-toggle"`,
	} {
		if !strings.Contains(base.Templates[TemplateBase], id) {
			t.Errorf("base template missing %s", id)
		}
	}
}

func TestEmbeddedLoader_LoadScript(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range DefaultScripts {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadScript(name)
			if err != nil {
				t.Fatalf("LoadScript(%q) error = %v", name, err)
			}
			if !strings.Contains(got, "function") {
				t.Errorf("LoadScript(%q) returned unexpected content", name)
			}
		})
	}

	if _, err := loader.LoadScript("missing"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("LoadScript(missing) error = %v, want ErrScriptNotFound", err)
	}
	if _, err := LoadScript("../theme"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadScript(../theme) error = %v, want ErrInvalidAssetName", err)
	}
}
