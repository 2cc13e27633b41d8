package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed scripts/*.js
var scripts embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadScript loads a JavaScript file from embedded assets by name.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := scripts.ReadFile("scripts/" + name + ".js")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrScriptNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads an HTML template of an embedded set.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadTemplate(set, name string) (string, error) {
	if err := ValidateAssetName(set); err != nil {
		return "", err
	}
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	dir := "templates/" + set
	if info, err := fs.Stat(templates, dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrTemplateSetNotFound, set)
	}

	content, err := templates.ReadFile(dir + "/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %s/%s.html", ErrTemplateNotFound, set, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
