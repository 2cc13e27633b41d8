package assets

import (
	"errors"
	"fmt"
	"strings"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// If customBasePath is set, custom assets take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadScript loads a JavaScript file, trying custom loader first if available.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadScript(name)
	})
}

// LoadTemplate loads one template, trying custom loader first if available.
func (r *AssetResolver) LoadTemplate(set, name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(set, name)
	})
}

// LoadTemplateSet assembles a complete set. Each template is resolved
// independently, so custom files override their embedded counterparts.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return loadTemplateSet(r, name)
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return "", err
	}

	content, embeddedErr := loadFn(r.embedded)
	if embeddedErr == nil {
		return content, nil
	}
	// A custom-only set missing one file reports the missing file.
	if errors.Is(err, ErrTemplateNotFound) && errors.Is(embeddedErr, ErrTemplateSetNotFound) {
		return "", err
	}
	return "", embeddedErr
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrScriptNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// loadTemplateSet loads every required template of set through loader.
func loadTemplateSet(loader AssetLoader, set string) (*TemplateSet, error) {
	if err := ValidateAssetName(set); err != nil {
		return nil, err
	}

	ts := &TemplateSet{Name: set, Templates: make(map[string]string, len(RequiredTemplates))}
	var missing []string
	for _, name := range RequiredTemplates {
		content, err := loader.LoadTemplate(set, name)
		switch {
		case err == nil:
			ts.Templates[name] = content
		case errors.Is(err, ErrTemplateNotFound):
			missing = append(missing, name+".html")
		default:
			return nil, err
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, set, strings.Join(missing, ", "))
	}
	return ts, nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
