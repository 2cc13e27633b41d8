package assets

// DefaultScripts are the scripts referenced by the default layout.
var DefaultScripts = []string{"theme", "search", "navigation", "copy-code"}

// AssetLoader defines the contract for loading CSS styles and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadScript loads a JavaScript file by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	LoadScript(name string) (string, error)

	// LoadTemplate loads one page template of a template set by name
	// (without .html extension).
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrTemplateNotFound if the set exists but lacks the template.
	// Returns ErrInvalidAssetName if either name contains invalid characters.
	LoadTemplate(set, name string) (string, error)
}
