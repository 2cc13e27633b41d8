// Package assets provides the site theme stylesheet and the HTML page
// templates used by the generator.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default theme)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the site generator. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader when an asset
// is not found. Fallback applies per template file, so a custom directory
// may override post.html alone and inherit every other page.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Theme stylesheet (e.g., default.css)
//	└── templates/
//	    └── {set}/
//	        ├── base.html        # Page layout, executes "content"
//	        ├── partials.html    # Shared fragments (post card, tag link)
//	        └── {page}.html      # home, blog, post, tag, about, 404
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
