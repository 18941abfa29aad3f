// Package assets provides CSS styles and HTML templates for standalone
// outline documents. Assets can be loaded from embedded files or custom
// filesystem paths.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the command line tool. It tries the
// custom FilesystemLoader first and falls back to EmbeddedLoader when the
// asset is not found, so a directory may override a single stylesheet and
// keep the built-in templates.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., compact.css)
//	└── templates/
//	    └── {name}/
//	        ├── header.html      # Document start up to <body>
//	        └── footer.html      # Document end
//
// Templates are html/template sources executed with pipeline.DocumentData.
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
