package site

import (
	"path/filepath"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// writeStatic writes the theme stylesheet and scripts, then copies the
// user's static and assets directories over them. It returns the number of
// user files copied.
func (b *build) writeStatic() (int, error) {
	theme, err := b.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return 0, err
	}
	if err := b.write("styles/theme.css", []byte(theme)); err != nil {
		return 0, err
	}

	if b.syntaxCSS != "" {
		if err := b.write("styles/syntax.css", []byte(b.syntaxCSS)); err != nil {
			return 0, err
		}
	}

	for _, name := range assets.DefaultScripts {
		script, err := b.assets.LoadScript(name)
		if err != nil {
			return 0, err
		}
		if err := b.write("scripts/"+name+".js", []byte(script)); err != nil {
			return 0, err
		}
	}

	out := b.cfg.Build.OutputDir
	copied := 0
	dirs := []struct{ src, dst string }{
		{b.cfg.Content.StaticDir, out},
		{b.cfg.Content.AssetsDir, filepath.Join(out, "assets")},
	}
	for _, d := range dirs {
		if d.src == "" || !fileutil.DirExists(d.src) {
			continue
		}
		n, err := fileutil.CopyDir(d.src, d.dst)
		if err != nil {
			return copied, err
		}
		copied += n
		b.logger.Debug("copied directory", "from", d.src, "files", n)
	}
	return copied, nil
}
