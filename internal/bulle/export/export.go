package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

// Export writes the site as index.html plus styles.css into dir, creating
// the directory if needed.
func Export(s *site.Site, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create directory: %w", err)
	}

	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(HTML(s, Options{})), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", htmlPath, err)
	}

	cssPath := filepath.Join(dir, "styles.css")
	if err := os.WriteFile(cssPath, []byte(CSS(s)), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", cssPath, err)
	}
	return nil
}

// ExportStandalone writes the site as a single self-contained HTML file with
// the stylesheet inlined.
func ExportStandalone(s *site.Site, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(HTML(s, Options{InlineCSS: true})), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
