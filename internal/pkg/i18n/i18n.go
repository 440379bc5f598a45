package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

//go:embed locales
var builtin embed.FS

type Translations map[string]string

// Catalog holds notification message templates per locale. Templates use the
// {actor} placeholder. A Catalog is read-only once loaded.
type Catalog struct {
	locale  string
	locales map[string]Translations
}

// NewCatalog loads the built-in templates and, when localePath is not empty,
// overlays every <locale>/notifications.yaml found under it.
func NewCatalog(locale, localePath string) (*Catalog, error) {
	c := &Catalog{locale: locale, locales: make(map[string]Translations)}
	if c.locale == "" {
		c.locale = DefaultLocale
	}

	sub, err := fs.Sub(builtin, "locales")
	if err != nil {
		return nil, err
	}
	if err := c.load(sub); err != nil {
		return nil, err
	}

	if localePath != "" {
		if err := c.load(os.DirFS(localePath)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) load(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.ToSlash(filepath.Join(locale, "notifications.yaml"))

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var file struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		if c.locales[locale] == nil {
			c.locales[locale] = make(Translations)
		}
		for k, v := range file.Notifications {
			c.locales[locale][k] = v
		}
	}

	return nil
}

// Render returns the message for key in the catalog locale, falling back to
// English and finally to the key itself.
func (c *Catalog) Render(key, actor string) string {
	return strings.ReplaceAll(c.template(key), "{actor}", actor)
}

func (c *Catalog) template(key string) string {
	if trans, ok := c.locales[c.locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if c.locale != DefaultLocale {
		if trans, ok := c.locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}
