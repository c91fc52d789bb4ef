// Package template loads the markdown templates used for notification
// emails. Built-in defaults are embedded; files in an override directory
// replace them by name.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/logger"
)

const (
	NameDaily  = "daily"
	NameWeekly = "weekly"
)

//go:embed defaults/*.md.tmpl
var defaultTemplates embed.FS

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "\n", " ",
)

var funcs = template.FuncMap{
	"md": markdownEscaper.Replace,
	"date": func(t time.Time) string {
		return t.Format(biztime.DateLayout)
	},
	"days": func(n int) string {
		switch {
		case n == 0:
			return "today"
		case n == 1:
			return "in 1 day"
		case n > 1:
			return fmt.Sprintf("in %d days", n)
		case n == -1:
			return "1 day ago"
		default:
			return fmt.Sprintf("%d days ago", -n)
		}
	},
	"batch": func(number string) string {
		if number == "" {
			return "-"
		}
		return number
	},
}

// DigestTemplateLoader holds parsed digest templates keyed by name.
type DigestTemplateLoader struct {
	templates map[string]*template.Template
	path      string
	logger    logger.Interface
}

// NewDigestTemplateLoader uses path as the override directory; empty means
// built-in templates only.
func NewDigestTemplateLoader(path string, logger logger.Interface) *DigestTemplateLoader {
	return &DigestTemplateLoader{
		templates: make(map[string]*template.Template),
		path:      path,
		logger:    logger,
	}
}

// Load parses the built-in templates, then any {name}.md.tmpl override.
// An override that fails to parse is an error, not a fallback.
func (l *DigestTemplateLoader) Load() error {
	for _, name := range []string{NameDaily, NameWeekly} {
		filename := name + ".md.tmpl"

		content, err := defaultTemplates.ReadFile("defaults/" + filename)
		if err != nil {
			return fmt.Errorf("missing built-in template %s: %w", name, err)
		}
		source := "built-in"

		if l.path != "" {
			custom, err := os.ReadFile(filepath.Join(l.path, filename))
			switch {
			case err == nil:
				content = custom
				source = filepath.Join(l.path, filename)
			case !os.IsNotExist(err):
				return fmt.Errorf("failed to read template %s: %w", filename, err)
			}
		}

		tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse template %s (%s): %w", name, source, err)
		}
		l.templates[name] = tmpl

		l.logger.Debugw("loaded digest template", "name", name, "source", source, "size", len(content))
	}
	return nil
}

// Render executes the named template.
func (l *DigestTemplateLoader) Render(name string, data any) (string, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not loaded", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
