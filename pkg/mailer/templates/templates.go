package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names. Each has <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
const (
	Welcome         = "welcome"
	PasswordChanged = "password_changed"
)

var ErrUnknownTemplate = errors.New("unknown email template")

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if rv := reflect.ValueOf(value); !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

func funcs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

// plain holds the subject and text bodies, rich the HTML bodies. Both are parsed once.
var (
	parseOnce sync.Once
	plain     *texttpl.Template
	rich      *htmpl.Template
	parseErr  error
)

func parsed() error {
	parseOnce.Do(func() {
		plain, parseErr = texttpl.New("").Funcs(funcs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if parseErr != nil {
			return
		}
		rich, parseErr = htmpl.New("").Funcs(funcs()).ParseFS(FS, "*.html.tmpl")
	})
	return parseErr
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(t executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", file, err)
	}
	return buf.String(), nil
}

// Render produces the subject (trimmed), text and html bodies of the named template.
func Render(name string, data any) (subject, text, html string, err error) {
	if err = parsed(); err != nil {
		return "", "", "", err
	}
	if plain.Lookup(name+".subject.tmpl") == nil {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if subject, err = execute(plain, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(plain, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(rich, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
