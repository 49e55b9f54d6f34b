// Package artifact renders the text documents of an exported countdown plugin.
//
// Rendering is a pure function of the configuration: the same configuration
// always produces byte-identical documents.
package artifact

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

// Document names, in render order.
const (
	Manifest   = "manifest"
	Shortcode  = "shortcode"
	Stylesheet = "stylesheet"
	Script     = "script"
	Readme     = "readme"
)

// ShortcodeTag is the invocation tag registered by the exported plugin.
const ShortcodeTag = "smart_countdown"

// Document is one named text file of the plugin, with its path relative to
// the plugin root directory.
type Document struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Documents is the ordered set of derived documents.
type Documents []Document

// Get returns the document called name.
func (d Documents) Get(name string) (Document, bool) {
	for _, doc := range d {
		if doc.Name == name {
			return doc, true
		}
	}
	return Document{}, false
}

// Names lists the document names in order.
func (d Documents) Names() []string {
	names := make([]string, 0, len(d))
	for _, doc := range d {
		names = append(names, doc.Name)
	}
	return names
}

// templateData is what every document template sees.
type templateData struct {
	Config   domain.Configuration
	Style    domain.StyleRules
	Units    []domain.Unit
	Tag      string
	IsBanner bool
}

var funcs = template.FuncMap{
	"php":    phpString,
	"header": headerLine,
}

var (
	manifestTmpl   = template.Must(template.New(Manifest).Funcs(funcs).Parse(manifestSource))
	shortcodeTmpl  = template.Must(template.New(Shortcode).Funcs(funcs).Parse(shortcodeSource))
	stylesheetTmpl = template.Must(template.New(Stylesheet).Funcs(funcs).Parse(stylesheetSource))
	readmeTmpl     = template.Must(template.New(Readme).Funcs(funcs).Parse(readmeSource))
)

// Render derives the five plugin documents from cfg.
// cfg is expected to be normalized; Render itself never fails for a
// normalized configuration.
func Render(cfg domain.Configuration) (Documents, error) {
	data := newTemplateData(cfg)
	slug := cfg.Identity.Slug

	manifest, err := execute(manifestTmpl, data)
	if err != nil {
		return nil, err
	}
	shortcode, err := execute(shortcodeTmpl, data)
	if err != nil {
		return nil, err
	}
	css, err := RenderStylesheet(data.Style)
	if err != nil {
		return nil, err
	}
	readme, err := execute(readmeTmpl, data)
	if err != nil {
		return nil, err
	}

	return Documents{
		{Name: Manifest, Path: slug + ".php", Content: manifest},
		{Name: Shortcode, Path: "includes/shortcode.php", Content: shortcode},
		{Name: Stylesheet, Path: "assets/css/style.css", Content: css},
		{Name: Script, Path: "assets/js/script.js", Content: scriptSource},
		{Name: Readme, Path: "README.txt", Content: readme},
	}, nil
}

// RenderStylesheet produces the plugin stylesheet from explicit style rules.
// The preview uses the same function so both always agree.
func RenderStylesheet(style domain.StyleRules) (string, error) {
	return execute(stylesheetTmpl, templateData{Style: style})
}

func newTemplateData(cfg domain.Configuration) templateData {
	// placeholders are rendered as "00" whatever the sample holds
	return templateData{
		Config:   cfg,
		Style:    domain.DeriveStyle(cfg),
		Units:    domain.VisibleUnits(cfg, domain.Sample{}),
		Tag:      ShortcodeTag,
		IsBanner: cfg.Layout == domain.LayoutBanner,
	}
}

func execute(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

var (
	phpEscaper    = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	headerEscaper = strings.NewReplacer("*/", "* /", "\r", " ", "\n", " ")
)

// phpString escapes s for use inside a single-quoted PHP string literal.
func phpString(s string) string {
	return phpEscaper.Replace(s)
}

// headerLine keeps s on a single line inside a PHP doc-block header.
func headerLine(s string) string {
	return headerEscaper.Replace(s)
}
