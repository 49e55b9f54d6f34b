package artifact

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

const fragmentSource = `<div class="sct-container sct-layout-{{.Style.Layout}} sct-pos-{{.Style.Position}}" data-date="{{.Config.TargetDate}} {{.Config.TargetTime}}" data-action="{{.Config.Expiry.Action}}" data-url="{{.Config.Expiry.RedirectURL}}">
{{- if .Expired}}
{{- if eq .Expiry.Kind "message"}}
  <div class="sct-expiry-message">{{.Expiry.Message}}</div>
{{- else if eq .Expiry.Kind "redirect"}}
  <div class="sct-expiry-redirect" data-navigate="{{.Expiry.Navigate}}">{{.Expiry.RedirectURL}}</div>
{{- end}}
{{- else}}
  <div class="sct-text-content">
{{- if and .IsBanner .Config.TitleText}}
    <div class="sct-title">{{.Config.TitleText}}</div>
{{- end}}
{{- if .Config.PreDateText}}
    <div class="sct-pre-date">{{.Config.PreDateText}}</div>
{{- end}}
  </div>
  <div class="sct-timer">
{{- range .Units}}
    <div class="sct-box"><span class="sct-number sct-{{.Key}}">{{pad .Value}}</span><span class="sct-label">{{.Label}}</span></div>
{{- end}}
  </div>
{{- end}}
</div>
`

var fragmentTmpl = htmltemplate.Must(htmltemplate.New("fragment").
	Funcs(htmltemplate.FuncMap{"pad": domain.Pad}).
	Parse(fragmentSource))

type fragmentData struct {
	Config   domain.Configuration
	Style    domain.StyleRules
	Units    []domain.Unit
	IsBanner bool
	Expired  bool
	Expiry   domain.ExpiryView
}

// RenderFragment renders the widget markup for one sample, the way the
// exported plugin shows it at that instant. A hidden widget renders an empty
// container.
func RenderFragment(cfg domain.Configuration, sample domain.Sample) (string, error) {
	data := fragmentData{
		Config:   cfg,
		Style:    domain.DeriveStyle(cfg),
		Units:    domain.VisibleUnits(cfg, sample),
		IsBanner: cfg.Layout == domain.LayoutBanner,
		Expired:  sample.Expired,
	}
	if sample.Expired {
		data.Expiry = domain.PresentConfig(cfg)
	}

	var buf bytes.Buffer
	if err := fragmentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render fragment: %w", err)
	}
	return buf.String(), nil
}
