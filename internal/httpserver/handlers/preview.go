package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/artifact"
	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
)

type previewResponse struct {
	Revision   int                  `json:"revision"`
	Config     domain.Configuration `json:"config"`
	Sample     domain.Sample        `json:"sample"`
	Expiry     *domain.ExpiryView   `json:"expiry,omitempty"`
	Style      domain.StyleRules    `json:"style"`
	Stylesheet string               `json:"stylesheet"`
	Markup     string               `json:"markup"`
}

// overridesFromQuery reads the shortcode attributes a page may pass
// (date, time, action, message, url, title, predate).
func overridesFromQuery(r *http.Request) domain.Overrides {
	q := r.URL.Query()
	return domain.Overrides{
		Date:    q.Get("date"),
		Time:    q.Get("time"),
		Action:  q.Get("action"),
		Message: q.Get("message"),
		URL:     q.Get("url"),
		Title:   q.Get("title"),
		PreDate: q.Get("predate"),
	}
}

// Preview shows the session's widget as the exported plugin would render it
// right now, with optional per-invocation overrides.
func Preview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Sessions.Get(r.Context(), sessionID(r))
		if err != nil {
			writeError(w, d, err)
			return
		}

		cfg := overridesFromQuery(r).Apply(sess.Config)
		sample := domain.DeriveConfig(cfg, d.Now(), d.Loc())
		style := domain.DeriveStyle(cfg)

		stylesheet, err := artifact.RenderStylesheet(style)
		if err != nil {
			writeError(w, d, err)
			return
		}
		markup, err := artifact.RenderFragment(cfg, sample)
		if err != nil {
			writeError(w, d, err)
			return
		}

		resp := previewResponse{
			Revision:   sess.Revision,
			Config:     cfg,
			Sample:     sample,
			Style:      style,
			Stylesheet: stylesheet,
			Markup:     markup,
		}
		if sample.Expired {
			view := domain.PresentConfig(cfg)
			resp.Expiry = &view
		}
		writeJSON(w, d, http.StatusOK, resp)
	}
}
