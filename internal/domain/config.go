package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Layout controls the arrangement of the widget.
type Layout string

const (
	LayoutBar    Layout = "bar"
	LayoutBanner Layout = "banner"
	LayoutBox    Layout = "box"
)

// Position controls where a bar or banner is placed on the page.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionInline Position = "inline"
)

// ExpiryAction is what the widget does once the target instant has passed.
type ExpiryAction string

const (
	ActionMessage  ExpiryAction = "message"
	ActionHide     ExpiryAction = "hide"
	ActionRedirect ExpiryAction = "redirect"
	// ActionRestart is declared but has no presentation of its own.
	ActionRestart ExpiryAction = "restart"
)

// Input formats of TargetDate and TargetTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Configuration is the complete description of one countdown widget.
//
// It is a value: edits go through Patch.Apply and produce a new Configuration.
// Timezone is stored for round-tripping but never consulted; targets are
// interpreted in the viewer's local clock.
type Configuration struct {
	TargetDate string `json:"targetDate" yaml:"targetDate"`
	TargetTime string `json:"targetTime" yaml:"targetTime"`
	Timezone   string `json:"timezone" yaml:"timezone"`

	Layout   Layout   `json:"layout" yaml:"layout"`
	Position Position `json:"position" yaml:"position"`
	Colors   Colors   `json:"colors" yaml:"colors"`

	TitleText   string `json:"titleText" yaml:"titleText"`
	PreDateText string `json:"preDateText" yaml:"preDateText"`

	Expiry   Expiry   `json:"expiry" yaml:"expiry"`
	Units    Units    `json:"units" yaml:"units"`
	Identity Identity `json:"identity" yaml:"identity"`
}

// Colors holds the four independent color values of the widget.
type Colors struct {
	Background      string `json:"background" yaml:"background"`
	Text            string `json:"text" yaml:"text"`
	DigitBackground string `json:"digitBackground" yaml:"digitBackground"`
	DigitText       string `json:"digitText" yaml:"digitText"`
}

// Expiry groups the expiry action with its payloads.
type Expiry struct {
	Action      ExpiryAction `json:"action" yaml:"action"`
	Message     string       `json:"message" yaml:"message"`
	RedirectURL string       `json:"redirectUrl" yaml:"redirectUrl"`
}

// Units toggles each displayed time unit. Hiding all four is legal.
type Units struct {
	Days    bool `json:"days" yaml:"days"`
	Hours   bool `json:"hours" yaml:"hours"`
	Minutes bool `json:"minutes" yaml:"minutes"`
	Seconds bool `json:"seconds" yaml:"seconds"`
}

// Identity names the exported plugin.
type Identity struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// Default returns the configuration a new editing session starts from.
func Default() Configuration {
	return Configuration{
		TargetDate: "2025-12-31",
		TargetTime: "23:59",
		Timezone:   "UTC",

		Layout:   LayoutBanner,
		Position: PositionInline,
		Colors: Colors{
			Background:      "#0f172a",
			Text:            "#ffffff",
			DigitBackground: "#2563eb",
			DigitText:       "#ffffff",
		},

		TitleText:   "🔥 Cyber Monday Sale Countdown",
		PreDateText: "🍀 Get 30% off. Sale ends in",

		Expiry: Expiry{
			Action:      ActionMessage,
			Message:     "This offer has expired.",
			RedirectURL: "https://example.com",
		},
		Units: Units{Days: true, Hours: true, Minutes: true, Seconds: true},
		Identity: Identity{
			Name: "Smart Countdown Timer",
			Slug: "smart-countdown-timer",
		},
	}
}

// Normalize returns a fully populated copy of c.
// Empty enum, color and identity fields fall back to the defaults and the slug
// is sanitised. Target date and time are kept as-is: a malformed target is a
// valid (already expired) configuration.
func (c Configuration) Normalize() Configuration {
	def := Default()
	out := c

	if out.Timezone == "" {
		out.Timezone = def.Timezone
	}
	if out.Layout == "" {
		out.Layout = def.Layout
	}
	if out.Position == "" {
		out.Position = def.Position
	}
	if out.Colors.Background == "" {
		out.Colors.Background = def.Colors.Background
	}
	if out.Colors.Text == "" {
		out.Colors.Text = def.Colors.Text
	}
	if out.Colors.DigitBackground == "" {
		out.Colors.DigitBackground = def.Colors.DigitBackground
	}
	if out.Colors.DigitText == "" {
		out.Colors.DigitText = def.Colors.DigitText
	}
	if out.Expiry.Action == "" {
		out.Expiry.Action = def.Expiry.Action
	}

	out.Identity.Name = strings.TrimSpace(out.Identity.Name)
	if out.Identity.Name == "" {
		out.Identity.Name = def.Identity.Name
	}
	out.Identity.Slug = Slugify(out.Identity.Slug)
	if out.Identity.Slug == "" {
		out.Identity.Slug = Slugify(out.Identity.Name)
	}
	if out.Identity.Slug == "" {
		out.Identity.Slug = def.Identity.Slug
	}

	return out
}

// Validate checks enum membership and color well-formedness.
func (c Configuration) Validate() error {
	verr := &ValidationError{}

	switch c.Layout {
	case LayoutBar, LayoutBanner, LayoutBox:
	default:
		verr.add("layout", "must be one of bar, banner, box")
	}
	switch c.Position {
	case PositionTop, PositionBottom, PositionInline:
	default:
		verr.add("position", "must be one of top, bottom, inline")
	}
	switch c.Expiry.Action {
	case ActionMessage, ActionHide, ActionRedirect, ActionRestart:
	default:
		verr.add("expiry.action", "must be one of message, hide, redirect, restart")
	}

	colors := map[string]string{
		"colors.background":      c.Colors.Background,
		"colors.text":            c.Colors.Text,
		"colors.digitBackground": c.Colors.DigitBackground,
		"colors.digitText":       c.Colors.DigitText,
	}
	for _, field := range []string{"colors.background", "colors.text", "colors.digitBackground", "colors.digitText"} {
		if !IsColor(colors[field]) {
			verr.add(field, "is not a well-formed color")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Target parses TargetDate and TargetTime in loc.
// The stored Timezone is deliberately not used.
func (c Configuration) Target(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	date := strings.TrimSpace(c.TargetDate)
	clock := strings.TrimSpace(c.TargetTime)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EffectivePosition is the position the widget renders with.
// A box is always inline regardless of the stored position.
func (c Configuration) EffectivePosition() Position {
	if c.Layout == LayoutBox {
		return PositionInline
	}
	return c.Position
}

// Fingerprint returns a stable digest of the configuration.
// Identical configurations always share a fingerprint.
func (c Configuration) Fingerprint() string {
	// encoding a struct of strings and bools cannot fail
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(?:rgba?|hsla?)\(\s*[-0-9.%\s,/deg]+\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,30}$`)
	slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsColor reports whether s looks like a CSS color value.
func IsColor(s string) bool {
	s = strings.TrimSpace(s)
	return hexColor.MatchString(s) || funcColor.MatchString(s) || namedColor.MatchString(s)
}

// Slugify turns s into a URL and file safe slug.
// Example: "Smart Countdown Timer!" -> "smart-countdown-timer"
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugUnsafe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
