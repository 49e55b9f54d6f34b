package domain

// Patch is a partial edit of a Configuration. Nil fields are left untouched.
type Patch struct {
	TargetDate *string `json:"targetDate,omitempty"`
	TargetTime *string `json:"targetTime,omitempty"`
	Timezone   *string `json:"timezone,omitempty"`

	Layout   *Layout      `json:"layout,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Colors   *ColorsPatch `json:"colors,omitempty"`

	TitleText   *string `json:"titleText,omitempty"`
	PreDateText *string `json:"preDateText,omitempty"`

	Expiry   *ExpiryPatch   `json:"expiry,omitempty"`
	Units    *UnitsPatch    `json:"units,omitempty"`
	Identity *IdentityPatch `json:"identity,omitempty"`
}

type ColorsPatch struct {
	Background      *string `json:"background,omitempty"`
	Text            *string `json:"text,omitempty"`
	DigitBackground *string `json:"digitBackground,omitempty"`
	DigitText       *string `json:"digitText,omitempty"`
}

type ExpiryPatch struct {
	Action      *ExpiryAction `json:"action,omitempty"`
	Message     *string       `json:"message,omitempty"`
	RedirectURL *string       `json:"redirectUrl,omitempty"`
}

type UnitsPatch struct {
	Days    *bool `json:"days,omitempty"`
	Hours   *bool `json:"hours,omitempty"`
	Minutes *bool `json:"minutes,omitempty"`
	Seconds *bool `json:"seconds,omitempty"`
}

type IdentityPatch struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}

// Apply returns a new configuration with the patch applied on top of base.
// base is never modified.
func (p Patch) Apply(base Configuration) Configuration {
	out := base

	setString(&out.TargetDate, p.TargetDate)
	setString(&out.TargetTime, p.TargetTime)
	setString(&out.Timezone, p.Timezone)
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	setString(&out.TitleText, p.TitleText)
	setString(&out.PreDateText, p.PreDateText)

	if c := p.Colors; c != nil {
		setString(&out.Colors.Background, c.Background)
		setString(&out.Colors.Text, c.Text)
		setString(&out.Colors.DigitBackground, c.DigitBackground)
		setString(&out.Colors.DigitText, c.DigitText)
	}
	if e := p.Expiry; e != nil {
		if e.Action != nil {
			out.Expiry.Action = *e.Action
		}
		setString(&out.Expiry.Message, e.Message)
		setString(&out.Expiry.RedirectURL, e.RedirectURL)
	}
	if u := p.Units; u != nil {
		setBool(&out.Units.Days, u.Days)
		setBool(&out.Units.Hours, u.Hours)
		setBool(&out.Units.Minutes, u.Minutes)
		setBool(&out.Units.Seconds, u.Seconds)
	}
	if id := p.Identity; id != nil {
		setString(&out.Identity.Name, id.Name)
		setString(&out.Identity.Slug, id.Slug)
	}

	return out
}

// TouchesTarget reports whether applying p may move the target instant.
func (p Patch) TouchesTarget() bool {
	return p.TargetDate != nil || p.TargetTime != nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Overrides are the per-invocation attributes accepted by the render snippet.
// Each empty value keeps the stored configuration value.
type Overrides struct {
	Date    string
	Time    string
	Action  string
	Message string
	URL     string
	Title   string
	PreDate string
}

// Apply returns cfg with every present override substituted.
func (o Overrides) Apply(cfg Configuration) Configuration {
	out := cfg
	if o.Date != "" {
		out.TargetDate = o.Date
	}
	if o.Time != "" {
		out.TargetTime = o.Time
	}
	if o.Action != "" {
		out.Expiry.Action = ExpiryAction(o.Action)
	}
	if o.Message != "" {
		out.Expiry.Message = o.Message
	}
	if o.URL != "" {
		out.Expiry.RedirectURL = o.URL
	}
	if o.Title != "" {
		out.TitleText = o.Title
	}
	if o.PreDate != "" {
		out.PreDateText = o.PreDate
	}
	return out
}
