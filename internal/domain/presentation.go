package domain

// StyleRules is the complete presentation of a widget derived from its
// layout, position and colors. Renderers receive it explicitly; nothing
// keeps a process-wide stylesheet.
type StyleRules struct {
	Layout   Layout   `json:"layout"`
	Position Position `json:"position"`
	// Fixed is true for top and bottom placement: fixed, full width, no radius.
	Fixed bool `json:"fixed"`

	MaxWidth  string `json:"maxWidth"`
	Justify   string `json:"justify"`
	Padding   string `json:"padding"`
	Radius    string `json:"radius"`
	Direction string `json:"direction"`
	TextAlign string `json:"textAlign,omitempty"`

	TextDirection string `json:"textDirection"`
	TitleSize     string `json:"titleSize"`
	TimerGap      string `json:"timerGap"`

	BoxDirection    string `json:"boxDirection"`
	BoxPadding      string `json:"boxPadding"`
	BoxRadius       string `json:"boxRadius"`
	BoxMinWidth     string `json:"boxMinWidth"`
	NumberSize      string `json:"numberSize"`
	LabelSize       string `json:"labelSize"`
	LabelMarginLeft string `json:"labelMarginLeft"`
	LabelMarginTop  string `json:"labelMarginTop"`

	Mobile MobileRules `json:"mobile"`
	Colors Colors      `json:"colors"`
	Labels UnitLabels  `json:"labels"`
}

// MobileRules are the overrides applied below the mobile breakpoint.
type MobileRules struct {
	Breakpoint  string `json:"breakpoint"`
	BoxMinWidth string `json:"boxMinWidth"`
	BoxPadding  string `json:"boxPadding"`
	NumberSize  string `json:"numberSize"`
}

// UnitLabels are the captions shown under (or beside) each digit box.
type UnitLabels struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// MobileBreakpoint is the viewport width below which the widget collapses
// into a centered column.
const MobileBreakpoint = "768px"

type layoutRules struct {
	maxWidth, justify, padding, radius, direction, textAlign string
	textDirection, titleSize, timerGap                       string
	boxDirection, boxPadding, boxRadius, boxMinWidth         string
	numberSize, labelSize, labelMarginLeft, labelMarginTop   string
	mobile                                                   MobileRules
	labels                                                   UnitLabels
}

var (
	fullLabels = UnitLabels{Days: "Days", Hours: "Hours", Minutes: "Minutes", Seconds: "Seconds"}
	barLabels  = UnitLabels{Days: "Days", Hours: "Hr", Minutes: "Min", Seconds: "Sec"}

	layoutTable = map[Layout]layoutRules{
		LayoutBar: {
			maxWidth: "100%", justify: "space-between", padding: "12px 24px", radius: "0", direction: "row",
			textDirection: "row", titleSize: "1.1rem", timerGap: "8px",
			boxDirection: "row", boxPadding: "6px 12px", boxRadius: "6px", boxMinWidth: "auto",
			numberSize: "1.1rem", labelSize: "0.75rem", labelMarginLeft: "6px", labelMarginTop: "0",
			mobile: MobileRules{Breakpoint: MobileBreakpoint, BoxMinWidth: "auto", BoxPadding: "6px 10px", NumberSize: "1rem"},
			labels: barLabels,
		},
		LayoutBanner: {
			maxWidth: "100%", justify: "space-between", padding: "24px 32px", radius: "0", direction: "row",
			textDirection: "row", titleSize: "1.5rem", timerGap: "16px",
			boxDirection: "column", boxPadding: "12px 16px", boxRadius: "8px", boxMinWidth: "80px",
			numberSize: "2rem", labelSize: "0.7rem", labelMarginLeft: "0", labelMarginTop: "4px",
			mobile: MobileRules{Breakpoint: MobileBreakpoint, BoxMinWidth: "60px", BoxPadding: "8px", NumberSize: "1.5rem"},
			labels: fullLabels,
		},
		LayoutBox: {
			maxWidth: "600px", justify: "center", padding: "24px 32px", radius: "16px", direction: "column", textAlign: "center",
			textDirection: "column", titleSize: "1.5rem", timerGap: "16px",
			boxDirection: "column", boxPadding: "12px 16px", boxRadius: "8px", boxMinWidth: "80px",
			numberSize: "2rem", labelSize: "0.7rem", labelMarginLeft: "0", labelMarginTop: "4px",
			mobile: MobileRules{Breakpoint: MobileBreakpoint, BoxMinWidth: "60px", BoxPadding: "8px", NumberSize: "1.5rem"},
			labels: fullLabels,
		},
	}
)

// DeriveStyle maps a configuration to its presentation rules.
// Unknown layouts render as a banner.
func DeriveStyle(cfg Configuration) StyleRules {
	layout := cfg.Layout
	rules, ok := layoutTable[layout]
	if !ok {
		layout = LayoutBanner
		rules = layoutTable[LayoutBanner]
	}

	position := cfg.EffectivePosition()
	switch position {
	case PositionTop, PositionBottom, PositionInline:
	default:
		position = PositionInline
	}

	return StyleRules{
		Layout:   layout,
		Position: position,
		Fixed:    position == PositionTop || position == PositionBottom,

		MaxWidth:  rules.maxWidth,
		Justify:   rules.justify,
		Padding:   rules.padding,
		Radius:    rules.radius,
		Direction: rules.direction,
		TextAlign: rules.textAlign,

		TextDirection: rules.textDirection,
		TitleSize:     rules.titleSize,
		TimerGap:      rules.timerGap,

		BoxDirection:    rules.boxDirection,
		BoxPadding:      rules.boxPadding,
		BoxRadius:       rules.boxRadius,
		BoxMinWidth:     rules.boxMinWidth,
		NumberSize:      rules.numberSize,
		LabelSize:       rules.labelSize,
		LabelMarginLeft: rules.labelMarginLeft,
		LabelMarginTop:  rules.labelMarginTop,

		Mobile: rules.mobile,
		Colors: cfg.Colors,
		Labels: rules.labels,
	}
}

// Unit is one displayable time unit.
type Unit struct {
	Key   string // days | hours | minutes | seconds
	Label string
	Value int
}

// VisibleUnits returns the units enabled in cfg, largest first, labelled for
// cfg's layout and filled from sample. Visibility filters the display only;
// the sample always carries every unit.
func VisibleUnits(cfg Configuration, sample Sample) []Unit {
	labels := DeriveStyle(cfg).Labels
	r := sample.Remaining
	units := make([]Unit, 0, 4)
	if cfg.Units.Days {
		units = append(units, Unit{Key: "days", Label: labels.Days, Value: r.Days})
	}
	if cfg.Units.Hours {
		units = append(units, Unit{Key: "hours", Label: labels.Hours, Value: r.Hours})
	}
	if cfg.Units.Minutes {
		units = append(units, Unit{Key: "minutes", Label: labels.Minutes, Value: r.Minutes})
	}
	if cfg.Units.Seconds {
		units = append(units, Unit{Key: "seconds", Label: labels.Seconds, Value: r.Seconds})
	}
	return units
}
