package result

// BannerVariant selects how the UI styles a banner.
type BannerVariant string

const (
	BannerInfo    BannerVariant = "info"
	BannerSuccess BannerVariant = "success"
	BannerWarning BannerVariant = "warning"
	BannerError   BannerVariant = "error"
)

// Renderer defaults. The UI applies these when the corresponding field is
// left empty, so handlers only set what they want to override.
const (
	DefaultBannerDurationMS = 5000
	DefaultOpenLabel        = "Open"
	DefaultDismissLabel     = "Dismiss"
)

// Banner is a presentation-agnostic notice produced by a handler. JSON tags
// cover the notify fan-out; the in-process UI reads fields directly.
type Banner struct {
	Variant      BannerVariant `json:"variant"`
	Title        string        `json:"title,omitempty"`
	Message      string        `json:"message"`
	OpenLabel    string        `json:"open_label,omitempty"`
	OpenRoute    string        `json:"open_route,omitempty"`
	DismissLabel string        `json:"dismiss_label,omitempty"`
	DurationMS   int           `json:"duration_ms,omitempty"`
}

// NewBanner returns a banner with renderer defaults filled in.
func NewBanner(variant BannerVariant, title, message string) *Banner {
	return &Banner{
		Variant:      variant,
		Title:        title,
		Message:      message,
		DismissLabel: DefaultDismissLabel,
		DurationMS:   DefaultBannerDurationMS,
	}
}

// WithAction attaches an open action routing to target. An empty label falls
// back to the default.
func (b *Banner) WithAction(label, route string) *Banner {
	if label == "" {
		label = DefaultOpenLabel
	}
	b.OpenLabel = label
	b.OpenRoute = route
	return b
}
