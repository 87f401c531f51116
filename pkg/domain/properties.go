package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Property keys understood by the navigation engine.
const (
	KeyContext                    = "context"
	KeyPresentation               = "presentation"
	KeyModalStyle                 = "modal_style"
	KeyPullToRefreshEnabled       = "pull_to_refresh_enabled"
	KeyModalDismissGestureEnabled = "modal_dismiss_gesture_enabled"
	KeyAnimated                   = "animated"
	KeyHistoricalLocation         = "historical_location"
	KeyQueryStringPresentation    = "query_string_presentation"
	KeyViewController             = "view_controller"
)

// DefaultViewController is the screen identifier used when a rule names none.
const DefaultViewController = "web"

// Properties is the merged property bag resolved for a path.
// Unknown keys are ignored; missing or mistyped keys fall back to defaults.
type Properties map[string]any

// Merge copies every key of other into p, overwriting existing keys.
func (p Properties) Merge(other Properties) {
	for k, v := range other {
		p[k] = v
	}
}

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	out.Merge(p)
	return out
}

// String returns the string value for key, or "" when missing or not a string.
func (p Properties) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns the boolean value for key, or def when missing or not a bool.
func (p Properties) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

func (p Properties) Context() Context {
	if v := p.String(KeyContext); validContext(v) {
		return Context(v)
	}
	return ContextDefault
}

func (p Properties) Presentation() Presentation {
	if v := p.String(KeyPresentation); validPresentation(v) {
		return Presentation(v)
	}
	return PresentationDefault
}

func (p Properties) ModalStyle() ModalStyle {
	if v := p.String(KeyModalStyle); validModalStyle(v) {
		return ModalStyle(v)
	}
	return ModalStyleLarge
}

func (p Properties) QueryStringPresentation() QueryStringPresentation {
	if v := p.String(KeyQueryStringPresentation); validQueryStringPresentation(v) {
		return QueryStringPresentation(v)
	}
	return QueryStringDefault
}

func (p Properties) PullToRefreshEnabled() bool {
	return p.Bool(KeyPullToRefreshEnabled, true)
}

func (p Properties) ModalDismissGestureEnabled() bool {
	return p.Bool(KeyModalDismissGestureEnabled, true)
}

func (p Properties) Animated() bool {
	return p.Bool(KeyAnimated, true)
}

func (p Properties) HistoricalLocation() bool {
	return p.Bool(KeyHistoricalLocation, false)
}

// ViewController returns the screen identifier used to pick a native screen factory.
func (p Properties) ViewController() string {
	if v := p.String(KeyViewController); v != "" {
		return v
	}
	return DefaultViewController
}

// Decode maps the bag onto an application-defined struct using mapstructure tags.
func (p Properties) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to build properties decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}
	return nil
}
