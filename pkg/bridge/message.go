package bridge

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Message names posted by the in-page navigation script.
const (
	MsgPageLoaded                              = "pageLoaded"
	MsgPageLoadFailed                          = "pageLoadFailed"
	MsgPageInvalidated                         = "pageInvalidated"
	MsgErrorRaised                             = "errorRaised"
	MsgLog                                     = "log"
	MsgVisitProposed                           = "visitProposed"
	MsgVisitStarted                            = "visitStarted"
	MsgVisitRequestStarted                     = "visitRequestStarted"
	MsgVisitRequestCompleted                   = "visitRequestCompleted"
	MsgVisitRequestFailed                      = "visitRequestFailed"
	MsgVisitRequestFailedWithNonHTTPStatusCode = "visitRequestFailedWithNonHttpStatusCode"
	MsgVisitRequestFinished                    = "visitRequestFinished"
	MsgVisitRendered                           = "visitRendered"
	MsgVisitCompleted                          = "visitCompleted"
	MsgFormSubmissionStarted                   = "formSubmissionStarted"
	MsgFormSubmissionFinished                  = "formSubmissionFinished"
)

// Message is a raw script message as posted by the page.
type Message struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

type PageLoaded struct {
	RestorationIdentifier string `mapstructure:"restorationIdentifier"`
}

type PageLoadFailed struct{}

type PageInvalidated struct{}

type ErrorRaised struct {
	Error string `mapstructure:"error"`
}

type Log struct {
	Message string `mapstructure:"message"`
}

type VisitProposed struct {
	Location *url.URL            `mapstructure:"location"`
	Options  domain.VisitOptions `mapstructure:"options"`
}

type VisitStarted struct {
	Identifier        string `mapstructure:"identifier"`
	HasCachedSnapshot bool   `mapstructure:"hasCachedSnapshot"`
	IsPageRefresh     bool   `mapstructure:"isPageRefresh"`
}

type VisitRequestStarted struct {
	Identifier string `mapstructure:"identifier"`
}

type VisitRequestCompleted struct {
	Identifier string `mapstructure:"identifier"`
}

type VisitRequestFailed struct {
	Identifier string `mapstructure:"identifier"`
	StatusCode int    `mapstructure:"statusCode"`
}

type VisitRequestFailedWithNonHTTPStatusCode struct {
	Location   *url.URL `mapstructure:"location"`
	Identifier string   `mapstructure:"identifier"`
}

type VisitRequestFinished struct {
	Identifier string `mapstructure:"identifier"`
}

type VisitRendered struct {
	Identifier string `mapstructure:"identifier"`
}

type VisitCompleted struct {
	Identifier            string `mapstructure:"identifier"`
	RestorationIdentifier string `mapstructure:"restorationIdentifier"`
}

type FormSubmissionStarted struct {
	Location *url.URL `mapstructure:"location"`
}

type FormSubmissionFinished struct {
	Location *url.URL `mapstructure:"location"`
}

// Decode converts the message into its typed payload, e.g. VisitStarted.
// Unknown names yield domain.ErrUnknownMessage.
func (m Message) Decode() (any, error) {
	var out any
	switch m.Name {
	case MsgPageLoaded:
		out = &PageLoaded{}
	case MsgPageLoadFailed:
		return PageLoadFailed{}, nil
	case MsgPageInvalidated:
		return PageInvalidated{}, nil
	case MsgErrorRaised:
		out = &ErrorRaised{}
	case MsgLog:
		out = &Log{}
	case MsgVisitProposed:
		out = &VisitProposed{}
	case MsgVisitStarted:
		out = &VisitStarted{}
	case MsgVisitRequestStarted:
		out = &VisitRequestStarted{}
	case MsgVisitRequestCompleted:
		out = &VisitRequestCompleted{}
	case MsgVisitRequestFailed:
		out = &VisitRequestFailed{}
	case MsgVisitRequestFailedWithNonHTTPStatusCode:
		out = &VisitRequestFailedWithNonHTTPStatusCode{}
	case MsgVisitRequestFinished:
		out = &VisitRequestFinished{}
	case MsgVisitRendered:
		out = &VisitRendered{}
	case MsgVisitCompleted:
		out = &VisitCompleted{}
	case MsgFormSubmissionStarted:
		out = &FormSubmissionStarted{}
	case MsgFormSubmissionFinished:
		out = &FormSubmissionFinished{}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMessage, m.Name)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       stringToURLHook,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder for %s: %w", m.Name, err)
	}
	if err := dec.Decode(m.Data); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", m.Name, err)
	}

	// Hand back values so callers can type-switch on the payload type.
	return reflect.ValueOf(out).Elem().Interface(), nil
}

var (
	urlPtrType = reflect.TypeOf(&url.URL{})
	urlType    = reflect.TypeOf(url.URL{})
)

func stringToURLHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || (to != urlPtrType && to != urlType) {
		return data, nil
	}
	raw := reflect.ValueOf(data).String()
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	if to == urlType {
		return *u, nil
	}
	return u, nil
}
