package domain

import "net/url"

// DialogKind distinguishes page-originated dialogs.
type DialogKind string

const (
	DialogAlert   DialogKind = "alert"
	DialogConfirm DialogKind = "confirm"
)

// Dialog is an alert or confirm request raised by page content.
// Respond is called exactly once with the user's choice; alerts always get true.
type Dialog struct {
	Kind    DialogKind
	Message string
	Respond func(confirmed bool)
}

// Configuration identifies the application the navigator serves.
type Configuration struct {
	Name          string
	StartLocation *url.URL
}
