package domain

// VisitAction tells the page how a visit affects its history.
type VisitAction string

const (
	// ActionAdvance pushes a new history entry.
	ActionAdvance VisitAction = "advance"
	// ActionReplace replaces the current history entry.
	ActionReplace VisitAction = "replace"
	// ActionRestore revisits an existing entry, preferring a cached snapshot.
	ActionRestore VisitAction = "restore"
)

// VisitState is the lifecycle state of a single visit.
type VisitState string

const (
	VisitInitialized VisitState = "initialized"
	VisitStarted     VisitState = "started"
	VisitCanceled    VisitState = "canceled"
	VisitFailed      VisitState = "failed"
	VisitCompleted   VisitState = "completed"
)

// Terminal reports whether no further transitions are allowed.
func (s VisitState) Terminal() bool {
	return s == VisitCanceled || s == VisitFailed || s == VisitCompleted
}

// VisitResponse is the response the content surface reports for a visit request.
type VisitResponse struct {
	StatusCode   int    `json:"statusCode" mapstructure:"statusCode"`
	Redirected   bool   `json:"redirected" mapstructure:"redirected"`
	ResponseHTML string `json:"responseHTML,omitempty" mapstructure:"responseHTML"`
}

// IsSuccessful reports a 2xx status.
func (r VisitResponse) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// HasHTML reports whether the response carries markup the page can render directly.
func (r *VisitResponse) HasHTML() bool {
	return r != nil && r.ResponseHTML != ""
}

// VisitOptions configure a single visit.
type VisitOptions struct {
	Action   VisitAction    `json:"action" mapstructure:"action"`
	Response *VisitResponse `json:"response,omitempty" mapstructure:"response"`
}

// DefaultVisitOptions returns options for an advance visit without a response.
func DefaultVisitOptions() VisitOptions {
	return VisitOptions{Action: ActionAdvance}
}

// Normalized fills in the default action when none was given.
func (o VisitOptions) Normalized() VisitOptions {
	if o.Action == "" {
		o.Action = ActionAdvance
	}
	return o
}
