package domain

// Context selects the navigation stack a destination belongs to.
type Context string

const (
	ContextDefault Context = "default"
	ContextModal   Context = "modal"
)

// Presentation is the stack operation family requested for a proposal.
type Presentation string

const (
	PresentationDefault     Presentation = "default"
	PresentationPop         Presentation = "pop"
	PresentationReplace     Presentation = "replace"
	PresentationRefresh     Presentation = "refresh"
	PresentationClearAll    Presentation = "clear_all"
	PresentationReplaceRoot Presentation = "replace_root"
	PresentationNone        Presentation = "none"
)

// ModalStyle describes how the modal stack is presented over the main stack.
type ModalStyle string

const (
	ModalStyleMedium    ModalStyle = "medium"
	ModalStyleLarge     ModalStyle = "large"
	ModalStyleFull      ModalStyle = "full"
	ModalStylePageSheet ModalStyle = "page_sheet"
	ModalStyleFormSheet ModalStyle = "form_sheet"
)

// QueryStringPresentation controls whether the query string takes part in same-location checks.
type QueryStringPresentation string

const (
	// QueryStringDefault compares path and query.
	QueryStringDefault QueryStringPresentation = "default"
	// QueryStringReplace compares the path only, so a new query replaces the current screen.
	QueryStringReplace QueryStringPresentation = "replace"
)

// StackKind identifies one of the two navigation stacks.
type StackKind string

const (
	StackMain  StackKind = "main"
	StackModal StackKind = "modal"
)

func validContext(v string) bool {
	switch Context(v) {
	case ContextDefault, ContextModal:
		return true
	}
	return false
}

func validPresentation(v string) bool {
	switch Presentation(v) {
	case PresentationDefault, PresentationPop, PresentationReplace, PresentationRefresh,
		PresentationClearAll, PresentationReplaceRoot, PresentationNone:
		return true
	}
	return false
}

func validModalStyle(v string) bool {
	switch ModalStyle(v) {
	case ModalStyleMedium, ModalStyleLarge, ModalStyleFull, ModalStylePageSheet, ModalStyleFormSheet:
		return true
	}
	return false
}

func validQueryStringPresentation(v string) bool {
	switch QueryStringPresentation(v) {
	case QueryStringDefault, QueryStringReplace:
		return true
	}
	return false
}

// AppearanceReason tags a screen appearance event with what caused it.
type AppearanceReason string

const (
	ReasonPushed         AppearanceReason = "pushed"
	ReasonPopped         AppearanceReason = "popped"
	ReasonReplaced       AppearanceReason = "replaced"
	ReasonPresented      AppearanceReason = "presented"
	ReasonDismissed      AppearanceReason = "dismissed"
	ReasonReinserted     AppearanceReason = "reinserted"
	ReasonCoveredByModal AppearanceReason = "covered_by_modal"
	ReasonRevealed       AppearanceReason = "revealed"
)
