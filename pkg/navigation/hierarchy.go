package navigation

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Delegate starts visits for screens the controller places on a stack.
type Delegate interface {
	// Visit begins a visit of visitable on the session that serves stack.
	Visit(ctx context.Context, visitable ports.Visitable, stack domain.StackKind, options domain.VisitOptions)

	// RefreshVisitable asks the session serving stack to refresh its new topmost visitable.
	RefreshVisitable(ctx context.Context, stack domain.StackKind, visitable ports.Visitable)
}

// Controller turns proposals into operations on a main and a modal stack.
type Controller struct {
	main  *Stack
	modal *Stack

	presented  bool
	dismissing bool
	modalStyle domain.ModalStyle

	delegate  Delegate
	presenter ports.Presenter
	observer  Observer
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver receives appearance events from both stacks.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithPresenter notifies the host of modal presentation and alerts.
func WithPresenter(presenter ports.Presenter) Option {
	return func(c *Controller) {
		c.presenter = presenter
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller with an empty main stack and no modal.
func NewController(delegate Delegate, opts ...Option) *Controller {
	c := &Controller{
		delegate: delegate,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.main = NewStack(domain.StackMain, c.observer)
	c.modal = NewStack(domain.StackModal, c.observer)
	c.modal.visible = false
	return c
}

func (c *Controller) Main() *Stack  { return c.main }
func (c *Controller) Modal() *Stack { return c.modal }

// ModalPresented reports whether the modal stack is shown over the main stack.
func (c *Controller) ModalPresented() bool { return c.presented }

// ModalStyle is the style of the current or last modal presentation.
func (c *Controller) ModalStyle() domain.ModalStyle { return c.modalStyle }

// ActiveStack returns the frontmost stack.
func (c *Controller) ActiveStack() domain.StackKind {
	if c.presented {
		return domain.StackModal
	}
	return domain.StackMain
}

// Stack returns the stack of the given kind.
func (c *Controller) Stack(kind domain.StackKind) *Stack {
	if kind == domain.StackModal {
		return c.modal
	}
	return c.main
}

// Route applies proposal with screen as the destination.
func (c *Controller) Route(ctx context.Context, screen ports.Screen, proposal domain.VisitProposal) {
	if alert, ok := screen.(ports.Alert); ok {
		c.PresentAlert(alert, proposal.Animated())
		return
	}
	if visitable, ok := screen.(ports.Visitable); ok {
		visitable.SetPullToRefreshEnabled(proposal.PullToRefreshEnabled())
	}

	c.dismissModalIfNeeded(ctx, proposal)

	c.logger.Debug("route", "location", proposal.URL(), "context", proposal.Context(), "presentation", proposal.Presentation(), "modal", c.presented)

	switch proposal.Presentation() {
	case domain.PresentationDefault:
		c.navigate(ctx, screen, proposal)
	case domain.PresentationPop:
		c.Pop(ctx, proposal.Animated())
	case domain.PresentationReplace:
		c.replace(ctx, screen, proposal)
	case domain.PresentationRefresh:
		c.refresh(ctx, proposal)
	case domain.PresentationClearAll:
		c.ClearAll(ctx, proposal.Animated())
	case domain.PresentationReplaceRoot:
		c.replaceRoot(ctx, screen, proposal)
	case domain.PresentationNone:
	}
}

// Pop removes the frontmost screen, dismissing the modal when it holds only one.
func (c *Controller) Pop(ctx context.Context, animated bool) {
	if c.inModalContext() {
		if c.modal.Len() == 1 {
			c.Dismiss(ctx, animated)
		} else {
			c.modal.Pop(ctx)
		}
		return
	}
	c.main.Pop(ctx)
}

// ClearAll dismisses the modal and pops the main stack to its root.
func (c *Controller) ClearAll(ctx context.Context, animated bool) {
	c.Dismiss(ctx, animated)
	c.main.PopToRoot(ctx)
	c.refreshIfTopIsVisitable(ctx, domain.StackMain)
}

// Dismiss hides the modal stack and empties it.
func (c *Controller) Dismiss(ctx context.Context, animated bool) {
	if !c.presented {
		return
	}

	c.dismissing = true
	covering := c.coversMain()
	modalTop, mainTop := c.modal.Top(), c.main.Top()

	c.modal.emit(ctx, PhaseWillDisappear, modalTop, domain.ReasonDismissed)
	if covering {
		c.main.emit(ctx, PhaseWillAppear, mainTop, domain.ReasonRevealed)
	}
	c.modal.visible = false
	c.modal.screens = c.modal.screens[:0]
	c.modal.emit(ctx, PhaseDidDisappear, modalTop, domain.ReasonDismissed)
	c.main.visible = true
	if covering {
		c.main.emit(ctx, PhaseDidAppear, mainTop, domain.ReasonRevealed)
	}
	c.presented = false
	c.dismissing = false

	if c.presenter != nil {
		c.presenter.DismissModal(animated)
	}
}

// present shows the modal stack holding only screen.
func (c *Controller) present(ctx context.Context, screen ports.Screen, style domain.ModalStyle, animated bool) {
	c.modal.screens = append(c.modal.screens[:0], screen)
	c.modalStyle = style
	c.presented = true
	covering := c.coversMain()
	mainTop := c.main.Top()

	if covering {
		c.main.emit(ctx, PhaseWillDisappear, mainTop, domain.ReasonCoveredByModal)
	}
	c.modal.visible = true
	c.modal.emit(ctx, PhaseWillAppear, screen, domain.ReasonPresented)
	if covering {
		c.main.visible = false
		c.main.emit(ctx, PhaseDidDisappear, mainTop, domain.ReasonCoveredByModal)
	}
	c.modal.emit(ctx, PhaseDidAppear, screen, domain.ReasonPresented)

	if c.presenter != nil {
		c.presenter.PresentModal(style, animated)
	}
}

// coversMain reports whether the modal hides the main stack entirely.
// Sheet styles leave the screen underneath on display.
func (c *Controller) coversMain() bool {
	return c.modalStyle == domain.ModalStyleFull
}

func (c *Controller) inModalContext() bool {
	return c.presented && !c.dismissing
}

// PresentAlert shows alert over the frontmost stack.
func (c *Controller) PresentAlert(alert ports.Alert, animated bool) {
	on := c.ActiveStack()
	if c.presenter == nil {
		c.logger.Warn("alert dropped, no presenter configured", "stack", on, "message", alert.Dialog().Message)
		return
	}
	c.presenter.PresentAlert(on, alert, animated)
}

func (c *Controller) navigate(ctx context.Context, screen ports.Screen, proposal domain.VisitProposal) {
	switch proposal.Context() {
	case domain.ContextModal:
		c.visit(ctx, screen, domain.StackModal, proposal.Options())
		configureModal(screen, proposal)
		if c.inModalContext() {
			c.pushOrReplace(ctx, c.modal, screen, proposal, false)
		} else {
			c.present(ctx, screen, proposal.ModalStyle(), proposal.Animated())
		}
	default:
		c.visit(ctx, screen, domain.StackMain, proposal.Options())
		willReplaceModalContext := c.inModalContext()
		c.Dismiss(ctx, proposal.Animated())
		c.pushOrReplace(ctx, c.main, screen, proposal, willReplaceModalContext)
	}
}

func (c *Controller) pushOrReplace(ctx context.Context, stack *Stack, screen ports.Screen, proposal domain.VisitProposal, didReplaceModalContext bool) {
	switch {
	case visitingSamePage(stack, screen, proposal):
		stack.ReplaceTop(ctx, screen)
	case visitingPreviousPage(stack, screen, proposal):
		stack.Pop(ctx)
	case proposal.Options().Action == domain.ActionAdvance || didReplaceModalContext:
		stack.Push(ctx, screen)
	default:
		stack.ReplaceTop(ctx, screen)
	}
}

func (c *Controller) replace(ctx context.Context, screen ports.Screen, proposal domain.VisitProposal) {
	switch proposal.Context() {
	case domain.ContextModal:
		c.visit(ctx, screen, domain.StackModal, proposal.Options())
		configureModal(screen, proposal)
		if c.presented {
			c.modal.ReplaceTop(ctx, screen)
			return
		}
		c.present(ctx, screen, proposal.ModalStyle(), proposal.Animated())
		// The screen under the new modal is the one being replaced.
		c.main.Pop(ctx)
	default:
		c.visit(ctx, screen, domain.StackMain, proposal.Options())
		c.Dismiss(ctx, proposal.Animated())
		c.main.ReplaceTop(ctx, screen)
	}
}

func (c *Controller) refresh(ctx context.Context, proposal domain.VisitProposal) {
	if proposal.IsHistoricalLocation() {
		c.refreshIfTopIsVisitable(ctx, domain.StackMain)
		return
	}

	if c.presented {
		if c.modal.Len() == 1 {
			c.Dismiss(ctx, proposal.Animated())
			c.refreshIfTopIsVisitable(ctx, domain.StackMain)
		} else {
			c.modal.Pop(ctx)
			c.refreshIfTopIsVisitable(ctx, domain.StackModal)
		}
		return
	}

	c.main.Pop(ctx)
	c.refreshIfTopIsVisitable(ctx, domain.StackMain)
}

func (c *Controller) replaceRoot(ctx context.Context, screen ports.Screen, proposal domain.VisitProposal) {
	c.visit(ctx, screen, domain.StackMain, domain.VisitOptions{Action: domain.ActionReplace})
	c.Dismiss(ctx, proposal.Animated())
	c.main.SetScreens(ctx, screen)
}

func (c *Controller) refreshIfTopIsVisitable(ctx context.Context, kind domain.StackKind) {
	if visitable, ok := c.Stack(kind).Top().(ports.Visitable); ok {
		c.delegate.RefreshVisitable(ctx, kind, visitable)
	}
}

// Historical locations exist to hand control back to the main stack.
func (c *Controller) dismissModalIfNeeded(ctx context.Context, proposal domain.VisitProposal) {
	if proposal.IsHistoricalLocation() && c.presented {
		c.Dismiss(ctx, proposal.Animated())
	}
}

func (c *Controller) visit(ctx context.Context, screen ports.Screen, kind domain.StackKind, options domain.VisitOptions) {
	if visitable, ok := screen.(ports.Visitable); ok {
		c.delegate.Visit(ctx, visitable, kind, options)
	}
}

func configureModal(screen ports.Screen, proposal domain.VisitProposal) {
	if m, ok := screen.(ports.ModalConfigurable); ok {
		m.ConfigureModal(proposal.ModalStyle(), proposal.ModalDismissGestureEnabled())
	}
}

func visitingSamePage(stack *Stack, screen ports.Screen, proposal domain.VisitProposal) bool {
	top := stack.Top()
	if top == nil {
		return false
	}
	return sameDestination(top, screen, proposal)
}

func visitingPreviousPage(stack *Stack, screen ports.Screen, proposal domain.VisitProposal) bool {
	previous := stack.Previous()
	if previous == nil {
		return false
	}
	return sameDestination(previous, screen, proposal)
}

// sameDestination compares visitables by location and native screens by type.
func sameDestination(existing, screen ports.Screen, proposal domain.VisitProposal) bool {
	if visitable, ok := existing.(ports.Visitable); ok {
		return domain.SameLocation(visitable.VisitableURL(), proposal.URL(), proposal.QueryStringPresentation())
	}
	return reflect.TypeOf(existing) == reflect.TypeOf(screen)
}
