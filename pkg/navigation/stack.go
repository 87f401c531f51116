package navigation

import (
	"context"
	"reflect"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Phase is a step in a screen's appearance lifecycle.
type Phase string

const (
	PhaseWillAppear    Phase = "will_appear"
	PhaseDidAppear     Phase = "did_appear"
	PhaseWillDisappear Phase = "will_disappear"
	PhaseDidDisappear  Phase = "did_disappear"
)

// AppearanceEvent reports a screen on a stack changing visibility.
type AppearanceEvent struct {
	Stack  domain.StackKind
	Phase  Phase
	Screen ports.Screen
	Reason domain.AppearanceReason
}

// Observer receives appearance events in the order the screens would see them.
type Observer func(ctx context.Context, ev AppearanceEvent)

// Stack is an ordered sequence of screens, root first.
// Only the top screen of a visible stack is on screen; hidden stacks mutate silently.
type Stack struct {
	kind     domain.StackKind
	screens  []ports.Screen
	observer Observer
	visible  bool
}

// NewStack creates an empty, visible stack.
func NewStack(kind domain.StackKind, observer Observer) *Stack {
	return &Stack{
		kind:     kind,
		screens:  make([]ports.Screen, 0),
		observer: observer,
		visible:  true,
	}
}

func (s *Stack) Kind() domain.StackKind { return s.kind }

// Visible reports whether the top screen is on screen.
func (s *Stack) Visible() bool { return s.visible }

func (s *Stack) Len() int { return len(s.screens) }

func (s *Stack) IsEmpty() bool { return len(s.screens) == 0 }

// Screens returns a copy of the stack, root first.
func (s *Stack) Screens() []ports.Screen {
	out := make([]ports.Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

// Top returns the top screen, or nil when empty.
func (s *Stack) Top() ports.Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Previous returns the screen directly below the top, or nil.
func (s *Stack) Previous() ports.Screen {
	if len(s.screens) < 2 {
		return nil
	}
	return s.screens[len(s.screens)-2]
}

// Contains reports whether screen is anywhere on the stack.
func (s *Stack) Contains(screen ports.Screen) bool {
	for _, sc := range s.screens {
		if sameScreen(sc, screen) {
			return true
		}
	}
	return false
}

// Push adds screen on top.
func (s *Stack) Push(ctx context.Context, screen ports.Screen) {
	s.change(ctx, domain.ReasonPushed, domain.ReasonPushed, func() {
		s.screens = append(s.screens, screen)
	})
}

// Pop removes and returns the top screen. The root is never popped.
func (s *Stack) Pop(ctx context.Context) ports.Screen {
	if len(s.screens) < 2 {
		return nil
	}
	top := s.Top()
	s.change(ctx, domain.ReasonPopped, domain.ReasonRevealed, func() {
		s.screens = s.screens[:len(s.screens)-1]
	})
	return top
}

// PopToRoot removes every screen above the root.
func (s *Stack) PopToRoot(ctx context.Context) {
	if len(s.screens) < 2 {
		return
	}
	s.change(ctx, domain.ReasonPopped, domain.ReasonRevealed, func() {
		s.screens = s.screens[:1]
	})
}

// ReplaceTop swaps the top screen for screen, or pushes it onto an empty stack.
func (s *Stack) ReplaceTop(ctx context.Context, screen ports.Screen) {
	if len(s.screens) == 0 {
		s.Push(ctx, screen)
		return
	}
	s.change(ctx, domain.ReasonReplaced, domain.ReasonReplaced, func() {
		s.screens[len(s.screens)-1] = screen
	})
}

// SetScreens replaces the whole stack.
func (s *Stack) SetScreens(ctx context.Context, screens ...ports.Screen) {
	s.change(ctx, domain.ReasonReplaced, domain.ReasonReplaced, func() {
		s.screens = append(make([]ports.Screen, 0, len(screens)), screens...)
	})
}

// InteractivePop plays a back gesture. When commit is false the gesture is
// abandoned and the top screen is reinserted; the popped screen is returned otherwise.
func (s *Stack) InteractivePop(ctx context.Context, commit bool) ports.Screen {
	if len(s.screens) < 2 {
		return nil
	}
	if !s.visible {
		if commit {
			return s.Pop(ctx)
		}
		return nil
	}

	top, below := s.Top(), s.Previous()
	s.emit(ctx, PhaseWillDisappear, top, domain.ReasonPopped)
	s.emit(ctx, PhaseWillAppear, below, domain.ReasonRevealed)

	if commit {
		s.screens = s.screens[:len(s.screens)-1]
		s.emit(ctx, PhaseDidDisappear, top, domain.ReasonPopped)
		s.emit(ctx, PhaseDidAppear, below, domain.ReasonRevealed)
		return top
	}

	s.emit(ctx, PhaseWillDisappear, below, domain.ReasonPopped)
	s.emit(ctx, PhaseDidDisappear, below, domain.ReasonPopped)
	s.emit(ctx, PhaseWillAppear, top, domain.ReasonReinserted)
	s.emit(ctx, PhaseDidAppear, top, domain.ReasonReinserted)
	return nil
}

// change applies mutate and, when the top screen changed on a visible stack,
// reports the outgoing and incoming screens.
func (s *Stack) change(ctx context.Context, out, in domain.AppearanceReason, mutate func()) {
	before := s.Top()
	mutate()
	after := s.Top()
	if !s.visible || sameScreen(before, after) {
		return
	}
	s.emit(ctx, PhaseWillDisappear, before, out)
	s.emit(ctx, PhaseWillAppear, after, in)
	s.emit(ctx, PhaseDidDisappear, before, out)
	s.emit(ctx, PhaseDidAppear, after, in)
}

func (s *Stack) emit(ctx context.Context, phase Phase, screen ports.Screen, reason domain.AppearanceReason) {
	if s.observer == nil || screen == nil {
		return
	}
	s.observer(ctx, AppearanceEvent{Stack: s.kind, Phase: phase, Screen: screen, Reason: reason})
}

// sameScreen compares screen handles without panicking on non-comparable types.
func sameScreen(a, b ports.Screen) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}
