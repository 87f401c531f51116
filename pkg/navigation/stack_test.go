package navigation_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/navigation"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
)

type eventLog []navigation.AppearanceEvent

func (l *eventLog) observe(_ context.Context, ev navigation.AppearanceEvent) {
	*l = append(*l, ev)
}

func ev(phase navigation.Phase, screen ports.Screen, reason domain.AppearanceReason) navigation.AppearanceEvent {
	return navigation.AppearanceEvent{Stack: domain.StackMain, Phase: phase, Screen: screen, Reason: reason}
}

func TestStack_PushPop(t *testing.T) {
	var log eventLog
	s := navigation.NewStack(domain.StackMain, log.observe)
	ctx := context.Background()
	a, b := &nativeScreen{name: "a"}, &nativeScreen{name: "b"}

	s.Push(ctx, a)
	s.Push(ctx, b)
	log = nil

	popped := s.Pop(ctx)

	assert.Same(t, b, popped)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, eventLog{
		ev(navigation.PhaseWillDisappear, b, domain.ReasonPopped),
		ev(navigation.PhaseWillAppear, a, domain.ReasonRevealed),
		ev(navigation.PhaseDidDisappear, b, domain.ReasonPopped),
		ev(navigation.PhaseDidAppear, a, domain.ReasonRevealed),
	}, log)

	assert.Nil(t, s.Pop(ctx), "the root stays")
	assert.Same(t, a, s.Top())
}

func TestStack_ReplaceTopAndSetScreens(t *testing.T) {
	s := navigation.NewStack(domain.StackMain, nil)
	ctx := context.Background()
	a, b, c := &nativeScreen{name: "a"}, &nativeScreen{name: "b"}, &nativeScreen{name: "c"}

	s.ReplaceTop(ctx, a)
	assert.Equal(t, []ports.Screen{a}, s.Screens())

	s.Push(ctx, b)
	s.ReplaceTop(ctx, c)
	assert.Equal(t, []ports.Screen{a, c}, s.Screens())
	assert.Same(t, a, s.Previous())
	assert.True(t, s.Contains(c))
	assert.False(t, s.Contains(b))

	s.SetScreens(ctx, b)
	assert.Equal(t, []ports.Screen{b}, s.Screens())

	s.Push(ctx, a)
	s.Push(ctx, c)
	s.PopToRoot(ctx)
	assert.Equal(t, []ports.Screen{b}, s.Screens())
}

func TestStack_InteractivePop(t *testing.T) {
	ctx := context.Background()
	a, b := &nativeScreen{name: "a"}, &nativeScreen{name: "b"}

	t.Run("canceled gesture reinserts the top", func(t *testing.T) {
		var log eventLog
		s := navigation.NewStack(domain.StackMain, log.observe)
		s.Push(ctx, a)
		s.Push(ctx, b)
		log = nil

		assert.Nil(t, s.InteractivePop(ctx, false))

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, eventLog{
			ev(navigation.PhaseWillDisappear, b, domain.ReasonPopped),
			ev(navigation.PhaseWillAppear, a, domain.ReasonRevealed),
			ev(navigation.PhaseWillDisappear, a, domain.ReasonPopped),
			ev(navigation.PhaseDidDisappear, a, domain.ReasonPopped),
			ev(navigation.PhaseWillAppear, b, domain.ReasonReinserted),
			ev(navigation.PhaseDidAppear, b, domain.ReasonReinserted),
		}, log)
	})

	t.Run("committed gesture pops", func(t *testing.T) {
		var log eventLog
		s := navigation.NewStack(domain.StackMain, log.observe)
		s.Push(ctx, a)
		s.Push(ctx, b)
		log = nil

		assert.Same(t, b, s.InteractivePop(ctx, true))

		assert.Equal(t, 1, s.Len())
		assert.Len(t, log, 4)
	})
}

func TestStack_SameScreenReplacementIsSilent(t *testing.T) {
	var log eventLog
	s := navigation.NewStack(domain.StackMain, log.observe)
	ctx := context.Background()
	a := &nativeScreen{name: "a"}

	s.Push(ctx, a)
	log = nil
	s.ReplaceTop(ctx, a)

	assert.Empty(t, log)
}
