/*
Package wayfinder is a navigation and visit orchestration engine for hybrid apps that
show server-rendered pages inside native navigation stacks.

It decides, for every location the app is asked to show, whether the location stays in
the app, which screen shows it, and which stack operation places that screen: push,
replace, pop, refresh, clear or present as a modal. Each stack is served by a Session
that drives one content surface through visits to the pages its screens display.

# Concept

The Navigator ties four pieces together:

  - A path configuration (pkg/pathconfig) resolves a property bag for each location from
    an ordered table of regex rules.
  - A router (pkg/routing) keeps same-host locations in the app and hands the rest to an
    external opener.
  - A hierarchy controller (pkg/navigation) turns a proposal's context and presentation
    into operations on a main and a modal stack.
  - Two sessions (pkg/session) run cold boot and in-page visits on their content
    surfaces and react to the screens appearing and disappearing.

The host supplies the content surfaces, relays page script messages to the sessions, and
draws whatever the stacks hold. The engine itself renders nothing.

# Usage

	nav, err := wayfinder.New(domain.Configuration{
		Name:          "demo",
		StartLocation: start,
	},
		wayfinder.WithSurfaceFactory(newSurface),
		wayfinder.WithPathConfiguration(cfg),
		wayfinder.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := nav.Start(ctx); err != nil {
		log.Fatal(err)
	}

	// Relay page messages to the session that owns the surface.
	nav.Session().HandleMessage(ctx, msg)

A Navigator is not safe for concurrent use. Drive it from the goroutine that owns the
host's UI.
*/
package wayfinder
