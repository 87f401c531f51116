/*
Package domain contains the core domain models of the wayfinder navigation engine.

It defines the values that flow between the path configuration, the router, the
sessions and the navigation hierarchy. This package is kept pure and free of
external dependencies like I/O or UI, following Hexagonal Architecture principles.

# Key Entities

  - VisitProposal: A resolved navigation request (URL + options + properties) awaiting a stack decision.
  - Properties: The merged property bag a path configuration resolves for a URL.
  - VisitOptions: The visit action (advance, replace, restore) and an optional prefetched response.
  - TurboError: The closed taxonomy of visit failures.
  - LifecycleHooks: Observability callbacks for visits and routing decisions.
*/
package domain
