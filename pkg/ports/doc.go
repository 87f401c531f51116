/*
Package ports defines the driven ports (interfaces) for the Wayfinder navigator.

These interfaces decouple the navigation core from the host platform, allowing
the engine to drive any embedded content surface and any native screen toolkit.

# Key Interfaces

  - ContentSurface: the embedded web-content renderer owned by a session.
  - Screen / Visitable: native screen handles hosted by the navigation stacks.
  - Presenter: optional host hook notified of modal presentation and alerts.
  - ConfigCache: persistence for remotely fetched path configuration.
  - ExternalOpener: hands URLs the app does not own to the browser or the OS.
*/
package ports
