/*
Package session drives visits on a single content surface.

A Session owns one ports.ContentSurface and moves Visitable screens on and off
it. Each navigation creates a Visit that walks initialized → started and ends
completed, failed or canceled. The first visit on a surface is a cold boot (a
full page load); once the page reports its navigation script is ready, later
visits run in-page through the script bridge.

Sessions are not safe for concurrent use. Hosts drive a session from one
goroutine: visits, bridge messages, surface events and screen appearance
callbacks all arrive on that goroutine.
*/
package session
