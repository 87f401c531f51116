// Package navigation holds the two screen stacks of the app and decides how a
// visit proposal changes them.
//
// The Controller implements the presentation table: a proposal's context picks
// the main or modal stack, its presentation picks push, pop, replace, refresh,
// clear-all, replace-root or nothing. Stacks report will/did appear and
// disappear events to an Observer so sessions can attach their content surface
// to the screen that is actually on display.
package navigation
