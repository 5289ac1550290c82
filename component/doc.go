// Package component manages the lifecycle of long-lived infrastructure.
//
// Components are started in registration order and stopped in reverse, so
// register what others depend on first. The bootstrap package drives a
// Registry from signal handling.
package component
