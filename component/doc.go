// Package component manages the lifecycle of the long-lived parts of a
// gorest application: start in registration order, stop in reverse,
// report health.
package component
