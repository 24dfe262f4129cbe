// Package bootstrap runs the lifecycle of a gorest process: it validates
// configuration, initialises logging, starts the telemetry and REST
// components, runs a task and shuts everything down in reverse order.
package bootstrap
