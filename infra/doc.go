// Package infra contains technical adapters: the MQTT activation publisher,
// metrics exporters, Sentry reporting, logging backends and chart rendering.
// These packages should depend only on the interfaces defined in the core
// packages.
package infra
