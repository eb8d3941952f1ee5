// Package timeouts defines shared timeout constants used across skillbar
// processes so the durations stay discoverable in one place.
package timeouts

import "time"

// HealthProbe caps how long the -healthcheck probe waits for SERVING.
const HealthProbe = 3 * time.Second

// HealthDial caps the wait time when dialing the local health endpoint.
const HealthDial = 2 * time.Second

// Shutdown limits how long a process waits for in-flight work and telemetry
// flushes during graceful shutdown.
const Shutdown = 5 * time.Second

// ChatEvent bounds the work done for one delivered chat event, including
// icon composition and every host call it makes.
const ChatEvent = 30 * time.Second
