// Package metrics содержит счётчики Prometheus демо-приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result.
const (
	ResultOK      = "ok"
	ResultNoMatch = "no_match"
	ResultError   = "error"
)

var (
	// AuthAttempts число попыток входа и регистрации.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gesture_speak_auth_attempts_total",
			Help: "Total number of login and registration attempts",
		},
		[]string{"operation", "result"},
	)

	// Upgrades число попыток перехода на премиум.
	Upgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gesture_speak_upgrades_total",
			Help: "Total number of premium upgrade attempts",
		},
		[]string{"plan", "result"},
	)

	// PhrasesEmitted число смоделированных распознанных фраз.
	PhrasesEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gesture_speak_phrases_emitted_total",
			Help: "Total number of recognized phrases emitted by the simulator",
		},
		[]string{"spoken"},
	)

	// CaptureActive 1, пока удерживается поток камеры.
	CaptureActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gesture_speak_capture_active",
			Help: "Whether a camera stream is currently held",
		},
	)
)
