package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/litescript/ls-orrery/internal/engine"
)

var (
	simDateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_simulated_date_seconds",
		Help: "Simulated date as a Unix timestamp.",
	})
	speedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_speed_days_per_sec",
		Help: "Signed days-per-second multiplier of the active speed mode.",
	})
	pausedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_paused",
		Help: "1 while the simulation clock is paused.",
	})
	framesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_frames_total",
		Help: "Frames advanced since start.",
	})
	cameraPhaseGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_camera_phase",
		Help: "Camera focus phase as its numeric state value.",
	})
	effectsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_active_effects",
		Help: "Live detonation effects past their stage delay.",
	})
	impactProgressGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_impact_progress",
		Help: "Raw asteroid flight progress in [0,1]; 0 when no flight is armed.",
	})
	bodyDistanceGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orrery_body_heliocentric_distance_au",
			Help: "Current heliocentric distance of each body (in AU).",
		},
		[]string{"body"},
	)
)

func init() {
	prometheus.MustRegister(
		simDateGauge, speedGauge, pausedGauge, framesGauge,
		cameraPhaseGauge, effectsGauge, impactProgressGauge,
		bodyDistanceGauge,
	)
}

// publish pushes one engine snapshot into the registered gauges.
func publish(snap engine.Snapshot) {
	simDateGauge.Set(float64(snap.Sim.Date.Unix()))
	speedGauge.Set(snap.Sim.AccelerationScale)
	if snap.Sim.Paused {
		pausedGauge.Set(1)
	} else {
		pausedGauge.Set(0)
	}
	framesGauge.Set(float64(snap.Frames))
	cameraPhaseGauge.Set(float64(snap.CameraPhase))
	effectsGauge.Set(float64(snap.Impact.ActiveEffects))
	if snap.Impact.Active {
		impactProgressGauge.Set(snap.Impact.Progress)
	} else {
		impactProgressGauge.Set(0)
	}
	for _, b := range snap.Bodies {
		bodyDistanceGauge.WithLabelValues(b.Name).Set(b.Position.Norm())
	}
}
