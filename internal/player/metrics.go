package player

import "github.com/prometheus/client_golang/prometheus"

// RegisterMetrics exposes the number of sessions in the game.
func (m *SessionManager) RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "mudengine_sessions",
			Help: "Number of sessions currently in the game",
		},
		func() float64 { return float64(m.Count()) },
	))
}
