package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UsersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total users registered",
		},
	)
	ExercisesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercises_logged_total",
			Help: "Total exercise records created",
		},
	)
	LogQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "log_queries_total",
			Help: "Total exercise log queries answered",
		},
	)
)

// handler for the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(UsersCreated)
	prometheus.MustRegister(ExercisesLogged)
	prometheus.MustRegister(LogQueries)
}
