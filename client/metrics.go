package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	clienterrors "github.com/kachalmers/tuiter/client/internal/errors"
)

const (
	opCreateUser            = "create_user"
	opListUsers             = "list_users"
	opGetUser               = "get_user"
	opDeleteUser            = "delete_user"
	opDeleteUsersByUsername = "delete_users_by_username"
	opLogin                 = "login"
	opCreateTuit            = "create_tuit"
	opListTuits             = "list_tuits"
	opGetTuit               = "get_tuit"
	opDeleteTuit            = "delete_tuit"
)

const (
	outcomeOK        = "ok"
	outcomeTransport = "transport_error"
	outcomeRemote    = "remote_error"
	outcomeOther     = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tuiter_client",
			Name:      "requests_total",
			Help:      "Requests issued by the client, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tuiter_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of client operations including body decoding.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(op string, start time.Time, err error) {
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case clienterrors.IsTransport(err):
		return outcomeTransport
	case clienterrors.IsRemote(err):
		return outcomeRemote
	default:
		return outcomeOther
	}
}
