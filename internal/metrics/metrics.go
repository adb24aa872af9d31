package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User activity
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of users created on first login.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"

	// Catalog activity
	CategoryCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_category_created_total",
		Help: "Total number of categories created.",
	})
	ItemCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_item_created_total",
		Help: "Total number of items created.",
	})
)
