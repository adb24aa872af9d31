package repositories

import (
	"time"

	"itemcatalog/internal/utils"
)

// observeQuery records query duration and error metrics for a repository
// call. Call the returned func with the query error when done.
func observeQuery(queryType, repository string) func(error) {
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		}
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(time.Since(start).Seconds())
	}
}
