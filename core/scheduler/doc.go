// Package scheduler runs periodic jobs on cron schedules, used to trigger
// distributor syncs without an operator in the loop.
package scheduler
