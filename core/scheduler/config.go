package scheduler

// Config holds configuration for the periodic sync scheduler.
type Config struct {
	// Enabled toggles the scheduler.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Cron is the cron expression for the sync job.
	Cron string `mapstructure:"cron" default:"0 */6 * * *"`
}
