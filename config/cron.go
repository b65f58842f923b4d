package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds statically configured jobs. Jobs that need the service stack
// register themselves through cron.Register instead (see cron/jobs).
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
