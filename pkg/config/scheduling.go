package config

import "time"

type LockBackend string

const (
	LockRedis  LockBackend = "redis"
	LockMemory LockBackend = "memory"
)

type SchedulingConfig struct {
	LockBackend LockBackend
	LockTTL     time.Duration
	// LockWait is how long a request waits for a busy key before failing.
	LockWait time.Duration
	// ReconcileSpec is a robfig/cron spec; empty disables the reconciler.
	ReconcileSpec string
	EventChannel  string
}

func loadSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		LockBackend:   LockBackend(getEnv("SCHEDULING_LOCK_BACKEND", string(LockRedis))),
		LockTTL:       getEnvDuration("SCHEDULING_LOCK_TTL", 10*time.Second),
		LockWait:      getEnvDuration("SCHEDULING_LOCK_WAIT", 3*time.Second),
		ReconcileSpec: getEnv("ONBOARDING_RECONCILE_SPEC", "@every 15m"),
		EventChannel:  getEnv("INTERVIEW_EVENT_CHANNEL", "interview.session"),
	}
}
