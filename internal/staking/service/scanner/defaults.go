package scanner

import "time"

const (
	defaultBatchSize         uint64 = 100
	defaultFetchWorkers             = 8
	defaultFetchAttempts            = 3
	defaultFetchTimeout             = 30 * time.Second
	defaultFetchRetryDelay          = 500 * time.Millisecond
	defaultInterBatchDelay          = 2 * time.Second
	defaultPollInterval             = 30 * time.Second
	defaultConfirmationDepth uint16 = 6
)
