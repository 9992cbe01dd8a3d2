package logger

import (
	"fmt"
	"time"
)

type defaultLogger struct {
}

func (d *defaultLogger) SourceLoaded() SourceLoaded {
	return func(url, namespace string, elapsed time.Duration) {
		fmt.Printf("[LOGGER] loaded %v namespace: %v, took %v \n", url, namespace, elapsed)
	}
}

func (d *defaultLogger) PendingRetry() PendingRetry {
	return func(kind, element string, resolved bool) {
		fmt.Printf("[LOGGER] pending %v %v, resolved: %v \n", kind, element, resolved)
	}
}

func (d *defaultLogger) StatementRegistered() StatementRegistered {
	return func(id string) {
		fmt.Printf("[LOGGER] registered statement %v \n", id)
	}
}
