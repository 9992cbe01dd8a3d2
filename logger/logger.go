package logger

import "time"

type (
	//SourceLoaded notifies a mapper document finished direct parsing
	SourceLoaded func(url string, namespace string, elapsed time.Duration)

	//PendingRetry notifies a deferred resolution retry outcome
	PendingRetry func(kind, element string, resolved bool)

	//StatementRegistered notifies a statement registration
	StatementRegistered func(id string)

	//Logger provides load tracing hooks
	Logger interface {
		SourceLoaded() SourceLoaded
		PendingRetry() PendingRetry
		StatementRegistered() StatementRegistered
	}
)
