package logger

import (
	"os"
	"time"
)

//Adapter dispatches load tracing events to optional hooks
type Adapter struct {
	sourceLoaded        SourceLoaded
	pendingRetry        PendingRetry
	statementRegistered StatementRegistered
}

func (a *Adapter) SourceLoaded(url, namespace string, elapsed time.Duration) {
	if a.sourceLoaded == nil {
		return
	}
	a.sourceLoaded(url, namespace, elapsed)
}

func (a *Adapter) PendingRetry(kind, element string, resolved bool) {
	if a.pendingRetry == nil {
		return
	}
	a.pendingRetry(kind, element, resolved)
}

func (a *Adapter) StatementRegistered(id string) {
	if a.statementRegistered == nil {
		return
	}
	a.statementRegistered(id)
}

//NewLogger creates an adapter backed by given logger
func NewLogger(logger Logger) *Adapter {
	if logger == nil {
		return &Adapter{}
	}
	return &Adapter{
		sourceLoaded:        logger.SourceLoaded(),
		pendingRetry:        logger.PendingRetry(),
		statementRegistered: logger.StatementRegistered(),
	}
}

//Default returns a nop adapter unless SQLMAP_DEBUG is set
func Default() *Adapter {
	if os.Getenv("SQLMAP_DEBUG") == "" {
		return NewLogger(nil)
	}
	return NewLogger(&defaultLogger{})
}
