package registry

import (
	"reflect"
	"time"

	"github.com/viant/gmetric"
	gprovider "github.com/viant/gmetric/provider"
)

//Metrics exposes load operation counters
type Metrics struct {
	*gmetric.Service
}

type metricsLocation struct {
}

func metricLocation() string {
	return reflect.TypeOf(metricsLocation{}).PkgPath()
}

//NewMetrics creates load metrics service
func NewMetrics() *Metrics {
	return &Metrics{Service: gmetric.New()}
}

//LoadCounter pre-registers and returns a per document load counter
func (m *Metrics) LoadCounter(name, title string) *gmetric.Operation {
	if m == nil || m.Service == nil {
		return nil
	}
	counter := m.LookupOperation(name)
	if counter == nil {
		counter = m.MultiOperationCounter(metricLocation(), name, title, time.Millisecond, time.Minute, 2, gprovider.NewBasic())
	}
	return counter
}
