package lang

import (
	"github.com/pkg/errors"
	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
)

const (
	//RawLang identifies the default static SQL driver
	RawLang = "raw"
	//VeltyLang identifies the velty templated SQL driver
	VeltyLang = "velty"
)

type (
	//Driver produces a parameterized SQL source from a fragment expanded statement subtree
	Driver interface {
		NewSqlSource(node *dom.Node, parameterType string) (mapping.SqlSource, error)
	}

	//Drivers indexes language drivers by lang alias
	Drivers map[string]Driver
)

//New creates a driver registry with built in drivers
func New() Drivers {
	return Drivers{
		RawLang:   &RawDriver{},
		VeltyLang: &VeltyDriver{},
	}
}

//Lookup returns driver registered under given lang alias
func (d Drivers) Lookup(lang string) (Driver, error) {
	result, ok := d[lang]
	if !ok {
		return nil, errors.Errorf("failed to lookup lang driver %v", lang)
	}
	return result, nil
}

//Register registers a driver under given lang alias
func (d *Drivers) Register(lang string, driver Driver) {
	if len(*d) == 0 {
		*d = Drivers{}
	}
	(*d)[lang] = driver
}
