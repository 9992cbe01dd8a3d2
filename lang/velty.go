package lang

import (
	"github.com/pkg/errors"
	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
	"github.com/viant/velty/parser"
)

//VeltyDriver produces a templated SQL source. The template is parsed up front so a
//malformed control flow fails the load, evaluation itself happens at execution time.
type VeltyDriver struct {
}

func (d *VeltyDriver) NewSqlSource(node *dom.Node, parameterType string) (mapping.SqlSource, error) {
	text := node.Content()
	if _, err := parser.Parse([]byte(text)); err != nil {
		return nil, errors.Wrapf(err, "invalid template")
	}
	return NewTemplateSource(text, nil), nil
}
