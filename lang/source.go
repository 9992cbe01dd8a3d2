package lang

import "github.com/viant/sqlmap/mapping"

type (
	//StaticSource represents SQL with placeholders already rewritten to ? markers
	StaticSource struct {
		sql        string
		parameters []*mapping.ParameterMapping
	}

	//TemplateSource represents templated SQL kept verbatim for deferred evaluation
	TemplateSource struct {
		template   string
		parameters []*mapping.ParameterMapping
	}
)

//NewStaticSource creates a static SQL source
func NewStaticSource(sql string, parameters []*mapping.ParameterMapping) *StaticSource {
	return &StaticSource{sql: sql, parameters: parameters}
}

func (s *StaticSource) SQL() string {
	return s.sql
}

func (s *StaticSource) ParameterMappings() []*mapping.ParameterMapping {
	return s.parameters
}

//NewTemplateSource creates a templated SQL source
func NewTemplateSource(template string, parameters []*mapping.ParameterMapping) *TemplateSource {
	return &TemplateSource{template: template, parameters: parameters}
}

func (s *TemplateSource) SQL() string {
	return s.template
}

func (s *TemplateSource) ParameterMappings() []*mapping.ParameterMapping {
	return s.parameters
}
