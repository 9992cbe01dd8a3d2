package lang

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/parsly"
	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
)

//RawDriver produces a static SQL source, rewriting #{property} placeholders
//into positional ? markers with ordered parameter mappings.
type RawDriver struct {
}

func (d *RawDriver) NewSqlSource(node *dom.Node, parameterType string) (mapping.SqlSource, error) {
	text := node.Content()
	cursor := parsly.NewCursor("", []byte(text), 0)
	builder := &strings.Builder{}
	var parameters []*mapping.ParameterMapping
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(placeholderMatcher, anyMatcher)
		switch matched.Code {
		case placeholderToken:
			expression := matched.Text(cursor)
			parameter, err := parseParameterExpression(expression[2 : len(expression)-1])
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, parameter)
			builder.WriteByte('?')
		case anyToken:
			builder.WriteByte(matched.Byte(cursor))
		default:
			return nil, cursor.NewError(placeholderMatcher)
		}
	}
	return NewStaticSource(strings.TrimSpace(builder.String()), parameters), nil
}

//parseParameterExpression parses "property, javaType=x, jdbcType=y, mode=z"
func parseParameterExpression(expression string) (*mapping.ParameterMapping, error) {
	parts := strings.Split(expression, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return nil, errors.Errorf("parameter expression property was empty: #{%v}", expression)
	}
	result := &mapping.ParameterMapping{Property: property}
	for _, part := range parts[1:] {
		pair := strings.SplitN(part, "=", 2)
		if len(pair) != 2 {
			return nil, errors.Errorf("invalid parameter expression attribute: '%v' in #{%v}", strings.TrimSpace(part), expression)
		}
		name, value := strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])
		switch name {
		case "javaType":
			result.JavaType = value
		case "jdbcType":
			result.JdbcType = value
		case "mode":
			result.Mode = value
		default:
			return nil, errors.Errorf("unsupported parameter expression attribute: %v", name)
		}
	}
	return result, nil
}
