package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
)

func TestRawDriver_NewSqlSource(t *testing.T) {
	var useCases = []struct {
		description  string
		input        string
		expectError  bool
		expectSQL    string
		expectParams []*mapping.ParameterMapping
	}{
		{
			description: "no placeholders",
			input:       `<select>SELECT COUNT(1) FROM users</select>`,
			expectSQL:   "SELECT COUNT(1) FROM users",
		},
		{
			description: "positional placeholder rewrite",
			input:       `<select>SELECT id, name FROM users WHERE id = #{id}</select>`,
			expectSQL:   "SELECT id, name FROM users WHERE id = ?",
			expectParams: []*mapping.ParameterMapping{
				{Property: "id"},
			},
		},
		{
			description: "placeholder order follows occurrence",
			input:       `<insert>INSERT INTO users(name, email) VALUES (#{name}, #{email})</insert>`,
			expectSQL:   "INSERT INTO users(name, email) VALUES (?, ?)",
			expectParams: []*mapping.ParameterMapping{
				{Property: "name"},
				{Property: "email"},
			},
		},
		{
			description: "placeholder attributes",
			input:       `<select>SELECT * FROM users WHERE id = #{id, javaType=int, jdbcType=NUMERIC, mode=IN}</select>`,
			expectSQL:   "SELECT * FROM users WHERE id = ?",
			expectParams: []*mapping.ParameterMapping{
				{Property: "id", JavaType: "int", JdbcType: "NUMERIC", Mode: "IN"},
			},
		},
		{
			description: "empty placeholder property",
			input:       `<select>SELECT * FROM users WHERE id = #{ }</select>`,
			expectError: true,
		},
		{
			description: "unsupported placeholder attribute",
			input:       `<select>SELECT * FROM users WHERE id = #{id, typeHandler=X}</select>`,
			expectError: true,
		},
	}

	driver := &RawDriver{}
	for _, useCase := range useCases {
		node, err := dom.Parse([]byte(useCase.input))
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		source, err := driver.NewSqlSource(node, "")
		if useCase.expectError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.Equal(t, useCase.expectSQL, source.SQL(), useCase.description)
		assert.EqualValues(t, useCase.expectParams, source.ParameterMappings(), useCase.description)
	}
}

func TestVeltyDriver_NewSqlSource(t *testing.T) {
	driver := &VeltyDriver{}
	node, err := dom.Parse([]byte(`<select>SELECT * FROM users #if($id) WHERE id = $id #end</select>`))
	if !assert.Nil(t, err) {
		return
	}
	source, err := driver.NewSqlSource(node, "")
	if !assert.Nil(t, err) {
		return
	}
	assert.Contains(t, source.SQL(), "#if($id)")

	malformed, err := dom.Parse([]byte(`<select>SELECT * FROM users #if($id WHERE id = $id #end</select>`))
	if !assert.Nil(t, err) {
		return
	}
	_, err = driver.NewSqlSource(malformed, "")
	assert.NotNil(t, err)
}

func TestDrivers_Lookup(t *testing.T) {
	drivers := New()
	for _, lang := range []string{RawLang, VeltyLang} {
		driver, err := drivers.Lookup(lang)
		assert.Nil(t, err, lang)
		assert.NotNil(t, driver, lang)
	}
	_, err := drivers.Lookup("groovy")
	assert.NotNil(t, err)
}
