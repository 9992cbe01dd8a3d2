package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	rdata "github.com/viant/toolbox/data"
)

func TestParse(t *testing.T) {
	var useCases = []struct {
		description string
		input       string
		expectError bool
		verify      func(t *testing.T, root *Node)
	}{
		{
			description: "attributes and nested elements",
			input: `<mapper namespace="app.UserMapper">
  <select id="findById" resultType="User">SELECT 1</select>
</mapper>`,
			verify: func(t *testing.T, root *Node) {
				assert.Equal(t, "mapper", root.Name)
				assert.Equal(t, "app.UserMapper", root.Attribute("namespace"))
				selected := root.Element("select")
				if !assert.NotNil(t, selected) {
					return
				}
				assert.Equal(t, "findById", selected.Attribute("id"))
				assert.Equal(t, "SELECT 1", selected.Content())
			},
		},
		{
			description: "mixed content keeps document order",
			input:       `<select>SELECT <include refid="columns"/> FROM users</select>`,
			verify: func(t *testing.T, root *Node) {
				assert.Equal(t, 3, len(root.Children))
				assert.True(t, root.Children[0].IsText())
				assert.Equal(t, "include", root.Children[1].Name)
				assert.True(t, root.Children[2].IsText())
				assert.Equal(t, "SELECT FROM users", root.Content())
			},
		},
		{
			description: "whitespace only text is discarded",
			input: `<mapper>
  <cache/>
  <select id="s1">SELECT 1</select>
</mapper>`,
			verify: func(t *testing.T, root *Node) {
				assert.Equal(t, 2, len(root.Elements()))
				assert.Equal(t, 2, len(root.Children))
			},
		},
		{
			description: "multiple roots",
			input:       `<mapper/><mapper/>`,
			expectError: true,
		},
		{
			description: "unclosed element",
			input:       `<mapper><select>`,
			expectError: true,
		},
		{
			description: "empty document",
			input:       ``,
			expectError: true,
		},
	}

	for _, useCase := range useCases {
		root, err := Parse([]byte(useCase.input))
		if useCase.expectError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		if useCase.verify != nil {
			useCase.verify(t, root)
		}
	}
}

func TestNode_Content(t *testing.T) {
	root, err := Parse([]byte(`<sql>id, name, <include refid="audit"/></sql>`))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "id, name,", root.Content())
	include := root.Element("include")
	if !assert.NotNil(t, include) {
		return
	}
	include.Children = append(include.Children, &Node{Text: "created, updated"})
	assert.Equal(t, "id, name, created, updated", root.Content())
}

func TestNode_Expand(t *testing.T) {
	root, err := Parse([]byte(`<select id="list">SELECT id FROM ${schema}.${table}</select>`))
	if !assert.Nil(t, err) {
		return
	}
	properties := rdata.Map{}
	properties.Put("schema", "main")
	properties.Put("table", "users")
	root.Expand(&properties)
	assert.Equal(t, "SELECT id FROM main.users", root.Content())
}

func TestNode_Remove(t *testing.T) {
	root, err := Parse([]byte(`<insert><selectKey keyProperty="id">SELECT 1</selectKey>INSERT INTO users</insert>`))
	if !assert.Nil(t, err) {
		return
	}
	selectKey := root.Element("selectKey")
	if !assert.NotNil(t, selectKey) {
		return
	}
	root.Remove(selectKey)
	assert.Nil(t, root.Element("selectKey"))
	assert.Equal(t, "INSERT INTO users", root.Content())
}

func TestNode_Identifier(t *testing.T) {
	first, err := Parse([]byte(`<association property="owner" javaType="User"><id property="id" column="OWNER_ID"/></association>`))
	if !assert.Nil(t, err) {
		return
	}
	second, err := Parse([]byte(`<association property="owner" javaType="User"><id property="id" column="OWNER_ID"/></association>`))
	if !assert.Nil(t, err) {
		return
	}
	other, err := Parse([]byte(`<association property="owner" javaType="User"><id property="id" column="USER_ID"/></association>`))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, first.Identifier(), second.Identifier())
	assert.NotEqual(t, first.Identifier(), other.Identifier())
}
