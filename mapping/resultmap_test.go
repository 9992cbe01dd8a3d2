package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultMap_Inherit(t *testing.T) {
	var useCases = []struct {
		description      string
		parent           *ResultMap
		child            *ResultMap
		expectProperties []string
		expectColumns    map[string]string
		expectIds        []string
	}{
		{
			description: "parent rules come first",
			parent: &ResultMap{Id: "app.Base.entityMap", Type: "Entity", Mappings: []*ResultMapping{
				{Property: "id", Column: "ID", Flags: []MappingFlag{FlagID}},
				{Property: "created", Column: "CREATED_AT"},
			}},
			child: &ResultMap{Id: "app.Account.accountMap", Type: "Account", Mappings: []*ResultMapping{
				{Property: "name", Column: "ACCOUNT_NAME"},
			}},
			expectProperties: []string{"id", "created", "name"},
			expectIds:        []string{"id"},
		},
		{
			description: "child rule overrides the parent rule for the same property",
			parent: &ResultMap{Id: "app.Base.entityMap", Type: "Entity", Mappings: []*ResultMapping{
				{Property: "id", Column: "ID", Flags: []MappingFlag{FlagID}},
				{Property: "created", Column: "LEGACY_CREATED"},
			}},
			child: &ResultMap{Id: "app.Account.accountMap", Type: "Account", Mappings: []*ResultMapping{
				{Property: "created", Column: "CREATED_AT"},
			}},
			expectProperties: []string{"id", "created"},
			expectColumns:    map[string]string{"created": "CREATED_AT"},
			expectIds:        []string{"id"},
		},
		{
			description: "child constructor discards parent constructor rules",
			parent: &ResultMap{Id: "app.Base.entityMap", Type: "Entity", Mappings: []*ResultMapping{
				{Property: "id", Column: "ID", Flags: []MappingFlag{FlagConstructor, FlagID}},
				{Property: "created", Column: "CREATED_AT"},
			}},
			child: func() *ResultMap {
				result := &ResultMap{Id: "app.Account.accountMap", Type: "Account"}
				result.AddMapping(&ResultMapping{Property: "name", Column: "ACCOUNT_NAME", Flags: []MappingFlag{FlagConstructor}})
				return result
			}(),
			expectProperties: []string{"created", "name"},
			expectIds:        nil,
		},
	}

	for _, useCase := range useCases {
		child := useCase.child
		child.Inherit(useCase.parent)
		var properties []string
		columns := map[string]string{}
		for _, item := range child.Mappings {
			properties = append(properties, item.Property)
			columns[item.Property] = item.Column
		}
		assert.Equal(t, useCase.expectProperties, properties, useCase.description)
		for property, column := range useCase.expectColumns {
			assert.Equal(t, column, columns[property], useCase.description)
		}
		var ids []string
		for _, item := range child.IdMappings {
			ids = append(ids, item.Property)
		}
		assert.Equal(t, useCase.expectIds, ids, useCase.description)
	}
}

func TestResultMap_InheritType(t *testing.T) {
	parent := &ResultMap{Id: "app.Base.entityMap", Type: "Entity", Discriminator: &Discriminator{Column: "KIND"}}
	child := &ResultMap{Id: "app.Account.accountMap"}
	child.Inherit(parent)
	assert.Equal(t, "Entity", child.Type)
	if assert.NotNil(t, child.Discriminator) {
		assert.Equal(t, "KIND", child.Discriminator.Column)
	}
}

func TestSQLCommandType_Validate(t *testing.T) {
	for _, command := range []SQLCommandType{SQLCommandSelect, SQLCommandInsert, SQLCommandUpdate, SQLCommandDelete} {
		assert.Nil(t, command.Validate(), string(command))
	}
	assert.NotNil(t, SQLCommandType("merge").Validate())
}

func TestStatementType_Validate(t *testing.T) {
	for _, kind := range []StatementType{StatementPrepared, StatementCallable, StatementDirect} {
		assert.Nil(t, kind.Validate(), string(kind))
	}
	assert.NotNil(t, StatementType("batched").Validate())
}

func TestMappedStatement_Namespace(t *testing.T) {
	statement := &MappedStatement{Id: "app.UserMapper.findById"}
	assert.Equal(t, "app.UserMapper", statement.Namespace())
	assert.Equal(t, "", (&MappedStatement{Id: "findById"}).Namespace())
}

func TestKeyGenerators(t *testing.T) {
	assert.Equal(t, "none", (&NoKeyGenerator{}).Kind())
	assert.False(t, (&NoKeyGenerator{}).ExecuteBefore())

	assert.Equal(t, "vendor", (&VendorKeyGenerator{}).Kind())
	assert.False(t, (&VendorKeyGenerator{}).ExecuteBefore())

	generator := &SelectKeyGenerator{StatementId: "app.UserMapper.addUser" + SelectKeySuffix, Before: true}
	assert.Equal(t, "selectKey", generator.Kind())
	assert.True(t, generator.ExecuteBefore())
}
