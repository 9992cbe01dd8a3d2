package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/sqlmap/cache"
	"github.com/viant/sqlmap/mapping"
)

func TestRegistry_RegisterSource(t *testing.T) {
	aRegistry := New()
	assert.True(t, aRegistry.RegisterSource("file:///mappers/user.xml"))
	assert.False(t, aRegistry.RegisterSource("file:///mappers/user.xml"))
	assert.True(t, aRegistry.RegisterSource("file:///mappers/order.xml"))
}

func TestRegistry_Duplicates(t *testing.T) {
	aRegistry := New()
	statement := &mapping.MappedStatement{Id: "app.UserMapper.findById", SQLCommand: mapping.SQLCommandSelect}
	assert.Nil(t, aRegistry.RegisterStatement(statement))
	err := aRegistry.RegisterStatement(statement)
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "already registered")
	}

	resultMap := &mapping.ResultMap{Id: "app.UserMapper.userMap", Type: "User"}
	assert.Nil(t, aRegistry.RegisterResultMap(resultMap))
	assert.NotNil(t, aRegistry.RegisterResultMap(resultMap))

	fragment := &mapping.Fragment{Id: "app.UserMapper.columns"}
	assert.Nil(t, aRegistry.RegisterFragment(fragment))
	assert.NotNil(t, aRegistry.RegisterFragment(fragment))
}

func TestRegistry_Aliases(t *testing.T) {
	aRegistry := New()
	assert.Nil(t, aRegistry.RegisterAlias("User", "app/model.User"))
	//an alias can be re-registered with the same target
	assert.Nil(t, aRegistry.RegisterAlias("user", "app/model.User"))
	assert.NotNil(t, aRegistry.RegisterAlias("USER", "app/model.Account"))

	assert.Equal(t, "app/model.User", aRegistry.ResolveAlias("user"))
	assert.Equal(t, "app/model.User", aRegistry.ResolveAlias("User"))
	assert.Equal(t, "app/model.Unknown", aRegistry.ResolveAlias("app/model.Unknown"))
	assert.Equal(t, "", aRegistry.ResolveAlias(""))
}

func TestRegistry_MissingLookupsAreIncomplete(t *testing.T) {
	aRegistry := New()
	_, err := aRegistry.ResultMap("app.UserMapper.userMap")
	assert.True(t, IsIncomplete(err))
	_, err = aRegistry.Cache("app.UserMapper")
	assert.True(t, IsIncomplete(err))

	_, err = aRegistry.Fragment("app.UserMapper.columns")
	assert.NotNil(t, err)
}

func TestRegistry_ShareCache(t *testing.T) {
	aRegistry := New()
	err := aRegistry.ShareCache("app.OrderMapper", "app.UserMapper")
	assert.True(t, IsIncomplete(err))

	owned := cache.New("app.UserMapper")
	assert.Nil(t, aRegistry.RegisterCache("app.UserMapper", owned))
	assert.Nil(t, aRegistry.ShareCache("app.OrderMapper", "app.UserMapper"))
	shared, err := aRegistry.Cache("app.OrderMapper")
	assert.Nil(t, err)
	assert.Same(t, owned, shared)

	//a namespace with its own cache keeps it
	local := cache.New("app.ItemMapper")
	assert.Nil(t, aRegistry.RegisterCache("app.ItemMapper", local))
	assert.Nil(t, aRegistry.ShareCache("app.ItemMapper", "app.UserMapper"))
	kept, err := aRegistry.Cache("app.ItemMapper")
	assert.Nil(t, err)
	assert.Same(t, local, kept)
}

func TestRegistry_ResolvePending(t *testing.T) {
	aRegistry := New()
	//the first retry depends on a result map the second retry registers
	aRegistry.AddPendingResultMap(NewPending("resultMap", "derived.xml", "app.Account.accountMap", func() error {
		parent, err := aRegistry.ResultMap("app.Base.entityMap")
		if err != nil {
			return err
		}
		child := &mapping.ResultMap{Id: "app.Account.accountMap", Type: "Account"}
		child.Inherit(parent)
		return aRegistry.RegisterResultMap(child)
	}))
	aRegistry.AddPendingResultMap(NewPending("resultMap", "base.xml", "app.Base.entityMap", func() error {
		return aRegistry.RegisterResultMap(&mapping.ResultMap{Id: "app.Base.entityMap", Type: "Entity"})
	}))
	assert.Equal(t, 2, aRegistry.PendingCount())
	assert.Nil(t, aRegistry.ResolvePending())
	assert.Equal(t, 0, aRegistry.PendingCount())
	assert.True(t, aRegistry.HasResultMap("app.Account.accountMap"))
	assert.Nil(t, aRegistry.Complete())
}

func TestRegistry_ResolvePendingAbortsOnTerminalError(t *testing.T) {
	aRegistry := New()
	statement := &mapping.MappedStatement{Id: "app.UserMapper.findById", SQLCommand: mapping.SQLCommandSelect}
	assert.Nil(t, aRegistry.RegisterStatement(statement))
	aRegistry.AddPendingStatement(NewPending("statement", "user.xml", "app.UserMapper.findById", func() error {
		return aRegistry.RegisterStatement(statement)
	}))
	err := aRegistry.ResolvePending()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "already registered")
	}
}

func TestRegistry_Complete(t *testing.T) {
	aRegistry := New()
	aRegistry.AddPendingResultMap(NewPending("resultMap", "derived.xml", "app.Account.accountMap", func() error {
		_, err := aRegistry.ResultMap("app.Base.entityMap")
		return err
	}))
	assert.Nil(t, aRegistry.ResolvePending())
	err := aRegistry.Complete()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "app.Account.accountMap")
		assert.Contains(t, err.Error(), "app.Base.entityMap")
	}
}

func TestRegistry_CompleteChecksStatementResultMaps(t *testing.T) {
	aRegistry := New()
	statement := &mapping.MappedStatement{
		Id:         "app.UserMapper.findById",
		SQLCommand: mapping.SQLCommandSelect,
		ResultMaps: []string{"app.UserMapper.userMap"},
	}
	assert.Nil(t, aRegistry.RegisterStatement(statement))
	err := aRegistry.Complete()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "app.UserMapper.userMap")
	}
	assert.Nil(t, aRegistry.RegisterResultMap(&mapping.ResultMap{Id: "app.UserMapper.userMap", Type: "User"}))
	assert.Nil(t, aRegistry.Complete())
}

func TestRegistry_CompleteChecksResultMapReferences(t *testing.T) {
	aRegistry := New()
	resultMap := &mapping.ResultMap{Id: "app.Vehicle.vehicleMap", Type: "Vehicle"}
	resultMap.AddMapping(&mapping.ResultMapping{Property: "owner", NestedResultMap: "app.Vehicle.ownerMap"})
	resultMap.Discriminator = &mapping.Discriminator{
		Column: "TYPE",
		Cases:  map[string]string{"1": "app.Vehicle.carMap"},
	}
	assert.Nil(t, aRegistry.RegisterResultMap(resultMap))

	err := aRegistry.Complete()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "app.Vehicle.ownerMap")
	}
	assert.Nil(t, aRegistry.RegisterResultMap(&mapping.ResultMap{Id: "app.Vehicle.ownerMap", Type: "Owner"}))

	err = aRegistry.Complete()
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "app.Vehicle.carMap")
	}
	assert.Nil(t, aRegistry.RegisterResultMap(&mapping.ResultMap{Id: "app.Vehicle.carMap", Type: "Car"}))
	assert.Nil(t, aRegistry.Complete())
}

func TestSettings_Apply(t *testing.T) {
	settings := NewSettings()
	assert.True(t, settings.CacheEnabled)
	assert.Equal(t, mapping.AutoMappingPartial, settings.AutoMapping)

	assert.Nil(t, settings.Apply("cacheEnabled", "false"))
	assert.False(t, settings.CacheEnabled)
	assert.Nil(t, settings.Apply("useGeneratedKeys", "true"))
	assert.True(t, settings.UseGeneratedKeys)
	assert.Nil(t, settings.Apply("defaultFetchSize", "500"))
	assert.Equal(t, 500, settings.DefaultFetchSize)
	assert.Nil(t, settings.Apply("autoMappingBehavior", "full"))
	assert.Equal(t, mapping.AutoMappingFull, settings.AutoMapping)

	assert.NotNil(t, settings.Apply("autoMappingBehavior", "most"))
	assert.NotNil(t, settings.Apply("cacheEnabled", "maybe"))
	assert.NotNil(t, settings.Apply("notASetting", "true"))
}

func TestDatabaseIdProvider_DatabaseId(t *testing.T) {
	provider := &DatabaseIdProvider{Kind: "DB_VENDOR"}
	assert.Equal(t, "mysql", provider.DatabaseId("mysql"))
	assert.Equal(t, "sqlite", provider.DatabaseId("sqlite3"))
	assert.Equal(t, "postgres", provider.DatabaseId("postgres"))
	assert.Equal(t, "", provider.DatabaseId("exotic"))

	declared := &DatabaseIdProvider{Kind: "DB_VENDOR", Properties: map[string]string{"sqlite3": "lite"}}
	assert.Equal(t, "lite", declared.DatabaseId("sqlite3"))
}
