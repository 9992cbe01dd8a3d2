package mapping

//SelectKeySuffix derives the id of a generated key sub statement from its owner id
const SelectKeySuffix = "!selectKey"

type (
	//KeyGenerator represents a generated key retrieval strategy
	KeyGenerator interface {
		//ExecuteBefore returns true when key retrieval runs ahead of the owning statement
		ExecuteBefore() bool
		//Kind returns strategy discriminator
		Kind() string
	}

	//NoKeyGenerator represents the no-op strategy
	NoKeyGenerator struct{}

	//VendorKeyGenerator retrieves driver returned auto generated keys
	VendorKeyGenerator struct{}

	//SelectKeyGenerator runs a dedicated key statement before or after its owner
	SelectKeyGenerator struct {
		StatementId string
		Before      bool
	}
)

func (g *NoKeyGenerator) ExecuteBefore() bool { return false }
func (g *NoKeyGenerator) Kind() string        { return "none" }

func (g *VendorKeyGenerator) ExecuteBefore() bool { return false }
func (g *VendorKeyGenerator) Kind() string        { return "vendor" }

func (g *SelectKeyGenerator) ExecuteBefore() bool { return g.Before }
func (g *SelectKeyGenerator) Kind() string        { return "selectKey" }
