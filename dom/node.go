package dom

import (
	"strings"

	"github.com/google/uuid"
	rdata "github.com/viant/toolbox/data"
)

type (
	//Node represents a single element of a parsed declaration document
	Node struct {
		Name       string
		Attributes []*Attribute
		Children   []*Node
		Text       string
	}

	//Attribute represents a node attribute
	Attribute struct {
		Name  string
		Value string
	}
)

//IsText returns true for a nameless text node
func (n *Node) IsText() bool {
	return n.Name == ""
}

//Attribute returns named attribute value or empty string
func (n *Node) Attribute(name string) string {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

//AttributeOr returns named attribute value or defaultValue when absent or empty
func (n *Node) AttributeOr(name, defaultValue string) string {
	if value := n.Attribute(name); value != "" {
		return value
	}
	return defaultValue
}

//HasAttribute returns true if attribute is present, even when empty
func (n *Node) HasAttribute(name string) bool {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			return true
		}
	}
	return false
}

//SetAttribute sets or replaces named attribute
func (n *Node) SetAttribute(name, value string) {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			attr.Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, &Attribute{Name: name, Value: value})
}

//Element returns first child element with given name or nil
func (n *Node) Element(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

//Elements returns child elements, filtered by names when supplied
func (n *Node) Elements(names ...string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.IsText() {
			continue
		}
		if len(names) == 0 {
			result = append(result, child)
			continue
		}
		for _, name := range names {
			if child.Name == name {
				result = append(result, child)
				break
			}
		}
	}
	return result
}

//Content returns node text including nested element text, in document order
func (n *Node) Content() string {
	builder := &strings.Builder{}
	n.appendContent(builder)
	return builder.String()
}

func (n *Node) appendContent(builder *strings.Builder) {
	if text := strings.TrimSpace(n.Text); text != "" {
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(text)
	}
	for _, child := range n.Children {
		child.appendContent(builder)
	}
}

//Clone returns deep copy of the node
func (n *Node) Clone() *Node {
	result := &Node{Name: n.Name, Text: n.Text}
	for _, attr := range n.Attributes {
		result.Attributes = append(result.Attributes, &Attribute{Name: attr.Name, Value: attr.Value})
	}
	for _, child := range n.Children {
		result.Children = append(result.Children, child.Clone())
	}
	return result
}

//Remove removes given child element
func (n *Node) Remove(child *Node) {
	for i := range n.Children {
		if n.Children[i] == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

//Expand substitutes ${name} placeholders in attribute values and text with properties
func (n *Node) Expand(properties *rdata.Map) {
	if properties == nil {
		return
	}
	for _, attr := range n.Attributes {
		attr.Value = properties.ExpandAsText(attr.Value)
	}
	if n.Text != "" {
		n.Text = properties.ExpandAsText(n.Text)
	}
	for _, child := range n.Children {
		child.Expand(properties)
	}
}

//Identifier returns a stable, value derived node identifier
func (n *Node) Identifier() string {
	signature := &strings.Builder{}
	n.appendSignature(signature)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(signature.String())).String()
}

func (n *Node) appendSignature(builder *strings.Builder) {
	builder.WriteString(n.Name)
	for _, attr := range n.Attributes {
		builder.WriteByte('[')
		builder.WriteString(attr.Name)
		builder.WriteByte('=')
		builder.WriteString(attr.Value)
		builder.WriteByte(']')
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		builder.WriteString(text)
	}
	for _, child := range n.Children {
		builder.WriteByte('{')
		child.appendSignature(builder)
		builder.WriteByte('}')
	}
}
