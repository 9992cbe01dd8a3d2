package dom

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

//Parse builds a node tree for the supplied document, returning its root element
func Parse(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	var stack []*Node
	var root *Node
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse document")
		}
		switch actual := token.(type) {
		case xml.StartElement:
			node := &Node{Name: actual.Name.Local}
			for _, attr := range actual.Attr {
				node.Attributes = append(node.Attributes, &Attribute{Name: attr.Name.Local, Value: attr.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			} else {
				return nil, errors.Errorf("multiple root elements: %v, %v", root.Name, node.Name)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.Errorf("unexpected closing element: %v", actual.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(actual)
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			//mixed content keeps document order, text becomes a nameless child node
			if count := len(parent.Children); count > 0 && parent.Children[count-1].IsText() {
				parent.Children[count-1].Text += text
				continue
			}
			parent.Children = append(parent.Children, &Node{Text: text})
		}
	}
	if root == nil {
		return nil, errors.New("document was empty")
	}
	if len(stack) > 0 {
		return nil, errors.Errorf("unclosed element: %v", stack[len(stack)-1].Name)
	}
	return root, nil
}
