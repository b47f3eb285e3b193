package domain

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// FragmentTag is the synthetic tag used for fragment nodes; a fragment
// renders its children without a wrapping element.
const FragmentTag = "#fragment"

// VNode is one node of a component's render tree. A node with an empty Tag
// is a text node and carries only Text.
type VNode struct {
	Tag      string
	Props    map[string]any
	Children []*VNode
	Text     string
}

// TextNode creates a text node.
func TextNode(s string) *VNode {
	return &VNode{Text: s}
}

// IsText reports whether the node is a text node.
func (n *VNode) IsText() bool {
	return n.Tag == ""
}

// InnerText concatenates all text content below the node.
func (n *VNode) InnerText() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.InnerText())
	}
	return b.String()
}

// HTML renders the tree as HTML-ish markup for previews and golden tests.
func (n *VNode) HTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *VNode) writeHTML(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(html.EscapeString(n.Text))
		return
	}
	if n.Tag == FragmentTag {
		for _, c := range n.Children {
			c.writeHTML(b)
		}
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	// Sort prop names so output is deterministic.
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := n.Props[k]
		if v == nil || v == false {
			continue
		}
		if v == true {
			fmt.Fprintf(b, " %s", k)
			continue
		}
		fmt.Fprintf(b, " %s=%q", k, fmt.Sprint(v))
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
