package depot

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []Component
}

type leafNode struct {
	components []Component
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, components []Component) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

func newLeafNode(components []Component) *leafNode {
	return &leafNode{components: components}
}

func componentMask(components []Component) mask.Mask {
	var m mask.Mask
	for _, comp := range components {
		m.Mark(uint32(comp.Slot()))
	}
	return m
}

func (n *compositeNode) Evaluate(entityMask mask.Mask) bool {
	nodeMask := componentMask(n.components)

	switch n.op {
	case OpAnd:
		if !entityMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(entityMask) {
				return false
			}
		}
		return true

	case OpOr:
		if entityMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(entityMask) {
				return true
			}
		}
		return false

	case OpNot:
		if len(n.children) == 0 {
			return entityMask.ContainsNone(nodeMask)
		}
		for _, child := range n.children {
			if child.Evaluate(entityMask) {
				return false
			}
		}
		return !entityMask.ContainsAny(nodeMask)
	}
	return false
}

// required lists the components every match must hold, which lets a cursor
// drive iteration from the smallest of their stores.
func (n *compositeNode) required() []Component {
	if n.op != OpAnd {
		return nil
	}
	return n.components
}

func (n *leafNode) Evaluate(entityMask mask.Mask) bool {
	return entityMask.ContainsAll(componentMask(n.components))
}

func (n *leafNode) required() []Component {
	return n.components
}

func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...interface{}) ([]Component, []QueryNode) {
	components := make([]Component, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *query) Evaluate(entityMask mask.Mask) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(entityMask)
}

func (q *query) required() []Component {
	if r, ok := q.root.(interface{ required() []Component }); ok {
		return r.required()
	}
	return nil
}
