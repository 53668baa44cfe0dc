package parser

// Factory resolves child elements of a node by tag name.
//
// A Factory keeps no per-call state; callers cache what it returns.
type Factory struct {
	Registry *Registry
	// OnBuild, if set, is called with every element Build constructs.
	OnBuild func(Element)
}

// NewFactory creates a factory over reg, or DefaultRegistry when reg is nil.
func NewFactory(reg *Registry) *Factory {
	if reg == nil {
		reg = DefaultRegistry
	}
	return &Factory{Registry: reg}
}

// Specific finds the first child named name and converts it with t.
//
// A missing child is not an error: found is false and err is nil.
func (f *Factory) Specific(parent *Node, name string, t Transformer) (value interface{}, found bool, err error) {
	child := parent.Child(name)
	if child == nil {
		return nil, false, nil
	}
	value, err = t(child)
	return value, true, err
}

// Any builds the first child whose tag is one of names.
//
// Children whose tag has no registered constructor are skipped.
func (f *Factory) Any(parent *Node, names []string) (Element, bool) {
	if parent == nil {
		return nil, false
	}
	for _, c := range parent.Children {
		if !contains(names, c.Tag) {
			continue
		}
		if el, err := f.Build(c); err == nil {
			return el, true
		}
	}
	return nil, false
}

// All builds every child whose tag is one of names, in document order.
func (f *Factory) All(parent *Node, names []string) []Element {
	if parent == nil {
		return nil
	}
	var out []Element
	for _, c := range parent.Children {
		if !contains(names, c.Tag) {
			continue
		}
		if el, err := f.Build(c); err == nil {
			out = append(out, el)
		}
	}
	return out
}

// Build constructs the element registered for n's tag.
func (f *Factory) Build(n *Node) (Element, error) {
	ctor, ok := f.Registry.Lookup(n.Tag)
	if !ok {
		return nil, &ErrUnknownTag{Tag: n.Tag}
	}
	el := ctor(n, f)
	if f.OnBuild != nil {
		f.OnBuild(el)
	}
	return el, nil
}
