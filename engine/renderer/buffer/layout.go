// Package buffer describes vertex data layouts and owns the GPU vertex and index buffers that hold them.
package buffer

// Element is one named attribute inside an interleaved vertex. Size and Offset are filled in by NewLayout.
type Element struct {
	// Name is the attribute name, for documentation and debugging only.
	Name string

	// Type is the attribute's data type.
	Type ShaderDataType

	// Size is the byte size of the attribute, derived from Type.
	Size uint32

	// Offset is the byte offset of the attribute from the start of the vertex.
	Offset uint32

	// Normalized marks integer data that should be normalized to [0, 1] or [-1, 1] when read as float.
	Normalized bool
}

// NewElement creates an Element with its size derived from the type. The offset is assigned when the
// element is placed into a Layout.
//
// Parameters:
//   - t: the data type
//   - name: the attribute name
//   - normalized: whether integer data is normalized
//
// Returns:
//   - Element: the element
func NewElement(t ShaderDataType, name string, normalized bool) Element {
	return Element{
		Name:       name,
		Type:       t,
		Size:       t.Size(),
		Normalized: normalized,
	}
}

// ComponentCount returns the number of scalar components in the element.
//
// Returns:
//   - uint32: the component count
func (e Element) ComponentCount() uint32 {
	return e.Type.ValueCount()
}

// Layout is an ordered list of elements describing one interleaved vertex. Layouts are values and are
// not modified after NewLayout returns.
type Layout struct {
	elements []Element
	stride   uint32
}

// NewLayout builds a layout from elements in declaration order. Each element's offset is the sum of the
// sizes before it and the stride is the sum of all sizes. An empty list yields a zero stride.
//
// Parameters:
//   - elements: the attributes in vertex order
//
// Returns:
//   - Layout: the computed layout
func NewLayout(elements ...Element) Layout {
	l := Layout{elements: make([]Element, len(elements))}
	var offset uint32
	for i, e := range elements {
		e.Size = e.Type.Size()
		e.Offset = offset
		offset += e.Size
		l.elements[i] = e
	}
	l.stride = offset
	return l
}

// Stride returns the byte distance between consecutive vertices.
func (l Layout) Stride() uint32 {
	return l.stride
}

// Elements returns a copy of the layout's elements.
func (l Layout) Elements() []Element {
	out := make([]Element, len(l.elements))
	copy(out, l.elements)
	return out
}

// Len returns the number of elements.
func (l Layout) Len() int {
	return len(l.elements)
}

// Empty reports whether the layout has no elements.
func (l Layout) Empty() bool {
	return len(l.elements) == 0
}
