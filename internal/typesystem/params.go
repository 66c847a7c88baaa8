package typesystem

import "strings"

// Param is a named function parameter.
type Param struct {
	Name string
	Type Datatype
}

func (p Param) String() string {
	return p.Name + ": " + describe(p.Type)
}

// ParamList is an ordered parameter list. Order matters for equality and
// for matching call arguments.
type ParamList []Param

func (pl ParamList) Clone() ParamList {
	if pl == nil {
		return nil
	}
	out := make(ParamList, len(pl))
	for i, p := range pl {
		out[i] = Param{Name: p.Name, Type: cloneOrNil(p.Type)}
	}
	return out
}

// Equal compares element-wise by name and type.
func (pl ParamList) Equal(other ParamList) bool {
	if len(pl) != len(other) {
		return false
	}
	for i := range pl {
		if pl[i].Name != other[i].Name || !Equal(pl[i].Type, other[i].Type) {
			return false
		}
	}
	return true
}

func (pl ParamList) String() string {
	parts := make([]string, len(pl))
	for i, p := range pl {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Names returns the parameter names in order.
func (pl ParamList) Names() []string {
	names := make([]string, len(pl))
	for i, p := range pl {
		names[i] = p.Name
	}
	return names
}
