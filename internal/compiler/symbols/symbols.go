package symbols

// DataType is the static type of a declared variable or log argument.
type DataType int

const (
	Invalid DataType = iota
	Integer
	Text
)

func (d DataType) String() string {
	switch d {
	case Integer:
		return "int"
	case Text:
		return "string"
	default:
		return "invalid"
	}
}

// TypeFromName maps a declared type name to its DataType.
func TypeFromName(name string) (DataType, bool) {
	switch name {
	case "int":
		return Integer, true
	case "string":
		return Text, true
	}
	return Invalid, false
}

type Symbol struct {
	Name string
	Type DataType
}
