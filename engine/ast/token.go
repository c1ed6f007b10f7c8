package ast

// LiteralKind tags the type of a literal token
type LiteralKind int

const (
	LITERAL_INTEGER LiteralKind = iota // 25, -3
	LITERAL_FLOAT                      // 3.14, 1e5
	LITERAL_STRING                     // 'John' (quotes already stripped)
)

// String returns human-readable literal kind name
func (k LiteralKind) String() string {
	names := []string{
		"INTEGER",
		"FLOAT",
		"STRING",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN"
}
