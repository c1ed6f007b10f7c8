package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Operation is the declared kind of an intercepted statement.
type Operation string

const (
	Select Operation = "SELECT"
	Insert Operation = "INSERT"
	Update Operation = "UPDATE"
	Delete Operation = "DELETE"
)

// ErrUnsupportedOperation is wrapped by every error about an unknown operation kind.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Operations lists the supported kinds in declaration order.
var Operations = []Operation{Select, Insert, Update, Delete}

// OperationMap - Runtime mapping for executors
// Usage: OperationMap["MongoDB"][Update] returns "updateMany"
var OperationMap = map[string]map[Operation]string{
	"MongoDB": {
		Select: "find",
		Insert: "insertOne",
		Update: "updateMany",
		Delete: "deleteMany",
	},
}

// Valid reports whether o is one of the four supported kinds.
func (o Operation) Valid() bool {
	_, ok := OperationMap["MongoDB"][o]
	return ok
}

// Mongo returns the MongoDB collection method that serves o.
func (o Operation) Mongo() string {
	return OperationMap["MongoDB"][o]
}

// ParseOperation resolves a kind name such as "select" or "UPDATE".
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToUpper(strings.TrimSpace(s)))
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedOperation, s, Operations)
	}
	return op, nil
}

// InferOperation takes the kind from the statement's leading keyword.
func InferOperation(statement string) (Operation, error) {
	words := strings.Fields(statement)
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty statement", ErrUnsupportedOperation)
	}
	return ParseOperation(strings.TrimLeft(words[0], "("))
}
