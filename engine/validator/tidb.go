package validator

import (
	"fmt"

	"github.com/pingcap/tidb/parser"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// ValidateTiDB validates statements with the TiDB (MySQL-compatible) grammar
func ValidateTiDB(query string) error {
	p := parser.New()
	stmts, _, err := p.Parse(query, "", "")
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return fmt.Errorf("empty statement")
	}
	return nil
}
