package mapping

// SupportedDialects lists the SQL dialects the validator can pre-check
// statements against. Config uses these exact names in sql.dialect.
var SupportedDialects = []string{
	"mysql",
	"postgres",
	"tidb",
}

// SupportedSources lists the relational engines the migrator can read from.
var SupportedSources = []string{
	"sqlite",
	"mysql",
}

// IsSupportedDialect checks if a dialect name is supported
func IsSupportedDialect(dialect string) bool {
	for _, d := range SupportedDialects {
		if d == dialect {
			return true
		}
	}
	return false
}

// IsSupportedSource checks if a source engine is supported
func IsSupportedSource(source string) bool {
	for _, s := range SupportedSources {
		if s == source {
			return true
		}
	}
	return false
}
