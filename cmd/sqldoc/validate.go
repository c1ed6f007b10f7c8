package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omniql-engine/sqldoc/engine/validator"
)

var validateDialect string

var validateCmd = &cobra.Command{
	Use:   "validate <statement>",
	Short: "Check a statement's syntax with a dialect parser",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDialect, "dialect", "", "mysql|postgres|tidb (default: sql.dialect from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dialect := validateDialect
	if dialect == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dialect = cfg.SQL.Dialect
	}

	v, err := validator.ForDialect(dialect)
	if err != nil {
		return err
	}
	result, err := v.ValidateWithDetails(args[0])
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("invalid %s statement: %s", result.Dialect, result.Error)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid %s statement\n", result.Dialect)
	return nil
}
