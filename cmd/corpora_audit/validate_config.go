package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitt/corpora-audit/internal/config"
)

var validateConfigCommand = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate a group policy file without running the audit",
	RunE:  runValidateConfigCmd,
}

var validateGroupConfig string

func init() {
	validateConfigCommand.Flags().StringVarP(&validateGroupConfig, "group-config", "g", "", "Path to the group policy file")
	_ = validateConfigCommand.MarkFlagRequired("group-config")

	rootCmd.AddCommand(validateConfigCommand)
}

func runValidateConfigCmd(cmd *cobra.Command, _ []string) error {
	groups, err := config.LoadGroupConfig(validateGroupConfig)
	if err != nil {
		return err
	}

	restricted := 0
	for _, p := range groups {
		if p.Restricted {
			restricted++
		}
	}
	fmt.Printf("OK: %d group(s), %d restricted\n", len(groups), restricted)
	return nil
}
