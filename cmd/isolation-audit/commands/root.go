// Package commands wires the static isolation auditors into a CLI: one
// subcommand per check plus "all", each honoring the CI contract of a
// machine-readable report and exit code 0 (clean) or 1 (violations).
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stafferly/stafferly/internal/audit"
)

// ErrViolationsFound signals a gating finding; main maps it to exit code 1.
var ErrViolationsFound = errors.New("isolation violations found")

type rootFlags struct {
	sourceRoot    string
	allowlistPath string
	reportPath    string
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "isolation-audit",
		Short:         "Static tenant-isolation auditors",
		Long:          "Scans the source tree for code patterns that bypass tenant scoping and fails the build when any are found outside the curated allowlist.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.sourceRoot, "root", ".", "source tree to scan")
	root.PersistentFlags().StringVar(&flags.allowlistPath, "allowlist", "isolation-allowlist.yaml", "allowlist file")
	root.PersistentFlags().StringVar(&flags.reportPath, "report", "isolation-report.json", "report output file")

	root.AddCommand(newAllCmd(flags))

	for _, auditor := range audit.DefaultAuditors() {
		root.AddCommand(newRuleCmd(flags, auditor))
	}

	return root
}

func newAllCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every auditor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuditors(cmd, flags, audit.DefaultAuditors())
		},
	}
}

func newRuleCmd(flags *rootFlags, auditor audit.Auditor) *cobra.Command {
	return &cobra.Command{
		Use:   auditor.Rule(),
		Short: "Run the " + auditor.Rule() + " auditor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuditors(cmd, flags, []audit.Auditor{auditor})
		},
	}
}

func runAuditors(cmd *cobra.Command, flags *rootFlags, auditors []audit.Auditor) error {
	tree, err := audit.LoadTree(flags.sourceRoot)
	if err != nil {
		return err
	}

	allowlist, err := audit.LoadAllowlist(flags.allowlistPath)
	if err != nil {
		return err
	}

	report, err := audit.NewRunner(auditors, allowlist).Run(cmd.Context(), tree)
	if err != nil {
		return err
	}

	err = report.Write(flags.reportPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, finding := range report.Findings {
		fmt.Fprintln(out, finding.String())

		if finding.Suggestion != "" {
			fmt.Fprintf(out, "  suggestion: %s\n", finding.Suggestion)
		}
	}

	fmt.Fprintf(out, "%d violation(s), %d suppressed, %d skip-tenant route(s); report written to %s\n",
		len(report.Findings), len(report.Suppressed), len(report.SkipTenant), flags.reportPath)

	if !report.Clean() {
		return ErrViolationsFound
	}

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err == nil {
		return 0
	}

	if !errors.Is(err, ErrViolationsFound) {
		fmt.Fprintln(os.Stderr, err)
	}

	return 1
}
