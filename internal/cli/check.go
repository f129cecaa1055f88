package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type checkReport struct {
	Nodes      int      `json:"nodes"`
	Warnings   []string `json:"warnings,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

func (r checkReport) WriteText(w io.Writer) error {
	for _, s := range r.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", s); err != nil {
			return err
		}
	}
	for _, s := range r.Violations {
		if _, err := fmt.Fprintf(w, "violation: %s\n", s); err != nil {
			return err
		}
	}
	status := "ok"
	if len(r.Violations) > 0 {
		status = "FAILED"
	}
	_, err := fmt.Fprintf(w, "%s: %d nodes checked\n", status, r.Nodes)
	return err
}

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Expand the whole tree and verify its invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var warnings []string
			for _, err := range s.exp.ExpandAll(s.root(), -1) {
				warnings = append(warnings, err.Error())
			}
			nodes := 0
			for range s.root().All() {
				nodes++
			}
			var violations []string
			for _, v := range s.tree.Verify() {
				violations = append(violations, v.String())
			}

			rep := checkReport{Nodes: nodes, Warnings: warnings, Violations: violations}
			if err := writeOut(cmd, app, rep); err != nil {
				return err
			}
			if len(violations) > 0 {
				return writeErr(cmd, fmt.Errorf("%d tree invariant violation(s)", len(violations)))
			}
			return nil
		},
	}
	return cmd
}
