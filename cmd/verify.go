package cmd

import (
	"fmt"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/projecteru2/uuidkey/document"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check a symbols document (default: the configured output)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := conf.Output
	if len(args) == 1 {
		path = args[0]
	}

	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(conf.Count); err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	st, err := document.Stat(path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d symbols, %s, %s\n",
		path, len(doc.Symbols), units.HumanSize(float64(st.Size)), st.Digest)
	return nil
}
