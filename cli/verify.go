package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wudi/noticepdf/builder"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.pdf>",
	Short: "Check the structure of a rendered notice",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	rep, err := builder.Verify(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	cmd.Println(styles.ok.Render("valid") + " " + args[0])
	cmd.Printf("  %s %s\n", styles.key.Render("version"), rep.Version)
	cmd.Printf("  %s %d\n", styles.key.Render("objects"), rep.Objects)
	cmd.Printf("  %s %d\n", styles.key.Render("pages  "), rep.Pages)
	cmd.Printf("  %s %d 0 R\n", styles.key.Render("root   "), rep.Root)
	return nil
}
