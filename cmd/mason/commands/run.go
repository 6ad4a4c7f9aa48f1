package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/app"
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("channel", "", "Repository user whose channel is checked for already-published artifacts")
	cmd.Flags().String("upload", "", "Repository user to upload successful builds to")
	cmd.Flags().String("pythons", "2.7,3.4,3.5", "Python versions to build against")
	cmd.Flags().String("numpys", "1.9,1.10", "NumPy versions to build against")
	cmd.Flags().String("platform", "", "Platform tag (default: detected from the host)")
	cmd.Flags().String("builder", "conda", "Builder executable")
	cmd.Flags().Bool("no-test", false, "Skip the recipes' test phases")
	cmd.Flags().BoolP("keep-going", "k", false, "Collect build failures and report a summary instead of stopping at the first")
}

func configFromFlags(cmd *cobra.Command, args []string) app.RunConfig {
	channel, _ := cmd.Flags().GetString("channel")
	upload, _ := cmd.Flags().GetString("upload")
	pythons, _ := cmd.Flags().GetString("pythons")
	numpys, _ := cmd.Flags().GetString("numpys")
	platform, _ := cmd.Flags().GetString("platform")
	builder, _ := cmd.Flags().GetString("builder")
	noTest, _ := cmd.Flags().GetBool("no-test")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	return app.RunConfig{
		Patterns:    args,
		Pythons:     splitList(pythons),
		Numpys:      splitList(numpys),
		Platform:    platform,
		ChannelUser: channel,
		UploadUser:  upload,
		Builder:     builder,
		NoTest:      noTest,
		KeepGoing:   keepGoing,
	}
}

// splitList parses a comma or space separated version list.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [recipe dirs or globs...]",
		Short: "Build the given recipes in dependency order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Run(cmd.Context(), configFromFlags(cmd, args))
		},
	}
	addRunFlags(cmd)
	return cmd
}
