package terminal

import (
	"io"
	"os"

	"github.com/edu-tools/cohort-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory commands.ComposerFactory
	output  io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory commands.ComposerFactory
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		factory: opts.Factory,
		output:  opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cohort-atlas",
		Short: "Cohort analytics reporting tool",
	}

	cmd.AddCommand(commands.NewCohortCmd(cli.factory, cli.output))
	cmd.AddCommand(commands.NewStudentCmd(cli.factory, cli.output))
	cmd.AddCommand(commands.NewProfilesCmd(cli.output))

	return cmd
}
