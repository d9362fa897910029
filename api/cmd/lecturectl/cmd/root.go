// Package cmd contains the lecturectl commands.
package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kids-lecture/api/internal/config"
	"kids-lecture/api/internal/logger"
)

// ErrReported means the failure was already shown to the user.
var ErrReported = errors.New("lecturectl: failure already reported")

type options struct {
	apiURL  string
	noColor bool
	verbose bool

	cfg *config.Config
	log *logger.Logger
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "lecturectl",
		Short: "Kids lecture generator CLI",
		Long: `lecturectl asks the lecture API for a lecture and prints it.

Example usage:
  lecturectl generate --topic volcanoes --grade 2
  lecturectl generate --topic bees --speak bees.mp3
  lecturectl topics --grade 4
  lecturectl migrate`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "lecture API base URL (default $LECTURE_API_URL)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(newGenerateCmd(opts), newTopicsCmd(opts), newMigrateCmd(opts))
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	o.cfg = config.Load()
	if o.apiURL == "" {
		o.apiURL = o.cfg.LectureAPIURL
	}
	if o.noColor {
		color.NoColor = true
	}

	mode := "production"
	if o.verbose {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return err
	}
	o.log = log
	return nil
}
