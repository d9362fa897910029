package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kids-lecture/api/internal/lecture"
)

func newTopicsCmd(_ *options) *cobra.Command {
	var (
		grade   string
		pick    int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List suggested topics for a grade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, ok := lecture.ParseGrade(grade)
			if !ok {
				return fmt.Errorf("grade must be between %d and %d", lecture.MinGrade, lecture.MaxGrade)
			}
			topics := lecture.Topics(g)
			if pick > 0 {
				topics = lecture.SuggestTopics(g, pick, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(topics)
			}
			fmt.Fprintln(out, color.New(color.Bold).Sprintf("%s Grade", lecture.Ordinal(g)))
			for _, t := range topics {
				fmt.Fprintf(out, "  • %s\n", t)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&grade, "grade", "g", lecture.DefaultGrade, "grade level 1-5")
	cmd.Flags().IntVar(&pick, "pick", 0, "show only this many random suggestions")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as a JSON array")
	return cmd
}
