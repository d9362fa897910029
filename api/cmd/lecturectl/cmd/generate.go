package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kids-lecture/api/internal/client"
	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/sanitize"
	"kids-lecture/api/internal/speech"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		topic   string
		grade   string
		jsonOut bool
		speakTo string
		saveTo  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a lecture for a topic and grade",
		Long: `Generate a lecture through the lecture API.

Examples:
  lecturectl generate --topic "the water cycle"            # 3rd grade
  lecturectl generate --topic magnets --grade 5 --json
  lecturectl generate --topic plants --grade 1 --speak plants.mp3
  lecturectl generate --topic bees --save                  # Bees_for_3rd_Grade.html
  lecturectl generate --topic bees --save=bees.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts, topic, grade, jsonOut, speakTo, saveTo)
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "lecture topic")
	cmd.Flags().StringVarP(&grade, "grade", "g", lecture.DefaultGrade, "grade level 1-5")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the lecture as JSON")
	cmd.Flags().StringVar(&speakTo, "speak", "", "also narrate the lecture into this MP3 file")
	cmd.Flags().StringVar(&saveTo, "save", "", "also save the lecture as an HTML page; bare --save names it after the title")
	cmd.Flags().Lookup("save").NoOptDefVal = saveByTitle
	return cmd
}

// saveByTitle is the --save value when no path is given.
const saveByTitle = "auto"

func runGenerate(cmd *cobra.Command, opts *options, topic, grade string, jsonOut bool, speakTo, saveTo string) error {
	errOut := cmd.ErrOrStderr()
	warn := color.New(color.FgYellow, color.Bold)

	notify := client.NotifierFunc(func(title, description string) {
		fmt.Fprintf(errOut, "%s %s\n", warn.Sprint(title+":"), description)
	})
	session := client.NewSession(client.New(opts.apiURL, nil), notify)

	if !jsonOut {
		fmt.Fprintf(errOut, "Generating a %s Grade lecture about %q…\n", lecture.Ordinal(grade), topic)
	}
	if err := session.Submit(cmd.Context(), topic, grade); err != nil {
		opts.log.Debug("generate failed", "error", err)
		return ErrReported
	}
	lec := session.View().Lecture

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lec); err != nil {
			return err
		}
	} else {
		printLecture(out, *lec)
	}

	if saveTo != "" {
		if err := saveDocument(*lec, saveTo, errOut); err != nil {
			return err
		}
	}
	if speakTo == "" {
		return nil
	}
	return speakToFile(cmd.Context(), opts, lec.Content, speakTo, errOut)
}

func saveDocument(l lecture.Lecture, path string, errOut io.Writer) error {
	if path == saveByTitle {
		path = lecture.FileName(l.Title)
	}
	if err := os.WriteFile(path, []byte(lecture.Document(l)), 0o644); err != nil {
		return fmt.Errorf("save lecture: %w", err)
	}
	fmt.Fprintf(errOut, "%s %s\n", color.GreenString("Saved lecture to"), path)
	return nil
}

func printLecture(w io.Writer, l lecture.Lecture) {
	title := color.New(color.FgCyan, color.Bold)
	sub := color.New(color.Italic)

	fmt.Fprintln(w, title.Sprint(l.Title))
	fmt.Fprintln(w, sub.Sprint(l.Subtitle))
	fmt.Fprintln(w)
	fmt.Fprintln(w, sanitize.PlainText(l.Content))
}

func speakToFile(ctx context.Context, opts *options, content, path string, errOut io.Writer) error {
	if opts.cfg.OpenAIAPIKey == "" {
		return errors.New("--speak needs OPENAI_API_KEY")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		mu      sync.Mutex
		written int64
	)
	sink := func(_ context.Context, _ *speech.Utterance, _ int, audio io.Reader) error {
		mu.Lock()
		defer mu.Unlock()
		n, err := io.Copy(f, audio)
		written += n
		return err
	}
	synth := speech.NewOpenAISynthesizerWithBaseURL(opts.cfg.OpenAIAPIKey, opts.cfg.OpenAIBaseURL, opts.cfg.TTSModel, sink)
	ctl := speech.NewController(synth, opts.log)

	var speakErr error
	ctl.OnError(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if speakErr == nil {
			speakErr = err
		}
	})

	ctl.Start(content)
	if err := waitSpeech(ctx, ctl); err != nil {
		ctl.Stop()
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if speakErr != nil {
		return fmt.Errorf("narration incomplete (%d bytes written to %s): %w", written, path, speakErr)
	}
	if written == 0 {
		return errors.New("no audio was produced")
	}
	fmt.Fprintf(errOut, "%s %s (%d bytes)\n", color.GreenString("Saved narration to"), path, written)
	return nil
}

func waitSpeech(ctx context.Context, ctl *speech.Controller) error {
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for ctl.IsSpeaking() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
	return nil
}
