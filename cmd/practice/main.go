// Command practice runs a mock interview in the terminal against a HireWise
// API server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/hirewise/internal/apiclient"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/lshigami/hirewise/internal/interview"
	"github.com/lshigami/hirewise/internal/logger"
	"github.com/lshigami/hirewise/internal/speech"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	pflag.String("api", "http://localhost:8080/api", "base URL of the HireWise API")
	pflag.String("mode", "", "interview mode (pronunciation, communication, problem_solving, discussion)")
	pflag.String("resume", "", "path of a plain-text resume")
	pflag.String("resume-file", "", "path of a PDF or DOCX resume, analyzed first to extract its text")
	pflag.String("jd", "", "path of the job description")
	pflag.String("speak-cmd", "", `text-to-speech command used to read questions aloud, e.g. "espeak"`)
	pflag.Duration("speak-delay", interview.DefaultSpeakDelay, "delay before a new question is read aloud")
	pflag.Duration("timeout", 2*time.Minute, "timeout of each API call")
	pflag.Bool("no-save", false, "do not store the finished session")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("PRACTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Init()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, v, os.Stdin, os.Stdout); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Practice session failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, v *viper.Viper, in io.Reader, out io.Writer) error {
	client := apiclient.NewClient(v.GetString("api"), v.GetDuration("timeout"))
	ui := &terminal{in: bufio.NewScanner(in), out: out}

	resumeText, jobDescription, err := loadInputs(ctx, v, client)
	if err != nil {
		return err
	}

	ctrl := interview.NewController(client,
		interview.WithSpeech(speech.NewCommandSpeech(v.GetString("speak-cmd"))),
		interview.WithSpeakDelay(v.GetDuration("speak-delay")),
	)
	defer ctrl.Close()

	for {
		mode, err := ui.chooseMode(v.GetString("mode"))
		if err != nil {
			return err
		}
		if err := ctrl.SelectMode(mode); err != nil {
			return err
		}
		if err := ctrl.SetInputs(resumeText, jobDescription); err != nil {
			return err
		}

		ui.printf("\nGenerating %s questions...\n", mode.Info().Title)
		if err := ctrl.Start(ctx); err != nil {
			if apperror.IsValidation(err) {
				return err
			}
			ui.printf("Could not start the interview: %v\n", err)
			ctrl.Reset()
			if !ui.confirm("Try again?") {
				return nil
			}
			continue
		}

		if err := ui.interview(ctx, ctrl); err != nil {
			return err
		}

		snap := ctrl.Snapshot()
		if snap.State.Phase == interview.PhaseSummary {
			ui.printSummary(snap.State)
			if len(snap.State.Results) > 0 && !v.GetBool("no-save") {
				if saved, err := client.SaveSession(ctx, snap.State, snap.SessionElapsed); err != nil {
					ui.printf("Could not save the session: %v\n", err)
				} else {
					ui.printf("Session saved as %s\n", saved.ID)
				}
			}
		}

		ctrl.Reset()
		v.Set("mode", "")
		if !ui.confirm("Practice another mode?") {
			return nil
		}
	}
}

func loadInputs(ctx context.Context, v *viper.Viper, client *apiclient.Client) (string, string, error) {
	jdPath := v.GetString("jd")
	if jdPath == "" {
		return "", "", apperror.Validation("--jd is required")
	}
	jd, err := os.ReadFile(jdPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read job description: %w", err)
	}

	if path := v.GetString("resume-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read resume: %w", err)
		}
		analysis, err := client.Analyze(ctx, path, data, string(jd))
		if err != nil {
			return "", "", fmt.Errorf("failed to analyze resume: %w", err)
		}
		log.Info().Float64("ats_score", analysis.ATSScore).Str("analysis_id", analysis.ID).Msg("Resume analyzed")
		return analysis.ExtractedResumeText, string(jd), nil
	}

	path := v.GetString("resume")
	if path == "" {
		return "", "", apperror.Validation("--resume or --resume-file is required")
	}
	resume, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read resume: %w", err)
	}
	return string(resume), string(jd), nil
}

type terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *terminal) confirm(question string) bool {
	t.printf("%s [y/N] ", question)
	line, err := t.readLine()
	return err == nil && strings.EqualFold(line, "y")
}

func (t *terminal) chooseMode(preset string) (interview.Mode, error) {
	if preset != "" {
		return interview.ParseMode(preset)
	}
	modes := interview.Modes()
	t.printf("\nChoose an interview mode:\n")
	for i, m := range modes {
		t.printf("  %d. %-16s %s\n", i+1, m.Title, m.Description)
	}
	for {
		t.printf("> ")
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		var n int
		if _, err := fmt.Sscanf(line, "%d", &n); err == nil && n >= 1 && n <= len(modes) {
			return modes[n-1].ID, nil
		}
		if mode, err := interview.ParseMode(line); err == nil {
			return mode, nil
		}
		t.printf("Enter a number between 1 and %d.\n", len(modes))
	}
}

const answerHelp = "Type your answer; an empty line submits. Commands: :speak  :listen  :time  :finish  :quit"

// interview runs the question loop until the summary is reached or the
// candidate quits.
func (t *terminal) interview(ctx context.Context, ctrl *interview.Controller) error {
	for {
		snap := ctrl.Snapshot()
		switch snap.State.Phase {
		case interview.PhaseSummary:
			return nil
		case interview.PhaseInProgress:
			done, err := t.answer(ctx, ctrl, snap)
			if err != nil || done {
				return err
			}
		case interview.PhaseFeedback:
			t.printFeedback(snap.State)
			t.printf("Press Enter to continue, or type :finish to end now. ")
			line, err := t.readLine()
			if err != nil {
				return err
			}
			if line == ":finish" {
				return ctrl.Finish()
			}
			if err := ctrl.Next(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (t *terminal) answer(ctx context.Context, ctrl *interview.Controller, snap interview.Snapshot) (bool, error) {
	s := snap.State
	q, _ := s.CurrentQuestion()
	t.printf("\nQuestion %d of %d [%s]\n%s\n", s.CurrentIndex+1, len(s.Questions), q.Difficulty, q.Text)
	if q.Context != "" {
		t.printf("Context: %s\n", q.Context)
	}
	if q.Hint != "" {
		t.printf("Hint: %s\n", q.Hint)
	}
	t.printf("%s\n", answerHelp)
	if s.Answer != "" {
		t.printf("Current answer: %s\n", s.Answer)
	}

	var lines []string
	for {
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch line {
		case ":speak":
			if err := ctrl.ToggleSpeak(); err != nil {
				t.printf("%v\n", err)
			}
			continue
		case ":listen":
			if err := ctrl.ToggleListening(); err != nil {
				t.printf("%v\n", err)
			} else if !ctrl.Snapshot().Listening {
				t.printf("Voice input is not available here.\n")
			}
			continue
		case ":time":
			t.printf("Elapsed %s\n", interview.FormatElapsed(ctrl.Snapshot().Elapsed))
			continue
		case ":finish":
			return true, ctrl.Finish()
		case ":quit":
			ctrl.Reset()
			return true, nil
		case "":
			if len(lines) == 0 && strings.TrimSpace(ctrl.Snapshot().State.Answer) == "" {
				t.printf("Please provide an answer.\n")
				continue
			}
		default:
			lines = append(lines, line)
			continue
		}
		break
	}

	// typed lines extend the kept or transcribed answer
	if len(lines) > 0 {
		answer := interview.AppendChunk(ctrl.Snapshot().State.Answer, strings.Join(lines, "\n"))
		if err := ctrl.SetAnswer(answer); err != nil {
			return false, err
		}
	}
	t.printf("Evaluating (%s)...\n", interview.FormatElapsed(ctrl.Snapshot().Elapsed))
	if err := ctrl.Submit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		t.printf("Evaluation failed: %v\nYour answer was kept; press Enter to retry.\n", err)
	}
	return false, nil
}

func (t *terminal) printFeedback(s interview.SessionState) {
	eval := s.Evaluation
	if eval == nil {
		return
	}
	scores := eval.Scores()
	names := make([]string, 0, len(scores))
	for name := range scores {
		if name != "overall_score" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	t.printf("\nOverall %d/10 (%s)\n", eval.Overall(), interview.Rating(eval.Overall()))
	for _, name := range names {
		t.printf("  %-22s %d/10\n", strings.ReplaceAll(name, "_", " "), scores[name])
	}
	t.printf("%s\n", eval.FeedbackText())
}

func (t *terminal) printSummary(s interview.SessionState) {
	if s.Summary == nil {
		return
	}
	t.printf("\nInterview complete: %d question(s), average %d/10 (%s)\n",
		s.Summary.QuestionCount, s.Summary.AverageOverallScore, interview.Rating(s.Summary.AverageOverallScore))
	for _, b := range s.Summary.Breakdown {
		t.printf("  Q%d %2d/10  %s\n", b.Index+1, b.OverallScore, b.Question)
	}
}
