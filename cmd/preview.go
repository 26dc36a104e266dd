package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a quick session on stdin (no database)",
	Long: `Generate questions and answer them line by line on the terminal.

This is a stateless developer tool: no database and no session log.
Useful for checking question quality from a provider or the built-in generator.
Answer with "x y" or "x, y"; "q" leaves the session.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of questions to play")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("invalid --count %d: must be at least 1", count)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Quiz.TotalQuestions = count

	// No event repo: nothing is logged.
	ctx := cmd.Context()
	provider, online := buildProvider(ctx, cfg, nil, zap.NewNop())
	source := "built-in generator"
	if online {
		source = cfg.LLM.Provider
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %d questions from %s...\n\n", count, source)

	engine, err := quiz.NewEngine(cfg.Quiz, provider)
	if err != nil {
		return err
	}
	player := newLinePlayer(cmd.InOrStdin(), out)
	final, err := engine.Run(ctx, player)
	if err != nil && !errors.Is(err, quiz.ErrQuit) {
		return err
	}

	sum := quiz.BuildSummary(final)
	fmt.Fprintf(out, "── Summary: %d/%d correct, %d points ──\n", sum.Correct, sum.Answered, sum.Score)
	fmt.Fprintln(out, sum.Rating())
	return nil
}

// linePlayer answers questions from lines of text and prints each state
// change once.
type linePlayer struct {
	in   *bufio.Scanner
	out  io.Writer
	last quiz.State
}

func newLinePlayer(in io.Reader, out io.Writer) *linePlayer {
	return &linePlayer{in: bufio.NewScanner(in), out: out}
}

func (p *linePlayer) Show(s quiz.State) {
	prev := p.last
	p.last = s

	switch s.Phase {
	case quiz.PhasePlaying:
		if prev.Phase == quiz.PhasePlaying && prev.QuestionIndex == s.QuestionIndex {
			return
		}
		q := s.Question
		fmt.Fprintf(p.out, "── Question %d/%d ──\n", s.QuestionIndex, s.Total())
		fmt.Fprintln(p.out, q.Text)
		fmt.Fprintf(p.out, "  %s\n  %s\n", q.System.Eq1, q.System.Eq2)
		fmt.Fprintf(p.out, "  x = %s, y = %s\n", q.XLabel, q.YLabel)

	case quiz.PhaseFeedback, quiz.PhaseEnd:
		fb := s.Feedback
		if fb == nil {
			return
		}
		if prev.Phase != quiz.PhasePlaying {
			// Only the explanation arrived.
			if prev.Feedback != nil && prev.Feedback.ExplanationPending && !fb.ExplanationPending {
				fmt.Fprintf(p.out, "Explanation:\n%s\n\n", fb.Explanation)
			}
			return
		}
		if fb.Correct {
			fmt.Fprintf(p.out, "\033[32m✓ Correct!\033[0m +%d\n\n", s.Config.CorrectBonus)
		} else {
			fmt.Fprintf(p.out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", fb.Solution)
			if !fb.ExplanationPending && fb.Explanation != "" {
				fmt.Fprintf(p.out, "Explanation:\n%s\n\n", fb.Explanation)
			}
		}
	}
}

func (p *linePlayer) Answer(_ context.Context, _ quiz.State) (linsys.Answer, error) {
	fmt.Fprint(p.out, "\nYour answer (x y): ")
	if !p.in.Scan() {
		fmt.Fprintln(p.out, "\n(input closed)")
		return linsys.Answer{}, quiz.ErrQuit
	}
	line := strings.TrimSpace(p.in.Text())
	if strings.EqualFold(line, "q") {
		return linsys.Answer{}, quiz.ErrQuit
	}
	return parseAnswerLine(line), nil
}

// parseAnswerLine splits "x y", "x, y" or "x; y". Missing parts become
// NaN and fail the check.
func parseAnswerLine(line string) linsys.Answer {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';' || r == '(' || r == ')'
	})
	if len(fields) == 1 && strings.Count(fields[0], ",") == 1 {
		fields = strings.Split(fields[0], ",")
	}
	var parts []string
	for _, f := range fields {
		f = strings.TrimSuffix(f, ",")
		if f != "" {
			parts = append(parts, f)
		}
	}
	x, y := "", ""
	if len(parts) > 0 {
		x = parts[0]
	}
	if len(parts) > 1 {
		y = parts[1]
	}
	return linsys.ParseAnswer(x, y)
}
