package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent sessions, or the answers of one session",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if sessionID != "" {
			return printSessionAnswers(cmd, e, sessionID)
		}

		ctx := cmd.Context()
		sessions, err := e.store.EventRepo().RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %5s  %7s  %7s  %s\n",
			"Session", "Started", "Score", "Correct", "Time", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 92))

		var best, totalCorrect, totalServed int
		for _, s := range sessions {
			status := "finished"
			if !s.Completed {
				status = "left early"
			}
			fmt.Fprintf(out, "%-36s  %-16s  %5d  %7s  %7s  %s\n",
				s.SessionID,
				s.StartedAt.Local().Format("2006-01-02 15:04"),
				s.Score,
				fmt.Sprintf("%d/%d", s.CorrectAnswers, s.QuestionsServed),
				formatDuration(s.DurationSecs),
				status,
			)
			best = max(best, s.Score)
			totalCorrect += s.CorrectAnswers
			totalServed += s.QuestionsServed
		}

		fmt.Fprintln(out, strings.Repeat("─", 92))
		fmt.Fprintf(out, "%d sessions, best score %d", len(sessions), best)
		if totalServed > 0 {
			fmt.Fprintf(out, ", accuracy %.0f%%", 100*float64(totalCorrect)/float64(totalServed))
		}
		fmt.Fprintln(out)
		return nil
	},
}

func printSessionAnswers(cmd *cobra.Command, e *env, sessionID string) error {
	answers, err := e.store.EventRepo().SessionAnswers(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(answers) == 0 {
		fmt.Fprintf(out, "No answers recorded for session %s.\n", sessionID)
		return nil
	}

	for _, a := range answers {
		mark := "✓"
		if !a.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s Q%-2d  %s  [%s]\n", mark, a.QuestionIndex,
			strings.ReplaceAll(a.System, "\n", ", "), a.Source)
		fmt.Fprintf(out, "       answered %s, solution %s, %.1fs\n",
			a.LearnerAnswer, a.CorrectAnswer, float64(a.TimeMs)/1000)
	}
	return nil
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	statsCmd.Flags().StringP("session", "s", "", "Show the answers of one session")
}
