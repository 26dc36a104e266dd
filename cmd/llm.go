package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/surfmath/internal/llm"
	"github.com/abhisek/surfmath/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM calls",
	Long: `Every question and explanation request is logged with its prompt,
reply, token counts and latency. These commands read that log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls, newest first",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Print the prompt and reply of one call",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated spend per model",
	RunE:  runLLMStats,
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "How many calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls for this purpose (question-gen or explanation)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func runLLMList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "Nothing logged yet.")
		return nil
	}

	const row = "%-5v  %-16v  %-13v  %-26v  %7v  %7v  %6v  %v\n"
	fmt.Fprintf(w, row, "ID", "When", "Purpose", "Model", "Tok in", "Tok out", "ms", "")
	rule(w, 96)
	for _, ev := range events {
		mark := "ok"
		if !ev.Success {
			mark = "FAIL " + ev.ErrorMessage
		}
		fmt.Fprintf(w, row,
			ev.ID,
			ev.Timestamp.Local().Format("01-02 15:04:05"),
			ev.Purpose,
			truncate(ev.Model, 26),
			ev.InputTokens,
			ev.OutputTokens,
			ev.LatencyMs,
			truncate(mark, 40),
		)
	}
	return nil
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("event id must be a number, got %q", args[0])
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if ev == nil {
		return fmt.Errorf("no event with id %d", id)
	}

	w := cmd.OutOrStdout()
	fields := [][2]string{
		{"Time", ev.Timestamp.Local().Format("2006-01-02 15:04:05")},
		{"Provider", ev.Provider},
		{"Model", ev.Model},
		{"Purpose", ev.Purpose},
		{"Tokens", fmt.Sprintf("%d in, %d out", ev.InputTokens, ev.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", ev.LatencyMs)},
		{"Success", strconv.FormatBool(ev.Success)},
	}
	if ev.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", ev.ErrorMessage})
	}
	fmt.Fprintf(w, "Event #%d\n", ev.ID)
	for _, f := range fields {
		fmt.Fprintf(w, "  %-9s %s\n", f[0]+":", f[1])
	}

	for _, part := range [][2]string{{"Prompt", ev.RequestBody}, {"Reply", ev.ResponseBody}} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", part[0])
		rule(w, 60)
		if part[1] == "" {
			fmt.Fprintln(w, "(empty)")
			continue
		}
		fmt.Fprintln(w, part[1])
	}
	return nil
}

func runLLMStats(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	repo := e.store.EventRepo()
	w := cmd.OutOrStdout()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("usage by purpose: %w", err)
	}
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "Nothing logged yet.")
		return nil
	}

	const purposeRow = "%-16v  %6v  %10v  %10v  %8v\n"
	fmt.Fprintln(w, "Tokens by purpose")
	rule(w, 58)
	fmt.Fprintf(w, purposeRow, "Purpose", "Calls", "In", "Out", "Avg ms")
	var calls, in, out int
	for _, st := range byPurpose {
		fmt.Fprintf(w, purposeRow, st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	rule(w, 58)
	fmt.Fprintf(w, purposeRow, "all", calls, in, out, "")

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("usage by model: %w", err)
	}

	const modelRow = "%-30v  %6v  %10v\n"
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated spend (USD)")
	rule(w, 50)
	fmt.Fprintf(w, modelRow, "Model", "Calls", "Spend")
	var spend float64
	var unpriced []string
	for _, mu := range byModel {
		price := llm.LookupCost(mu.Model)
		if price == nil {
			unpriced = append(unpriced, mu.Model)
			fmt.Fprintf(w, modelRow, truncate(mu.Model, 30), mu.Calls, "n/a")
			continue
		}
		c := price.Cost(mu.InputTokens, mu.OutputTokens)
		spend += c
		fmt.Fprintf(w, modelRow, truncate(mu.Model, 30), mu.Calls, formatCost(c))
	}
	rule(w, 50)
	fmt.Fprintf(w, modelRow, "all", "", formatCost(spend))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo price list for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// formatCost keeps four decimals below a cent so small sessions do not show $0.00.
func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
