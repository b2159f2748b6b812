package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"dayplanner/internal/cli/formatter"
	"dayplanner/internal/service"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		plain  bool
		asJSON bool
		delay  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "plan [task...]",
		Short: "Build today's schedule from a list of tasks",
		Long: "Build today's schedule from a list of tasks.\n\n" +
			"Tasks come from the arguments, or from stdin (one per line) when none are given.",
		Example: `  dailyplanner plan "Prepare slides" "Go for a run" "Pick up kid"
  printf 'Team meeting\nRead a book\n' | dailyplanner plan --plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := args
			if len(tasks) == 0 {
				var err error
				tasks, err = readTasks(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading tasks: %w", err)
				}
			}

			svc := service.NewPlanService(service.FixedDelay(delay), 0, app.Log)
			plan, err := svc.Generate(cmd.Context(), service.PlanRequest{Tasks: tasks})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan.Result)
			case plain || app.IsTerminal == nil || !app.IsTerminal():
				_, err = fmt.Fprint(out, formatter.FormatPlain(plan.Result))
			default:
				_, err = fmt.Fprintln(out, formatter.FormatSchedule(plan.Result))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print without colors or borders")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the schedule as JSON")
	cmd.Flags().DurationVar(&delay, "delay", 0, "simulated thinking time before the plan is shown")

	return cmd
}

// readTasks reads one task per line; blank lines are skipped later by the
// plan service.
func readTasks(r io.Reader) ([]string, error) {
	var tasks []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		tasks = append(tasks, sc.Text())
	}
	return tasks, sc.Err()
}
