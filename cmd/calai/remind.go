package calai

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/calai-app/calai/internal/reminder"
	"github.com/calai-app/calai/internal/service"
	"github.com/calai-app/calai/pkg/model"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Configure and run meal and water reminders",
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the reminder configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			for _, slot := range model.ReminderTypes {
				cfg := data.Reminders[slot]
				state := "off"
				if cfg.Enabled {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s  %s  %s\n", slot, cfg.Time, state)
			}
			return nil
		})
	},
}

var (
	remindTime    string
	remindEnable  bool
	remindDisable bool
)

var remindSetCmd = &cobra.Command{
	Use:   "set <slot>",
	Short: "Enable, disable, or reschedule one reminder slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseReminderType(args[0])
		if err != nil {
			return err
		}
		if remindEnable && remindDisable {
			return fmt.Errorf("--enable and --disable are mutually exclusive")
		}
		if remindTime != "" && !validClockTime(remindTime) {
			return fmt.Errorf("invalid time %q (expected HH:MM, zero-padded)", remindTime)
		}
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}
			settings := make(model.ReminderSettings, len(data.Reminders))
			for k, v := range data.Reminders {
				settings[k] = v
			}
			cfg := settings[slot]
			if remindTime != "" {
				cfg.Time = remindTime
			}
			if remindEnable {
				cfg.Enabled = true
			}
			if remindDisable {
				cfg.Enabled = false
			}
			settings[slot] = cfg

			a.session.Apply(func(u model.UserData) model.UserData {
				return service.UpdateReminders(u, settings)
			})
			state := "off"
			if cfg.Enabled {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reminder: %s at %s\n", slot, state, cfg.Time)
			return nil
		})
	},
}

var remindRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder daemon until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			data, err := requireUser(a)
			if err != nil {
				return err
			}

			sched := reminder.New(data.Reminders, consoleNotifier{out: cmd.OutOrStdout()}, a.logger,
				reminder.WithInterval(a.cfg.Reminders.PollInterval))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), "Reminder daemon running; press Ctrl-C to stop.")
			sched.Run(ctx)
			return nil
		})
	},
}

// consoleNotifier prints reminders to the terminal in place of a desktop
// notification center.
type consoleNotifier struct {
	out io.Writer
}

func (c consoleNotifier) Notify(title, body string) error {
	_, err := fmt.Fprintf(c.out, "\n%s\n%s\n", title, body)
	return err
}

func parseReminderType(raw string) (model.ReminderType, error) {
	for _, t := range model.ReminderTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid reminder slot %q (expected Breakfast, Lunch, Dinner, Snacks, or Water)", raw)
}

// validClockTime accepts zero-padded 24h HH:MM, matching how slot times are
// compared against the wall clock.
func validClockTime(raw string) bool {
	if len(raw) != 5 || raw[2] != ':' {
		return false
	}
	hh := int(raw[0]-'0')*10 + int(raw[1]-'0')
	mm := int(raw[3]-'0')*10 + int(raw[4]-'0')
	for _, c := range []byte{raw[0], raw[1], raw[3], raw[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh < 24 && mm < 60
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindListCmd, remindSetCmd, remindRunCmd)

	remindSetCmd.Flags().StringVar(&remindTime, "time", "", "Reminder time HH:MM (24h)")
	remindSetCmd.Flags().BoolVar(&remindEnable, "enable", false, "Enable the slot")
	remindSetCmd.Flags().BoolVar(&remindDisable, "disable", false, "Disable the slot")
}
