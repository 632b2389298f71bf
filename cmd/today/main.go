package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/today/internal/commands"
	"github.com/sandeepkv93/today/internal/config"
	"github.com/sandeepkv93/today/internal/lifecycle"
	"github.com/sandeepkv93/today/internal/update"
	"github.com/sandeepkv93/today/internal/views"
	"github.com/sandeepkv93/today/internal/widget"
)

var Version = "dev"

type rootFlags struct {
	configPath string
	storePath  string
	backend    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "today",
		Short:         "A task list that starts empty every day",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $TODAY_CONFIG or user config dir)")
	rootCmd.PersistentFlags().StringVar(&flags.storePath, "store", "", "task store path, overrides config")
	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "store backend: json or sqlite")

	rootCmd.AddCommand(addCmd(flags))
	rootCmd.AddCommand(listCmd(flags))
	rootCmd.AddCommand(toggleCmd(flags))
	rootCmd.AddCommand(widgetCmd(flags))
	rootCmd.AddCommand(configCmd(flags))
	return rootCmd
}

func loadConfig(flags *rootFlags) (config.Runtime, error) {
	path := flags.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if flags.storePath != "" {
		cfg.StorePath = flags.storePath
	}
	if flags.backend != "" {
		cfg.StoreBackend = strings.ToLower(flags.backend)
	}
	return cfg, cfg.Validate()
}

func withSession(ctx context.Context, flags *rootFlags, opts sessionOptions, fn func(*session) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	return withSession(ctx, flags, sessionOptions{Interactive: true, Stdout: os.Stdout}, func(s *session) error {
		m := update.NewModel(ctx, s.list, update.Options{
			Engine:          s.engine,
			Notifier:        s.notifier(),
			DesktopEnabled:  s.cfg.DesktopNotifications,
			RefreshInterval: s.cfg.RefreshInterval(),
		})
		s.logger.Info("tui started", "store", s.cfg.StorePath, "backend", s.cfg.StoreBackend)
		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("today failed: %w", err)
		}
		return nil
	})
}

func addCmd(flags *rootFlags) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if !lifecycle.CanSubmit(title) {
				return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "add requires a title"}
			}
			return withSession(cmd.Context(), flags, sessionOptions{}, func(s *session) error {
				title = strings.TrimSpace(title)
				if at == "" {
					task := s.list.AddTask(cmd.Context(), title, nil)
					fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", shortID(task.Identifier()), task.Title)
					return nil
				}
				tm, err := commands.ParseTimeOfDay(at)
				if err != nil {
					return err
				}
				task := s.list.AddTaskAt(cmd.Context(), title, commands.ClockIn(tm, s.loc))
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %s until %s\n", shortID(task.Identifier()), task.Title, task.ExpiresAt.In(s.loc).Format(commands.TimeLayout))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&at, "until", "u", "", "expire the task today at HH:MM")
	return cmd
}

func listCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), flags, sessionOptions{}, func(s *session) error {
				return printTasks(cmd.OutOrStdout(), s)
			})
		},
	}
}

func toggleCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle [number|id]",
		Aliases: []string{"done"},
		Short:   "Complete or reopen a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), flags, sessionOptions{}, func(s *session) error {
				task, err := s.list.Lookup(args[0])
				if err != nil {
					return err
				}
				if !s.list.Toggle(cmd.Context(), task) {
					return fmt.Errorf("task %s is no longer in the list", shortID(task.Identifier()))
				}
				state := "done"
				if task.IsCompleted {
					state = "reopened"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, task.Title)
				return nil
			})
		},
	}
}

func widgetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "widget",
		Short: "Print the home-screen summary and rewrite the widget file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), flags, sessionOptions{}, func(s *session) error {
				if s.reloader != nil {
					if err := s.reloader.Reload(cmd.Context()); err != nil {
						return err
					}
				}
				summary := widget.Summarize(s.list.Tasks(), s.list.Now(), s.loc)
				fmt.Fprintln(cmd.OutOrStdout(), views.RenderWidget(summary))
				return nil
			})
		},
	}
}

func configCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			path := flags.configPath
			if path == "" {
				path = config.ResolveConfigPath()
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func printTasks(w io.Writer, s *session) error {
	tasks := s.list.Tasks()
	if len(tasks) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", views.EmptyTitle, views.EmptyBody)
		return err
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%2d. %s %s  %s", i+1, views.IconFor(t.IsCompleted), shortID(t.Identifier()), t.Title)
		if t.ExpiresAt != nil {
			line += "  until " + t.ExpiresAt.In(s.loc).Format(commands.TimeLayout)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
