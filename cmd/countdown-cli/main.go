package main

import (
	"CountDown/audio"
	"CountDown/config"
	"CountDown/i18n"
	"CountDown/timer"
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

type options struct {
	ConfigPath  string
	Lang        string
	Quiet       bool
	KeepRunning bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "countdown-cli [duration...]",
		Short:        "Countdown timer for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Count down ninety minutes
  countdown-cli 1h 30m

  # Start empty and type durations or commands on stdin
  countdown-cli --keep-running

  # Commands: start, pause, reset, toggle (or an empty line), prev, next,
  # go (submit the recalled entry), history, quit. Anything else is read
  # as a duration, e.g. "add 5m".
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "settings file (default: user config dir)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "message language (en, pt, es, ru)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "do not print the clock every second")
	cmd.Flags().BoolVar(&opts.KeepRunning, "keep-running", false, "keep reading commands after the countdown completes")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.NewManager(opts.ConfigPath)
	if err != nil {
		return err
	}
	settings := cfg.Get()

	lang := opts.Lang
	if lang == "" {
		lang = settings.Language
	}
	i18n.SetLang(lang)

	var sound timer.SoundPlayer
	if settings.Sound.Enabled {
		player := audio.NewPlayer(settings.Sound.Volume)
		if settings.Sound.Directory != "" {
			if err := player.LoadDir(settings.Sound.Directory); err != nil {
				cmd.PrintErrf("loading sounds: %v\n", err)
			}
		}
		sound = player
	}

	s := newSession(cmd.OutOrStdout(), sessionConfig{
		Sound:           sound,
		CompletionSound: settings.Sound.Completion,
		Interval:        settings.Timer.TickInterval,
		Quiet:           opts.Quiet,
		KeepRunning:     opts.KeepRunning,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return s.run(ctx, strings.Join(args, " "), cmd.InOrStdin())
}

func main() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
