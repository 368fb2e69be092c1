package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-console/internal"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
)

const defaultConfigPath = "./config.yml"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe on the console",
		Long: heredoc.Doc(`
			Two players take turns on a 3x3 board. On each turn enter the
			column and the row of the cell to mark, both between 0 and 2,
			separated by a space. Player 1 plays X and moves first.

			The first player to complete a row, a column or a diagonal wins.
			A full board without a line is a draw.

			Input is "column row", so "2 0" is the top right cell (x then y).
			Invalid input prints a lowercase message such as
			"incorrect number of arguments" and the same player is asked
			again with a "Player N:" prompt. Closing the input or pressing
			Ctrl+C ends the game with "The game was aborted".
		`),
		Example: heredoc.Doc(`
			$ tictactoe
			$ tictactoe --config ./config.yml --log-level debug
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			conf, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flag("log-level").Changed {
				conf.LogLevel, _ = cmd.Flags().GetString("log-level")
			}

			logger := NewLogger(cmd.ErrOrStderr(), conf.LogLevel)

			return app.RunApp(cmd.Context(), logger, conf, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.Flags().StringP("config", "c", defaultConfigPath, "Path to the config file")
	root.Flags().StringP("log-level", "l", "warn", "Log level: debug, info, warn or error")

	return root
}

// NewLogger - builds the JSON logger. Logs never go to stdout, which carries the game.
func NewLogger(w io.Writer, logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
