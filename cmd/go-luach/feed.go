package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
)

func (c *cli) feedCmd() *cobra.Command {
	var (
		from string
		days int
		out  string
	)

	cmd := &cobra.Command{
		Use:   config.CmdFeed,
		Short: config.CmdDescFeed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from == "" {
				from = config.ArgToday
			}
			start, err := c.parseGregorian(from)
			if err != nil {
				return err
			}

			data, events, err := c.generator().BuildFeed(cmd.Context(), engine.FeedConfig{
				Start:      start,
				Days:       days,
				Israel:     c.settings.Israel,
				Categories: engine.CategoriesFrom(c.settings.Feed),
				Sync:       c.syncConfig(),
			})
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
			}
			slog.Info(config.MsgFeedWritten,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, out,
				config.LogKeyEvents, events,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, config.FlagFrom, "", config.FlagDescFrom)
	cmd.Flags().IntVar(&days, config.FlagDays, config.DefaultCLIFeedDays, config.FlagDescDays)
	cmd.Flags().StringVar(&out, config.FlagOut, "", config.FlagDescOut)

	return cmd
}
