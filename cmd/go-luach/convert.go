package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

func (c *cli) convertCmd() *cobra.Command {
	var gregorian, hebrew string

	cmd := &cobra.Command{
		Use:   config.CmdConvert,
		Short: config.CmdDescConvert,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				d   hebcal.JewishDate
				err error
			)
			if hebrew != "" {
				d, err = engine.ParseHebrewDate(hebrew)
			} else {
				d, err = c.parseGregorian(gregorian)
			}
			if err != nil {
				return err
			}
			return c.printConversion(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().StringVar(&gregorian, config.FlagGregorian, "", config.FlagDescGregorian)
	cmd.Flags().StringVar(&hebrew, config.FlagHebrewDate, "", config.FlagDescHebrewDate)
	cmd.MarkFlagsOneRequired(config.FlagGregorian, config.FlagHebrewDate)
	cmd.MarkFlagsMutuallyExclusive(config.FlagGregorian, config.FlagHebrewDate)

	return cmd
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdInfo,
		Short: config.CmdDescInfo,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := config.ArgToday
			if len(args) == 1 {
				value = args[0]
			}
			d, err := c.parseGregorian(value)
			if err != nil {
				return err
			}

			info := c.formatter(c.settings.Lang).Describe(hebcal.NewCalendar(d, c.settings.Israel))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", config.OutJSONIndent)
			return enc.Encode(info)
		},
	}
}

// parseGregorian reads YYYY-MM-DD or "today".
func (c *cli) parseGregorian(value string) (hebcal.JewishDate, error) {
	if value == config.ArgToday {
		return c.today()
	}
	t, err := time.Parse(config.DateFormatFullDash, value)
	if err != nil {
		return hebcal.JewishDate{}, fmt.Errorf("%s %q: %w", config.ErrDateParse, value, err)
	}
	d, err := hebcal.FromTime(t)
	if err != nil {
		return hebcal.JewishDate{}, fmt.Errorf("%s: %w", config.ErrDateRange, err)
	}
	return d, nil
}

func (c *cli) printConversion(w io.Writer, d hebcal.JewishDate) error {
	f := c.formatter(c.settings.Lang)
	gregorian := fmt.Sprintf("%04d-%02d-%02d", d.GregorianYear(), d.GregorianMonth(), d.GregorianDay())

	if _, err := fmt.Fprintf(w, config.OutGregorian, gregorian, f.DayOfWeek(d)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, config.OutHebrew, f.Date(d))
	return err
}
