package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/format"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// cli holds the state shared by every subcommand.
type cli struct {
	v        *viper.Viper
	cfgFile  string
	settings config.Settings

	clock   hebcal.Clock
	fetcher engine.VCardFetcher

	// logSetup installs the default logger once settings are known.
	logSetup  func(debug bool) io.Closer
	logCloser io.Closer
}

func newCLI() *cli {
	return &cli{
		v:        viper.New(),
		clock:    hebcal.RealClock{},
		fetcher:  engine.NewHTTPFetcher(),
		logSetup: setupLogging,
	}
}

// close releases the log file, if any.
func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
	}
}

// rootCmd builds the command tree.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               config.CmdRoot,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, config.FlagConfig, "", config.FlagDescConfig)
	pf.Bool(config.FlagIsrael, false, config.FlagDescIsrael)
	pf.String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	pf.Bool(config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		c.convertCmd(),
		c.infoCmd(),
		c.feedCmd(),
		c.serveCmd(),
		c.versionCmd(),
	)

	return root
}

// load reads the settings and installs logging before any subcommand runs.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	// Only serve has --port; bindFlag skips flags the command does not define.
	bindings := map[string]string{
		config.KeyIsrael:     config.FlagIsrael,
		config.KeyLang:       config.FlagLang,
		config.KeyDebug:      config.FlagDebug,
		config.KeyServerPort: config.FlagPort,
	}
	for key, name := range bindings {
		if err := bindFlag(c.v, key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	s, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.settings = s

	if c.logSetup != nil {
		c.logCloser = c.logSetup(s.Debug)
	}
	return nil
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrBindFlag, flag.Name, err)
	}
	return nil
}

// formatter returns a formatter for lang with the numeral style of the settings.
func (c *cli) formatter(lang string) *format.Formatter {
	f := format.New(lang)
	f.UseGershGershayim = c.settings.Format.Gershayim
	f.UseLongHebrewYears = c.settings.Format.LongYears
	f.UseFinalFormLetters = c.settings.Format.FinalForms
	return f
}

// generator wires the engine with the configured formatter.
func (c *cli) generator() *engine.Generator {
	return &engine.Generator{
		Clock:     c.clock,
		Fetcher:   c.fetcher,
		Formatter: c.formatter(c.settings.Lang),
	}
}

// syncConfig describes the birthday and anniversary sources, or nil when none is set.
func (c *cli) syncConfig() *engine.SyncConfig {
	src := c.settings.Source
	if src.Mode == config.SourceModeNone && c.settings.Anniversaries == "" {
		return nil
	}

	cfg := &engine.SyncConfig{
		Mode:            src.Mode,
		LocalPath:       src.Path,
		WebURL:          src.URL,
		WebUser:         src.User,
		AfterSunset:     src.AfterSunset,
		Anniversaries:   c.settings.Anniversaries,
		ReminderTrigger: c.settings.Reminder.Trigger(),
	}
	if src.Mode == config.SourceModeWeb {
		cfg.WebPass = config.CardDAVPassword(src.User)
	}
	return cfg
}

// today returns the current Hebrew date according to the CLI clock.
func (c *cli) today() (hebcal.JewishDate, error) {
	return hebcal.Now(c.clock)
}
