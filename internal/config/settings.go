package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"golang.org/x/text/language"
)

// FormatSettings controls how Hebrew numerals are written.
type FormatSettings struct {
	Gershayim  bool `mapstructure:"gershayim"`
	LongYears  bool `mapstructure:"long_years"`
	FinalForms bool `mapstructure:"final_forms"`
}

// ServerSettings configures the HTTP server and its refresh worker.
type ServerSettings struct {
	BindAddr   string  `mapstructure:"bind_addr"`
	Port       int     `mapstructure:"port"`
	RefreshMin int     `mapstructure:"refresh_min"`
	RateLimit  float64 `mapstructure:"rate_limit"`
	RateBurst  int     `mapstructure:"rate_burst"`
}

// FeedSettings selects the served range and the event categories.
type FeedSettings struct {
	PastDays      int  `mapstructure:"past_days"`
	FutureDays    int  `mapstructure:"future_days"`
	YomTov        bool `mapstructure:"yomtov"`
	RoshChodesh   bool `mapstructure:"rosh_chodesh"`
	Parsha        bool `mapstructure:"parsha"`
	Omer          bool `mapstructure:"omer"`
	DafBavli      bool `mapstructure:"daf_bavli"`
	DafYerushalmi bool `mapstructure:"daf_yerushalmi"`
	Molad         bool `mapstructure:"molad"`
}

// SourceSettings locates the vCard address book used for Hebrew birthdays.
// The password is never part of the settings; see CardDAVPassword.
type SourceSettings struct {
	Mode        string `mapstructure:"mode"`
	Path        string `mapstructure:"path"`
	URL         string `mapstructure:"url"`
	User        string `mapstructure:"user"`
	AfterSunset bool   `mapstructure:"after_sunset"`
}

// ReminderSettings describes an optional alarm attached to anniversary events.
type ReminderSettings struct {
	Enabled   bool   `mapstructure:"enabled"`
	Value     int    `mapstructure:"value"`
	Unit      string `mapstructure:"unit"`
	Direction string `mapstructure:"direction"`
}

// Settings holds the runtime configuration. Values come from defaults, the
// .luach.toml file, a .env file, LUACH_* environment variables and CLI flags,
// in increasing order of precedence.
type Settings struct {
	Lang          string           `mapstructure:"lang"`
	Israel        bool             `mapstructure:"israel"`
	Debug         bool             `mapstructure:"debug"`
	Anniversaries string           `mapstructure:"anniversaries"`
	Format        FormatSettings   `mapstructure:"format"`
	Server        ServerSettings   `mapstructure:"server"`
	Feed          FeedSettings     `mapstructure:"feed"`
	Source        SourceSettings   `mapstructure:"source"`
	Reminder      ReminderSettings `mapstructure:"reminder"`
}

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLang, DefaultLanguage)
	v.SetDefault(KeyIsrael, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyAnniversaries, "")

	v.SetDefault(KeyFormatGershayim, true)
	v.SetDefault(KeyFormatLongYears, false)
	v.SetDefault(KeyFormatFinalForms, false)

	v.SetDefault(KeyServerBindAddr, LocalhostBindAddr)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerRefreshMin, DefaultRefreshMin)
	v.SetDefault(KeyServerRateLimit, DefaultRateLimit)
	v.SetDefault(KeyServerRateBurst, DefaultRateBurst)

	v.SetDefault(KeyFeedPastDays, DefaultFeedPastDays)
	v.SetDefault(KeyFeedFutureDays, DefaultFeedFutureDays)
	for _, k := range []string{KeyFeedYomTov, KeyFeedRoshChodesh, KeyFeedParsha, KeyFeedOmer, KeyFeedDafBavli, KeyFeedMolad} {
		v.SetDefault(k, true)
	}
	v.SetDefault(KeyFeedDafYerushalmi, false)

	v.SetDefault(KeySourceMode, SourceModeNone)
	v.SetDefault(KeySourcePath, "")
	v.SetDefault(KeySourceURL, "")
	v.SetDefault(KeySourceUser, "")
	v.SetDefault(KeySourceAfterSunset, false)

	v.SetDefault(KeyReminderEnabled, false)
	v.SetDefault(KeyReminderValue, DefaultReminderValue)
	v.SetDefault(KeyReminderUnit, UnitDays)
	v.SetDefault(KeyReminderDirection, DirBefore)
}

// Load reads the configuration into v and decodes it. An empty cfgFile searches for
// .luach.toml in the working and home directories; a missing file is not an error then.
// Flags must be bound to v before calling Load.
func Load(v *viper.Viper, cfgFile string) (Settings, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load(EnvFileName)

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log := slog.With(LogKeyComponent, CompConfig)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		log.Debug(MsgConfigNoFile)
	} else {
		log.Debug(MsgConfigLoaded, LogKeyFile, v.ConfigFileUsed())
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	return s, nil
}

// Validate reports every invalid value at once.
func (s Settings) Validate() error {
	var errs []error

	if _, err := language.Parse(s.Lang); err != nil {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLangInvalid, s.Lang))
	}
	if s.Server.Port < MinPort || s.Server.Port > MaxPort {
		errs = append(errs, fmt.Errorf("%s, got %d", ErrPortRange, s.Server.Port))
	}
	if s.Server.RefreshMin <= 0 {
		errs = append(errs, fmt.Errorf("%s, got %d", ErrRefreshInterval, s.Server.RefreshMin))
	}
	if s.Server.RateLimit <= 0 || s.Server.RateBurst < 1 {
		errs = append(errs, errors.New(ErrRateLimit))
	}
	if days := s.Feed.PastDays + s.Feed.FutureDays; s.Feed.PastDays < 0 || s.Feed.FutureDays < 0 || days < 1 || days > MaxFeedDays {
		errs = append(errs, fmt.Errorf("%s, got %d past and %d future", ErrFeedRange, s.Feed.PastDays, s.Feed.FutureDays))
	}

	switch s.Source.Mode {
	case SourceModeNone:
	case SourceModeLocal:
		if s.Source.Path == "" {
			errs = append(errs, errors.New(ErrLocalPathEmpty))
		}
	case SourceModeWeb:
		if s.Source.URL == "" {
			errs = append(errs, errors.New(ErrWebURLEmpty))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrModeUnsupport, s.Source.Mode))
	}

	if s.Reminder.Enabled {
		switch s.Reminder.Unit {
		case UnitDays, UnitHours, UnitMinutes:
		default:
			errs = append(errs, fmt.Errorf("%s: %q", ErrReminderUnit, s.Reminder.Unit))
		}
		if s.Reminder.Direction != DirBefore && s.Reminder.Direction != DirAfter {
			errs = append(errs, fmt.Errorf("%s: %q", ErrReminderDir, s.Reminder.Direction))
		}
		if s.Reminder.Value < 0 {
			errs = append(errs, errors.New(ErrReminderValue))
		}
	}

	return errors.Join(errs...)
}

// Trigger returns the RFC 5545 duration of the reminder alarm, relative to the start of
// the event, or "" when reminders are off.
func (r ReminderSettings) Trigger() string {
	if !r.Enabled {
		return ""
	}
	sign := ISOPeriodPrefix
	if r.Direction == DirBefore {
		sign = ISONegativePrefix
	}
	switch r.Unit {
	case UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, ISOTimePrefix, r.Value, ISOHour)
	case UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, ISOTimePrefix, r.Value, ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, r.Value, ISODay)
	}
}

// CardDAVPassword looks up the password of user in the OS keyring and falls back to
// the LUACH_CARDDAV_PASSWORD environment variable.
func CardDAVPassword(user string) string {
	if user != "" {
		p, err := keyring.Get(KeyringService, user)
		if err == nil {
			return p
		}
		slog.Debug(MsgPassFail,
			LogKeyComponent, CompConfig,
			LogKeyUser, user,
			LogKeyError, err,
		)
	}
	return os.Getenv(EnvCardDAVPassword)
}
