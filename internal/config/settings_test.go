package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/zalando/go-keyring"
)

// isolate points HOME and the working directory at an empty temp dir so that
// no real .luach.toml or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const sampleTOML = `
lang = "he"
israel = true
anniversaries = "/data/anniversaries.toml"

[server]
port = 9090

[feed]
daf_yerushalmi = true
molad = false

[source]
mode = "local"
path = "/data/contacts.vcf"
after_sunset = true
`

// -----------------------------------------------------------------------------
// Loading
// -----------------------------------------------------------------------------

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	s, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLanguage, s.Lang)
	assert.False(t, s.Israel)
	assert.True(t, s.Format.Gershayim)
	assert.False(t, s.Format.LongYears)
	assert.Equal(t, config.LocalhostBindAddr, s.Server.BindAddr)
	assert.Equal(t, config.DefaultPort, s.Server.Port)
	assert.Equal(t, config.DefaultRefreshMin, s.Server.RefreshMin)
	assert.Equal(t, config.DefaultFeedPastDays, s.Feed.PastDays)
	assert.Equal(t, config.DefaultFeedFutureDays, s.Feed.FutureDays)
	assert.True(t, s.Feed.YomTov)
	assert.True(t, s.Feed.DafBavli)
	assert.False(t, s.Feed.DafYerushalmi)
	assert.Equal(t, config.SourceModeNone, s.Source.Mode)
	assert.False(t, s.Reminder.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.toml", sampleTOML)

	s, err := config.Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "he", s.Lang)
	assert.True(t, s.Israel)
	assert.Equal(t, 9090, s.Server.Port)
	assert.True(t, s.Feed.DafYerushalmi)
	assert.False(t, s.Feed.Molad)
	assert.True(t, s.Feed.YomTov, "Keys absent from the file keep their defaults")
	assert.Equal(t, config.SourceModeLocal, s.Source.Mode)
	assert.Equal(t, "/data/contacts.vcf", s.Source.Path)
	assert.True(t, s.Source.AfterSunset)
	assert.Equal(t, "/data/anniversaries.toml", s.Anniversaries)
}

func TestLoad_DiscoversConfigInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".luach.toml", sampleTOML)

	s, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 9090, s.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.toml", sampleTOML)
	t.Setenv("LUACH_SERVER_PORT", "7070")
	t.Setenv("LUACH_ISRAEL", "false")

	s, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 7070, s.Server.Port)
	assert.False(t, s.Israel)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.EnvFileName, "LUACH_LANG=he\n")
	// godotenv writes to the process environment directly.
	t.Cleanup(func() { _ = os.Unsetenv("LUACH_LANG") })

	s, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "he", s.Lang)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("LUACH_SERVER_PORT", "7070")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	require.NoError(t, flags.Parse([]string{"--port=6060"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(config.KeyServerPort, flags.Lookup(config.FlagPort)))

	s, err := config.Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 6060, s.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := config.Load(viper.New(), filepath.Join(dir, "absent.toml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, config.ErrConfigRead)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "bad.toml", "[server]\nport = 70000\n")

	_, err := config.Load(viper.New(), path)
	require.Error(t, err)
	assert.ErrorContains(t, err, config.ErrPortRange)
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

func validSettings() config.Settings {
	return config.Settings{
		Lang:   config.LangEnglish,
		Server: config.ServerSettings{Port: config.DefaultPort, RefreshMin: 1, RateLimit: 1, RateBurst: 1},
		Feed:   config.FeedSettings{PastDays: 0, FutureDays: 30},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validSettings().Validate())
}

func TestValidate_AggregatesErrors(t *testing.T) {
	s := validSettings()
	s.Lang = "not a tag!"
	s.Server.Port = 0
	s.Source.Mode = "ftp"
	s.Feed.FutureDays = config.MaxFeedDays + 1

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, config.ErrLangInvalid)
	assert.ErrorContains(t, err, config.ErrPortRange)
	assert.ErrorContains(t, err, config.ErrModeUnsupport)
	assert.ErrorContains(t, err, config.ErrFeedRange)
}

func TestValidate_Source(t *testing.T) {
	s := validSettings()
	s.Source.Mode = config.SourceModeLocal
	assert.ErrorContains(t, s.Validate(), config.ErrLocalPathEmpty)

	s.Source.Mode = config.SourceModeWeb
	assert.ErrorContains(t, s.Validate(), config.ErrWebURLEmpty)

	s.Source.URL = "https://dav.example.com/addressbook"
	assert.NoError(t, s.Validate())
}

func TestValidate_Reminder(t *testing.T) {
	s := validSettings()
	s.Reminder = config.ReminderSettings{Enabled: true, Value: -1, Unit: "w", Direction: "sideways"}

	err := s.Validate()
	assert.ErrorContains(t, err, config.ErrReminderUnit)
	assert.ErrorContains(t, err, config.ErrReminderDir)
	assert.ErrorContains(t, err, config.ErrReminderValue)

	s.Reminder.Enabled = false
	assert.NoError(t, s.Validate(), "A disabled reminder is not validated")
}

// -----------------------------------------------------------------------------
// Reminder trigger & credentials
// -----------------------------------------------------------------------------

func TestReminderTrigger(t *testing.T) {
	tests := []struct {
		name string
		r    config.ReminderSettings
		want string
	}{
		{"Disabled", config.ReminderSettings{Enabled: false, Value: 1, Unit: config.UnitDays}, ""},
		{"One day before", config.ReminderSettings{Enabled: true, Value: 1, Unit: config.UnitDays, Direction: config.DirBefore}, "-P1D"},
		{"Two hours after", config.ReminderSettings{Enabled: true, Value: 2, Unit: config.UnitHours, Direction: config.DirAfter}, "PT2H"},
		{"Thirty minutes before", config.ReminderSettings{Enabled: true, Value: 30, Unit: config.UnitMinutes, Direction: config.DirBefore}, "-PT30M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Trigger())
		})
	}
}

func TestCardDAVPassword(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(config.KeyringService, "alice", "s3cret"))
	t.Setenv(config.EnvCardDAVPassword, "from-env")

	assert.Equal(t, "s3cret", config.CardDAVPassword("alice"))
	assert.Equal(t, "from-env", config.CardDAVPassword("bob"), "Unknown users fall back to the environment")
	assert.Equal(t, "from-env", config.CardDAVPassword(""))
}
