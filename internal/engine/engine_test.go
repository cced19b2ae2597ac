package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func day(y int, m time.Month, d int) MockClock {
	return MockClock{CurrentTime: time.Date(y, m, d, 10, 0, 0, 0, time.UTC)}
}

func fetcherFor(content string) *MockFetcher {
	f := new(MockFetcher)
	f.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(strings.NewReader(content)), nil)
	return f
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const anniversariesTOML = `
[[anniversary]]
name = "Sarah <b>Imenu</b>"
date = 2023-09-25
kind = "yahrzeit"

[[anniversary]]
name = "Levi"
hebrew = "5784-13-14"
`

// -----------------------------------------------------------------------------
// RunSync: vCard birthdays
// -----------------------------------------------------------------------------

func TestRunSync_Local_Success(t *testing.T) {
	// Born 2000-01-01, which is 23 Teves 5760. 23 Teves 5785 is 2025-01-23.
	path := writeFile(t, "contacts.vcf", "BEGIN:VCARD\nVERSION:4.0\nFN:John Doe\nBDAY:2000-01-01\nEND:VCARD\n")

	gen := &engine.Generator{Clock: day(2025, time.January, 23)}

	icsData, entries, count, err := gen.RunSync(context.Background(), engine.SyncConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count, "Should identify one Hebrew birthday today")

	require.Len(t, entries, 1)
	assert.Equal(t, "John Doe", entries[0].Name)
	assert.Equal(t, config.KindBirthday, entries[0].Kind)
	assert.True(t, entries[0].Origin.Equal(hebcal.MustFromHebrew(5760, hebcal.Teves, 23)))
	assert.True(t, entries[0].HasNext)
	assert.True(t, entries[0].Next.Equal(hebcal.MustFromGregorian(2025, 1, 23)))
	assert.Equal(t, 25, entries[0].CountNext)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:John Doe's Hebrew birthday (25)")
	assert.Contains(t, icsStr, "CATEGORIES:"+config.EventKindBirthday)
}

func TestRunSync_GeneratesHebrewYearRange(t *testing.T) {
	gen := &engine.Generator{
		Clock:   day(2025, time.January, 1),
		Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:Range Test\nBDAY:2000-01-01\nEND:VCARD"),
	}

	icsData, _, _, err := gen.RunSync(context.Background(), engine.SyncConfig{Mode: config.SourceModeWeb, WebURL: "http://test.local"})
	require.NoError(t, err)

	icsStr := string(icsData)
	// 23 Teves of 5784, 5785 and 5786.
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240104")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250123")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260112")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestRunSync_AfterSunset(t *testing.T) {
	gen := &engine.Generator{
		Clock:   day(2025, time.January, 24),
		Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:Evening\nBDAY:2000-01-01\nEND:VCARD"),
	}

	_, entries, count, err := gen.RunSync(context.Background(), engine.SyncConfig{
		Mode:        config.SourceModeWeb,
		WebURL:      "http://test.local",
		AfterSunset: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count, "A birth after sunset belongs to the next Hebrew day")
	require.Len(t, entries, 1)
	assert.Equal(t, 24, entries[0].Origin.HebrewDay())
}

func TestRunSync_Web_NetworkError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	expectedErr := errors.New("network unreachable")
	mockFetcher.On("Fetch", mock.Anything, "http://bad-url.com", "alice", "secret").
		Return(nil, expectedErr)

	gen := &engine.Generator{
		Clock:   MockClock{CurrentTime: time.Now()},
		Fetcher: mockFetcher,
	}

	icsData, entries, count, err := gen.RunSync(context.Background(), engine.SyncConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  "http://bad-url.com",
		WebUser: "alice",
		WebPass: "secret",
	})

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, icsData)
	assert.Nil(t, entries)
	assert.Equal(t, 0, count)
	mockFetcher.AssertExpectations(t)
}

func TestRunSync_ConfigurationErrors(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Now()}}

	tests := []struct {
		name    string
		cfg     engine.SyncConfig
		wantErr string
	}{
		{"Local without path", engine.SyncConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Web without URL", engine.SyncConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"Web without fetcher", engine.SyncConfig{Mode: config.SourceModeWeb, WebURL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", engine.SyncConfig{Mode: "ftp"}, config.ErrModeUnsupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := gen.RunSync(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunSync_WithReminders(t *testing.T) {
	gen := &engine.Generator{
		Clock:   day(2025, time.June, 1),
		Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:Alarm Test\nBDAY:1990-01-01\nEND:VCARD"),
	}

	icsData, _, _, err := gen.RunSync(context.Background(), engine.SyncConfig{
		Mode:            config.SourceModeWeb,
		WebURL:          "http://test.local",
		ReminderTrigger: "-P1D",
	})
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
}

func TestRunSync_FutureBirth(t *testing.T) {
	// 2027-01-01 falls in 5787, two Hebrew years after today.
	gen := &engine.Generator{
		Clock:   day(2025, time.January, 1),
		Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:Future Baby\nBDAY:2027-01-01\nEND:VCARD"),
	}

	icsData, entries, _, err := gen.RunSync(context.Background(), engine.SyncConfig{Mode: config.SourceModeWeb, WebURL: "http://test.local"})
	require.NoError(t, err)

	assert.Equal(t, config.StubVCalendar, string(icsData), "No events yields the stub calendar")
	require.Len(t, entries, 1)
	assert.False(t, entries[0].HasNext)
}

func TestRunSync_DateFormats_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		bdayValue string
		expectEvt bool
	}{
		{"ISO8601 Standard", "1990-10-25", true},
		{"Basic Format", "19901025", true},
		{"RFC3339", "1990-10-25T00:00:00Z", true},
		{"Truncated (Month-Day)", "--10-25", false},
		{"Truncated Basic", "--1025", false},
		{"Garbage Data", "not-a-date", false},
		{"Empty Date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &engine.Generator{
				Clock:   day(2025, time.January, 1),
				Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bdayValue + "\nEND:VCARD"),
			}

			ics, _, _, _ := gen.RunSync(context.Background(), engine.SyncConfig{Mode: config.SourceModeWeb, WebURL: "http://x"})

			icsStr := string(ics)
			if tt.expectEvt {
				assert.Contains(t, icsStr, "BEGIN:VEVENT", "Valid date should produce an event")
			} else {
				assert.NotContains(t, icsStr, "BEGIN:VEVENT", "Dates without a year are skipped")
			}
		})
	}
}

func TestRunSync_SanitizesNames(t *testing.T) {
	gen := &engine.Generator{
		Clock:   day(2025, time.January, 1),
		Fetcher: fetcherFor("BEGIN:VCARD\nVERSION:3.0\nFN:<script>x</script>Dan O'Neil\nBDAY:2000-01-01\nEND:VCARD"),
	}

	_, entries, _, err := gen.RunSync(context.Background(), engine.SyncConfig{Mode: config.SourceModeWeb, WebURL: "http://x"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dan O'Neil", entries[0].Name)
}

func TestRunSync_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	path := writeFile(t, "empty.vcf", "")
	cancel()

	gen := &engine.Generator{Clock: MockClock{CurrentTime: time.Now()}}

	_, _, _, err := gen.RunSync(ctx, engine.SyncConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	assert.Equal(t, context.Canceled, err, "Should return context canceled error")
}

// -----------------------------------------------------------------------------
// RunSync: anniversaries file
// -----------------------------------------------------------------------------

func TestRunSync_AnniversariesFile(t *testing.T) {
	path := writeFile(t, "anniversaries.toml", anniversariesTOML)
	gen := &engine.Generator{Clock: day(2025, time.January, 1)}

	icsData, entries, _, err := gen.RunSync(context.Background(), engine.SyncConfig{Anniversaries: path})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	icsStr := string(icsData)
	// Died on Yom Kippur 5784: no yahrzeit in 5784 itself.
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20230925")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241012")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251002")
	assert.Contains(t, icsStr, "SUMMARY:Yahrzeit: Sarah Imenu (1)")
	assert.Contains(t, icsStr, "SUMMARY:Yahrzeit: Sarah Imenu (2)")

	sarah := entries[0]
	assert.Equal(t, config.KindYahrzeit, sarah.Kind)
	assert.Equal(t, 2, sarah.CountNext)
	assert.True(t, sarah.Next.Equal(hebcal.MustFromGregorian(2025, 10, 2)))

	// Born on Purim of Adar II 5784; the common year 5785 keeps the last Adar.
	levi := entries[1]
	assert.Equal(t, "Levi", levi.Name)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240324")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250314")
	assert.True(t, levi.Next.Equal(hebcal.MustFromGregorian(2025, 3, 14)))
	assert.Equal(t, 1, levi.CountNext)
}

func TestParseAnniversaries(t *testing.T) {
	sources, err := engine.ParseAnniversaries(strings.NewReader(anniversariesTOML))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "Sarah Imenu", sources[0].Name)
	assert.Equal(t, config.KindYahrzeit, sources[0].Kind)
	assert.True(t, sources[0].Origin.Equal(hebcal.MustFromHebrew(5784, hebcal.Tishrei, 10)))

	assert.Equal(t, config.KindBirthday, sources[1].Kind, "Kind defaults to birthday")
	assert.True(t, sources[1].Origin.Equal(hebcal.MustFromHebrew(5784, hebcal.AdarII, 14)))
}

func TestParseAnniversaries_AfterSunset(t *testing.T) {
	sources, err := engine.ParseAnniversaries(strings.NewReader(`
[[anniversary]]
name = "Night"
date = 2023-09-24
after_sunset = true
`))
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.True(t, sources[0].Origin.Equal(hebcal.MustFromHebrew(5784, hebcal.Tishrei, 10)))
}

func TestParseAnniversaries_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"Unknown kind", "[[anniversary]]\nname = \"A\"\ndate = 2000-01-01\nkind = \"wedding\"\n", config.ErrAnnivKind},
		{"Missing date", "[[anniversary]]\nname = \"A\"\n", config.ErrDateParse},
		{"Unknown field", "[[anniversary]]\nname = \"A\"\ndate = 2000-01-01\nyear = 1\n", config.ErrAnnivParse},
		{"Bad Hebrew date", "[[anniversary]]\nname = \"A\"\nhebrew = \"5785-13-01\"\n", hebcal.ErrInvalidMonth.Error()},
		{"Malformed TOML", "[[anniversary]\n", config.ErrAnnivParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ParseAnniversaries(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadAnniversaries_MissingFile(t *testing.T) {
	_, err := engine.LoadAnniversaries(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAnnivRead)
}

func TestParseHebrewDate(t *testing.T) {
	d, err := engine.ParseHebrewDate("5785-7-1")
	require.NoError(t, err)
	assert.True(t, d.Equal(hebcal.MustFromGregorian(2024, 10, 3)))

	_, err = engine.ParseHebrewDate("Tishrei 1")
	assert.Error(t, err)
}
