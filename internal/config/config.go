package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Luach/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Luach"
	AppID             = "com.github.tartampluch.go-luach"
	KeyringService    = "com.github.tartampluch.go-luach"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"

	// Configuration sources, lowest precedence first.
	ConfigFileName     = ".luach"
	ConfigFileType     = "toml"
	EnvFileName        = ".env"
	EnvPrefix          = "LUACH"
	EnvCardDAVPassword = "LUACH_CARDDAV_PASSWORD"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands & Flags
// -----------------------------------------------------------------------------

const (
	CmdRoot    = "go-luach"
	CmdConvert = "convert"
	CmdInfo    = "info [date]"
	CmdFeed    = "feed"
	CmdServe   = "serve"
	CmdVersion = "version"

	CmdDescRoot    = "Hebrew calendar conversions, holidays, parsha and Daf Yomi"
	CmdDescConvert = "Convert a date between the Gregorian and Hebrew calendars"
	CmdDescInfo    = "Print the calendar metadata of one day (default today)"
	CmdDescFeed    = "Write an iCalendar feed of calendar events"
	CmdDescServe   = "Serve the calendar feed and JSON API over HTTP"
	CmdDescVersion = "Show application version"

	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagIsrael     = "israel"
	FlagLang       = "lang"
	FlagGregorian  = "gregorian"
	FlagHebrewDate = "hebrew"
	FlagFrom       = "from"
	FlagDays       = "days"
	FlagOut        = "out"
	FlagPort       = "port"

	FlagDescConfig     = "config file (default .luach.toml)"
	FlagDescDebug      = "Enable debug logging"
	FlagDescIsrael     = "Use the Eretz Yisrael holiday and parsha schedule"
	FlagDescLang       = "Label language (en or he)"
	FlagDescGregorian  = "Gregorian date to convert (YYYY-MM-DD)"
	FlagDescHebrewDate = "Hebrew date to convert (YYYY-MM-DD, months counted from Nissan)"
	FlagDescFrom       = "First Gregorian day of the feed (default today)"
	FlagDescDays       = "Number of days covered by the feed"
	FlagDescOut        = "Output file (default stdout)"
	FlagDescPort       = "HTTP port"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	ArgToday         = "today"

	// Output of the convert command
	OutGregorian  = "Gregorian: %s (%s)\n"
	OutHebrew     = "Hebrew:    %s\n"
	OutJSONIndent = "  "
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyLang          = "lang"
	KeyIsrael        = "israel"
	KeyDebug         = "debug"
	KeyAnniversaries = "anniversaries"

	KeyFormatGershayim  = "format.gershayim"
	KeyFormatLongYears  = "format.long_years"
	KeyFormatFinalForms = "format.final_forms"

	KeyServerBindAddr   = "server.bind_addr"
	KeyServerPort       = "server.port"
	KeyServerRefreshMin = "server.refresh_min"
	KeyServerRateLimit  = "server.rate_limit"
	KeyServerRateBurst  = "server.rate_burst"

	KeyFeedPastDays      = "feed.past_days"
	KeyFeedFutureDays    = "feed.future_days"
	KeyFeedYomTov        = "feed.yomtov"
	KeyFeedRoshChodesh   = "feed.rosh_chodesh"
	KeyFeedParsha        = "feed.parsha"
	KeyFeedOmer          = "feed.omer"
	KeyFeedDafBavli      = "feed.daf_bavli"
	KeyFeedDafYerushalmi = "feed.daf_yerushalmi"
	KeyFeedMolad         = "feed.molad"

	KeySourceMode        = "source.mode"
	KeySourcePath        = "source.path"
	KeySourceURL         = "source.url"
	KeySourceUser        = "source.user"
	KeySourceAfterSunset = "source.after_sunset"

	KeyReminderEnabled   = "reminder.enabled"
	KeyReminderValue     = "reminder.value"
	KeyReminderUnit      = "reminder.unit"
	KeyReminderDirection = "reminder.direction"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// Prefixes are joined with hebcal enum keys or table indexes.
	TKeyMonthPrefix      = "month_"
	TKeyDowPrefix        = "dow_"
	TKeyYomTovPrefix     = "yomtov_"
	TKeyParshaPrefix     = "parsha_"
	TKeyBavliPrefix      = "bavli_"
	TKeyYerushalmiPrefix = "yerushalmi_"

	TKeyMonthAdar1 = "month_adar_1"
	TKeyMonthAdar2 = "month_adar_2"
	TKeyNoDafToday = "no_daf_today"

	// Templates
	TKeyDateFormat  = "date_format"  // Requires Day, Month, Year
	TKeyRoshChodesh = "rosh_chodesh" // Requires Month
	TKeyChanukahDay = "chanukah_day" // Requires Day
	TKeyOmerDay     = "omer_day"     // Requires Day
	TKeyDaf         = "daf"          // Requires Tractate, Page
	TKeyMolad       = "molad"        // Requires Month, Weekday, Hours, Minutes, Chalakim

	// Event summaries
	TKeyEvtParsha         = "event_parsha"          // Requires Parsha
	TKeyEvtSpecialShabbos = "event_special_shabbos" // Requires Parsha
	TKeyEvtDafBavli       = "event_daf_bavli"       // Requires Daf
	TKeyEvtDafYerushalmi  = "event_daf_yerushalmi"  // Requires Daf
	TKeyEvtBirthday       = "event_hebrew_birthday"
	TKeyEvtBirthdayAge    = "event_hebrew_birthday_age" // Requires Name, Age
	TKeyEvtYahrzeit       = "event_yahrzeit"
	TKeyEvtYahrzeitYears  = "event_yahrzeit_years" // Requires Name, Years
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone        = ""
	SourceModeWeb         = "web"
	SourceModeLocal       = "local"
	LangEnglish           = "en"
	LangHebrew            = "he"
	DefaultLanguage       = LangEnglish
	DefaultPort           = 18080
	DefaultRefreshMin     = 60
	DefaultFeedPastDays   = 30
	DefaultFeedFutureDays = 365
	DefaultCLIFeedDays    = 365
	DefaultRateLimit      = 10.0 // requests per second
	DefaultRateBurst      = 20
	DefaultReminderValue  = 1
	UIDSalt               = "go-luach-v1" // Salt for deterministic UID generation

	// Anniversary kinds, as written in the anniversaries file.
	KindBirthday = "birthday"
	KindYahrzeit = "yahrzeit"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOTimePrefix     = "T"
	ISOHour           = "H"
	ISOMinute         = "M"

	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Luach//Engine//EN"
	ICalCalName   = "Luach"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goluach"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropTransp      = "TRANSP"
	TranspFree      = "TRANSPARENT"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 12 * time.Hour
)

// Event kinds. They name the iCalendar category and seed the event UID.
const (
	EventKindYomTov        = "yomtov"
	EventKindRoshChodesh   = "rosh_chodesh"
	EventKindParsha        = "parsha"
	EventKindSpecialParsha = "special_shabbos"
	EventKindOmer          = "omer"
	EventKindDafBavli      = "daf_bavli"
	EventKindDafYerushalmi = "daf_yerushalmi"
	EventKindMolad         = "molad"
	EventKindBirthday      = "hebrew_birthday"
	EventKindYahrzeit      = "yahrzeit"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and CLI input
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// FormatHebrewDateInput reads "year-month-day", months numbered from Nissan.
	FormatHebrewDateInput = "%d-%d-%d"

	// Limits
	MinPort         = 1
	MaxPort         = 65535
	MaxFeedDays     = 3660
	MaxHebrewNumber = 9999

	// UID Generation
	FormatUIDName  = "%s|%s|%s"
	FormatUID      = "%s@%s"
	FormatAnnivKey = "%s|%s|%d"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	WatchDebounce       = 500 * time.Millisecond
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	PortHTTP            = 80
	PortHTTPS           = 443
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Routes & Parameters
// -----------------------------------------------------------------------------

const (
	RouteCalendar = "/calendar.ics"
	RouteAPI      = "/api/v1"
	RouteDay      = "/day/{date}"
	RouteConvert  = "/convert"
	RouteHealth   = "/healthz"
	RouteMetrics  = "/metrics"

	URLParamDate = "date"
	QueryYear    = "year"
	QueryMonth   = "month"
	QueryDay     = "day"
	QueryIsrael  = "israel"
	QueryLang    = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Metrics (Prometheus)
// -----------------------------------------------------------------------------

const (
	MetricNamespace        = "luach"
	MetricRequestsTotal    = "http_requests_total"
	MetricRateLimitedTotal = "http_rate_limited_total"
	MetricFeedRebuilds     = "feed_rebuilds_total"
	MetricFeedBuildSeconds = "feed_build_duration_seconds"
	MetricFeedEvents       = "feed_events"

	LabelRoute  = "route"
	LabelStatus = "status_code"
	LabelResult = "result"
	ResultOK    = "ok"
	ResultError = "error"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrConfigRead      = "failed to read configuration file"
	ErrConfigDecode    = "failed to decode configuration"
	ErrConfigInvalid   = "invalid configuration"
	ErrLangInvalid     = "language is not a valid BCP 47 tag"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrRefreshInterval = "refresh interval must be positive"
	ErrRateLimit       = "rate limit and burst must be positive"
	ErrFeedRange       = "feed range must cover between 1 and 3660 days"
	ErrReminderUnit    = "reminder unit must be d, h or m"
	ErrReminderDir     = "reminder direction must be before or after"
	ErrReminderValue   = "reminder value must not be negative"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrRequestBuild    = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrAnnivRead       = "failed to read anniversaries file"
	ErrAnnivParse      = "failed to parse anniversaries file"
	ErrAnnivKind       = "unknown anniversary kind"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrDateRange       = "date is outside the supported range"
	ErrFeedBuild       = "failed to build calendar feed"
	ErrHebrewNumber    = "number is outside 0..9999"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrWriteFile       = "failed to write output file"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrWatcher         = "file watcher failed"
	ErrBindFlag        = "failed to bind flag"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgRateLimited  = "Too many requests, please retry later."
	HTTPMsgBadDate      = "Invalid date, expected YYYY-MM-DD or today."
	HTTPMsgBadHebrew    = "Invalid Hebrew date."
	HTTPMsgOK           = "ok"

	HTTPCodeRateLimited = "RATE_LIMITED"
	HTTPCodeBadRequest  = "BAD_REQUEST"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackName = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted    = "Synchronization started"
	MsgSyncFinished   = "Synchronization finished"
	MsgSyncFailed     = "Synchronization failed"
	MsgFeedBuilt      = "Calendar feed built"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgAppStop        = "Application stopped gracefully"
	MsgAppStarting    = "Starting application"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedNoYear  = "Skipping birthday without a year"
	MsgGenSuccess     = "Calendar generation successful"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgRateLimited    = "Request rejected by rate limiter"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval from keyring failed, using environment"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgDownloadStart  = "Initiating vCard download"
	MsgDownloading    = "vCards downloading"
	MsgBadStatus      = "Server returned error status"
	MsgWatchStart     = "Watching source files"
	MsgWatchEvent     = "Source file changed"
	MsgWatchSkip      = "Cannot watch source file"
	MsgConfigLoaded   = "Configuration loaded"
	MsgConfigNoFile   = "No configuration file found, using defaults"
	MsgFeedWritten    = "Calendar feed written"
	MsgAnniversaryDay = "Anniversary found today"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "anniversaries_found"
	LogKeyToday     = "anniversaries_today"
	LogKeyEvents    = "events"
	LogKeyDays      = "days"
	LogKeyFrom      = "from"
	LogKeySizeBytes = "size_bytes"
	LogKeyLength    = "content_length"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyKind      = "kind"
	LogKeyOp        = "op"
	LogKeyRoute     = "route"
	LogKeyRemote    = "remote_addr"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompWatcher = "watcher"
	CompConfig  = "config"
	CompMain    = "main"
	CompI18n    = "i18n"
)
