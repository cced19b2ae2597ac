package format_test

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// expectedKeys lists every message the formatter and the feed can ask for.
func expectedKeys() []string {
	keys := []string{
		config.TKeyMonthAdar1,
		config.TKeyMonthAdar2,
		config.TKeyNoDafToday,
		config.TKeyDateFormat,
		config.TKeyRoshChodesh,
		config.TKeyChanukahDay,
		config.TKeyOmerDay,
		config.TKeyDaf,
		config.TKeyMolad,
		config.TKeyEvtParsha,
		config.TKeyEvtSpecialShabbos,
		config.TKeyEvtDafBavli,
		config.TKeyEvtDafYerushalmi,
		config.TKeyEvtBirthday,
		config.TKeyEvtBirthdayAge,
		config.TKeyEvtYahrzeit,
		config.TKeyEvtYahrzeitYears,
	}
	for m := hebcal.Nissan; m <= hebcal.Adar; m++ {
		keys = append(keys, config.TKeyMonthPrefix+strings.ToLower(m.String()))
	}
	for d := 0; d < 7; d++ {
		keys = append(keys, config.TKeyDowPrefix+strconv.Itoa(d))
	}
	for _, y := range hebcal.YomTovs() {
		keys = append(keys, config.TKeyYomTovPrefix+y.String())
	}
	for _, p := range hebcal.Parshiyos() {
		keys = append(keys, config.TKeyParshaPrefix+p.String())
	}
	for i := 0; i < hebcal.BavliTractates; i++ {
		keys = append(keys, config.TKeyBavliPrefix+strconv.Itoa(i))
	}
	for i := 0; i < hebcal.YerushalmiTractates; i++ {
		keys = append(keys, config.TKeyYerushalmiPrefix+strconv.Itoa(i))
	}
	return keys
}

// TestI18nIntegrity ensures that both catalogs define exactly the keys the code uses.
func TestI18nIntegrity(t *testing.T) {
	want := expectedKeys()

	for _, lang := range []string{config.LangEnglish, config.LangHebrew} {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile("locales/active." + lang + ".json")
			require.NoError(t, err, "Must load active.%s.json", lang)

			var catalog map[string]string
			require.NoError(t, json.Unmarshal(content, &catalog), "JSON must be a flat string map")

			got := make([]string, 0, len(catalog))
			for k, v := range catalog {
				got = append(got, k)
				assert.NotEmpty(t, v, "Key '%s' has an empty message", k)
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}
