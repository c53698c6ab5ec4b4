package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestT(t *testing.T) {
	t.Cleanup(func() { SetLanguage("") })

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{name: "english default", lang: "en_US.UTF-8", key: "table.property.yes", want: "Yes"},
		{name: "posix locale", lang: "de_DE.UTF-8", key: "table.property.yes", want: "Ja"},
		{name: "bcp47 tag", lang: "fr-CA", key: "table.property.no", want: "Non"},
		{name: "unknown key", lang: "cs_CZ", key: "does.not.exist", want: "Yes"},
		{name: "unsupported language", lang: "ja_JP", key: "table.property.no", want: "No"},
		{name: "C locale", lang: "C", key: "table.property.yes", want: "Yes"},
		{name: "garbage", lang: "???", key: "table.property.yes", want: "Yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLanguage(tt.lang)
			def := "Yes"
			if tt.key == "table.property.no" {
				def = "No"
			}
			require.Equal(t, tt.want, T(tt.key, def))
		})
	}
}

func TestSetLanguageReturnsSupportedTag(t *testing.T) {
	t.Cleanup(func() { SetLanguage("") })

	require.Equal(t, language.German, SetLanguage("de_AT"))
	require.Equal(t, language.German, Language())
	require.Equal(t, language.English, SetLanguage("xx"))
}

func TestFromEnv(t *testing.T) {
	t.Cleanup(func() { SetLanguage("") })

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "es_ES.UTF-8")
	t.Setenv("LANG", "de_DE.UTF-8")

	require.Equal(t, language.Spanish, FromEnv())
	require.Equal(t, "Sí", T("table.property.yes", "Yes"))
}
