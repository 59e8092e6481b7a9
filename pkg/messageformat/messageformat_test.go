package messageformat_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/messageformat"
)

func format(t *testing.T, locale, pattern string, args map[int]any) string {
	t.Helper()
	out, err := messageformat.Format(locale, pattern, args)
	require.NoError(t, err)
	return out
}

func TestFormat_Simple(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		args     map[int]any
		expected string
	}{
		{"plain text", "Hello world", nil, "Hello world"},
		{"string argument", "Hello {0}", map[int]any{0: "Ana"}, "Hello Ana"},
		{"repeated argument", "{0} and {0}", map[int]any{0: "x"}, "x and x"},
		{"missing argument", "Hello {0}, {1}", map[int]any{0: "Ana"}, "Hello Ana, {1}"},
		{"nil value", "[{0}]", map[int]any{0: nil}, "[]"},
		{"bool", "{0}", map[int]any{0: true}, "true"},
		{"integer", "{0}", map[int]any{0: 1200}, "1,200"},
		{"float", "{0}", map[int]any{0: 3.5}, "3.5"},
		{"json number", "{0}", map[int]any{0: json.Number("42")}, "42"},
		{"whitespace in argument", "{ 0 }", map[int]any{0: "x"}, "x"},
		{"unicode text", "Привет, {0}!", map[int]any{0: "мир"}, "Привет, мир!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, format(t, "en", tt.pattern, tt.args))
		})
	}
}

func TestFormat_Apostrophes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		expected string
	}{
		{"doubled apostrophe", "It''s {0}", "It's x"},
		{"lone apostrophe", "It's {0}", "It's x"},
		{"quoted brace", "'{'{0}'}'", "{x}"},
		{"quoted literal", "'{name}' is {0}", "{name} is x"},
		{"apostrophe inside quote", "'{it''s}'", "{it's}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, format(t, "en", tt.pattern, map[int]any{0: "x"}))
		})
	}
}

func TestFormat_Number(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		locale   string
		pattern  string
		value    any
		expected string
	}{
		{"decimal en", "en", "{0,number}", 1234.5, "1,234.5"},
		{"decimal de", "de", "{0,number}", 1234.5, "1.234,5"},
		{"integer", "en", "{0,number,integer}", 1234.4, "1,234"},
		{"percent", "en", "{0,number,percent}", 0.25, "25%"},
		{"uint", "en", "{0,number}", uint(7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, format(t, tt.locale, tt.pattern, map[int]any{0: tt.value}))
		})
	}
}

func TestFormat_Plural(t *testing.T) {
	t.Parallel()

	const en = "{0,plural,=0{no files}one{# file}other{# files}}"
	const ru = "{0,plural,one{# файл}few{# файла}many{# файлов}other{# файла}}"

	tests := []struct {
		name     string
		locale   string
		pattern  string
		value    any
		expected string
	}{
		{"en exact zero", "en", en, 0, "no files"},
		{"en one", "en", en, 1, "1 file"},
		{"en other", "en", en, 1200, "1,200 files"},
		{"en fraction", "en", en, 1.5, "1.5 files"},
		{"ru one", "ru", ru, 21, "21 файл"},
		{"ru few", "ru", ru, 3, "3 файла"},
		{"ru many", "ru", ru, 5, "5 файлов"},
		{"ru fraction", "ru", ru, 1.5, "1,5 файла"},
		{"icu locale id", "ru_RU", ru, 2, "2 файла"},
		{
			"offset",
			"en",
			"{0,plural,offset:1 =0{nobody}=1{just you}one{you and # other}other{you and # others}}",
			3,
			"you and 2 others",
		},
		{
			"offset one",
			"en",
			"{0,plural,offset:1 =0{nobody}=1{just you}one{you and # other}other{you and # others}}",
			2,
			"you and 1 other",
		},
		{
			"nested select",
			"en",
			"{0,plural,one{{1,select,f{her file}other{their file}}}other{# files}}",
			1,
			"her file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, format(t, tt.locale, tt.pattern, map[int]any{0: tt.value, 1: "f"}))
		})
	}
}

func TestFormat_SelectOrdinal(t *testing.T) {
	t.Parallel()

	const pattern = "{0,selectordinal,one{#st}two{#nd}few{#rd}other{#th}}"
	tests := map[int]string{
		1:  "1st",
		2:  "2nd",
		3:  "3rd",
		4:  "4th",
		11: "11th",
		12: "12th",
		22: "22nd",
		23: "23rd",
	}

	for n, expected := range tests {
		assert.Equal(t, expected, format(t, "en", pattern, map[int]any{0: n}))
	}
}

func TestFormat_Select(t *testing.T) {
	t.Parallel()

	const pattern = "{0,select,male{He}female{She}other{They}} replied"

	assert.Equal(t, "He replied", format(t, "en", pattern, map[int]any{0: "male"}))
	assert.Equal(t, "She replied", format(t, "en", pattern, map[int]any{0: "female"}))
	assert.Equal(t, "They replied", format(t, "en", pattern, map[int]any{0: "unknown"}))
	assert.Equal(t, "They replied", format(t, "en", pattern, map[int]any{0: 5}))

	t.Run("bool key", func(t *testing.T) {
		t.Parallel()
		out := format(t, "en", "{0,select,true{yes}other{no}}", map[int]any{0: true})
		assert.Equal(t, "yes", out)
	})

	t.Run("pound outside plural is text", func(t *testing.T) {
		t.Parallel()
		out := format(t, "en", "#{0,select,other{#}}", map[int]any{0: "x"})
		assert.Equal(t, "##", out)
	})
}

func TestFormat_DateTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name     string
		locale   string
		pattern  string
		value    any
		expected string
	}{
		{"en date", "en-US", "{0,date}", ts, "03/05/2024"},
		{"en short time", "en-US", "{0,time,short}", ts, "2:07 PM"},
		{"en medium time", "en-US", "{0,time}", ts, "2:07:09 PM"},
		{"en short date", "en-US", "{0,date,short}", ts, "03/05/24"},
		{"en full date", "en-US", "{0,date,full}", ts, "03/05/2024"},
		{"en-GB short date", "en-GB", "{0,date,short}", ts, "05/03/24"},
		{"ja short date", "ja", "{0,date,short}", ts, "24/03/05"},
		{"de date", "de-DE", "{0,date,long}", ts, "05.03.2024"},
		{"de time", "de", "{0,time,short}", ts, "14:07"},
		{"ja date", "ja", "{0,date}", ts, "2024/03/05"},
		{"fallback layout", "fi", "{0,date}", ts, "2024-03-05"},
		{"epoch millis", "en", "{0,date}", int64(0), "01/01/1970"},
		{"pointer", "de", "{0,date}", &ts, "05.03.2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, format(t, tt.locale, tt.pattern, map[int]any{0: tt.value}))
		})
	}
}

func TestCompile_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
	}{
		{"unterminated argument", "Hello {0"},
		{"unmatched close", "Hello }"},
		{"named argument", "Hello {name}"},
		{"mixed argument", "Hello {0abc}"},
		{"empty argument", "Hello {}"},
		{"unknown type", "{0,money}"},
		{"unknown number style", "{0,number,currency}"},
		{"unknown date style", "{0,date,yyyy}"},
		{"plural without other", "{0,plural,one{x}}"},
		{"select without other", "{0,select,a{x}}"},
		{"bad plural keyword", "{0,plural,lots{x}other{y}}"},
		{"duplicate plural case", "{0,plural,one{x}one{y}other{z}}"},
		{"duplicate exact case", "{0,plural,=1{x}=1{y}other{z}}"},
		{"unterminated sub-message", "{0,select,other{x"},
		{"bad offset", "{0,plural,offset:x other{y}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := messageformat.New().Compile("en", tt.pattern)
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.ErrorIs(t, err, messageformat.ErrPatternSyntax)

			var mfErr *messageformat.Error
			require.True(t, errors.As(err, &mfErr))
			assert.Equal(t, messageformat.CodePatternSyntax, mfErr.Code)
			assert.Equal(t, int(messageformat.CodePatternSyntax), mfErr.ErrorCode())
			assert.GreaterOrEqual(t, mfErr.Offset, 0)
		})
	}
}

func TestCompile_InvalidLocale(t *testing.T) {
	t.Parallel()

	_, err := messageformat.New().Compile("not a locale!", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, messageformat.ErrIllegalArgument)
}

func TestCompile_EmptyLocale(t *testing.T) {
	t.Parallel()

	msg, err := messageformat.New().Compile("", "{0}")
	require.NoError(t, err)
	assert.Equal(t, "und", msg.Locale())
	assert.Equal(t, "{0}", msg.Pattern())
}

func TestMessage_FormatIllegalArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		value   any
	}{
		{"plural with string", "{0,plural,other{#}}", "many"},
		{"number with string", "{0,number}", "12"},
		{"date with string", "{0,date}", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := messageformat.New().Compile("en", tt.pattern)
			require.NoError(t, err)

			out, err := msg.Format(map[int]any{0: tt.value})
			require.Error(t, err)
			assert.Empty(t, out)
			assert.ErrorIs(t, err, messageformat.ErrIllegalArgument)

			var mfErr *messageformat.Error
			require.True(t, errors.As(err, &mfErr))
			assert.Equal(t, -1, mfErr.Offset)
		})
	}
}

func TestMessage_ConcurrentFormat(t *testing.T) {
	t.Parallel()

	msg, err := messageformat.New().Compile("en", "{0,plural,one{# item}other{# items}}")
	require.NoError(t, err)

	done := make(chan string, 50)
	for i := range 50 {
		go func() {
			out, err := msg.Format(map[int]any{0: i % 2})
			if err != nil {
				done <- err.Error()
				return
			}
			done <- out
		}()
	}
	for range 50 {
		out := <-done
		assert.Contains(t, []string{"0 items", "1 item"}, out)
	}
}

func TestEngine_Version(t *testing.T) {
	t.Parallel()
	assert.Equal(t, messageformat.Version, messageformat.New().Version())
}

func TestCode_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "PATTERN_SYNTAX", messageformat.CodePatternSyntax.String())
	assert.Equal(t, "ILLEGAL_ARGUMENT", messageformat.CodeIllegalArgument.String())
	assert.Equal(t, "Code(9)", messageformat.Code(9).String())
}
