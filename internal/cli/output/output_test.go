package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fedctl/pkg/apiclient"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "table", want: FormatTable},
		{input: "", want: FormatTable},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: "  yaml  ", want: FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinterSeparatesNotices(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, FormatJSON, false).WithErrWriter(&errOut)

	require.NoError(t, p.Print(map[string]int{"n": 1}))
	p.Success("Trust anchor created")
	p.Warning("careful")

	assert.JSONEq(t, `{"n":1}`, out.String())
	assert.Equal(t, "Trust anchor created\ncareful\n", errOut.String())
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable, true).Error("boom")
	assert.Equal(t, "\033[31mboom\033[0m\n", buf.String())
}

func TestPrintJSONKeepsURLs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]string{"u": "https://a.example/?x=1&y=2"}))
	assert.Contains(t, buf.String(), "https://a.example/?x=1&y=2")
}

func TestPrintYAMLUsesJSONNames(t *testing.T) {
	rec := apiclient.OpenIDFederation{
		InternalID:                       "abc",
		TrustAnchor:                      "https://ta.example",
		EntityTypes:                      []string{"OPENID_PROVIDER"},
		ClientRegistrationTypesSupported: []string{"EXPLICIT"},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintYAML(&buf, rec))

	out := buf.String()
	assert.Contains(t, out, "internalId: abc")
	assert.Contains(t, out, "trustAnchor: https://ta.example")
	assert.Contains(t, out, "- OPENID_PROVIDER")
	assert.False(t, strings.Contains(out, "{"), "block style only")
}

func TestPrintTable(t *testing.T) {
	data := NewTableData("ID", "TRUST ANCHOR")
	data.AddRow("abc", "https://ta.example")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, data))

	assert.Contains(t, buf.String(), "TRUST ANCHOR")
	assert.Contains(t, buf.String(), "https://ta.example")
}

func TestPrinterTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable, false).Print([]string{"a"}))
	assert.JSONEq(t, `["a"]`, buf.String())
}

func TestKeyValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, KeyValue(&buf, [][2]string{{"Realm", "master"}, {"Enabled", "true"}}))
	assert.Contains(t, buf.String(), "Realm")
	assert.Contains(t, buf.String(), "master")
}
