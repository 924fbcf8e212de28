package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"millions", "1500000", "Rp 1.500.000"},
		{"thousands", "2500", "Rp 2.500"},
		{"below a thousand", "999", "Rp 999"},
		{"zero", "0", "Rp 0"},
		{"empty", "", "Rp 0"},
		{"non-numeric", "abc", "Rp 0"},
		{"mixed characters", "12a34b5", "Rp 12.345"},
		{"leading zeros", "000123", "Rp 123"},
		{"already formatted", "Rp 1.500.000", "Rp 1.500.000"},
		{"decimal point is not a digit", "12.50", "Rp 1.250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.raw))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	for _, raw := range []string{"1", "1000", "987654321", ""} {
		once := Format(raw)
		assert.Equal(t, once, Format(once), "reformatting %q", raw)
	}
}

func TestUnformat(t *testing.T) {
	assert.Equal(t, "1500000", Unformat("Rp 1.500.000"))
	assert.Equal(t, "1500000", Unformat(Format("1500000")))
	assert.Equal(t, "", Unformat("Rp "))
	assert.Equal(t, "", Unformat(""))
	assert.Equal(t, "42", Unformat(" 4-2 "))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"whole", 1500000, "Rp 1.500.000"},
		{"rounds up", 109.95, "Rp 110"},
		{"rounds half away from zero", 22.5, "Rp 23"},
		{"rounds down", 7.49, "Rp 7"},
		{"negative clamps to zero", -15, "Rp 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "", Mask("Rp "))
	assert.Equal(t, "Rp 1", Mask("1"))
	assert.Equal(t, "Rp 15.000", Mask("Rp 1.5000"))
}

func TestParse(t *testing.T) {
	v, err := Parse("Rp 1.500.000")
	require.NoError(t, err)
	assert.Equal(t, float64(1500000), v)

	v, err = Parse("")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestNewFormatter(t *testing.T) {
	f, err := NewFormatter("en-US", "$")
	require.NoError(t, err)
	assert.Equal(t, "$ 1,500,000", f.Format("1500000"))

	bare, err := NewFormatter("id-ID", "")
	require.NoError(t, err)
	assert.Equal(t, "1.500.000", bare.Format("1500000"))

	_, err = NewFormatter("not a locale!", "Rp")
	assert.Error(t, err)
}

func TestFormat_BeyondInt64KeepsDigits(t *testing.T) {
	raw := "12345678901234567890123"

	got := Format(raw)
	assert.Equal(t, "Rp 12.345.678.901.234.567.890.123", got)
	assert.Equal(t, raw, Unformat(got))

	f, err := NewFormatter("en-US", "$")
	require.NoError(t, err)
	assert.Equal(t, "$ 9,223,372,036,854,775,808", f.Format("9223372036854775808"))
}

func TestGroup(t *testing.T) {
	tests := []struct {
		digits string
		want   string
	}{
		{"1", "1"},
		{"123", "123"},
		{"1234", "1.234"},
		{"123456", "123.456"},
		{"1234567", "1.234.567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, group(tt.digits, "."), tt.digits)
	}
}
