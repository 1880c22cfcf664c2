package tagrelease

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr error
	}{
		{name: "simple", input: "1.2.3", want: Version{1, 2, 3}},
		{name: "zeros", input: "0.0.0", want: Version{0, 0, 0}},
		{name: "double digits", input: "10.20.30", want: Version{10, 20, 30}},
		{name: "surrounding whitespace", input: "  1.2.3\n", want: Version{1, 2, 3}},
		{name: "too few components", input: "1.2", wantErr: errVersionArity},
		{name: "too many components", input: "1.2.3.4", wantErr: errVersionArity},
		{name: "empty", input: "", wantErr: errVersionArity},
		{name: "v prefix", input: "v1.2.3", wantErr: errVersionNonNumeric},
		{name: "non-numeric patch", input: "1.2.x", wantErr: errVersionNonNumeric},
		{name: "empty component", input: "1..3", wantErr: errVersionNonNumeric},
		{name: "pre-release suffix", input: "1.2.3-beta", wantErr: errVersionNonNumeric},
		{name: "comma separated", input: "1,2,3", wantErr: errVersionArity},
		{name: "negative", input: "1.-2.3", wantErr: errVersionNegative},
		{name: "negative zero", input: "1.-0.3", wantErr: errVersionNegative},
		{name: "plus sign", input: "1.+2.3", wantErr: errVersionNonNumeric},
		{name: "leading plus", input: "+1.2.3", wantErr: errVersionNonNumeric},
		{name: "leading zero", input: "01.2.3", wantErr: errVersionLeadingZero},
		{name: "leading zero in patch", input: "1.2.03", wantErr: errVersionLeadingZero},
		{name: "inner space", input: "1. 2.3", wantErr: errVersionNonNumeric},
		{name: "non-ascii digit", input: "1.٢.3", wantErr: errVersionNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0", "1.2.3", "2.0.0", "10.0.1", "123.456.789"} {
		v, err := ParseVersion(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, v.String())
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 2, 3}, Version{1, 2, 3}, 0},
		{Version{1, 2, 4}, Version{1, 2, 3}, 1},
		{Version{1, 3, 0}, Version{1, 2, 9}, 1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		{Version{1, 9, 9}, Version{2, 0, 0}, -1},
		{Version{1, 10, 0}, Version{1, 9, 0}, 1},
		{Version{0, 0, 1}, Version{0, 0, 0}, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want > 0, tt.a.GreaterThan(tt.b), "%s > %s", tt.a, tt.b)
	}
}

// tupleGreater is the reference ordering the validator must agree with.
func tupleGreater(a, b Version) bool {
	if a.Major != b.Major {
		return a.Major > b.Major
	}
	if a.Minor != b.Minor {
		return a.Minor > b.Minor
	}
	return a.Patch > b.Patch
}

func TestValidateCandidateMatchesTupleOrder(t *testing.T) {
	var versions []Version
	for major := 0; major < 3; major++ {
		for minor := 0; minor < 3; minor++ {
			for patch := 0; patch < 3; patch++ {
				versions = append(versions, Version{major, minor, patch})
			}
		}
	}

	for _, a := range versions {
		for _, b := range versions {
			err := ValidateCandidate(a, b)
			if tupleGreater(a, b) {
				assert.NoError(t, err, "%s should be accepted over %s", a, b)
			} else {
				assert.ErrorIs(t, err, ErrValidation, "%s should be rejected over %s", a, b)
			}
		}
	}
}

func TestValidateCandidateMessages(t *testing.T) {
	tests := []struct {
		name      string
		candidate Version
		current   Version
		contains  string
	}{
		{"same", Version{1, 2, 3}, Version{1, 2, 3}, "same as the current version"},
		{"major decreased", Version{1, 9, 9}, Version{2, 0, 0}, "major version 1 is less"},
		{"minor decreased", Version{1, 1, 9}, Version{1, 2, 0}, "minor version 1 is less"},
		{"patch decreased", Version{1, 2, 2}, Version{1, 2, 3}, "patch version 2 is less"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidate(tt.candidate, tt.current)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			var re *Error
			require.True(t, errors.As(err, &re))
			assert.Equal(t, KindValidation, re.Kind)
		})
	}
}

func TestParseCandidate(t *testing.T) {
	v, err := ParseCandidate("1.2.4")
	require.NoError(t, err)
	assert.Equal(t, Version{1, 2, 4}, v)

	for _, bad := range []string{"1.2", "1.2.3.4", "a.b.c", "1.2.3-rc1", ""} {
		_, err := ParseCandidate(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
		assert.NotErrorIs(t, err, ErrMalformed, bad)
	}
}
