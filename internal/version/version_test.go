package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"0.1.0", "1.2.3", "0.1.0-beta", "10.20.30-rc.1"} {
		v, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, v.String())
	}
}

func TestParseStripsPrefix(t *testing.T) {
	v, err := Parse("v0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", v.String())
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "0.1", "1.2.3.4", "abc", "0.1.x"} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestOrdering(t *testing.T) {
	ordered := []string{
		"0.1.0-alpha",
		"0.1.0-beta",
		"0.1.0",
		"0.1.1",
		"0.2.0",
		"1.0.0-rc",
		"1.0.0",
	}
	for i := 0; i < len(ordered)-1; i++ {
		lo := MustParse(ordered[i])
		hi := MustParse(ordered[i+1])
		assert.True(t, lo.Less(hi), "%s < %s", lo, hi)
		assert.False(t, hi.Less(lo), "%s >= %s", hi, lo)
	}
	assert.True(t, MustParse("0.1.0").Equal(MustParse("v0.1.0")))
}

func TestInRange(t *testing.T) {
	min := MustParse("0.1.0")
	max := MustParse("0.2.0")

	assert.True(t, MustParse("0.1.0").InRange(min, max))
	assert.True(t, MustParse("0.1.9").InRange(min, max))
	assert.False(t, MustParse("0.2.0").InRange(min, max), "max is exclusive")
	assert.False(t, MustParse("0.0.9").InRange(min, max))

	assert.True(t, MustParse("9.9.9").InRange(min, nil))
	assert.True(t, MustParse("0.0.1").InRange(nil, max))
}

func TestParseRangeShorthands(t *testing.T) {
	caret, err := ParseRange("^0.1.0")
	require.NoError(t, err)
	tilde, err := ParseRange("~0.1.0")
	require.NoError(t, err)
	explicit, err := ParseRange(">=0.1.0 <0.2.0")
	require.NoError(t, err)

	for _, r := range []*Range{caret, tilde, explicit} {
		assert.True(t, r.Min.Equal(MustParse("0.1.0")))
		assert.True(t, r.Max.Equal(MustParse("0.2.0")))
	}
}

func TestParseRangeOperators(t *testing.T) {
	r, err := ParseRange(">0.1.0")
	require.NoError(t, err)
	assert.True(t, r.Min.Equal(MustParse("0.1.1")), "strict lower bound shifts up a patch")
	assert.Nil(t, r.Max)

	r, err = ParseRange("<=0.1.0")
	require.NoError(t, err)
	assert.Nil(t, r.Min)
	assert.True(t, r.Max.Equal(MustParse("0.1.1")))

	for _, s := range []string{"0.1.0", "=0.1.0"} {
		r, err = ParseRange(s)
		require.NoError(t, err, s)
		assert.True(t, r.Min.Equal(MustParse("0.1.0")))
		assert.True(t, r.Max.Equal(MustParse("0.1.1")))
	}
}

func TestRangeContains(t *testing.T) {
	r, err := ParseRange("^0.1.0")
	require.NoError(t, err)

	assert.True(t, r.Contains(MustParse("0.1.0")))
	assert.True(t, r.Contains(MustParse("0.1.5")))
	assert.False(t, r.Contains(MustParse("0.2.0")))
	assert.False(t, r.Contains(MustParse("0.0.9")))
}

func TestParseRangeInvalid(t *testing.T) {
	for _, s := range []string{"", "banana", ">="} {
		_, err := ParseRange(s)
		assert.Error(t, err, s)
	}
}
