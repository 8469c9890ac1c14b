package pkgconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCompareEqual(t *testing.T) {
	assert.Equal(t, 0, VersionCompare("1.2.3", "1.2.3"))
}

func TestVersionCompareNumericBeatsShorter(t *testing.T) {
	assert.True(t, VersionCompare("1.10", "1.9") > 0)
}

func TestVersionCompareNumericBeatsAlphaAtSamePosition(t *testing.T) {
	assert.True(t, VersionCompare("1.2a", "1.2.0") < 0 && VersionCompare("1.2.0", "1.2a") > 0)
}

func TestVersionCompareLeadingZerosIgnored(t *testing.T) {
	assert.Equal(t, 0, VersionCompare("1.02", "1.2"))
}

func TestSatisfiesGreaterEqual(t *testing.T) {
	assert.True(t, Satisfies(GreaterEqual, "2.0", "1.5"))
	assert.False(t, Satisfies(GreaterEqual, "1.0", "1.5"))
}

func TestSatisfiesAny(t *testing.T) {
	assert.True(t, Satisfies(Any, "0.1", "99.0"))
}
