package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigurationRejectsDuplicateName(t *testing.T) {
	c, err := NewConfiguration("cfg-dup-test")
	require.NoError(t, err)
	c.Finish()

	_, err = NewConfiguration("cfg-dup-test")
	assert.Error(t, err)
}

func TestDefaultConfigurationMarksItDefault(t *testing.T) {
	c, err := NewConfiguration("cfg-default-test")
	require.NoError(t, err)
	c.Finish()

	found, err := DefaultConfiguration("cfg-default-test")
	require.NoError(t, err)
	assert.Same(t, c, found)
	assert.Same(t, c, Default())
}

func TestDefaultConfigurationErrorsOnUnknownName(t *testing.T) {
	_, err := DefaultConfiguration("cfg-never-opened")
	assert.Error(t, err)
}

func TestCheckDefaultErrorsBeforeAnyDefaultIsSet(t *testing.T) {
	saved := defaultCfg
	defaultCfg = nil
	defer func() { defaultCfg = saved }()

	assert.Error(t, CheckDefault())
}

func TestConfigurationSetSystemOverridesTarget(t *testing.T) {
	c, err := NewConfiguration("cfg-system-test")
	require.NoError(t, err)
	defer c.Finish()

	assert.Equal(t, "", c.System)
	c.SetSystem("Darwin")
	assert.Equal(t, "Darwin", c.System)
}
