package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmhart/bankscan/internal/common"
)

func TestSetupLogging(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("logging.level", "info")
	viper.Set("logging.format", "console")
	require.NoError(t, setupLogging())

	viper.Set("logging.level", "loud")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)

	viper.Set("logging.level", "info")
	viper.Set("logging.format", "xml")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)
}
