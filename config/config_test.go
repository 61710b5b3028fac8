package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/config"
)

func validConfig() config.Config {
	c := config.Default()
	c.Filepath = "/scripts/main.rf"
	return c
}

func TestDefault_IsNotValidWithoutFilepath(t *testing.T) {
	c := config.Default()
	assert.Error(t, c.Validate())
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyFilepath(t *testing.T) {
	c := validConfig()
	c.Filepath = ""
	assert.Error(t, c.Validate())
}

func TestValidate_NonPositiveCacheSize(t *testing.T) {
	c := validConfig()
	c.CacheSizeMiB = 0
	assert.Error(t, c.Validate())

	c.CacheSizeMiB = -4
	assert.Error(t, c.Validate())
}

func TestValidate_UnrecognisedAlgorithm(t *testing.T) {
	c := validConfig()
	c.CacheAlgorithm = "bogus"
	assert.Error(t, c.Validate())
}

func TestValidate_AllKnownAlgorithms(t *testing.T) {
	for _, a := range []config.Algorithm{config.Specialised, config.FIFO, config.LRU, config.MRU} {
		c := validConfig()
		c.CacheAlgorithm = a
		assert.NoError(t, c.Validate(), "algorithm %q should validate", a)
	}
}

func TestCacheSizeBytes(t *testing.T) {
	c := validConfig()
	c.CacheSizeMiB = 4
	assert.Equal(t, 4*1024*1024, c.CacheSizeBytes())
}
