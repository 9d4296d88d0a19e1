package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	v := ValidateRequired("Data directory")

	assert.NoError(t, v("/srv/backups"))
	assert.Error(t, v(""))
	assert.Error(t, v("   "))
}

func TestValidateAbsolutePath(t *testing.T) {
	assert.NoError(t, ValidateAbsolutePath("/srv/backups"))
	assert.Error(t, ValidateAbsolutePath(""))
	assert.Error(t, ValidateAbsolutePath("relative/path"))
	assert.Error(t, ValidateAbsolutePath("~/backups"))
}

func TestValidateItemName(t *testing.T) {
	assert.NoError(t, ValidateItemName("hypr"))
	assert.NoError(t, ValidateItemName("fan-control"))
	assert.NoError(t, ValidateItemName("starship.toml"))

	assert.Error(t, ValidateItemName(""))
	assert.Error(t, ValidateItemName("Has Spaces"))
	assert.Error(t, ValidateItemName("-leading"))
	assert.Error(t, ValidateItemName("a/b"))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.0 KiB", humanSize(1024))
	assert.Equal(t, "90.0 MiB", humanSize(90*1024*1024))
	assert.Equal(t, "1.5 GiB", humanSize(3*1024*1024*1024/2))
}
