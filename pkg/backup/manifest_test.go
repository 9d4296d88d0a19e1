package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifest_AllFailed(t *testing.T) {
	m := &Manifest{Items: []ItemResult{
		{Name: "hypr", Status: ItemFailed},
		{Name: "waybar", Status: ItemFailed},
	}}
	assert.True(t, m.AllFailed())

	// A skip is not a failure
	m.Items = append(m.Items, ItemResult{Name: "kitty", Status: ItemSkipped})
	assert.False(t, m.AllFailed())

	m.Items = []ItemResult{{Name: "hypr", Status: ItemArchived}}
	assert.False(t, m.AllFailed())

	assert.False(t, (&Manifest{}).AllFailed())
}
