package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseInteractionStatus(t *testing.T) {

	for _, valid := range []string{"to_qualify", "saved", "blacklisted", "won", "lost"} {
		status, err := ParseInteractionStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, InteractionStatus(valid), status)
	}

	_, err := ParseInteractionStatus("archived")
	assert.Error(t, err)
}

func Test_InteractionStatus_Triage(t *testing.T) {

	assert.False(t, StatusToQualify.IsTriaged())
	assert.True(t, StatusSaved.IsTriaged())
	assert.True(t, StatusBlacklisted.IsTriaged())
	assert.True(t, StatusWon.IsTriaged())
	assert.True(t, StatusLost.IsTriaged())

	assert.True(t, StatusSaved.IsWorkspace())
	assert.False(t, StatusBlacklisted.IsWorkspace())
}
