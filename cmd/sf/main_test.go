package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/domain"
)

func TestValidationResult(t *testing.T) {
	assert.Equal(t, map[string]any{"ok": true}, validationResult(nil))
	assert.Equal(t, map[string]any{"ok": false, "error": "snapshot missing"}, validationResult(errors.New("snapshot missing")))
}

func TestStatusList(t *testing.T) {
	got, err := statusList(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = statusList([]string{"open", "live"})
	require.NoError(t, err)
	assert.Equal(t, []domain.FrameworkStatus{domain.FrameworkOpen, domain.FrameworkLive}, got)

	_, err = statusList([]string{"open", "lve"})
	assert.ErrorContains(t, err, `unknown framework status "lve"`)
}
