package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/taxi-ledger/cmd/menu"
)

func TestMenuCommand_Metadata(t *testing.T) {
	assert.Equal(t, "menu", menu.Cmd.Use)
	assert.Contains(t, menu.Cmd.Short, "interactive")
	assert.NotNil(t, menu.Cmd.RunE)
}
