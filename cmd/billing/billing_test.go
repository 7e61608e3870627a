package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/taxi-ledger/cmd/billing"
)

func TestBillingCommand_Metadata(t *testing.T) {
	assert.Equal(t, "billing", billing.Cmd.Use)
	assert.Contains(t, billing.Cmd.Short, "stand-fee")
	assert.NotNil(t, billing.Cmd.RunE)
}

func TestBillingCommand_Flags(t *testing.T) {
	asOfFlag := billing.Cmd.Flags().Lookup("as-of")
	assert.NotNil(t, asOfFlag)
	assert.Equal(t, "", asOfFlag.DefValue)

	forceFlag := billing.Cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "false", forceFlag.DefValue)
}
