package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerKind_Valid(t *testing.T) {
	assert.True(t, KindReserve.Valid())
	assert.True(t, KindPurchase.Valid())
	assert.True(t, KindRestock.Valid())
	assert.False(t, LedgerKind("").Valid())
	assert.False(t, LedgerKind("giveaway").Valid())
}

func TestLedgerKind_Decrements(t *testing.T) {
	assert.True(t, KindReserve.Decrements())
	assert.True(t, KindPurchase.Decrements())
	assert.False(t, KindRestock.Decrements())
}
