package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRupiahGroupsDigits(t *testing.T) {
	assert.Equal(t, "Rp 0", rupiah(0))
	assert.Equal(t, "Rp 950", rupiah(950))
	assert.Equal(t, "Rp 1.250.000", rupiah(1250000))
}

func TestRupiahKeepsSignOutOfGrouping(t *testing.T) {
	assert.Equal(t, "Rp -950", rupiah(-950))
	assert.Equal(t, "Rp -5.000", rupiah(-5000))
	assert.Equal(t, "Rp -1.250.000", rupiah(-1250000))
}
