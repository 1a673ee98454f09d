package texting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberify(t *testing.T) {
	assert.Equal(t, "1,234,567", Numberify(1234567))
	assert.Equal(t, "+12", Signify(12))
	assert.Equal(t, "-3", Signify(-3))
	assert.Equal(t, "0", Signify(0))
}

func TestDecimalify(t *testing.T) {
	assert.Equal(t, "1,234.5", Decimalify(decimal.RequireFromString("1234.50")))
}

func TestBytesify(t *testing.T) {
	assert.Equal(t, "2.0 kB", Bytesify(2000))
	assert.Equal(t, "0 B", Bytesify(0))
}

func TestDurationify(t *testing.T) {
	assert.Equal(t, "0 seconds", Durationify(0))
	assert.Equal(t, "3 hours", Durationify(3*time.Hour+10*time.Minute))
}

func TestGaugify(t *testing.T) {
	assert.Equal(t, "[░░░░]", Gaugify(-100, -100, 100, 4))
	assert.Equal(t, "[██░░]", Gaugify(0, -100, 100, 4))
	assert.Equal(t, "[████]", Gaugify(500, -100, 100, 4))
	assert.Equal(t, "", Gaugify(0, 0, 0, 4))
}
