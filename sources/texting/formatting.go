package texting

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

func Numberify(value int64) string {
	return humanize.Comma(value)
}

// Signify renders a counter with an explicit sign, e.g. "+12" or "-3".
func Signify(value int64) string {
	if value > 0 {
		return "+" + humanize.Comma(value)
	}
	return humanize.Comma(value)
}

func Decimalify(value decimal.Decimal) string {
	return humanize.CommafWithDigits(value.InexactFloat64(), 2)
}

func Bytesify(size uint64) string {
	return humanize.Bytes(size)
}

// Durationify renders an elapsed span in words, e.g. "3 hours".
func Durationify(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now.Add(-d), now, "", ""))
}

// Gaugify draws value within [floor, ceiling] as a fixed-width bar.
func Gaugify(value, floor, ceiling int64, width int) string {
	if ceiling <= floor || width <= 0 {
		return ""
	}
	value = min(max(value, floor), ceiling)
	filled := int((value - floor) * int64(width) / (ceiling - floor))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return fmt.Sprintf("[%s]", string(bar))
}
