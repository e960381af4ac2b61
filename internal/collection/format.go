package collection

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02"

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatBytes(n int64) string {
	if n < 0 {
		return ""
	}
	return humanize.IBytes(uint64(n))
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
