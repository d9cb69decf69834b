package content

import (
	"fmt"
	"math"
	"strings"
)

const wordsPerMinute = 200

// ReadingTime estimates how long a body takes to read, with a one
// minute floor
func ReadingTime(body string) (minutes int, text string) {
	words := len(strings.Fields(body))
	minutes = int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes, fmt.Sprintf("%d min read", minutes)
}
