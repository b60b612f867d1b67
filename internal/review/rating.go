package review

import (
	"math"
	"strconv"
)

// NoRatingsYet is the display value for a restaurant without reviews.
const NoRatingsYet = "No ratings yet"

// Average returns the mean rating rounded to one decimal place, rounding
// halves away from zero. The second return is false when there are no
// reviews to average.
func Average(reviews []Review) (float64, bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	mean := float64(total) / float64(len(reviews))
	return math.Round(mean*10) / 10, true
}

// StarRating formats the average rating for display, e.g. "4.5".
// Without reviews it returns NoRatingsYet.
func StarRating(reviews []Review) string {
	avg, ok := Average(reviews)
	if !ok {
		return NoRatingsYet
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
