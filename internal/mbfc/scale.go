package mbfc

// Classification is a 0-100 score with its letter grade, color and label.
type Classification struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Classify maps a 0-100 score onto the grade scale. Thresholds are closed
// below: 90 is an A+, 89.999 is an A.
func Classify(score float64) Classification {
	return Classification{
		Score: score,
		Grade: GradeFromScore(score),
		Color: ColorFromScore(score),
		Label: LabelFromScore(score),
	}
}

// GradeFromScore returns the letter grade for a 0-100 score.
func GradeFromScore(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// ColorFromScore returns the display color for a 0-100 score.
func ColorFromScore(score float64) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorAmber
	case score >= 40:
		return colorOrange
	default:
		return colorRed
	}
}

// LabelFromScore returns the reliability label for a 0-100 score.
func LabelFromScore(score float64) string {
	switch {
	case score >= 90:
		return "Highly Reliable"
	case score >= 80:
		return "Reliable"
	case score >= 70:
		return "Mostly Reliable"
	case score >= 60:
		return "Mixed Reliability"
	case score >= 40:
		return "Questionable"
	default:
		return "Unreliable"
	}
}

// CommunityLabel returns the display text for a raw community rating on
// the 0-10 scale.
func CommunityLabel(rating float64) string {
	switch {
	case rating >= 9:
		return "Highly Reliable"
	case rating >= 7:
		return "Mostly Reliable"
	case rating >= 5:
		return "Mixed Reliability"
	case rating >= 3:
		return "Questionable"
	default:
		return "Unreliable"
	}
}

// CommunityColor returns the display color for a 0-10 community rating.
func CommunityColor(rating float64) string {
	switch {
	case rating >= 7:
		return colorGreen
	case rating >= 5:
		return colorAmber
	default:
		return colorRed
	}
}

// Badge collapses a 0-10 community rating into the three-band short form
// used by compact displays.
func Badge(rating float64) string {
	switch {
	case rating >= 7:
		return "reliable"
	case rating >= 4:
		return "mixed"
	default:
		return "unreliable"
	}
}
