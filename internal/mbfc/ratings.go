// Package mbfc turns categorical media bias and factual-reporting ratings
// into a single normalized 0-100 reliability score with a letter grade.
// The lookup tables and weights mirror the Media Bias/Fact Check scheme.
package mbfc

import "strings"

// Display colors shared by every rating table.
const (
	colorGreen      = "#28a745"
	colorLightGreen = "#6bcf7f"
	colorAmber      = "#ffc107"
	colorOrange     = "#fd7e14"
	colorRed        = "#dc3545"
	colorNeutral    = "#666"
)

// CategoryRating is the fixed numeric interpretation of one categorical
// bias or factual-reporting label.
type CategoryRating struct {
	Score       float64 `json:"score"`
	Color       string  `json:"color"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// unknownRating is returned for any category string outside the fixed
// tables. Lookups never fail on arbitrary input.
var unknownRating = CategoryRating{Score: 50, Color: colorNeutral, Label: "Unknown", Description: "Unknown rating"}

var biasRatings = map[string]CategoryRating{
	"left":          {Score: 85, Color: colorGreen, Label: "Left", Description: "Left-leaning"},
	"left-center":   {Score: 75, Color: colorLightGreen, Label: "Left-Center", Description: "Left-center bias"},
	"center":        {Score: 90, Color: colorGreen, Label: "Center", Description: "Least biased"},
	// right-center's amber (vs left-center's light green at the same
	// score) is carried from the upstream dataset as-is.
	"right-center":  {Score: 75, Color: colorAmber, Label: "Right-Center", Description: "Right-center bias"},
	"right":         {Score: 85, Color: colorGreen, Label: "Right", Description: "Right-leaning"},
	"conspiracy":    {Score: 25, Color: colorRed, Label: "Conspiracy", Description: "Conspiracy theories"},
	"pseudoscience": {Score: 30, Color: colorRed, Label: "Pseudoscience", Description: "Pseudoscience"},
	"satire":        {Score: 50, Color: colorAmber, Label: "Satire", Description: "Satirical content"},
	"fake-news":     {Score: 15, Color: colorRed, Label: "Fake News", Description: "Fake news"},
	"questionable":  {Score: 35, Color: colorOrange, Label: "Questionable", Description: "Questionable source"},
}

var factualRatings = map[string]CategoryRating{
	"very-high":      {Score: 95, Color: colorGreen, Label: "Very High", Description: "Very high factual reporting"},
	"high":           {Score: 85, Color: colorGreen, Label: "High", Description: "High factual reporting"},
	"mostly-factual": {Score: 75, Color: colorLightGreen, Label: "Mostly Factual", Description: "Mostly factual reporting"},
	"mixed":          {Score: 60, Color: colorAmber, Label: "Mixed", Description: "Mixed factual reporting"},
	"low":            {Score: 40, Color: colorOrange, Label: "Low", Description: "Low factual reporting"},
	"very-low":       {Score: 25, Color: colorRed, Label: "Very Low", Description: "Very low factual reporting"},
	"not-rated":      {Score: 50, Color: colorNeutral, Label: "Not Rated", Description: "Not rated for factual reporting"},
}

// BiasRating looks up the fixed interpretation of a bias category. The
// lookup is case-insensitive and unmatched categories resolve to the
// Unknown entry instead of an error.
func BiasRating(category string) CategoryRating {
	if r, ok := biasRatings[strings.ToLower(category)]; ok {
		return r
	}
	r := unknownRating
	r.Description = "Unknown bias"
	return r
}

// FactualRating looks up the fixed interpretation of a factual-reporting
// category, with the same fallback behavior as BiasRating.
func FactualRating(category string) CategoryRating {
	if r, ok := factualRatings[strings.ToLower(category)]; ok {
		return r
	}
	r := unknownRating
	r.Description = "Unknown factual rating"
	return r
}
