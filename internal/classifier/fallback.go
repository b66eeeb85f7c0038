package classifier

import (
	"math/rand"
)

// FallbackSummary is the fixed summary text carried by fallback results.
const FallbackSummary = "Failed to analyze entry content. This is a fallback summary."

// fallbackMoods is the restricted mood set used when the model is unavailable.
var fallbackMoods = []string{"Happy", "Neutral", "Anxious"}

const hexLetters = "0123456789ABCDEF"

// fallbackResult synthesizes a local Result when classification fails:
// randomized sentiment in [-10, 10), a mood from the fallback set, a fixed
// summary, subject "Unknown" and a random color.
func fallbackResult() Result {
	return Result{
		SentimentScore: rand.Float64()*20 - 10,
		Mood:           fallbackMoods[rand.Intn(len(fallbackMoods))],
		Summary:        FallbackSummary,
		Subject:        "Unknown",
		Negative:       rand.Intn(2) == 0,
		Color:          randomColor(),
		IsFallback:     true,
	}
}

func randomColor() string {
	color := make([]byte, 0, 7)
	color = append(color, '#')
	for i := 0; i < 6; i++ {
		color = append(color, hexLetters[rand.Intn(len(hexLetters))])
	}
	return string(color)
}
