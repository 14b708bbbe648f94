package collector

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"MarketVision/internal/model"
)

var (
	positiveWords = []string{"success", "growth", "profit", "gain", "rise", "up", "approve", "win", "breakthrough", "surge", "increase", "positive", "good", "great", "excellent"}
	negativeWords = []string{"decline", "fall", "drop", "loss", "down", "reject", "fail", "crisis", "worry", "concern", "risk", "negative", "bad", "worse", "problem"}

	impactStrongPositive = []string{"breakthrough", "record", "surge", "soar", "rally", "approval", "success"}
	impactPositive       = []string{"growth", "profit", "gain", "rise", "increase", "up"}
	impactStrongNegative = []string{"crisis", "crash", "plunge", "reject", "ban", "fine", "lawsuit"}
	impactNegative       = []string{"decline", "fall", "drop", "loss", "down", "worry", "concern"}

	categoryWeights = map[model.Category]float64{
		model.CategoryCompany:     1.5,
		model.CategoryPersonality: 1.2,
		model.CategoryPolicy:      1.0,
		model.CategoryMacro:       0.8,
	}

	policyWords      = []string{"tariff", "policy", "regulat", "subsid", "tax credit", "white house", "congress", "trump", "administration", "ban"}
	macroWords       = []string{"federal reserve", "fed ", "interest rate", "inflation", "dollar", "treasury", "cpi", "jobs report", "recession"}
	personalityWords = []string{"musk", "elon", "spacex", "neuralink", "grok"}

	htmlTag = regexp.MustCompile(`<[^>]*>`)
)

const maxContentLen = 200

// AnalyzeSentiment counts keyword hits; ties are neutral.
func AnalyzeSentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)
	pos := countHits(lower, positiveWords)
	neg := countHits(lower, negativeWords)
	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// ImpactScore weights keyword hits by category and clamps to [-100, 100].
func ImpactScore(text string, category model.Category) int {
	lower := strings.ToLower(text)
	w, ok := categoryWeights[category]
	if !ok {
		w = 1.0
	}
	impact := 0.0
	impact += float64(countHits(lower, impactStrongPositive)) * 15 * w
	impact += float64(countHits(lower, impactPositive)) * 8 * w
	impact -= float64(countHits(lower, impactStrongNegative)) * 15 * w
	impact -= float64(countHits(lower, impactNegative)) * 8 * w
	return int(math.Max(-100, math.Min(100, math.Round(impact))))
}

// Categorize guesses a category for uncategorized headlines. Company is the fallback.
func Categorize(text string) model.Category {
	lower := strings.ToLower(text)
	switch {
	case countHits(lower, policyWords) > 0:
		return model.CategoryPolicy
	case countHits(lower, macroWords) > 0:
		return model.CategoryMacro
	case countHits(lower, personalityWords) > 0 && !strings.Contains(lower, "tesla"):
		return model.CategoryPersonality
	default:
		return model.CategoryCompany
	}
}

func countHits(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(htmlTag.ReplaceAllString(s, " ")), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// newsItem scores a fetched headline. A zero published time means now.
func newsItem(title, content, source string, category model.Category, published, now time.Time) model.NewsItem {
	title = cleanText(title)
	if title == "" {
		title = "No title"
	}
	content = truncate(cleanText(content), maxContentLen)
	if content == "" {
		content = title
	}
	if category == "" {
		category = Categorize(title + " " + content)
	}
	if published.IsZero() {
		published = now
	}
	text := title + " " + content
	return model.NewsItem{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		Category:    category,
		Sentiment:   AnalyzeSentiment(text),
		ImpactScore: ImpactScore(text, category),
		Source:      source,
		Timestamp:   published,
	}
}
