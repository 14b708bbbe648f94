package feed

import (
	"time"

	"github.com/google/uuid"

	"MarketVision/internal/model"
)

// SourceSimulated marks items produced locally rather than fetched.
const SourceSimulated = "simulation"

// NewsPool is the canned set of headlines drawn by the simulator.
var NewsPool = []model.NewsTemplate{
	{
		Title:     "EU reviewing possible fine against Tesla",
		Content:   "EU regulators are reviewing possible violations tied to Tesla's battery supply chain. The maximum penalty could reach 10% of revenue.",
		Category:  model.CategoryCompany,
		Sentiment: model.SentimentNegative,
		Impact:    -8,
	},
	{
		Title:     "Tesla China plant expansion approved",
		Content:   "Beijing approved the expansion plan for the Shanghai Gigafactory. Production capacity is expected to double.",
		Category:  model.CategoryCompany,
		Sentiment: model.SentimentPositive,
		Impact:    12,
	},
	{
		Title:     "Musk announces successful Neuralink trial",
		Content:   "Elon Musk announced a successful clinical trial of the Neuralink brain chip. Investors expect spillover synergy for Tesla.",
		Category:  model.CategoryPersonality,
		Sentiment: model.SentimentPositive,
		Impact:    5,
	},
	{
		Title:     "White House to revisit EV tax credits",
		Content:   "The administration said it will revisit the IRA electric vehicle credit program. A negative impact on Tesla is expected.",
		Category:  model.CategoryPolicy,
		Sentiment: model.SentimentNegative,
		Impact:    -12,
	},
	{
		Title:     "Strong dollar weighs on tech stocks",
		Content:   "The dollar index hit a six-month high. That adds downward pressure on growth names such as Tesla.",
		Category:  model.CategoryMacro,
		Sentiment: model.SentimentNegative,
		Impact:    -5,
	},
	{
		Title:     "Tesla Energy residential battery sales surge",
		Content:   "Powerwall sales rose 150% year over year, making storage a new growth engine for the company.",
		Category:  model.CategoryCompany,
		Sentiment: model.SentimentPositive,
		Impact:    8,
	},
}

// PostPool is the canned set of posts drawn by the simulator.
var PostPool = []model.PostTemplate{
	{
		Content:   "The robotaxi network is about to become real. FSD V12 is beating expectations.",
		Summary:   "FSD improvements and a commercial robotaxi signal. Strongly positive.",
		Keywords:  []string{"robotaxi", "FSD", "network"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Tesla is not just a car company. It is an integrated platform for energy, AI and robotics.",
		Summary:   "Restates the long-term vision and appetite for expansion.",
		Keywords:  []string{"energy", "AI", "robotics"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Ad revenue on X is up 30% year over year. Grok is the main driver.",
		Summary:   "Platform profitability improving on the back of AI.",
		Keywords:  []string{"X", "ads", "Grok"},
		Sentiment: model.SentimentNeutral,
	},
	{
		Content:   "Tesla stock is a long-term investment. Don't get shaken out by short-term volatility.",
		Summary:   "Long-horizon message aimed at steadying shareholders.",
		Keywords:  []string{"Tesla", "stock", "investing"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Cybertruck production is accelerating. Reservation holders will get deliveries soon.",
		Summary:   "Positive production and delivery timeline signal.",
		Keywords:  []string{"Cybertruck", "production", "delivery"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Charging infrastructure keeps expanding worldwide.",
		Summary:   "Global infrastructure build-out continues.",
		Keywords:  []string{"charging", "infrastructure", "global"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "The future of AI and autonomy is bright, and Tesla is leading it.",
		Summary:   "Confidence in the autonomy roadmap.",
		Keywords:  []string{"AI", "autonomy", "future"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Grok keeps getting better. Expect a better service.",
		Summary:   "Ongoing Grok improvements support the value of X.",
		Keywords:  []string{"Grok", "AI", "service"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Battery innovation is Tesla's core competitive edge.",
		Summary:   "Emphasizes a durable lead in battery technology.",
		Keywords:  []string{"battery", "technology", "innovation"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "Tesla is accelerating the transition to sustainable energy.",
		Summary:   "Reaffirms the sustainability mission.",
		Keywords:  []string{"sustainable", "energy", "transition"},
		Sentiment: model.SentimentPositive,
	},
	{
		Content:   "The user experience on X keeps improving.",
		Summary:   "Quality and satisfaction improvements on the platform.",
		Keywords:  []string{"X", "platform", "users"},
		Sentiment: model.SentimentNeutral,
	},
	{
		Content:   "The synergy between SpaceX and Tesla keeps growing.",
		Summary:   "Closer cooperation and technology sharing across companies.",
		Keywords:  []string{"SpaceX", "Tesla", "synergy"},
		Sentiment: model.SentimentPositive,
	},
}

// NewsFromTemplate materializes a template as a fresh item stamped at now.
func NewsFromTemplate(t model.NewsTemplate, now time.Time) model.NewsItem {
	return model.NewsItem{
		ID:          uuid.NewString(),
		Title:       t.Title,
		Content:     t.Content,
		Category:    t.Category,
		Sentiment:   t.Sentiment,
		ImpactScore: t.Impact,
		Source:      SourceSimulated,
		Timestamp:   now,
	}
}

// PostFromTemplate materializes a template as a fresh post stamped at now.
func PostFromTemplate(t model.PostTemplate, now time.Time) model.SocialPost {
	return model.SocialPost{
		ID:        uuid.NewString(),
		Content:   t.Content,
		Summary:   t.Summary,
		Keywords:  append([]string(nil), t.Keywords...),
		Sentiment: t.Sentiment,
		Source:    SourceSimulated,
		Timestamp: now,
	}
}

type seeded[T any] struct {
	tmpl T
	age  time.Duration
}

var seedNews = []seeded[model.NewsTemplate]{
	{model.NewsTemplate{Title: "X files suit to defend the Twitter brand", Content: "Musk sued a startup that tried to claim the Twitter trademark. Brand and legal risk management for X is at stake.", Category: model.CategoryPersonality, Sentiment: model.SentimentNeutral, Impact: 5}, 3 * time.Hour},
	{model.NewsTemplate{Title: "X switches default feed to Grok ranking", Content: "The X feed now defaults to Grok-based recommendations instead of chronological order, amplifying Musk's reach.", Category: model.CategoryPersonality, Sentiment: model.SentimentNeutral, Impact: 0}, 5 * time.Hour},
	{model.NewsTemplate{Title: "President to deliver economic address tonight", Content: "Remarks on energy prices and tariffs are the key risk for Tesla's supply chain.", Category: model.CategoryPolicy, Sentiment: model.SentimentNegative, Impact: -10}, 2 * time.Hour},
	{model.NewsTemplate{Title: "Fed trims expected rate cuts", Content: "The Fed signalled two cuts next year instead of four, and the market is correcting.", Category: model.CategoryMacro, Sentiment: model.SentimentNegative, Impact: -15}, 1 * time.Hour},
	{model.NewsTemplate{Title: "Driverless robotaxi test succeeds in Austin", Content: "A robotaxi test with no safety driver was completed in Austin, a key commercialization milestone.", Category: model.CategoryCompany, Sentiment: model.SentimentPositive, Impact: 20}, 6 * time.Hour},
	{model.NewsTemplate{Title: "Tesla pulls back after all-time high", Content: "Shares touched a record $489.88 before easing to $467.22 as macro worries offset robotaxi optimism.", Category: model.CategoryCompany, Sentiment: model.SentimentNeutral, Impact: 0}, 12 * time.Hour},
}

var seedPosts = []seeded[model.PostTemplate]{
	{model.PostTemplate{Content: "The Twitter brand is not dead. Lawsuit filed.", Summary: "Signals willingness to defend the legacy brand.", Keywords: []string{"Twitter", "brand", "lawsuit"}, Sentiment: model.SentimentNeutral}, 180 * time.Minute},
	{model.PostTemplate{Content: "The Grok feed algorithm is now the default. You will see better content.", Summary: "Promotes the new recommendation feed.", Keywords: []string{"Grok", "feed", "algorithm"}, Sentiment: model.SentimentPositive}, 300 * time.Minute},
}

// SeedNews returns the startup headlines, aged relative to now.
func SeedNews(now time.Time) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(seedNews))
	for _, s := range seedNews {
		out = append(out, NewsFromTemplate(s.tmpl, now.Add(-s.age)))
	}
	return out
}

// SeedPosts returns the startup posts, aged relative to now.
func SeedPosts(now time.Time) []model.SocialPost {
	out := make([]model.SocialPost, 0, len(seedPosts))
	for _, s := range seedPosts {
		out = append(out, PostFromTemplate(s.tmpl, now.Add(-s.age)))
	}
	return out
}
