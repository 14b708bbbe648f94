package notifier

import (
	"fmt"
	"strings"

	"MarketVision/internal/model"
	"MarketVision/internal/report"
)

// SnapshotSource is the read side commands answer from.
type SnapshotSource interface {
	Snapshot() model.Snapshot
}

const helpText = `Commands:
/status - price, session and headlines
/portfolio - valuation and scenario
/news - latest headlines
/help - this message`

// NewCommandHandler answers chat commands from the current snapshot.
func NewCommandHandler(src SnapshotSource) CommandHandler {
	return func(command string) string {
		cmd := strings.Fields(command)
		if len(cmd) == 0 {
			return ""
		}
		// "/status@SomeBot" in group chats
		name, _, _ := strings.Cut(strings.ToLower(cmd[0]), "@")

		switch name {
		case "/start", "/help":
			return helpText
		case "/status":
			return report.FormatSnapshot(src.Snapshot())
		case "/portfolio":
			s := src.Snapshot()
			if s.Portfolio.Shares == 0 {
				return "No holding configured."
			}
			return report.FormatValuation(s.Portfolio, s.Scenario, s.Valuation)
		case "/news":
			return formatNews(src.Snapshot().News, 5)
		default:
			return "Unknown command. Send /help for the list."
		}
	}
}

func formatNews(news []model.NewsItem, n int) string {
	if len(news) == 0 {
		return "No headlines yet."
	}
	var b strings.Builder
	b.WriteString("📰 Latest news\n")
	for i, it := range news {
		if i >= n {
			break
		}
		b.WriteString(fmt.Sprintf("%d. [%s/%s] %s (%+d)\n", i+1, it.Category, it.Sentiment, it.Title, it.ImpactScore))
	}
	return b.String()
}
