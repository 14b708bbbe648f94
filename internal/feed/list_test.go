package feed

import (
	"math/rand/v2"
	"testing"
	"time"

	"MarketVision/internal/model"
)

var base = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

func news(title string, minutes int) model.NewsItem {
	return model.NewsItem{ID: title, Title: title, Timestamp: base.Add(time.Duration(minutes) * time.Minute)}
}

func assertDescending[T Item](t *testing.T, items []T) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		if items[i].FeedTime().After(items[i-1].FeedTime()) {
			t.Fatalf("items not descending at %d: %v after %v", i, items[i].FeedTime(), items[i-1].FeedTime())
		}
	}
}

func TestList_BoundAndOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	newsList := NewList[model.NewsItem](20)
	posts := NewList[model.SocialPost](10)

	for i := 0; i < 200; i++ {
		// insertion order and timestamp order diverge on purpose
		ts := base.Add(time.Duration(rng.IntN(10000)) * time.Second)
		newsList.Add(model.NewsItem{Title: "n", Timestamp: ts})
		posts.Add(model.SocialPost{Content: "p", Timestamp: ts})

		if newsList.Len() > 20 {
			t.Fatalf("news list exceeded bound: %d", newsList.Len())
		}
		if posts.Len() > 10 {
			t.Fatalf("post list exceeded bound: %d", posts.Len())
		}
		assertDescending(t, newsList.Items())
		assertDescending(t, posts.Items())
	}
	if newsList.Len() != 20 || posts.Len() != 10 {
		t.Errorf("expected full lists, got %d / %d", newsList.Len(), posts.Len())
	}
}

func TestList_AddKeepsNewest(t *testing.T) {
	l := NewList(2, news("a", 1), news("b", 2))
	l.Add(news("old", 0))
	items := l.Items()
	if items[0].Title != "b" || items[1].Title != "a" {
		t.Errorf("expected older insert to be evicted, got %q, %q", items[0].Title, items[1].Title)
	}
}

func TestList_MergeDedupes(t *testing.T) {
	l := NewList(20, news("Tesla beats estimates", 10))

	added := l.Merge([]model.NewsItem{
		news("TESLA BEATS ESTIMATES ", 20),
		news("Fed holds rates", 5),
		news("fed holds rates", 6),
	})
	if added != 1 {
		t.Fatalf("expected 1 new item, got %d", added)
	}
	items := l.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Tesla beats estimates" || items[1].Title != "Fed holds rates" {
		t.Errorf("unexpected order: %q, %q", items[0].Title, items[1].Title)
	}

	if added := l.Merge(nil); added != 0 {
		t.Errorf("expected empty merge to add nothing, got %d", added)
	}
}

func TestList_ItemsIsCopy(t *testing.T) {
	l := NewList(5, news("a", 1))
	items := l.Items()
	items[0].Title = "mutated"
	if l.Items()[0].Title != "a" {
		t.Error("expected Items to return a copy")
	}
}

func TestMacroIndicators_ReturnsCopy(t *testing.T) {
	first := MacroIndicators()
	if len(first) != 4 {
		t.Fatalf("expected 4 indicators, got %d", len(first))
	}
	if first[0].Trend() != "up" || first[2].Trend() != "down" {
		t.Errorf("unexpected trends %s / %s", first[0].Trend(), first[2].Trend())
	}
	first[0].Value = 0
	if MacroIndicators()[0].Value != 4.18 {
		t.Error("expected callers not to mutate the panel")
	}
}
