// Package kb holds the static support knowledge base and its keyword-scored
// retriever. The catalog is read-only and process-wide.
package kb

import (
	"sort"
	"strings"

	"github.com/balajimuthu0107/codance/internal/models"
)

var catalog = []models.KBArticle{
	{
		ID:    1,
		Title: "Payment Failed Troubleshooting",
		Content: "If a customer's payment fails, ask them to verify their card details, " +
			"ensure sufficient funds, and try an alternate payment method. For recurring issues, " +
			"instruct them to clear cache or use an incognito window. Check our payments status " +
			"page for known incidents.",
		Tags: []string{"billing", "payment", "card", "checkout"},
	},
	{
		ID:    2,
		Title: "Account Compromised Recovery Steps",
		Content: "For suspected account compromise: immediately reset the user's password, " +
			"invalidate all active sessions, and enable 2FA. Ask security questions to verify " +
			"identity. Escalate if any unauthorized purchases are detected.",
		Tags: []string{"security", "account", "compromised", "fraud"},
	},
	{
		ID:    3,
		Title: "App Not Loading - Common Fixes",
		Content: "If the app is not loading: confirm network connectivity, check our status " +
			"page for incidents, clear local cache/storage, and update to the latest version. " +
			"Collect logs if the issue persists and escalate to engineering with device/OS details.",
		Tags: []string{"technical", "performance", "loading", "status"},
	},
	{
		ID:    4,
		Title: "Refund Policy Overview",
		Content: "Refunds are available within 30 days for annual plans and 14 days for " +
			"monthly plans unless otherwise stated. Pro-rations apply after usage. Direct " +
			"high-value disputes to billing specialists.",
		Tags: []string{"billing", "refund", "policy"},
	},
}

// Articles returns the full catalog.
func Articles() []models.KBArticle {
	out := make([]models.KBArticle, len(catalog))
	copy(out, catalog)
	return out
}

// Retrieve returns the limit best-scoring articles for the query. Title hits
// weigh 3, body hits 2, and each article tag contained in the query adds 1.
// Ties keep catalog order, so retrieval is deterministic and always fills
// the limit even when nothing scores.
func Retrieve(query string, limit int) []models.KBArticle {
	if limit <= 0 {
		return []models.KBArticle{}
	}

	q := strings.ToLower(query)

	type scored struct {
		article models.KBArticle
		score   int
	}

	ranked := make([]scored, 0, len(catalog))
	for _, article := range catalog {
		score := 0
		if strings.Contains(strings.ToLower(article.Title), q) {
			score += 3
		}
		if strings.Contains(strings.ToLower(article.Content), q) {
			score += 2
		}
		for _, tag := range article.Tags {
			if strings.Contains(q, strings.ToLower(tag)) {
				score++
			}
		}
		ranked = append(ranked, scored{article: article, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}

	out := make([]models.KBArticle, 0, limit)
	for _, s := range ranked[:limit] {
		out = append(out, s.article)
	}
	return out
}

// ContextBlock renders the top-limit articles as the prompt context handed to
// the LLM provider.
func ContextBlock(query string, limit int) (string, []models.KBArticle) {
	articles := Retrieve(query, limit)
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, "Title: "+a.Title+"\nContent: "+a.Content)
	}
	return strings.Join(blocks, "\n---\n"), articles
}
