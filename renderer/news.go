package renderer

import "github.com/etnz/invest/agent"

// RenderNews renders a news review and its sources.
func RenderNews(a agent.Analysis) string {
	return render("news", "", a)
}
