package renderer

import "github.com/etnz/invest/agent"

// RenderPlan renders an investment plan and its suggested stocks.
func RenderPlan(res agent.PlanResult) string {
	return render("plan", "", res)
}
