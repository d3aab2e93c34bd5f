package agent

import (
	"strings"

	"github.com/Reason-jin/yj-portfolio-site/internal/config"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
)

// FollowUps returns the questions of the first rule whose keyword occurs in
// message, or defaults when none does.
func FollowUps(message string, rules []config.FollowUpRule, defaults []string) []string {
	for _, rule := range rules {
		if strings.Contains(message, rule.Keyword) {
			return append([]string(nil), rule.Questions...)
		}
	}
	return append([]string(nil), defaults...)
}

// Resources collects the links of every rule with a keyword in message, in table order.
func Resources(message string, rules []config.ResourceRule) []models.Resource {
	out := []models.Resource{}
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if !strings.Contains(message, keyword) {
				continue
			}
			for _, link := range rule.Links {
				out = append(out, models.Resource{Title: link.Title, URL: link.URL})
			}
			break
		}
	}
	return out
}
