// Package channel renders a resolved answer into the payload shape each
// delivery platform expects. Formatting is pure data transformation; no
// platform SDKs are involved, the HTTP layer just returns the shaped JSON.
package channel

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported platform identifiers. Unknown values fall back to web formatting.
const (
	PlatformWeb      = "web"
	PlatformSlack    = "slack"
	PlatformWhatsApp = "whatsapp"
	PlatformTeams    = "teams"
)

var titleCaser = cases.Title(language.English)

// Chart is an optional visualization attached to an answer.
type Chart struct {
	URL string `json:"url"`
}

// Normalize lower-cases and trims a platform identifier, mapping anything
// outside the supported set to web.
func Normalize(platform string) string {
	switch p := strings.ToLower(strings.TrimSpace(platform)); p {
	case PlatformSlack, PlatformWhatsApp, PlatformTeams, PlatformWeb:
		return p
	default:
		return PlatformWeb
	}
}

// DisplayName returns the human-readable platform name ("Slack", "Web").
func DisplayName(platform string) string {
	if Normalize(platform) == PlatformWhatsApp {
		return "WhatsApp"
	}
	return titleCaser.String(Normalize(platform))
}

// Format shapes an answer for the given platform. The zero chart pointer
// means no visualization.
func Format(text, platform string, chart *Chart) map[string]any {
	switch Normalize(platform) {
	case PlatformSlack:
		blocks := []map[string]any{
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": text},
			},
		}
		if chart != nil {
			blocks = append(blocks, map[string]any{
				"type":      "image",
				"title":     map[string]any{"type": "plain_text", "text": "Chart"},
				"image_url": chart.URL,
				"alt_text":  "Chart visualization",
			})
		}
		return map[string]any{"blocks": blocks}

	case PlatformWhatsApp:
		out := map[string]any{"text": text}
		if chart != nil {
			out["media"] = map[string]any{"url": chart.URL}
		}
		return out

	case PlatformTeams:
		body := []map[string]any{
			{"type": "TextBlock", "text": text, "wrap": true},
		}
		if chart != nil {
			body = append(body, map[string]any{"type": "Image", "url": chart.URL})
		}
		return map[string]any{
			"type": "message",
			"attachments": []map[string]any{
				{
					"contentType": "application/vnd.microsoft.card.adaptive",
					"content": map[string]any{
						"type": "AdaptiveCard",
						"body": body,
					},
				},
			},
		}

	default:
		out := map[string]any{"text": text}
		if chart != nil {
			out["chart"] = chart
		}
		return out
	}
}
