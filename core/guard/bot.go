package guard

import (
	"net/http"
	"strings"
)

// minPlausibleUALength is the shortest user-agent string a real browser
// plausibly sends; anything shorter is treated as automation.
const minPlausibleUALength = 10

// Classification is the outcome of the automated-client heuristic.
type Classification struct {
	IsBot        bool
	IsSuspicious bool
	IsAllowedBot bool
}

// allowedBotSignatures are benign crawler fragments: search engines and
// link-preview fetchers that a storefront wants to serve.
var allowedBotSignatures = []string{
	"googlebot",
	"bingbot",
	"slurp", // Yahoo
	"duckduckbot",
	"baiduspider",
	"yandexbot",
	"applebot",
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"slackbot",
	"telegrambot",
	"whatsapp",
	"discordbot",
	"pinterestbot",
}

// suspiciousBotSignatures are generic automation/tooling fragments.
var suspiciousBotSignatures = []string{
	"curl",
	"wget",
	"python-requests",
	"python-urllib",
	"go-http-client",
	"okhttp",
	"java/",
	"libwww",
	"httpclient",
	"scrapy",
	"headlesschrome",
	"phantomjs",
	"selenium",
	"puppeteer",
	"playwright",
	"bot",
	"crawler",
	"spider",
	"scraper",
}

// ClassifyClient labels a request as human or automated from its
// user-agent string and headers. The allowlist is checked before the
// denylist so a crawler matching both (e.g. "Googlebot" also contains
// "bot") is classified benign.
func ClassifyClient(userAgent string, headers http.Header) Classification {
	ua := strings.ToLower(strings.TrimSpace(userAgent))

	if len(ua) < minPlausibleUALength {
		return Classification{IsBot: true, IsSuspicious: true}
	}

	for _, sig := range allowedBotSignatures {
		if strings.Contains(ua, sig) {
			return Classification{IsBot: true, IsAllowedBot: true}
		}
	}

	for _, sig := range suspiciousBotSignatures {
		if strings.Contains(ua, sig) {
			return Classification{IsBot: true, IsSuspicious: true}
		}
	}

	// Real browsers always send both; their joint absence is a strong
	// automation signal even with a plausible user-agent string.
	if headers.Get("Accept") == "" && headers.Get("Accept-Language") == "" {
		return Classification{IsBot: true, IsSuspicious: true}
	}

	return Classification{}
}
