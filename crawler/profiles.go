package crawler

// Identity profile IDs selectable via the "user-agent" query parameter.
// ProfileComprehensive crawls as GPTBot but is reported as a combined
// AI-model audit by the presentation layer.
const (
	ProfileChrome        = "chrome"
	ProfileGooglebot     = "googlebot"
	ProfileGPTBot        = "gptbot"
	ProfileBingbot       = "bingbot"
	ProfilePerplexityBot = "perplexitybot"
	ProfileClaude        = "claude"
	ProfileGemini        = "gemini"
	ProfileComprehensive = "llm-comprehensive"
)

var userAgents = map[string]string{
	ProfileChrome:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	ProfileGooglebot:     "Mozilla/5.0 (Linux; Android 6.0.1; Nexus 5X) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.6167.184 Mobile Safari/537.36 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	ProfileGPTBot:        "GPTBot/1.0 (+https://openai.com/gptbot)",
	ProfileBingbot:       "Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
	ProfilePerplexityBot: "PerplexityBot/1.0 (+https://www.perplexity.ai/bot)",
	ProfileClaude:        "Claude-Web/1.0 (+https://claude.ai)",
	ProfileGemini:        "Google-Extended (+https://ai.google.dev/)",
	ProfileComprehensive: "GPTBot/1.0 (+https://openai.com/gptbot)",
}

// NormalizeProfile maps an arbitrary selector to a known profile ID. An
// absent selector means the comprehensive default; an unrecognized one falls
// back to the plain chrome identity.
func NormalizeProfile(id string) string {
	if id == "" {
		return ProfileComprehensive
	}
	if _, ok := userAgents[id]; ok {
		return id
	}
	return ProfileChrome
}

// IdentityHeaders returns the synthetic client header set for a profile.
// The same headers are used for the main fetch and the auxiliary probes.
func IdentityHeaders(profile string) map[string]string {
	ua := userAgents[NormalizeProfile(profile)]
	return map[string]string{
		"User-Agent":    ua,
		"Accept":        "text/html,*/*;q=0.9",
		"Cache-Control": "no-cache",
	}
}
