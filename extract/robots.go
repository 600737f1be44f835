package extract

import (
	"strings"

	"github.com/temoto/robotstxt"
)

// aiAgents are the crawler identities whose access determines whether a page
// is reachable by AI models at all.
var aiAgents = []string{"GPTBot", "ClaudeBot", "Claude-Web", "PerplexityBot", "Google-Extended"}

// RobotsAllowsAI reports whether the robots.txt text permits at least one
// known AI crawler to fetch the site root. The probe sentinels ("NOT FOUND",
// "ERROR") and an empty file mean no robots.txt, which is default-allow.
//
// The rules are evaluated with a real per-agent robots.txt parser, so a
// Disallow under an unrelated User-agent block is not misattributed. If the
// file does not parse, a coarse token check (AI bot name appearing together
// with a disallow directive) is used instead.
func RobotsAllowsAI(robotsTxt string) bool {
	if RobotsMissing(robotsTxt) {
		return true
	}

	data, err := robotstxt.FromString(robotsTxt)
	if err != nil {
		lower := strings.ToLower(robotsTxt)
		if !strings.Contains(lower, "disallow") {
			return true
		}
		for _, agent := range aiAgents {
			if strings.Contains(lower, strings.ToLower(agent)) {
				return false
			}
		}
		return true
	}

	for _, agent := range aiAgents {
		if data.TestAgent("/", agent) {
			return true
		}
	}
	return false
}

// RobotsMissing reports whether the robots probe produced no usable file.
func RobotsMissing(robotsTxt string) bool {
	switch robotsTxt {
	case "", "NOT FOUND", "ERROR":
		return true
	}
	return false
}
