package fetch

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-scraping block detected.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

// cloudflareMarkers are phrases on Cloudflare interstitial pages. The
// profile source sits behind Cloudflare; a challenge page at a profile
// URL must not be parsed as university content.
var cloudflareMarkers = []string{
	"attention required! | cloudflare",
	"checking your browser",
	"cf-browser-verification",
}

// DetectBlock checks a response for signs of anti-bot protection. A
// blocked page must never be treated as successfully fetched content.
func DetectBlock(statusCode int, header http.Header, body []byte) (bool, BlockType) {
	if statusCode == http.StatusForbidden || statusCode == http.StatusServiceUnavailable {
		if header.Get("cf-ray") != "" ||
			header.Get("cf-cache-status") != "" ||
			strings.EqualFold(header.Get("server"), "cloudflare") {
			return true, BlockCloudflare
		}
	}

	page := strings.ToLower(string(body))

	for _, marker := range cloudflareMarkers {
		if strings.Contains(page, marker) {
			return true, BlockCloudflare
		}
	}
	if strings.Contains(page, "cloudflare") && strings.Contains(page, "challenge") {
		return true, BlockCloudflare
	}

	// Covers recaptcha and hcaptcha as substrings.
	if strings.Contains(page, "captcha") {
		return true, BlockCaptcha
	}

	// Real profile and article pages run tens of kilobytes; a tiny
	// noscript or redirect shell means the content never arrived.
	if len(body) < 2000 {
		if strings.Contains(page, "<noscript") && strings.Contains(page, "javascript") {
			return true, BlockJSShell
		}
		if strings.Contains(page, `meta http-equiv="refresh"`) {
			return true, BlockJSShell
		}
	}

	return false, BlockNone
}
