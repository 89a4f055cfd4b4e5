package cmd

import (
	"net/url"
	"strings"
)

func makeVendorSearch(vendor string, name string) string {
	q := url.QueryEscape(strings.TrimSpace(vendor + " " + name))

	return "https://www.indiamart.com/search.mp?ss=" + q
}

// Build an iTerm2-compatible OSC 8 hyperlink: label "text" pointing to "link".
// Example format: \x1b]8;;http://example.com\x1b\\This is a link\x1b]8;;\x1b\\
func termLink(text string, link string) string {
	return "\x1b]8;;" + link + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

func vendorLink(vendor string, name string) string {
	return termLink(makeVendorSearch(vendor, name), makeVendorSearch(vendor, name))
}
