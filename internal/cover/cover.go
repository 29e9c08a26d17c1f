// Package cover renders placeholder playlist covers: a deterministic
// two-stop gradient derived from the playlist name, with the name's
// initials overlaid. Same name, same cover, always.
package cover

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURL returns the cover for name as a base64 SVG data URL.
func DataURL(name string) string {
	from, to := gradient(name)
	initials := initials(name)

	svg := fmt.Sprintf(`<svg width="400" height="400" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:%s;stop-opacity:1" />
      <stop offset="100%%" style="stop-color:%s;stop-opacity:1" />
    </linearGradient>
  </defs>
  <rect width="400" height="400" fill="url(#grad)" rx="16"/>
  <text x="50%%" y="50%%" font-family="system-ui, -apple-system, sans-serif" font-size="120" font-weight="bold" fill="white" text-anchor="middle" dominant-baseline="central" opacity="0.9">%s</text>
</svg>`, from, to, initials)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// gradient hashes the name into two OKLCH color stops 60 degrees of hue apart.
func gradient(name string) (from, to string) {
	var hash int32
	for _, r := range name {
		hash = int32(r) + (hash << 5) - hash
	}

	hue1 := hash % 360
	if hue1 < 0 {
		hue1 = -hue1
	}
	hue2 := (hue1 + 60) % 360

	from = fmt.Sprintf("oklch(0.6 0.25 %d)", hue1)
	to = fmt.Sprintf("oklch(0.5 0.25 %d)", hue2)
	return from, to
}

func initials(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	if len(words) == 0 {
		return "?"
	}
	if len(words) == 1 {
		word := []rune(words[0])
		if len(word) == 1 {
			return strings.ToUpper(string(word[0]))
		}
		return strings.ToUpper(string(word[:2]))
	}
	return strings.ToUpper(string([]rune(words[0])[0]) + string([]rune(words[1])[0]))
}
