package services

import (
	"fmt"
	"net/url"
	"strings"
)

const shareTextTemplate = "My champion in the Movie Battle is: %s! 🏆"

// ShareLinks are the social links offered once a champion is crowned.
type ShareLinks struct {
	Text     string `json:"text"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	WhatsApp string `json:"whatsapp"`
}

// BuildShareLinks fills the share templates of the three supported networks with the
// champion's title. pageURL is what Facebook links back to.
func BuildShareLinks(title, pageURL string) ShareLinks {
	text := fmt.Sprintf(shareTextTemplate, title)
	encodedText := encodeURIComponent(text)

	return ShareLinks{
		Text:     text,
		Twitter:  "https://twitter.com/intent/tweet?text=" + encodedText,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodeURIComponent(pageURL) + "&quote=" + encodedText,
		WhatsApp: "https://api.whatsapp.com/send?text=" + encodedText,
	}
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s like the browser function of the same name: spaces become %20
// and ! ' ( ) * stay as they are.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
