// Package render converts log and article bodies into HTML fragments. The
// bespoke converter handles a small markdown subset with a line oriented state
// machine; a goldmark backed converter is available for full GFM output.
package render
