// Package markdown turns a directory of markdown documents into normalized
// entries: it discovers files, splits front matter from body content, and
// derives dates, titles, summaries and tags used by the manifest builder.
package markdown
