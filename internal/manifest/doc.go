// Package manifest turns a tree of markdown sources into the JSON documents
// served to the site: the work log manifest, the article index and one
// content document per article.
//
// Building and writing are separate steps. A Builder is a pure function of
// the source tree and its clock; a Writer validates the documents and moves
// them into place.
package manifest
