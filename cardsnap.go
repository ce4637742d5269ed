// Package cardsnap provides a local, CLI-based tool that extracts card
// elements from HTML files, renders each one in an isolated headless
// browser tab, captures it as a PNG and bundles the images into an archive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, zip/).
package cardsnap

// MaxSources is the maximum number of documents accepted in one batch.
const MaxSources = 10

// CardSelector matches the elements extracted as cards.
const CardSelector = "div.card"

// BundleName is the default file name of the image archive.
const BundleName = "cards-bundle.zip"

// Source is one input HTML document.
type Source struct {
	Name string
	HTML string
}
