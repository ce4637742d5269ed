package cardsnap

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms card markup into Markdown text, dropping
	// presentational markup.
	Convert(html string) (string, error)
}
