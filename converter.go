package domsift

// Converter converts HTML content to Markdown.
type Converter interface {
	// Convert transforms html into Markdown text.
	Convert(html string) (string, error)
}
