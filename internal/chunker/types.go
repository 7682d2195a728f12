package chunker

// one page of extracted book text, numbered from 1
type Page struct {
	Number int
	Text   string
}

// a piece of a page ready to embed
type Chunk struct {
	Source  string
	Page    int
	Index   int // position within the page
	Content string
}

type Options struct {
	// max chunk length in characters (runes)
	Size int
	// characters shared between consecutive chunks of a page
	Overlap int
	// tried in order, "" splits between characters
	Separators []string
}
