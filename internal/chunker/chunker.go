package chunker

import (
	"strings"
	"unicode/utf8"
)

func DefaultOptions() Options {
	return Options{
		Size:       1500,
		Overlap:    300,
		Separators: []string{"\n\n", "\n", " ", ""},
	}
}

// cleans and splits every page, keeping page numbers on the chunks
func ChunkPages(pages []Page, source string, noise []string, opts Options) []Chunk {
	var chunks []Chunk

	for _, page := range pages {
		text := CleanText(page.Text, noise)
		if text == "" {
			continue
		}

		for i, content := range Split(text, opts) {
			chunks = append(chunks, Chunk{
				Source:  source,
				Page:    page.Number,
				Index:   i,
				Content: content,
			})
		}
	}

	return chunks
}

// splits text recursively: it breaks on the first separator present, merges the
// pieces back up to opts.Size with opts.Overlap carried over, and recurses with
// the remaining separators on any piece that is still too large.
func Split(text string, opts Options) []string {
	separators := opts.Separators
	if len(separators) == 0 {
		separators = DefaultOptions().Separators
	}

	return splitText(text, separators, opts.Size, opts.Overlap)
}

func splitText(text string, separators []string, size, overlap int) []string {
	separator := separators[len(separators)-1]
	var remaining []string

	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]

			break
		}
	}

	var out, small []string

	for _, piece := range splitOn(text, separator) {
		if runeLen(piece) < size {
			small = append(small, piece)
			continue
		}

		if len(small) > 0 {
			out = append(out, mergeSplits(small, separator, size, overlap)...)
			small = nil
		}

		if len(remaining) == 0 {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}

			continue
		}

		out = append(out, splitText(piece, remaining, size, overlap)...)
	}

	if len(small) > 0 {
		out = append(out, mergeSplits(small, separator, size, overlap)...)
	}

	return out
}

func splitOn(text, separator string) []string {
	var pieces []string

	if separator == "" {
		for _, r := range text {
			pieces = append(pieces, string(r))
		}

		return pieces
	}

	for _, piece := range strings.Split(text, separator) {
		if piece != "" {
			pieces = append(pieces, piece)
		}
	}

	return pieces
}

// joins pieces with separator into chunks of at most size runes, starting each
// new chunk with up to overlap runes of trailing pieces from the previous one
func mergeSplits(pieces []string, separator string, size, overlap int) []string {
	sepLen := runeLen(separator)

	var (
		docs    []string
		current []string
		total   int
	)

	joinedLen := func(extra int) int {
		if len(current) > 0 {
			return total + extra + sepLen
		}

		return total + extra
	}

	for _, piece := range pieces {
		pieceLen := runeLen(piece)

		if joinedLen(pieceLen) > size && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
				docs = append(docs, doc)
			}

			// drop leading pieces until what remains fits the overlap and leaves room
			for len(current) > 0 && (total > overlap || joinedLen(pieceLen) > size) {
				total -= runeLen(current[0])
				if len(current) > 1 {
					total -= sepLen
				}

				current = current[1:]
			}
		}

		total = joinedLen(pieceLen)
		current = append(current, piece)
	}

	if doc := strings.TrimSpace(strings.Join(current, separator)); doc != "" {
		docs = append(docs, doc)
	}

	return docs
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
