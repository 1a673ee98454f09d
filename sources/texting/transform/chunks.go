package transform

// Chunks splits text into pieces of at most cs runes, preferring to cut after a newline.
func Chunks(text string, cs int) []string {
	if cs <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	var chunks []string
	for len(runes) > cs {
		end := cs
		for i := cs - 1; i > 0; i-- {
			if runes[i] == '\n' {
				end = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:end]))
		runes = runes[end:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
