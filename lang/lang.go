// Package lang defines the closed registry of programming languages the
// pipeline clusters by.
//
// A Registry is fixed for the whole run: languages cannot be added once a
// pipeline has been built. The position of a language in the registry is its
// index; multiplied by the configured spread it becomes the first coordinate
// of every point derived from that language.
package lang

// Registry is an ordered, closed list of language tags.
type Registry []string

// Default returns the registry used when no custom language list is
// configured.
func Default() Registry {
	return Registry{
		"C",
		"C#",
		"C++",
		"Go",
		"Java",
		"JavaScript",
		"PHP",
		"Python",
		"Ruby",
		"Scala",
		"Swift",
		"TypeScript",
	}
}

// Index returns the position of tag in the registry, scanning in order and
// returning the first match. ok is false when the tag is unknown or empty.
func (r Registry) Index(tag string) (int, bool) {
	if tag == "" {
		return 0, false
	}
	for i, t := range r {
		if t == tag {
			return i, true
		}
	}
	return 0, false
}

// Label returns the tag stored at index i.
func (r Registry) Label(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Count returns the number of known languages.
func (r Registry) Count() int {
	return len(r)
}
