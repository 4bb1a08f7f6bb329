package listings

import "strings"

// ImageURLBuilder turns submitted image paths into public URLs against a
// configured base. Already-absolute URLs pass through untouched; with an
// empty base, paths are stored as received.
type ImageURLBuilder struct {
	base string
}

func NewImageURLBuilder(base string) ImageURLBuilder {
	return ImageURLBuilder{base: strings.TrimRight(base, "/")}
}

func (b ImageURLBuilder) Resolve(paths []string) []string {
	if b.base == "" || len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			out[i] = p
			continue
		}
		out[i] = b.base + "/" + strings.TrimLeft(p, "/")
	}
	return out
}
