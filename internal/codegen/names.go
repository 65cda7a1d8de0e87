package codegen

import "strconv"

// namer hands out unique local value names within one function. A taken
// name gets a numeric suffix from a counter shared by all names, so a
// sequence call, call, load_a, load_a yields call, call1, load_a, load_a2.
type namer struct {
	used map[string]bool
	last int
}

func newNamer() *namer {
	return &namer{used: make(map[string]bool)}
}

func (n *namer) name(base string) string {
	if !n.used[base] {
		n.used[base] = true
		return base
	}
	for {
		n.last++
		candidate := base + strconv.Itoa(n.last)
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}
