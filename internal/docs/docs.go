package docs

import "fmt"

// Topic is one embedded help article.
type Topic struct {
	Name    string // slug used as the CLI argument
	Title   string
	Summary string // one-liner for the topic listing
	Content string // plain text, no ANSI
}

var byName = func() map[string]Topic {
	m := make(map[string]Topic, len(topics))
	for _, t := range topics {
		m[t.Name] = t
	}
	return m
}()

// All returns the topics in display order.
func All() []Topic { return topics }

// Get resolves a topic slug.
func Get(name string) (Topic, error) {
	t, ok := byName[name]
	if !ok {
		return Topic{}, fmt.Errorf("unknown topic %q, run 'improve docs' to list available topics", name)
	}
	return t, nil
}
