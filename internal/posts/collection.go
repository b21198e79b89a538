package posts

import (
	"sort"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// Collection is an ordered, read-only set of posts, newest first.
// Posts published on the same date keep their discovery order.
type Collection struct {
	posts  []*blogsmith.Post
	bySlug map[string]*blogsmith.Post
}

// NewCollection orders posts newest first and indexes them by slug.
// The input slice is not modified. Slugs are assumed to be unique; the
// loader enforces that before building a collection.
func NewCollection(posts []*blogsmith.Post) *Collection {
	ordered := make([]*blogsmith.Post, len(posts))
	copy(ordered, posts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Metadata.Date.After(ordered[j].Metadata.Date)
	})

	bySlug := make(map[string]*blogsmith.Post, len(ordered))
	for _, p := range ordered {
		bySlug[metadata.NormalizeSlug(p.Metadata.Slug)] = p
	}

	return &Collection{posts: ordered, bySlug: bySlug}
}

// Posts returns the posts in collection order. The slice is a copy.
func (c *Collection) Posts() []*blogsmith.Post {
	out := make([]*blogsmith.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Len returns the number of posts.
func (c *Collection) Len() int { return len(c.posts) }

// BySlug looks a post up by slug, ignoring case.
func (c *Collection) BySlug(slug string) (*blogsmith.Post, bool) {
	p, ok := c.bySlug[metadata.NormalizeSlug(slug)]
	return p, ok
}

// Newest returns the date of the most recent post, or the zero time for an empty collection.
func (c *Collection) Newest() time.Time {
	if len(c.posts) == 0 {
		return time.Time{}
	}
	return c.posts[0].Metadata.Date
}

// TagGroup lists the posts carrying one tag, in collection order.
type TagGroup struct {
	// Name is the tag as first written by an author
	Name string

	// Slug names the tag page file
	Slug string

	Posts []*blogsmith.Post
}

// Tags groups posts by tag slug. Tags that differ only in case or punctuation
// ("Home Lab", "home-lab") share a group named after the first spelling seen
// in collection order. Groups are sorted by slug.
func (c *Collection) Tags() []TagGroup {
	index := map[string]int{}
	var groups []TagGroup

	for _, p := range c.posts {
		seen := map[string]bool{}
		for _, tag := range p.Metadata.Tags {
			slug := metadata.Slugify(tag)
			if seen[slug] {
				continue
			}
			seen[slug] = true

			i, ok := index[slug]
			if !ok {
				i = len(groups)
				index[slug] = i
				groups = append(groups, TagGroup{Name: tag, Slug: slug})
			}
			groups[i].Posts = append(groups[i].Posts, p)
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Slug < groups[j].Slug })
	return groups
}
