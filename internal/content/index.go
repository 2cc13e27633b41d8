package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateSlug indicates two source files map to the same post URL.
var ErrDuplicateSlug = errors.New("duplicate post slug")

// fallbackTagSlug names tags that contain no letters or digits.
const fallbackTagSlug = "tag"

// TagCount is a tag with the number of posts carrying it.
type TagCount struct {
	Name  string // Lowercased tag as first written
	Slug  string
	Count int
}

// Index holds published posts sorted newest first.
type Index struct {
	posts []*Post
	tags  []TagCount
}

// NewIndex sorts posts by date, newest first, with ties broken by slug.
// Slugs must be unique.
func NewIndex(posts []*Post) (*Index, error) {
	sorted := make([]*Post, len(posts))
	copy(sorted, posts)

	seen := make(map[string]string, len(sorted))
	for _, p := range sorted {
		if prev, ok := seen[p.Slug]; ok {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrDuplicateSlug, p.Slug, prev, p.SourcePath)
		}
		seen[p.Slug] = p.SourcePath
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	return &Index{posts: sorted, tags: countTags(sorted)}, nil
}

// TagSlug returns the URL segment for a tag.
func TagSlug(tag string) string {
	if slug := Slugify(tag); slug != "" {
		return slug
	}
	return fallbackTagSlug
}

func countTags(posts []*Post) []TagCount {
	counts := make(map[string]*TagCount)
	var order []string

	for _, p := range posts {
		seenInPost := make(map[string]bool, len(p.Tags))
		for _, tag := range p.Tags {
			slug := TagSlug(tag)
			if seenInPost[slug] {
				continue
			}
			seenInPost[slug] = true

			tc, ok := counts[slug]
			if !ok {
				tc = &TagCount{Name: strings.ToLower(tag), Slug: slug}
				counts[slug] = tc
				order = append(order, slug)
			}
			tc.Count++
		}
	}

	tags := make([]TagCount, 0, len(order))
	for _, slug := range order {
		tags = append(tags, *counts[slug])
	}
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
	return tags
}

// Len returns the number of indexed posts.
func (idx *Index) Len() int { return len(idx.posts) }

// Posts returns all posts, newest first.
func (idx *Index) Posts() []*Post { return idx.posts }

// Latest returns at most n posts, newest first.
func (idx *Index) Latest(n int) []*Post {
	return head(idx.posts, n)
}

// Tags returns every tag, most used first, then by name.
func (idx *Index) Tags() []TagCount { return idx.tags }

// TopTags returns at most n tags from Tags.
func (idx *Index) TopTags(n int) []TagCount {
	if n < 0 {
		n = 0
	}
	if n > len(idx.tags) {
		n = len(idx.tags)
	}
	return idx.tags[:n]
}

// ByTag returns the posts carrying tag, compared case-insensitively,
// newest first.
func (idx *Index) ByTag(tag string) []*Post {
	want := TagSlug(tag)
	var out []*Post
	for _, p := range idx.posts {
		for _, t := range p.Tags {
			if TagSlug(t) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Related returns up to n other posts sharing at least one tag with post,
// newest first.
func (idx *Index) Related(post *Post, n int) []*Post {
	if len(post.Tags) == 0 || n <= 0 {
		return nil
	}

	want := make(map[string]bool, len(post.Tags))
	for _, t := range post.Tags {
		want[TagSlug(t)] = true
	}

	var out []*Post
	for _, p := range idx.posts {
		if p.Slug == post.Slug {
			continue
		}
		for _, t := range p.Tags {
			if want[TagSlug(t)] {
				out = append(out, p)
				break
			}
		}
		if len(out) == n {
			break
		}
	}
	return out
}

// Neighbors returns the posts around position i: prev is the next older
// post and next the next newer one. Either may be nil.
func (idx *Index) Neighbors(i int) (prev, next *Post) {
	if i < 0 || i >= len(idx.posts) {
		return nil, nil
	}
	if i+1 < len(idx.posts) {
		prev = idx.posts[i+1]
	}
	if i > 0 {
		next = idx.posts[i-1]
	}
	return prev, next
}

func head(posts []*Post, n int) []*Post {
	if n < 0 {
		n = 0
	}
	if n > len(posts) {
		n = len(posts)
	}
	return posts[:n]
}
