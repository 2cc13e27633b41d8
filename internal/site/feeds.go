package site

import (
	"encoding/json"
	"encoding/xml"
	"time"
)

const (
	atomNamespace    = "http://www.w3.org/2005/Atom"
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapDate      = "2006-01-02"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
}

// writeRSS writes rss.xml with the latest feed.items posts.
func (b *build) writeRSS() error {
	site := b.cfg.Site
	feed := rssFeed{
		Version: "2.0",
		Atom:    atomNamespace,
		Channel: rssChannel{
			Title:         site.Title,
			Link:          site.URL,
			Description:   site.Description,
			Language:      site.Language,
			LastBuildDate: b.now.UTC().Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: b.absURL("/rss.xml"),
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}

	for _, p := range b.idx.Latest(b.cfg.Feed.Items) {
		link := b.absURL(postPath(p.Slug))
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.UTC().Format(time.RFC1123Z),
			Description: p.Description,
			Categories:  p.Tags,
		})
	}

	return b.writeXML("rss.xml", feed)
}

type urlSet struct {
	XMLName xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// writeSitemap writes sitemap.xml listing every generated page but 404.
func (b *build) writeSitemap() error {
	today := b.now.UTC().Format(sitemapDate)
	set := urlSet{URLs: []sitemapURL{
		{Loc: b.absURL(homePath), LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: b.absURL(blogPath), LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
		{Loc: b.absURL(aboutPath), LastMod: today, ChangeFreq: "weekly", Priority: "0.7"},
	}}

	for _, p := range b.idx.Posts() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        b.absURL(postPath(p.Slug)),
			LastMod:    p.Date.UTC().Format(sitemapDate),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}
	for _, t := range b.idx.Tags() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        b.absURL(tagPath(t.Slug)),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	return b.writeXML("sitemap.xml", set)
}

func (b *build) writeXML(rel string, v any) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')
	return b.write(rel, out)
}

// SearchEntry is one post in search-index.json.
type SearchEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	ReadingTime int      `json:"readingTime"`
}

// writeSearchIndex writes the client-side search index. URLs carry the base
// path since the file is read by scripts, not rewritten.
func (b *build) writeSearchIndex() error {
	entries := make([]SearchEntry, 0, b.idx.Len())
	for _, p := range b.idx.Posts() {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, SearchEntry{
			Title:       p.Title,
			Description: p.Description,
			Content:     p.Excerpt,
			URL:         b.cfg.Site.BasePath + postPath(p.Slug),
			Date:        p.Date.Format(time.DateOnly),
			Tags:        tags,
			ReadingTime: p.ReadingTime,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return b.write("search-index.json", append(data, '\n'))
}
