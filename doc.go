// Package md2site converts Markdown posts to HTML fragments for static sites.
//
// # Quick Start
//
// Create a converter and convert a post body:
//
//	conv, err := md2site.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2site.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result carries the HTML fragment plus a plain-text excerpt and an
// estimated reading time, both derived from the raw Markdown.
//
// # Engines
//
// The native engine (default) is a fixed sequence of regex rewrites: fenced
// code extraction, inline rules, block rules, paragraph wrapping and
// placeholder restoration. It supports a small dialect and passes raw HTML
// through. The goldmark engine implements CommonMark with GFM tables,
// strikethrough, autolinks, task lists and footnotes:
//
//	conv, err := md2site.NewConverter(
//	    md2site.WithEngine(md2site.EngineGoldmark),
//	    md2site.WithHighlighting("github"),
//	)
//
// With highlighting on, fenced code is tokenized by chroma and styled with
// CSS classes; HighlightCSS returns the matching stylesheet.
//
// # Frontmatter
//
// ParseDocument splits a post into its YAML frontmatter and body:
//
//	doc, err := md2site.ParseDocument(source)
//	result, err := conv.Convert(ctx, md2site.Input{Markdown: doc.Body})
//
// Site generation (pages, feeds, search index) lives in the md2site command.
package md2site
