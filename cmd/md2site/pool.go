package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
)

// PostConverter is the interface for the Markdown conversion service.
type PostConverter interface {
	Convert(ctx context.Context, input md2site.Input) (*md2site.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ PostConverter = (*md2site.Converter)(nil)

// LoadResult holds the outcome of loading a single post.
type LoadResult struct {
	InputPath string
	Post      *content.Post
	Draft     bool // Skipped because it is a draft
	Err       error
	Duration  time.Duration
}

// loadParams groups settings shared across the batch.
type loadParams struct {
	author string // Default author for posts without one
	drafts bool   // Keep draft posts
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	available := runtime.GOMAXPROCS(0)
	if available < 1 {
		return 1
	}
	if available > config.MaxWorkers {
		return config.MaxWorkers
	}
	return available
}

// loadBatch parses and converts files concurrently. Results keep the order
// of files.
func loadBatch(ctx context.Context, conv PostConverter, files []string, workers int, params loadParams) []LoadResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]LoadResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = LoadResult{
						InputPath: files[idx],
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = loadPost(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// loadPost parses one source file and renders its body.
func loadPost(ctx context.Context, conv PostConverter, path string, params loadParams) LoadResult {
	start := time.Now()
	result := LoadResult{InputPath: path}

	doc, err := content.LoadDocument(path)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if doc.Draft && !params.drafts {
		result.Draft = true
		result.Duration = time.Since(start)
		return result
	}

	post := content.NewPost(path, doc, params.author)

	converted, err := conv.Convert(ctx, md2site.Input{Markdown: doc.Body})
	switch {
	case errors.Is(err, md2site.ErrEmptyMarkdown):
		// Frontmatter-only posts still get a page.
		post.ReadingTime = 1
	case err != nil:
		result.Err = fmt.Errorf("converting %s: %w", post.Slug, err)
		result.Duration = time.Since(start)
		return result
	default:
		post.HTML = converted.HTML
		post.Excerpt = converted.Excerpt
		post.ReadingTime = converted.ReadingTime
	}

	result.Post = post
	result.Duration = time.Since(start)
	return result
}
