package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"xmd/content"
	"xmd/fetch"
	"xmd/state"
	"xmd/thread"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("grab")

	rawURL := cmd.Args().Get(0)
	if len(rawURL) == 0 {
		return errors.New("no status link has been specified")
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.NoThread = cmd.Bool("overwrite"), cmd.Bool("no-thread")

	screenName, id, err := fetch.ParseStatusURL(rawURL)
	if err != nil {
		return fmt.Errorf("unable to parse status link: %w", err)
	}

	log.Info("Processing starting", zap.String("author", screenName), zap.String("id", id), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var cache *fetch.Cache
	if env.Cfg.Fetch.CachePath != "" {
		if cache, err = fetch.OpenCache(env.Cfg.Fetch.CachePath, log); err != nil {
			// cache is an optimization, carry on without it
			log.Warn("Unable to open status cache", zap.Error(err))
		}
		defer cache.Close()
	}

	client := fetch.NewClient(&env.Cfg.Fetch, cache, env.Rpt, log)

	seed, err := client.Status(ctx, screenName, id)
	if err != nil {
		return fmt.Errorf("unable to fetch status %s: %w", id, err)
	}

	return process(ctx, seed, rawURL, id, dst, client, env, log)
}

// process renders the fetched status into a markdown document with a sibling
// image directory and writes both to the destination.
func process(ctx context.Context, seed *content.Tweet, rawURL, id, dst string, client *fetch.Client, env *state.LocalEnv, log *zap.Logger) error {
	outputName := buildOutputPath(seed, id, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	imagesDirName := strings.TrimSuffix(filepath.Base(outputName), ".md") + env.Cfg.Document.Images.DirSuffix
	imagesDir := filepath.Join(filepath.Dir(outputName), imagesDirName)
	saver := NewSaver(client, imagesDir, imagesDirName, &env.Cfg.Document.Images, log)

	var doc string
	if seed.IsArticle() {
		log.Info("Long-form article detected", zap.String("title", seed.Article.Title))
		doc, _ = ArticleMarkdown(ctx, seed, rawURL, saver, log)
	} else {
		tweets := []*content.Tweet{seed}
		if env.Cfg.Thread.Follow && !env.NoThread {
			rec := thread.New(statusFetcher(client, seed), log,
				thread.WithMaxDepth(env.Cfg.Thread.MaxDepth),
				thread.WithDelay(time.Duration(env.Cfg.Thread.DelayMs)*time.Millisecond))
			tweets = rec.Reconstruct(ctx, seed)
		}
		doc = threadMarkdown(ctx, tweets, rawURL, saver)
	}

	if err := writeDocument(outputName, []byte(doc)); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s.md", id), outputName)
	}

	log.Info("Document written", zap.String("file", outputName), zap.Int("images", saver.Count()))
	return nil
}

// statusFetcher adapts the API client for thread traversal. Parents of a
// self-reply chain live under the same screen name as the seed.
func statusFetcher(client *fetch.Client, seed *content.Tweet) thread.Fetcher {
	return thread.FetcherFunc(func(ctx context.Context, id string) (*content.Tweet, error) {
		return client.Status(ctx, seed.Author.ScreenName, id)
	})
}

// threadMarkdown renders one or more statuses into a single document. Photo
// numbering continues across the whole thread so file names never collide in
// the shared image directory.
func threadMarkdown(ctx context.Context, tweets []*content.Tweet, rawURL string, saver *Saver) string {
	var (
		parts    []string
		photoSeq int
	)

	for i, t := range tweets {
		var images []SavedImage
		for _, photo := range t.Media.PhotoList() {
			if photo.URL == "" {
				continue
			}
			fileName := fmt.Sprintf("%d%s", photoSeq+1, ImageExt(photo.URL))
			relPath, ok := saver.Materialize(ctx, photo.URL, fileName)
			if !ok {
				continue
			}
			photoSeq++
			alt := photo.AltText
			if alt == "" {
				alt = fmt.Sprintf("photo %d", photoSeq)
			}
			images = append(images, SavedImage{RelPath: relPath, Alt: alt})
		}

		if i > 0 {
			parts = append(parts, "\n---\n---\n")
		}
		parts = append(parts, TweetMarkdown(t, images, rawURL))
	}

	doc := strings.Join(parts, "\n")

	// thread gets a combined heading in place of the first status title
	if len(tweets) > 1 {
		if idx := strings.Index(doc, "\n"); idx > 0 {
			screen, _ := authorNames(tweets[len(tweets)-1])
			heading := fmt.Sprintf("# Thread by @%s (%d tweets)", screen, len(tweets))
			doc = strings.Replace(doc, doc[:idx], heading, 1)
		}
	}
	return doc
}

// writeDocument stores the markdown through a temporary file so interruption
// never leaves a partially written document at the final path.
func writeDocument(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.New().String())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
