package cli

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/alhifz/hifz/internal/config"
	"github.com/alhifz/hifz/internal/database"
	"github.com/alhifz/hifz/internal/database/hadiths"
	"github.com/alhifz/hifz/internal/meili"
	"github.com/alhifz/hifz/internal/search"
)

// ReindexCommand rebuilds the search index once and exits. Useful
// after a corpus import, or to prime a Meilisearch instance.
type ReindexCommand struct {
	fs *flag.FlagSet

	dbPath  string
	meiliOn bool
}

func NewReindexCommand() *ReindexCommand {
	cmd := &ReindexCommand{
		fs: flag.NewFlagSet("reindex", flag.ContinueOnError),
	}
	cfg := config.NewConfig()
	cmd.fs.StringVar(&cmd.dbPath, "db", cfg.Database.Path, "Path to the hifz database")
	cmd.fs.BoolVar(&cmd.meiliOn, "meilisearch", cfg.Meilisearch.Enabled, "Also push the corpus to Meilisearch")
	return cmd
}

func (cmd *ReindexCommand) ParseFlags(args []string) error {
	return cmd.fs.Parse(args)
}

func (cmd *ReindexCommand) Run() error {
	db, err := database.NewDatabase(cmd.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := hadiths.NewRepository(db.DB)

	opts := []search.Option{}
	if cmd.meiliOn {
		mcfg := config.NewConfig().Meilisearch
		opts = append(opts, search.WithRemoteBackend(meili.NewClient(meili.Config{
			URL:     mcfg.URL,
			APIKey:  mcfg.APIKey,
			Index:   mcfg.Index,
			Timeout: mcfg.Timeout,
		})))
	}
	engine := search.NewEngine(repo, opts...)

	if err := engine.RebuildIndex(context.Background()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	fmt.Println("Search index rebuilt.")

	return cmd.printSummary(repo)
}

// printSummary reports the indexed count per book and flags books
// whose stored hadith_count no longer matches the table, which
// usually means a partial import.
func (cmd *ReindexCommand) printSummary(repo *hadiths.Repository) error {
	books, err := repo.Books()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	for i := range books {
		b := &books[i]
		count, err := repo.CountByBook(b.Slug)
		if err != nil {
			return fmt.Errorf("failed to count hadiths for %s: %w", b.Slug, err)
		}
		fmt.Printf("  %s: %d hadiths\n", b.Slug, count)
		if b.HadithCount != 0 && int64(b.HadithCount) != count {
			log.Printf("WARNING: book %s declares %d hadiths but %d are stored", b.Slug, b.HadithCount, count)
		}
	}
	return nil
}
