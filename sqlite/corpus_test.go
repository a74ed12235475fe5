package sqlite_test

import (
	"context"
	"testing"

	"github.com/gripdoc/gripdoc"
	"github.com/gripdoc/gripdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusService_UpsertPage(t *testing.T) {
	t.Parallel()

	t.Run("inserts a page and fills derived fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)
		ctx := context.Background()

		page := &gripdoc.Page{
			URL:         "https://docs.griptape.ai/stable/griptape-framework/agents/",
			Source:      gripdoc.SourceFramework,
			Title:       "Agents",
			Content:     "Agents wrap a single LLM task.",
			Breadcrumbs: []string{"Home", "Framework", "Agents"},
		}
		require.NoError(t, corpus.UpsertPage(ctx, page))

		assert.NotZero(t, page.ID)
		assert.NotEmpty(t, page.ContentHash)
		assert.False(t, page.CrawledAt.IsZero())

		got, err := sqlite.NewSearchService(db).PageByURL(ctx, page.URL)
		require.NoError(t, err)
		assert.Equal(t, page.Title, got.Title)
		assert.Equal(t, page.ContentHash, got.ContentHash)
		assert.Equal(t, []string{"Home", "Framework", "Agents"}, got.Breadcrumbs)
	})

	t.Run("rejects invalid pages", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)

		err := corpus.UpsertPage(context.Background(), &gripdoc.Page{URL: "https://x", Source: gripdoc.SourceFramework})
		require.Error(t, err)
		assert.Equal(t, gripdoc.EINVALID, gripdoc.ErrorCode(err))
	})

	t.Run("replaces an existing URL and cascades to children", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		page := &gripdoc.Page{
			URL:     "https://docs.griptape.ai/stable/griptape-framework/agents/",
			Source:  gripdoc.SourceFramework,
			Title:   "Agents",
			Content: "old body about pipelines",
		}
		require.NoError(t, corpus.UpsertPage(ctx, page))
		oldID := page.ID

		section := &gripdoc.Section{PageID: page.ID, Heading: "Overview", Level: 2}
		require.NoError(t, corpus.InsertSection(ctx, section))
		example := &gripdoc.CodeExample{PageID: page.ID, Language: "python", Code: "Agent()"}
		require.NoError(t, corpus.InsertCodeExample(ctx, example))

		replacement := &gripdoc.Page{
			URL:     page.URL,
			Source:  gripdoc.SourceFramework,
			Title:   "Agents",
			Content: "new body about tasks",
		}
		require.NoError(t, corpus.UpsertPage(ctx, replacement))
		assert.NotEqual(t, oldID, replacement.ID)

		// Children of the replaced row are gone.
		sections, err := search.SectionsByPage(ctx, oldID)
		require.NoError(t, err)
		assert.Empty(t, sections)
		examples, err := search.ExamplesByPage(ctx, oldID)
		require.NoError(t, err)
		assert.Empty(t, examples)

		// The FTS index tracks the replacement.
		matches, err := search.SearchPages(ctx, "tasks", "", 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, replacement.ID, matches[0].ID)

		matches, err = search.SearchPages(ctx, "pipelines", "", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestCorpusService_InsertSection(t *testing.T) {
	t.Parallel()

	t.Run("rejects sections for missing pages", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)

		err := corpus.InsertSection(context.Background(), &gripdoc.Section{PageID: 9999, Heading: "Orphan"})
		require.Error(t, err)
		assert.Equal(t, gripdoc.ECONFLICT, gripdoc.ErrorCode(err))
	})
}

func TestCorpusService_InsertCodeExample(t *testing.T) {
	t.Parallel()

	t.Run("links to the section matching its context", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)
		ctx := context.Background()

		page := &gripdoc.Page{
			URL:    "https://docs.griptape.ai/stable/griptape-framework/agents/",
			Source: gripdoc.SourceFramework,
			Title:  "Agents",
		}
		require.NoError(t, corpus.UpsertPage(ctx, page))
		section := &gripdoc.Section{PageID: page.ID, Heading: "Quick Start", Level: 2}
		require.NoError(t, corpus.InsertSection(ctx, section))

		linked := &gripdoc.CodeExample{PageID: page.ID, Language: "python", Code: "Agent()", Context: "Quick Start"}
		require.NoError(t, corpus.InsertCodeExample(ctx, linked))
		require.NotNil(t, linked.SectionID)
		assert.Equal(t, section.ID, *linked.SectionID)

		unlinked := &gripdoc.CodeExample{PageID: page.ID, Language: "python", Code: "Agent().run()", Context: "No Such Heading"}
		require.NoError(t, corpus.InsertCodeExample(ctx, unlinked))
		assert.Nil(t, unlinked.SectionID)
	})

	t.Run("rejects examples without code", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)

		err := corpus.InsertCodeExample(context.Background(), &gripdoc.CodeExample{PageID: 1})
		require.Error(t, err)
		assert.Equal(t, gripdoc.EINVALID, gripdoc.ErrorCode(err))
	})
}

func TestCorpusService_InsertNode(t *testing.T) {
	t.Parallel()

	t.Run("inserts a node with a weak page reference", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		corpus := sqlite.NewCorpusService(db)
		ctx := context.Background()

		page := &gripdoc.Page{
			URL:    "https://docs.griptapenodes.com/en/stable/nodes/image/load_image/",
			Source: gripdoc.SourceNodes,
			Title:  "Load Image",
		}
		require.NoError(t, corpus.UpsertPage(ctx, page))

		node := &gripdoc.Node{
			Name:        "Load Image",
			DisplayName: "Load Image",
			Category:    "Image",
			Description: "Loads an image.",
			PageID:      &page.ID,
		}
		require.NoError(t, corpus.InsertNode(ctx, node))
		assert.NotZero(t, node.ID)

		// Deleting the page leaves the node with a null reference.
		_, err := db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", page.ID)
		require.NoError(t, err)

		var pageID any
		require.NoError(t, db.QueryRowContext(ctx, "SELECT page_id FROM nodes WHERE id = ?", node.ID).Scan(&pageID))
		assert.Nil(t, pageID)
	})
}
