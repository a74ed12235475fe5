package sqlite_test

import (
	"context"
	"testing"

	"github.com/gripdoc/gripdoc"
	"github.com/gripdoc/gripdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCorpus builds a small corpus with framework and nodes content.
func seedCorpus(t *testing.T, db *sqlite.DB) {
	t.Helper()
	corpus := sqlite.NewCorpusService(db)
	ctx := context.Background()

	agents := &gripdoc.Page{
		URL:     "https://docs.griptape.ai/stable/griptape-framework/structures/agents/",
		Source:  gripdoc.SourceFramework,
		Title:   "Agents",
		Content: "Agents wrap a single task around an LLM prompt driver.",
	}
	require.NoError(t, corpus.UpsertPage(ctx, agents))
	section := &gripdoc.Section{PageID: agents.ID, Heading: "Prompt Drivers", Level: 2, Content: "Configuring prompt drivers for agents."}
	require.NoError(t, corpus.InsertSection(ctx, section))
	require.NoError(t, corpus.InsertCodeExample(ctx, &gripdoc.CodeExample{
		PageID: agents.ID, Language: "python",
		Code: "agent = Agent(prompt_driver=OpenAiChatPromptDriver())", Context: "Prompt Drivers",
	}))

	tools := &gripdoc.Page{
		URL:     "https://docs.griptape.ai/stable/griptape-framework/tools/calculator/",
		Source:  gripdoc.SourceFramework,
		Title:   "Calculator Tool",
		Content: "The calculator tool evaluates arithmetic expressions.",
	}
	require.NoError(t, corpus.UpsertPage(ctx, tools))
	require.NoError(t, corpus.InsertCodeExample(ctx, &gripdoc.CodeExample{
		PageID: tools.ID, Language: "python",
		Code: "Calculator().run()", Context: "",
	}))

	loadImage := &gripdoc.Page{
		URL:     "https://docs.griptapenodes.com/en/stable/nodes/image/load_image/",
		Source:  gripdoc.SourceNodes,
		Title:   "Load Image",
		Content: "Loads an image from disk into the flow.",
	}
	require.NoError(t, corpus.UpsertPage(ctx, loadImage))
	require.NoError(t, corpus.InsertNode(ctx, &gripdoc.Node{
		Name: "LoadImage", DisplayName: "LoadImage", Category: "Image",
		Description: "Loads an image from disk.", PageID: &loadImage.ID,
	}))
	require.NoError(t, corpus.InsertNode(ctx, &gripdoc.Node{
		Name: "Run Agent", DisplayName: "Run Agent", Category: "Agents",
		Description: "Runs a Griptape agent.",
	}))
	require.NoError(t, corpus.InsertNode(ctx, &gripdoc.Node{
		Name: "Save Image", DisplayName: "Save Image", Category: "Image",
		Description: "Writes an image to disk.",
	}))
}

func TestSearchService_SearchPages(t *testing.T) {
	t.Parallel()

	t.Run("finds pages by content", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)

		matches, err := search.SearchPages(context.Background(), "calculator", "", 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Calculator Tool", matches[0].Title)
		assert.Contains(t, matches[0].Snippet, ">>>")
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		matches, err := search.SearchPages(ctx, "image", gripdoc.SourceNodes, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, gripdoc.SourceNodes, matches[0].Source)

		matches, err = search.SearchPages(ctx, "image", gripdoc.SourceFramework, 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("treats bad FTS syntax as no results", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		matches, err := sqlite.NewSearchService(db).SearchPages(context.Background(), `"unbalanced`, "", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestSearchService_PageLookups(t *testing.T) {
	t.Parallel()

	t.Run("finds page by exact URL", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		page, err := sqlite.NewSearchService(db).PageByURL(context.Background(),
			"https://docs.griptape.ai/stable/griptape-framework/structures/agents/")
		require.NoError(t, err)
		assert.Equal(t, "Agents", page.Title)
	})

	t.Run("finds page by partial title", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		page, err := sqlite.NewSearchService(db).PageByTitle(context.Background(), "Calculator")
		require.NoError(t, err)
		assert.Equal(t, "Calculator Tool", page.Title)
	})

	t.Run("returns ENOTFOUND for missing pages", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		_, err := search.PageByURL(ctx, "https://docs.griptape.ai/nope")
		assert.Equal(t, gripdoc.ENOTFOUND, gripdoc.ErrorCode(err))

		_, err = search.PageByTitle(ctx, "No Such Title")
		assert.Equal(t, gripdoc.ENOTFOUND, gripdoc.ErrorCode(err))
	})

	t.Run("lists sections and examples in document order", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		page, err := search.PageByTitle(ctx, "Agents")
		require.NoError(t, err)

		sections, err := search.SectionsByPage(ctx, page.ID)
		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "Prompt Drivers", sections[0].Heading)

		examples, err := search.ExamplesByPage(ctx, page.ID)
		require.NoError(t, err)
		require.Len(t, examples, 1)
		require.NotNil(t, examples[0].SectionID)
		assert.Equal(t, sections[0].ID, *examples[0].SectionID)
	})
}

func TestSearchService_SearchNodes(t *testing.T) {
	t.Parallel()

	t.Run("matches name, description and category", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		matches, err := search.SearchNodes(ctx, "agent", "", 20)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Run Agent", matches[0].Name)

		matches, err = search.SearchNodes(ctx, "image", "", 20)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("spaced query matches camel-case name", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		matches, err := sqlite.NewSearchService(db).SearchNodes(context.Background(), "Load Image", "", 20)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "LoadImage", matches[0].Name)
		assert.Equal(t, "https://docs.griptapenodes.com/en/stable/nodes/image/load_image/", matches[0].URL)
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)
		search := sqlite.NewSearchService(db)
		ctx := context.Background()

		matches, err := search.SearchNodes(ctx, "image", "Image", 20)
		require.NoError(t, err)
		assert.Len(t, matches, 2)

		matches, err = search.SearchNodes(ctx, "image", "Agents", 20)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("falls back to per-word matching", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		// No node matches the full phrase; "agent" and "disk" match
		// individually, deduplicated across words.
		matches, err := sqlite.NewSearchService(db).SearchNodes(context.Background(), "agent disk writer", "", 20)
		require.NoError(t, err)
		require.Len(t, matches, 3)
	})
}

func TestSearchService_NodeByName(t *testing.T) {
	t.Parallel()

	t.Run("exact match wins", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		node, err := sqlite.NewSearchService(db).NodeByName(context.Background(), "Run Agent")
		require.NoError(t, err)
		assert.Equal(t, "Run Agent", node.Name)
	})

	t.Run("substring match", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		node, err := sqlite.NewSearchService(db).NodeByName(context.Background(), "Run")
		require.NoError(t, err)
		assert.Equal(t, "Run Agent", node.Name)
	})

	t.Run("space-stripped match finds camel-case node", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		node, err := sqlite.NewSearchService(db).NodeByName(context.Background(), "Load Image")
		require.NoError(t, err)
		assert.Equal(t, "LoadImage", node.Name)
		assert.Contains(t, node.Content, "Loads an image from disk")
		assert.Equal(t, "https://docs.griptapenodes.com/en/stable/nodes/image/load_image/", node.URL)
	})

	t.Run("returns ENOTFOUND when nothing matches", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		_, err := sqlite.NewSearchService(db).NodeByName(context.Background(), "Teleport")
		assert.Equal(t, gripdoc.ENOTFOUND, gripdoc.ErrorCode(err))
	})
}

func TestSearchService_Categories(t *testing.T) {
	t.Parallel()

	t.Run("buckets framework pages and counts node categories", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		taxonomy, err := sqlite.NewSearchService(db).Categories(context.Background())
		require.NoError(t, err)

		framework := make(map[string]int)
		for _, c := range taxonomy.FrameworkSections {
			framework[c.Category] = c.Count
		}
		assert.Equal(t, 1, framework["Structures"])
		assert.Equal(t, 1, framework["Tools"])

		nodes := make(map[string]int)
		for _, c := range taxonomy.NodeCategories {
			nodes[c.Category] = c.Count
		}
		assert.Equal(t, 2, nodes["Image"])
		assert.Equal(t, 1, nodes["Agents"])
	})
}

func TestSearchService_SearchCodeExamples(t *testing.T) {
	t.Parallel()

	t.Run("section match carries its heading", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		results, err := sqlite.NewSearchService(db).SearchCodeExamples(context.Background(), "drivers", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "Prompt Drivers", results[0].Heading)
		assert.Equal(t, "Agents", results[0].Title)
	})

	t.Run("page match covers examples without section links", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		results, err := sqlite.NewSearchService(db).SearchCodeExamples(context.Background(), "arithmetic", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Calculator().run()", results[0].Code)
		assert.Equal(t, "", results[0].Heading)
	})

	t.Run("falls back to matching code text", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		// "OpenAiChatPromptDriver" appears only inside the code itself.
		results, err := sqlite.NewSearchService(db).SearchCodeExamples(context.Background(), "OpenAiChatPromptDriver", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Code, "OpenAiChatPromptDriver")
	})

	t.Run("deduplicates across layers and honors the limit", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		seedCorpus(t, db)

		// "agents" matches both the section and the page containing the
		// same example; it must appear once.
		results, err := sqlite.NewSearchService(db).SearchCodeExamples(context.Background(), "agents", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)

		results, err = sqlite.NewSearchService(db).SearchCodeExamples(context.Background(), "agents", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}
