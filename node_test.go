package gripdoc_test

import (
	"testing"

	"github.com/gripdoc/gripdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeFromURL(t *testing.T) {
	t.Parallel()

	t.Run("derives node from documentation URL", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/nodes/image/load_image/", "Load Image")
		require.NotNil(t, node)
		assert.Equal(t, "Load Image", node.Name)
		assert.Equal(t, "Load Image", node.DisplayName)
		assert.Equal(t, "Image", node.Category)
	})

	t.Run("works without trailing slash", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/nodes/agents/run_agent", "Run Agent")
		require.NotNil(t, node)
		assert.Equal(t, "Agents", node.Category)
	})

	t.Run("maps three_d to 3D", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/nodes/three_d/render_scene/", "Render Scene")
		require.NotNil(t, node)
		assert.Equal(t, "3D", node.Category)
	})

	t.Run("humanizes unknown category slugs", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/nodes/custom_stuff/my_node/", "My Node")
		require.NotNil(t, node)
		assert.Equal(t, "Custom Stuff", node.Category)
	})

	t.Run("returns nil for non-node pages", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/getting_started/", "Getting Started"))
		assert.Nil(t, gripdoc.NodeFromURL("https://docs.griptapenodes.com/en/stable/nodes/", "Nodes"))
	})
}

func TestNodeFromPath(t *testing.T) {
	t.Parallel()

	t.Run("derives node from markdown path", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromPath("docs/nodes/image/load_image.md", "Load Image")
		require.NotNil(t, node)
		assert.Equal(t, "Load Image", node.Name)
		assert.Equal(t, "Image", node.Category)
	})

	t.Run("falls back to humanized file stem without title", func(t *testing.T) {
		t.Parallel()

		node := gripdoc.NodeFromPath("docs/nodes/audio/transcribe_audio.md", "")
		require.NotNil(t, node)
		assert.Equal(t, "Transcribe Audio", node.Name)
		assert.Equal(t, "Audio", node.Category)
	})

	t.Run("skips category overview pages", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, gripdoc.NodeFromPath("docs/nodes/overview/index.md", "Overview"))
	})

	t.Run("returns nil for non-node paths", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, gripdoc.NodeFromPath("docs/getting_started.md", "Getting Started"))
		assert.Nil(t, gripdoc.NodeFromPath("docs/nodes/image/load_image.txt", "Load Image"))
	})
}

func TestNodeCategory(t *testing.T) {
	t.Parallel()

	t.Run("resolves known slugs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "JSON", gripdoc.NodeCategory("json"))
		assert.Equal(t, "Advanced Media Library", gripdoc.NodeCategory("advanced_media_library"))
	})

	t.Run("humanizes unknown slugs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Some New Thing", gripdoc.NodeCategory("some_new_thing"))
	})
}

func TestNodeValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires name and category", func(t *testing.T) {
		t.Parallel()

		node := &gripdoc.Node{Name: "Load Image", Category: "Image"}
		assert.NoError(t, node.Validate())

		assert.Equal(t, gripdoc.EINVALID, gripdoc.ErrorCode((&gripdoc.Node{Category: "Image"}).Validate()))
		assert.Equal(t, gripdoc.EINVALID, gripdoc.ErrorCode((&gripdoc.Node{Name: "Load Image"}).Validate()))
	})
}
