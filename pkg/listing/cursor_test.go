package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	t.Run("site onclick", func(t *testing.T) {
		cb, err := ParseCallback(`return get_page('/all_news/page/7/?day=08&amp;month=01&amp;year=26/','inner','1');`)
		require.NoError(t, err)
		assert.Equal(t, "get_page", cb.Name)
		assert.Equal(t, []string{"/all_news/page/7/?day=08&amp;month=01&amp;year=26/", "inner", "1"}, cb.Args)
	})

	t.Run("double quotes and spaces", func(t *testing.T) {
		cb, err := ParseCallback(` loader.get ( "/a/" , '' ) `)
		require.NoError(t, err)
		assert.Equal(t, "loader.get", cb.Name)
		assert.Equal(t, []string{"/a/", ""}, cb.Args)
	})

	t.Run("no args", func(t *testing.T) {
		cb, err := ParseCallback("reload()")
		require.NoError(t, err)
		assert.Equal(t, "reload", cb.Name)
		assert.Empty(t, cb.Args)
	})

	errCases := map[string]string{
		"no call":         "return false;",
		"no name":         "('/a/')",
		"unquoted":        "get_page(page, 'x')",
		"unterminated":    "get_page('/a/",
		"no closing paren": "get_page('/a/'",
	}
	for name, in := range errCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCallback(in)
			assert.Error(t, err)
		})
	}
}

func TestNextPagePath(t *testing.T) {
	path, ok := NextPagePath(`return get_page('/all_news/page/7/?day=08&amp;month=01&amp;year=26/','inner','1');`)
	require.True(t, ok)
	assert.Equal(t, "/all_news/page/7/?day=08&month=01&year=26/", path)

	_, ok = NextPagePath(`return other('/all_news/page/7/');`)
	assert.False(t, ok, "foreign callback")

	_, ok = NextPagePath(`return get_page();`)
	assert.False(t, ok, "no argument")

	_, ok = NextPagePath(`return get_page('  ');`)
	assert.False(t, ok, "blank argument")

	_, ok = NextPagePath("")
	assert.False(t, ok)
}

func TestResolveLink(t *testing.T) {
	root, err := url.Parse("https://belta.by")
	require.NoError(t, err)

	tbl := []struct {
		in, out string
		err     bool
	}{
		{"/president/view/test-123/", "https://belta.by/president/view/test-123/", false},
		{"president/view/1/", "https://belta.by/president/view/1/", false},
		{"//belta.by/x/", "https://belta.by/x/", false},
		{"https://other.by/a?b=1&amp;c=2", "https://other.by/a?b=1&c=2", false},
		{"/all_news/page/2/?day=08&amp;month=01", "https://belta.by/all_news/page/2/?day=08&month=01", false},
		{"  ", "", true},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			res, err := ResolveLink(root, tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.out, res)
		})
	}
}
