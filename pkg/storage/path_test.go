package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty is root", "", ""},
		{"slash is root", "/", ""},
		{"dot is root", ".", ""},
		{"plain file", "file.txt", "file.txt"},
		{"leading slash stripped", "/dir/file.txt", "dir/file.txt"},
		{"trailing slash stripped", "dir/sub/", "dir/sub"},
		{"double slashes collapsed", "dir//file.txt", "dir/file.txt"},
		{"dot segments dropped", "dir/./file.txt", "dir/file.txt"},
		{"dotdot resolved in place", "dir/sub/../file.txt", "dir/file.txt"},
		{"brackets kept literal", "some/file[name].txt", "some/file[name].txt"},
		{"braces kept literal", "some/file{name}.txt", "some/file{name}.txt"},
		{"spaces kept literal", "some dir/file name.txt", "some dir/file name.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePathTraversal(t *testing.T) {
	for _, input := range []string{"..", "../file.txt", "dir/../../file.txt"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizePath(input)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "", ParentPath("file.txt"))
	assert.Equal(t, "dir", ParentPath("dir/file.txt"))
	assert.Equal(t, "a/b", ParentPath("a/b/c"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "file.txt", BaseName("file.txt"))
	assert.Equal(t, "file.txt", BaseName("dir/file.txt"))
}

func TestIsChildOf(t *testing.T) {
	assert.True(t, IsChildOf("", "file.txt"))
	assert.True(t, IsChildOf("dir", "dir/file.txt"))
	assert.False(t, IsChildOf("", ""))
	assert.False(t, IsChildOf("dir", "dir"))
	assert.False(t, IsChildOf("dir", "dir/sub/file.txt"))
	assert.False(t, IsChildOf("dir", "directory/file.txt"))
}

func TestIsDescendantOf(t *testing.T) {
	assert.True(t, IsDescendantOf("", "a/b/c"))
	assert.True(t, IsDescendantOf("dir", "dir/sub/file.txt"))
	assert.False(t, IsDescendantOf("dir", "dir"))
	assert.False(t, IsDescendantOf("dir", "directory/file.txt"))
}
