package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteText(t *testing.T) {
	cfg := MustNewConfig(WithTarget(t.TempDir()), WithEncoding("gbk"))
	w, err := NewWriter(cfg)
	require.NoError(t, err)

	text := "<note>订单</note>"
	path, err := w.WriteText("sub/order_mapper.xml", []byte(text))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Target, "sub", "order_mapper.xml"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, text, string(raw))
	decoded, err := w.Encoding().NewDecoder().Bytes(raw)
	require.NoError(t, err)
	assert.Equal(t, text, string(decoded))

	_, err = w.WriteText("sub/order_mapper.xml", []byte(text))
	require.Error(t, err, "a path is written once per run")

	m := w.Metrics()
	assert.Equal(t, 1, m.FilesWritten)
	assert.EqualValues(t, len(raw), m.TotalBytes)
}

func TestWriter_WriteGo(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(MustNewConfig(WithTarget(dir)))
	require.NoError(t, err)

	path, err := w.WriteGo("order_mapper.go", []byte("package mappers\nvar   x  =  1\n"))
	require.NoError(t, err)
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "var x = 1\n")

	_, err = w.WriteGo("broken_mapper.go", []byte("package mappers\nfunc {"))
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(dir, "broken_mapper.go"))
	assert.True(t, os.IsNotExist(err))
	debug, err := os.ReadFile(filepath.Join(dir, "broken_mapper.go.error"))
	require.NoError(t, err)
	assert.Equal(t, "package mappers\nfunc {", string(debug))
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8", "gbk", "iso-8859-1", "shift_jis"} {
		_, err := LookupEncoding(name)
		assert.NoError(t, err, name)
	}
	_, err := LookupEncoding("klingon")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
