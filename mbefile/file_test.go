package mbefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/mbe/codec"
	mbeerrors "github.com/wippyai/mbe/errors"
)

func TestWriteFileOpen(t *testing.T) {
	should := require.New(t)
	data, err := codec.Encode("T", codec.Schema{codec.Int, codec.String}, [][]any{{7, "ok"}})
	should.NoError(err)

	path := filepath.Join(t.TempDir(), "t.mbe")
	should.NoError(WriteFile(path, data))
	_, err = os.Stat(TmpPath(path))
	should.True(os.IsNotExist(err), "tmp file left behind")

	f, err := Open(path)
	should.NoError(err)
	defer f.Close()

	should.Equal(uint32(len(data)), f.Len())
	should.Equal(data, f.Bytes())
	should.Equal(path, f.Path())

	tbl, err := codec.NewDecoder().DecodeBuffer(f)
	should.NoError(err)
	should.Equal("ok", tbl.Rows[0][1].Text)
	should.Equal(int32(7), tbl.Rows[0][0].Int)
}

func TestWriteFileReplaces(t *testing.T) {
	should := require.New(t)
	path := filepath.Join(t.TempDir(), "t.mbe")
	should.NoError(os.WriteFile(path, []byte("old contents"), 0o644))
	should.NoError(WriteFile(path, []byte("new")))

	got, err := os.ReadFile(path)
	should.NoError(err)
	should.Equal("new", string(got))
}

func TestOpenEmpty(t *testing.T) {
	should := require.New(t)
	path := filepath.Join(t.TempDir(), "empty.mbe")
	should.NoError(os.WriteFile(path, nil, 0o644))

	f, err := Open(path)
	should.NoError(err)
	defer f.Close()

	should.Equal(uint32(0), f.Len())
	_, err = codec.NewDecoder().DecodeBuffer(f)
	should.ErrorIs(err, mbeerrors.ErrTruncated)
}

func TestOpenMissing(t *testing.T) {
	should := require.New(t)
	_, err := Open(filepath.Join(t.TempDir(), "missing.mbe"))
	var e *mbeerrors.Error
	should.ErrorAs(err, &e)
	should.Equal(mbeerrors.KindIO, e.Kind)
	should.Equal(mbeerrors.PhaseIO, e.Phase)
}

func TestCloseTwice(t *testing.T) {
	should := require.New(t)
	path := filepath.Join(t.TempDir(), "t.mbe")
	should.NoError(WriteFile(path, []byte("EXPA")))

	f, err := Open(path)
	should.NoError(err)
	should.NoError(f.Close())
	should.NoError(f.Close())
	should.Equal(uint32(0), f.Len())
}

func TestWriteFileBadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "t.mbe")
	require.Error(t, WriteFile(path, []byte("x")))
}
