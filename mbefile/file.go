// Package mbefile maps MBE images from disk and writes them back atomically.
package mbefile

import (
	"os"

	"github.com/edsrzf/mmap-go"

	mbe "github.com/wippyai/mbe"
	"github.com/wippyai/mbe/codec"
	"github.com/wippyai/mbe/errors"
)

// File is a read-only memory-mapped MBE image.
type File struct {
	data codec.Bytes
	file *os.File
	m    mmap.MMap
	path string
}

var _ mbe.Buffer = (*File)(nil)

// Open maps path read-only. Zero-length files are not mapped and read as an
// empty buffer.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseIO, errors.KindIO, err, "open "+path)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(errors.PhaseIO, errors.KindIO, err, "stat "+path)
	}
	if info.Size() == 0 {
		file.Close()
		return &File{path: path}, nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(errors.PhaseIO, errors.KindIO, err, "mmap "+path)
	}
	return &File{data: codec.Bytes(m), file: file, m: m, path: path}, nil
}

func (f *File) Read(offset, length uint32) ([]byte, error) {
	return f.data.Read(offset, length)
}

func (f *File) ReadU32(offset uint32) (uint32, error) {
	return f.data.ReadU32(offset)
}

func (f *File) Len() uint32 {
	return f.data.Len()
}

// Bytes returns the mapped image without copying.
func (f *File) Bytes() []byte {
	return f.data
}

func (f *File) Path() string {
	return f.path
}

// Close unmaps the image. Slices obtained from Read are invalid afterwards.
func (f *File) Close() error {
	f.data = nil
	var err error
	if f.m != nil {
		err = f.m.Unmap()
		f.m = nil
	}
	if f.file != nil {
		if cerr := f.file.Close(); err == nil {
			err = cerr
		}
		f.file = nil
	}
	if err != nil {
		return errors.Wrap(errors.PhaseIO, errors.KindIO, err, "close "+f.path)
	}
	return nil
}

// TmpPath is where WriteFile stages data before renaming it over path.
func TmpPath(path string) string {
	return path + ".tmp"
}

// WriteFile writes data to TmpPath(path) and renames it into place, so
// readers never observe a partial image.
func WriteFile(path string, data []byte) error {
	tmp := TmpPath(path)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.PhaseIO, errors.KindIO, err, "write "+tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.PhaseIO, errors.KindIO, err, "rename "+tmp)
	}
	return nil
}
