package codec

import (
	"bytes"
	"testing"
)

func TestStringTable(t *testing.T) {
	st := NewStringTable()
	defer st.Release()

	st.Add(48, "ok")
	st.Add(56, "")
	st.Add(40, "abc")

	if st.Count() != 2 {
		t.Fatalf("Count = %d, want 2", st.Count())
	}
	if e := st.Entries(); e[0].Offset != 48 || e[1].Offset != 40 {
		t.Errorf("entries not in insertion order: %+v", e)
	}

	got := st.AppendTo(nil)
	want := []byte{
		'C', 'H', 'N', 'K',
		2, 0, 0, 0,
		48, 0, 0, 0, 4, 0, 0, 0, 'o', 'k', 0, 0,
		40, 0, 0, 0, 8, 0, 0, 0, 'a', 'b', 'c', 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendTo\n got: % x\nwant: % x", got, want)
	}
	if st.Size() != len(want) {
		t.Errorf("Size = %d, want %d", st.Size(), len(want))
	}
}

func TestStringTableReset(t *testing.T) {
	st := NewStringTable()
	st.Add(8, "x")
	st.Reset()
	if st.Count() != 0 {
		t.Errorf("Count after Reset = %d", st.Count())
	}
	st.Release()

	again := NewStringTable()
	defer again.Release()
	if again.Count() != 0 {
		t.Errorf("pooled table not empty: %d", again.Count())
	}
}
