package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseEncode,
				Kind:       KindValueType,
				Path:       []string{"row[2]", "col[0]"},
				Offset:     NoOffset,
				GoType:     "string",
				ColumnType: "Int",
				Detail:     "cannot convert",
			},
			contains: []string{"[encode]", "value_type", "row[2].col[0]", "string", "Int", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindTruncated,
				Offset: NoOffset,
			},
			contains: []string{"[decode]", "truncated"},
		},
		{
			name: "magic mismatch",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindFormat,
				Offset:   0x24,
				Expected: "CHNK",
				Found:    "XXXX",
			},
			contains: []string{"format", "offset 0x24", `expected "CHNK"`, `found "XXXX"`},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseIO,
				Kind:   KindIO,
				Offset: NoOffset,
				Detail: "open failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[io]", "open failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoOffsetOmitted(t *testing.T) {
	err := New(PhaseHeader, KindSchema).Detail("bad").Build()
	if strings.Contains(err.Error(), "offset") {
		t.Errorf("unexpected offset in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindFormat,
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindFormat}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindFormat}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTruncated}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrFormat) {
		t.Error("errors.Is should match phase-less sentinel")
	}
	if errors.Is(err, ErrTruncated) {
		t.Error("errors.Is should not match other sentinel")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindFormat).
		Path("row[0]", "col[1]").
		Offset(40).
		GoType("int32").
		ColumnType("String").
		Expected("CHNK", "XXXX").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "a", "b").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindFormat {
		t.Errorf("Kind = %v, want %v", err.Kind, KindFormat)
	}
	if len(err.Path) != 2 || err.Path[0] != "row[0]" || err.Path[1] != "col[1]" {
		t.Errorf("Path = %v, want [row[0] col[1]]", err.Path)
	}
	if err.Offset != 40 {
		t.Errorf("Offset = %d, want 40", err.Offset)
	}
	if err.GoType != "int32" || err.ColumnType != "String" {
		t.Errorf("GoType=%v ColumnType=%v", err.GoType, err.ColumnType)
	}
	if err.Expected != "CHNK" || err.Found != "XXXX" {
		t.Errorf("Expected=%v Found=%v", err.Expected, err.Found)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected a, got b" {
		t.Errorf("Detail = %v, want 'expected a, got b'", err.Detail)
	}
}

func TestBuilder_DefaultOffset(t *testing.T) {
	if err := New(PhaseEncode, KindOverflow).Build(); err.Offset != NoOffset {
		t.Errorf("Offset = %d, want NoOffset", err.Offset)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Schema", func(t *testing.T) {
		err := Schema([]string{"col[0]"}, "Float (1)", "unknown type")
		if err.Kind != KindSchema || err.Phase != PhaseHeader {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, ErrSchema) {
			t.Error("should match ErrSchema")
		}
	})

	t.Run("BadMagic", func(t *testing.T) {
		err := BadMagic(PhaseDecode, 0, "EXPA", []byte("ABCD"))
		if err.Kind != KindFormat || err.Found != "ABCD" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Format", func(t *testing.T) {
		err := Format(PhaseDecode, 16, "unknown type code 0x%x", 5)
		if err.Detail != "unknown type code 0x5" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Truncated(PhaseDecode, 100, 8, 3)
		if err.Kind != KindTruncated {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTruncated)
		}
		if !strings.Contains(err.Detail, "8") || !strings.Contains(err.Detail, "3") {
			t.Errorf("Detail = %v, should contain sizes", err.Detail)
		}
	})

	t.Run("ValueType", func(t *testing.T) {
		err := ValueType(PhaseEncode, []string{"row[0]"}, "string", "Int", "abc")
		if err.Kind != KindValueType {
			t.Errorf("Kind = %v, want %v", err.Kind, KindValueType)
		}
		if err.Value != "abc" {
			t.Errorf("Value = %v", err.Value)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseEncode, []string{"val"}, 300, "u8")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("disk")
		err := Wrap(PhaseIO, KindIO, cause, "write")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause")
		}
	})
}
