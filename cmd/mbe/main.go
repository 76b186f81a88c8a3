package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/mbe/codec"
	"github.com/wippyai/mbe/mbefile"
	"github.com/wippyai/mbe/sheet"
)

var (
	layoutTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	layoutType = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	layoutFill = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	layoutDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		outFile     = flag.String("o", "", "Output path (default: input with .xlsx or .mbe extension)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		showLayout  = flag.Bool("layout", false, "Print the row layout")
		interactive = flag.Bool("i", false, "Browse the table in a terminal viewer")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mbe [-o out] [-v] [-layout] <file.mbe|file.xlsx>")
		fmt.Fprintln(os.Stderr, "       mbe -i <file.mbe|file.xlsx>  (interactive viewer)")
		os.Exit(1)
	}
	input := flag.Arg(0)

	log := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			log = l
		}
	}
	defer log.Sync()
	codec.SetLogger(log.Named("codec"))
	sheet.SetLogger(log.Named("sheet"))

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(input); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(input, *outFile, *showLayout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output string, showLayout bool) error {
	switch ext := strings.ToLower(filepath.Ext(input)); ext {
	case ".mbe":
		if output == "" {
			output = replaceExt(input, ".xlsx")
		}
		return decodeFile(input, output, showLayout)
	case ".xlsx":
		if output == "" {
			output = replaceExt(input, ".mbe")
		}
		return encodeFile(input, output, showLayout)
	default:
		return fmt.Errorf("unsupported input %q: want .mbe or .xlsx", ext)
	}
}

func decodeFile(input, output string, showLayout bool) error {
	f, err := mbefile.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	tbl, err := codec.NewDecoder().DecodeBuffer(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}
	if showLayout {
		if err := printLayout(os.Stdout, tbl.Name, tbl.Schema); err != nil {
			return err
		}
	}

	if err := sheet.WriteFile(output, tbl); err != nil {
		return err
	}
	fmt.Printf("%s: %d rows -> %s\n", tbl.Name, len(tbl.Rows), output)
	return nil
}

func encodeFile(input, output string, showLayout bool) error {
	wb, err := sheet.ReadFile(input)
	if err != nil {
		return err
	}
	if showLayout {
		if err := printLayout(os.Stdout, wb.Name, wb.Schema); err != nil {
			return err
		}
	}

	data, err := codec.Encode(wb.Name, wb.Schema, wb.Rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}
	if err := mbefile.WriteFile(output, data); err != nil {
		return err
	}
	fmt.Printf("%s: %d rows -> %s (%d bytes)\n", wb.Name, len(wb.Rows), output, len(data))
	return nil
}

// loadTable reads either format into a decoded table.
func loadTable(path string) (*codec.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		wb, err := sheet.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return wb.Table()
	}

	f, err := mbefile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.NewDecoder().DecodeBuffer(f)
}

func printLayout(w io.Writer, name string, schema codec.Schema) error {
	lay, err := codec.ComputeRowLayout(schema)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(layoutTitle.Render(name))
	fmt.Fprintf(&b, " row size %d\n", lay.RowSize)

	header := schema.Header()
	lay.Walk(func(col int, offset, padding uint32) {
		if padding > 0 {
			fill := fmt.Sprintf("0x%02X", codec.PaddingFill(schema, col))
			fmt.Fprintf(&b, "  %s %s\n", layoutDim.Render(fmt.Sprintf("+%-3d pad %d", offset-padding, padding)), layoutFill.Render(fill))
		}
		size := schema[col].Size()
		fmt.Fprintf(&b, "  +%-3d %-14s %d bytes\n", offset, layoutType.Render(header[col]), size)
	})
	if lay.Trailing() > 0 {
		fmt.Fprintf(&b, "  %s\n", layoutDim.Render(fmt.Sprintf("+%-3d pad %d", lay.End, lay.Trailing())))
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
