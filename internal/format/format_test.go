package format

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gabi/cli/internal/gabi"
)

func response(t *testing.T, body string) *gabi.QueryResponse {
	t.Helper()
	var r gabi.QueryResponse
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatal(err)
	}
	return &r
}

func TestWriteSingleCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	res := response(t, `{"result":[["1"]],"error":null}`)

	if err := Write(path, res, "\t", true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "\"1\"\r\n" {
		t.Errorf("output = %q, want %q", got, "\"1\"\r\n")
	}
}

func TestWriteDelimitedRoundTrip(t *testing.T) {
	// Cells containing the separator, quotes, and newlines must survive a
	// parse with a standard CSV reader.
	path := filepath.Join(t.TempDir(), "out.csv")
	res := response(t, `{"result":[["a,b","say \"hi\"","line\nbreak"],["",null,"plain"]],"error":null}`)

	if err := Write(path, res, ",", true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	want := [][]string{
		{"a,b", `say "hi"`, "line\nbreak"},
		{"", "", "plain"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("round-trip = %v, want %v", records, want)
	}
}

func TestWriteCustomSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	res := response(t, `{"result":[["x","y"]],"error":null}`)

	if err := Write(path, res, "|", true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "\"x\"|\"y\"\r\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteNumbersKeepLiteralForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	res := response(t, `{"result":[[1,2.5,9007199254740993,true]],"error":null}`)

	if err := Write(path, res, "\t", true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	want := "\"1\"\t\"2.5\"\t\"9007199254740993\"\t\"true\"\r\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteJSONVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	res := response(t, `{"result":[["1"]],"error":null}`)

	if err := Write(path, res, "\t", false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != `[["1"]]` {
		t.Errorf("output = %q, want %q", got, `[["1"]]`)
	}

	var parsed [][]string
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, [][]string{{"1"}}) {
		t.Errorf("parsed = %v", parsed)
	}
}

func TestWriteNullResultCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	res := response(t, `{"result":null,"error":null}`)

	if err := Write(path, res, "\t", true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestWriteBadPath(t *testing.T) {
	res := response(t, `{"result":[["1"]],"error":null}`)
	err := Write(filepath.Join(t.TempDir(), "missing", "out.tsv"), res, "\t", true)
	if err == nil || !strings.Contains(err.Error(), "create output file") {
		t.Errorf("Write() error = %v, want create failure", err)
	}
}
