package flashair_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/girtsf/flashair"
)

func listingBody(lines ...string) []byte {
	all := append([]string{"WLANSD_FILELIST"}, lines...)
	return []byte(strings.Join(all, "\r\n") + "\r\n")
}

func TestDecodeListing(t *testing.T) {
	// (2020-1980)<<9 | 3<<5 | 15 = 20591; 10<<11 | 30<<5 = 21440
	body := listingBody(
		"/DCIM,PICT0001.JPG,1048576,32,20591,21440",
		"/DCIM,SUB,0,16,20591,21440",
	)

	records, err := flashair.DecodeListing(body)
	if err != nil {
		t.Fatalf("DecodeListing failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	file := records[0]
	if file.Directory != "/DCIM" || file.Name != "PICT0001.JPG" {
		t.Errorf("unexpected file identity: %+v", file)
	}
	if file.Size != 1048576 {
		t.Errorf("Size = %d, want 1048576", file.Size)
	}
	if !file.Attr.Archive || file.Attr.Directory {
		t.Errorf("unexpected attributes: %+v", file.Attr)
	}
	if file.Time.Year != 2020 || file.Time.Month != 3 || file.Time.Day != 15 {
		t.Errorf("unexpected date: %+v", file.Time)
	}
	if file.Time.Hour != 10 || file.Time.Minute != 30 || file.Time.Second != 0 {
		t.Errorf("unexpected time: %+v", file.Time)
	}

	dir := records[1]
	if !dir.Attr.Directory || dir.Size != 0 {
		t.Errorf("expected directory record, got %+v", dir)
	}
}

// TestDecodeListing_RightAnchoredSplit pins the split behavior for lines
// with surplus commas: at most six splits from the right, leftmost field
// absorbs the rest. An embedded comma therefore shifts the numeric fields
// and fails the parse, the same tolerance the device format has always
// had; do not expect anything smarter.
func TestDecodeListing_RightAnchoredSplit(t *testing.T) {
	t.Run("clean line", func(t *testing.T) {
		records, err := flashair.DecodeListing(listingBody("/files,photo.jpg,512,32,20591,21440"))
		if err != nil {
			t.Fatalf("DecodeListing failed: %v", err)
		}
		if records[0].Directory != "/files" || records[0].Name != "photo.jpg" {
			t.Errorf("unexpected identity: %+v", records[0])
		}
		if records[0].Size != 512 {
			t.Errorf("Size = %d, want 512", records[0].Size)
		}
	})

	t.Run("comma in name shifts fields", func(t *testing.T) {
		_, err := flashair.DecodeListing(listingBody("/files,photo, with space.jpg,512,32,20591,21440"))
		if !errors.Is(err, flashair.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})
}

func TestDecodeListing_BadHeader(t *testing.T) {
	bodies := map[string][]byte{
		"wrong marker": []byte("NOT_A_FILELIST\r\n/d,f,1,32,20591,21440\r\n"),
		"empty body":   {},
		"data first":   []byte("/d,f,1,32,20591,21440\r\n"),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			if _, err := flashair.DecodeListing(body); !errors.Is(err, flashair.ErrProtocol) {
				t.Errorf("expected ErrProtocol, got %v", err)
			}
		})
	}
}

func TestDecodeListing_MalformedLine(t *testing.T) {
	lines := map[string]string{
		"too few fields":   "/d,f,1,32",
		"size not numeric": "/d,f,big,32,20591,21440",
		"attr not numeric": "/d,f,1,rw,20591,21440",
		"date not numeric": "/d,f,1,32,today,21440",
		"time not numeric": "/d,f,1,32,20591,now",
	}

	for name, bad := range lines {
		t.Run(name, func(t *testing.T) {
			// A valid line before the bad one must not leak out.
			body := listingBody("/d,ok.txt,1,32,20591,21440", bad)

			records, err := flashair.DecodeListing(body)
			if !errors.Is(err, flashair.ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
			if records != nil {
				t.Errorf("expected no partial results, got %d records", len(records))
			}
			if !strings.Contains(err.Error(), bad) {
				t.Errorf("error %q does not identify line %q", err, bad)
			}
		})
	}
}

func TestDecodeListing_Empty(t *testing.T) {
	records, err := flashair.DecodeListing(listingBody())
	if err != nil {
		t.Fatalf("DecodeListing failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty listing, got %d records", len(records))
	}
}

func TestDecodeListing_OrderPreserved(t *testing.T) {
	var lines []string
	for i := 9; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("/d,file%d.txt,1,32,20591,21440", i))
	}

	records, err := flashair.DecodeListing(listingBody(lines...))
	if err != nil {
		t.Fatalf("DecodeListing failed: %v", err)
	}

	for i, rec := range records {
		want := fmt.Sprintf("file%d.txt", 9-i)
		if rec.Name != want {
			t.Errorf("record %d = %q, want %q (device order must be kept)", i, rec.Name, want)
		}
	}
}
