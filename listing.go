package flashair

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/girtsf/flashair/data"
)

// listingHeader is the literal first line of every file-list response.
const listingHeader = "WLANSD_FILELIST"

// Maximum number of splits applied to a listing line. Lines are split
// from the right so surplus commas accumulate into the leftmost field,
// matching the device's own tolerance. Do not make this parser smarter
// than the wire format deserves.
const listingSplits = 6

// DecodeListing parses the raw body of a file-list response into records,
// preserving device order. The whole listing fails on the first malformed
// line; no partial results are returned.
func DecodeListing(body []byte) ([]data.FileRecord, error) {
	lines := strings.Split(string(body), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	if len(lines) == 0 || lines[0] != listingHeader {
		return nil, fmt.Errorf("%w: missing %s marker", ErrProtocol, listingHeader)
	}

	var records []data.FileRecord
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}

		rec, err := decodeListingLine(line)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// decodeListingLine parses one "dir,name,size,attr,date,time" line.
func decodeListingLine(line string) (data.FileRecord, error) {
	fields := rsplit(line, ",", listingSplits)
	if len(fields) < 6 {
		return data.FileRecord{}, fmt.Errorf("%w: %q", ErrParse, line)
	}

	size, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return data.FileRecord{}, fmt.Errorf("%w: bad size in %q", ErrParse, line)
	}

	attr, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return data.FileRecord{}, fmt.Errorf("%w: bad attribute in %q", ErrParse, line)
	}

	date, err := strconv.ParseUint(fields[4], 10, 16)
	if err != nil {
		return data.FileRecord{}, fmt.Errorf("%w: bad date in %q", ErrParse, line)
	}

	tim, err := strconv.ParseUint(fields[5], 10, 16)
	if err != nil {
		return data.FileRecord{}, fmt.Errorf("%w: bad time in %q", ErrParse, line)
	}

	return data.FileRecord{
		Directory: fields[0],
		Name:      fields[1],
		Size:      size,
		Attr:      data.DecodeAttributes(uint8(attr)),
		Time:      data.DecodeDateTime(uint16(date), uint16(tim)),
	}, nil
}

// rsplit splits s on sep from the right, performing at most n splits, so
// the leftmost field absorbs any extra separators.
func rsplit(s, sep string, n int) []string {
	var tail []string
	for len(tail) < n {
		idx := strings.LastIndex(s, sep)
		if idx < 0 {
			break
		}
		tail = append([]string{s[idx+len(sep):]}, tail...)
		s = s[:idx]
	}
	return append([]string{s}, tail...)
}
