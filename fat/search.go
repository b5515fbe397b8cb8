package fat

import (
	"errors"
	"strings"
)

// Errors returned by SearchEntry, matching spec's {ok, not-found,
// not-a-directory} outcomes (nil err is "ok").
var (
	ErrNotFound    = errors.New("no such file or directory")
	ErrNotDir      = errors.New("not a directory")
	ErrInvalidPath = errors.New("path must be absolute")
)

// rootEntry synthesizes the directory entry for "/": it is never actually
// stored on disk, but every caller that resolves a path needs something
// entry-shaped to report back for the root itself. FirstCluster is 0 for
// FAT16 (the walker's sentinel for "not a chain, use the fixed root
// range") and the real root cluster for FAT32.
func rootEntry(h *Header) *DirEntry {
	_, cluster := rootDir(h)
	return &DirEntry{
		Attr:      AttrDirectory,
		FstClusHI: uint16(cluster >> 16),
		FstClusLO: uint16(cluster),
	}
}

// SearchEntry resolves an absolute path to its directory entry. abspath
// must start with '/'; "/" itself resolves to the synthetic root entry.
// Matching is case-sensitive against a component's VFAT long name when the
// walker supplies one, and case-insensitive against its short name
// otherwise — a deliberate deviation from the FAT spec that lets a
// Unix-style caller depend on case by forcing a long name onto any entry
// that needs it.
func SearchEntry(h *Header, abspath string) (*DirEntry, error) {
	if len(abspath) == 0 || abspath[0] != '/' {
		return nil, ErrInvalidPath
	}
	if abspath == "/" {
		return rootEntry(h), nil
	}

	trailingSlash := strings.HasSuffix(abspath, "/")
	rest := strings.Trim(abspath, "/")

	data, cluster := rootDir(h)

	for {
		comp, remainder, isLast := cutComponent(rest)

		var found *DirEntry
		walkErr := Walk(h, cluster, data, func(entry *DirEntry, longName string) bool {
			if matchesComponent(entry, longName, comp) {
				found = entry
				return true
			}
			return false
		})
		if walkErr != nil {
			return nil, walkErr
		}
		if found == nil {
			return nil, ErrNotFound
		}

		if isLast {
			if trailingSlash && !found.IsDir() {
				return nil, ErrNotDir
			}
			return found, nil
		}

		if !found.IsDir() {
			return nil, ErrNotDir
		}

		cluster = found.FirstCluster()
		if cluster == 0 {
			data, cluster = rootDir(h)
		} else {
			data = nil
		}
		rest = remainder
	}
}

// cutComponent splits off the next '/'-delimited path component from a
// slash-trimmed path remainder.
func cutComponent(rest string) (comp, remainder string, isLast bool) {
	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], rest[idx+1:], false
}

func matchesComponent(entry *DirEntry, longName, comp string) bool {
	if longName != "" {
		return longName == comp
	}
	return strings.EqualFold(ShortName(entry), comp)
}
