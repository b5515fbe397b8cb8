package fat

import "strings"

// ShortName extracts and formats a short entry's 8.3 name: 8 base bytes up
// to the first space, then (if the 9th byte is not a space) a '.' and up to
// 3 extension bytes up to the next space. NTRes bits 3/4 independently fold
// the base and extension to lower case at read time, matching the runtime
// case-folding the FAT spec reserves those bits for.
func ShortName(e *DirEntry) string {
	base := trimTrailingSpace(e.Name[0:8])
	ext := trimTrailingSpace(e.Name[8:11])

	if e.NTRes&ntResBaseLower != 0 {
		base = strings.ToLower(base)
	}
	if e.NTRes&ntResExtLower != 0 {
		ext = strings.ToLower(ext)
	}

	if ext == "" {
		return base
	}
	return base + "." + ext
}

func trimTrailingSpace(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return string(b[:end])
}
