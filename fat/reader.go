package fat

import "errors"

// ErrDestTooSmall is returned by ReadWhole when the destination buffer
// can't hold the entry's declared file size.
var ErrDestTooSmall = errors.New("destination buffer smaller than file size")

// ReadWhole copies an entire file's contents into dest, which must be at
// least entry.FileSize bytes. It is a thin convenience over ReadAt(h,
// entry, 0, dest[:entry.FileSize]).
func ReadWhole(h *Header, entry *DirEntry, dest []byte) (int, error) {
	if uint32(len(dest)) < entry.FileSize {
		return 0, ErrDestTooSmall
	}
	return ReadAt(h, entry, 0, dest[:entry.FileSize])
}

// ReadAt copies min(len(dest), entry.FileSize-offset) bytes starting at
// offset into dest, walking the cluster chain from entry's first cluster.
// Clusters preceding offset are skipped by following the FAT chain without
// copying; the chain is never expected to end before offset+len(dest) is
// satisfied for a well-formed entry, and a premature EOC or a bad cluster
// encountered mid-copy is a program-invariant violation (panics), exactly
// like the rest of this package's fatal-abort error class.
func ReadAt(h *Header, entry *DirEntry, offset int64, dest []byte) (int, error) {
	if offset >= int64(entry.FileSize) || len(dest) == 0 {
		return 0, nil
	}
	remaining := int64(entry.FileSize) - offset
	want := int64(len(dest))
	if want > remaining {
		want = remaining
	}

	csize := int64(clusterSize(h))
	cluster := entry.FirstCluster()

	clustersToSkip := offset / csize
	for i := int64(0); i < clustersToSkip; i++ {
		next, err := readFATEntry(h, cluster, 0)
		if err != nil {
			return 0, err
		}
		if isEOC(h.fatType, next) {
			panic(errors.New("cluster chain ended before reaching the requested offset"))
		}
		if isBad(h.fatType, next) {
			panic(ErrBadCluster)
		}
		cluster = next
	}
	offsetInCluster := offset % csize

	var n int64
	for n < want {
		data := clusterData(h, cluster)
		if int64(offsetInCluster) < int64(len(data)) {
			data = data[offsetInCluster:]
		} else {
			data = nil
		}
		offsetInCluster = 0

		chunk := want - n
		if chunk > int64(len(data)) {
			chunk = int64(len(data))
		}
		copy(dest[n:n+chunk], data[:chunk])
		n += chunk

		if n >= want {
			break
		}

		next, err := readFATEntry(h, cluster, 0)
		if err != nil {
			return int(n), err
		}
		if isEOC(h.fatType, next) {
			panic(errors.New("cluster chain ended before file size was satisfied"))
		}
		if isBad(h.fatType, next) {
			panic(ErrBadCluster)
		}
		cluster = next
	}

	return int(n), nil
}
