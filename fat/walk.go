package fat

import (
	"encoding/binary"
	"errors"

	"github.com/aligator/kfat/checkpoint"
)

// ErrBadCluster is raised (as a panic, not a returned error — see
// SPEC_FULL.md §7) when the walker or reader follows a FAT chain
// link into a cluster marked bad. A well-formed image never does this; it
// is a program-invariant violation, the same class of fault spec.md treats
// as fatal for the kernel this design sits inside of.
var ErrBadCluster = errors.New("cluster chain references a bad cluster")

// walkCtx accumulates a VFAT long-name group across the reverse-ordered
// sequence of long-name entries that precede a short entry.
type walkCtx struct {
	buf      []uint16
	checksum byte
	valid    bool
	started  bool
}

func (c *walkCtx) reset(checksum byte) {
	c.buf = c.buf[:0]
	c.checksum = checksum
	c.valid = true
	c.started = true
}

// accumulate folds one long-name entry's 13 UTF-16 code units into the
// context, in on-disk (reverse) order. It invalidates the group on a
// non-zero high byte (a code unit above 0xFF, so not ASCII) or an illegal
// character; it stops within this entry at a NUL or 0xFFFF filler unit but
// does not by itself terminate the whole group (callers keep folding
// earlier entries).
func (c *walkCtx) accumulate(e *longNameEntry) {
	if !c.started || e.Checksum != c.checksum {
		c.reset(e.Checksum)
	}

	// Collect this entry's valid characters in their on-disk (forward)
	// order first, then append them to buf reversed: entries themselves
	// arrive in reverse ordinal order, so reversing each one's contents
	// before appending means a single whole-buffer reversal in name()
	// restores the original forward name.
	var local []uint16
	appendRange := func(units []uint16) {
		for _, u := range units {
			if u == 0x0000 || u == 0xFFFF {
				return
			}
			if u > 0xFF {
				c.valid = false
				continue
			}
			if !isLegalShortNameChar(byte(u)) {
				c.valid = false
				continue
			}
			local = append(local, u)
		}
	}
	appendRange(e.Name1[:])
	appendRange(e.Name2[:])
	appendRange(e.Name3[:])

	for i := len(local) - 1; i >= 0; i-- {
		c.buf = append(c.buf, local[i])
	}
}

// name returns the accumulated long name as a string, reversing the
// on-disk-reverse-ordered buffer in place first, or "" if nothing valid was
// accumulated.
func (c *walkCtx) name() string {
	if !c.started || !c.valid || len(c.buf) == 0 {
		return ""
	}
	for i, j := 0, len(c.buf)-1; i < j; i, j = i+1, j-1 {
		c.buf[i], c.buf[j] = c.buf[j], c.buf[i]
	}
	out := make([]byte, len(c.buf))
	for i, u := range c.buf {
		out[i] = byte(u)
	}
	return string(out)
}

// shortNameChecksum computes the 1-byte rotate-right sum over the 11-byte
// 8.3 name that binds a group of long-name entries to their short entry.
func shortNameChecksum(name [11]byte) byte {
	var sum byte
	for _, c := range name {
		sum = (((sum & 1) << 7) | ((sum & 0xFE) >> 1)) + c
	}
	return sum
}

// WalkFunc is called once per non-reserved short entry found by Walk, in
// directory order. longName is "" if no valid VFAT long name preceded the
// entry. Returning true stops the walk early.
type WalkFunc func(entry *DirEntry, longName string) (stop bool)

// Walk iterates every non-reserved short entry of a directory and invokes fn
// for each. If cluster != 0 it walks the cluster chain starting at that
// cluster (ignoring rootData); if cluster == 0 it walks the single, fixed
// rootData region instead (the FAT16 root-directory case, which is not a
// chain). The walk stops when fn returns true, when it reaches the
// terminating 0x00 name byte, or — for the chained case — when the chain's
// EOC marker is reached. Following a bad cluster mid-chain panics.
func Walk(h *Header, cluster uint32, rootData []byte, fn WalkFunc) error {
	var ctx walkCtx
	data := rootData
	if cluster != 0 {
		data = clusterData(h, cluster)
	}

	for {
		stop, done, err := walkBlock(h, data, &ctx, fn)
		if err != nil {
			return err
		}
		if stop || done {
			return nil
		}
		if cluster == 0 {
			// FAT16 fixed root directory: not a chain, nothing more to read.
			return nil
		}

		next, err := readFATEntry(h, cluster, 0)
		if err != nil {
			return checkpoint.Wrap(err, errors.New("reading FAT entry while walking directory"))
		}
		if isEOC(h.fatType, next) {
			return nil
		}
		if isBad(h.fatType, next) {
			panic(ErrBadCluster)
		}
		cluster = next
		data = clusterData(h, cluster)
	}
}

// walkBlock processes one contiguous directory block (one cluster, or the
// whole FAT16 root range). done reports the 0x00 sentinel was reached.
func walkBlock(h *Header, data []byte, ctx *walkCtx, fn WalkFunc) (stop, done bool, err error) {
	for off := 0; off+entrySize <= len(data); off += entrySize {
		slot := data[off : off+entrySize]

		switch slot[0] {
		case 0x00:
			return false, true, nil
		case 0xE5:
			continue
		}

		attr := slot[11]
		if attr&AttrLongName == AttrLongName {
			var lfn longNameEntry
			decodeLongNameEntry(slot, &lfn)
			ctx.accumulate(&lfn)
			continue
		}

		if attr&AttrVolumeID != 0 {
			ctx.started = false
			continue
		}

		var entry DirEntry
		decodeDirEntry(slot, &entry)

		longName := ""
		if ctx.started && ctx.valid && shortNameChecksum(entry.Name) == ctx.checksum {
			longName = ctx.name()
		}
		ctx.started = false

		if fn(&entry, longName) {
			return true, false, nil
		}
	}
	return false, false, nil
}

func decodeDirEntry(slot []byte, e *DirEntry) {
	copy(e.Name[:], slot[0:11])
	e.Attr = slot[11]
	e.NTRes = slot[12]
	e.CrtTimeTenth = slot[13]
	e.CrtTime = binary.LittleEndian.Uint16(slot[14:16])
	e.CrtDate = binary.LittleEndian.Uint16(slot[16:18])
	e.LstAccDate = binary.LittleEndian.Uint16(slot[18:20])
	e.FstClusHI = binary.LittleEndian.Uint16(slot[20:22])
	e.WrtTime = binary.LittleEndian.Uint16(slot[22:24])
	e.WrtDate = binary.LittleEndian.Uint16(slot[24:26])
	e.FstClusLO = binary.LittleEndian.Uint16(slot[26:28])
	e.FileSize = binary.LittleEndian.Uint32(slot[28:32])
}

func decodeLongNameEntry(slot []byte, l *longNameEntry) {
	l.Ord = slot[0]
	for i := 0; i < 5; i++ {
		l.Name1[i] = binary.LittleEndian.Uint16(slot[1+2*i:])
	}
	l.Attr = slot[11]
	l.Type = slot[12]
	l.Checksum = slot[13]
	for i := 0; i < 6; i++ {
		l.Name2[i] = binary.LittleEndian.Uint16(slot[14+2*i:])
	}
	l.FstClusLO = binary.LittleEndian.Uint16(slot[26:28])
	for i := 0; i < 2; i++ {
		l.Name3[i] = binary.LittleEndian.Uint16(slot[28+2*i:])
	}
}
