package fat

import "encoding/binary"

// fat16Fixture builds a minimal, well-formed FAT16 image in memory: one
// reserved sector, 2 FAT copies, a fixed 16-entry root directory, and
// numClusters data clusters. The returned fixture carries the raw bytes
// plus the byte offsets of FAT #0, the root directory and cluster 2's data,
// so tests can drop fixture file content in directly.
type fat16Fixture struct {
	image             []byte
	bytesPerSector    uint32
	sectorsPerCluster uint32
	fatStart          uint32 // byte offset of FAT #0
	rootStart         uint32 // byte offset of the fixed root directory
	dataStart         uint32 // byte offset of cluster 2
}

func newFAT16Fixture(numClusters int) *fat16Fixture {
	const (
		bytesPerSector    = 512
		sectorsPerCluster = 1
		reservedSectors   = 1
		numFATs           = 2
		rootEntryCount    = 16
		fatSizeSectors    = 1
	)

	rootDirSectors := (rootEntryCount*32 + bytesPerSector - 1) / bytesPerSector
	firstDataSector := reservedSectors + numFATs*fatSizeSectors + rootDirSectors
	totalSectors := firstDataSector + numClusters*sectorsPerCluster

	image := make([]byte, totalSectors*bytesPerSector)

	// BSJumpBoot + signature so NewHeader's validation passes.
	image[0], image[1], image[2] = 0xEB, 0x3C, 0x90
	image[510], image[511] = 0x55, 0xAA

	put16 := func(off int, v uint16) { binary.LittleEndian.PutUint16(image[off:], v) }

	put16(11, bytesPerSector)
	image[13] = sectorsPerCluster
	put16(14, reservedSectors)
	image[16] = numFATs
	put16(17, rootEntryCount)
	put16(19, uint16(totalSectors))
	image[21] = 0xF8
	put16(22, fatSizeSectors) // FATSize16

	f := &fat16Fixture{
		image:             image,
		bytesPerSector:    bytesPerSector,
		sectorsPerCluster: sectorsPerCluster,
		fatStart:          reservedSectors * bytesPerSector,
		rootStart:         uint32(reservedSectors+numFATs*fatSizeSectors) * bytesPerSector,
		dataStart:         uint32(firstDataSector) * bytesPerSector,
	}

	// Reserve FAT entries 0 and 1 per convention (media descriptor + EOC).
	put16(int(f.fatStart), 0xFFF8)
	put16(int(f.fatStart)+2, 0xFFFF)

	return f
}

func (f *fat16Fixture) setFATEntry(cluster uint32, value uint16) {
	binary.LittleEndian.PutUint16(f.image[f.fatStart+cluster*2:], value)
}

func (f *fat16Fixture) clusterOffset(cluster uint32) uint32 {
	return f.dataStart + (cluster-2)*f.bytesPerSector*f.sectorsPerCluster
}

func (f *fat16Fixture) header(t testingT) *Header {
	t.Helper()
	h, err := NewHeader(f.image)
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	return h
}

// putShortEntry writes a short directory entry at the given byte offset
// within the image.
func putShortEntry(image []byte, off int, name [11]byte, attr byte, cluster uint32, size uint32) {
	copy(image[off:off+11], name[:])
	image[off+11] = attr
	binary.LittleEndian.PutUint16(image[off+20:], uint16(cluster>>16))
	binary.LittleEndian.PutUint16(image[off+26:], uint16(cluster))
	binary.LittleEndian.PutUint32(image[off+28:], size)
}

func sfn(s string) [11]byte {
	var out [11]byte
	for i := range out {
		out[i] = ' '
	}
	copy(out[:], s)
	return out
}

// putLongNameEntry writes one VFAT long-name slot. seq is 1-based; set
// the 0x40 bit via isLast for the first (highest-ordered, written-earliest)
// slot of a group.
func putLongNameEntry(image []byte, off int, seq byte, isLast bool, checksum byte, chars string) {
	ord := seq
	if isLast {
		ord |= 0x40
	}
	image[off] = ord
	image[off+11] = AttrLongName
	image[off+12] = 0
	image[off+13] = checksum

	units := make([]uint16, 13)
	for i := range units {
		units[i] = 0xFFFF
	}
	for i, r := range chars {
		if i >= 13 {
			break
		}
		units[i] = uint16(r)
	}
	if len(chars) < 13 {
		units[len(chars)] = 0x0000
	}

	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint16(image[off+1+2*i:], units[i])
	}
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint16(image[off+14+2*i:], units[5+i])
	}
	for i := 0; i < 2; i++ {
		binary.LittleEndian.PutUint16(image[off+28+2*i:], units[11+i])
	}
}

type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
