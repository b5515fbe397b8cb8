// Package fat implements a read-only FAT12/16/32 structural parser: header
// classification, cluster-chain math, directory walking with VFAT long-name
// reassembly, short-name extraction, path resolution and whole/partial file
// reads. FAT12 is recognized but never supported, and nothing in this
// package ever writes to the underlying image.
package fat

// BPB is the common BIOS Parameter Block shared by FAT12/16/32, as laid out
// in the first 36 bytes of the boot sector, followed by the raw 54-byte
// type-specific tail (FATSpecificData) that FAT16Ext/FAT32Ext overlay.
type BPB struct {
	BSJumpBoot          [3]byte
	BSOEMName           [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   byte
	ReservedSectorCount uint16
	NumFATs             byte
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	TotalSectors32      uint32
	FATSpecificData     [54]byte
}

// FAT16Ext is the FAT16-specific tail of the boot sector, overlaid on
// BPB.FATSpecificData.
type FAT16Ext struct {
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSig        byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte
}

// FAT32Ext is the FAT32-specific extension record, overlaid on
// BPB.FATSpecificData.
type FAT32Ext struct {
	FATSize32        uint32
	ExtFlags         uint16
	FSVersion        uint16
	RootCluster      uint32
	FSInfo           uint16
	BkBootSector     uint16
	Reserved         [12]byte
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSig        byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte
}

// Attribute bits for a short directory entry.
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
	// AttrLongName marks a long-name (VFAT) entry: all four of the above set
	// at once, which can never happen on a real short entry.
	AttrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID
)

// NTRes bits controlling runtime lower-case folding of the 8.3 name.
const (
	ntResBaseLower = 0x08
	ntResExtLower  = 0x10
)

// entrySize is the fixed size in bytes of any directory slot, short or long.
const entrySize = 32

// DirEntry is a 32-byte short directory entry, decoded in place from the
// on-disk layout (little-endian).
type DirEntry struct {
	Name         [11]byte
	Attr         byte
	NTRes        byte
	CrtTimeTenth byte
	CrtTime      uint16
	CrtDate      uint16
	LstAccDate   uint16
	FstClusHI    uint16
	WrtTime      uint16
	WrtDate      uint16
	FstClusLO    uint16
	FileSize     uint32
}

// IsDir reports whether the entry has the directory attribute set.
func (e *DirEntry) IsDir() bool { return e.Attr&AttrDirectory != 0 }

// IsVolumeID reports whether the entry is a volume label, not a real file.
func (e *DirEntry) IsVolumeID() bool { return e.Attr&AttrVolumeID != 0 }

// FirstCluster reassembles the entry's starting cluster number from its
// high/low halves. On FAT16, FstClusHI is always 0.
func (e *DirEntry) FirstCluster() uint32 {
	return uint32(e.FstClusHI)<<16 | uint32(e.FstClusLO)
}

// longNameEntry is a VFAT long-name directory slot. It shares the 32-byte
// slot encoding but is recognized by AttrLongName instead of being decoded
// as a DirEntry.
type longNameEntry struct {
	Ord      byte
	Name1    [5]uint16
	Attr     byte
	Type     byte
	Checksum byte
	Name2    [6]uint16
	FstClusLO uint16
	Name3    [2]uint16
}

