package fat

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/aligator/kfat/checkpoint"
)

// FATType identifies which on-disk FAT layout a volume uses.
type FATType int

const (
	Unknown FATType = iota
	FAT12
	FAT16
	FAT32
)

func (t FATType) String() string {
	switch t {
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	default:
		return "unknown"
	}
}

// Errors surfaced while parsing or navigating a mounted image.
var (
	ErrShortImage       = errors.New("image too short to contain a boot sector")
	ErrInvalidBootSig   = errors.New("missing 0x55 0xAA boot sector signature")
	ErrInvalidJump      = errors.New("no valid jump instruction at the start of the boot sector")
	ErrInvalidBPB       = errors.New("invalid BIOS parameter block field")
	ErrFAT12Unsupported = errors.New("FAT12 is recognized but not supported")
)

// Header is a mounted FAT volume: the raw image bytes plus the decoded BPB
// and the fields derived from it. All sector/cluster arithmetic is relative
// to Header.raw[0]; there is no block-device abstraction and no cache,
// since the whole image is memory-resident (spec: the image is a single
// contiguous byte buffer).
type Header struct {
	raw []byte

	bpb      BPB
	fat32Ext FAT32Ext

	fatType FATType

	firstDataSector uint32
	fatSize         uint32 // sectors per FAT (16 or 32 bit variant, whichever is set)
	rootDirSectors  uint32 // FAT16/12 only
}

// NewHeader parses the boot sector at the start of image and validates the
// BPB invariants the FAT spec requires, then classifies the FAT type and
// rejects FAT12 and unclassifiable volumes. The classification is cached;
// callers read it back with Type.
func NewHeader(image []byte) (*Header, error) {
	h, err := parseHeader(image)
	if err != nil {
		return nil, err
	}

	h.fatType = classify(h)
	if h.fatType == FAT12 {
		return nil, checkpoint.From(ErrFAT12Unsupported)
	}
	if h.fatType == Unknown {
		return nil, checkpoint.From(errors.New("could not determine FAT type"))
	}
	return h, nil
}

// parseHeader decodes and validates the BPB without yet classifying (and
// therefore without rejecting FAT12) — split out so tests can exercise
// classify() directly across its threshold.
func parseHeader(image []byte) (*Header, error) {
	if len(image) < 512 {
		return nil, checkpoint.From(ErrShortImage)
	}

	h := &Header{raw: image}

	if err := binary.Read(bytes.NewReader(image[:36+54]), binary.LittleEndian, &h.bpb); err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidBPB)
	}

	if !(h.bpb.BSJumpBoot[0] == 0xEB && h.bpb.BSJumpBoot[2] == 0x90) && h.bpb.BSJumpBoot[0] != 0xE9 {
		return nil, checkpoint.From(ErrInvalidJump)
	}
	if image[510] != 0x55 || image[511] != 0xAA {
		return nil, checkpoint.From(ErrInvalidBootSig)
	}
	if h.bpb.BytesPerSector != 512 && h.bpb.BytesPerSector != 1024 &&
		h.bpb.BytesPerSector != 2048 && h.bpb.BytesPerSector != 4096 {
		return nil, checkpoint.Wrap(fmt.Errorf("bytes per sector %d", h.bpb.BytesPerSector), ErrInvalidBPB)
	}
	if h.bpb.SectorsPerCluster == 0 || h.bpb.SectorsPerCluster&(h.bpb.SectorsPerCluster-1) != 0 {
		return nil, checkpoint.Wrap(fmt.Errorf("sectors per cluster %d", h.bpb.SectorsPerCluster), ErrInvalidBPB)
	}
	if h.bpb.ReservedSectorCount == 0 {
		return nil, checkpoint.Wrap(errors.New("reserved sector count is 0"), ErrInvalidBPB)
	}
	if h.bpb.NumFATs < 1 {
		return nil, checkpoint.Wrap(errors.New("FAT count is 0"), ErrInvalidBPB)
	}

	if h.bpb.FATSize16 != 0 {
		h.fatSize = uint32(h.bpb.FATSize16)
	} else {
		if err := binary.Read(bytes.NewReader(h.bpb.FATSpecificData[:]), binary.LittleEndian, &h.fat32Ext); err != nil {
			return nil, checkpoint.Wrap(err, ErrInvalidBPB)
		}
		h.fatSize = h.fat32Ext.FATSize32
	}

	h.rootDirSectors = ((uint32(h.bpb.RootEntryCount) * entrySize) + uint32(h.bpb.BytesPerSector) - 1) / uint32(h.bpb.BytesPerSector)
	h.firstDataSector = uint32(h.bpb.ReservedSectorCount) + uint32(h.bpb.NumFATs)*h.fatSize + h.rootDirSectors

	return h, nil
}

// Type returns the volume's already-classified FAT type.
func (h *Header) Type() FATType { return h.fatType }

// BytesPerSector returns the volume's decoded sector size.
func (h *Header) BytesPerSector() uint32 { return uint32(h.bpb.BytesPerSector) }

// SectorsPerCluster returns the volume's decoded cluster size in sectors.
func (h *Header) SectorsPerCluster() uint32 { return uint32(h.bpb.SectorsPerCluster) }

// classify implements the canonical Microsoft cluster-count threshold rule:
// CountOfClusters = DataSec / SecPerClus, <4085 -> FAT12, <65525 -> FAT16,
// else FAT32.
func classify(h *Header) FATType {
	var totalSectors uint32
	if h.bpb.TotalSectors16 != 0 {
		totalSectors = uint32(h.bpb.TotalSectors16)
	} else {
		totalSectors = h.bpb.TotalSectors32
	}
	if totalSectors <= h.firstDataSector {
		return Unknown
	}
	dataSectors := totalSectors - h.firstDataSector
	countOfClusters := dataSectors / uint32(h.bpb.SectorsPerCluster)

	switch {
	case countOfClusters < 4085:
		return FAT12
	case countOfClusters < 65525:
		return FAT16
	default:
		return FAT32
	}
}

// readFATEntry returns the raw next-cluster value for cluster within FAT
// copy fatIndex: a 16-bit value zero-extended for FAT16, or the low 28 bits
// of the 32-bit slot for FAT32.
func readFATEntry(h *Header, cluster uint32, fatIndex uint32) (uint32, error) {
	var entrySizeBytes uint32
	switch h.fatType {
	case FAT16:
		entrySizeBytes = 2
	case FAT32:
		entrySizeBytes = 4
	default:
		return 0, checkpoint.From(ErrFAT12Unsupported)
	}

	offset := cluster * entrySizeBytes
	sector := uint32(h.bpb.ReservedSectorCount) + fatIndex*h.fatSize + offset/uint32(h.bpb.BytesPerSector)
	sectorOffset := offset % uint32(h.bpb.BytesPerSector)

	base := sector * uint32(h.bpb.BytesPerSector)
	if int(base+sectorOffset+entrySizeBytes) > len(h.raw) {
		return 0, checkpoint.From(fmt.Errorf("FAT entry for cluster %d out of image bounds", cluster))
	}

	switch h.fatType {
	case FAT16:
		return uint32(binary.LittleEndian.Uint16(h.raw[base+sectorOffset:])), nil
	default: // FAT32
		return binary.LittleEndian.Uint32(h.raw[base+sectorOffset:]) & 0x0FFFFFFF, nil
	}
}

// firstDataSector returns RsvdSecCnt + NumFATs*FATSz + RootDirSectors.
func firstDataSector(h *Header) uint32 { return h.firstDataSector }

// sectorForCluster returns the first sector of cluster N (N >= 2).
func sectorForCluster(h *Header, n uint32) uint32 {
	return (n-2)*uint32(h.bpb.SectorsPerCluster) + h.firstDataSector
}

// clusterSize returns the size in bytes of one cluster.
func clusterSize(h *Header) uint32 {
	return uint32(h.bpb.BytesPerSector) * uint32(h.bpb.SectorsPerCluster)
}

// clusterData returns a slice over cluster N's bytes in the image.
func clusterData(h *Header, n uint32) []byte {
	start := sectorForCluster(h, n) * uint32(h.bpb.BytesPerSector)
	size := clusterSize(h)
	if int(start+size) > len(h.raw) {
		if int(start) >= len(h.raw) {
			return nil
		}
		return h.raw[start:]
	}
	return h.raw[start : start+size]
}

// isEOC reports whether v is the type-specific end-of-chain marker.
func isEOC(t FATType, v uint32) bool {
	switch t {
	case FAT16:
		return v >= 0xFFF8
	case FAT32:
		return v >= 0x0FFFFFF8
	default:
		return false
	}
}

// isBad reports whether v is the type-specific bad-cluster marker.
func isBad(t FATType, v uint32) bool {
	switch t {
	case FAT16:
		return v == 0xFFF7
	case FAT32:
		return v == 0x0FFFFFF7
	default:
		return false
	}
}

// rootDir returns the root directory's start: for FAT16 a sector-range
// pointer with cluster sentinel 0 (not a chain); for FAT32 the first data
// cluster of the chain rooted at the BPB's RootCluster.
func rootDir(h *Header) (data []byte, cluster uint32) {
	if h.fatType == FAT16 {
		rootSector := uint32(h.bpb.ReservedSectorCount) + uint32(h.bpb.NumFATs)*h.fatSize
		start := rootSector * uint32(h.bpb.BytesPerSector)
		size := h.rootDirSectors * uint32(h.bpb.BytesPerSector)
		end := start + size
		if int(end) > len(h.raw) {
			end = uint32(len(h.raw))
		}
		return h.raw[start:end], 0
	}
	return clusterData(h, h.fat32Ext.RootCluster), h.fat32Ext.RootCluster
}

// RootDir is the exported form of rootDir. Consumers outside this package
// (the vfs adapter's directory listing) need it to resolve the FAT16 fixed
// root range whenever a DirEntry.FirstCluster() reports the cluster-0
// sentinel.
func RootDir(h *Header) (data []byte, cluster uint32) {
	return rootDir(h)
}
