package fat

import (
	"bytes"
	"testing"
)

func TestReadWhole_SingleCluster(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)

	content := []byte("hello, world")
	f.setFATEntry(2, 0xFFFF)
	copy(f.image[f.clusterOffset(2):], content)

	entry := &DirEntry{FstClusLO: 2, FileSize: uint32(len(content))}
	dest := make([]byte, len(content))
	n, err := ReadWhole(h, entry, dest)
	if err != nil {
		t.Fatalf("ReadWhole: %v", err)
	}
	if n != len(content) || !bytes.Equal(dest, content) {
		t.Fatalf("ReadWhole = %q (%d bytes), want %q", dest[:n], n, content)
	}
}

func TestReadWhole_DestTooSmall(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)

	entry := &DirEntry{FstClusLO: 2, FileSize: 100}
	_, err := ReadWhole(h, entry, make([]byte, 10))
	if err != ErrDestTooSmall {
		t.Fatalf("err = %v, want ErrDestTooSmall", err)
	}
}

func TestReadWhole_SpansMultipleClusters(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)
	csize := int(clusterSize(h))

	f.setFATEntry(2, 3)
	f.setFATEntry(3, 0xFFFF)

	part1 := bytes.Repeat([]byte{0xAA}, csize)
	part2 := []byte("tail bytes")
	copy(f.image[f.clusterOffset(2):], part1)
	copy(f.image[f.clusterOffset(3):], part2)

	want := append(append([]byte{}, part1...), part2...)
	entry := &DirEntry{FstClusLO: 2, FileSize: uint32(len(want))}
	dest := make([]byte, len(want))

	n, err := ReadWhole(h, entry, dest)
	if err != nil {
		t.Fatalf("ReadWhole: %v", err)
	}
	if n != len(want) || !bytes.Equal(dest, want) {
		t.Fatal("spanning read did not reproduce the expected content")
	}
}

func TestReadAt_OffsetWithinFirstCluster(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)

	content := []byte("0123456789")
	f.setFATEntry(2, 0xFFFF)
	copy(f.image[f.clusterOffset(2):], content)

	entry := &DirEntry{FstClusLO: 2, FileSize: uint32(len(content))}
	dest := make([]byte, 4)
	n, err := ReadAt(h, entry, 3, dest)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != 4 || string(dest) != "3456" {
		t.Fatalf("ReadAt(3, 4 bytes) = %q, want 3456", dest[:n])
	}
}

func TestReadAt_OffsetPastEnd(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)

	entry := &DirEntry{FstClusLO: 2, FileSize: 5}
	n, err := ReadAt(h, entry, 10, make([]byte, 4))
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0 for offset past end of file", n)
	}
}

func TestReadAt_TruncatesToRemainingSize(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)

	content := []byte("0123456789")
	f.setFATEntry(2, 0xFFFF)
	copy(f.image[f.clusterOffset(2):], content)

	entry := &DirEntry{FstClusLO: 2, FileSize: uint32(len(content))}
	dest := make([]byte, 100)
	n, err := ReadAt(h, entry, 8, dest)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != 2 || string(dest[:n]) != "89" {
		t.Fatalf("ReadAt(8, 100 bytes) = %q (%d), want 89 (2)", dest[:n], n)
	}
}

func TestReadAt_SkipsWholeClustersBeforeOffset(t *testing.T) {
	f := newFAT16Fixture(4085 + 10)
	h := f.header(t)
	csize := int(clusterSize(h))

	f.setFATEntry(2, 3)
	f.setFATEntry(3, 0xFFFF)

	part1 := bytes.Repeat([]byte{0xAA}, csize)
	part2 := []byte("second cluster content")
	copy(f.image[f.clusterOffset(2):], part1)
	copy(f.image[f.clusterOffset(3):], part2)

	entry := &DirEntry{FstClusLO: 2, FileSize: uint32(csize + len(part2))}
	dest := make([]byte, len(part2))
	n, err := ReadAt(h, entry, int64(csize), dest)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if n != len(part2) || !bytes.Equal(dest, part2) {
		t.Fatalf("ReadAt at cluster boundary = %q, want %q", dest[:n], part2)
	}
}
