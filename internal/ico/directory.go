package ico

import (
	"encoding/binary"
	"fmt"
)

// DirEntry is one decoded directory entry. Width and Height are the real
// pixel dimensions (the 0-means-256 convention already undone).
type DirEntry struct {
	Width  int
	Height int
	Planes uint16
	BPP    uint16
	Size   uint32
	Offset uint32
}

// ParseDirectory decodes an icon container's header and directory and
// validates that every entry's payload lies inside data with the declared
// length. It does not decode the payloads themselves.
func ParseDirectory(data []byte) ([]DirEntry, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("ico: truncated header (%d bytes)", len(data))
	}
	if reserved := binary.LittleEndian.Uint16(data[0:2]); reserved != 0 {
		return nil, fmt.Errorf("ico: reserved field = %d, want 0", reserved)
	}
	if imageType := binary.LittleEndian.Uint16(data[2:4]); imageType != 1 {
		return nil, fmt.Errorf("ico: image type = %d, want 1", imageType)
	}

	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if len(data) < headerSize+count*entrySize {
		return nil, fmt.Errorf("ico: directory truncated: %d entries, %d bytes", count, len(data))
	}

	entries := make([]DirEntry, 0, count)
	for i := 0; i < count; i++ {
		raw := data[headerSize+i*entrySize : headerSize+(i+1)*entrySize]
		entry := DirEntry{
			Width:  dimValue(raw[0]),
			Height: dimValue(raw[1]),
			Planes: binary.LittleEndian.Uint16(raw[4:6]),
			BPP:    binary.LittleEndian.Uint16(raw[6:8]),
			Size:   binary.LittleEndian.Uint32(raw[8:12]),
			Offset: binary.LittleEndian.Uint32(raw[12:16]),
		}
		end := uint64(entry.Offset) + uint64(entry.Size)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("ico: entry %d payload [%d:%d] exceeds file size %d", i, entry.Offset, end, len(data))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Payload returns the encoded image bytes for entry within data.
func Payload(data []byte, entry DirEntry) []byte {
	return data[entry.Offset : entry.Offset+entry.Size]
}

func dimValue(b byte) int {
	if b == 0 {
		return 256
	}
	return int(b)
}
