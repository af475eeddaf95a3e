package data

// Attributes holds the decoded FAT attribute flags of a listing entry.
// The flags are independent; the device may report any combination.
type Attributes struct {
	Archive   bool
	Directory bool
	Volume    bool
	System    bool
	Hidden    bool
	ReadOnly  bool
}

// Attribute bit positions within the packed byte.
const (
	attrReadOnly = 1 << 0
	attrHidden   = 1 << 1
	attrSystem   = 1 << 2
	attrVolume   = 1 << 3
	attrDir      = 1 << 4
	attrArchive  = 1 << 5
)

// DecodeAttributes unpacks the attribute byte of a listing entry.
// Bits above bit 5 are ignored.
func DecodeAttributes(attr uint8) Attributes {
	return Attributes{
		Archive:   attr&attrArchive != 0,
		Directory: attr&attrDir != 0,
		Volume:    attr&attrVolume != 0,
		System:    attr&attrSystem != 0,
		Hidden:    attr&attrHidden != 0,
		ReadOnly:  attr&attrReadOnly != 0,
	}
}
