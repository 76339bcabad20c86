package format

// AlignBlock returns n aligned up to the next BlockAlignment boundary.
//
// Example:
//
//	AlignBlock(1)  = 8
//	AlignBlock(8)  = 8
//	AlignBlock(60) = 64
func AlignBlock(n int) int {
	return (n + BlockAlignmentMask) &^ BlockAlignmentMask
}

// IsBlockAligned reports whether n is a multiple of BlockAlignment.
func IsBlockAligned(n int) bool {
	return n&BlockAlignmentMask == 0
}

// PayloadCapacity returns the caller-visible bytes of a run of blocks blocks,
// each blockSize long. The run-length header is taken out of the first block.
func PayloadCapacity(blockSize, blocks int) int {
	if blocks <= 0 {
		return 0
	}
	return blockSize*blocks - MetadataSize
}
