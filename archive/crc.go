package archive

// The index hashes filenames with a CRC-32 older than the reflected
// variant in hash/crc32: most significant bit first, polynomial
// 0x04C11DB7, zero initial value, no final inversion.

var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var t [256]uint32
	for i := range t {
		crc := uint32(i) << 24
		for bit := 0; bit < 8; bit++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ 0x04C11DB7
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// NameCRC hashes an archive member name the way the index stores it.
// The hash covers the name bytes plus their NUL terminator.
func NameCRC(name string) uint32 {
	var crc uint32
	for i := 0; i < len(name); i++ {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^name[i]]
	}
	return crc<<8 ^ crcTable[byte(crc>>24)]
}
