package section

// crcTable is the nibble lookup table of the format's 16-bit checksum.
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400,
	0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401,
	0x5000, 0x9C01, 0x8801, 0x4400,
}

// Checksum is a running 16-bit checksum updated byte-by-byte over the header
// and payload. The zero value is ready to use.
type Checksum struct {
	sum uint16
}

// Write folds a single byte into the checksum, low nibble first.
func (c *Checksum) Write(b byte) {
	tmp := crcTable[c.sum&0x0F]
	c.sum = (c.sum >> 4) & 0x0FFF
	c.sum = c.sum ^ tmp ^ crcTable[b&0x0F]

	tmp = crcTable[c.sum&0x0F]
	c.sum = (c.sum >> 4) & 0x0FFF
	c.sum = c.sum ^ tmp ^ crcTable[(b>>4)&0x0F]
}

// Update folds all bytes of data into the checksum.
func (c *Checksum) Update(data []byte) {
	for _, b := range data {
		c.Write(b)
	}
}

// Sum returns the current checksum value.
func (c *Checksum) Sum() uint16 {
	return c.sum
}

// Reset clears the checksum back to its initial state.
func (c *Checksum) Reset() {
	c.sum = 0
}

// CRC16 computes the checksum of data in one call.
func CRC16(data []byte) uint16 {
	var c Checksum
	c.Update(data)

	return c.Sum()
}
