package protocol

// CRC16 calculates the CRC-16/MODBUS checksum used by DGUS displays
// running in CRC mode (poly 0xA001 reflected, init 0xFFFF).
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// appendCRC appends the checksum of data low byte first, as the display expects.
func appendCRC(dst, data []byte) []byte {
	crc := CRC16(data)
	return append(dst, byte(crc), byte(crc>>8))
}
