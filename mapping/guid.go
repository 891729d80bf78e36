// Package mapping parses SDL-style game controller mapping databases and keeps the
// parsed records in a lookup table keyed by device GUID.
package mapping

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// GUIDSize is the size of a device identity in bytes.
const GUIDSize = 16

// GUID identifies a joystick model. It is synthesized from bus type, vendor id,
// product id, version, device name and driver signature/data.
type GUID [GUIDSize]byte

// ParseGUID decodes the 32 character hex form used in mapping databases.
func ParseGUID(s string) (GUID, error) {
	var g GUID
	if len(s) != hex.EncodedLen(GUIDSize) {
		return g, fmt.Errorf("%w: expected %d hex digits, got %d", ErrMalformedGUID, hex.EncodedLen(GUIDSize), len(s))
	}
	if _, err := hex.Decode(g[:], []byte(s)); err != nil {
		return GUID{}, fmt.Errorf("%w: %v", ErrMalformedGUID, err)
	}
	return g, nil
}

// CreateGUID builds the device identity the same way SDL does, so that GUIDs
// reported by a backend match the ones found in community mapping databases.
//
// Layout (little-endian 16 bit words):
//
//	0-1:   bus
//	2-3:   CRC-16 of name (0 for an empty name)
//	with a vendor id:
//	4-5:   vendor, 6-7: 0, 8-9: product, 10-11: 0, 12-13: version
//	14:    driver signature, 15: driver data
//	without a vendor id:
//	4-15:  name bytes (4-13 when a driver signature is present)
func CreateGUID(bus, vendor, product, version uint16, name string, driverSignature, driverData uint8) GUID {
	var g GUID
	binary.LittleEndian.PutUint16(g[0:2], bus)
	binary.LittleEndian.PutUint16(g[2:4], crc16([]byte(name)))

	if vendor != 0 {
		binary.LittleEndian.PutUint16(g[4:6], vendor)
		binary.LittleEndian.PutUint16(g[8:10], product)
		binary.LittleEndian.PutUint16(g[12:14], version)
		g[14] = driverSignature
		g[15] = driverData
		return g
	}

	// One byte is kept for the terminating NUL of the C string copy.
	space := GUIDSize - 4
	if driverSignature != 0 {
		space -= 2
		g[14] = driverSignature
		g[15] = driverData
	}
	copy(g[4:4+space-1], name)
	return g
}

// String returns the lowercase hex form.
func (g GUID) String() string { return hex.EncodeToString(g[:]) }

// IsZero reports whether the GUID carries no identity at all.
func (g GUID) IsZero() bool { return g == GUID{} }

func (g GUID) Bus() uint16     { return binary.LittleEndian.Uint16(g[0:2]) }
func (g GUID) CRC() uint16     { return binary.LittleEndian.Uint16(g[2:4]) }
func (g GUID) Vendor() uint16  { return binary.LittleEndian.Uint16(g[4:6]) }
func (g GUID) Product() uint16 { return binary.LittleEndian.Uint16(g[8:10]) }
func (g GUID) Version() uint16 { return binary.LittleEndian.Uint16(g[12:14]) }

// MarshalText implements encoding.TextMarshaler.
func (g GUID) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GUID) UnmarshalText(text []byte) error {
	parsed, err := ParseGUID(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// crc16 is CRC-16/ARC (reflected poly 0xA001, init 0), matching SDL_crc16.
func crc16(data []byte) uint16 {
	var crc uint16
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
