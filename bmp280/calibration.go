package bmp280

import "encoding/binary"

const calibrationSize = 24

// calibration holds the factory trimming coefficients burned into the
// device. Read once at init, immutable afterwards.
type calibration struct {
	t1         uint16
	t2, t3     int16
	p1         uint16
	p2, p3, p4 int16
	p5, p6, p7 int16
	p8, p9     int16
}

// newCalibration parses the little-endian dig_T1..dig_P9 block read from
// regCalibration.
func newCalibration(buf []byte) calibration {
	return calibration{
		t1: binary.LittleEndian.Uint16(buf[0:2]),
		t2: int16(binary.LittleEndian.Uint16(buf[2:4])),
		t3: int16(binary.LittleEndian.Uint16(buf[4:6])),
		p1: binary.LittleEndian.Uint16(buf[6:8]),
		p2: int16(binary.LittleEndian.Uint16(buf[8:10])),
		p3: int16(binary.LittleEndian.Uint16(buf[10:12])),
		p4: int16(binary.LittleEndian.Uint16(buf[12:14])),
		p5: int16(binary.LittleEndian.Uint16(buf[14:16])),
		p6: int16(binary.LittleEndian.Uint16(buf[16:18])),
		p7: int16(binary.LittleEndian.Uint16(buf[18:20])),
		p8: int16(binary.LittleEndian.Uint16(buf[20:22])),
		p9: int16(binary.LittleEndian.Uint16(buf[22:24])),
	}
}

// loadCalibration reads the calibration block in one burst. An all-0x00 or
// all-0xFF block means the device is absent or unpowered and yields
// ErrInvalidCalibration rather than silently wrong readings later. No
// retries here; that is the caller's call.
func loadCalibration(t Transport) (calibration, error) {
	var buf [calibrationSize]byte
	if err := t.ReadRegister(regCalibration, buf[:]); err != nil {
		return calibration{}, err
	}
	zeros, ones := 0, 0
	for _, b := range buf {
		switch b {
		case 0x00:
			zeros++
		case 0xFF:
			ones++
		}
	}
	if zeros == len(buf) || ones == len(buf) {
		return calibration{}, ErrInvalidCalibration
	}
	return newCalibration(buf[:]), nil
}

// loaded reports whether the coefficients look initialized. dig_T1 and
// dig_P1 are unsigned and never zero on a real part.
func (c *calibration) loaded() bool {
	return c.t1 != 0 && c.p1 != 0
}
