package bmp280

import "math"

// Vendor compensation formulas, ported from the BMP280 datasheet reference
// code (BST-BMP280-DS001 §3.11.3 and the Bosch BMP280_driver). The integer
// arithmetic and its exact ordering reproduce the reference output
// bit-for-bit; do not reorder.

// compensateTemperature converts a 20-bit raw temperature reading to °C.
// It also returns t_fine, the high-resolution intermediate that pressure
// compensation needs, so temperature must always be compensated first.
func (c *calibration) compensateTemperature(raw int32) (temp float64, tFine int32) {
	var1 := (((raw >> 3) - (int32(c.t1) << 1)) * int32(c.t2)) >> 11
	var2 := (((((raw >> 4) - int32(c.t1)) * ((raw >> 4) - int32(c.t1))) >> 12) * int32(c.t3)) >> 14
	tFine = var1 + var2
	temp = float64((tFine*5+128)>>8) / 100
	return temp, tFine
}

// compensatePressure converts a 20-bit raw pressure reading to hPa using
// t_fine from compensateTemperature. The int64 path yields pressure in
// Q24.8 fixed-point Pa.
//
// A zero denominator means dig_P1 (or the whole block) was misread;
// that is surfaced as ErrDivisionByZero instead of being clamped.
func (c *calibration) compensatePressure(raw, tFine int32) (float64, error) {
	var1 := int64(tFine) - 128000
	var2 := var1 * var1 * int64(c.p6)
	var2 += (var1 * int64(c.p5)) << 17
	var2 += int64(c.p4) << 35
	var1 = ((var1 * var1 * int64(c.p3)) >> 8) + ((var1 * int64(c.p2)) << 12)
	var1 = ((int64(1) << 47) + var1) * int64(c.p1) >> 33
	if var1 == 0 {
		return 0, ErrDivisionByZero
	}
	p := int64(1048576 - raw)
	p = (((p << 31) - var2) * 3125) / var1
	var1 = (int64(c.p9) * (p >> 13) * (p >> 13)) >> 25
	var2 = (int64(c.p8) * p) >> 19
	p = ((p + var1 + var2) >> 8) + (int64(c.p7) << 4)
	return float64(p) / 25600, nil
}

// AltitudeFromPressure derives altitude in meters from a pressure reading
// and a sea-level reference, both in hPa, using the international
// barometric formula 44330·(1−(p/p0)^(1/5.255)).
func AltitudeFromPressure(pressure, seaLevel float64) (float64, error) {
	if pressure <= 0 || seaLevel <= 0 {
		return 0, ErrInvalidInput
	}
	return 44330 * (1 - math.Pow(pressure/seaLevel, 1/5.255)), nil
}

// seaLevelFromAltitude is the inverse: given the current pressure and a
// known altitude, compute the sea-level reference.
func seaLevelFromAltitude(pressure, altitude float64) float64 {
	return pressure / math.Pow(1-altitude/44330, 5.255)
}
