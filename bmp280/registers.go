package bmp280

// BMP280 register map, per the Bosch BMP280 datasheet (BST-BMP280-DS001).
const (
	regCalibration = 0x88 // 24-byte calibration block, dig_T1..dig_P9
	regChipID      = 0xD0
	regSoftReset   = 0xE0
	regStatus      = 0xF3
	regCtrlMeas    = 0xF4
	regConfig      = 0xF5
	regPressData   = 0xF7 // press_msb..temp_xlsb, 6-byte burst
)

const (
	chipID        = 0x58
	softResetCode = 0xB6

	// status register bits
	statusMeasuring = 0x08
)

// I²C addresses. AddrPrimary is used when the SDO pin is pulled low,
// AddrSecondary when pulled high.
const (
	AddrPrimary   uint16 = 0x76
	AddrSecondary uint16 = 0x77
)

// Mode selects how the device schedules conversions.
type Mode uint8

const (
	// ModeSleep disables conversions. Reads in this mode trigger a
	// one-shot forced conversion.
	ModeSleep Mode = 0x00
	// ModeForced performs one conversion per trigger, then the device
	// returns to sleep on its own.
	ModeForced Mode = 0x01
	// ModeNormal free-runs conversions on the configured standby interval.
	ModeNormal Mode = 0x03
)

// Oversampling is the number of internal ADC samples averaged per value.
type Oversampling uint8

const (
	OversamplingOff Oversampling = 0x00
	OversamplingX1  Oversampling = 0x01
	OversamplingX2  Oversampling = 0x02
	OversamplingX4  Oversampling = 0x03
	OversamplingX8  Oversampling = 0x04
	OversamplingX16 Oversampling = 0x05
)

// samples returns the averaged sample count, used for conversion time
// estimates.
func (o Oversampling) samples() int {
	if o == OversamplingOff {
		return 0
	}
	return 1 << (o - 1)
}

// IIRFilter is the time constant of the on-chip IIR pressure filter.
type IIRFilter uint8

const (
	IIRFilterOff IIRFilter = 0x00
	IIRFilterX2  IIRFilter = 0x01
	IIRFilterX4  IIRFilter = 0x02
	IIRFilterX8  IIRFilter = 0x03
	IIRFilterX16 IIRFilter = 0x04
)

// Standby is the inactive period between conversions in normal mode.
type Standby uint8

const (
	Standby500us Standby = 0x00
	Standby62ms  Standby = 0x01 // 62.5ms
	Standby125ms Standby = 0x02
	Standby250ms Standby = 0x03
	Standby500ms Standby = 0x04
	Standby1s    Standby = 0x05
	Standby2s    Standby = 0x06
	Standby4s    Standby = 0x07
)
