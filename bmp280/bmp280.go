// Driver for the Bosch BMP280 barometric pressure and temperature sensor,
// connected over I²C or SPI.
//
// BMP280 datasheet:
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bmp280-ds001.pdf
package bmp280

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3"
)

// DefaultSeaLevelPressure is the standard atmosphere reference in hPa,
// used for altitude until SetSeaLevelPressure is called.
const DefaultSeaLevelPressure = 1013.25

const (
	maxConversionPolls = 50
	statusPollInterval = 2 * time.Millisecond
	resetSettleTime    = 4 * time.Millisecond
)

// Config mirrors the device's ctrl_meas and config registers.
type Config struct {
	Mode                    Mode
	TemperatureOversampling Oversampling
	PressureOversampling    Oversampling
	IIRFilter               IIRFilter
	Standby                 Standby
}

// DefaultConfig free-runs the device with moderate oversampling.
var DefaultConfig = Config{
	Mode:                    ModeNormal,
	TemperatureOversampling: OversamplingX2,
	PressureOversampling:    OversamplingX16,
	IIRFilter:               IIRFilterOff,
	Standby:                 Standby500ms,
}

func (c Config) validate() error {
	switch c.Mode {
	case ModeSleep, ModeForced, ModeNormal:
	default:
		return fmt.Errorf("%w: mode 0x%02X", ErrInvalidInput, uint8(c.Mode))
	}
	if c.TemperatureOversampling > OversamplingX16 || c.PressureOversampling > OversamplingX16 {
		return fmt.Errorf("%w: oversampling out of range", ErrInvalidInput)
	}
	if c.IIRFilter > IIRFilterX16 {
		return fmt.Errorf("%w: IIR filter 0x%02X", ErrInvalidInput, uint8(c.IIRFilter))
	}
	if c.Standby > Standby4s {
		return fmt.Errorf("%w: standby 0x%02X", ErrInvalidInput, uint8(c.Standby))
	}
	return nil
}

func (c Config) ctrlMeas() uint8 {
	return uint8(c.TemperatureOversampling)<<5 | uint8(c.PressureOversampling)<<2 | uint8(c.Mode)
}

func (c Config) configReg() uint8 {
	return uint8(c.Standby)<<5 | uint8(c.IIRFilter)<<2
}

// Opts are construction options.
type Opts struct {
	// Addr is the I²C address, AddrPrimary or AddrSecondary. Ignored for
	// SPI and custom transports.
	Addr uint16
	// Config applied at init. The zero value means DefaultConfig.
	Config Config
}

// DefaultOpts is the primary address with DefaultConfig.
var DefaultOpts = Opts{Addr: AddrPrimary, Config: DefaultConfig}

// Device is a single BMP280. It is not safe for concurrent use: one
// instance owns its transport, and callers sharing a Device must
// serialize access themselves.
type Device struct {
	transport Transport
	cal       calibration
	config    Config
	seaLevel  float64
	log       zerolog.Logger
}

// Readings is one compensated sample in periph physic units.
type Readings struct {
	Temperature physic.Temperature
	Pressure    physic.Pressure
}

// New opens the first available I²C bus and probes for a BMP280 at the
// primary address, with default settings. The device owns the bus and
// Close releases it.
func New() (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		return nil, err
	}

	t := newI2CTransport(bus, DefaultOpts.Addr)
	t.bus = bus
	d, err := newDevice(t, &DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return d, nil
}

// NewI2C probes for a BMP280 on a caller-owned I²C bus.
func NewI2C(bus i2c.Bus, opts *Opts) (*Device, error) {
	o := fillOpts(opts)
	return newDevice(newI2CTransport(bus, o.Addr), &o)
}

// NewSPI probes for a BMP280 on a caller-owned SPI port. Chip-select is
// handled by the port for the duration of each transaction.
func NewSPI(p spi.Port, opts *Opts) (*Device, error) {
	o := fillOpts(opts)
	t, err := newSPITransport(p)
	if err != nil {
		return nil, err
	}
	return newDevice(t, &o)
}

// NewWithTransport probes for a BMP280 behind a custom Transport.
func NewWithTransport(t Transport, opts *Opts) (*Device, error) {
	o := fillOpts(opts)
	return newDevice(t, &o)
}

func fillOpts(opts *Opts) Opts {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = AddrPrimary
	}
	if o.Config == (Config{}) {
		o.Config = DefaultConfig
	}
	return o
}

func newDevice(t Transport, opts *Opts) (*Device, error) {
	d := &Device{
		transport: t,
		seaLevel:  DefaultSeaLevelPressure,
	}
	d.log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	d.log = d.log.Level(zerolog.InfoLevel)

	var id [1]byte
	if err := t.ReadRegister(regChipID, id[:]); err != nil {
		return nil, err
	}
	if id[0] != chipID {
		return nil, fmt.Errorf("%w: chip ID 0x%02X, want 0x%02X", ErrUnsupportedDevice, id[0], chipID)
	}

	if err := d.Reset(); err != nil {
		return nil, err
	}

	cal, err := loadCalibration(t)
	if err != nil {
		return nil, err
	}
	d.cal = cal
	d.log.Debug().
		Uint16("t1", cal.t1).Int16("t2", cal.t2).Int16("t3", cal.t3).
		Uint16("p1", cal.p1).Int16("p2", cal.p2).Int16("p3", cal.p3).
		Int16("p4", cal.p4).Int16("p5", cal.p5).Int16("p6", cal.p6).
		Int16("p7", cal.p7).Int16("p8", cal.p8).Int16("p9", cal.p9).
		Msg("calibration loaded")

	if err := d.SetConfig(opts.Config); err != nil {
		return nil, err
	}
	return d, nil
}

// EnableDebugging turns on debug-level logging of bus activity.
func (d *Device) EnableDebugging() {
	d.log = d.log.Level(zerolog.DebugLevel)
}

// Close releases the underlying bus if the driver opened it (see New).
func (d *Device) Close() error {
	return d.transport.Close()
}

// Reset soft-resets the device. Configuration and mode revert to the
// power-on state; calibration is unaffected.
func (d *Device) Reset() error {
	if err := d.transport.WriteRegister(regSoftReset, softResetCode); err != nil {
		return err
	}
	time.Sleep(resetSettleTime)
	return nil
}

// SetConfig writes mode, oversampling, IIR filter and standby settings to
// the device and mirrors them in memory.
func (d *Device) SetConfig(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	// Config register writes may be ignored while in normal mode, so drop
	// to sleep first.
	if d.config.Mode == ModeNormal {
		sleep := d.config
		sleep.Mode = ModeSleep
		if err := d.transport.WriteRegister(regCtrlMeas, sleep.ctrlMeas()); err != nil {
			return err
		}
	}
	if err := d.transport.WriteRegister(regConfig, cfg.configReg()); err != nil {
		return err
	}
	if err := d.transport.WriteRegister(regCtrlMeas, cfg.ctrlMeas()); err != nil {
		return err
	}
	d.config = cfg
	d.log.Debug().
		Uint8("ctrl_meas", cfg.ctrlMeas()).
		Uint8("config", cfg.configReg()).
		Msg("configuration written")
	return nil
}

// Config returns the mirrored configuration without touching the bus.
func (d *Device) Config() Config {
	return d.config
}

// Temperature reads the compensated temperature in °C.
func (d *Device) Temperature() (float64, error) {
	rawT, _, err := d.measure()
	if err != nil {
		return 0, err
	}
	t, _ := d.cal.compensateTemperature(rawT)
	return t, nil
}

// Pressure reads the compensated pressure in hPa. Temperature is always
// compensated first because its t_fine intermediate feeds the pressure
// formula.
func (d *Device) Pressure() (float64, error) {
	rawT, rawP, err := d.measure()
	if err != nil {
		return 0, err
	}
	_, tFine := d.cal.compensateTemperature(rawT)
	return d.cal.compensatePressure(rawP, tFine)
}

// Altitude reads the pressure and derives altitude in meters from the
// current sea-level reference.
func (d *Device) Altitude() (float64, error) {
	p, err := d.Pressure()
	if err != nil {
		return 0, err
	}
	return AltitudeFromPressure(p, d.seaLevel)
}

// Read returns one compensated sample in physic units.
func (d *Device) Read() (*Readings, error) {
	rawT, rawP, err := d.measure()
	if err != nil {
		return nil, err
	}
	t, tFine := d.cal.compensateTemperature(rawT)
	p, err := d.cal.compensatePressure(rawP, tFine)
	if err != nil {
		return nil, err
	}
	return &Readings{
		Temperature: physic.Temperature(math.Round(t*1000))*physic.MilliCelsius + physic.ZeroCelsius,
		Pressure:    physic.Pressure(p * 100 * float64(physic.Pascal)),
	}, nil
}

// SeaLevelPressure returns the altitude reference in hPa.
func (d *Device) SeaLevelPressure() float64 {
	return d.seaLevel
}

// SetSeaLevelPressure sets the altitude reference in hPa. A non-positive
// value is rejected and the previous reference kept.
func (d *Device) SetSeaLevelPressure(hpa float64) error {
	if hpa <= 0 {
		return fmt.Errorf("%w: sea level pressure %v hPa", ErrInvalidInput, hpa)
	}
	d.seaLevel = hpa
	return nil
}

// SetAltitude calibrates the sea-level reference from a known altitude in
// meters, using the current pressure reading.
func (d *Device) SetAltitude(meters float64) error {
	if meters >= 44330 {
		return fmt.Errorf("%w: altitude %v m", ErrInvalidInput, meters)
	}
	p, err := d.Pressure()
	if err != nil {
		return err
	}
	d.seaLevel = seaLevelFromAltitude(p, meters)
	return nil
}

// MeasurementTimeTypical is the typical conversion time for the current
// oversampling settings, per the datasheet.
func (d *Device) MeasurementTimeTypical() time.Duration {
	ms := 1.0
	if n := d.config.TemperatureOversampling.samples(); n > 0 {
		ms += 2 * float64(n)
	}
	if n := d.config.PressureOversampling.samples(); n > 0 {
		ms += 2*float64(n) + 0.5
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// MeasurementTimeMax is the worst-case conversion time for the current
// oversampling settings, per the datasheet.
func (d *Device) MeasurementTimeMax() time.Duration {
	ms := 1.25
	if n := d.config.TemperatureOversampling.samples(); n > 0 {
		ms += 2.3 * float64(n)
	}
	if n := d.config.PressureOversampling.samples(); n > 0 {
		ms += 2.3*float64(n) + 0.575
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// measure produces one raw sample. Outside normal mode a forced
// conversion is triggered and waited for first.
func (d *Device) measure() (rawT, rawP int32, err error) {
	if !d.cal.loaded() {
		return 0, 0, ErrInvalidCalibration
	}
	if d.config.Mode != ModeNormal {
		if err := d.triggerForced(); err != nil {
			return 0, 0, err
		}
	}
	return d.readRaw()
}

// triggerForced starts a one-shot conversion and polls the status register
// until the measuring bit clears. The wait is bounded by a poll count, not
// wall-clock time.
func (d *Device) triggerForced() error {
	cfg := d.config
	cfg.Mode = ModeForced
	if err := d.transport.WriteRegister(regCtrlMeas, cfg.ctrlMeas()); err != nil {
		return err
	}
	for i := 0; i < maxConversionPolls; i++ {
		var st [1]byte
		if err := d.transport.ReadRegister(regStatus, st[:]); err != nil {
			return err
		}
		if st[0]&statusMeasuring == 0 {
			d.log.Debug().Int("polls", i).Msg("forced conversion complete")
			return nil
		}
		time.Sleep(statusPollInterval)
	}
	return ErrConversionTimeout
}

// readRaw reads press_msb..temp_xlsb in a single 6-byte burst so both
// values come from the same conversion and cannot be torn by an update in
// between. The 20-bit values are left-aligned across three bytes each.
func (d *Device) readRaw() (rawT, rawP int32, err error) {
	var buf [6]byte
	if err := d.transport.ReadRegister(regPressData, buf[:]); err != nil {
		return 0, 0, err
	}
	rawP = int32(buf[0])<<12 | int32(buf[1])<<4 | int32(buf[2])>>4
	rawT = int32(buf[3])<<12 | int32(buf[4])<<4 | int32(buf[5])>>4
	return rawT, rawP, nil
}
