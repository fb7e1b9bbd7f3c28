package bmp280

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Transport is the register-level bus the driver talks through. The two
// built-in implementations cover I²C and SPI; tests and exotic setups can
// supply their own.
//
// Multi-byte reads rely on the device's register auto-increment, so a
// single ReadRegister call is one bus transaction.
type Transport interface {
	// ReadRegister fills buf with len(buf) bytes starting at reg.
	ReadRegister(reg uint8, buf []byte) error
	// WriteRegister writes a single byte to reg.
	WriteRegister(reg uint8, value uint8) error
	Close() error
}

// i2cTransport addresses registers with a pointer write followed by a read,
// both inside one i2c.Dev transaction.
type i2cTransport struct {
	dev i2c.Dev
	bus i2c.BusCloser // set only when the driver opened the bus itself
}

func newI2CTransport(bus i2c.Bus, addr uint16) *i2cTransport {
	return &i2cTransport{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

func (t *i2cTransport) ReadRegister(reg uint8, buf []byte) error {
	if err := t.dev.Tx([]byte{reg}, buf); err != nil {
		return &BusError{Op: "read", Reg: reg, Err: err}
	}
	return nil
}

func (t *i2cTransport) WriteRegister(reg uint8, value uint8) error {
	if err := t.dev.Tx([]byte{reg, value}, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (t *i2cTransport) Close() error {
	if t.bus == nil {
		return nil
	}
	return t.bus.Close()
}

// spiTransport encodes the register address in the first byte of each
// transaction: bit 7 set for reads, cleared for writes. The port handles
// chip-select for the duration of each Tx.
type spiTransport struct {
	conn spi.Conn
}

func newSPITransport(p spi.Port) (*spiTransport, error) {
	// Mode 3 and 10MHz max per the datasheet.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode3, 8)
	if err != nil {
		return nil, err
	}
	return &spiTransport{conn: c}, nil
}

func (t *spiTransport) ReadRegister(reg uint8, buf []byte) error {
	w := make([]byte, len(buf)+1)
	r := make([]byte, len(buf)+1)
	w[0] = reg | 0x80
	if err := t.conn.Tx(w, r); err != nil {
		return &BusError{Op: "read", Reg: reg, Err: err}
	}
	copy(buf, r[1:])
	return nil
}

func (t *spiTransport) WriteRegister(reg uint8, value uint8) error {
	if err := t.conn.Tx([]byte{reg &^ 0x80, value}, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// Close is a no-op: the SPI port is owned by the caller.
func (t *spiTransport) Close() error {
	return nil
}
