package bmp280

import (
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestI2CTransport(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Register-pointer write, then read.
			{Addr: uint16(AddrPrimary), W: []byte{regChipID}, R: []byte{chipID}},
			{Addr: uint16(AddrPrimary), W: []byte{regSoftReset, softResetCode}, R: nil},
		},
		DontPanic: true,
	}
	tr := newI2CTransport(pb, AddrPrimary)

	var id [1]byte
	if err := tr.ReadRegister(regChipID, id[:]); err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if id[0] != chipID {
		t.Errorf("chip id = 0x%02X, want 0x%02X", id[0], chipID)
	}
	if err := tr.WriteRegister(regSoftReset, softResetCode); err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	if err := pb.Close(); err != nil {
		t.Fatalf("unconsumed playback ops: %v", err)
	}
}

func TestSPITransport(t *testing.T) {
	pb := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// Reads set the register high bit and clock out a dummy
				// byte per payload byte.
				{W: []byte{regChipID | 0x80, 0x00}, R: []byte{0x00, chipID}},
				// Writes clear the high bit.
				{W: []byte{regSoftReset &^ 0x80, softResetCode}, R: nil},
			},
			DontPanic: true,
		},
	}
	tr, err := newSPITransport(pb)
	if err != nil {
		t.Fatalf("newSPITransport: %v", err)
	}

	var id [1]byte
	if err := tr.ReadRegister(regChipID, id[:]); err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if id[0] != chipID {
		t.Errorf("chip id = 0x%02X, want 0x%02X", id[0], chipID)
	}
	if err := tr.WriteRegister(regSoftReset, softResetCode); err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	if err := pb.Close(); err != nil {
		t.Fatalf("unconsumed playback ops: %v", err)
	}
}
