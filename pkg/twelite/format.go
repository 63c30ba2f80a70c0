package twelite

import "fmt"

// Summary renders the one-line human-readable form of a frame: signal
// strength, supply voltage, and the DI1 door-sensor pair.
func (f *StatusFrame) Summary() string {
	return fmt.Sprintf("%.2fdBm %dmV is_open: %t changed: %t",
		f.LQIdBm(), f.PowerVoltageMillis(), f.DIStatusBit(1), f.DIChangedBit(1))
}
