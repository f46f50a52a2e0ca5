// Package platform supplies the board-specific side of the sensing core: the
// static channel plan and the pin/bank/ADC factories. Host builds return
// fakes that model the hardware contracts closely enough for the full test
// suite; MCU builds talk to the real peripherals.
package platform

import "motioncode-go/services/tacho/internal/quad"

// planFourPort is the reference four-port layout. Ports A-C share edge bank 5
// (status bits 27, 24, 29); port D sits alone on bank 6 (bit 9). Pin numbers
// are flat GPIO indices (bank*16 + pin). The identification voltages come
// back on converter channels 1, 0, 13 and 14.
var planFourPort = quad.Plan{
	{PulsePin: 91, DirPin: 4, DetectPin: 84, Bank: 5, BankBit: 27, ADCChannel: 1},
	{PulsePin: 88, DirPin: 41, DetectPin: 37, Bank: 5, BankBit: 24, ADCChannel: 0},
	{PulsePin: 93, DirPin: 62, DetectPin: 56, Bank: 5, BankBit: 29, ADCChannel: 13},
	{PulsePin: 105, DirPin: 40, DetectPin: 95, Bank: 6, BankBit: 9, ADCChannel: 14},
}
