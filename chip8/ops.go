package chip8

/// execute a decoded instruction. Returns false and the kind of fault
/// if the instruction can't be executed.
///
func (vm *CHIP_8) execute(inst Instruction) (FaultKind, bool) {
	a, b, n := inst.NNN, inst.KK, inst.N
	x, y := inst.X, inst.Y

	// instruction decoding
	switch w := inst.Word; {
	case w == 0x00E0:
		vm.cls()
	case w == 0x00EE:
		return vm.ret()
	case w&0xF000 == 0x1000:
		vm.jump(a)
	case w&0xF000 == 0x2000:
		return vm.call(a)
	case w&0xF000 == 0x3000:
		vm.skipIf(x, b)
	case w&0xF000 == 0x4000:
		vm.skipIfNot(x, b)
	case w&0xF00F == 0x5000:
		vm.skipIfXY(x, y)
	case w&0xF000 == 0x6000:
		vm.loadX(x, b)
	case w&0xF000 == 0x7000:
		vm.addX(x, b)
	case w&0xF00F == 0x8000:
		vm.loadXY(x, y)
	case w&0xF00F == 0x8001:
		vm.or(x, y)
	case w&0xF00F == 0x8002:
		vm.and(x, y)
	case w&0xF00F == 0x8003:
		vm.xor(x, y)
	case w&0xF00F == 0x8004:
		vm.addXY(x, y)
	case w&0xF00F == 0x8005:
		vm.subXY(x, y)
	case w&0xF00F == 0x8006:
		vm.shr(x)
	case w&0xF00F == 0x8007:
		vm.subYX(x, y)
	case w&0xF00F == 0x800E:
		vm.shl(x)
	case w&0xF00F == 0x9000:
		vm.skipIfNotXY(x, y)
	case w&0xF000 == 0xA000:
		vm.loadI(a)
	case w&0xF000 == 0xB000:
		vm.jumpV0(a)
	case w&0xF000 == 0xC000:
		vm.rnd(x, b)
	case w&0xF000 == 0xD000:
		vm.drw(x, y, n)
	case w&0xF0FF == 0xE09E:
		vm.skipIfPressed(x)
	case w&0xF0FF == 0xE0A1:
		vm.skipIfNotPressed(x)
	case w&0xF0FF == 0xF007:
		vm.loadXDT(x)
	case w&0xF0FF == 0xF00A:
		vm.loadXK(x)
	case w&0xF0FF == 0xF015:
		vm.loadDTX(x)
	case w&0xF0FF == 0xF018:
		vm.loadSTX(x)
	case w&0xF0FF == 0xF01E:
		vm.addIX(x)
	case w&0xF0FF == 0xF029:
		vm.loadF(x)
	case w&0xF0FF == 0xF033:
		vm.loadB(x)
	case w&0xF0FF == 0xF055:
		vm.saveRegs(x)
	case w&0xF0FF == 0xF065:
		vm.loadRegs(x)
	default:
		return InvalidOpcode, false
	}

	return 0, true
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) (FaultKind, bool) {
	if vm.SP >= StackDepth {
		return StackOverflow, false
	}

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = address

	return 0, true
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() (FaultKind, bool) {
	if vm.SP == 0 {
		return StackUnderflow, false
	}

	// restore program counter
	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return 0, true
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0, wrapping within memory.
///
func (vm *CHIP_8) jumpV0(address uint16) {
	vm.PC = (address + uint16(vm.V[0])) & 0xFFF
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x uint, b byte) {
	if vm.V[x] == b {
		vm.PC += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x uint, b byte) {
	if vm.V[x] != b {
		vm.PC += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y uint) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y uint) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x uint) {
	if vm.Keys[vm.V[x]&0xF] {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x uint) {
	if !vm.Keys[vm.V[x]&0xF] {
		vm.PC += 2
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x uint, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y uint) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x uint) {
	vm.V[x] = vm.DT
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x uint) {
	vm.DT = vm.V[x]
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x uint) {
	vm.ST = vm.V[x]
}

/// load vx with the lowest key pressed. If no key is down, vx is left
/// alone and the instruction runs again next time.
///
func (vm *CHIP_8) loadXK(x uint) {
	for k, down := range vm.Keys {
		if down {
			if vm.waiting && vm.logger != nil {
				vm.logger.Debug("key wait released")
			}

			vm.V[x] = byte(k)
			vm.waiting = false
			return
		}
	}

	if !vm.waiting && vm.logger != nil {
		vm.logger.Debug("waiting for key")
	}

	// rewind to this instruction
	vm.PC -= 2
	vm.waiting = true
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x uint) {
	n := vm.V[x]

	vm.Memory[uint(vm.I)&0xFFF] = n / 100
	vm.Memory[uint(vm.I+1)&0xFFF] = n / 10 % 10
	vm.Memory[uint(vm.I+2)&0xFFF] = n % 10
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x uint) {
	vm.I = uint16(vm.V[x]) * 5
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y uint) {
	vm.V[x] |= vm.V[y]
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y uint) {
	vm.V[x] &= vm.V[y]
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y uint) {
	vm.V[x] ^= vm.V[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x uint) {
	c := vm.V[x] >> 7

	vm.V[x] <<= 1
	vm.V[0xF] = c
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x uint) {
	c := vm.V[x] & 1

	vm.V[x] >>= 1
	vm.V[0xF] = c
}

/// add n to vx.
///
func (vm *CHIP_8) addX(x uint, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y uint) {
	sum := uint(vm.V[x]) + uint(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

/// add v to i.
///
func (vm *CHIP_8) addIX(x uint) {
	vm.I += uint16(vm.V[x])
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y uint) {
	c := byte(0)
	if vm.V[x] >= vm.V[y] {
		c = 1
	}

	vm.V[x] -= vm.V[y]
	vm.V[0xF] = c
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y uint) {
	c := byte(0)
	if vm.V[y] >= vm.V[x] {
		c = 1
	}

	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = c
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x uint, b byte) {
	vm.V[x] = vm.random.Byte() & b
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.Memory[(uint(vm.I)+i)&0xFFF] = vm.V[i]
	}
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.V[i] = vm.Memory[(uint(vm.I)+i)&0xFFF]
	}
}
