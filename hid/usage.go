// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

// Usage is a USB HID Keyboard/Keypad Page (0x07) usage ID, in the range
// [UsageMin, UsageMax] (SPEC_FULL.md §4.5/§6.1).
type Usage byte

// Keyboard usage range bounds (SPEC_FULL.md §4.5: "≈ 0x01..=0xE7").
const (
	UsageMin Usage = 0x01
	UsageMax Usage = 0xE7
)

// A representative subset of USB HID Usage Tables chapter 10 (Keyboard/
// Keypad Page). Values match the standard assigned numbers; the full
// numeric range [UsageMin, UsageMax] is addressable via the Usage type even
// for codes not named here.
const (
	UsageErrorRollOver Usage = 0x01
	UsagePOSTFail      Usage = 0x02
	UsageErrorUndefine Usage = 0x03

	UsageA Usage = 0x04
	UsageB Usage = 0x05
	UsageC Usage = 0x06
	UsageD Usage = 0x07
	UsageE Usage = 0x08
	UsageF Usage = 0x09
	UsageG Usage = 0x0A
	UsageH Usage = 0x0B
	UsageI Usage = 0x0C
	UsageJ Usage = 0x0D
	UsageK Usage = 0x0E
	UsageL Usage = 0x0F
	UsageM Usage = 0x10
	UsageN Usage = 0x11
	UsageO Usage = 0x12
	UsageP Usage = 0x13
	UsageQ Usage = 0x14
	UsageR Usage = 0x15
	UsageS Usage = 0x16
	UsageT Usage = 0x17
	UsageU Usage = 0x18
	UsageV Usage = 0x19
	UsageW Usage = 0x1A
	UsageX Usage = 0x1B
	UsageY Usage = 0x1C
	UsageZ Usage = 0x1D

	Usage1 Usage = 0x1E
	Usage2 Usage = 0x1F
	Usage3 Usage = 0x20
	Usage4 Usage = 0x21
	Usage5 Usage = 0x22
	Usage6 Usage = 0x23
	Usage7 Usage = 0x24
	Usage8 Usage = 0x25
	Usage9 Usage = 0x26
	Usage0 Usage = 0x27

	UsageEnter     Usage = 0x28
	UsageEscape    Usage = 0x29
	UsageBackspace Usage = 0x2A
	UsageTab       Usage = 0x2B
	UsageSpace     Usage = 0x2C
	UsageMinus     Usage = 0x2D
	UsageEqual     Usage = 0x2E
	UsageLeftBrace Usage = 0x2F
	UsageRightBrace Usage = 0x30
	UsageBackslash Usage = 0x31

	UsageSemicolon Usage = 0x33
	UsageApostrophe Usage = 0x34
	UsageGrave     Usage = 0x35
	UsageComma     Usage = 0x36
	UsageDot       Usage = 0x37
	UsageSlash     Usage = 0x38
	UsageCapsLock  Usage = 0x39

	UsageF1  Usage = 0x3A
	UsageF2  Usage = 0x3B
	UsageF3  Usage = 0x3C
	UsageF4  Usage = 0x3D
	UsageF5  Usage = 0x3E
	UsageF6  Usage = 0x3F
	UsageF7  Usage = 0x40
	UsageF8  Usage = 0x41
	UsageF9  Usage = 0x42
	UsageF10 Usage = 0x43
	UsageF11 Usage = 0x44
	UsageF12 Usage = 0x45

	UsagePrintScreen Usage = 0x46
	UsageScrollLock  Usage = 0x47
	UsagePause       Usage = 0x48
	UsageInsert      Usage = 0x49
	UsageHome        Usage = 0x4A
	UsagePageUp      Usage = 0x4B
	UsageDelete      Usage = 0x4C
	UsageEnd         Usage = 0x4D
	UsagePageDown    Usage = 0x4E
	UsageRight       Usage = 0x4F
	UsageLeft        Usage = 0x50
	UsageDown        Usage = 0x51
	UsageUp          Usage = 0x52

	UsageNumLock    Usage = 0x53
	UsageKeypadDiv  Usage = 0x54
	UsageKeypadMul  Usage = 0x55
	UsageKeypadSub  Usage = 0x56
	UsageKeypadAdd  Usage = 0x57
	UsageKeypadEnter Usage = 0x58
	UsageKeypad1    Usage = 0x59
	UsageKeypad2    Usage = 0x5A
	UsageKeypad3    Usage = 0x5B
	UsageKeypad4    Usage = 0x5C
	UsageKeypad5    Usage = 0x5D
	UsageKeypad6    Usage = 0x5E
	UsageKeypad7    Usage = 0x5F
	UsageKeypad8    Usage = 0x60
	UsageKeypad9    Usage = 0x61
	UsageKeypad0    Usage = 0x62
	UsageKeypadDot  Usage = 0x63

	UsageF13 Usage = 0x68
	UsageF14 Usage = 0x69
	UsageF15 Usage = 0x6A
	UsageF16 Usage = 0x6B
	UsageF17 Usage = 0x6C
	UsageF18 Usage = 0x6D
	UsageF19 Usage = 0x6E
	UsageF20 Usage = 0x6F
	UsageF21 Usage = 0x70
	UsageF22 Usage = 0x71
	UsageF23 Usage = 0x72
	UsageF24 Usage = 0x73

	// Modifier keys occupy the top of the range, 0xE0-0xE7. They are
	// ordinary bits of the keyboard report's usage bit array; the report
	// has no separate modifier byte.
	UsageLeftCtrl   Usage = 0xE0
	UsageLeftShift  Usage = 0xE1
	UsageLeftAlt    Usage = 0xE2
	UsageLeftGUI    Usage = 0xE3
	UsageRightCtrl  Usage = 0xE4
	UsageRightShift Usage = 0xE5
	UsageRightAlt   Usage = 0xE6
	UsageRightGUI   Usage = 0xE7
)

// CCUsage is a USB HID Consumer Page (0x0C) usage ID.
type CCUsage uint16

// Consumer-control usage range bounds (SPEC_FULL.md §6.1).
const (
	CCUsageMin CCUsage = 0x0001
	CCUsageMax CCUsage = 0x02A0
)

// A representative subset of the Consumer Page.
const (
	CCPlayPause    CCUsage = 0x00CD
	CCScanNext     CCUsage = 0x00B5
	CCScanPrevious CCUsage = 0x00B6
	CCStop         CCUsage = 0x00B7
	CCMute         CCUsage = 0x00E2
	CCVolumeUp     CCUsage = 0x00E9
	CCVolumeDown   CCUsage = 0x00EA
	CCBrightnessUp CCUsage = 0x006F
	CCBrightnessDn CCUsage = 0x0070
)
