package drm

// Kernel ABI for the subset of DRM mode setting used here. Request numbers
// follow the _IOWR('d', nr, size) encoding from asm-generic/ioctl.h.

const (
	iocWrite = 1
	iocRead  = 2

	drmIoctlBase = 'd'
)

func iowr(nr, size uintptr) uintptr {
	return (iocRead|iocWrite)<<30 | size<<16 | drmIoctlBase<<8 | nr
}

func ioNone(nr uintptr) uintptr {
	return drmIoctlBase<<8 | nr
}

var (
	ioctlSetMaster      = ioNone(0x1e)
	ioctlDropMaster     = ioNone(0x1f)
	ioctlModeGetRes     = iowr(0xa0, 64)
	ioctlModeGetCrtc    = iowr(0xa1, 104)
	ioctlModeSetCrtc    = iowr(0xa2, 104)
	ioctlModeGetEncoder = iowr(0xa6, 20)
	ioctlModeGetConn    = iowr(0xa7, 80)
	ioctlModeAddFB      = iowr(0xae, 28)
	ioctlModeRmFB       = iowr(0xaf, 4)
	ioctlModeCreateDumb = iowr(0xb2, 32)
	ioctlModeMapDumb    = iowr(0xb3, 16)
	ioctlModeDestroy    = iowr(0xb4, 4)
)

const (
	modeConnected     = 1
	modeTypePreferred = 1 << 3
)

type cardRes struct {
	FbIDPtr         uint64
	CrtcIDPtr       uint64
	ConnectorIDPtr  uint64
	EncoderIDPtr    uint64
	CountFbs        uint32
	CountCrtcs      uint32
	CountConnectors uint32
	CountEncoders   uint32
	MinWidth        uint32
	MaxWidth        uint32
	MinHeight       uint32
	MaxHeight       uint32
}

type modeInfo struct {
	Clock      uint32
	HDisplay   uint16
	HSyncStart uint16
	HSyncEnd   uint16
	HTotal     uint16
	HSkew      uint16
	VDisplay   uint16
	VSyncStart uint16
	VSyncEnd   uint16
	VTotal     uint16
	VScan      uint16
	VRefresh   uint32
	Flags      uint32
	Type       uint32
	Name       [32]byte
}

func (m modeInfo) name() string {
	for i, c := range m.Name {
		if c == 0 {
			return string(m.Name[:i])
		}
	}
	return string(m.Name[:])
}

type getConnector struct {
	EncodersPtr     uint64
	ModesPtr        uint64
	PropsPtr        uint64
	PropValuesPtr   uint64
	CountModes      uint32
	CountProps      uint32
	CountEncoders   uint32
	EncoderID       uint32
	ConnectorID     uint32
	ConnectorType   uint32
	ConnectorTypeID uint32
	Connection      uint32
	MmWidth         uint32
	MmHeight        uint32
	Subpixel        uint32
	Pad             uint32
}

type getEncoder struct {
	EncoderID      uint32
	EncoderType    uint32
	CrtcID         uint32
	PossibleCrtcs  uint32
	PossibleClones uint32
}

type crtc struct {
	SetConnectorsPtr uint64
	CountConnectors  uint32
	CrtcID           uint32
	FbID             uint32
	X                uint32
	Y                uint32
	GammaSize        uint32
	ModeValid        uint32
	Mode             modeInfo
}

type createDumb struct {
	Height uint32
	Width  uint32
	Bpp    uint32
	Flags  uint32
	Handle uint32
	Pitch  uint32
	Size   uint64
}

type mapDumb struct {
	Handle uint32
	Pad    uint32
	Offset uint64
}

type fbCmd struct {
	FbID   uint32
	Width  uint32
	Height uint32
	Pitch  uint32
	Bpp    uint32
	Depth  uint32
	Handle uint32
}
