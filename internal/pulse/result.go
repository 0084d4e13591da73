package pulse

// Protocol identifies the remote protocol a capture decoded as.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolTechnibelAC
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTechnibelAC:
		return "TECHNIBEL_AC"
	default:
		return "UNKNOWN"
	}
}

// Result is a successful decode outcome. Address and Command stay zero for
// protocols that do not split their payload.
type Result struct {
	Protocol Protocol
	Bits     int
	Value    uint64
	Address  uint64
	Command  uint64
}
