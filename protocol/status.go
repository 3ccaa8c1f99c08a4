package protocol

// StatusResponse carries the server-list JSON description (§4.7 status).
type StatusResponse struct {
	JSON string
}

// Encode appends the packet payload (a single length-prefixed JSON string)
// to dst.
func (p StatusResponse) Encode(dst []byte) []byte {
	return WriteString(dst, p.JSON)
}

// PingRequest/PongResponse echo an opaque 8-byte payload so the client can
// measure round-trip latency; the server never inspects it.
type PingRequest struct {
	Payload int64
}

func DecodePingRequest(r ByteReader) (PingRequest, error) {
	v, err := ReadI64(r)
	return PingRequest{Payload: v}, err
}

type PongResponse struct {
	Payload int64
}

func (p PongResponse) Encode(dst []byte) []byte {
	return WriteI64(dst, p.Payload)
}

// StatusJSON builds the minimal server-list description payload. Since
// compression and encryption are non-goals, the payload carries no
// "enforcesSecureChat" field, and the version name is informational only.
func StatusJSON(motd string, online, max int) string {
	return `{"version":{"name":"1.21.8","protocol":` + itoa(ProtocolVersion) + `},` +
		`"players":{"max":` + itoa(max) + `,"online":` + itoa(online) + `,"sample":[]},` +
		`"description":{"text":"` + jsonEscape(motd) + `"}}`
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b [20]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

func jsonEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
