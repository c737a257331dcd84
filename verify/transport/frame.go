package transport

import (
	"encoding/binary"
	"io"
	"net"
	"time"
)

// Frame layout on the wire:
// - 4 bytes: payload length (uint32, big endian)
// - N bytes: payload
//
// No maximum frame size is enforced. The harness trusts its peers; this is
// a test boundary, not a production one.

const headerSize = 4

// WriteFrame writes a length-prefixed frame as one logical write
func WriteFrame(w io.Writer, payload []byte) error {
	header := make([]byte, headerSize)
	binary.BigEndian.PutUint32(header, uint32(len(payload)))

	b := net.Buffers{header, payload}
	_, err := b.WriteTo(w)
	return err
}

// ReadFrame reads the length prefix and then blocks until exactly that many
// payload bytes have been read. It fails with the underlying transport error
// if the stream closes before the prefix or the payload is complete.
func ReadFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	contentLength := binary.BigEndian.Uint32(header)
	if contentLength == 0 {
		return []byte{}, nil
	}

	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// WriteFrameTimeout writes a frame with a write deadline applied to the
// connection. A timeout of 0 disables the deadline.
func WriteFrameTimeout(conn net.Conn, payload []byte, timeout time.Duration) error {
	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
	}
	return WriteFrame(conn, payload)
}

// ReadFrameTimeout reads one frame with a read deadline applied to the
// connection. A timeout of 0 disables the deadline.
func ReadFrameTimeout(conn net.Conn, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
	}
	return ReadFrame(conn)
}
